// Package finvest implements the domain of a small portfolio-tracking
// dashboard: an in-memory asset store, aggregation of portfolio value
// and allocation, and the value types they are built on.
//
// There is no persistence and no pricing feed. The store is seeded with
// example assets at startup and lives in process memory; current prices
// are whatever the user supplied. All intelligence (written advice,
// vision-board images, goal videos) is delegated to the Gemini API
// through the gemini subpackage.
package finvest
