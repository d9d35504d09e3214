// Package cmd implements the CLI application for the finvest dashboard.
package cmd

import (
	"os"

	"github.com/etnz/finvest"
	"github.com/etnz/finvest/config"
	"github.com/etnz/finvest/gemini"
	"github.com/google/subcommands"
	"github.com/rs/zerolog"
)

// Commands lists all subcommands. A main package registers each of them
// on a commander and executes the user-selected one.
var Commands = []subcommands.Command{
	&serveCmd{},
	&summaryCmd{},
	&adviseCmd{},
	&visionCmd{},
	&videoCmd{},
}

// As a CLI application the lifecycle is short lived: the store is
// rebuilt from the seed assets on every run, there is nothing to
// persist between runs.
func newStore() *finvest.Store {
	return finvest.NewStore(finvest.SeedAssets()...)
}

// newStudio loads the configuration and builds the gemini service from
// it.
func newStudio() (*gemini.Service, *config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	return gemini.NewService(cfg.Gemini.APIKey, newLogger(cfg.LogLevel)), cfg, nil
}

func newLogger(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(lvl).With().Timestamp().Logger()
}
