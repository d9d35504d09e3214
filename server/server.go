// Package server exposes the dashboard over HTTP as a JSON API: asset
// management, portfolio figures, and the generative studio endpoints.
package server

import (
	"context"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/etnz/finvest"
	"github.com/etnz/finvest/gemini"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"
)

// Studio is the slice of the gemini service the server depends on.
type Studio interface {
	Advise(ctx context.Context, assets []finvest.Asset, summary *finvest.Summary) string
	VisionBoard(ctx context.Context, prompt string, size gemini.ImageSize) (string, error)
	GoalVideo(ctx context.Context, req gemini.VideoRequest) ([]byte, error)
}

// Server serves the dashboard API over a seeded in-memory store.
type Server struct {
	store  *finvest.Store
	studio Studio
	log    zerolog.Logger

	// One video job at a time: the generation flow has no per-job
	// deduplication, so overlapping submissions are rejected here.
	videoBusy atomic.Bool
}

// New returns a Server over store, delegating generative work to studio.
func New(store *finvest.Store, studio Studio, log zerolog.Logger) *Server {
	return &Server{
		store:  store,
		studio: studio,
		log:    log.With().Str("component", "server").Logger(),
	}
}

// Router builds the HTTP handler with middleware and all routes.
func (s *Server) Router(allowedOrigins []string) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(s.requestLogger)
	r.Use(chimw.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	r.Route("/api", func(r chi.Router) {
		r.Get("/system/health", s.health)

		r.Route("/assets", func(r chi.Router) {
			r.Get("/", s.listAssets)
			r.Post("/", s.addAsset)
			r.Delete("/{id}", s.removeAsset)
		})

		r.Route("/portfolio", func(r chi.Router) {
			r.Get("/summary", s.summary)
			r.Get("/allocation", s.allocation)
		})

		r.Post("/advisor/advice", s.advice)

		r.Route("/studio", func(r chi.Router) {
			r.Post("/image", s.visionImage)
			r.Post("/video", s.goalVideo)
		})
	})

	return r
}

// requestLogger logs one line per request.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("elapsed", time.Since(start)).
			Msg("request")
	})
}
