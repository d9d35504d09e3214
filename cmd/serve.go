package cmd

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/etnz/finvest/config"
	"github.com/etnz/finvest/gemini"
	"github.com/etnz/finvest/server"
	"github.com/google/subcommands"
)

type serveCmd struct {
	addr string
}

func (*serveCmd) Name() string     { return "serve" }
func (*serveCmd) Synopsis() string { return "serve the dashboard API over HTTP" }
func (*serveCmd) Usage() string {
	return `fv serve [-addr <host:port>]

  Serve the portfolio dashboard as a JSON API. The store is seeded with
  the example assets and lives in process memory only.
`
}

func (c *serveCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.addr, "addr", "", "listen address, overrides FINVEST_HOST/FINVEST_PORT")
}

func (c *serveCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		return subcommands.ExitFailure
	}
	if c.addr == "" {
		c.addr = cfg.Server.Addr
	}

	log := newLogger(cfg.LogLevel)
	studio := gemini.NewService(cfg.Gemini.APIKey, log)
	srv := server.New(newStore(), studio, log)

	httpServer := &http.Server{
		Addr:        c.addr,
		Handler:     srv.Router(cfg.CORS.AllowedOrigins),
		ReadTimeout: 15 * time.Second,
		// No write timeout: the studio video endpoint legitimately
		// holds the response open for minutes while the job completes.
		WriteTimeout: 0,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", c.addr).Msg("dashboard listening")
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("forced shutdown")
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
