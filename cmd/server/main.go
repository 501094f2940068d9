package main

import (
	"context"
	"emergency-response-service/internal/api"
	"emergency-response-service/internal/app"
	"emergency-response-service/internal/config"
	"emergency-response-service/internal/platform/obs"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
)

// main is the application composition root.
// It wires concrete adapters (store, remote APIs, caches) behind ports and starts the HTTP server.
func main() {
	config.LoadDotEnv()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}
	obs.SetupLogger(cfg.LogLevel, cfg.LogPretty)

	st, err := app.OpenStore(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("open store")
	}
	defer st.Close()

	// Schema creation is idempotent, so local runs need no separate migrate step.
	if err := st.Migrate(cfg); err != nil {
		log.Fatal().Err(err).Msg("migrate")
	}

	adapters, err := app.NewAdapters(cfg, st)
	if err != nil {
		log.Fatal().Err(err).Msg("build adapters")
	}

	router := api.NewRouter(app.Deps(cfg, st, adapters))

	// WriteTimeout leaves room for a guidance request to run to its own timeout.
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      cfg.GuidanceTimeout + 30*time.Second,
		IdleTimeout:       60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info().Str("addr", srv.Addr).Str("store", cfg.StoreDriver).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("listen")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown")
	}
}
