package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/yash200611/launchmate/config"
	"github.com/yash200611/launchmate/internal/auth"
	authservice "github.com/yash200611/launchmate/internal/auth/service"
	"github.com/yash200611/launchmate/internal/bootstrap"
	"github.com/yash200611/launchmate/internal/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Logger.Fatal().Err(err).Msg("config")
	}

	logging.Init(logging.Config{Level: cfg.App.LogLevel, JSONOutput: cfg.App.LogJSON})
	log := logging.WithComponent("api")
	bootstrap.SetGinMode(cfg.App.Environment)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store := bootstrap.OpenStore(ctx, cfg.Mongo, bootstrap.DBOptions{ConnectTO: cfg.Mongo.ConnectTimeout})

	rdb, err := bootstrap.OpenRedis(ctx, cfg.Redis, bootstrap.DBOptions{})
	if err != nil {
		log.Fatal().Err(err).Msg("redis")
	}
	if rdb != nil {
		defer rdb.Close()
	}

	var fb authservice.IDTokenVerifier
	if cfg.Firebase.CredentialsPath != "" {
		v, err := auth.InitializeFirebase(ctx, cfg.Firebase)
		if err != nil {
			log.Fatal().Err(err).Msg("firebase")
		}
		fb = v
	}

	r := bootstrap.BuildRouter(bootstrap.NewRouterDeps(cfg, store, rdb, fb))

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Str("env", cfg.App.Environment).Msg("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("serve")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http shutdown")
	}
	if err := store.Close(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("mongo close")
	}
}
