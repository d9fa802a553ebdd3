package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/29jbarrera/FaktuFlow-back/internal/config"
	"github.com/29jbarrera/FaktuFlow-back/internal/crypto"
	"github.com/29jbarrera/FaktuFlow-back/internal/infra"
	"github.com/29jbarrera/FaktuFlow-back/internal/router"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	// Structured logger — dev: pretty console, prod: zerolog's default JSON
	if cfg.Env != "production" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}

	cipher, err := crypto.NewCipher(cfg.EncryptionKey, cfg.EncryptionIV)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid encryption key material")
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	if err := infra.RunMigrations(db); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	rdb, err := infra.NewRedis(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store, err := infra.NewArchivoStore(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to init object storage")
	}

	// Captcha provider behind a circuit breaker: when the provider is down,
	// logins fast-fail instead of stacking behind its timeout.
	captchaCB := infra.NewCircuitBreaker(infra.DefaultCBConfig())
	captcha := infra.NewCaptchaClient(cfg.CaptchaSecret, cfg.CaptchaVerifyURL, captchaCB)

	r := router.New(cfg, db, rdb, cipher, store, captcha)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown on SIGINT / SIGTERM
	go func() {
		log.Info().Msgf("FaktuFlow backend listening on :%d", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server…")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("forced shutdown")
	}
	log.Info().Msg("server exited")
}
