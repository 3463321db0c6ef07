package main

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/cycle-ledger/backend/internal/auth"
	"github.com/cycle-ledger/backend/internal/config"
	"github.com/cycle-ledger/backend/internal/controllers"
	"github.com/cycle-ledger/backend/internal/mail"
	"github.com/cycle-ledger/backend/internal/models"
	"github.com/cycle-ledger/backend/internal/router"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	// gin uses debug as the default mode, we use release for
	// security reasons
	ginMode, ok := os.LookupEnv("GIN_MODE")
	if !ok {
		gin.SetMode("release")
	} else {
		gin.SetMode(ginMode)
	}

	// Log format can be explicitly set.
	// If it is not set, it defaults to human readable for development
	// and JSON for release
	logFormat, ok := os.LookupEnv("LOG_FORMAT")
	output := io.Writer(os.Stdout)
	if (!ok && gin.IsDebugging()) || (ok && logFormat == "human") {
		output = zerolog.ConsoleWriter{Out: os.Stdout}
	}

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if gin.IsDebugging() {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = log.Output(output).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Config")
	}

	// Connect to the database
	if cfg.Postgres.Enabled() {
		err = models.ConnectPostgres(models.PostgresDSN(cfg.Postgres.Host, cfg.Postgres.User, cfg.Postgres.Password, cfg.Postgres.Name))
	} else {
		err = os.MkdirAll(filepath.Dir(cfg.DatabaseDSN), os.ModePerm)
		if err == nil {
			err = models.Connect(cfg.DatabaseDSN)
		}
	}
	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	r, teardown, err := router.Config(cfg.APIURL, router.Options{
		CORSOrigins: cfg.CORSOrigins,
		EnablePprof: cfg.EnablePprof,
	})
	defer teardown()
	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	co := controllers.Controller{
		Tokens:       auth.NewIssuer(cfg.JWTSecret, cfg.JWTExpiry),
		Mailer:       mail.New(cfg.SMTP),
		CookieSecure: cfg.CookieSecure,
	}
	router.AttachRoutes(co, r.Group("/"))

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Msg(err.Error())
		}
	}()
	log.Info().Str("addr", srv.Addr).Msg("Server started")

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	if sqlDB, err := models.DB.DB(); err == nil {
		sqlDB.Close()
	}

	log.Info().Msg("Server exited")
}
