package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	signinHandlers "github.com/cavemanlearn/bff/internal/api/handlers/signin"
	uploadsHandlers "github.com/cavemanlearn/bff/internal/api/handlers/uploads"
	"github.com/cavemanlearn/bff/internal/api/middleware"
	"github.com/cavemanlearn/bff/internal/api/routes"
	"github.com/cavemanlearn/bff/internal/config"
	"github.com/cavemanlearn/bff/internal/core/signin"
	"github.com/cavemanlearn/bff/internal/core/uploads"
	miniodb "github.com/cavemanlearn/bff/internal/db/minio"
	redisdb "github.com/cavemanlearn/bff/internal/db/redis"
	"github.com/cavemanlearn/bff/internal/github"
)

func main() {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("invalid configuration")
	}

	ctx := context.Background()

	redisClient, err := redisdb.Connect(ctx, cfg.RedisURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer redisClient.Close()
	logger.Info().Msg("connected to session store")

	sessionStore := redisdb.NewSessionStore(redisClient, cfg.SessionTTL)

	ghClient := github.NewClient(github.Config{
		ClientID:     cfg.GitHub.ClientID,
		ClientSecret: cfg.GitHub.ClientSecret,
		RedirectURI:  cfg.GitHub.RedirectURI,
		AuthBaseURL:  cfg.GitHub.AuthBaseURL,
		APIBaseURL:   cfg.GitHub.APIBaseURL,
	}, cfg.OutboundTimeout)

	flow := signin.NewService(sessionStore, ghClient, cfg.GitHub)
	browserSessions := middleware.NewBrowserSessions(cfg.CookieSecret, !cfg.DevMode, logger)

	r := chi.NewRouter()
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(browserSessions.Middleware)

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("Hello world!"))
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	routes.RegisterSignInRoutes(r, signinHandlers.NewHandler(flow, logger), cfg.AllowedOrigins)

	if cfg.Storage.Endpoint != "" {
		blobStore, err := miniodb.NewBlobStore(cfg.Storage)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to connect to object storage")
		}
		archiver := uploads.NewService(blobStore)
		routes.RegisterUploadRoutes(r, uploadsHandlers.NewHandler(archiver, logger))
	} else {
		logger.Warn().Msg("object storage not configured, uploads disabled")
	}

	server := &http.Server{Addr: cfg.Addr, Handler: r}

	go func() {
		logger.Info().Str("addr", cfg.Addr).Msg("server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("server stopped")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("shutdown failed")
	}
	logger.Info().Msg("server stopped")
}
