package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/eduvia/elearning-service/internal/auth"
	"github.com/eduvia/elearning-service/internal/config"
	"github.com/eduvia/elearning-service/internal/handlers"
	"github.com/eduvia/elearning-service/internal/mailer"
	"github.com/eduvia/elearning-service/internal/repositories/mongodb"
	"github.com/eduvia/elearning-service/internal/services"
	"github.com/eduvia/elearning-service/internal/storage"
	"github.com/eduvia/elearning-service/internal/utils"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	slogger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(slogger)
	logger := utils.NewSlogLogger(slogger)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx := context.Background()
	repo, err := mongodb.NewRepository(ctx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		slogger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := repo.Close(closeCtx); err != nil {
			slogger.Error("failed to close database connection", "error", err)
		}
	}()

	media, err := storage.NewCloudinaryStore(cfg.Cloudinary.CloudName, cfg.Cloudinary.APIKey, cfg.Cloudinary.APISecret)
	if err != nil {
		slogger.Error("failed to initialize media store", "error", err)
		os.Exit(1)
	}

	smtp := mailer.NewSMTPMailer(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.Username, cfg.SMTP.Password, cfg.SMTP.Sender, cfg.ClientDomain)
	tokens := auth.NewTokenManager(cfg.JWTSecret)

	serviceManager := services.NewServiceManager(repo, tokens, media, smtp, slogger)
	handlerManager := handlers.NewHandlerManager(serviceManager, tokens, repo, logger)

	router := gin.New()
	handlers.SetupMiddleware(router, logger, cfg.CORSOrigin)
	handlerManager.SetupRoutes(router)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 5 * time.Minute, // large video uploads
		IdleTimeout:  2 * time.Minute,
	}

	go func() {
		slogger.Info("server starting", "port", cfg.Port, "environment", cfg.Environment)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slogger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slogger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slogger.Error("forced shutdown", "error", err)
	}
	slogger.Info("server stopped")
}
