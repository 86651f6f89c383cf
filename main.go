package main

import (
	"context"
	"denuncias/config"
	"denuncias/database"
	"denuncias/logger"
	"denuncias/metrics"
	"denuncias/middleware"
	"denuncias/notification"
	"denuncias/routes"
	"denuncias/schema"
	"denuncias/service"
	"denuncias/storage"
	"denuncias/worker"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	cfg := config.LoadConfig()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	logr := logger.New("denuncias", cfg.Log.Level, cfg.Log.Env)

	if err := run(cfg, logr); err != nil {
		logr.Error("server stopped with error", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logr *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dialect, dsn, err := cfg.Database.DSN()
	if err != nil {
		return err
	}
	db, err := database.Open(ctx, dialect, dsn, cfg.Database.MaxOpenConns)
	if err != nil {
		return err
	}
	defer db.Close()
	logr.Info("database connection established", "driver", dialect)

	if err := schema.InitializeDatabase(ctx, db, logr); err != nil {
		return fmt.Errorf("failed to initialize schema: %w", err)
	}
	// Fail fast on schema lag instead of erroring per request
	if err := schema.ValidateRequiredColumns(ctx, db, schema.DefaultRequiredColumns); err != nil {
		return err
	}

	m := metrics.New()
	files := storage.NewFileStore(cfg.Upload.BasePath, cfg.Upload.MaxBytes)

	var sender notification.Sender = notification.NoopSender{}
	if cfg.Mail.Enabled && cfg.Mail.Host != "" {
		sender = notification.NewSMTPSender(cfg.Mail.Host, cfg.Mail.Port, cfg.Mail.User, cfg.Mail.Password, cfg.Mail.From)
		logr.Info("mail delivery enabled", "host", cfg.Mail.Host, "port", cfg.Mail.Port)
	} else {
		logr.Warn("mail delivery disabled; notifications are discarded")
	}
	mailWorker := worker.NewMailWorker(sender, cfg.Mail.QueueSize, logr, m)
	mailWorker.Start()

	tokens := service.NewTokenIssuer(cfg.Auth.JWTSecret, time.Duration(cfg.Auth.ExpiresHours)*time.Hour)
	notifier := service.NewNotificationService(mailWorker, logr, m)
	complaints := service.NewComplaintService(db, files, notifier, m, logr)
	svc := routes.Services{
		Complaints:  complaints,
		Staff:       service.NewStaffService(db, tokens, m, logr),
		Citizens:    service.NewCitizenService(db, complaints, tokens, logr),
		Reporters:   service.NewReporterService(db, logr),
		Attachments: service.NewAttachmentService(db, files, m, logr),
	}

	router := routes.SetupRoutes(svc, routes.Options{
		JWTSecret:    cfg.Auth.JWTSecret,
		MaxFileBytes: cfg.Upload.MaxBytes,
		Metrics:      m,
		Ping:         db.PingContext,
	}, logr)

	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           middleware.CORS(cfg.Server.FrontendURL)(router),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logr.Info("server starting", "addr", addr, "env", cfg.Log.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
	case <-ctx.Done():
		logr.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Error("http shutdown incomplete", "error", err)
	}
	if err := mailWorker.Stop(shutdownCtx); err != nil {
		logr.Error("mail queue not drained", "error", err)
	}
	logr.Info("server stopped")
	return nil
}
