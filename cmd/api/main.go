package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/herramientasmarketing03-crypto/remix-of-attendance-hub-complete-sub000/internal/config"
	appHTTP "github.com/herramientasmarketing03-crypto/remix-of-attendance-hub-complete-sub000/internal/handler/http"
	"github.com/herramientasmarketing03-crypto/remix-of-attendance-hub-complete-sub000/internal/pkg/cron"
	"github.com/herramientasmarketing03-crypto/remix-of-attendance-hub-complete-sub000/internal/pkg/database"
	"github.com/herramientasmarketing03-crypto/remix-of-attendance-hub-complete-sub000/internal/pkg/jwt"
	"github.com/herramientasmarketing03-crypto/remix-of-attendance-hub-complete-sub000/internal/pkg/storage"
	"github.com/herramientasmarketing03-crypto/remix-of-attendance-hub-complete-sub000/internal/repository/postgresql"
	importService "github.com/herramientasmarketing03-crypto/remix-of-attendance-hub-complete-sub000/internal/service/attendanceimport"
	biometricService "github.com/herramientasmarketing03-crypto/remix-of-attendance-hub-complete-sub000/internal/service/biometric"
	deductionService "github.com/herramientasmarketing03-crypto/remix-of-attendance-hub-complete-sub000/internal/service/deduction"
	"github.com/herramientasmarketing03-crypto/remix-of-attendance-hub-complete-sub000/internal/service/file"
	reportService "github.com/herramientasmarketing03-crypto/remix-of-attendance-hub-complete-sub000/internal/service/report"
)

const version = "v1.0.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}

	routerOpts := appHTTP.RouterOptions{
		Env:            cfg.App.Env,
		Version:        version,
		LogLevel:       cfg.LogLevel(),
		AllowedOrigins: cfg.App.AllowedOrigins,
	}
	logger := appHTTP.NewLogger(os.Stdout, routerOpts)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgreSQLDB(ctx, database.PoolConfig{
		DSN:      cfg.DatabaseURL(),
		MaxConns: cfg.Database.MaxConns,
		MinConns: cfg.Database.MinConns,
	})
	if err != nil {
		slog.Error("Error connecting to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	var fileStorage storage.FileStorage
	switch cfg.Storage.Type {
	case "local":
		fileStorage, err = storage.NewLocalStorage(
			cfg.Storage.BasePath,
			cfg.Storage.BaseURL,
		)
		if err != nil {
			slog.Error("Failed to initialize local storage", "error", err)
			os.Exit(1)
		}
	default:
		slog.Error("Unsupported storage type", "type", cfg.Storage.Type)
		os.Exit(1)
	}

	rosterRepo := postgresql.NewRosterRepository(db, cfg.Database.QueryTimeout)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	fileService := file.NewFileService(fileStorage, cfg.Import.MaxUploadSize)
	importSvc := importService.NewImportService(
		biometricService.NewWorkbookParser(time.Now),
		rosterRepo,
		deductionService.NewDeductionService(),
		reportService.NewReportService(),
		fileService,
		importService.Options{
			DefaultPolicy: cfg.Deduction,
			MaxUploadSize: cfg.Import.MaxUploadSize,
			Organization:  cfg.Report.Organization,
		},
	)

	scheduler := cron.NewScheduler()
	if cfg.Storage.Retention > 0 {
		if err := scheduler.AddJob(cron.UploadRetentionJob(fileService, cfg.Storage.Retention, cfg.Storage.PurgeInterval)); err != nil {
			slog.Error("Failed to register upload retention job", "error", err)
			os.Exit(1)
		}
	}
	scheduler.Start(ctx)
	defer scheduler.Stop()

	biometricHandler := appHTTP.NewBiometricHandler(importSvc, cfg.Import.MaxUploadSize)
	router := appHTTP.NewRouter(routerOpts, logger, JWTService, biometricHandler)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("Server running", "addr", server.Addr, "env", cfg.App.Env)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server shutdown error", "error", err)
	}
	slog.Info("Server stopped")
}
