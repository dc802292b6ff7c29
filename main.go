package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/rs/cors"

	"github.com/msomdec/taskboard/internal/domain"
	"github.com/msomdec/taskboard/internal/handler"
	"github.com/msomdec/taskboard/internal/repository/file"
	"github.com/msomdec/taskboard/internal/repository/sqlite"
	"github.com/msomdec/taskboard/internal/service"
	"github.com/msomdec/taskboard/internal/store"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	port := envOrDefault("PORT", "8080")
	backend := envOrDefault("STORE_BACKEND", "file")
	dataPath := envOrDefault("DATA_PATH", "data/taskboard.json")
	corsOrigin := envOrDefault("CORS_ORIGIN", "*")

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		slog.Error("JWT_SECRET environment variable is required")
		os.Exit(1)
	}
	if len(jwtSecret) < 32 {
		slog.Error("JWT_SECRET must be at least 32 characters for HMAC-SHA256 security")
		os.Exit(1)
	}

	bcryptCost := 12
	if v := os.Getenv("BCRYPT_COST"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			slog.Error("invalid BCRYPT_COST", "error", err)
			os.Exit(1)
		}
		if parsed < 4 || parsed > 14 {
			slog.Error("BCRYPT_COST must be between 4 and 14", "value", parsed)
			os.Exit(1)
		}
		bcryptCost = parsed
	}

	var backing domain.SnapshotBacking
	switch backend {
	case "file":
		b, err := file.New(dataPath)
		if err != nil {
			slog.Error("failed to open snapshot file backing", "path", dataPath, "error", err)
			os.Exit(1)
		}
		backing = b
	case "sqlite":
		b, err := sqlite.New(dataPath)
		if err != nil {
			slog.Error("failed to open snapshot sqlite backing", "path", dataPath, "error", err)
			os.Exit(1)
		}
		defer b.Close()
		backing = b
	default:
		slog.Error("STORE_BACKEND must be 'file' or 'sqlite'", "value", backend)
		os.Exit(1)
	}

	st, err := store.New(context.Background(), backing, bcryptCost)
	if err != nil {
		slog.Error("failed to initialize store", "error", err)
		os.Exit(1)
	}
	slog.Info("store initialized", "backend", backend, "path", dataPath)

	authService := service.NewAuthService(st, jwtSecret)
	loginLimiter := service.NewLoginLimiter(0.5, 10)

	mux := http.NewServeMux()
	handler.RegisterRoutes(mux, authService, st, loginLimiter)

	c := cors.New(cors.Options{
		AllowedOrigins: []string{corsOrigin},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
	})

	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           c.Handler(mux),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
		MaxHeaderBytes:    1 << 20, // 1MB
	}

	// Graceful shutdown on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		slog.Info("server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server shutdown error", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}

func envOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
