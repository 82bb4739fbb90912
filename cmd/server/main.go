// Package main initializes and starts the authgate HTTP server, setting up
// configuration, logging, stores, services, handlers, and routing.
package main

import (
	"context"
	"fmt"
	"time"

	nethttp "net/http"

	"github.com/authgate/authgate/internal/config"
	"github.com/authgate/authgate/internal/db"
	"github.com/authgate/authgate/internal/logger"
	"github.com/authgate/authgate/internal/password"
	"github.com/authgate/authgate/internal/repository"
	"github.com/authgate/authgate/internal/server/handler/http"
	"github.com/authgate/authgate/internal/service"
	"github.com/authgate/authgate/internal/session"
	"github.com/authgate/authgate/internal/store"
	"go.uber.org/zap"
)

var (
	// version holds the build version set via ldflags.
	version string
	// buildDate holds the build timestamp set via ldflags.
	buildDate string
)

// orDefault returns s if non-empty, otherwise fallback. It matches the
// behavior of cmp.Or for strings, which requires Go 1.22+.
func orDefault(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

func main() {
	// Parse command-line and environment configuration.
	options := config.Parse()

	// Print build metadata (or "N/A" if unset).
	fmt.Printf("Build version: %s\n", orDefault(version, "N/A"))
	fmt.Printf("Build date: %s\n", orDefault(buildDate, "N/A"))

	// Initialize structured logging.
	log := logger.New()
	if err := log.Init("Info"); err != nil {
		panic(err)
	}
	defer func() { _ = log.Log.Sync() }()
	zapLogger := log.Log

	// Pick the credential backend: Postgres when a DSN is configured,
	// in-memory otherwise.
	var credentials service.CredentialStore
	if options.DatabaseDSN != "" {
		postgresDB, err := db.InitPostgres(options.DatabaseDSN)
		if err != nil {
			zapLogger.Fatal("cannot init database", zap.Error(err))
		}
		credentials = repository.NewPostgresCredentialStore(postgresDB)
	} else {
		credentials = store.NewCredentialStore()
	}

	// Initialize the session table and its expiry sweeper.
	ttl := time.Duration(options.SessionTTLHours) * time.Hour
	sessions := session.NewManager(ttl)
	sessions.StartExpirySweeper(context.Background(), time.Hour, zapLogger)

	// Initialize business-logic services.
	hasher := password.NewHasher(password.DefaultCost)
	authService := service.NewAuthService(credentials, hasher, sessions)

	// Create HTTP handlers for auth endpoints and static pages.
	authHandler := &http.AuthHandler{
		AuthService: authService,
		Sessions:    sessions,
		CookieTTL:   ttl,
	}
	staticHandler := http.NewStaticHandler(options.StaticDir)

	// Build the router with middleware and routes.
	router := http.NewRouter(authHandler, staticHandler, sessions, zapLogger)

	server := &nethttp.Server{
		Addr:    options.Port,
		Handler: router,
	}

	zapLogger.Info("starting HTTP server", zap.String("addr", options.Port))
	if err := server.ListenAndServe(); err != nil {
		zapLogger.Fatal("failed to start HTTP server", zap.Error(err))
	}
}
