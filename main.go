package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"

	_ "github.com/jackc/pgx/v5/stdlib" // PostgreSQL driver for database/sql (migrations)
	"go.uber.org/zap"

	"github.com/mindgrate/mindgrate-engine/pkg/auth"
	"github.com/mindgrate/mindgrate-engine/pkg/config"
	"github.com/mindgrate/mindgrate-engine/pkg/database"
	"github.com/mindgrate/mindgrate-engine/pkg/handlers"
	"github.com/mindgrate/mindgrate-engine/pkg/middleware"
	"github.com/mindgrate/mindgrate-engine/pkg/repositories"
	"github.com/mindgrate/mindgrate-engine/pkg/services"
	"github.com/mindgrate/mindgrate-engine/ui"
)

// Version is set at build time via ldflags
var Version = "dev"

func main() {
	// Load configuration
	cfg, err := config.Load(Version)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := newLogger(cfg.Env)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Configuration loaded",
		zap.String("environment", cfg.Env),
		zap.String("base_url", cfg.BaseURL),
		zap.Bool("auth_verification", cfg.Auth.EnableVerification),
		zap.String("database", cfg.Database.Database),
		zap.String("database_host", cfg.Database.Host))

	ctx := context.Background()

	// Connect to PostgreSQL
	db, err := database.NewConnection(ctx, &database.Config{
		URL:            cfg.Database.ConnectionString(),
		MaxConnections: cfg.Database.MaxConnections,
	})
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	// Run migrations using database/sql (required by golang-migrate)
	sqlDB, err := sql.Open("pgx", cfg.Database.ConnectionString())
	if err != nil {
		logger.Fatal("Failed to open migration connection", zap.Error(err))
	}
	if err := database.RunMigrations(sqlDB, "migrations", logger); err != nil {
		logger.Fatal("Failed to run migrations", zap.Error(err))
	}
	_ = sqlDB.Close()

	// Authentication
	auth.InitSessionStore(cfg.SessionSecret)
	jwksClient, err := auth.NewJWKSClient(&auth.JWKSConfig{
		EnableVerification: cfg.Auth.EnableVerification,
		JWKSEndpoints:      cfg.Auth.JWKSEndpoints,
	})
	if err != nil {
		logger.Fatal("Failed to create JWKS client", zap.Error(err))
	}
	defer jwksClient.Close()

	authService := auth.NewAuthService(jwksClient, logger)
	authMiddleware := auth.NewMiddleware(authService, logger)

	// Repositories and services
	clock := services.NewClock()
	mindopRepo := repositories.NewMindOpRepository(db)
	datasourceRepo := repositories.NewDataSourceRepository(db)

	mindopService := services.NewMindOpService(mindopRepo, cfg.BaseURL, logger)
	datasourceService := services.NewDataSourceService(datasourceRepo, mindopRepo, clock, logger)
	hubService := services.NewHubService(clock, cfg.Hub.ReplyDelay(), cfg.Hub.SearchDelay(), logger)
	notificationService := services.NewNotificationService(clock, logger)

	// HTTP routes
	mux := http.NewServeMux()
	handlers.NewHealthHandler(cfg, logger).RegisterRoutes(mux)
	handlers.NewAuthHandler(logger).RegisterRoutes(mux)
	handlers.NewMindOpHandler(mindopService, logger).RegisterRoutes(mux, authMiddleware)
	handlers.NewDataSourcesHandler(datasourceService, logger).RegisterRoutes(mux, authMiddleware)
	handlers.NewHubHandler(hubService, logger).RegisterRoutes(mux, authMiddleware)
	handlers.NewNotificationsHandler(notificationService, logger).RegisterRoutes(mux, authMiddleware)

	shell, err := handlers.NewShellHandler(ui.DistFS(), authMiddleware, logger)
	if err != nil {
		logger.Fatal("Failed to create UI shell handler", zap.Error(err))
	}
	shell.RegisterRoutes(mux)

	handler := middleware.RequestLogger(logger)(mux)

	addr := cfg.BindAddr + ":" + cfg.Port
	logger.Info("Starting mindgrate-engine",
		zap.String("addr", addr),
		zap.String("version", cfg.Version))
	if err := http.ListenAndServe(addr, handler); err != nil {
		logger.Fatal("Server failed", zap.Error(err))
	}
}

// newLogger builds the process logger: human-readable in local development,
// JSON elsewhere.
func newLogger(env string) (*zap.Logger, error) {
	if env == "local" {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
