package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"

	portssvc "github.com/nortis-app/nortis-backend/internal/core/ports/services"
	"github.com/nortis-app/nortis-backend/internal/core/services"
	"github.com/nortis-app/nortis-backend/internal/handlers"
	"github.com/nortis-app/nortis-backend/internal/integrations/gemini"
	"github.com/nortis-app/nortis-backend/internal/middleware"
	"github.com/nortis-app/nortis-backend/internal/platform/config"
	"github.com/nortis-app/nortis-backend/internal/repositories/database/pgsql"
	"github.com/nortis-app/nortis-backend/pkg/database"
)

// @title Nortis Backend API
// @version 1.0
// @description Personal finance obligation ledger: one-off and recurring bills, per-period payment tracking and projections.

// @host localhost:8080
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @security BearerAuth
func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	loc, err := time.LoadLocation(cfg.TimeZone)
	if err != nil {
		logger.Error("Failed to load reference timezone", slog.String("time_zone", cfg.TimeZone), slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize database connection pool (for application use)
	dbPool, err := database.NewPgxPool(context.Background(), cfg.DatabaseURL)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer dbPool.Close()
	logger.Info("Database connection pool established.")

	if err := runMigrations(cfg.DatabaseURL, logger); err != nil {
		logger.Error("Failed to run migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}

	generator := newTextGenerator(cfg, logger)

	repos := pgsql.NewRepositoryProvider(dbPool)
	serviceContainer := services.NewServiceContainer(repos, generator, loc)

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery, CORS)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.AllowedOrigins
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	r.Use(cors.New(corsConfig))

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	handlers.RegisterRoutes(r, cfg, serviceContainer, loc)

	logger.Info("Server starting", slog.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// runMigrations applies all pending "up" migrations over a temporary
// database/sql connection using the pgx stdlib driver.
func runMigrations(databaseURL string, logger *slog.Logger) error {
	logger.Info("Running database migrations...")

	migrationDB, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return fmt.Errorf("failed to open database connection for migrations: %w", err)
	}
	defer func() {
		if cerr := migrationDB.Close(); cerr != nil {
			logger.Error("Error closing migration DB connection", slog.String("error", cerr.Error()))
		}
	}()

	if err := migrationDB.Ping(); err != nil {
		return fmt.Errorf("failed to ping database for migrations: %w", err)
	}

	driver, err := postgres.WithInstance(migrationDB, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("could not create postgres driver instance for migrations: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance("file://migrations", "postgres", driver)
	if err != nil {
		return fmt.Errorf("could not create migrate instance: %w", err)
	}

	err = m.Up()
	if err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	sourceErr, dbErr := m.Close()
	if sourceErr != nil {
		return fmt.Errorf("migration source error: %w", sourceErr)
	}
	if dbErr != nil {
		return fmt.Errorf("migration database error: %w", dbErr)
	}

	if err == migrate.ErrNoChange {
		logger.Info("No new migrations to apply.")
	} else {
		logger.Info("Database migrations applied successfully.")
	}
	return nil
}

// newTextGenerator wires the Gemini client, falling back to a stub that
// always errors when no API key is configured. The insight handler turns
// that error into its user-facing fallback message.
func newTextGenerator(cfg *config.Config, logger *slog.Logger) portssvc.TextGenerator {
	if cfg.GeminiAPIKey == "" {
		logger.Warn("GEMINI_API_KEY not set, insight generation disabled")
		return unavailableGenerator{}
	}

	client, err := gemini.NewClient(context.Background(), cfg.GeminiAPIKey, cfg.GeminiModel)
	if err != nil {
		logger.Warn("Failed to create Gemini client, insight generation disabled", slog.String("error", err.Error()))
		return unavailableGenerator{}
	}
	return client
}

type unavailableGenerator struct{}

func (unavailableGenerator) GenerateText(context.Context, string) (string, error) {
	return "", fmt.Errorf("text generation is not configured")
}
