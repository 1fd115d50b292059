package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"github.com/uptrace/bun"

	"github.com/fitness-fanatics/fitness-api/internal/activity"
	"github.com/fitness-fanatics/fitness-api/internal/auth"
	"github.com/fitness-fanatics/fitness-api/internal/city"
	"github.com/fitness-fanatics/fitness-api/internal/config"
	"github.com/fitness-fanatics/fitness-api/internal/database"
	"github.com/fitness-fanatics/fitness-api/internal/email"
	httpServer "github.com/fitness-fanatics/fitness-api/internal/http"
	"github.com/fitness-fanatics/fitness-api/internal/logging"
	"github.com/fitness-fanatics/fitness-api/internal/photo"
	"github.com/fitness-fanatics/fitness-api/internal/plan"
	"github.com/fitness-fanatics/fitness-api/internal/ratelimit"
	"github.com/fitness-fanatics/fitness-api/internal/storage"
	"github.com/fitness-fanatics/fitness-api/internal/user"
)

// @title           Fitness Fanatics API
// @version         1.0
// @description     REST API for the Fitness Fanatics training diary: account lifecycle with email activation, activity tracking, profile photos and training plans.

// @contact.name   API Support
// @contact.email  support@fitness-fanatics.example

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @host      localhost:8080
// @BasePath  /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the session token.

func main() {
	if err := run(); err != nil {
		log.Fatalf("Application error: %v", err)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Initialize logger
	logger := logging.NewLogger(cfg.Server.IsDevelopment())
	logger.Info("starting application",
		"env", cfg.Server.Env,
		"port", cfg.Server.Port,
	)

	// Initialize database connection and run migrations
	db, err := initDB(cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	if err := database.Migrate(context.Background(), db.DB); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	// Initialize Redis connection
	redisClient, err := initRedis(cfg.Redis)
	if err != nil {
		return fmt.Errorf("failed to initialize Redis: %w", err)
	}
	defer redisClient.Close()

	// Initialize object storage
	objectStorage, err := storage.NewS3Storage(context.Background(), cfg.Storage)
	if err != nil {
		return fmt.Errorf("failed to initialize object storage: %w", err)
	}

	// Initialize repositories
	userRepo := user.NewRepository(db)
	activityRepo := activity.NewRepository(db)
	photoRepo := photo.NewRepository(db)
	planRepo := plan.NewRepository(db)
	cityRepo := city.NewRepository(db)

	// Initialize rate limiter
	rateLimiter := ratelimit.NewLimiter(redisClient, cfg.Auth.RateLimit, cfg.Auth.RateLimitWindow)

	// Initialize token service
	tokenService, err := auth.NewTokenService(cfg.Auth.ActivationKey, cfg.Auth.AuthKey, cfg.Auth.TokenTTL)
	if err != nil {
		return fmt.Errorf("failed to initialize token service: %w", err)
	}

	// Initialize email service
	emailService := email.NewService(
		cfg.Email.SMTPHost,
		cfg.Email.SMTPPort,
		cfg.Email.SMTPUser,
		cfg.Email.SMTPPassword,
		cfg.Email.FrontendURL,
	)

	// Initialize auth service
	authService := auth.NewService(userRepo, tokenService, emailService, logger)

	// Initialize HTTP handlers
	handlers := httpServer.Handlers{
		Auth:     auth.NewHandler(authService, rateLimiter, logger),
		User:     user.NewHandler(userRepo, auth.GetUserIDFromContext, logger),
		Activity: activity.NewHandler(activityRepo, logger),
		Photo:    photo.NewHandler(photoRepo, objectStorage, logger),
		Plan:     plan.NewHandler(planRepo, objectStorage, logger),
		City:     city.NewHandler(cityRepo, logger),
	}
	authMiddleware := auth.NewMiddleware(tokenService)

	// Initialize router
	router := httpServer.NewRouter(cfg, handlers, authMiddleware, logger)

	// Initialize HTTP server
	serverAddr := ":" + cfg.Server.Port
	server := httpServer.NewServer(
		serverAddr,
		router,
		cfg.Server.ReadTimeout,
		cfg.Server.WriteTimeout,
		logger,
	)

	// Start server in a goroutine
	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- server.Start()
	}()

	// Wait for interrupt signal or server error
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)
	case sig := <-shutdown:
		log.Printf("Received signal: %v", sig)

		// Graceful shutdown with timeout
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// initDB initializes the database connection and returns a Bun DB instance
func initDB(cfg config.DatabaseConfig) (*bun.DB, error) {
	sqlDB, err := sql.Open("postgres", cfg.ConnectionString())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Verify connection
	if err := sqlDB.Ping(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	// Set connection pool settings
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	return database.NewBunDB(sqlDB), nil
}

// initRedis initializes the Redis connection and returns a Redis client
func initRedis(cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Address(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	// Verify connection
	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to ping Redis: %w", err)
	}

	return client, nil
}
