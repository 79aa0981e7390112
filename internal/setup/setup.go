package setup

import (
	"context"
	"log"

	"go.uber.org/zap"

	"github.com/arthurlockman/FixMediaBot/internal/database"
	"github.com/arthurlockman/FixMediaBot/internal/redis"
	"github.com/arthurlockman/FixMediaBot/internal/setup/config"
)

// App contains all the common setup components.
type App struct {
	Config       *config.Config
	Logger       *zap.Logger
	DBLogger     *zap.Logger
	DB           *database.Client
	RedisManager *redis.Manager
}

// InitializeApp performs common setup tasks and returns an App.
func InitializeApp(ctx context.Context, logDir, configPath string) (*App, error) {
	// Load configuration
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, err
	}

	// Initialize logging
	logger, dbLogger, err := GetLoggers(logDir, cfg.Debug.LogLevel, cfg.Debug.MaxLogsToKeep)
	if err != nil {
		return nil, err
	}

	// Initialize database connection
	db, err := database.NewConnection(ctx, &cfg.PostgreSQL, dbLogger)
	if err != nil {
		logger.Error("Failed to connect to database", zap.Error(err))
		return nil, err
	}

	// Initialize Redis connection manager
	redisManager := redis.NewManager(&cfg.Redis, logger)

	return &App{
		Config:       cfg,
		Logger:       logger,
		DBLogger:     dbLogger,
		DB:           db,
		RedisManager: redisManager,
	}, nil
}

// Cleanup performs cleanup tasks.
func (a *App) Cleanup() {
	a.RedisManager.Close()

	if err := a.DB.Close(); err != nil {
		log.Printf("Failed to close database connection: %v", err)
	}
	if err := a.Logger.Sync(); err != nil {
		log.Printf("Failed to sync logger: %v", err)
	}
	if err := a.DBLogger.Sync(); err != nil {
		log.Printf("Failed to sync DB logger: %v", err)
	}
}
