package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"go.uber.org/zap"

	"github.com/arthurlockman/FixMediaBot/internal/database/models"
	"github.com/arthurlockman/FixMediaBot/internal/setup/config"
)

// Client represents the database connection and operations.
// It manages access to the repositories that handle specific data types.
type Client struct {
	db         *bun.DB
	logger     *zap.Logger
	settings   *models.SettingModel
	activities *models.ActivityModel
}

// NewConnection establishes a new database connection and returns a Client instance.
// The initial ping is retried with exponential backoff so the bot survives the
// database coming up slightly after it.
func NewConnection(ctx context.Context, config *config.PostgreSQL, logger *zap.Logger) (*Client, error) {
	// Initialize database connection with config values
	sqldb := sql.OpenDB(pgdriver.NewConnector(
		pgdriver.WithAddr(fmt.Sprintf("%s:%d", config.Host, config.Port)),
		pgdriver.WithUser(config.User),
		pgdriver.WithPassword(config.Password),
		pgdriver.WithDatabase(config.DBName),
		pgdriver.WithInsecure(true),
		pgdriver.WithApplicationName("fixmediabot"),
	))

	// Set connection pool settings
	sqldb.SetMaxOpenConns(config.MaxOpenConns)
	sqldb.SetMaxIdleConns(config.MaxIdleConns)
	sqldb.SetConnMaxLifetime(time.Duration(config.MaxLifetime) * time.Minute)
	sqldb.SetConnMaxIdleTime(time.Duration(config.MaxIdleTime) * time.Minute)

	// Create Bun db instance
	db := bun.NewDB(sqldb, pgdialect.New())

	// Wait for the database to accept connections
	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = 500 * time.Millisecond
	policy.MaxInterval = 5 * time.Second
	policy.MaxElapsedTime = 30 * time.Second

	err := backoff.Retry(func() error {
		return db.PingContext(ctx)
	}, backoff.WithContext(policy, ctx))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Create tables if they don't exist yet
	tableModels := []any{
		(*models.ChannelSetting)(nil),
		(*models.ActivityLog)(nil),
	}
	for _, model := range tableModels {
		_, err := db.NewCreateTable().Model(model).IfNotExists().Exec(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to create table for %T: %w", model, err)
		}
	}

	client := &Client{
		db:         db,
		logger:     logger,
		settings:   models.NewSetting(db, logger),
		activities: models.NewActivity(db, logger),
	}

	logger.Info("Database connection established")
	return client, nil
}

// Settings returns the repository for channel settings.
func (c *Client) Settings() *models.SettingModel {
	return c.settings
}

// Activities returns the repository for activity logs.
func (c *Client) Activities() *models.ActivityModel {
	return c.activities
}

// Close gracefully shuts down the database connection.
func (c *Client) Close() error {
	if err := c.db.Close(); err != nil {
		return fmt.Errorf("failed to close database connection: %w", err)
	}

	c.logger.Info("Database connection closed")
	return nil
}
