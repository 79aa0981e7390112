package models

import (
	"context"
	"time"

	"github.com/uptrace/bun"
	"go.uber.org/zap"
)

// ActivityLog records one change to a channel setting.
type ActivityLog struct {
	ID        int64     `bun:",pk,autoincrement"`
	GuildID   uint64    `bun:",notnull"`
	ChannelID uint64    `bun:",notnull"`
	UserID    uint64    `bun:",notnull"`
	Setting   string    `bun:",notnull"`
	OldValue  string    `bun:",notnull"`
	NewValue  string    `bun:",notnull"`
	Timestamp time.Time `bun:",notnull"`
}

// ActivityModel handles database operations for activity logs.
type ActivityModel struct {
	db     *bun.DB
	logger *zap.Logger
}

// NewActivity creates an ActivityModel with database access.
func NewActivity(db *bun.DB, logger *zap.Logger) *ActivityModel {
	return &ActivityModel{
		db:     db,
		logger: logger,
	}
}

// Log stores an activity record. Logging failures are reported but never
// block the setting change that triggered them.
func (r *ActivityModel) Log(ctx context.Context, log *ActivityLog) {
	if _, err := r.db.NewInsert().Model(log).Exec(ctx); err != nil {
		r.logger.Error("Failed to log activity",
			zap.Error(err),
			zap.String("setting", log.Setting),
			zap.Uint64("userID", log.UserID))
	}
}
