package models

import (
	"context"
	"database/sql"
	"errors"

	"github.com/uptrace/bun"
	"go.uber.org/zap"
)

// ChannelSetting stores the per-channel configuration flags.
type ChannelSetting struct {
	GuildID   uint64 `bun:",pk"`
	ChannelID uint64 `bun:",pk"`
	FixEmbeds bool   `bun:",notnull"`
}

// SettingModel handles database operations for channel settings.
type SettingModel struct {
	db     *bun.DB
	logger *zap.Logger
}

// NewSetting creates a SettingModel with database access.
func NewSetting(db *bun.DB, logger *zap.Logger) *SettingModel {
	return &SettingModel{
		db:     db,
		logger: logger,
	}
}

// GetChannelSetting retrieves settings for a specific channel.
// If no row exists yet, defaults are created and returned.
func (r *SettingModel) GetChannelSetting(ctx context.Context, guildID, channelID uint64) (*ChannelSetting, error) {
	settings := &ChannelSetting{
		GuildID:   guildID,
		ChannelID: channelID,
		FixEmbeds: true,
	}

	err := r.db.NewSelect().Model(settings).
		WherePK().
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			// Create default settings if none exist
			_, err = r.db.NewInsert().Model(settings).Exec(ctx)
			if err != nil {
				r.logger.Error("Failed to create channel settings",
					zap.Error(err),
					zap.Uint64("guildID", guildID),
					zap.Uint64("channelID", channelID))
				return nil, err
			}
		} else {
			r.logger.Error("Failed to get channel settings",
				zap.Error(err),
				zap.Uint64("guildID", guildID),
				zap.Uint64("channelID", channelID))
			return nil, err
		}
	}

	return settings, nil
}

// SaveChannelSetting updates or creates channel settings.
func (r *SettingModel) SaveChannelSetting(ctx context.Context, settings *ChannelSetting) error {
	_, err := r.db.NewInsert().Model(settings).
		On("CONFLICT (guild_id, channel_id) DO UPDATE").
		Set("fix_embeds = EXCLUDED.fix_embeds").
		Exec(ctx)
	if err != nil {
		r.logger.Error("Failed to save channel settings",
			zap.Error(err),
			zap.Uint64("guildID", settings.GuildID),
			zap.Uint64("channelID", settings.ChannelID))
		return err
	}

	return nil
}
