package settings

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/snowflake/v2"
	"go.uber.org/zap"

	"github.com/arthurlockman/FixMediaBot/internal/bot/constants"
	"github.com/arthurlockman/FixMediaBot/internal/database/models"
)

// ChannelStore reads and writes the durable per-channel settings.
// Implemented by the database settings repository.
type ChannelStore interface {
	GetChannelSetting(ctx context.Context, guildID, channelID uint64) (*models.ChannelSetting, error)
	SaveChannelSetting(ctx context.Context, settings *models.ChannelSetting) error
}

// ActivityRecorder records setting changes for auditing.
// Implemented by the database activity repository.
type ActivityRecorder interface {
	Log(ctx context.Context, log *models.ActivityLog)
}

// FixEmbeds controls whether the bot rewrites social media links in a
// channel. Unlike the other settings, its state is durable: it is loaded
// from the database when the panel opens and written back on every change.
type FixEmbeds struct {
	store     ChannelStore
	activity  ActivityRecorder
	logger    *zap.Logger
	guildID   snowflake.ID
	channelID snowflake.ID
	userID    snowflake.ID
	perms     discord.Permissions

	mu      sync.Mutex
	enabled bool
}

// NewFixEmbeds loads the channel's current flag and binds the setting to the
// invoking user and channel.
func NewFixEmbeds(
	ctx context.Context,
	store ChannelStore,
	activity ActivityRecorder,
	guildID snowflake.ID,
	channelID snowflake.ID,
	userID snowflake.ID,
	perms discord.Permissions,
	logger *zap.Logger,
) (*FixEmbeds, error) {
	setting, err := store.GetChannelSetting(ctx, uint64(guildID), uint64(channelID))
	if err != nil {
		return nil, fmt.Errorf("failed to load channel setting: %w", err)
	}

	return &FixEmbeds{
		store:     store,
		activity:  activity,
		logger:    logger,
		guildID:   guildID,
		channelID: channelID,
		userID:    userID,
		perms:     perms,
		enabled:   setting.FixEmbeds,
	}, nil
}

func (f *FixEmbeds) ID() string          { return constants.FixEmbedsSettingID }
func (f *FixEmbeds) Name() string        { return "Fix Embeds" }
func (f *FixEmbeds) Description() string { return "Rewrite social media links so they embed properly" }
func (f *FixEmbeds) Emoji() string       { return "🔗" }

// Enabled returns whether link fixing is currently on for the channel.
func (f *FixEmbeds) Enabled() bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.enabled
}

// BuildEmbed shows the channel, the current state, and whether the bot has
// the permissions it needs to rewrite links there.
func (f *FixEmbeds) BuildEmbed(_ context.Context) discord.Embed {
	state := "disabled"
	if f.Enabled() {
		state = "enabled"
	}

	description := fmt.Sprintf("Link fixing is currently **%s** in <#%d>.\n\n", state, f.channelID)
	description += formatPerm("View channel", f.perms.Has(discord.PermissionViewChannel))
	description += formatPerm("Send messages", f.perms.Has(discord.PermissionSendMessages))
	description += formatPerm("Embed links", f.perms.Has(discord.PermissionEmbedLinks))
	description += formatPerm("Manage messages", f.perms.Has(discord.PermissionManageMessages))

	return baseEmbed(f, description)
}

func (f *FixEmbeds) BuildOption(selected bool) discord.StringSelectMenuOption {
	return baseOption(f, selected)
}

func (f *FixEmbeds) BuildActions() []discord.InteractiveComponent {
	if f.Enabled() {
		return []discord.InteractiveComponent{
			discord.NewPrimaryButton("Disable link fixing", f.ID()),
		}
	}

	return []discord.InteractiveComponent{
		discord.NewSecondaryButton("Enable link fixing", f.ID()),
	}
}

// Activate flips the flag, persists it, and records the change.
func (f *FixEmbeds) Activate(ctx context.Context, _ string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	oldValue := f.enabled
	f.enabled = !f.enabled

	err := f.store.SaveChannelSetting(ctx, &models.ChannelSetting{
		GuildID:   uint64(f.guildID),
		ChannelID: uint64(f.channelID),
		FixEmbeds: f.enabled,
	})
	if err != nil {
		// Keep the in-memory state in line with what is stored
		f.enabled = oldValue
		return fmt.Errorf("failed to save channel setting: %w", err)
	}

	f.activity.Log(ctx, &models.ActivityLog{
		GuildID:   uint64(f.guildID),
		ChannelID: uint64(f.channelID),
		UserID:    uint64(f.userID),
		Setting:   f.ID(),
		OldValue:  strconv.FormatBool(oldValue),
		NewValue:  strconv.FormatBool(f.enabled),
		Timestamp: time.Now(),
	})

	f.logger.Debug("Channel setting updated",
		zap.Uint64("guildID", uint64(f.guildID)),
		zap.Uint64("channelID", uint64(f.channelID)),
		zap.Bool("fixEmbeds", f.enabled))

	return nil
}

func formatPerm(name string, granted bool) string {
	if granted {
		return "✅ " + name + "\n"
	}
	return "❌ " + name + "\n"
}
