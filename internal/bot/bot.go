package bot

import (
	"context"
	"fmt"
	"time"

	"github.com/disgoorg/disgo"
	"github.com/disgoorg/disgo/bot"
	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/events"
	"github.com/disgoorg/disgo/gateway"
	"go.uber.org/zap"

	"github.com/arthurlockman/FixMediaBot/internal/bot/constants"
	"github.com/arthurlockman/FixMediaBot/internal/bot/core/session"
	"github.com/arthurlockman/FixMediaBot/internal/bot/settings"
	"github.com/arthurlockman/FixMediaBot/internal/bot/utils"
	settingsview "github.com/arthurlockman/FixMediaBot/internal/bot/views/settings"
	"github.com/arthurlockman/FixMediaBot/internal/database"
	"github.com/arthurlockman/FixMediaBot/internal/redis"
	"github.com/arthurlockman/FixMediaBot/internal/setup/config"
)

// Bot wires the Discord client to the settings panel machinery. It owns the
// session manager and the view manager and routes interactions to them.
type Bot struct {
	db          *database.Client
	client      bot.Client
	logger      *zap.Logger
	sessions    *session.Manager
	viewManager *settingsview.Manager
}

// New initializes a Bot instance by creating all required managers and
// configuring the Discord client with the necessary gateway intents and
// event listeners.
func New(
	cfg *config.Config,
	db *database.Client,
	redisManager *redis.Manager,
	logger *zap.Logger,
) (*Bot, error) {
	sessions, err := session.NewManager(redisManager, cfg.Panel.SessionTTL(), logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create session manager: %w", err)
	}

	viewManager := settingsview.NewManager(sessions, cfg.Panel.CleanupDelay(), logger)

	b := &Bot{
		db:          db,
		logger:      logger,
		sessions:    sessions,
		viewManager: viewManager,
	}

	client, err := disgo.New(cfg.Discord.Token,
		bot.WithGatewayConfigOpts(
			gateway.WithIntents(
				gateway.IntentGuilds,
			),
		),
		bot.WithEventListeners(&events.ListenerAdapter{
			OnApplicationCommandInteraction: b.handleApplicationCommandInteraction,
			OnComponentInteraction:          b.handleComponentInteraction,
		}),
	)
	if err != nil {
		return nil, err
	}

	b.client = client
	return b, nil
}

// Start registers the settings command with Discord and opens the gateway
// connection.
func (b *Bot) Start(ctx context.Context) error {
	b.logger.Info("Registering commands")

	_, err := b.client.Rest().SetGlobalCommands(b.client.ApplicationID(), []discord.ApplicationCommandCreate{
		discord.SlashCommandCreate{
			Name:        constants.SettingsCommandName,
			Description: "Configure the bot for this channel",
			Options: []discord.ApplicationCommandOption{
				discord.ApplicationCommandOptionChannel{
					Name:        constants.ChannelOptionName,
					Description: "The channel to configure (defaults to the current one)",
					ChannelTypes: []discord.ChannelType{
						discord.ChannelTypeGuildText,
					},
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to register commands: %w", err)
	}

	b.logger.Info("Starting bot")
	return b.client.OpenGateway(ctx)
}

// Close gracefully shuts down the Discord gateway connection.
func (b *Bot) Close(ctx context.Context) {
	b.logger.Info("Closing bot")
	b.client.Close(ctx)
}

// handleApplicationCommandInteraction processes the /settings command by
// deferring an ephemeral response and opening a fresh settings panel.
func (b *Bot) handleApplicationCommandInteraction(event *events.ApplicationCommandInteractionCreate) {
	go func() {
		// Defer response to prevent Discord timeout while processing
		if err := event.DeferCreateMessage(true); err != nil {
			b.logger.Error("Failed to defer create message", zap.Error(err))
			return
		}

		if event.SlashCommandInteractionData().CommandName() != constants.SettingsCommandName {
			utils.RespondWithError(event, "This command is not available.")
			return
		}

		start := time.Now()
		defer func() {
			if r := recover(); r != nil {
				b.logger.Error("Panic in application command interaction handler", zap.Any("panic", r))
				utils.RespondWithError(event, "Internal error. Please report this to an administrator.")
			}
			b.logger.Debug("Application command interaction handled",
				zap.String("command", event.SlashCommandInteractionData().CommandName()),
				zap.Duration("duration", time.Since(start)))
		}()

		ctx := context.Background()

		if event.GuildID() == nil {
			utils.RespondWithError(event, "Settings can only be changed in a server.")
			return
		}

		registry, err := b.buildRegistry(ctx, event)
		if err != nil {
			b.logger.Error("Failed to build setting registry", zap.Error(err))
			utils.RespondWithError(event, "Failed to load the channel's settings.")
			return
		}

		s, err := b.sessions.GetOrCreateSession(ctx, event.User().ID)
		if err != nil {
			b.logger.Error("Failed to get or create session", zap.Error(err))
			utils.RespondWithError(event, "Failed to get or create session.")
			return
		}

		b.viewManager.CreatePanel(ctx, event, registry, s)
		s.Touch(ctx)
	}()
}

// handleComponentInteraction processes button clicks and select menu choices
// on settings panels. It first updates the message to show "Processing..."
// and removes interactive components to prevent double-clicks.
func (b *Bot) handleComponentInteraction(event *events.ComponentInteractionCreate) {
	go func() {
		updateBuilder := discord.NewMessageUpdateBuilder().
			SetContent(utils.GetTimestampedSubtext("Processing...")).
			ClearContainerComponents()

		if err := event.UpdateMessage(updateBuilder.Build()); err != nil {
			b.logger.Error("Failed to update message", zap.Error(err))
			return
		}

		start := time.Now()
		defer func() {
			if r := recover(); r != nil {
				b.logger.Error("Panic in component interaction handler", zap.Any("panic", r))
				utils.RespondWithError(event, "Internal error. Please report this to an administrator.")
			}
			b.logger.Debug("Component interaction handled",
				zap.String("customID", event.Data.CustomID()),
				zap.Duration("duration", time.Since(start)))
		}()

		ctx := context.Background()

		s, err := b.sessions.GetOrCreateSession(ctx, event.User().ID)
		if err != nil {
			b.logger.Error("Failed to get or create session", zap.Error(err))
			utils.RespondWithError(event, "Failed to get or create session.")
			return
		}

		b.viewManager.HandleComponent(ctx, event, s)
		s.Touch(ctx)
	}()
}

// buildRegistry assembles the per-invocation setting registry for the
// targeted channel.
func (b *Bot) buildRegistry(
	ctx context.Context, event *events.ApplicationCommandInteractionCreate,
) (*settings.Registry, error) {
	channelID := event.Channel().ID()
	if resolved, ok := event.SlashCommandInteractionData().OptChannel(constants.ChannelOptionName); ok {
		channelID = resolved.ID
	}

	var perms discord.Permissions
	if event.AppPermissions() != nil {
		perms = *event.AppPermissions()
	}

	fixEmbeds, err := settings.NewFixEmbeds(
		ctx,
		b.db.Settings(),
		b.db.Activities(),
		*event.GuildID(),
		channelID,
		event.User().ID,
		perms,
		b.logger,
	)
	if err != nil {
		return nil, err
	}

	return settings.NewRegistry(
		fixEmbeds,
		settings.NewClicker(),
		settings.NewToggle(),
	), nil
}
