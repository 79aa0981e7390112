// Package settings implements the interactive settings panel shown by the
// /settings command.
package settings

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/rest"
	"github.com/disgoorg/snowflake/v2"
	"go.uber.org/zap"

	"github.com/arthurlockman/FixMediaBot/internal/bot/constants"
	"github.com/arthurlockman/FixMediaBot/internal/bot/core/expiry"
	"github.com/arthurlockman/FixMediaBot/internal/bot/core/session"
	"github.com/arthurlockman/FixMediaBot/internal/bot/interfaces"
	botsettings "github.com/arthurlockman/FixMediaBot/internal/bot/settings"
	"github.com/arthurlockman/FixMediaBot/internal/bot/utils"
)

// View is the stateful controller of one settings panel. It owns the panel's
// setting registry, tracks which setting is selected, and rebuilds the panel
// message on every state change. A view lives from the /settings invocation
// until its panel message is deleted.
type View struct {
	registry *botsettings.Registry
	session  *session.Session
	cleanup  *expiry.Scheduler
	manager  *Manager
	logger   *zap.Logger
	delay    time.Duration

	mu         sync.Mutex
	selectedID string
	messageID  snowflake.ID

	// handleMu serializes component interactions on this panel so that
	// setting activations never run concurrently.
	handleMu sync.Mutex
}

// NewView creates a view over the given registry. The selection from the
// user's previous panel is restored when the session holds one; otherwise the
// overview embed is shown.
func NewView(
	registry *botsettings.Registry,
	sess *session.Session,
	manager *Manager,
	delay time.Duration,
	logger *zap.Logger,
) *View {
	v := &View{
		registry: registry,
		session:  sess,
		cleanup:  expiry.NewScheduler(logger),
		manager:  manager,
		logger:   logger.Named("settings_view"),
		delay:    delay,
	}

	// Restore the selection from the user's previous panel, if any
	if sess != nil {
		if id := sess.GetString(constants.SessionKeySelectedSetting); id != "" {
			v.Select(id)
		}
	}

	return v
}

// Selected returns the ID of the currently selected setting, or the empty
// string when the overview is shown.
func (v *View) Selected() string {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.selectedID
}

// Build rebuilds the panel message from the current state: the action row of
// the selected setting (if any), the select menu with one option per setting,
// and the selected setting's embed or the overview embed.
func (v *View) Build(ctx context.Context) *discord.MessageUpdateBuilder {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.build(ctx)
}

func (v *View) build(ctx context.Context) *discord.MessageUpdateBuilder {
	var components []discord.ContainerComponent

	selected, hasSelected := v.registry.Get(v.selectedID)
	if hasSelected {
		components = append(components, discord.NewActionRow(selected.BuildActions()...))
	}

	options := make([]discord.StringSelectMenuOption, 0, v.registry.Len())
	for _, s := range v.registry.All() {
		options = append(options, s.BuildOption(s.ID() == v.selectedID))
	}
	components = append(components, discord.NewActionRow(
		discord.NewStringSelectMenu(constants.SettingSelectMenuCustomID, "Select a setting", options...),
	))

	var embed discord.Embed
	if hasSelected {
		embed = selected.BuildEmbed(ctx)
	} else {
		embed = discord.NewEmbedBuilder().
			SetTitle("Settings").
			SetDescription("Select a setting below to view and change it.").
			SetColor(constants.DefaultEmbedColor).
			Build()
	}

	// Clear any interim content left by the interaction handler
	return discord.NewMessageUpdateBuilder().
		SetContent("").
		SetEmbeds(embed).
		AddContainerComponents(components...)
}

// Refresh rebuilds the panel and updates the interaction response, sending
// the initial ephemeral message on the first call and editing it afterwards.
// Every refresh restarts the auto-delete countdown.
func (v *View) Refresh(ctx context.Context, event interfaces.CommonEvent) {
	v.mu.Lock()
	messageUpdate := v.build(ctx).Build()
	v.mu.Unlock()

	message, err := event.Client().Rest().UpdateInteractionResponse(event.ApplicationID(), event.Token(), messageUpdate)
	if err != nil {
		v.logger.Error("Failed to update interaction response", zap.Error(err))
		utils.RespondWithError(event, "Failed to update the settings panel.")
		return
	}

	v.mu.Lock()
	firstSend := v.messageID == 0
	v.messageID = message.ID
	selectedID := v.selectedID
	v.mu.Unlock()

	if firstSend && v.manager != nil {
		v.manager.register(message.ID, v)
	}

	v.session.SetUint64(constants.SessionKeyMessageID, uint64(message.ID))
	v.session.Set(constants.SessionKeySelectedSetting, selectedID)

	v.scheduleCleanup(event)
}

// scheduleCleanup restarts the auto-delete countdown using the latest
// interaction's token. Deleting a message that is already gone is expected
// and ignored, as is the countdown being superseded by another refresh.
func (v *View) scheduleCleanup(event interfaces.CommonEvent) {
	client := event.Client()
	applicationID := event.ApplicationID()
	token := event.Token()
	userID := event.User().ID

	v.cleanup.Reset(v.delay, func(ctx context.Context) {
		err := client.Rest().DeleteInteractionResponse(applicationID, token, rest.WithCtx(ctx))
		if errors.Is(err, context.Canceled) {
			// A refresh superseded the countdown mid-delete; the panel is still up
			return
		}
		if err != nil && !isUnknownMessage(err) {
			v.logger.Warn("Failed to delete settings panel", zap.Error(err))
		}

		if v.manager != nil {
			v.mu.Lock()
			messageID := v.messageID
			v.mu.Unlock()
			v.manager.unregister(messageID)
			v.manager.closeSession(ctx, userID)
		}
	})
}

// Select makes the setting with the given ID the active one. It reports
// whether the ID named a registered setting; unknown IDs leave the selection
// unchanged.
func (v *View) Select(id string) bool {
	if _, ok := v.registry.Get(id); !ok {
		return false
	}

	v.mu.Lock()
	v.selectedID = id
	v.mu.Unlock()

	return true
}

// handleSelect processes a selection in the setting select menu.
func (v *View) handleSelect(ctx context.Context, event interfaces.CommonEvent, option string) {
	v.handleMu.Lock()
	defer v.handleMu.Unlock()

	if !v.Select(option) {
		v.logger.Warn("Unknown setting selected", zap.String("option", option))
		utils.RespondWithError(event, "Unknown setting selected.")
		return
	}

	v.Refresh(ctx, event)
}

// handleButton dispatches a button press to the selected setting's Activate
// and refreshes the panel exactly once.
func (v *View) handleButton(ctx context.Context, event interfaces.CommonEvent, customID string) {
	v.handleMu.Lock()
	defer v.handleMu.Unlock()

	v.mu.Lock()
	selected, hasSelected := v.registry.Get(v.selectedID)
	v.mu.Unlock()

	if !hasSelected || selected.ID() != customID {
		v.logger.Warn("Button press for inactive setting", zap.String("customID", customID))
		utils.RespondWithError(event, "This control is no longer active.")
		return
	}

	if err := selected.Activate(ctx, customID); err != nil {
		v.logger.Error("Failed to activate setting",
			zap.Error(err),
			zap.String("setting", customID))
		utils.RespondWithError(event, "Failed to change the setting. Please try again.")
		return
	}

	v.Refresh(ctx, event)
}

// isUnknownMessage reports whether err is Discord telling us the message is
// already gone.
func isUnknownMessage(err error) bool {
	var restErr *rest.Error
	if errors.As(err, &restErr) && restErr.Response != nil {
		return restErr.Response.StatusCode == http.StatusNotFound
	}
	return false
}
