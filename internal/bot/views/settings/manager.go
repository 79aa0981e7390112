package settings

import (
	"context"
	"sync"
	"time"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/events"
	"github.com/disgoorg/snowflake/v2"
	"go.uber.org/zap"

	"github.com/arthurlockman/FixMediaBot/internal/bot/constants"
	"github.com/arthurlockman/FixMediaBot/internal/bot/core/session"
	botsettings "github.com/arthurlockman/FixMediaBot/internal/bot/settings"
	"github.com/arthurlockman/FixMediaBot/internal/bot/utils"
)

// Manager routes component interactions to the view that owns the panel
// message they were triggered on. Views register themselves when their panel
// is first sent and unregister when it is deleted.
type Manager struct {
	logger   *zap.Logger
	sessions *session.Manager
	delay    time.Duration
	mu       sync.RWMutex
	views    map[snowflake.ID]*View
}

// NewManager creates an empty view manager. delay is how long panels stay up
// without interaction before being deleted.
func NewManager(sessions *session.Manager, delay time.Duration, logger *zap.Logger) *Manager {
	return &Manager{
		logger:   logger.Named("settings_views"),
		sessions: sessions,
		delay:    delay,
		views:    make(map[snowflake.ID]*View),
	}
}

// CreatePanel builds a fresh view over the given registry and sends the
// initial panel in response to the /settings command.
func (m *Manager) CreatePanel(
	ctx context.Context,
	event *events.ApplicationCommandInteractionCreate,
	registry *botsettings.Registry,
	sess *session.Session,
) {
	view := NewView(registry, sess, m, m.delay, m.logger)
	view.Refresh(ctx, event)
}

// HandleComponent routes a component interaction to the owning view. The
// session's stored message ID guards against interactions with panels that
// have been superseded.
func (m *Manager) HandleComponent(ctx context.Context, event *events.ComponentInteractionCreate, sess *session.Session) {
	m.mu.RLock()
	view, ok := m.views[event.Message.ID]
	m.mu.RUnlock()

	if !ok {
		m.logger.Debug("Component interaction for unknown panel",
			zap.Uint64("messageID", uint64(event.Message.ID)))
		utils.RespondWithError(event, "This settings panel has expired. Run /settings again.")
		return
	}

	sessionMessageID := sess.GetUint64(constants.SessionKeyMessageID)
	if sessionMessageID != uint64(event.Message.ID) {
		m.logger.Debug("Interaction is outdated",
			zap.Uint64("sessionMessageID", sessionMessageID),
			zap.Uint64("eventMessageID", uint64(event.Message.ID)))
		utils.RespondWithError(event, "This panel is outdated. Please use the latest one.")
		return
	}

	switch data := event.Data.(type) {
	case discord.StringSelectMenuInteractionData:
		view.handleSelect(ctx, event, data.Values[0])
	case discord.ButtonInteractionData:
		view.handleButton(ctx, event, data.CustomID())
	default:
		m.logger.Warn("Unhandled component interaction type",
			zap.String("customID", event.Data.CustomID()))
	}
}

func (m *Manager) register(messageID snowflake.ID, view *View) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.views[messageID] = view
}

func (m *Manager) unregister(messageID snowflake.ID) {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.views, messageID)
}

// closeSession drops the user's session once their panel is gone.
func (m *Manager) closeSession(ctx context.Context, userID snowflake.ID) {
	if m.sessions != nil {
		m.sessions.CloseSession(ctx, userID)
	}
}
