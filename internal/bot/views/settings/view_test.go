package settings_test

import (
	"context"
	"testing"
	"time"

	"github.com/disgoorg/disgo/discord"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/arthurlockman/FixMediaBot/internal/bot/constants"
	"github.com/arthurlockman/FixMediaBot/internal/bot/core/session"
	botsettings "github.com/arthurlockman/FixMediaBot/internal/bot/settings"
	settingsview "github.com/arthurlockman/FixMediaBot/internal/bot/views/settings"
)

func newTestView(t *testing.T) *settingsview.View {
	t.Helper()

	registry := botsettings.NewRegistry(
		botsettings.NewClicker(),
		botsettings.NewToggle(),
	)
	return settingsview.NewView(registry, nil, nil, constants.CleanupDelay, zap.NewNop())
}

// rows unpacks the action rows of a built panel message.
func rows(t *testing.T, update discord.MessageUpdate) []discord.ActionRowComponent {
	t.Helper()

	require.NotNil(t, update.Components)

	actionRows := make([]discord.ActionRowComponent, 0, len(*update.Components))
	for _, component := range *update.Components {
		row, ok := component.(discord.ActionRowComponent)
		require.True(t, ok, "expected only action rows")
		actionRows = append(actionRows, row)
	}

	return actionRows
}

func selectMenu(t *testing.T, row discord.ActionRowComponent) discord.StringSelectMenuComponent {
	t.Helper()

	require.Len(t, row, 1)
	menu, ok := row[0].(discord.StringSelectMenuComponent)
	require.True(t, ok, "expected a string select menu")
	return menu
}

func TestBuildOverviewShowsOnlySelectMenu(t *testing.T) {
	t.Parallel()

	view := newTestView(t)
	update := view.Build(context.Background()).Build()

	require.NotNil(t, update.Embeds)
	require.Len(t, *update.Embeds, 1)
	assert.Equal(t, "Settings", (*update.Embeds)[0].Title)

	actionRows := rows(t, update)
	require.Len(t, actionRows, 1)

	menu := selectMenu(t, actionRows[0])
	assert.Equal(t, constants.SettingSelectMenuCustomID, menu.CustomID)
	require.Len(t, menu.Options, 2)
	for _, option := range menu.Options {
		assert.False(t, option.Default, "nothing is selected on the overview")
	}
}

func TestSelectYieldsThatSettingsEmbedAndControls(t *testing.T) {
	t.Parallel()

	view := newTestView(t)
	require.True(t, view.Select(constants.ToggleSettingID))
	assert.Equal(t, constants.ToggleSettingID, view.Selected())

	update := view.Build(context.Background()).Build()

	require.NotNil(t, update.Embeds)
	assert.Contains(t, (*update.Embeds)[0].Title, "Toggle")

	actionRows := rows(t, update)
	require.Len(t, actionRows, 2)

	// First row holds the selected setting's controls
	require.Len(t, actionRows[0], 1)
	button, ok := actionRows[0][0].(discord.ButtonComponent)
	require.True(t, ok)
	assert.Equal(t, constants.ToggleSettingID, button.CustomID)

	// Select menu marks the active setting as default
	menu := selectMenu(t, actionRows[1])
	for _, option := range menu.Options {
		assert.Equal(t, option.Value == constants.ToggleSettingID, option.Default)
	}
}

func TestSelectSwitchesActiveSetting(t *testing.T) {
	t.Parallel()

	view := newTestView(t)
	require.True(t, view.Select(constants.ToggleSettingID))
	require.True(t, view.Select(constants.ClickerSettingID))

	update := view.Build(context.Background()).Build()
	assert.Contains(t, (*update.Embeds)[0].Title, "Clicker")
}

func TestSelectRejectsUnknownID(t *testing.T) {
	t.Parallel()

	view := newTestView(t)
	require.True(t, view.Select(constants.ToggleSettingID))

	assert.False(t, view.Select("bogus"))
	assert.Equal(t, constants.ToggleSettingID, view.Selected(), "selection is unchanged")
}

func TestBuildResetsMessageContent(t *testing.T) {
	t.Parallel()

	view := newTestView(t)
	update := view.Build(context.Background()).Build()

	// Interim content shown while an interaction was processed must not
	// survive the rebuild
	require.NotNil(t, update.Content)
	assert.Empty(t, *update.Content)

	require.True(t, view.Select(constants.ClickerSettingID))
	update = view.Build(context.Background()).Build()
	require.NotNil(t, update.Content)
	assert.Empty(t, *update.Content)
}

func newSessionWithSelection(selected string) *session.Session {
	return session.NewSession(nil, "session:1", time.Minute, map[string]any{
		constants.SessionKeySelectedSetting: selected,
	}, zap.NewNop())
}

func TestNewViewRestoresPreviousSelection(t *testing.T) {
	t.Parallel()

	registry := botsettings.NewRegistry(
		botsettings.NewClicker(),
		botsettings.NewToggle(),
	)
	sess := newSessionWithSelection(constants.ToggleSettingID)

	view := settingsview.NewView(registry, sess, nil, constants.CleanupDelay, zap.NewNop())
	assert.Equal(t, constants.ToggleSettingID, view.Selected())
}

func TestNewViewIgnoresUnknownStoredSelection(t *testing.T) {
	t.Parallel()

	registry := botsettings.NewRegistry(botsettings.NewClicker())
	sess := newSessionWithSelection("removed_setting")

	view := settingsview.NewView(registry, sess, nil, constants.CleanupDelay, zap.NewNop())
	assert.Empty(t, view.Selected(), "unknown selections start at the overview")
}
