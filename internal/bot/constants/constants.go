package constants

import "time"

const (
	// Commands.
	SettingsCommandName = "settings"
	ChannelOptionName   = "channel"

	// Settings panel.
	SettingSelectMenuCustomID = "setting_select"
	ClickerSettingID          = "clicker"
	ToggleSettingID           = "toggle"
	FixEmbedsSettingID        = "fix_embeds"

	DefaultEmbedColor = 0x312D2B

	// CleanupDelay is how long a settings panel stays up without
	// interaction before the bot deletes it.
	CleanupDelay = 180 * time.Second

	// Session keys.
	SessionKeyMessageID       = "messageID"
	SessionKeySelectedSetting = "selectedSetting"
)
