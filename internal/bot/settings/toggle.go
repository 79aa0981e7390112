package settings

import (
	"context"
	"sync"

	"github.com/disgoorg/disgo/discord"

	"github.com/arthurlockman/FixMediaBot/internal/bot/constants"
)

// Toggle is an on/off switch used to exercise the panel machinery.
// Its state lives only as long as the panel.
type Toggle struct {
	mu      sync.Mutex
	enabled bool
}

// NewToggle creates a toggle setting in the off state.
func NewToggle() *Toggle {
	return &Toggle{}
}

func (t *Toggle) ID() string          { return constants.ToggleSettingID }
func (t *Toggle) Name() string        { return "Toggle" }
func (t *Toggle) Description() string { return "Toggle the setting" }
func (t *Toggle) Emoji() string       { return "🔄" }

// Enabled returns the current toggle state.
func (t *Toggle) Enabled() bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.enabled
}

func (t *Toggle) BuildEmbed(_ context.Context) discord.Embed {
	return baseEmbed(t, t.Description())
}

func (t *Toggle) BuildOption(selected bool) discord.StringSelectMenuOption {
	return baseOption(t, selected)
}

func (t *Toggle) BuildActions() []discord.InteractiveComponent {
	if t.Enabled() {
		return []discord.InteractiveComponent{
			discord.NewSuccessButton(t.Name()+" ON", t.ID()),
		}
	}

	return []discord.InteractiveComponent{
		discord.NewDangerButton(t.Name()+" OFF", t.ID()),
	}
}

// Activate flips the toggle.
func (t *Toggle) Activate(_ context.Context, _ string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.enabled = !t.enabled
	return nil
}
