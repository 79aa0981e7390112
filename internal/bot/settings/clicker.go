package settings

import (
	"context"
	"fmt"
	"sync"

	"github.com/disgoorg/disgo/discord"

	"github.com/arthurlockman/FixMediaBot/internal/bot/constants"
)

// Clicker is a simple click counter used to exercise the panel machinery.
// Its state lives only as long as the panel.
type Clicker struct {
	mu      sync.Mutex
	counter int
}

// NewClicker creates a clicker setting with a zeroed counter.
func NewClicker() *Clicker {
	return &Clicker{}
}

func (c *Clicker) ID() string          { return constants.ClickerSettingID }
func (c *Clicker) Name() string        { return "Clicker" }
func (c *Clicker) Description() string { return "A simple clicker game" }
func (c *Clicker) Emoji() string       { return "👆" }

// Counter returns the number of times the clicker has been activated.
func (c *Clicker) Counter() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.counter
}

// BuildEmbed shows the click total once the user has clicked at least once.
func (c *Clicker) BuildEmbed(_ context.Context) discord.Embed {
	c.mu.Lock()
	counter := c.counter
	c.mu.Unlock()

	description := c.Description()
	if counter > 0 {
		description += fmt.Sprintf("\n**You clicked %d times**", counter)
	}

	return baseEmbed(c, description)
}

func (c *Clicker) BuildOption(selected bool) discord.StringSelectMenuOption {
	return baseOption(c, selected)
}

func (c *Clicker) BuildActions() []discord.InteractiveComponent {
	c.mu.Lock()
	counter := c.counter
	c.mu.Unlock()

	return []discord.InteractiveComponent{
		discord.NewPrimaryButton(fmt.Sprintf("%s (%d)", c.Name(), counter), c.ID()),
	}
}

// Activate increments the counter.
func (c *Clicker) Activate(_ context.Context, _ string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.counter++
	return nil
}
