package settings

import (
	"context"
	"fmt"

	"github.com/disgoorg/disgo/discord"

	"github.com/arthurlockman/FixMediaBot/internal/bot/constants"
)

// Setting is one configurable option shown in a settings panel. Each setting
// renders its own embed, its entry in the select menu, and its action row
// controls, and reacts to its controls being used.
type Setting interface {
	// ID uniquely identifies the setting. It doubles as the custom ID of the
	// setting's action components.
	ID() string
	Name() string
	Description() string
	Emoji() string

	// BuildEmbed renders the detail embed shown while the setting is selected.
	BuildEmbed(ctx context.Context) discord.Embed

	// BuildOption renders the setting's entry in the panel's select menu.
	// The selected entry is marked as the menu default.
	BuildOption(selected bool) discord.StringSelectMenuOption

	// BuildActions renders the interactive controls shown while the setting
	// is selected.
	BuildActions() []discord.InteractiveComponent

	// Activate handles one of the setting's controls being used. It must only
	// mutate the setting's own state; the caller refreshes the panel afterwards.
	Activate(ctx context.Context, customID string) error
}

// baseEmbed builds the default detail embed for a setting.
func baseEmbed(s Setting, description string) discord.Embed {
	title := s.Name()
	if s.Emoji() != "" {
		title = s.Emoji() + " " + s.Name()
	}

	return discord.NewEmbedBuilder().
		SetTitle(title).
		SetDescription(description).
		SetColor(constants.DefaultEmbedColor).
		Build()
}

// baseOption builds the default select menu entry for a setting.
func baseOption(s Setting, selected bool) discord.StringSelectMenuOption {
	option := discord.NewStringSelectMenuOption(s.Name(), s.ID()).
		WithDescription(s.Description()).
		WithDefault(selected)
	if s.Emoji() != "" {
		option = option.WithEmoji(discord.ComponentEmoji{Name: s.Emoji()})
	}

	return option
}

// Registry holds the settings of one panel. Iteration order matches
// registration order, which is the display order of the select menu.
type Registry struct {
	order    []string
	settings map[string]Setting
}

// NewRegistry creates a registry from the given settings.
// Duplicate setting IDs are a programming error and panic.
func NewRegistry(settings ...Setting) *Registry {
	r := &Registry{
		settings: make(map[string]Setting, len(settings)),
	}
	for _, s := range settings {
		r.Register(s)
	}

	return r
}

// Register adds a setting to the registry.
func (r *Registry) Register(s Setting) {
	if _, exists := r.settings[s.ID()]; exists {
		panic(fmt.Sprintf("settings: duplicate setting ID %q", s.ID()))
	}

	r.order = append(r.order, s.ID())
	r.settings[s.ID()] = s
}

// Get returns the setting with the given ID.
func (r *Registry) Get(id string) (Setting, bool) {
	s, ok := r.settings[id]
	return s, ok
}

// All returns the settings in registration order.
func (r *Registry) All() []Setting {
	all := make([]Setting, 0, len(r.order))
	for _, id := range r.order {
		all = append(all, r.settings[id])
	}

	return all
}

// Len returns the number of registered settings.
func (r *Registry) Len() int {
	return len(r.order)
}
