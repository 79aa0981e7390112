package utils

import (
	"fmt"
	"time"

	"github.com/disgoorg/disgo/discord"

	"github.com/arthurlockman/FixMediaBot/internal/bot/interfaces"
)

// GetTimestampedSubtext returns a timestamped subtext message.
func GetTimestampedSubtext(message string) string {
	if message != "" {
		return fmt.Sprintf("-# `%s` <t:%d:R>", message, time.Now().Unix())
	}
	return ""
}

// RespondWithError replaces the interaction response with an error message,
// clearing any embeds and components. Used when an unrecoverable error occurs
// during interaction handling.
func RespondWithError(event interfaces.CommonEvent, message string) {
	messageUpdate := discord.NewMessageUpdateBuilder().
		SetContent(GetTimestampedSubtext("Fatal error: " + message)).
		ClearEmbeds().
		ClearContainerComponents().
		Build()

	_, _ = event.Client().Rest().UpdateInteractionResponse(event.ApplicationID(), event.Token(), messageUpdate)
}
