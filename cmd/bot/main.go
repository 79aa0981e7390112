package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"

	"github.com/arthurlockman/FixMediaBot/internal/bot"
	"github.com/arthurlockman/FixMediaBot/internal/setup"
)

// BotLogDir specifies where bot log files are stored.
const BotLogDir = "logs/bot_logs"

func main() {
	if err := run(); err != nil {
		log.Printf("Error: %v", err)
		os.Exit(1)
	}
}

func run() error {
	app := &cli.Command{
		Name:  "fixmediabot",
		Usage: "Discord bot that fixes social media embeds",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to the config file (overrides the search paths)",
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			// Initialize application with required dependencies
			app, err := setup.InitializeApp(ctx, BotLogDir, c.String("config"))
			if err != nil {
				return fmt.Errorf("failed to initialize application: %w", err)
			}
			defer app.Cleanup()

			// Create bot instance
			discordBot, err := bot.New(app.Config, app.DB, app.RedisManager, app.Logger)
			if err != nil {
				return fmt.Errorf("failed to create bot: %w", err)
			}

			// Start the bot and connect to Discord
			if err := discordBot.Start(ctx); err != nil {
				return fmt.Errorf("failed to start bot: %w", err)
			}

			log.Println("Bot has been started. Waiting for interrupt signal to gracefully shutdown...")

			// Wait for interrupt signal to gracefully shutdown the bot
			// This ensures all pending events are processed before closing
			sc := make(chan os.Signal, 1)
			signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
			<-sc

			// Cleanly close down the Discord session
			discordBot.Close(ctx)
			return nil
		},
	}

	return app.Run(context.Background(), os.Args)
}
