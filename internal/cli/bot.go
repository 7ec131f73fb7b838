package cli

import (
	"context"
	"errors"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/aliskhannn/pokemon-quiz-bot/internal/delivery/telegram"
)

var botCommands = []tgbotapi.BotCommand{
	{Command: "start", Description: "How to play"},
	{Command: "quiz", Description: "Start a game (usage: /quiz 10)"},
	{Command: "score", Description: "Show the current score"},
	{Command: "stop", Description: "End the game"},
}

func newBotCmd(configDir *string) *cobra.Command {
	var debug bool

	cmd := &cobra.Command{
		Use:   "bot",
		Short: "Run the Telegram bot",
		Long: `Runs the Telegram bot using long polling.
The token is read from the TELEGRAM_API_TOKEN environment variable or a .env file.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(*configDir)
			if err != nil {
				return err
			}
			defer a.close()

			if err := a.cfg.RequireTelegramToken(); err != nil {
				return err
			}

			bot, err := tgbotapi.NewBotAPI(a.cfg.TelegramAPIToken)
			if err != nil {
				return fmt.Errorf("connect to telegram: %w", err)
			}
			bot.Debug = debug

			if _, err := bot.Request(tgbotapi.NewSetMyCommands(botCommands...)); err != nil {
				a.logger.Warn("failed to set bot commands", zap.Error(err))
			}

			a.logger.Info("authorized on account", zap.String("username", bot.Self.UserName))

			handler := telegram.NewHandler(bot, a.logger, a.quiz, a.cfg.Quiz.DefaultQuestions)

			g, ctx := errgroup.WithContext(cmd.Context())
			g.Go(func() error {
				return a.janitor.Start(ctx)
			})
			g.Go(func() error {
				defer bot.StopReceivingUpdates()
				return handler.Run(ctx)
			})

			if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			a.logger.Info("shutdown signal received")
			return nil
		},
	}

	cmd.Flags().BoolVar(&debug, "debug", false, "Log Telegram API traffic")

	return cmd
}
