package cli

import (
	"github.com/spf13/cobra"
)

// NewRootCmd builds the pokequiz command tree.
func NewRootCmd() *cobra.Command {
	var configDir string

	cmd := &cobra.Command{
		Use:   "pokequiz",
		Short: "Who's that Pokémon? trivia game",
		Long: `Pokequiz shows a Pokémon picture and a few names and asks the player
to pick the right one. Games can be played over a JSON HTTP API or in Telegram.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVarP(&configDir, "config", "c", "./config", "Directory containing config.yaml")

	cmd.AddCommand(
		newServeCmd(&configDir),
		newBotCmd(&configDir),
		newQuestionCmd(&configDir),
	)

	return cmd
}
