package cli

import (
	"encoding/json"

	"github.com/spf13/cobra"
)

func newQuestionCmd(configDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "question",
		Short: "Fetch one random question and print it as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(*configDir)
			if err != nil {
				return err
			}
			defer a.close()

			q, err := a.quiz.RandomQuestion(cmd.Context())
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(q)
		},
	}
}
