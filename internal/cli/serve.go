package cli

import (
	"errors"
	"net/http"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/aliskhannn/pokemon-quiz-bot/internal/delivery/httpapi"
)

func newServeCmd(configDir *string) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the JSON HTTP API",
		Example: `  # Start on the configured address
  pokequiz serve

  # Start on a custom address
  pokequiz serve --addr :3000`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(*configDir)
			if err != nil {
				return err
			}
			defer a.close()

			if addr == "" {
				addr = a.cfg.HTTP.Addr
			}

			handler := httpapi.NewHandler(a.quiz, a.cfg.Quiz.DefaultQuestions, a.logger)

			g, ctx := errgroup.WithContext(cmd.Context())
			g.Go(func() error {
				return a.janitor.Start(ctx)
			})
			g.Go(func() error {
				err := handler.Serve(ctx, addr, a.cfg.HTTP.AllowedOrigins)
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return err
			})

			return g.Wait()
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Address to listen on (defaults to http.addr from config)")

	return cmd
}
