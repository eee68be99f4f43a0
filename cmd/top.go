package cmd

import (
	"fmt"

	"github.com/KPSTVLD/warrant-articles-bot/internal/adapters/render/views"
	"github.com/KPSTVLD/warrant-articles-bot/internal/application"
	"github.com/spf13/cobra"
)

func newTopCmd(app *app) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "top <balance|articles>",
		Short: "Show the leaderboard for a metric",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			metric := application.Metric(args[0])

			entries, err := app.query.Top(cmd.Context(), metric, limit)
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintln(cmd.OutOrStdout(), views.Top(metric, entries))
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", application.DefaultLeaderboardSize, "maximum entries to show")

	return cmd
}
