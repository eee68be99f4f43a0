package cmd

import (
	"fmt"

	"github.com/KPSTVLD/warrant-articles-bot/internal/adapters/render/views"
	"github.com/KPSTVLD/warrant-articles-bot/internal/domain"
	"github.com/spf13/cobra"
)

func newProfileCmd(app *app) *cobra.Command {
	var userID int64

	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show a user's balance, article count, and title",
		RunE: func(cmd *cobra.Command, _ []string) error {
			account, err := app.query.Profile(cmd.Context(), domain.UserID(userID))
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintln(cmd.OutOrStdout(), views.Profile(account))
			return nil
		},
	}

	cmd.Flags().Int64Var(&userID, "user", 0, "user identifier")
	_ = cmd.MarkFlagRequired("user")

	return cmd
}
