package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/KPSTVLD/warrant-articles-bot/internal/adapters/render/views"
	"github.com/KPSTVLD/warrant-articles-bot/internal/application"
	"github.com/KPSTVLD/warrant-articles-bot/internal/domain"
	"github.com/spf13/cobra"
)

func newGiveCmd(app *app) *cobra.Command {
	var userID int64
	var plain bool

	cmd := &cobra.Command{
		Use:   "give <pool>",
		Short: "Dispense a random article from a pool and grant the reward",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			poolName := args[0]

			var result application.DispenseResult
			dispense := func(ctx context.Context) error {
				var err error
				result, err = app.dispense.Dispense(ctx, domain.UserID(userID), poolName)
				return err
			}

			var err error
			if plain {
				err = dispense(cmd.Context())
			} else {
				err = runDispenseSpinner(cmd.Context(), cmd.OutOrStdout(), dispense)
			}
			if err != nil {
				switch {
				case errors.Is(err, domain.ErrPoolNotFound):
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), views.Failure(fmt.Sprintf("Unknown pool %q.", poolName)))
					return nil
				case errors.Is(err, domain.ErrPoolEmpty):
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), views.Failure("No content available."))
					return nil
				}
				return err
			}

			_, _ = fmt.Fprintln(cmd.OutOrStdout(), views.Dispense(result))
			return nil
		},
	}

	cmd.Flags().Int64Var(&userID, "user", 0, "user identifier")
	cmd.Flags().BoolVar(&plain, "plain", false, "print without the spinner")
	_ = cmd.MarkFlagRequired("user")

	return cmd
}
