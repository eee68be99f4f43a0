package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/KPSTVLD/warrant-articles-bot/internal/adapters/render/views"
	"github.com/KPSTVLD/warrant-articles-bot/internal/domain"
	"github.com/spf13/cobra"
)

func newShopCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "shop",
		Short: "Browse and buy titles",
	}

	cmd.AddCommand(
		newShopListCmd(app),
		newShopBuyCmd(app),
	)

	return cmd
}

func newShopListCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List purchasable titles",
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), views.Shop(app.shop.Listings()))
			return nil
		},
	}
}

func newShopBuyCmd(app *app) *cobra.Command {
	var userID int64

	cmd := &cobra.Command{
		Use:   "buy <title>",
		Short: "Buy a title and equip it",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			// Title names may contain spaces.
			title := strings.Join(args, " ")

			result, err := app.shop.Purchase(cmd.Context(), domain.UserID(userID), title)
			if err != nil {
				switch {
				case errors.Is(err, domain.ErrTitleNotFound):
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), views.Failure(fmt.Sprintf("No such title %q.", title)))
					return nil
				case errors.Is(err, domain.ErrInsufficientFunds):
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), views.Failure("Not enough cabbage."))
					return nil
				}
				return err
			}

			_, _ = fmt.Fprintln(cmd.OutOrStdout(), views.Purchase(result))
			return nil
		},
	}

	cmd.Flags().Int64Var(&userID, "user", 0, "user identifier")
	_ = cmd.MarkFlagRequired("user")

	return cmd
}
