package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show the command overview",
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, _ = fmt.Fprint(cmd.OutOrStdout(), `Commands:
  give <pool> --user N     dispense an article and grant cabbage
  profile --user N         show balance, article count, and title
  shop list                list purchasable titles
  shop buy <title> --user N
  top balance|articles     show the leaderboard
  backup export|import     snapshot the ledger to/from TOML
`)
			return nil
		},
	}
}
