package cmd

import (
	"fmt"
	"time"

	"github.com/KPSTVLD/warrant-articles-bot/internal/adapters/snapshot"
	"github.com/KPSTVLD/warrant-articles-bot/internal/domain"
	"github.com/spf13/cobra"
)

func newBackupCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Export or import a TOML snapshot of the ledger",
	}

	cmd.AddCommand(
		newBackupExportCmd(app),
		newBackupImportCmd(app),
	)

	return cmd
}

func newBackupExportCmd(app *app) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write every account to a TOML snapshot",
		RunE: func(cmd *cobra.Command, _ []string) error {
			accounts, err := app.ledger.List(cmd.Context())
			if err != nil {
				return fmt.Errorf("list accounts: %w", err)
			}

			if err := snapshot.Export(out, accounts, time.Now()); err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "exported %d accounts to %s\n", len(accounts), out)
			return nil
		},
	}

	cmd.Flags().StringVar(&out, "out", "", "snapshot file to write")
	_ = cmd.MarkFlagRequired("out")

	return cmd
}

func newBackupImportCmd(app *app) *cobra.Command {
	var in string

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Restore accounts from a TOML snapshot",
		RunE: func(cmd *cobra.Command, _ []string) error {
			accounts, err := snapshot.Import(in)
			if err != nil {
				return err
			}

			for _, account := range accounts {
				restored := account
				_, err := app.ledger.Update(cmd.Context(), restored.ID, func(dst *domain.Account) error {
					dst.Balance = restored.Balance
					dst.Articles = restored.Articles
					dst.Title = restored.Title
					dst.Consumed = restored.Consumed
					return nil
				})
				if err != nil {
					return fmt.Errorf("restore account %d: %w", restored.ID, err)
				}
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "imported %d accounts from %s\n", len(accounts), in)
			return nil
		},
	}

	cmd.Flags().StringVar(&in, "in", "", "snapshot file to read")
	_ = cmd.MarkFlagRequired("in")

	return cmd
}
