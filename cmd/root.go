package cmd

import "github.com/spf13/cobra"

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "wab",
		Short:         "wab: article dispenser with a per-user cabbage ledger",
		Long:          "wab dispenses random articles from content pools, tracks cabbage and article counts per user, and runs the title shop and leaderboards over the shared ledger.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	app, err := wireApp()
	if err != nil {
		rootCmd.RunE = func(_ *cobra.Command, _ []string) error {
			return err
		}
		return rootCmd
	}

	rootCmd.AddCommand(
		newVersionCmd(),
		newGiveCmd(app),
		newProfileCmd(app),
		newShopCmd(app),
		newTopCmd(app),
		newInfoCmd(),
		newBackupCmd(app),
	)

	return rootCmd
}
