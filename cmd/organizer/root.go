package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	var configFlag string
	var rulesFlag string

	ctx := newCommandContext(&configFlag, &rulesFlag)

	rootCmd := &cobra.Command{
		Use:   "organizer [DIR]",
		Short: "Sort a folder's files into category subfolders by extension",
		Long: `Sort the files of one folder into category subfolders.

Categories and their extensions come from config.json, looked up next to the
program and then in the working directory. Each move is appended to the audit
log. Without a DIR argument a folder browser opens when attached to a terminal.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if shouldSkipConfig(cmd) {
				return nil
			}
			_, err := ctx.ensureConfig()
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOrganize(cmd, ctx, args)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Settings file path")
	rootCmd.PersistentFlags().StringVarP(&rulesFlag, "rules", "r", "", "Category rules file (skips config.json discovery)")

	rootCmd.AddCommand(newOrganizeCommand(ctx))
	rootCmd.AddCommand(newRulesCommand(ctx))
	rootCmd.AddCommand(newHistoryCommand(ctx))
	rootCmd.AddCommand(newLogCommand(ctx))
	rootCmd.AddCommand(newCheckCommand(ctx))
	rootCmd.AddCommand(newConfigCommand(ctx))

	return rootCmd
}
