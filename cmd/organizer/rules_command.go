package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

func newRulesCommand(ctx *commandContext) *cobra.Command {
	rulesCmd := &cobra.Command{
		Use:   "rules",
		Short: "Inspect category rules",
	}
	rulesCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the resolved category table in match order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := ctx.loadRules()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Rules file: %s\n", loaded.Source)
			fmt.Fprintf(out, "Excluded:   %s\n", loaded.ScriptName)
			if loaded.Table.Empty() {
				fmt.Fprintln(out, "No categories defined")
				return nil
			}

			rows := make([][]string, 0, len(loaded.Table))
			for i, category := range loaded.Table {
				exts := category.SortedExtensions()
				display := "(none)"
				if len(exts) > 0 {
					display = strings.Join(exts, " ")
				}
				rows = append(rows, []string{strconv.Itoa(i + 1), category.Name, display})
			}
			fmt.Fprintln(out, renderTable([]string{"#", "Category", "Extensions"}, rows, []columnAlignment{alignRight}))
			return nil
		},
	})
	return rulesCmd
}
