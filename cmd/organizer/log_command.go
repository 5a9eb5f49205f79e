package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"organizer/internal/audit"
)

func newLogCommand(ctx *commandContext) *cobra.Command {
	var lines int
	var follow bool

	cmd := &cobra.Command{
		Use:   "log",
		Short: "Show recent audit log lines",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			runCtx := cmd.Context()

			result, err := audit.Tail(runCtx, cfg.Paths.AuditLog, audit.TailOptions{Offset: -1, Limit: lines})
			if err != nil {
				return err
			}
			for _, line := range result.Lines {
				fmt.Fprintln(out, line)
			}
			if !follow {
				if len(result.Lines) == 0 {
					fmt.Fprintf(out, "No moves logged in %s\n", cfg.Paths.AuditLog)
				}
				return nil
			}

			offset := result.Offset
			for {
				next, err := audit.Tail(runCtx, cfg.Paths.AuditLog, audit.TailOptions{Offset: offset, Wait: time.Minute})
				if err != nil {
					if errors.Is(err, runCtx.Err()) {
						return nil
					}
					return err
				}
				for _, line := range next.Lines {
					fmt.Fprintln(out, line)
				}
				offset = next.Offset
			}
		},
	}

	cmd.Flags().IntVarP(&lines, "lines", "n", 20, "Number of lines to show")
	cmd.Flags().BoolVarP(&follow, "follow", "f", false, "Keep printing new moves as they are logged")
	return cmd
}
