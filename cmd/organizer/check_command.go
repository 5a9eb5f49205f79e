package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"organizer/internal/config"
	"organizer/internal/preflight"
)

func newCheckCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "check [DIR]",
		Short: "Check settings, rules, log paths, and folder access",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			var target string
			if len(args) > 0 {
				if target, err = config.ExpandPath(strings.TrimSpace(args[0])); err != nil {
					return fmt.Errorf("resolve folder: %w", err)
				}
			}

			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)
			lines := renderSectionHeader("Organizer", colorize)

			settingsDetail := ctx.configPath
			if !ctx.configSeen {
				settingsDetail += " (not found, using defaults)"
			}
			lines = append(lines, renderStatusLine("Settings", statusOK, settingsDetail, colorize))
			lines = append(lines, renderStatusLine("Move history", statusInfo, "enabled: "+yesNo(cfg.Organizer.History), colorize))

			results := preflight.RunAll(preflight.Inputs{
				Config:     cfg,
				RulesFile:  ctx.rulesOverride(),
				ProgramDir: config.ProgramDir(),
				WorkDir:    workingDir(),
				Target:     target,
			})
			for _, result := range results {
				kind := statusOK
				if !result.Passed {
					kind = statusError
				}
				lines = append(lines, renderStatusLine(result.Name, kind, result.Detail, colorize))
			}
			fmt.Fprintln(out, strings.Join(lines, "\n"))

			if preflight.Failed(results) {
				return &reportedError{err: errors.New("one or more checks failed")}
			}
			return nil
		},
	}
}
