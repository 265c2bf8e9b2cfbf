package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"pagewatch/internal/preflight"
)

func newCheckCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Check the target page, state location, and destinations without recording anything",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)
			lines := renderSectionHeader("pagewatch check", colorize)
			if ctx.configSeen {
				lines = append(lines, renderStatusLine("Config", statusOK, ctx.configPath, colorize))
			} else {
				lines = append(lines, renderStatusLine("Config", statusInfo, "defaults (no file at "+ctx.configPath+")", colorize))
			}

			results := preflight.RunAll(runContext(cmd.Context()), cfg, logger)
			for _, r := range results {
				kind := statusOK
				if !r.Passed {
					kind = statusError
				}
				lines = append(lines, renderStatusLine(r.Name, kind, r.Detail, colorize))
			}
			fmt.Fprintln(out, strings.Join(lines, "\n"))

			if failed := preflight.Failed(results); failed > 0 {
				return fmt.Errorf("%d of %d checks failed", failed, len(results))
			}
			return nil
		},
	}
}
