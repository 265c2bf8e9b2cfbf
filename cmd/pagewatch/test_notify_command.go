package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"pagewatch/internal/notifications"
)

func newTestNotifyCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "test-notify",
		Short: "Send a test notification to every destination",
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
			svc, err := notifications.NewService(cfg, logger)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			destinations := svc.Destinations()
			if len(destinations) == 0 {
				fmt.Fprintln(out, "No destinations configured; notification not sent")
				return nil
			}
			event := notifications.TestEvent(cfg.Notifications.TitlePrefix, time.Now())
			if err := svc.Notify(runContext(cmd.Context()), event); err != nil {
				return err
			}
			fmt.Fprintf(out, "Test notification sent to %d destination(s)\n", len(destinations))
			return nil
		},
	}
}
