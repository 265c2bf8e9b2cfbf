package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"pagewatch/internal/extractor"
	"pagewatch/internal/logging"
	"pagewatch/internal/notifications"
	"pagewatch/internal/reconciler"
	"pagewatch/internal/services"
	"pagewatch/internal/statestore"
)

func newRunCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Perform one watch pass",
		Long: "Fetch the target page, compare the watched value with the recorded one,\n" +
			"record the new value, and notify when it changed. Exits non-zero when the\n" +
			"page could not be read or state could not be persisted.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			signalCtx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()
			runCtx := runContext(signalCtx)

			ext, err := extractor.New(cfg, logger)
			if err != nil {
				return err
			}
			store, err := statestore.Open(cfg, logger)
			if err != nil {
				return err
			}
			defer store.Close()
			notifier, err := notifications.NewService(cfg, logger)
			if err != nil {
				return err
			}

			res, runErr := reconciler.New(cfg, ext, store, notifier, logger).Run(runCtx)
			fmt.Fprintln(cmd.OutOrStdout(), res.Summary())

			if runErr != nil && services.IsFatal(runErr) {
				logging.WithContext(runCtx, logger).Debug("run failed",
					logging.String("error_kind", services.Kind(runErr)))
				return runErr
			}
			return nil
		},
	}
}
