package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"pagewatch/internal/signals"
	"pagewatch/internal/statestore"
)

func newStateCommand(ctx *commandContext) *cobra.Command {
	stateCmd := &cobra.Command{
		Use:   "state",
		Short: "Inspect or reset the recorded value",
	}
	stateCmd.AddCommand(newStateShowCommand(ctx))
	stateCmd.AddCommand(newStateResetCommand(ctx))
	return stateCmd
}

func newStateShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the recorded value",
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
			store, err := statestore.Open(cfg, logger)
			if err != nil {
				return err
			}
			defer store.Close()

			sig, ok, err := store.Read(runContext(cmd.Context()))
			if err != nil {
				return err
			}
			rows := [][2]string{
				{"Location", store.Location()},
				{"Backend", cfg.State.Backend},
				{"Recorded", yesNo(ok)},
			}
			if ok {
				rows = append(rows, [2]string{"Value", sig.String()})
				rows = append(rows, [2]string{"Encoded", signals.Encode(sig)})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderKeyValues("State", rows))
			return nil
		},
	}
}

func newStateResetCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Remove the recorded value so the next run starts fresh",
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
			store, err := statestore.Open(cfg, logger)
			if err != nil {
				return err
			}
			defer store.Close()

			removed, err := store.Reset(runContext(cmd.Context()))
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if removed {
				fmt.Fprintf(out, "Removed state record at %s\n", store.Location())
			} else {
				fmt.Fprintf(out, "No state record at %s\n", store.Location())
			}
			return nil
		},
	}
}
