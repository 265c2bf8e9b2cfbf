package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"pagewatch/internal/config"
	"pagewatch/internal/notifications"
)

func newConfigCommand(ctx *commandContext) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration utilities",
	}

	configCmd.AddCommand(newConfigValidateCommand(ctx))
	configCmd.AddCommand(newConfigInitCommand())
	configCmd.AddCommand(newConfigShowCommand(ctx))

	return configCmd
}

func newConfigInitCommand() *cobra.Command {
	var targetPath string
	var overwrite bool

	cmd := &cobra.Command{
		Use:         "init",
		Short:       "Create a sample configuration file",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			target := strings.TrimSpace(targetPath)
			if target == "" {
				defaultPath, err := config.DefaultConfigPath()
				if err != nil {
					return fmt.Errorf("determine default config path: %w", err)
				}
				target = defaultPath
			} else {
				expanded, err := config.ExpandPath(target)
				if err != nil {
					return fmt.Errorf("resolve config path: %w", err)
				}
				target = expanded
			}

			dir := filepath.Dir(target)
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("create config directory %q: %w", dir, err)
			}

			if !overwrite {
				if _, err := os.Stat(target); err == nil {
					return fmt.Errorf("config file already exists at %s (use --overwrite to replace it)", target)
				} else if !os.IsNotExist(err) {
					return fmt.Errorf("check config path: %w", err)
				}
			}

			if err := config.CreateSample(target); err != nil {
				return fmt.Errorf("create sample config: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Wrote sample configuration to %s\n", target)
			fmt.Fprintln(out, "Edit notifications.destinations (or export PAGEWATCH_DESTINATIONS) to receive alerts.")
			return nil
		},
	}

	cmd.Flags().StringVarP(&targetPath, "path", "p", "", "Destination for the configuration file")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Overwrite existing configuration if present")
	return cmd
}

func newConfigValidateCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if _, err := notifications.NewService(cfg, nil); err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Config path: %s\n", ctx.configPath)
			if !ctx.configSeen {
				fmt.Fprintln(out, "Config file did not exist; defaults were used")
			}
			fmt.Fprintln(out, "Configuration valid")
			return nil
		},
	}
}

func newConfigShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			svc, err := notifications.NewService(cfg, nil)
			if err != nil {
				return err
			}
			destinations := strings.Join(svc.Destinations(), "\n")
			if destinations == "" {
				destinations = "(none)"
			}
			source := ctx.configPath
			if !ctx.configSeen {
				source += " (not found, defaults)"
			}
			rows := [][2]string{
				{"Config file", source},
				{"Target URL", cfg.Target.URL},
				{"Locator", cfg.Target.Locator},
				{"Field", cfg.FieldLabel()},
				{"Fetch timeout", cfg.FetchTimeout().String()},
				{"State backend", cfg.State.Backend},
				{"State path", cfg.State.Path},
				{"Destinations", destinations},
				{"Title prefix", cfg.Notifications.TitlePrefix},
				{"Notify on initial", yesNo(cfg.Notifications.OnInitial)},
				{"Notify on error", yesNo(cfg.Notifications.OnError)},
				{"Heartbeat", yesNo(cfg.Notifications.Heartbeat)},
				{"Request timeout", strconv.Itoa(cfg.Notifications.RequestTimeout) + "s"},
				{"Log format", cfg.Logging.Format},
				{"Log level", cfg.Logging.Level},
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderKeyValues("Configuration", rows))
			return nil
		},
	}
}
