// Package main is the entry point for statusbar, a daemon that serves a tmux
// status line over a Unix socket, and its companion commands.
package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/kotet/tmux-status-bar/internal/config"
)

// version is set at build time via -ldflags.
var version = "dev"

// globalFlags are the persistent flags shared by every subcommand.
type globalFlags struct {
	configPath string
	socket     string
	logLevel   string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}

	root := &cobra.Command{
		Use:           "statusbar",
		Short:         "Serve a system status line for tmux over a Unix socket",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), flags)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&flags.configPath, "config", "", "Path to configuration file (default: search standard locations)")
	pf.StringVar(&flags.socket, "socket", "", "Unix socket path (overrides config)")
	pf.StringVar(&flags.logLevel, "log-level", "", "Log level: debug, info, warn, error (overrides config)")

	root.AddCommand(
		newServeCmd(flags),
		newQueryCmd(flags),
		newConfigCmd(flags),
		newAutostartCmd(flags),
		newVersionCmd(),
	)
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Printf("statusbar %s\n", version)
		},
	}
}

// loadConfig resolves the layered configuration for the given flags.
func loadConfig(flags *globalFlags) (*config.Config, error) {
	cli := config.CLIOverrides{Socket: flags.socket, LogLevel: flags.logLevel}
	if flags.configPath != "" {
		return config.LoadLayered(cli, embeddedConfig, flags.configPath)
	}
	return config.LoadLayered(cli, embeddedConfig)
}
