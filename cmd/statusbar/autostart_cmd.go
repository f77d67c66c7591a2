package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/kotet/tmux-status-bar/internal/autostart"
)

func newAutostartCmd(flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "autostart",
		Short: "Manage the per-user service that starts the daemon at login",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "install",
			Short: "Install and start the service",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				m, err := autostart.New()
				if err != nil {
					return err
				}
				execPath, err := os.Executable()
				if err != nil {
					return fmt.Errorf("resolving executable path: %w", err)
				}
				serviceArgs, err := serviceArgs(flags)
				if err != nil {
					return err
				}
				if err := m.Install(execPath, serviceArgs); err != nil {
					return err
				}
				cmd.Printf("Installed %s (%s)\n", m.ServiceName(), m.Path())
				return nil
			},
		},
		&cobra.Command{
			Use:   "uninstall",
			Short: "Stop and remove the service",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				m, err := autostart.New()
				if err != nil {
					return err
				}
				if err := m.Uninstall(); err != nil {
					return err
				}
				cmd.Printf("Removed %s\n", m.ServiceName())
				return nil
			},
		},
		&cobra.Command{
			Use:   "status",
			Short: "Report whether the service is installed",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				m, err := autostart.New()
				if err != nil {
					return err
				}
				installed, err := m.IsInstalled()
				if err != nil {
					return err
				}
				if installed {
					cmd.Printf("%s: installed (%s)\n", m.ServiceName(), m.Path())
				} else {
					cmd.Printf("%s: not installed\n", m.ServiceName())
				}
				return nil
			},
		},
	)
	return cmd
}

// serviceArgs carries the persistent flags into the service command line.
func serviceArgs(flags *globalFlags) ([]string, error) {
	args := []string{"serve"}
	if flags.configPath != "" {
		abs, err := filepath.Abs(flags.configPath)
		if err != nil {
			return nil, fmt.Errorf("resolving config path: %w", err)
		}
		args = append(args, "--config", abs)
	}
	if flags.socket != "" {
		args = append(args, "--socket", flags.socket)
	}
	if flags.logLevel != "" {
		args = append(args, "--log-level", flags.logLevel)
	}
	return args, nil
}
