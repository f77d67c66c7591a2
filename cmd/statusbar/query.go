package main

import (
	"context"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/kotet/tmux-status-bar/internal/server"
)

// newQueryCmd returns the client side used from tmux:
//
//	set -g status-right '#(statusbar query)'
func newQueryCmd(flags *globalFlags) *cobra.Command {
	var (
		timeout time.Duration
		verbose bool
	)

	cmd := &cobra.Command{
		Use:   "query",
		Short: "Print the current status line from a running daemon",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(flags)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			if timeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, timeout)
				defer cancel()
			}

			start := time.Now()
			line, err := server.Query(ctx, cfg.Server.Socket)
			if err != nil {
				return err
			}
			if verbose {
				cmd.PrintErrf("%s: %s in %s\n", cfg.Server.Socket,
					humanize.Bytes(uint64(len(line))), time.Since(start).Round(time.Microsecond))
			}
			_, err = cmd.OutOrStdout().Write(line)
			return err
		},
	}
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Report the reply size and latency on stderr")
	cmd.Flags().DurationVar(&timeout, "timeout", 2*time.Second, "Give up after this long (0 waits forever)")
	return cmd
}
