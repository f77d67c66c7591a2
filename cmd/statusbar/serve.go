package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kotet/tmux-status-bar/internal/collector"
	"github.com/kotet/tmux-status-bar/internal/config"
	"github.com/kotet/tmux-status-bar/internal/platform"
	"github.com/kotet/tmux-status-bar/internal/server"
)

func newServeCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the daemon in the foreground (default)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), flags)
		},
	}
}

func runServe(ctx context.Context, flags *globalFlags) error {
	cfg, err := loadConfig(flags)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger := initLogger(cfg)
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting statusbar",
		zap.String("version", version),
		zap.String("socket", cfg.Server.Socket),
		zap.Int("collectors", len(cfg.Collectors)),
	)

	host := platform.NewHost(platform.Options{
		ProcRoot:      cfg.Paths.Proc,
		SysRoot:       cfg.Paths.Sys,
		NetworkSource: cfg.Network.Source,
	}, nil, logger)

	registry, err := buildRegistry(cfg, host, logger)
	if err != nil {
		logger.Error("Failed to build collectors", zap.Error(err))
		return err
	}

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case sig := <-sigCh:
			logger.Info("Received shutdown signal", zap.String("signal", sig.String()))
			cancel()
		case <-ctx.Done():
		}
	}()

	srv := server.New(server.Options{
		Socket:       cfg.Server.Socket,
		SocketMode:   cfg.Server.SocketMode.FileMode,
		WriteTimeout: cfg.Server.WriteTimeout.Duration,
	}, registry, logger)

	if err := srv.ListenAndServe(ctx); err != nil {
		logger.Error("Server stopped", zap.Error(err))
		return err
	}

	logger.Info("Statusbar stopped")
	return nil
}

// buildRegistry turns the collectors section of cfg into a registry reading from p.
func buildRegistry(cfg *config.Config, p platform.Platform, logger *zap.Logger) (*collector.Registry, error) {
	specs := make([]collector.Spec, 0, len(cfg.Collectors))
	for _, c := range cfg.Collectors {
		specs = append(specs, collector.Spec{Name: c.Name, Interval: c.Interval.Duration})
	}
	settings := collector.Settings{
		Placeholder:   cfg.Render.ErrorPlaceholder,
		Battery:       cfg.Battery.Name,
		CPU:           cfg.CPUFreq.CPU,
		ClockFormat:   cfg.Clock.Format,
		Location:      time.Local,
		NetworkIgnore: cfg.Network.Ignore,
	}
	return collector.Build(specs, p, settings, logger)
}
