package platform

import (
	"context"
	"fmt"

	"github.com/shirou/gopsutil/v3/common"
	"github.com/shirou/gopsutil/v3/load"
	"github.com/shirou/gopsutil/v3/mem"
	"github.com/shirou/gopsutil/v3/net"
	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/kotet/tmux-status-bar/internal/models"
)

// Host implements Platform for the machine the daemon runs on.
type Host struct {
	opts   Options
	fs     afero.Fs
	logger *zap.Logger
}

var _ Platform = (*Host)(nil)

// NewHost creates a Host. A nil fs reads the real filesystem; a nil logger
// disables logging.
func NewHost(opts Options, fs afero.Fs, logger *zap.Logger) *Host {
	def := DefaultOptions()
	if opts.ProcRoot == "" {
		opts.ProcRoot = def.ProcRoot
	}
	if opts.SysRoot == "" {
		opts.SysRoot = def.SysRoot
	}
	if opts.NetworkSource == "" {
		opts.NetworkSource = def.NetworkSource
	}
	if fs == nil {
		fs = afero.NewOsFs()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Host{
		opts:   opts,
		fs:     fs,
		logger: logger.Named("platform"),
	}
}

// Name returns the platform identifier.
func (h *Host) Name() string { return "host" }

// withEnv points gopsutil at the configured procfs/sysfs roots.
func (h *Host) withEnv(ctx context.Context) context.Context {
	return context.WithValue(ctx, common.EnvKey, common.EnvMap{
		common.HostProcEnvKey: h.opts.ProcRoot,
		common.HostSysEnvKey:  h.opts.SysRoot,
	})
}

// Memory reads total and available memory.
func (h *Host) Memory(ctx context.Context) (models.MemoryUsage, error) {
	v, err := mem.VirtualMemoryWithContext(h.withEnv(ctx))
	if err != nil {
		return models.MemoryUsage{}, fmt.Errorf("reading memory: %w", err)
	}
	if v.Total == 0 {
		return models.MemoryUsage{}, fmt.Errorf("reading memory: %w", ErrNoData)
	}
	return models.MemoryUsage{Total: v.Total, Available: v.Available}, nil
}

// Swap reads total and free swap.
func (h *Host) Swap(ctx context.Context) (models.SwapUsage, error) {
	v, err := mem.SwapMemoryWithContext(h.withEnv(ctx))
	if err != nil {
		return models.SwapUsage{}, fmt.Errorf("reading swap: %w", err)
	}
	return models.SwapUsage{Total: v.Total, Free: v.Free}, nil
}

// LoadAverage reads the 1-minute load average.
func (h *Host) LoadAverage(ctx context.Context) (float64, error) {
	avg, err := load.AvgWithContext(h.withEnv(ctx))
	if err != nil {
		return 0, fmt.Errorf("reading load average: %w", err)
	}
	return avg.Load1, nil
}

// InterfaceCounters reads per-interface byte counters from the configured source.
func (h *Host) InterfaceCounters(ctx context.Context) ([]models.InterfaceCounters, error) {
	switch h.opts.NetworkSource {
	case NetworkSourceProcfs:
		return h.procfsCounters(ctx)
	case NetworkSourceSysfs:
		return h.sysfsCounters()
	default:
		return nil, fmt.Errorf("unknown network source %q", h.opts.NetworkSource)
	}
}

// procfsCounters parses <proc>/net/dev via gopsutil.
func (h *Host) procfsCounters(ctx context.Context) ([]models.InterfaceCounters, error) {
	stats, err := net.IOCountersWithContext(h.withEnv(ctx), true)
	if err != nil {
		return nil, fmt.Errorf("reading net/dev: %w", err)
	}
	result := make([]models.InterfaceCounters, 0, len(stats))
	for _, s := range stats {
		result = append(result, models.InterfaceCounters{
			Name:     s.Name,
			Counters: models.Counters{Rx: s.BytesRecv, Tx: s.BytesSent},
		})
	}
	return result, nil
}
