// Package platform provides an OS abstraction layer for the raw readings the
// collectors render. Host is the production implementation: gopsutil covers
// what it can read portably, and sysfs files are read directly through an
// afero filesystem rooted at the configured mount points.
package platform

import (
	"context"
	"errors"

	"github.com/kotet/tmux-status-bar/internal/models"
)

// Network counter sources accepted by Options.NetworkSource.
const (
	NetworkSourceSysfs  = "sysfs"
	NetworkSourceProcfs = "procfs"
)

// ErrNoData is returned when a reading exists but carries no usable value,
// such as a zero memory total.
var ErrNoData = errors.New("no data")

// Platform reads raw system values. Implementations must not cache: every
// call reflects the current state of the system.
type Platform interface {
	// Name returns the platform identifier used in logs.
	Name() string

	// Memory returns physical memory totals.
	Memory(ctx context.Context) (models.MemoryUsage, error)

	// Swap returns swap space totals.
	Swap(ctx context.Context) (models.SwapUsage, error)

	// LoadAverage returns the 1-minute load average.
	LoadAverage(ctx context.Context) (float64, error)

	// CPUFrequency returns the current scaling frequency of the given CPU in kHz.
	CPUFrequency(ctx context.Context, cpu int) (uint64, error)

	// Battery returns the state of the named power supply (e.g. "BAT0").
	Battery(ctx context.Context, name string) (models.BatteryState, error)

	// InterfaceCounters returns cumulative byte counters for every interface
	// whose counters could be read. Interfaces that fail individually are
	// omitted rather than reported as an error.
	InterfaceCounters(ctx context.Context) ([]models.InterfaceCounters, error)
}

// Options configures a Host.
type Options struct {
	// ProcRoot is the procfs mount point, normally "/proc".
	ProcRoot string
	// SysRoot is the sysfs mount point, normally "/sys".
	SysRoot string
	// NetworkSource selects where interface counters come from:
	// NetworkSourceSysfs reads /sys/class/net/*/statistics,
	// NetworkSourceProcfs parses /proc/net/dev.
	NetworkSource string
}

// DefaultOptions returns the options for reading the running system.
func DefaultOptions() Options {
	return Options{
		ProcRoot:      "/proc",
		SysRoot:       "/sys",
		NetworkSource: NetworkSourceSysfs,
	}
}
