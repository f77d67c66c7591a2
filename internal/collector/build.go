package collector

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kotet/tmux-status-bar/internal/platform"
)

// Spec names one collector and its refresh interval.
type Spec struct {
	Name     string
	Interval time.Duration
}

// Settings holds the collector parameters other than intervals.
type Settings struct {
	Placeholder   string
	Battery       string
	CPU           int
	ClockFormat   string
	Location      *time.Location
	NetworkIgnore []string
}

// DefaultSpecs returns the standard render order and intervals.
func DefaultSpecs() []Spec {
	return []Spec{
		{Name: NameNetwork, Interval: 5 * time.Second},
		{Name: NameLoadAvg, Interval: 10 * time.Second},
		{Name: NameCPUFreq, Interval: 2 * time.Second},
		{Name: NameMemory, Interval: 5 * time.Second},
		{Name: NameSwap, Interval: 5 * time.Second},
		{Name: NameBattery, Interval: 10 * time.Second},
		{Name: NameClock, Interval: time.Second},
	}
}

// New creates the collector named by spec, reading from p.
func New(spec Spec, p platform.Platform, s Settings, logger *zap.Logger) (Collector, error) {
	opts := Options{Interval: spec.Interval, Placeholder: s.Placeholder}
	switch spec.Name {
	case NameNetwork:
		return NewNetwork(p, s.NetworkIgnore, opts, logger), nil
	case NameLoadAvg:
		return NewLoadAvg(p, opts, logger), nil
	case NameCPUFreq:
		return NewCPUFreq(p, s.CPU, opts, logger), nil
	case NameMemory:
		return NewMemory(p, opts, logger), nil
	case NameSwap:
		return NewSwap(p, opts, logger), nil
	case NameBattery:
		return NewBattery(p, s.Battery, opts, logger), nil
	case NameClock:
		return NewClock(s.ClockFormat, s.Location, opts, logger), nil
	default:
		return nil, fmt.Errorf("unknown collector %q", spec.Name)
	}
}

// Build creates a registry holding one collector per spec, in spec order.
func Build(specs []Spec, p platform.Platform, s Settings, logger *zap.Logger) (*Registry, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	registry := NewRegistry(logger)
	for _, spec := range specs {
		c, err := New(spec, p, s, logger)
		if err != nil {
			return nil, err
		}
		registry.Register(c)
	}
	return registry, nil
}
