package collector

import (
	"context"
	"errors"
	"time"

	"github.com/kotet/tmux-status-bar/internal/models"
)

var errFake = errors.New("fake read failure")

// fakePlatform implements every reader interface with canned values and
// counts how often each was called.
type fakePlatform struct {
	memory   models.MemoryUsage
	swap     models.SwapUsage
	load     float64
	freqKHz  uint64
	battery  models.BatteryState
	counters []models.InterfaceCounters
	err      error

	calls map[string]int
}

func newFakePlatform() *fakePlatform {
	return &fakePlatform{calls: make(map[string]int)}
}

func (f *fakePlatform) Name() string { return "fake" }

func (f *fakePlatform) Memory(context.Context) (models.MemoryUsage, error) {
	f.calls["memory"]++
	return f.memory, f.err
}

func (f *fakePlatform) Swap(context.Context) (models.SwapUsage, error) {
	f.calls["swap"]++
	return f.swap, f.err
}

func (f *fakePlatform) LoadAverage(context.Context) (float64, error) {
	f.calls["loadavg"]++
	return f.load, f.err
}

func (f *fakePlatform) CPUFrequency(context.Context, int) (uint64, error) {
	f.calls["cpufreq"]++
	return f.freqKHz, f.err
}

func (f *fakePlatform) Battery(context.Context, string) (models.BatteryState, error) {
	f.calls["battery"]++
	return f.battery, f.err
}

func (f *fakePlatform) InterfaceCounters(context.Context) ([]models.InterfaceCounters, error) {
	f.calls["network"]++
	if f.err != nil {
		return nil, f.err
	}
	result := make([]models.InterfaceCounters, len(f.counters))
	copy(result, f.counters)
	return result, nil
}

func (f *fakePlatform) setCounters(name string, rx, tx uint64) {
	for i := range f.counters {
		if f.counters[i].Name == name {
			f.counters[i].Counters = models.Counters{Rx: rx, Tx: tx}
			return
		}
	}
	f.counters = append(f.counters, models.InterfaceCounters{
		Name:     name,
		Counters: models.Counters{Rx: rx, Tx: tx},
	})
}

// stubCollector always renders a fixed string and records its updates.
type stubCollector struct {
	name    string
	out     string
	updates []time.Time
}

func (s *stubCollector) Name() string { return s.name }

func (s *stubCollector) Update(_ context.Context, now time.Time) {
	s.updates = append(s.updates, now)
}

func (s *stubCollector) Rendered() []byte { return []byte(s.out) }
