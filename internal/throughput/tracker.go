// Package throughput derives per-interface transfer rates from cumulative
// byte counters sampled at irregular intervals.
package throughput

import (
	"time"

	"github.com/kotet/tmux-status-bar/internal/models"
)

// Result classifies one observation of an interface's counters.
type Result int

const (
	// Baseline means the interface had no previous entry; the reading was
	// stored and no delta is available yet.
	Baseline Result = iota
	// Regressed means at least one counter went backwards (device reset or
	// wraparound). The reading replaced the stored baseline.
	Regressed
	// Advanced means both counters are >= their previous values and Delta
	// holds the difference.
	Advanced
)

func (r Result) String() string {
	switch r {
	case Baseline:
		return "baseline"
	case Regressed:
		return "regressed"
	case Advanced:
		return "advanced"
	default:
		return "unknown"
	}
}

// Observation is what Tracker.Observe reports for one interface.
type Observation struct {
	Result Result
	Old    models.Counters
	New    models.Counters
	Delta  models.Counters
}

// Tracker keeps the last seen counters per interface name. Entries are
// inserted or replaced on every observation and never removed; an interface
// that disappears simply stops being updated.
//
// Tracker is not safe for concurrent use.
type Tracker struct {
	counters map[string]models.Counters
}

// NewTracker creates an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{counters: make(map[string]models.Counters)}
}

// Observe records c as the new baseline for name and reports how it relates
// to the previous one.
func (t *Tracker) Observe(name string, c models.Counters) Observation {
	old, ok := t.counters[name]
	t.counters[name] = c

	obs := Observation{Old: old, New: c}
	switch {
	case !ok:
		obs.Result = Baseline
	case c.Rx < old.Rx || c.Tx < old.Tx:
		obs.Result = Regressed
	default:
		obs.Result = Advanced
		obs.Delta = models.Counters{Rx: c.Rx - old.Rx, Tx: c.Tx - old.Tx}
	}
	return obs
}

// Baseline returns the stored counters for name.
func (t *Tracker) Baseline(name string) (models.Counters, bool) {
	c, ok := t.counters[name]
	return c, ok
}

// Len returns the number of interfaces ever observed.
func (t *Tracker) Len() int { return len(t.counters) }

// Rate converts a byte delta over elapsed into whole bytes per second.
// A non-positive elapsed yields 0.
func Rate(delta uint64, elapsed time.Duration) uint64 {
	if elapsed <= 0 {
		return 0
	}
	return uint64(float64(delta) / elapsed.Seconds())
}
