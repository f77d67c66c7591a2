// Network throughput collector. Keeps per-interface byte counters between
// samples and renders upload/download rates for interfaces with traffic.
package collector

import (
	"context"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/kotet/tmux-status-bar/internal/models"
	"github.com/kotet/tmux-status-bar/internal/throughput"
)

const (
	NameNetwork = "network"

	networkCapacity = 128
)

// CounterReader reads cumulative byte counters for all readable interfaces.
type CounterReader interface {
	InterfaceCounters(ctx context.Context) ([]models.InterfaceCounters, error)
}

// Network renders one "[iface: U<tx>B/s D<rx>B/s]" segment per interface
// whose counters moved since the previous sample. The first sample of an
// interface and any sample where a counter went backwards only establish a
// baseline.
type Network struct {
	base
	reader  CounterReader
	tracker *throughput.Tracker
	ignore  []string
}

// NewNetwork creates a network collector. Interfaces whose name matches any
// of the ignore glob patterns are neither tracked nor shown.
func NewNetwork(reader CounterReader, ignore []string, opts Options, logger *zap.Logger) *Network {
	return &Network{
		base:    newBase(NameNetwork, networkCapacity, opts, logger),
		reader:  reader,
		tracker: throughput.NewTracker(),
		ignore:  ignore,
	}
}

// Update samples interface counters if due.
func (c *Network) Update(ctx context.Context, now time.Time) {
	c.update(ctx, now, c.sample)
}

func (c *Network) sample(ctx context.Context, _ time.Time, elapsed time.Duration) (string, error) {
	ifaces, err := c.reader.InterfaceCounters(ctx)
	if err != nil {
		return "", err
	}

	segments := make([]string, 0, len(ifaces))
	for _, iface := range ifaces {
		if c.ignored(iface.Name) {
			continue
		}

		obs := c.tracker.Observe(iface.Name, iface.Counters)
		switch obs.Result {
		case throughput.Baseline:
			continue
		case throughput.Regressed:
			c.logger.Warn("Interface counters went backwards, resetting baseline",
				zap.String("iface", iface.Name),
				zap.Uint64("old_rx", obs.Old.Rx),
				zap.Uint64("new_rx", obs.New.Rx),
				zap.Uint64("old_tx", obs.Old.Tx),
				zap.Uint64("new_tx", obs.New.Tx))
			continue
		}

		rx := throughput.Rate(obs.Delta.Rx, elapsed)
		tx := throughput.Rate(obs.Delta.Tx, elapsed)
		if rx == 0 && tx == 0 {
			continue
		}
		segments = append(segments, throughput.Segment(iface.Name, rx, tx))
	}

	return strings.Join(segments, " "), nil
}

// ignored reports whether name matches one of the ignore patterns.
func (c *Network) ignored(name string) bool {
	for _, pattern := range c.ignore {
		if ok, _ := filepath.Match(pattern, name); ok {
			return true
		}
	}
	return false
}

