// Package collector defines the Collector interface and the status line
// collectors built on it. Each collector samples one platform reading on its
// own refresh interval and keeps the last rendered text in a fixed-capacity
// buffer.
package collector

import (
	"context"
	"time"
)

// Collector is the interface that all status line collectors implement.
type Collector interface {
	// Name returns the unique identifier for this collector.
	Name() string

	// Update re-samples the metric if at least the collector's interval has
	// passed since its last sample; otherwise it does nothing. Failures are
	// logged and reflected in the rendered output, never returned.
	Update(ctx context.Context, now time.Time)

	// Rendered returns the current output. It is empty before the first
	// Update and whenever the metric has nothing to show. The returned slice
	// is only valid until the next Update.
	Rendered() []byte
}

// Options holds the settings common to every collector.
type Options struct {
	// Interval is the minimum time between two samples.
	Interval time.Duration
	// Placeholder replaces the output when sampling fails. Empty omits the
	// collector from the line.
	Placeholder string
}
