// Package collector provides a registry for the ordered list of collectors.
// Collectors are registered once at startup; the server asks the registry to
// render one status line per request.
package collector

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Registry holds collectors in render order. It owns no goroutines: sampling
// happens only inside Render. A Registry is not safe for concurrent use.
type Registry struct {
	collectors []Collector
	logger     *zap.Logger
}

// NewRegistry creates a new collector registry with the given logger.
func NewRegistry(logger *zap.Logger) *Registry {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Registry{
		collectors: make([]Collector, 0),
		logger:     logger,
	}
}

// Register appends a collector to the render order.
func (r *Registry) Register(c Collector) {
	r.collectors = append(r.collectors, c)
	r.logger.Info("Registered collector", zap.String("name", c.Name()))
}

// Render updates every collector in order with the same timestamp and joins
// their outputs. Each non-empty output is preceded by a single space; empty
// outputs contribute nothing, not even the separator.
func (r *Registry) Render(ctx context.Context, now time.Time) []byte {
	line := make([]byte, 0, 256)
	for _, c := range r.collectors {
		c.Update(ctx, now)
		out := c.Rendered()
		if len(out) == 0 {
			continue
		}
		line = append(line, ' ')
		line = append(line, out...)
	}
	return line
}

// Collectors returns a copy of all registered collectors.
func (r *Registry) Collectors() []Collector {
	result := make([]Collector, len(r.collectors))
	copy(result, r.collectors)
	return result
}

// Len returns the number of registered collectors.
func (r *Registry) Len() int { return len(r.collectors) }
