package collector

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

const (
	NameLoadAvg = "loadavg"

	loadAvgCapacity = 10
)

// LoadReader reads the 1-minute load average.
type LoadReader interface {
	LoadAverage(ctx context.Context) (float64, error)
}

// LoadAvg renders the 1-minute load average as "LA:<value>" with one decimal.
type LoadAvg struct {
	base
	reader LoadReader
}

// NewLoadAvg creates a load average collector.
func NewLoadAvg(reader LoadReader, opts Options, logger *zap.Logger) *LoadAvg {
	return &LoadAvg{
		base:   newBase(NameLoadAvg, loadAvgCapacity, opts, logger),
		reader: reader,
	}
}

// Update samples the load average if due.
func (c *LoadAvg) Update(ctx context.Context, now time.Time) {
	c.update(ctx, now, c.sample)
}

func (c *LoadAvg) sample(ctx context.Context, _ time.Time, _ time.Duration) (string, error) {
	avg, err := c.reader.LoadAverage(ctx)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("LA:%.1f", avg), nil
}
