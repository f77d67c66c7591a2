// Memory and swap usage collectors, rendered as integer percentages.
package collector

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kotet/tmux-status-bar/internal/models"
)

const (
	NameMemory = "memory"
	NameSwap   = "swap"

	percentCapacity = 10
)

var errZeroTotal = errors.New("total is zero")

// MemoryReader reads physical memory totals.
type MemoryReader interface {
	Memory(ctx context.Context) (models.MemoryUsage, error)
}

// SwapReader reads swap space totals.
type SwapReader interface {
	Swap(ctx context.Context) (models.SwapUsage, error)
}

// Memory renders used memory as "Mem:<pct>%", where used is total minus
// available.
type Memory struct {
	base
	reader MemoryReader
}

// NewMemory creates a memory collector.
func NewMemory(reader MemoryReader, opts Options, logger *zap.Logger) *Memory {
	return &Memory{
		base:   newBase(NameMemory, percentCapacity, opts, logger),
		reader: reader,
	}
}

// Update samples memory usage if due.
func (c *Memory) Update(ctx context.Context, now time.Time) {
	c.update(ctx, now, c.sample)
}

func (c *Memory) sample(ctx context.Context, _ time.Time, _ time.Duration) (string, error) {
	m, err := c.reader.Memory(ctx)
	if err != nil {
		return "", err
	}
	if m.Total == 0 {
		return "", fmt.Errorf("memory: %w", errZeroTotal)
	}
	return fmt.Sprintf("Mem:%d%%", usedPercent(m.Total, m.Available)), nil
}

// Swap renders used swap as "Swp:<pct>%". A machine without swap renders
// nothing.
type Swap struct {
	base
	reader SwapReader
}

// NewSwap creates a swap collector.
func NewSwap(reader SwapReader, opts Options, logger *zap.Logger) *Swap {
	return &Swap{
		base:   newBase(NameSwap, percentCapacity, opts, logger),
		reader: reader,
	}
}

// Update samples swap usage if due.
func (c *Swap) Update(ctx context.Context, now time.Time) {
	c.update(ctx, now, c.sample)
}

func (c *Swap) sample(ctx context.Context, _ time.Time, _ time.Duration) (string, error) {
	s, err := c.reader.Swap(ctx)
	if err != nil {
		return "", err
	}
	if s.Total == 0 {
		return "", nil
	}
	return fmt.Sprintf("Swp:%d%%", usedPercent(s.Total, s.Free)), nil
}

// usedPercent returns (total-free)*100/total, truncated. free is clamped to
// total so a racy reading never underflows.
func usedPercent(total, free uint64) uint64 {
	if free > total {
		free = total
	}
	return (total - free) * 100 / total
}
