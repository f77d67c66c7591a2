package collector

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kotet/tmux-status-bar/internal/models"
)

const (
	NameBattery = "battery"

	batteryCapacity = 20
)

// BatteryReader reads the state of a named power supply.
type BatteryReader interface {
	Battery(ctx context.Context, name string) (models.BatteryState, error)
}

// Battery renders "Bat:<pct>%(<s>)" where s is the first letter of the
// supply status (C, D, F, N, U) or 'E' when the status is unreadable.
type Battery struct {
	base
	reader  BatteryReader
	battery string
}

// NewBattery creates a collector for the named power supply, e.g. "BAT0".
func NewBattery(reader BatteryReader, battery string, opts Options, logger *zap.Logger) *Battery {
	return &Battery{
		base:    newBase(NameBattery, batteryCapacity, opts, logger),
		reader:  reader,
		battery: battery,
	}
}

// Update samples the battery state if due.
func (c *Battery) Update(ctx context.Context, now time.Time) {
	c.update(ctx, now, c.sample)
}

func (c *Battery) sample(ctx context.Context, _ time.Time, _ time.Duration) (string, error) {
	state, err := c.reader.Battery(ctx, c.battery)
	if err != nil {
		return "", err
	}
	status := byte('E')
	if state.Status != "" {
		status = state.Status[0]
	}
	return fmt.Sprintf("Bat:%d%%(%c)", state.Capacity, status), nil
}
