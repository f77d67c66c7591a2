package collector

import (
	"context"
	"time"

	"github.com/ncruces/go-strftime"
	"go.uber.org/zap"
)

const (
	NameClock = "clock"

	// DefaultClockFormat renders e.g. "10/17(Sat)14:03:05".
	DefaultClockFormat = "%m/%d(%a)%H:%M:%S"

	clockCapacity = 20
)

// Clock renders the render timestamp with a strftime layout.
type Clock struct {
	base
	format   string
	location *time.Location
}

// NewClock creates a clock collector. An empty format uses
// DefaultClockFormat; a nil location uses time.Local.
func NewClock(format string, location *time.Location, opts Options, logger *zap.Logger) *Clock {
	if format == "" {
		format = DefaultClockFormat
	}
	if location == nil {
		location = time.Local
	}
	return &Clock{
		base:     newBase(NameClock, clockCapacity, opts, logger),
		format:   format,
		location: location,
	}
}

// Update formats now if due.
func (c *Clock) Update(ctx context.Context, now time.Time) {
	c.update(ctx, now, c.sample)
}

func (c *Clock) sample(_ context.Context, now time.Time, _ time.Duration) (string, error) {
	return strftime.Format(c.format, now.In(c.location)), nil
}
