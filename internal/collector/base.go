package collector

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// throttle decides when a collector is due for a new sample.
type throttle struct {
	interval time.Duration
	last     time.Time
}

// advance reports whether now is due and, if so, records it as the last
// sample time. elapsed is the time since the previous sample, or zero on the
// first one. A clock that stepped backwards is always due.
func (t *throttle) advance(now time.Time) (elapsed time.Duration, due bool) {
	if !t.last.IsZero() {
		elapsed = now.Sub(t.last)
		if elapsed >= 0 && elapsed < t.interval {
			return elapsed, false
		}
	}
	t.last = now
	return elapsed, true
}

// output is a byte buffer whose capacity is fixed at construction. Setting a
// longer value keeps only the leading bytes that fit.
type output struct {
	buf []byte
}

func newOutput(capacity int) output {
	return output{buf: make([]byte, 0, capacity)}
}

func (o *output) set(s string) {
	if len(s) > cap(o.buf) {
		s = s[:cap(o.buf)]
	}
	o.buf = append(o.buf[:0], s...)
}

func (o *output) bytes() []byte { return o.buf }

// sampleFunc produces the new output for a due collector.
type sampleFunc func(ctx context.Context, now time.Time, elapsed time.Duration) (string, error)

// base carries the state shared by every collector: name, throttle, output
// buffer, failure placeholder and logger.
type base struct {
	name        string
	throttle    throttle
	out         output
	placeholder string
	logger      *zap.Logger
}

func newBase(name string, capacity int, opts Options, logger *zap.Logger) base {
	if logger == nil {
		logger = zap.NewNop()
	}
	return base{
		name:        name,
		throttle:    throttle{interval: opts.Interval},
		out:         newOutput(capacity),
		placeholder: opts.Placeholder,
		logger:      logger.Named(name),
	}
}

// Name returns the collector identifier.
func (b *base) Name() string { return b.name }

// Rendered returns the current output.
func (b *base) Rendered() []byte { return b.out.bytes() }

// Capacity returns the maximum output length in bytes.
func (b *base) Capacity() int { return cap(b.out.buf) }

// update runs sample if the throttle allows it and stores the result.
func (b *base) update(ctx context.Context, now time.Time, sample sampleFunc) {
	elapsed, due := b.throttle.advance(now)
	if !due {
		return
	}

	s, err := sample(ctx, now, elapsed)
	if err != nil {
		b.logger.Warn("Sampling failed", zap.Error(err))
		b.out.set(b.placeholder)
		return
	}
	b.out.set(s)
	b.logger.Debug("Collector updated", zap.ByteString("output", b.out.bytes()))
}
