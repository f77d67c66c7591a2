package collector

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

const (
	NameCPUFreq = "cpufreq"

	cpuFreqCapacity = 20
)

// CPUFrequencyReader reads the current frequency of one CPU in kHz.
type CPUFrequencyReader interface {
	CPUFrequency(ctx context.Context, cpu int) (uint64, error)
}

// CPUFreq renders a CPU's current scaling frequency as "Freq:<GHz>GHz".
type CPUFreq struct {
	base
	reader CPUFrequencyReader
	cpu    int
}

// NewCPUFreq creates a collector for the given CPU index.
func NewCPUFreq(reader CPUFrequencyReader, cpu int, opts Options, logger *zap.Logger) *CPUFreq {
	return &CPUFreq{
		base:   newBase(NameCPUFreq, cpuFreqCapacity, opts, logger),
		reader: reader,
		cpu:    cpu,
	}
}

// Update samples the CPU frequency if due.
func (c *CPUFreq) Update(ctx context.Context, now time.Time) {
	c.update(ctx, now, c.sample)
}

func (c *CPUFreq) sample(ctx context.Context, _ time.Time, _ time.Duration) (string, error) {
	khz, err := c.reader.CPUFrequency(ctx, c.cpu)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Freq:%.1fGHz", float64(khz)/1e6), nil
}
