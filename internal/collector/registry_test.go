package collector

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kotet/tmux-status-bar/internal/models"
	"github.com/kotet/tmux-status-bar/internal/platform"
)

func TestRegistry_RenderSkipsEmptyOutputs(t *testing.T) {
	a := &stubCollector{name: "a", out: "A"}
	b := &stubCollector{name: "b", out: ""}
	c := &stubCollector{name: "c", out: "C"}

	r := NewRegistry(nil)
	r.Register(a)
	r.Register(b)
	r.Register(c)

	assert.Equal(t, " A C", string(r.Render(context.Background(), t0)))
	for _, s := range []*stubCollector{a, b, c} {
		assert.Equal(t, []time.Time{t0}, s.updates, s.name)
	}
}

func TestRegistry_RenderEmpty(t *testing.T) {
	r := NewRegistry(nil)
	r.Register(&stubCollector{name: "a"})

	assert.Empty(t, r.Render(context.Background(), t0))
}

func TestRegistry_OrderIsRegistrationOrder(t *testing.T) {
	r := NewRegistry(nil)
	for _, s := range []string{"3", "1", "2"} {
		r.Register(&stubCollector{name: s, out: s})
	}

	assert.Equal(t, " 3 1 2", string(r.Render(context.Background(), t0)))
	require.Equal(t, 3, r.Len())
	assert.Equal(t, "3", r.Collectors()[0].Name())
}

func TestBuild_DefaultSpecs(t *testing.T) {
	p := newFakePlatform()
	p.memory = models.MemoryUsage{Total: 1000, Available: 250}
	p.swap = models.SwapUsage{Total: 100, Free: 90}
	p.load = 0.42
	p.freqKHz = 1800000
	p.battery = models.BatteryState{Capacity: 64, Status: "Charging"}
	p.setCounters("eth0", 0, 0)

	r, err := Build(DefaultSpecs(), p, Settings{Battery: "BAT0", Location: time.UTC}, nil)
	require.NoError(t, err)

	var names []string
	for _, c := range r.Collectors() {
		names = append(names, c.Name())
	}
	assert.Equal(t, []string{"network", "loadavg", "cpufreq", "memory", "swap", "battery", "clock"}, names)

	line := r.Render(context.Background(), t0)
	assert.Equal(t, " LA:0.4 Freq:1.8GHz Mem:75% Swp:10% Bat:64%(C) 10/17(Sat)14:03:05", string(line))

	// Only the clock is due one second later.
	p.setCounters("eth0", 5000, 0)
	p.load = 9
	line = r.Render(context.Background(), t0.Add(time.Second))
	assert.Equal(t, " LA:0.4 Freq:1.8GHz Mem:75% Swp:10% Bat:64%(C) 10/17(Sat)14:03:06", string(line))

	line = r.Render(context.Background(), t0.Add(5*time.Second))
	assert.Equal(t, " [eth0: U1000B/s D   0B/s] LA:0.4 Freq:1.8GHz Mem:75% Swp:10% Bat:64%(C) 10/17(Sat)14:03:10", string(line))
}

func TestBuild_UnknownCollector(t *testing.T) {
	_, err := Build([]Spec{{Name: "gpu", Interval: time.Second}}, newFakePlatform(), Settings{}, nil)
	assert.ErrorContains(t, err, `unknown collector "gpu"`)
}

func TestBuild_AcceptsHost(t *testing.T) {
	var p platform.Platform = platform.NewHost(platform.DefaultOptions(), nil, nil)
	_, err := Build(DefaultSpecs(), p, Settings{}, nil)
	assert.NoError(t, err)
}
