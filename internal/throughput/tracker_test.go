package throughput

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kotet/tmux-status-bar/internal/models"
)

func TestTracker_FirstObservationIsBaseline(t *testing.T) {
	tr := NewTracker()

	obs := tr.Observe("eth0", models.Counters{Rx: 100, Tx: 200})
	assert.Equal(t, Baseline, obs.Result)
	assert.Zero(t, obs.Delta)

	base, ok := tr.Baseline("eth0")
	require.True(t, ok)
	assert.Equal(t, models.Counters{Rx: 100, Tx: 200}, base)
}

func TestTracker_UnchangedCountersGiveZeroDelta(t *testing.T) {
	tr := NewTracker()
	tr.Observe("eth0", models.Counters{Rx: 100, Tx: 200})

	obs := tr.Observe("eth0", models.Counters{Rx: 100, Tx: 200})
	assert.Equal(t, Advanced, obs.Result)
	assert.Zero(t, obs.Delta)
}

func TestTracker_RegressionResetsBaseline(t *testing.T) {
	tr := NewTracker()
	tr.Observe("eth0", models.Counters{Rx: 100, Tx: 100})

	obs := tr.Observe("eth0", models.Counters{Rx: 50, Tx: 150})
	assert.Equal(t, Regressed, obs.Result)
	assert.Equal(t, models.Counters{Rx: 100, Tx: 100}, obs.Old)
	assert.Zero(t, obs.Delta)

	base, _ := tr.Baseline("eth0")
	assert.Equal(t, models.Counters{Rx: 50, Tx: 150}, base)

	obs = tr.Observe("eth0", models.Counters{Rx: 60, Tx: 160})
	assert.Equal(t, Advanced, obs.Result)
	assert.Equal(t, models.Counters{Rx: 10, Tx: 10}, obs.Delta)
}

func TestTracker_InterfacesAreIndependent(t *testing.T) {
	tr := NewTracker()
	tr.Observe("eth0", models.Counters{Rx: 10, Tx: 10})
	tr.Observe("wlan0", models.Counters{Rx: 500, Tx: 500})

	obs := tr.Observe("eth0", models.Counters{Rx: 20, Tx: 30})
	assert.Equal(t, models.Counters{Rx: 10, Tx: 20}, obs.Delta)

	obs = tr.Observe("wlan0", models.Counters{Rx: 400, Tx: 600})
	assert.Equal(t, Regressed, obs.Result)
	assert.Equal(t, 2, tr.Len())
}

func TestRate(t *testing.T) {
	assert.Equal(t, uint64(100), Rate(500, 5*time.Second))
	assert.Equal(t, uint64(1500), Rate(3000, 2*time.Second))
	assert.Equal(t, uint64(66), Rate(200, 3*time.Second))
	assert.Equal(t, uint64(0), Rate(500, 0))
	assert.Equal(t, uint64(0), Rate(500, -time.Second))
}
