package platform

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/kotet/tmux-status-bar/internal/models"
)

// Battery reads <sys>/class/power_supply/<name>/{capacity,status}.
// An unreadable status is not an error; Status is left empty.
func (h *Host) Battery(_ context.Context, name string) (models.BatteryState, error) {
	dir := filepath.Join(h.opts.SysRoot, "class", "power_supply", name)

	raw, err := h.readTrimmed(filepath.Join(dir, "capacity"))
	if err != nil {
		return models.BatteryState{}, err
	}
	capacity, err := strconv.Atoi(raw)
	if err != nil {
		return models.BatteryState{}, fmt.Errorf("parsing battery capacity %q: %w", raw, err)
	}

	status, err := h.readTrimmed(filepath.Join(dir, "status"))
	if err != nil {
		h.logger.Debug("Battery status not available",
			zap.String("battery", name),
			zap.Error(err))
		status = ""
	}

	return models.BatteryState{Capacity: capacity, Status: status}, nil
}

// CPUFrequency reads <sys>/devices/system/cpu/cpu<N>/cpufreq/scaling_cur_freq.
func (h *Host) CPUFrequency(_ context.Context, cpu int) (uint64, error) {
	path := filepath.Join(h.opts.SysRoot, "devices", "system", "cpu",
		"cpu"+strconv.Itoa(cpu), "cpufreq", "scaling_cur_freq")
	return h.readUint(path)
}

// sysfsCounters enumerates <sys>/class/net and reads each interface's
// statistics/{rx,tx}_bytes. Interfaces with unreadable counters are skipped.
func (h *Host) sysfsCounters() ([]models.InterfaceCounters, error) {
	dir := filepath.Join(h.opts.SysRoot, "class", "net")
	entries, err := afero.ReadDir(h.fs, dir)
	if err != nil {
		return nil, fmt.Errorf("listing interfaces: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	sort.Strings(names)

	result := make([]models.InterfaceCounters, 0, len(names))
	for _, name := range names {
		stats := filepath.Join(dir, name, "statistics")
		rx, err := h.readUint(filepath.Join(stats, "rx_bytes"))
		if err != nil {
			h.logger.Debug("Skipping interface", zap.String("iface", name), zap.Error(err))
			continue
		}
		tx, err := h.readUint(filepath.Join(stats, "tx_bytes"))
		if err != nil {
			h.logger.Debug("Skipping interface", zap.String("iface", name), zap.Error(err))
			continue
		}
		result = append(result, models.InterfaceCounters{
			Name:     name,
			Counters: models.Counters{Rx: rx, Tx: tx},
		})
	}
	return result, nil
}

// readTrimmed returns the whitespace-trimmed contents of a small pseudo-file.
func (h *Host) readTrimmed(path string) (string, error) {
	data, err := afero.ReadFile(h.fs, path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	return strings.TrimSpace(string(data)), nil
}

func (h *Host) readUint(path string) (uint64, error) {
	raw, err := h.readTrimmed(path)
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parsing %s: %w", path, err)
	}
	return v, nil
}
