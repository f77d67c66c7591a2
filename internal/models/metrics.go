// Package models defines the raw readings passed from the platform layer to
// the collectors. Values are unformatted; rendering is the collectors' job.
package models

// MemoryUsage is a snapshot of physical memory in bytes.
type MemoryUsage struct {
	Total     uint64
	Available uint64
}

// SwapUsage is a snapshot of swap space in bytes.
type SwapUsage struct {
	Total uint64
	Free  uint64
}

// BatteryState holds the charge percentage and the raw status string
// ("Charging", "Discharging", "Full", ...). Status is empty if unreadable.
type BatteryState struct {
	Capacity int
	Status   string
}

// Counters is a pair of cumulative byte counters for one interface.
type Counters struct {
	Rx uint64
	Tx uint64
}

// InterfaceCounters is the Counters reading of a named network interface.
type InterfaceCounters struct {
	Name string
	Counters
}
