package throughput

import "fmt"

// binaryPrefixes are the unit prefixes selected by FormatRate, indexed by the
// number of divisions by 1024. Values past the last prefix stay in "Ti".
var binaryPrefixes = [...]string{"", "Ki", "Mi", "Gi", "Ti"}

// FormatRate scales v by powers of 1024 and returns the truncated value with
// its binary prefix. FormatRate(1536) is (1, "Ki"); FormatRate(1<<50) is
// (1024, "Ti").
func FormatRate(v uint64) (uint64, string) {
	last := len(binaryPrefixes) - 1
	for i := 0; i < last; i++ {
		if v < 1024 {
			return v, binaryPrefixes[i]
		}
		v /= 1024
	}
	return v, binaryPrefixes[last]
}

// Segment renders one interface's rates, in bytes per second, as
// "[name: U<rx>B/s D<tx>B/s]" with each number right-aligned in four columns.
// The U field carries the receive rate and D the transmit rate; status bar
// configurations parsing this line depend on that order.
func Segment(name string, rxRate, txRate uint64) string {
	rx, rxPrefix := FormatRate(rxRate)
	tx, txPrefix := FormatRate(txRate)
	return fmt.Sprintf("[%s: U%4d%sB/s D%4d%sB/s]", name, rx, rxPrefix, tx, txPrefix)
}
