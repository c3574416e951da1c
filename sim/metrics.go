// Tracks run-wide packet statistics such as throughput, occupancy and lifetimes.

package sim

import (
	"fmt"
	"io"
)

// Metrics aggregates statistics about the run for final reporting.
type Metrics struct {
	Ticks          int64 // advance passes played
	Loops          int   // completed passes over the frame range
	PacketsSpawned int   // packets created by spawn passes
	PacketsRetired int   // packets removed at their destination
	FinalLive      int   // packets still in flight when Run returned
	PeakLive       int   // max number of simultaneously live packets
	LiveSum        int64 // integral of live packets over ticks

	LifetimeSum int64 // sum of lifetimes (in ticks) of retired packets
	MaxLifetime int64 // longest lifetime of a retired packet
}

// NewMetrics returns zeroed metrics.
func NewMetrics() *Metrics {
	return &Metrics{}
}

func (m *Metrics) recordRetirement(pv PacketView) {
	m.PacketsRetired++
	m.LifetimeSum += pv.Age
	if pv.Age > m.MaxLifetime {
		m.MaxLifetime = pv.Age
	}
}

func (m *Metrics) recordTick(live int) {
	m.Ticks++
	m.LiveSum += int64(live)
	if live > m.PeakLive {
		m.PeakLive = live
	}
}

// MeanLifetime is the average lifetime of retired packets, 0 if none retired.
func (m *Metrics) MeanLifetime() float64 {
	if m.PacketsRetired == 0 {
		return 0
	}
	return float64(m.LifetimeSum) / float64(m.PacketsRetired)
}

// MeanLive is the average live set size per tick, 0 before the first tick.
func (m *Metrics) MeanLive() float64 {
	if m.Ticks == 0 {
		return 0
	}
	return float64(m.LiveSum) / float64(m.Ticks)
}

// Print writes the aggregated metrics at the end of the run.
func (m *Metrics) Print(w io.Writer) {
	fmt.Fprintln(w, "=== Simulation Metrics ===")
	fmt.Fprintf(w, "Ticks                : %d\n", m.Ticks)
	fmt.Fprintf(w, "Loops                : %d\n", m.Loops)
	fmt.Fprintf(w, "Packets Spawned      : %d\n", m.PacketsSpawned)
	fmt.Fprintf(w, "Packets Retired      : %d\n", m.PacketsRetired)
	fmt.Fprintf(w, "Packets In Flight    : %d\n", m.FinalLive)
	if m.Ticks > 0 {
		fmt.Fprintf(w, "Average Live Packets : %.2f\n", m.MeanLive())
		fmt.Fprintf(w, "Peak Live Packets    : %d\n", m.PeakLive)
	}
	if m.PacketsRetired > 0 {
		fmt.Fprintf(w, "Average Lifetime     : %.2f ticks\n", m.MeanLifetime())
		fmt.Fprintf(w, "Max Lifetime         : %d ticks\n", m.MaxLifetime)
	}
}
