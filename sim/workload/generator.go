package workload

import (
	"fmt"

	"github.com/inference-sim/packetflow/sim"
)

// GenerateEvents creates a transfer event sequence from a WorkloadSpec.
// Deterministic given the same spec and seed.
// Returns events sorted by Time; sources and destinations are uniform.
// Zero-valued optional fields take their defaults; spec is not modified.
func GenerateEvents(in *WorkloadSpec) ([]sim.TransferEvent, error) {
	spec := *in
	spec.applyDefaults()
	if err := spec.Validate(); err != nil {
		return nil, fmt.Errorf("invalid workload spec: %w", err)
	}

	rng := sim.NewPartitionedRNG(sim.NewSimulationKey(spec.Seed))
	srcRNG := rng.ForSubsystem(sim.SubsystemWorkload)
	dstRNG := rng.ForSubsystem(sim.SubsystemDestinations)

	events := make([]sim.TransferEvent, 0, spec.NumEvents)
	for i := 0; i < spec.NumEvents; i++ {
		batch := int64(i / spec.EventsPerFrame)
		events = append(events, sim.TransferEvent{
			Time:     spec.StartFrame + batch*spec.FrameInterval,
			SourceID: srcRNG.Intn(spec.NumSources),
			DestID:   dstRNG.Intn(spec.NumDestinations),
		})
	}
	return events, nil
}
