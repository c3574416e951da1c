package trace

// TraceSummary aggregates statistics from a LifecycleTrace.
type TraceSummary struct {
	TotalSpawned            int
	TotalRetired            int
	InFlight                int // spawned but not yet retired when the trace was summarized
	PhaseTransitions        int
	MeanLifetime            float64
	MaxLifetime             int64
	SourceDistribution      map[int]int // source id → packets spawned
	DestinationDistribution map[int]int // destination id → packets retired
}

// Summarize computes aggregate statistics from a LifecycleTrace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(lt *LifecycleTrace) *TraceSummary {
	summary := &TraceSummary{
		SourceDistribution:      make(map[int]int),
		DestinationDistribution: make(map[int]int),
	}
	if lt == nil {
		return summary
	}

	summary.TotalSpawned = len(lt.Spawns)
	for _, s := range lt.Spawns {
		summary.SourceDistribution[s.SourceID]++
	}

	summary.TotalRetired = len(lt.Retirements)
	if len(lt.Retirements) > 0 {
		var total int64
		for _, r := range lt.Retirements {
			summary.DestinationDistribution[r.DestID]++
			total += r.Lifetime
			if r.Lifetime > summary.MaxLifetime {
				summary.MaxLifetime = r.Lifetime
			}
		}
		summary.MeanLifetime = float64(total) / float64(len(lt.Retirements))
	}

	summary.InFlight = summary.TotalSpawned - summary.TotalRetired
	summary.PhaseTransitions = len(lt.Phases)
	return summary
}
