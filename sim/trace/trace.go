package trace

// TraceLevel controls the verbosity of lifecycle tracing.
type TraceLevel string

const (
	// TraceLevelNone disables tracing (zero overhead).
	TraceLevelNone TraceLevel = "none"
	// TraceLevelLifecycle captures spawns and retirements.
	TraceLevelLifecycle TraceLevel = "lifecycle"
	// TraceLevelPhases additionally captures every leg transition.
	TraceLevelPhases TraceLevel = "phases"
)

// validTraceLevels maps accepted trace level strings.
var validTraceLevels = map[TraceLevel]bool{
	TraceLevelNone:      true,
	TraceLevelLifecycle: true,
	TraceLevelPhases:    true,
	"":                  true, // empty defaults to none
}

// IsValidTraceLevel returns true if the given level string is a recognized trace level.
func IsValidTraceLevel(level string) bool {
	return validTraceLevels[TraceLevel(level)]
}

// TraceConfig controls trace collection behavior.
type TraceConfig struct {
	Level TraceLevel
}

// Enabled reports whether any records are collected at this level.
func (c TraceConfig) Enabled() bool {
	return c.Level == TraceLevelLifecycle || c.Level == TraceLevelPhases
}

// LifecycleTrace collects packet lifecycle records during a run.
type LifecycleTrace struct {
	Config      TraceConfig
	Spawns      []SpawnRecord
	Phases      []PhaseRecord
	Retirements []RetireRecord
}

// NewLifecycleTrace creates a LifecycleTrace ready for recording.
func NewLifecycleTrace(config TraceConfig) *LifecycleTrace {
	return &LifecycleTrace{
		Config:      config,
		Spawns:      make([]SpawnRecord, 0),
		Phases:      make([]PhaseRecord, 0),
		Retirements: make([]RetireRecord, 0),
	}
}

// RecordSpawn appends a spawn record.
func (lt *LifecycleTrace) RecordSpawn(record SpawnRecord) {
	if !lt.Config.Enabled() {
		return
	}
	lt.Spawns = append(lt.Spawns, record)
}

// RecordPhase appends a leg transition. Ignored below TraceLevelPhases.
func (lt *LifecycleTrace) RecordPhase(record PhaseRecord) {
	if lt.Config.Level != TraceLevelPhases {
		return
	}
	lt.Phases = append(lt.Phases, record)
}

// RecordRetire appends a retirement record.
func (lt *LifecycleTrace) RecordRetire(record RetireRecord) {
	if !lt.Config.Enabled() {
		return
	}
	lt.Retirements = append(lt.Retirements, record)
}
