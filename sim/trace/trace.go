package trace

// TraceLevel controls the verbosity of rollout tracing.
type TraceLevel string

const (
	// TraceLevelNone disables tracing (zero overhead).
	TraceLevelNone TraceLevel = "none"
	// TraceLevelSteps captures every step's selections and capacities.
	TraceLevelSteps TraceLevel = "steps"
)

// validTraceLevels maps accepted trace level strings.
var validTraceLevels = map[TraceLevel]bool{
	TraceLevelNone:  true,
	TraceLevelSteps: true,
	"":              true, // empty defaults to none
}

// IsValidTraceLevel returns true if the given level string is a recognized trace level.
func IsValidTraceLevel(level string) bool {
	return validTraceLevels[TraceLevel(level)]
}

// TraceConfig controls trace collection behavior.
type TraceConfig struct {
	Level TraceLevel
}

// Enabled reports whether records should be collected at all.
func (c TraceConfig) Enabled() bool {
	return c.Level == TraceLevelSteps
}

// RolloutTrace collects step records during a single rollout.
type RolloutTrace struct {
	RunID  string
	Config TraceConfig
	Steps  []StepRecord
}

// NewRolloutTrace creates a RolloutTrace ready for recording.
func NewRolloutTrace(runID string, config TraceConfig) *RolloutTrace {
	return &RolloutTrace{
		RunID:  runID,
		Config: config,
		Steps:  make([]StepRecord, 0),
	}
}

// RecordStep appends a step record. No-op when tracing is disabled.
func (rt *RolloutTrace) RecordStep(record StepRecord) {
	if !rt.Config.Enabled() {
		return
	}
	rt.Steps = append(rt.Steps, record)
}
