package trace

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRolloutTrace_RecordStep_AppendsRecord(t *testing.T) {
	// GIVEN a trace configured for steps
	rt := NewRolloutTrace("run-1", TraceConfig{Level: TraceLevelSteps})

	// WHEN a step record is recorded
	rt.RecordStep(StepRecord{
		Step:              1,
		Selected:          [][]int{{0, 2}},
		RemainingCapacity: [][]float64{{1.0, 0.7}},
		FinishedCount:     0,
	})

	// THEN the trace contains one record with correct data
	require.Len(t, rt.Steps, 1)
	assert.Equal(t, "run-1", rt.RunID)
	assert.Equal(t, 1, rt.Steps[0].Step)
	assert.Equal(t, []int{0, 2}, rt.Steps[0].Selected[0])
}

func TestRolloutTrace_LevelNone_RecordsNothing(t *testing.T) {
	// GIVEN a trace with tracing disabled
	rt := NewRolloutTrace("run-2", TraceConfig{Level: TraceLevelNone})

	// WHEN a step is recorded
	rt.RecordStep(StepRecord{Step: 1, Selected: [][]int{{1}}})

	// THEN nothing is kept
	assert.Empty(t, rt.Steps)
}

func TestIsValidTraceLevel(t *testing.T) {
	tests := []struct {
		level string
		want  bool
	}{
		{"", true},
		{"none", true},
		{"steps", true},
		{"decisions", false},
		{"STEPS", false},
	}
	for _, tc := range tests {
		t.Run(tc.level, func(t *testing.T) {
			assert.Equal(t, tc.want, IsValidTraceLevel(tc.level))
		})
	}
}
