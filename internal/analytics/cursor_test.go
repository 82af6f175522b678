package analytics

import (
	"testing"

	"github.com/quadrantlabs/assessment-tracking-service/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPathDistance(t *testing.T) {
	tests := []struct {
		name    string
		samples []models.CursorSample
		want    float64
	}{
		{
			name:    "no samples",
			samples: nil,
			want:    0,
		},
		{
			name:    "single sample",
			samples: []models.CursorSample{{X: 42, Y: 17, Timestamp: 1}},
			want:    0,
		},
		{
			name: "pythagorean pair",
			samples: []models.CursorSample{
				{X: 0, Y: 0, Timestamp: 1},
				{X: 3, Y: 4, Timestamp: 2},
			},
			want: 5.0,
		},
		{
			name: "multi segment path",
			samples: []models.CursorSample{
				{X: 0, Y: 0, Timestamp: 1},
				{X: 3, Y: 4, Timestamp: 2},
				{X: 3, Y: 10, Timestamp: 3},
			},
			want: 11.0,
		},
		{
			name: "negative coordinates",
			samples: []models.CursorSample{
				{X: -3, Y: -4, Timestamp: 1},
				{X: 0, Y: 0, Timestamp: 2},
			},
			want: 5.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, PathDistance(tt.samples), 0.0001)
		})
	}
}

func TestComputeCursorStatistics_Empty(t *testing.T) {
	cs := ComputeCursorStatistics(nil)
	assert.Equal(t, 0, cs.TotalQuestionsTracked)
	assert.Equal(t, 0, cs.TotalMovementsAllQuestions)
	assert.Empty(t, cs.QuestionsWithMostMovement)
	assert.Empty(t, cs.QuestionsWithLeastMovement)
	assert.Empty(t, cs.MovementDetails)
}

func TestComputeCursorStatistics_Aggregates(t *testing.T) {
	tracks := map[string]models.CursorTrack{
		"q1": {
			Movements: []models.CursorSample{
				{X: 0, Y: 0, Timestamp: 1},
				{X: 3, Y: 4, Timestamp: 2},
			},
			TotalMovements: 2,
		},
		"q2": {
			Movements:      []models.CursorSample{{X: 1, Y: 1, Timestamp: 1}},
			TotalMovements: 7,
		},
	}

	cs := ComputeCursorStatistics(tracks)

	assert.Equal(t, 2, cs.TotalQuestionsTracked)
	assert.Equal(t, 9, cs.TotalMovementsAllQuestions)
	assert.InDelta(t, 4.5, cs.AverageMovementsPerQuestion, 0.001)
	assert.Equal(t, "q2", cs.QuestionsWithMostMovement)
	assert.Equal(t, "q1", cs.QuestionsWithLeastMovement)

	// Distance detail only exists for questions with at least two samples.
	require.Contains(t, cs.MovementDetails, "q1")
	assert.NotContains(t, cs.MovementDetails, "q2")

	detail := cs.MovementDetails["q1"]
	assert.Equal(t, 2, detail.TotalMovements)
	assert.InDelta(t, 5.0, detail.TotalDistancePixels, 0.001)
	assert.InDelta(t, 2.5, detail.AverageDistancePerMove, 0.001)
}

func TestComputeCursorStatistics_TiesPickFirstID(t *testing.T) {
	tracks := map[string]models.CursorTrack{
		"q_b": {TotalMovements: 4},
		"q_a": {TotalMovements: 4},
	}

	cs := ComputeCursorStatistics(tracks)
	assert.Equal(t, "q_a", cs.QuestionsWithMostMovement)
	assert.Equal(t, "q_a", cs.QuestionsWithLeastMovement)
}

func TestComputeCursorStatistics_ZeroReportedCount(t *testing.T) {
	tracks := map[string]models.CursorTrack{
		"q1": {
			Movements: []models.CursorSample{
				{X: 0, Y: 0, Timestamp: 1},
				{X: 6, Y: 8, Timestamp: 2},
			},
			TotalMovements: 0, // client reported nothing despite the trace
		},
	}

	cs := ComputeCursorStatistics(tracks)
	require.Contains(t, cs.MovementDetails, "q1")

	detail := cs.MovementDetails["q1"]
	assert.InDelta(t, 10.0, detail.TotalDistancePixels, 0.001)
	assert.InDelta(t, 0, detail.AverageDistancePerMove, 0.001)
	assert.Equal(t, 0, cs.TotalMovementsAllQuestions)
}
