package analytics

import (
	"sort"
	"time"

	"github.com/quadrantlabs/assessment-tracking-service/internal/models"
)

// QuestionMovementStats summarizes cursor-movement counts for one question.
type QuestionMovementStats struct {
	AverageMovements float64 `json:"average_movements"`
	MedianMovements  float64 `json:"median_movements"`
	StdDev           float64 `json:"std_dev"`
	SampleSize       int     `json:"sample_size"`
}

// OverallMovementStats summarizes the pooled movement counts of the corpus.
type OverallMovementStats struct {
	TotalTracked     int     `json:"total_tracked"`
	AverageMovements float64 `json:"average_movements"`
	MedianMovements  float64 `json:"median_movements"`
	StdDev           float64 `json:"std_dev"`
}

// RankedMovementQuestion is one entry of the engagement ranking.
type RankedMovementQuestion struct {
	QuestionID string `json:"question_id"`
	QuestionMovementStats
}

// MovementReport is the corpus-wide cursor-activity analysis. A nil report
// means no cursor tracks exist anywhere in the corpus.
type MovementReport struct {
	Overall           OverallMovementStats             `json:"overall"`
	ByQuestion        map[string]QuestionMovementStats `json:"by_question"`
	EngagementRanking []RankedMovementQuestion         `json:"engagement_ranking"`
	GeneratedAt       time.Time                        `json:"generated_at"`
}

// BuildMovementReport aggregates per-question movement counts across the
// corpus. Counts come from the client-reported totals; with recountMovements
// set they are recomputed from the recorded sample sequences instead.
// Questions attracting more cursor activity rank as more engaging.
func BuildMovementReport(records []*models.AssessmentRecord, recountMovements bool) *MovementReport {
	var allCounts []float64
	questionCounts := make(map[string][]float64)

	for _, rec := range records {
		if rec == nil {
			continue
		}
		for qID, track := range rec.CursorMovements {
			count := float64(track.TotalMovements)
			if recountMovements {
				count = float64(len(track.Movements))
			}
			allCounts = append(allCounts, count)
			questionCounts[qID] = append(questionCounts[qID], count)
		}
	}

	if len(allCounts) == 0 {
		return nil
	}

	byQuestion := make(map[string]QuestionMovementStats, len(questionCounts))
	for qID, counts := range questionCounts {
		mean, median, sd, _, _ := summarize(counts)
		byQuestion[qID] = QuestionMovementStats{
			AverageMovements: mean,
			MedianMovements:  median,
			StdDev:           sd,
			SampleSize:       len(counts),
		}
	}

	mean, median, sd, _, _ := summarize(allCounts)
	return &MovementReport{
		Overall: OverallMovementStats{
			TotalTracked:     len(allCounts),
			AverageMovements: mean,
			MedianMovements:  median,
			StdDev:           sd,
		},
		ByQuestion:        byQuestion,
		EngagementRanking: rankByMovement(byQuestion),
	}
}

// rankByMovement orders questions by descending average movement count,
// breaking ties on question id so the ranking is stable across runs.
func rankByMovement(byQuestion map[string]QuestionMovementStats) []RankedMovementQuestion {
	ranked := make([]RankedMovementQuestion, 0, len(byQuestion))
	for qID, qs := range byQuestion {
		ranked = append(ranked, RankedMovementQuestion{QuestionID: qID, QuestionMovementStats: qs})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].AverageMovements != ranked[j].AverageMovements {
			return ranked[i].AverageMovements > ranked[j].AverageMovements
		}
		return ranked[i].QuestionID < ranked[j].QuestionID
	})
	if len(ranked) > rankingLimit {
		ranked = ranked[:rankingLimit]
	}
	return ranked
}
