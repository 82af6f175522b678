package analytics

import (
	"sort"
	"time"

	"github.com/quadrantlabs/assessment-tracking-service/internal/models"
)

// rankingLimit caps the difficulty and engagement rankings.
const rankingLimit = 10

// QuestionTimeStats is the five-number response-time summary for one question.
type QuestionTimeStats struct {
	AverageTime float64 `json:"average_time"`
	MedianTime  float64 `json:"median_time"`
	StdDev      float64 `json:"std_dev"`
	MinTime     float64 `json:"min_time"`
	MaxTime     float64 `json:"max_time"`
	SampleSize  int     `json:"sample_size"`
}

// OverallTimeStats summarizes the pooled response times of the whole corpus.
type OverallTimeStats struct {
	TotalResponses int     `json:"total_responses"`
	AverageTime    float64 `json:"average_time"`
	MedianTime     float64 `json:"median_time"`
	StdDev         float64 `json:"std_dev"`
	MinTime        float64 `json:"min_time"`
	MaxTime        float64 `json:"max_time"`
}

// RankedTimeQuestion is one entry of the difficulty ranking.
type RankedTimeQuestion struct {
	QuestionID string `json:"question_id"`
	QuestionTimeStats
}

// TimeReport is the corpus-wide response-time analysis. A nil report means no
// timing samples exist anywhere in the corpus.
type TimeReport struct {
	Overall           OverallTimeStats             `json:"overall"`
	ByQuestion        map[string]QuestionTimeStats `json:"by_question"`
	DifficultyRanking []RankedTimeQuestion         `json:"difficulty_ranking"`
	GeneratedAt       time.Time                    `json:"generated_at"`
}

// BuildTimeReport aggregates response times per question and across the whole
// corpus. Questions with a longer average answer time rank as more difficult.
func BuildTimeReport(records []*models.AssessmentRecord) *TimeReport {
	var allTimes []float64
	questionTimes := make(map[string][]float64)

	for _, rec := range records {
		if rec == nil {
			continue
		}
		for qID, timing := range rec.ResponseTimings {
			allTimes = append(allTimes, timing.ResponseTimeSeconds)
			questionTimes[qID] = append(questionTimes[qID], timing.ResponseTimeSeconds)
		}
	}

	if len(allTimes) == 0 {
		return nil
	}

	byQuestion := make(map[string]QuestionTimeStats, len(questionTimes))
	for qID, times := range questionTimes {
		mean, median, sd, minTime, maxTime := summarize(times)
		byQuestion[qID] = QuestionTimeStats{
			AverageTime: mean,
			MedianTime:  median,
			StdDev:      sd,
			MinTime:     minTime,
			MaxTime:     maxTime,
			SampleSize:  len(times),
		}
	}

	mean, median, sd, minTime, maxTime := summarize(allTimes)
	return &TimeReport{
		Overall: OverallTimeStats{
			TotalResponses: len(allTimes),
			AverageTime:    mean,
			MedianTime:     median,
			StdDev:         sd,
			MinTime:        minTime,
			MaxTime:        maxTime,
		},
		ByQuestion:        byQuestion,
		DifficultyRanking: rankByTime(byQuestion),
	}
}

// rankByTime orders questions by descending average time, breaking ties on
// question id so the ranking is stable across runs.
func rankByTime(byQuestion map[string]QuestionTimeStats) []RankedTimeQuestion {
	ranked := make([]RankedTimeQuestion, 0, len(byQuestion))
	for qID, qs := range byQuestion {
		ranked = append(ranked, RankedTimeQuestion{QuestionID: qID, QuestionTimeStats: qs})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].AverageTime != ranked[j].AverageTime {
			return ranked[i].AverageTime > ranked[j].AverageTime
		}
		return ranked[i].QuestionID < ranked[j].QuestionID
	})
	if len(ranked) > rankingLimit {
		ranked = ranked[:rankingLimit]
	}
	return ranked
}
