package analytics

import (
	"time"

	"github.com/montanaflynn/stats"
	"github.com/quadrantlabs/assessment-tracking-service/internal/models"
)

// Behavioral quadrant keys for UserPatternReport.Categories.
const (
	CategoryFastDecisive    = "fast_decisive"
	CategoryFastExploratory = "fast_exploratory"
	CategorySlowDecisive    = "slow_decisive"
	CategorySlowExploratory = "slow_exploratory"
)

// exampleNameLimit caps the display names listed per category.
const exampleNameLimit = 5

// categoryDescriptions maps each quadrant to its display blurb.
var categoryDescriptions = map[string]string{
	CategoryFastDecisive:    "Quick decision makers with minimal hesitation",
	CategoryFastExploratory: "Quick but thorough - reads all options fast",
	CategorySlowDecisive:    "Thoughtful and confident once decided",
	CategorySlowExploratory: "Careful consideration of all options",
}

// CategoryKeys returns the quadrant keys in presentation order.
func CategoryKeys() []string {
	return []string{
		CategoryFastDecisive,
		CategoryFastExploratory,
		CategorySlowDecisive,
		CategorySlowExploratory,
	}
}

// UserPattern is the per-record behavioral profile the classifier buckets.
type UserPattern struct {
	UserID                  string  `json:"user_id"`
	UserName                string  `json:"user_name"`
	TotalTimeMinutes        float64 `json:"total_time_minutes"`
	AvgTimePerQuestion      float64 `json:"avg_time_per_question"`
	TotalCursorMovements    int     `json:"total_cursor_movements"`
	AvgMovementsPerQuestion float64 `json:"avg_movements_per_question"`
	CompletionRate          float64 `json:"completion_rate"`
}

// PatternThresholds holds the corpus medians users are compared against,
// rounded to 2 decimals for display.
type PatternThresholds struct {
	TimeMedian     float64 `json:"time_median"`
	MovementMedian float64 `json:"movement_median"`
}

// PatternCategory is one quadrant of the classification output.
type PatternCategory struct {
	Count        int      `json:"count"`
	Description  string   `json:"description"`
	ExampleNames []string `json:"example_names"`
}

// UserPatternReport is the four-way behavioral classification of the corpus.
// A nil report means the corpus is empty.
type UserPatternReport struct {
	TotalUsers  int                        `json:"total_users"`
	Thresholds  PatternThresholds          `json:"thresholds"`
	Categories  map[string]PatternCategory `json:"categories"`
	GeneratedAt time.Time                  `json:"generated_at"`
}

// CompletionRate returns answered/total, treating a missing or zero total as 1
// so the division is always defined.
func CompletionRate(answered, total int) float64 {
	if total <= 0 {
		total = 1
	}
	return float64(answered) / float64(total)
}

// DeriveUserPattern extracts the classifier's per-record scalars from a
// stored record's enrichment.
func DeriveUserPattern(rec *models.AssessmentRecord) UserPattern {
	return UserPattern{
		UserID:                  rec.UserID,
		UserName:                rec.UserName,
		TotalTimeMinutes:        rec.Analytics.TotalTimeMinutes,
		AvgTimePerQuestion:      rec.Analytics.AverageTimePerQuestionSec,
		TotalCursorMovements:    rec.CursorStatistics.TotalMovementsAllQuestions,
		AvgMovementsPerQuestion: rec.CursorStatistics.AverageMovementsPerQuestion,
		CompletionRate:          CompletionRate(rec.AnsweredQuestions, rec.TotalQuestions),
	}
}

// BuildPatternReport classifies each record into one of four quadrants using
// strict less-than against the corpus medians, so ties land in the slow and
// exploratory buckets. The medians are taken over strictly positive values
// only; a metric with no positive value anywhere gets a 0 threshold. Records
// whose average time per question is exactly 0 carry no usable timing signal
// and are left unclassified.
func BuildPatternReport(records []*models.AssessmentRecord) *UserPatternReport {
	if len(records) == 0 {
		return nil
	}

	patterns := make([]UserPattern, 0, len(records))
	var positiveTimes, positiveMovements []float64
	for _, rec := range records {
		if rec == nil {
			continue
		}
		p := DeriveUserPattern(rec)
		patterns = append(patterns, p)
		if p.AvgTimePerQuestion > 0 {
			positiveTimes = append(positiveTimes, p.AvgTimePerQuestion)
		}
		if p.AvgMovementsPerQuestion > 0 {
			positiveMovements = append(positiveMovements, p.AvgMovementsPerQuestion)
		}
	}
	if len(patterns) == 0 {
		return nil
	}

	var timeThreshold, movementThreshold float64
	if len(positiveTimes) > 0 {
		timeThreshold, _ = stats.Median(positiveTimes)
	}
	if len(positiveMovements) > 0 {
		movementThreshold, _ = stats.Median(positiveMovements)
	}

	categories := make(map[string]*PatternCategory, 4)
	for _, key := range CategoryKeys() {
		categories[key] = &PatternCategory{
			Description:  categoryDescriptions[key],
			ExampleNames: []string{},
		}
	}

	eligible := 0
	for _, p := range patterns {
		if p.AvgTimePerQuestion == 0 {
			continue
		}
		eligible++

		fast := p.AvgTimePerQuestion < timeThreshold
		lowMovement := p.AvgMovementsPerQuestion < movementThreshold

		var key string
		switch {
		case fast && lowMovement:
			key = CategoryFastDecisive
		case fast:
			key = CategoryFastExploratory
		case lowMovement:
			key = CategorySlowDecisive
		default:
			key = CategorySlowExploratory
		}

		cat := categories[key]
		cat.Count++
		if len(cat.ExampleNames) < exampleNameLimit {
			cat.ExampleNames = append(cat.ExampleNames, p.UserName)
		}
	}

	out := make(map[string]PatternCategory, len(categories))
	for key, cat := range categories {
		out[key] = *cat
	}

	return &UserPatternReport{
		TotalUsers: eligible,
		Thresholds: PatternThresholds{
			TimeMedian:     Round2(timeThreshold),
			MovementMedian: Round2(movementThreshold),
		},
		Categories: out,
	}
}
