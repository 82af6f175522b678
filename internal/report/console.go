package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/quadrantlabs/assessment-tracking-service/internal/analytics"
	"github.com/quadrantlabs/assessment-tracking-service/internal/services"
)

const ruleWidth = 70

// WriteText renders the analysis overview as a plain-text report for terminal
// consumption. Sections whose report is nil are printed as headers only, and
// an empty corpus short-circuits with an explicit message.
func WriteText(w io.Writer, overview *services.AnalysisOverview) {
	rule := strings.Repeat("=", ruleWidth)
	section := strings.Repeat("-", ruleWidth)

	fmt.Fprintln(w, rule)
	fmt.Fprintln(w, "PERSONALITY ASSESSMENT - DATA ANALYSIS REPORT")
	fmt.Fprintln(w, rule)
	fmt.Fprintln(w)

	if overview == nil || overview.TotalSubmissions == 0 {
		fmt.Fprintln(w, "No assessment data found!")
		return
	}

	fmt.Fprintf(w, "Loaded %d assessments\n", overview.TotalSubmissions)
	fmt.Fprintln(w)

	fmt.Fprintln(w, section)
	fmt.Fprintln(w, "RESPONSE TIME ANALYSIS")
	fmt.Fprintln(w, section)
	writeTimeSection(w, overview.Times)
	fmt.Fprintln(w)

	fmt.Fprintln(w, section)
	fmt.Fprintln(w, "CURSOR MOVEMENT ANALYSIS")
	fmt.Fprintln(w, section)
	writeMovementSection(w, overview.Movements)
	fmt.Fprintln(w)

	fmt.Fprintln(w, section)
	fmt.Fprintln(w, "USER BEHAVIOR PATTERNS")
	fmt.Fprintln(w, section)
	writePatternSection(w, overview.Patterns)
	fmt.Fprintln(w)

	fmt.Fprintln(w, rule)
	fmt.Fprintln(w, "END OF REPORT")
	fmt.Fprintln(w, rule)
}

func writeTimeSection(w io.Writer, times *analytics.TimeReport) {
	if times == nil {
		return
	}

	overall := times.Overall
	fmt.Fprintf(w, "Total responses analyzed: %d\n", overall.TotalResponses)
	fmt.Fprintf(w, "Average response time: %gs\n", overall.AverageTime)
	fmt.Fprintf(w, "Median response time: %gs\n", overall.MedianTime)
	fmt.Fprintf(w, "Range: %gs - %gs\n", overall.MinTime, overall.MaxTime)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Top 5 Most Difficult Questions (longest avg time):")
	for i, q := range topTimeQuestions(times.DifficultyRanking, 5) {
		fmt.Fprintf(w, "  %d. %s: %gs avg (σ=%g)\n", i+1, q.QuestionID, q.AverageTime, q.StdDev)
	}
}

func writeMovementSection(w io.Writer, movements *analytics.MovementReport) {
	if movements == nil {
		return
	}

	overall := movements.Overall
	fmt.Fprintf(w, "Total questions tracked: %d\n", overall.TotalTracked)
	fmt.Fprintf(w, "Average movements per question: %g\n", overall.AverageMovements)
	fmt.Fprintf(w, "Median movements: %g\n", overall.MedianMovements)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Top 5 Most Engaging Questions (most cursor activity):")
	for i, q := range topMovementQuestions(movements.EngagementRanking, 5) {
		fmt.Fprintf(w, "  %d. %s: %g avg movements\n", i+1, q.QuestionID, q.AverageMovements)
	}
}

func writePatternSection(w io.Writer, patterns *analytics.UserPatternReport) {
	if patterns == nil {
		return
	}

	fmt.Fprintf(w, "Total users analyzed: %d\n", patterns.TotalUsers)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "User Categories:")

	for _, key := range analytics.CategoryKeys() {
		category, ok := patterns.Categories[key]
		if !ok {
			continue
		}

		fmt.Fprintf(w, "\n  %s: %d users\n", titleCase(key), category.Count)
		fmt.Fprintf(w, "    %s\n", category.Description)
		if len(category.ExampleNames) > 0 {
			fmt.Fprintf(w, "    Examples: %s\n", strings.Join(category.ExampleNames, ", "))
		}
	}
}

func topTimeQuestions(ranking []analytics.RankedTimeQuestion, n int) []analytics.RankedTimeQuestion {
	if len(ranking) > n {
		return ranking[:n]
	}
	return ranking
}

func topMovementQuestions(ranking []analytics.RankedMovementQuestion, n int) []analytics.RankedMovementQuestion {
	if len(ranking) > n {
		return ranking[:n]
	}
	return ranking
}

// titleCase turns a snake_case category key into its display form,
// e.g. "fast_decisive" -> "Fast Decisive".
func titleCase(key string) string {
	words := strings.Split(key, "_")
	for i, word := range words {
		if word == "" {
			continue
		}
		words[i] = strings.ToUpper(word[:1]) + word[1:]
	}
	return strings.Join(words, " ")
}
