package analytics

import (
	"math"
	"sort"

	"github.com/quadrantlabs/assessment-tracking-service/internal/models"
)

// PathDistance returns the total Euclidean distance traveled along an ordered
// sequence of cursor samples. Fewer than two samples travel no distance.
func PathDistance(samples []models.CursorSample) float64 {
	if len(samples) < 2 {
		return 0
	}
	var total float64
	for i := 1; i < len(samples); i++ {
		dx := float64(samples[i].X - samples[i-1].X)
		dy := float64(samples[i].Y - samples[i-1].Y)
		total += math.Hypot(dx, dy)
	}
	return total
}

// ComputeCursorStatistics derives the per-submission cursor aggregates that
// are attached to a record at ingestion. Questions are scanned in sorted id
// order; when movement counts tie, the first id wins the most/least picks.
func ComputeCursorStatistics(tracks map[string]models.CursorTrack) models.CursorStatistics {
	cs := models.CursorStatistics{
		TotalQuestionsTracked: len(tracks),
		MovementDetails:       make(map[string]models.MovementDetail),
	}
	if len(tracks) == 0 {
		return cs
	}

	ids := make([]string, 0, len(tracks))
	for id := range tracks {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	totalMovements := 0
	var mostID, leastID string
	var mostCount, leastCount int
	for i, id := range ids {
		track := tracks[id]
		count := track.TotalMovements
		totalMovements += count

		if len(track.Movements) > 1 {
			distance := PathDistance(track.Movements)
			avgDistance := 0.0
			if count > 0 {
				avgDistance = Round2(distance / float64(count))
			}
			cs.MovementDetails[id] = models.MovementDetail{
				TotalMovements:         count,
				TotalDistancePixels:    Round2(distance),
				AverageDistancePerMove: avgDistance,
			}
		}

		if i == 0 || count > mostCount {
			mostID, mostCount = id, count
		}
		if i == 0 || count < leastCount {
			leastID, leastCount = id, count
		}
	}

	cs.TotalMovementsAllQuestions = totalMovements
	cs.AverageMovementsPerQuestion = Round2(float64(totalMovements) / float64(len(tracks)))
	cs.QuestionsWithMostMovement = mostID
	cs.QuestionsWithLeastMovement = leastID
	return cs
}
