package engine

import (
	"sort"

	"github.com/jsphweid/pianocoach/model"
	"github.com/jsphweid/pianocoach/util"
	"gonum.org/v1/gonum/stat"
)

const NoSessionsError = "No session data available"

// sessions needed before a trend means anything
const minTrendSessions = 3

// AnalyzeProgress summarizes sessions in the order given; that order is the
// x axis of the improvement trend, so pass them oldest first. A session with
// no end time counts as zero minutes.
func AnalyzeProgress(sessions []model.Session) model.ProgressReport {
	if len(sessions) == 0 {
		return model.ProgressReport{Error: NoSessionsError}
	}

	var minutes float64
	var pooled model.Notes
	counts := make([]int, 0, len(sessions))
	for _, s := range sessions {
		end := s.StartTime
		if s.EndTime != nil {
			end = *s.EndTime
		}
		minutes += float64(end-s.StartTime) / millisPerMinute
		counts = append(counts, len(s.Notes))
		pooled = append(pooled, s.Notes...)
	}

	avg := float64(util.Sum(counts)) / float64(len(counts))

	return model.ProgressReport{
		TotalPracticeMinutes:   util.RoundTo(minutes, 1),
		AverageNotesPerSession: int(util.RoundTo(avg, 0)),
		NumberOfSessions:       len(sessions),
		Improving:              isImproving(counts),
		Suggestions:            GenerateSuggestions(pooled),
		Focus:                  SuggestFocusArea(pooled),
	}
}

// isImproving fits a least-squares line through (index, note count).
func isImproving(counts []int) bool {
	if len(counts) < minTrendSessions {
		return false
	}
	xs := make([]float64, len(counts))
	for i := range xs {
		xs[i] = float64(i)
	}
	_, slope := stat.LinearRegression(xs, util.ToFloats(counts), nil, false)
	return slope > 0
}

// Chronological orders stored sessions oldest first, breaking start time
// ties by id so the result is stable.
func Chronological(sessions model.SessionsById) []model.Session {
	res := make([]model.Session, 0, len(sessions))
	for _, id := range util.GetKeys(sessions) {
		s := sessions[id]
		if s.Id == "" {
			s.Id = id
		}
		res = append(res, s)
	}
	sort.Slice(res, func(i, j int) bool {
		if res[i].StartTime != res[j].StartTime {
			return res[i].StartTime < res[j].StartTime
		}
		return res[i].Id < res[j].Id
	})
	return res
}

// Recent keeps the last n sessions of a chronological slice.
func Recent(chronological []model.Session, n int) []model.Session {
	if len(chronological) <= n {
		return chronological
	}
	return chronological[len(chronological)-n:]
}
