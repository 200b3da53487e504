package engine

import (
	"sort"

	"github.com/jsphweid/pianocoach/model"
	"gonum.org/v1/gonum/stat"
)

const minTimingEvents = 4

// gaps this long are a pause, not tempo
const pauseMillis = 2000

const maxTimingSpreadCV = 0.5

// HasTimingIssue reports whether the spacing between key presses is uneven,
// measured as the coefficient of variation of the inter-onset gaps. Pass
// note-on events only.
func HasTimingIssue(noteOns model.Notes) bool {
	if len(noteOns) < minTimingEvents {
		return false
	}

	sorted := make(model.Notes, len(noteOns))
	copy(sorted, noteOns)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Timestamp < sorted[j].Timestamp
	})

	var gaps []float64
	for i := 1; i < len(sorted); i++ {
		gap := sorted[i].Timestamp - sorted[i-1].Timestamp
		if gap > 0 && gap < pauseMillis {
			gaps = append(gaps, float64(gap))
		}
	}
	if len(gaps) == 0 {
		return false
	}

	return coefficientOfVariation(gaps) > maxTimingSpreadCV
}

func coefficientOfVariation(x []float64) float64 {
	mean, std := stat.PopMeanStdDev(x, nil)
	if mean == 0 {
		return 0
	}
	return std / mean
}
