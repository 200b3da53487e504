package engine

import (
	"fmt"
	"strings"

	"github.com/jsphweid/pianocoach/model"
	"github.com/jsphweid/pianocoach/pitch"
)

const noHistoryFocus = "Basic scales and chord progressions"

var focusBySkill = map[model.SkillLevel]string{
	model.Beginner:     "Basic major and minor scales",
	model.Intermediate: "Arpeggios and chord inversions",
	model.Advanced:     "Advanced scales and improvisation",
}

// SuggestFocusArea points at pitch classes played less than half as often as
// an even spread would give. With an even spread it falls back to a
// per-skill recommendation.
func SuggestFocusArea(notes model.Notes) string {
	if len(notes) == 0 {
		return noHistoryFocus
	}

	var counts [12]int
	var total int
	for _, n := range notes.NoteOns() {
		counts[pitch.FromMidi(n.MidiNote)]++
		total++
	}

	expected := float64(total) / 12
	var underplayed []string
	for pc, count := range counts {
		if float64(count) < expected*0.5 {
			underplayed = append(underplayed, pitch.Class(pc).Name())
		}
	}

	if len(underplayed) > 0 {
		return fmt.Sprintf("Scales and exercises with %v notes", strings.Join(underplayed, ", "))
	}
	return focusBySkill[EstimateSkill(notes)]
}
