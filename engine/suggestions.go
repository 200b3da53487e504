package engine

import (
	"fmt"
	"sort"

	"github.com/jsphweid/pianocoach/chord"
	"github.com/jsphweid/pianocoach/model"
	"github.com/jsphweid/pianocoach/pitch"
	"github.com/jsphweid/pianocoach/scale"
	"github.com/jsphweid/pianocoach/util"
)

const MaxSuggestions = 5

const (
	timingSuggestion    = "Work on your timing with a metronome - your note spacing is uneven"
	techniqueSuggestion = "Focus on keeping your wrists relaxed while playing"
)

var beginnerSuggestions = []string{
	"Try practicing the C major scale slowly",
	"Focus on keeping even rhythm between notes",
	"Make sure your hand position is relaxed",
	"Practice transitioning between C, F, and G chords",
	"Try playing quarter notes with your right hand while holding whole notes with your left",
}

var intermediateSuggestions = []string{
	"Work on the chromatic scale to improve finger independence",
	"Practice arpeggios in various keys",
	"Try playing scales in thirds to improve coordination",
	"Practice with a metronome to improve your timing",
	"Try the circle of fifths to practice different key signatures",
}

var advancedSuggestions = []string{
	"Work on Bach's inventions to improve contrapuntal playing",
	"Practice octave passages to build hand strength",
	"Try improvising over common chord progressions",
	"Practice scales in contrary motion",
	"Work on trills and ornaments for expressive playing",
}

func suggestionsFor(level model.SkillLevel) []string {
	switch level {
	case model.Advanced:
		return advancedSuggestions
	case model.Intermediate:
		return intermediateSuggestions
	default:
		return beginnerSuggestions
	}
}

// GenerateSuggestions returns at most MaxSuggestions distinct tips, most
// specific first: scale, timing, chord, technique, then two generic tips
// for the estimated skill level.
func GenerateSuggestions(notes model.Notes) []string {
	if len(notes) == 0 {
		return append([]string(nil), beginnerSuggestions[:3]...)
	}

	ons := notes.NoteOns()
	midiNotes := ons.MidiNotes()
	var res []string

	if match := scale.Identify(midiNotes); match.Scale != "" {
		res = append(res, fmt.Sprintf("Try practicing the %v scale with both hands", match.Scale))
	}

	if HasTimingIssue(ons) {
		res = append(res, timingSuggestion)
	}

	if s := chord.Suggest(mostCommonPitchClasses(midiNotes, 3)); s != "" {
		res = append(res, s)
	}

	res = append(res, techniqueSuggestion)
	res = append(res, suggestionsFor(EstimateSkill(notes))[:2]...)

	return util.Take(util.Dedupe(res), MaxSuggestions)
}

// mostCommonPitchClasses ranks pitch classes by count. Equal counts keep the
// order in which the classes first appeared.
func mostCommonPitchClasses(midiNotes []int, n int) []pitch.Class {
	counts := make(map[pitch.Class]int)
	var order []pitch.Class
	for _, note := range midiNotes {
		pc := pitch.FromMidi(note)
		if _, ok := counts[pc]; !ok {
			order = append(order, pc)
		}
		counts[pc]++
	}

	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})
	return util.Take(order, n)
}
