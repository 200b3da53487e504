package engine

import (
	"testing"

	"github.com/jsphweid/pianocoach/model"
	"github.com/stretchr/testify/assert"
)

func TestFocusWithoutNotes(t *testing.T) {
	assert.Equal(t, "Basic scales and chord progressions", SuggestFocusArea(nil))
}

func TestFocusNamesUnderplayedClasses(t *testing.T) {
	// white keys only; every black key is underplayed
	notes := pressed(60, 62, 64, 65, 67, 69, 71)
	assert.Equal(t,
		"Scales and exercises with C#, D#, F#, G#, A# notes",
		SuggestFocusArea(notes))
}

func TestFocusFallsBackToSkill(t *testing.T) {
	chromatic := span(60, 71, 1)
	assert.Equal(t, "Basic major and minor scales", SuggestFocusArea(pressed(chromatic...)))

	twoOctaves := span(48, 83, 1)
	assert.Equal(t, "Advanced scales and improvisation", SuggestFocusArea(pressed(twoOctaves...)))
}

func TestFocusIntermediateFallback(t *testing.T) {
	// 12 classes once each, range 23 with 12 unique keys
	notes := pressed(60, 61, 62, 63, 64, 65, 66, 67, 68, 69, 70, 83)
	assert.Equal(t, "Arpeggios and chord inversions", SuggestFocusArea(notes))
}

func TestFocusOnlyNoteOffs(t *testing.T) {
	notes := model.Notes{off(60, 0), off(61, 1)}
	assert.Equal(t, "Basic major and minor scales", SuggestFocusArea(notes))
}
