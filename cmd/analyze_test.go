package cmd

import (
	"testing"

	"github.com/jsphweid/pianocoach/model"
	"github.com/stretchr/testify/assert"
)

func TestAnalyzeNotes(t *testing.T) {
	notes := cMajorRun()
	notes = append(notes, model.NoteEvent{MidiNote: 72, Timestamp: 4000})

	res := analyzeNotes(notes)

	assert := assert.New(t)
	assert.Equal(8, res.Notes)
	assert.Equal("C Major", res.Scale.Scale)
	assert.Equal(model.Beginner, res.Skill)
	assert.False(res.TimingIssue)
	assert.NotEmpty(res.Suggestions)
	assert.NotEmpty(res.Focus)
}

func TestAnalyzeNotesEmpty(t *testing.T) {
	res := analyzeNotes(nil)
	assert.Equal(t, 0, res.Notes)
	assert.Equal(t, model.ScaleMatch{}, res.Scale)
	assert.Equal(t, "Basic scales and chord progressions", res.Focus)
}
