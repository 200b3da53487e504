package midi

import (
	"testing"

	"github.com/jsphweid/pianocoach/model"
	"github.com/stretchr/testify/assert"
)

func TestToNoteEventsOrdersAcrossTracks(t *testing.T) {
	events := []reducedEvent{
		{offset: 500000, note: 64, velocity: 90, isOn: true},
		{offset: 0, note: 60, velocity: 100, isOn: true},
		{offset: 500000, note: 60, velocity: 0},
		{offset: 1000000, note: 67, velocity: 80, isOn: true},
	}

	expected := model.Notes{
		{MidiNote: 60, Velocity: 100, Timestamp: 0, IsNoteOn: true},
		{MidiNote: 60, Velocity: 0, Timestamp: 500, IsNoteOn: false},
		{MidiNote: 64, Velocity: 90, Timestamp: 500, IsNoteOn: true},
		{MidiNote: 67, Velocity: 80, Timestamp: 1000, IsNoteOn: true},
	}
	assert.Equal(t, expected, toNoteEvents(events))
}

func TestToNoteEventsEmpty(t *testing.T) {
	assert.Empty(t, toNoteEvents(nil))
}

func TestReadMidiFileMissing(t *testing.T) {
	s, err := ReadMidiFile("does/not/exist.mid")
	assert.Error(t, err)
	assert.NotNil(t, s)
}
