package midi

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/jsphweid/pianocoach/model"
	"gitlab.com/gomidi/midi/v2/smf"
)

func ReadMidiFile(filepath string) (s *smf.SMF, e error) {
	var blank smf.SMF
	var err error

	// handle panics
	// https://github.com/gomidi/midi/issues/20
	defer func() {
		if r, ok := recover().(string); ok {
			s = &blank
			e = errors.New(r)
		}
	}()

	dat, err := os.ReadFile(filepath)
	if err != nil {
		return &blank, fmt.Errorf("error reading midi file: %w", err)
	}

	res, err := smf.ReadFrom(bytes.NewReader(dat))
	if err != nil {
		return &blank, fmt.Errorf("error parsing midi file: %w", err)
	}

	return res, nil
}

type reducedEvent struct {
	// microseconds from the start of the file
	offset   int64
	note     uint8
	velocity uint8
	isOn     bool
}

// NoteEvents flattens every track into one time-ordered stream of note
// events with millisecond timestamps. A note-on with velocity 0 is a
// note-off.
func NoteEvents(s *smf.SMF) model.Notes {
	var events []reducedEvent
	for _, track := range s.Tracks {
		var absTicks int64
		for _, event := range track {
			absTicks += int64(event.Delta)
			var channel, key, velocity uint8
			switch {
			case event.Message.GetNoteOn(&channel, &key, &velocity):
				events = append(events, reducedEvent{
					offset:   s.TimeAt(absTicks),
					note:     key,
					velocity: velocity,
					isOn:     velocity > 0,
				})
			case event.Message.GetNoteOff(&channel, &key, &velocity):
				events = append(events, reducedEvent{
					offset:   s.TimeAt(absTicks),
					note:     key,
					velocity: velocity,
				})
			}
		}
	}
	return toNoteEvents(events)
}

// prioritize smaller offsets, then note offs so a re-struck key releases
// before it sounds again
func toNoteEvents(events []reducedEvent) model.Notes {
	sort.SliceStable(events, func(i, j int) bool {
		if events[i].offset != events[j].offset {
			return events[i].offset < events[j].offset
		}
		return !events[i].isOn && events[j].isOn
	})

	res := make(model.Notes, 0, len(events))
	for _, e := range events {
		res = append(res, model.NoteEvent{
			MidiNote:  int(e.note),
			Velocity:  int(e.velocity),
			Timestamp: e.offset / 1000,
			IsNoteOn:  e.isOn,
		})
	}
	return res
}
