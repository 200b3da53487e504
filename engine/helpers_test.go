package engine

import "github.com/jsphweid/pianocoach/model"

func on(note int, ts int64) model.NoteEvent {
	return model.NoteEvent{MidiNote: note, Velocity: 100, Timestamp: ts, IsNoteOn: true}
}

func off(note int, ts int64) model.NoteEvent {
	return model.NoteEvent{MidiNote: note, Velocity: 0, Timestamp: ts, IsNoteOn: false}
}

func onsAt(timestamps ...int64) model.Notes {
	var res model.Notes
	for _, ts := range timestamps {
		res = append(res, on(60, ts))
	}
	return res
}

// pressed plays each note once, 500ms apart.
func pressed(notes ...int) model.Notes {
	var res model.Notes
	for i, n := range notes {
		res = append(res, on(n, int64(i)*500))
	}
	return res
}

func int64p(v int64) *int64 {
	return &v
}
