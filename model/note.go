package model

import (
	"bytes"
	"encoding/json"
	"sort"
)

type NoteEvent struct {
	MidiNote  int   `json:"midiNote"`
	Velocity  int   `json:"velocity"`
	Timestamp int64 `json:"timestamp"`
	IsNoteOn  bool  `json:"isNoteOn"`
}

// Notes is the normalized in-memory shape of a session's notes. Stores may
// hand over either a JSON array or an object keyed by note id (the shape a
// push-id keyed realtime database produces); both decode to a sequence.
// Object entries are ordered by key, which is as close to insertion order as
// such a store gets.
type Notes []NoteEvent

func (n *Notes) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*n = nil
		return nil
	}

	if data[0] == '{' {
		var keyed map[string]NoteEvent
		if err := json.Unmarshal(data, &keyed); err != nil {
			return err
		}
		keys := make([]string, 0, len(keyed))
		for k := range keyed {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		res := make(Notes, 0, len(keyed))
		for _, k := range keys {
			res = append(res, keyed[k])
		}
		*n = res
		return nil
	}

	var list []NoteEvent
	if err := json.Unmarshal(data, &list); err != nil {
		return err
	}
	*n = list
	return nil
}

func (n Notes) MarshalJSON() ([]byte, error) {
	if n == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]NoteEvent(n))
}

// NoteOns keeps only the key presses, in input order.
func (n Notes) NoteOns() Notes {
	var res Notes
	for _, e := range n {
		if e.IsNoteOn {
			res = append(res, e)
		}
	}
	return res
}

func (n Notes) MidiNotes() []int {
	res := make([]int, 0, len(n))
	for _, e := range n {
		res = append(res, e.MidiNote)
	}
	return res
}
