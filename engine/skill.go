package engine

import "github.com/jsphweid/pianocoach/model"

// EstimateSkill classifies a player by how much of the keyboard they reach
// and how many different keys they press. Both conditions of a tier must
// hold.
func EstimateSkill(notes model.Notes) model.SkillLevel {
	ons := notes.NoteOns()
	if len(ons) == 0 {
		return model.Beginner
	}

	lo, hi := ons[0].MidiNote, ons[0].MidiNote
	unique := make(map[int]bool)
	for _, n := range ons {
		if n.MidiNote < lo {
			lo = n.MidiNote
		}
		if n.MidiNote > hi {
			hi = n.MidiNote
		}
		unique[n.MidiNote] = true
	}
	noteRange := hi - lo

	switch {
	case noteRange > 24 && len(unique) > 12:
		return model.Advanced
	case noteRange > 12 && len(unique) > 7:
		return model.Intermediate
	default:
		return model.Beginner
	}
}
