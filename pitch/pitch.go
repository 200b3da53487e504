package pitch

// Class is a semitone independent of octave, 0 (C) through 11 (B).
type Class uint8

var names = [12]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

var blackKeys = [12]bool{1: true, 3: true, 6: true, 8: true, 10: true}

func FromMidi(note int) Class {
	pc := note % 12
	if pc < 0 {
		pc += 12
	}
	return Class(pc)
}

func (c Class) Name() string {
	return names[c%12]
}

func (c Class) IsBlackKey() bool {
	return blackKeys[c%12]
}

// Set is a membership table indexed by pitch class.
type Set [12]bool

func NewSet(classes ...Class) Set {
	var s Set
	for _, c := range classes {
		s[c%12] = true
	}
	return s
}

func (s Set) Has(c Class) bool {
	return s[c%12]
}

func (s Set) Len() int {
	n := 0
	for _, ok := range s {
		if ok {
			n++
		}
	}
	return n
}

// UniqueFromMidi collapses MIDI note numbers to the set of pitch classes they
// touch. Order and repetition are lost.
func UniqueFromMidi(notes []int) Set {
	var s Set
	for _, n := range notes {
		s[FromMidi(n)] = true
	}
	return s
}
