package engine

import (
	"github.com/jsphweid/pianocoach/model"
	"github.com/jsphweid/pianocoach/pitch"
	"github.com/jsphweid/pianocoach/scale"
	"github.com/jsphweid/pianocoach/util"
)

const millisPerMinute = 60000

// AnalyzeSession summarizes one session. A session without an end time is
// measured up to now.
func (e *Engine) AnalyzeSession(s model.Session) model.SessionReport {
	end := e.now().UnixMilli()
	if s.EndTime != nil {
		end = *s.EndTime
	}
	duration := float64(end-s.StartTime) / millisPerMinute

	var white, black int
	for _, n := range s.Notes {
		if pitch.FromMidi(n.MidiNote).IsBlackKey() {
			black++
		} else {
			white++
		}
	}

	return model.SessionReport{
		Duration:    util.RoundTo(duration, 1),
		TotalNotes:  len(s.Notes),
		WhiteKeys:   white,
		BlackKeys:   black,
		Suggestions: GenerateSuggestions(s.Notes),
		Scale:       scale.Identify(s.Notes.MidiNotes()).Scale,
	}
}
