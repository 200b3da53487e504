package midi

import (
	"bytes"
	"fmt"

	"gitlab.com/gomidi/midi/v2/smf"
)

// Excerpt cuts a window out of a file: every track keeps its note events at
// or after fromTicks, shifted so the window starts at tick 0, up to maxNotes
// note events per track (0 means no limit). Everything else a track carries
// (tempo, meter, program changes) is moved to the start so the excerpt still
// plays back at the right speed.
func Excerpt(mf *smf.SMF, fromTicks uint64, maxNotes int) (*smf.SMF, error) {
	res := smf.New()
	res.TimeFormat = mf.TimeFormat

	for _, track := range mf.Tracks {
		var newTrack smf.Track
		var absTicks, lastTicks uint64
		var numNotes int
	TrackEventLoop:
		for _, evt := range track {
			absTicks += uint64(evt.Delta)
			if isEndOfTrack(evt.Message) {
				break
			}

			var channel, key, velocity uint8
			isNote := evt.Message.GetNoteOn(&channel, &key, &velocity) ||
				evt.Message.GetNoteOff(&channel, &key, &velocity)

			switch {
			case isNote && absTicks < fromTicks:
				continue
			case isNote:
				at := absTicks - fromTicks
				newTrack = append(newTrack, smf.Event{Delta: uint32(at - lastTicks), Message: evt.Message})
				lastTicks = at
				numNotes++
				if maxNotes > 0 && numNotes >= maxNotes {
					break TrackEventLoop
				}
			default:
				newTrack = append(newTrack, smf.Event{Delta: 0, Message: evt.Message})
			}
		}

		newTrack.Close(0)
		if err := res.Add(newTrack); err != nil {
			return nil, fmt.Errorf("error adding excerpt track: %w", err)
		}
	}

	// a written and re-read file has its tempo map, which TimeAt needs
	var buf bytes.Buffer
	if _, err := res.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("error writing excerpt: %w", err)
	}
	out, err := smf.ReadFrom(&buf)
	if err != nil {
		return nil, fmt.Errorf("error reading excerpt: %w", err)
	}
	return out, nil
}

// end of track is FF 2F 00; Close writes a fresh one
func isEndOfTrack(m smf.Message) bool {
	return len(m) >= 2 && m[0] == 0xFF && m[1] == 0x2F
}
