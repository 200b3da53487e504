// Package store persists practice sessions and the short list of most
// recently played notes. Every backend hands the engine the same normalized
// model.Session regardless of how it keeps data.
package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jsphweid/pianocoach/model"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrUnknownStore    = errors.New("unknown store kind")
)

// RecentNotesLimit is how many notes the realtime feed keeps.
const RecentNotesLimit = 20

// UpdateFunc mutates a session in place. exists is false when the session is
// being created, in which case s only has its Id set.
type UpdateFunc func(s *model.Session, exists bool)

type Store interface {
	GetSession(ctx context.Context, id string) (model.Session, error)
	GetSessions(ctx context.Context) (model.SessionsById, error)
	// UpdateSession applies fn atomically with respect to other updates
	// going through the same store.
	UpdateSession(ctx context.Context, id string, fn UpdateFunc) error
	PushRecentNote(ctx context.Context, note model.NoteEvent) error
	RecentNotes(ctx context.Context) (model.Notes, error)
}

const (
	practiceDevice = "Mobile Piano App"
	unknownDevice  = "Unknown Device"
)

// SaveNote records a played note both in the realtime feed and in its
// session, creating the session on its first note.
func SaveNote(ctx context.Context, st Store, sessionId string, note model.NoteEvent, now time.Time) error {
	if err := st.PushRecentNote(ctx, note); err != nil {
		return fmt.Errorf("push recent note: %w", err)
	}
	err := st.UpdateSession(ctx, sessionId, func(s *model.Session, exists bool) {
		if !exists {
			s.StartTime = now.UnixMilli()
			s.DeviceInfo = practiceDevice
			s.Mode = "practice"
		}
		s.Notes = append(s.Notes, note)
	})
	if err != nil {
		return fmt.Errorf("append note to session %v: %w", sessionId, err)
	}
	return nil
}

// SaveSuggestions stores the latest analysis on a session.
func SaveSuggestions(ctx context.Context, st Store, sessionId string, suggestions []string, now time.Time) error {
	analyzed := now.UnixMilli()
	err := st.UpdateSession(ctx, sessionId, func(s *model.Session, exists bool) {
		if !exists {
			s.StartTime = analyzed
			s.DeviceInfo = unknownDevice
		}
		s.AiSuggestions = suggestions
		s.LastAnalyzed = &analyzed
	})
	if err != nil {
		return fmt.Errorf("save suggestions for session %v: %w", sessionId, err)
	}
	return nil
}

// StartSession creates an empty session for a recording.
func StartSession(ctx context.Context, st Store, sessionId, device string, now time.Time) error {
	return st.UpdateSession(ctx, sessionId, func(s *model.Session, exists bool) {
		if !exists {
			s.StartTime = now.UnixMilli()
			s.DeviceInfo = device
			s.Mode = "practice"
		}
	})
}

func EndSession(ctx context.Context, st Store, sessionId string, now time.Time) error {
	end := now.UnixMilli()
	return st.UpdateSession(ctx, sessionId, func(s *model.Session, exists bool) {
		s.EndTime = &end
	})
}

func pushRing(notes model.Notes, note model.NoteEvent) model.Notes {
	res := append(model.Notes{}, notes...)
	if len(res) >= RecentNotesLimit {
		res = res[len(res)-RecentNotesLimit+1:]
	}
	return append(res, note)
}

func cloneSession(s model.Session) model.Session {
	s.Notes = append(model.Notes(nil), s.Notes...)
	s.AiSuggestions = append([]string(nil), s.AiSuggestions...)
	return s
}
