package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/jsphweid/pianocoach/constants"
	"github.com/jsphweid/pianocoach/engine"
	"github.com/jsphweid/pianocoach/store"
)

var errNoSessions = errors.New("no sessions found")

// buildReport analyzes one session when sessionId is set, otherwise the
// progress across the most recent sessions, oldest first.
func buildReport(ctx context.Context, st store.Store, e *engine.Engine, sessionId string) (any, error) {
	sessions, err := st.GetSessions(ctx)
	if err != nil {
		return nil, fmt.Errorf("load sessions: %w", err)
	}
	if len(sessions) == 0 {
		return nil, errNoSessions
	}

	if sessionId != "" {
		s, ok := sessions[sessionId]
		if !ok {
			return nil, store.ErrSessionNotFound
		}
		return e.AnalyzeSession(s), nil
	}

	recent := engine.Recent(engine.Chronological(sessions), constants.ProgressSessionLimit)
	return e.AnalyzeProgress(recent), nil
}
