package cmd

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/jsphweid/pianocoach/engine"
	"github.com/jsphweid/pianocoach/model"
	"github.com/jsphweid/pianocoach/store"
	"go.uber.org/zap"
)

// App is the HTTP boundary around the engine: it validates requests, reads
// and writes the store and turns every failure into a generic message.
type App struct {
	engine *engine.Engine
	store  store.Store
	log    *zap.Logger
	now    func() time.Time
}

func NewApp(e *engine.Engine, st store.Store, log *zap.Logger) *App {
	if log == nil {
		log = zap.NewNop()
	}
	return &App{engine: e, store: st, log: log, now: time.Now}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, model.ErrorResponse{Error: msg})
}

func (a *App) recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				a.log.Error("handler panicked", zap.String("path", r.URL.Path), zap.Any("error", err))
				writeError(w, http.StatusInternalServerError, "Internal server error")
			}
		}()
		next.ServeHTTP(w, r)
	})
}

func (a *App) HandleSuggestions(w http.ResponseWriter, r *http.Request) {
	var input model.SuggestionsRequestBody
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if len(input.Notes) == 0 || input.SessionId == "" {
		writeError(w, http.StatusBadRequest, "Missing notes or sessionId in request")
		return
	}

	suggestions := a.engine.GenerateSuggestions(input.Notes)

	err := store.SaveSuggestions(r.Context(), a.store, input.SessionId, suggestions, a.now())
	if err != nil {
		a.log.Error("could not save suggestions",
			zap.String("session_id", input.SessionId), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to generate suggestions")
		return
	}

	a.log.Info("generated suggestions",
		zap.String("session_id", input.SessionId), zap.Int("notes", len(input.Notes)))
	writeJSON(w, http.StatusOK, model.SuggestionsResponse{Suggestions: suggestions})
}

func (a *App) HandleAnalyzeScale(w http.ResponseWriter, r *http.Request) {
	var input model.AnalyzeScaleRequestBody
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if len(input.Notes) == 0 {
		writeError(w, http.StatusBadRequest, "Missing notes in request")
		return
	}
	writeJSON(w, http.StatusOK, a.engine.IdentifyScale(input.Notes))
}

func (a *App) HandleProgressReport(w http.ResponseWriter, r *http.Request) {
	sessionId := r.URL.Query().Get("sessionId")
	report, err := buildReport(r.Context(), a.store, a.engine, sessionId)
	switch {
	case errors.Is(err, errNoSessions):
		writeError(w, http.StatusNotFound, "No sessions found")
	case errors.Is(err, store.ErrSessionNotFound):
		writeError(w, http.StatusNotFound, "Session not found")
	case err != nil:
		a.log.Error("could not build progress report",
			zap.String("session_id", sessionId), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to generate progress report")
	default:
		writeJSON(w, http.StatusOK, report)
	}
}

func (a *App) HandleDailyGoal(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, model.DailyGoalResponse{Goal: a.engine.DailyGoal()})
}

func (a *App) HandleSaveNote(w http.ResponseWriter, r *http.Request) {
	var input model.SaveNoteRequestBody
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if input.Note == nil || input.SessionId == "" {
		writeError(w, http.StatusBadRequest, "Missing note or sessionId in request")
		return
	}

	err := store.SaveNote(r.Context(), a.store, input.SessionId, *input.Note, a.now())
	if err != nil {
		a.log.Error("could not save note",
			zap.String("session_id", input.SessionId), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to save note")
		return
	}
	writeJSON(w, http.StatusOK, model.SaveNoteResponse{Success: true})
}

func (a *App) HandleNotes(w http.ResponseWriter, r *http.Request) {
	notes, err := a.store.RecentNotes(r.Context())
	if err != nil {
		a.log.Error("could not load recent notes", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to get notes")
		return
	}
	writeJSON(w, http.StatusOK, model.NotesResponse{Notes: notes})
}

// HandleSessions lists every session, newest first.
func (a *App) HandleSessions(w http.ResponseWriter, r *http.Request) {
	byId, err := a.store.GetSessions(r.Context())
	if err != nil {
		a.log.Error("could not load sessions", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to get sessions")
		return
	}

	chronological := engine.Chronological(byId)
	sessions := make([]model.Session, 0, len(chronological))
	for i := len(chronological) - 1; i >= 0; i-- {
		sessions = append(sessions, chronological[i])
	}
	writeJSON(w, http.StatusOK, model.SessionsResponse{Sessions: sessions})
}
