package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jsphweid/pianocoach/engine"
	"github.com/jsphweid/pianocoach/model"
	"github.com/jsphweid/pianocoach/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var clock = time.Date(2024, 5, 4, 18, 0, 0, 0, time.UTC)

type firstGoal struct{}

func (firstGoal) Intn(n int) int { return 0 }

func newTestApp(st store.Store) (*App, http.Handler) {
	app := NewApp(engine.NewWith(firstGoal{}, func() time.Time { return clock }), st, nil)
	app.now = func() time.Time { return clock }
	return app, NewRouter(app, []string{"*"})
}

func do(t *testing.T, h http.Handler, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decode[A any](t *testing.T, w *httptest.ResponseRecorder) A {
	t.Helper()
	var res A
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	return res
}

func cMajorRun() model.Notes {
	var notes model.Notes
	for i, n := range []int{60, 62, 64, 65, 67, 69, 71, 72} {
		notes = append(notes, model.NoteEvent{MidiNote: n, Velocity: 90, Timestamp: int64(i) * 400, IsNoteOn: true})
	}
	return notes
}

func TestSuggestionsSavesToSession(t *testing.T) {
	st := store.NewMemoryStore()
	_, h := newTestApp(st)

	w := do(t, h, http.MethodPost, "/api/suggestions",
		model.SuggestionsRequestBody{Notes: cMajorRun(), SessionId: "s1"})
	require.Equal(t, http.StatusOK, w.Code)

	res := decode[model.SuggestionsResponse](t, w)
	assert.Equal(t, engine.GenerateSuggestions(cMajorRun()), res.Suggestions)

	s, err := st.GetSession(context.Background(), "s1")
	require.NoError(t, err)
	assert.Equal(t, res.Suggestions, s.AiSuggestions)
	assert.Equal(t, "Unknown Device", s.DeviceInfo)
	assert.Equal(t, clock.UnixMilli(), *s.LastAnalyzed)
}

func TestSuggestionsValidation(t *testing.T) {
	_, h := newTestApp(store.NewMemoryStore())

	cases := []struct {
		name string
		body any
	}{
		{"no notes", model.SuggestionsRequestBody{SessionId: "s1"}},
		{"no session", model.SuggestionsRequestBody{Notes: cMajorRun()}},
		{"not json", "just a string"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := do(t, h, http.MethodPost, "/api/suggestions", c.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.NotEmpty(t, decode[model.ErrorResponse](t, w).Error)
		})
	}
}

func TestAnalyzeScale(t *testing.T) {
	_, h := newTestApp(store.NewMemoryStore())

	w := do(t, h, http.MethodPost, "/api/analyze-scale",
		model.AnalyzeScaleRequestBody{Notes: []int{60, 62, 64, 65, 67, 69, 71, 72}})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, model.ScaleMatch{Scale: "C Major", Confidence: 1}, decode[model.ScaleMatch](t, w))

	w = do(t, h, http.MethodPost, "/api/analyze-scale", model.AnalyzeScaleRequestBody{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDailyGoal(t *testing.T) {
	_, h := newTestApp(store.NewMemoryStore())
	w := do(t, h, http.MethodGet, "/api/daily-goal", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, engine.DailyGoals()[0], decode[model.DailyGoalResponse](t, w).Goal)
}

func TestSaveNoteAndRecentNotes(t *testing.T) {
	st := store.NewMemoryStore()
	_, h := newTestApp(st)

	note := model.NoteEvent{MidiNote: 61, Velocity: 70, Timestamp: 5, IsNoteOn: true}
	w := do(t, h, http.MethodPost, "/api/save-note", model.SaveNoteRequestBody{Note: &note, SessionId: "live"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, decode[model.SaveNoteResponse](t, w).Success)

	w = do(t, h, http.MethodGet, "/api/notes", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, model.Notes{note}, decode[model.NotesResponse](t, w).Notes)

	s, err := st.GetSession(context.Background(), "live")
	require.NoError(t, err)
	assert.Equal(t, "Mobile Piano App", s.DeviceInfo)

	w = do(t, h, http.MethodPost, "/api/save-note", model.SaveNoteRequestBody{SessionId: "live"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProgressReport(t *testing.T) {
	st := store.NewMemoryStore()
	_, h := newTestApp(st)

	w := do(t, h, http.MethodGet, "/api/progress-report", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	ctx := context.Background()
	run := cMajorRun()
	for i, count := range []int{5, 10, 20} {
		id := string(rune('a' + i))
		start := clock.Add(time.Duration(i) * time.Hour)
		for j := 0; j < count; j++ {
			require.NoError(t, store.SaveNote(ctx, st, id, run[j%len(run)], start))
		}
		require.NoError(t, store.EndSession(ctx, st, id, start.Add(10*time.Minute)))
	}

	w = do(t, h, http.MethodGet, "/api/progress-report", nil)
	require.Equal(t, http.StatusOK, w.Code)
	progress := decode[model.ProgressReport](t, w)

	assert := assert.New(t)
	assert.Equal(3, progress.NumberOfSessions)
	assert.True(progress.Improving)
	assert.Equal(30.0, progress.TotalPracticeMinutes)
	assert.Equal(12, progress.AverageNotesPerSession)

	w = do(t, h, http.MethodGet, "/api/progress-report?sessionId=b", nil)
	require.Equal(t, http.StatusOK, w.Code)
	session := decode[model.SessionReport](t, w)
	assert.Equal(10, session.TotalNotes)
	assert.Equal(10.0, session.Duration)

	w = do(t, h, http.MethodGet, "/api/progress-report?sessionId=zzz", nil)
	assert.Equal(http.StatusNotFound, w.Code)
}

func TestProgressReportUsesFiveMostRecent(t *testing.T) {
	st := store.NewMemoryStore()
	_, h := newTestApp(st)

	ctx := context.Background()
	for i := 0; i < 7; i++ {
		start := clock.Add(time.Duration(i) * time.Hour)
		require.NoError(t, store.StartSession(ctx, st, string(rune('a'+i)), "test", start))
	}

	w := do(t, h, http.MethodGet, "/api/progress-report", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 5, decode[model.ProgressReport](t, w).NumberOfSessions)
}

func TestSessionsNewestFirst(t *testing.T) {
	st := store.NewMemoryStore()
	_, h := newTestApp(st)

	ctx := context.Background()
	require.NoError(t, store.StartSession(ctx, st, "old", "test", clock))
	require.NoError(t, store.StartSession(ctx, st, "new", "test", clock.Add(time.Hour)))

	w := do(t, h, http.MethodGet, "/api/sessions", nil)
	require.Equal(t, http.StatusOK, w.Code)

	sessions := decode[model.SessionsResponse](t, w).Sessions
	require.Len(t, sessions, 2)
	assert.Equal(t, "new", sessions[0].Id)
	assert.Equal(t, "old", sessions[1].Id)
}

type brokenStore struct {
	store.Store
}

func (brokenStore) GetSessions(ctx context.Context) (model.SessionsById, error) {
	return nil, errors.New("disk on fire")
}

func (brokenStore) RecentNotes(ctx context.Context) (model.Notes, error) {
	panic("unexpected")
}

func TestStoreFailuresAreGeneric(t *testing.T) {
	_, h := newTestApp(brokenStore{})

	w := do(t, h, http.MethodGet, "/api/progress-report", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Failed to generate progress report", decode[model.ErrorResponse](t, w).Error)
	assert.NotContains(t, w.Body.String(), "disk on fire")

	w = do(t, h, http.MethodGet, "/api/notes", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Internal server error", decode[model.ErrorResponse](t, w).Error)
}

func TestCorsPreflight(t *testing.T) {
	_, h := newTestApp(store.NewMemoryStore())

	req := httptest.NewRequest(http.MethodOptions, "/api/suggestions", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestWrongMethod(t *testing.T) {
	_, h := newTestApp(store.NewMemoryStore())
	w := do(t, h, http.MethodGet, "/api/suggestions", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}
