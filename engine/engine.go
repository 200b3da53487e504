// Package engine turns recorded note events into practice feedback: the
// likely key, chord and timing advice, a rough skill level and progress
// summaries across sessions.
//
// Everything here is a pure function of its input except DailyGoal (random)
// and the open-ended duration of an unfinished session (clock). Both
// dependencies are injected so an Engine is safe to share between
// goroutines as long as the injected source is.
package engine

import (
	"math/rand"
	"sync"
	"time"

	"github.com/jsphweid/pianocoach/model"
	"github.com/jsphweid/pianocoach/scale"
)

type Rand interface {
	Intn(n int) int
}

type Engine struct {
	rand Rand
	now  func() time.Time
}

// lockedRand guards a *rand.Rand, which is not safe for concurrent use.
type lockedRand struct {
	mu sync.Mutex
	r  *rand.Rand
}

func (l *lockedRand) Intn(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.Intn(n)
}

func New() *Engine {
	src := rand.New(rand.NewSource(time.Now().UnixNano()))
	return NewWith(&lockedRand{r: src}, time.Now)
}

func NewWith(r Rand, now func() time.Time) *Engine {
	if now == nil {
		now = time.Now
	}
	return &Engine{rand: r, now: now}
}

func (e *Engine) GenerateSuggestions(notes model.Notes) []string {
	return GenerateSuggestions(notes)
}

func (e *Engine) IdentifyScale(midiNotes []int) model.ScaleMatch {
	return scale.Identify(midiNotes)
}

func (e *Engine) AnalyzeProgress(sessions []model.Session) model.ProgressReport {
	return AnalyzeProgress(sessions)
}
