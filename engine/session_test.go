package engine

import (
	"testing"
	"time"

	"github.com/jsphweid/pianocoach/model"
	"github.com/stretchr/testify/assert"
)

type fixedRand int

func (f fixedRand) Intn(n int) int {
	return int(f) % n
}

func newTestEngine(now time.Time) *Engine {
	return NewWith(fixedRand(0), func() time.Time { return now })
}

func TestAnalyzeSession(t *testing.T) {
	s := model.Session{
		StartTime: 0,
		EndTime:   int64p(150000),
		Notes: model.Notes{
			on(60, 0), off(60, 200),
			on(61, 500), off(61, 700),
			on(64, 1000), on(67, 1500),
		},
	}
	report := newTestEngine(time.Now()).AnalyzeSession(s)

	assert := assert.New(t)
	assert.Equal(2.5, report.Duration)
	assert.Equal(6, report.TotalNotes)
	assert.Equal(4, report.WhiteKeys)
	assert.Equal(2, report.BlackKeys)
	assert.Equal(GenerateSuggestions(s.Notes), report.Suggestions)
	assert.Equal("C Major", report.Scale)
}

func TestAnalyzeSessionWithoutEndUsesClock(t *testing.T) {
	start := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	s := model.Session{StartTime: start.UnixMilli()}
	report := newTestEngine(start.Add(90 * time.Second)).AnalyzeSession(s)

	assert := assert.New(t)
	assert.Equal(1.5, report.Duration)
	assert.Equal(0, report.TotalNotes)
	assert.Equal("", report.Scale)
	assert.Len(report.Suggestions, 3)
}

func TestDailyGoalComesFromTable(t *testing.T) {
	goals := DailyGoals()
	assert.Len(t, goals, 7)

	for i := 0; i < 10; i++ {
		e := NewWith(fixedRand(i), nil)
		assert.Equal(t, goals[i%7], e.DailyGoal())
	}

	e := New()
	for i := 0; i < 20; i++ {
		assert.Contains(t, goals, e.DailyGoal())
	}
}
