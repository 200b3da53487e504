package engine

var dailyGoals = []string{
	"Practice C major scale for 10 minutes",
	"Work on chord transitions between G, C, and D for 15 minutes",
	"Practice sight reading a new piece for 20 minutes",
	"Work on the first section of your current piece for 15 minutes",
	"Memorize the first 8 measures of your new piece",
	"Practice arpeggios in F major and D minor",
	"Work on finger independence exercises for 10 minutes",
}

func DailyGoals() []string {
	return append([]string(nil), dailyGoals...)
}

// DailyGoal picks uniformly from the fixed goal table.
func (e *Engine) DailyGoal() string {
	return dailyGoals[e.rand.Intn(len(dailyGoals))]
}
