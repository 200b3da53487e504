package model

import "encoding/json"

type Session struct {
	Id            string   `json:"id,omitempty"`
	StartTime     int64    `json:"startTime"`
	EndTime       *int64   `json:"endTime,omitempty"`
	Notes         Notes    `json:"notes"`
	DeviceInfo    string   `json:"deviceInfo,omitempty"`
	Mode          string   `json:"mode,omitempty"`
	AiSuggestions []string `json:"aiSuggestions,omitempty"`
	LastAnalyzed  *int64   `json:"lastAnalyzed,omitempty"`
}

// SessionsById is what a store returns for a batch read. Iteration order of
// the map is meaningless; callers that care about order use engine.Chronological.
type SessionsById = map[string]Session

type ScaleMatch struct {
	Scale      string  `json:"scale"`
	Confidence float64 `json:"confidence"`
}

type SkillLevel string

const (
	Beginner     SkillLevel = "beginner"
	Intermediate SkillLevel = "intermediate"
	Advanced     SkillLevel = "advanced"
)

type SessionReport struct {
	Duration    float64  `json:"duration"`
	TotalNotes  int      `json:"totalNotes"`
	WhiteKeys   int      `json:"whiteKeys"`
	BlackKeys   int      `json:"blackKeys"`
	Suggestions []string `json:"suggestions"`
	Scale       string   `json:"scale"`
}

type ProgressReport struct {
	TotalPracticeMinutes   float64  `json:"totalPracticeMinutes"`
	AverageNotesPerSession int      `json:"averageNotesPerSession"`
	NumberOfSessions       int      `json:"numberOfSessions"`
	Improving              bool     `json:"improving"`
	Suggestions            []string `json:"suggestions"`
	Focus                  string   `json:"focus"`

	// set alone when there was nothing to analyze
	Error string `json:"error,omitempty"`
}

func (r ProgressReport) MarshalJSON() ([]byte, error) {
	if r.Error != "" {
		return json.Marshal(ErrorResponse{Error: r.Error})
	}
	type plain ProgressReport
	return json.Marshal(plain(r))
}
