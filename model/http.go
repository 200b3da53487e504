package model

type SuggestionsRequestBody struct {
	Notes     Notes  `json:"notes"`
	SessionId string `json:"sessionId"`
}

type SuggestionsResponse struct {
	Suggestions []string `json:"suggestions"`
}

type AnalyzeScaleRequestBody struct {
	Notes []int `json:"notes"`
}

type SaveNoteRequestBody struct {
	Note      *NoteEvent `json:"note"`
	SessionId string     `json:"sessionId"`
}

type SaveNoteResponse struct {
	Success bool `json:"success"`
}

type DailyGoalResponse struct {
	Goal string `json:"goal"`
}

type NotesResponse struct {
	Notes Notes `json:"notes"`
}

type SessionsResponse struct {
	Sessions []Session `json:"sessions"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
