package models

// Suggestion is an ephemeral recommended task produced by the calendar rules.
// Suggestions are never persisted: accepting one converts it into a Task with
// a fresh id, dismissing one just drops it from the session's list.
type Suggestion struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Category    Category `json:"category"`
	Priority    Priority `json:"priority"`
	TimeMinutes int      `json:"time_minutes"`
	Reason      string   `json:"reason"`
	Icon        string   `json:"icon"`
}
