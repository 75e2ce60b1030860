package model

import "time"

// RunStatus tracks a reconciliation run through the store.
type RunStatus string

const (
	RunStatusQueued   RunStatus = "queued"
	RunStatusRunning  RunStatus = "running"
	RunStatusComplete RunStatus = "complete"
	RunStatusFailed   RunStatus = "failed"
)

// RunInput names the two uploaded datasets.
type RunInput struct {
	SurveyFile   string `json:"survey_file"`
	AnalysisFile string `json:"analysis_file"`
}

// RunResult is the full output of one reconciliation run.
type RunResult struct {
	Poles    []PoleRecord  `json:"poles"`
	Failures []PoleFailure `json:"failures,omitempty"`
	Geo      []GeoPoint    `json:"geo,omitempty"`
}

// Run is a recorded reconciliation run.
type Run struct {
	ID        string     `json:"id"`
	Input     RunInput   `json:"input"`
	Status    RunStatus  `json:"status"`
	PoleCount int        `json:"pole_count"`
	Result    *RunResult `json:"result,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}
