package model

import "fmt"

// Policy selects which dataset wins when both report a value.
type Policy string

const (
	PolicyPreferSurvey   Policy = "prefer_survey"
	PolicyPreferAnalysis Policy = "prefer_analysis"
	PolicyHighlight      Policy = "highlight_differences"
)

// PoleAction summarizes the dominant change on a pole.
type PoleAction string

const (
	ActionInstalling PoleAction = "I"
	ActionRemoving   PoleAction = "R"
	ActionExisting   PoleAction = "E"
)

// PoleAttributes are the per-pole fields resolved from both datasets.
// String fields carry the NA sentinel when neither dataset had a value.
type PoleAttributes struct {
	Owner             string   `json:"owner"`
	Structure         string   `json:"structure"` // "height-class species"
	ConstructionGrade string   `json:"construction_grade"`
	LoadingPercent    string   `json:"loading_percent"`
	Status            string   `json:"status"`
	ProposedRisers    string   `json:"proposed_risers"` // "YES (2)" or "NO"
	ProposedGuys      string   `json:"proposed_guys"`
	Latitude          *float64 `json:"latitude,omitempty"`
	Longitude         *float64 `json:"longitude,omitempty"`
}

// PoleRecord is the reconciled output for a single pole.
type PoleRecord struct {
	Number        string         `json:"number"` // normalized pole ID
	Attributes    PoleAttributes `json:"attributes"`
	Attachments   []Attachment   `json:"attachments"` // consolidated, height-descending
	BelowNeutral  []Attachment   `json:"below_neutral,omitempty"`
	NeutralHeight *float64       `json:"neutral_height,omitempty"`
	Spans         []Span         `json:"spans,omitempty"`
	Rows          []Row          `json:"rows"`
	Action        PoleAction     `json:"action"`
}

// PoleFailure records a pole that could not be processed. Failures never
// abort the run.
type PoleFailure struct {
	Pole  string `json:"pole"`
	Error string `json:"error"`
}

// GeoPoint is the map-summary projection of a pole.
type GeoPoint struct {
	Pole      string  `json:"pole"`
	Owner     string  `json:"owner"`
	Structure string  `json:"structure"`
	Status    string  `json:"status"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// CountSummary renders an equipment count as "YES (n)" or "NO".
func CountSummary(n int) string {
	if n <= 0 {
		return "NO"
	}
	return fmt.Sprintf("YES (%d)", n)
}
