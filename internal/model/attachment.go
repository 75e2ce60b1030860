package model

// ChangeStatus classifies how an attachment differs between the current and
// proposed engineering scenarios.
type ChangeStatus string

const (
	ChangeUnchanged ChangeStatus = "unchanged"
	ChangeInstall   ChangeStatus = "install"
	ChangeRemove    ChangeStatus = "remove"
	ChangeMove      ChangeStatus = "move"
)

// WireCategory buckets a wire or equipment item by service class.
type WireCategory string

const (
	CategoryCommunication WireCategory = "communication"
	CategoryElectrical    WireCategory = "electrical"
	CategoryNeutral       WireCategory = "neutral"
	CategoryOther         WireCategory = "other"
)

// AttachmentSource identifies which dataset a record came from.
type AttachmentSource string

const (
	SourceSurvey   AttachmentSource = "survey"
	SourceAnalysis AttachmentSource = "analysis"
	SourceMerged   AttachmentSource = "merged"
)

// NA is the display sentinel for absent values.
const NA = "N/A"

// UG is the midspan sentinel for underground routing.
const UG = "UG"

// AttachmentKey identifies an attachment across design scenarios.
type AttachmentKey struct {
	Owner       string
	Description string
	CableType   string
}

// Attachment is one wire or piece of equipment on a pole. Heights are in
// inches; nil means the value is unknown in that scenario.
type Attachment struct {
	Owner          string           `json:"owner"`
	Description    string           `json:"description"`
	CableType      string           `json:"cable_type,omitempty"`
	Category       WireCategory     `json:"category"`
	ExistingHeight *float64         `json:"existing_height,omitempty"`
	ProposedHeight *float64         `json:"proposed_height,omitempty"`
	MidspanHeight  *float64         `json:"midspan_height,omitempty"`
	Underground    bool             `json:"underground,omitempty"`
	Proposed       bool             `json:"proposed,omitempty"`
	Change         ChangeStatus     `json:"change"`
	Source         AttachmentSource `json:"source"`
	Note           string           `json:"note,omitempty"`
}

// Key returns the scenario-diff identity of the attachment.
func (a *Attachment) Key() AttachmentKey {
	return AttachmentKey{Owner: a.Owner, Description: a.Description, CableType: a.CableType}
}

// HasHeight reports whether at least one of the pole heights is known.
func (a *Attachment) HasHeight() bool {
	return a.ExistingHeight != nil || a.ProposedHeight != nil
}

// SortHeight is the value used for descending height ordering: the existing
// height when known, otherwise the proposed height.
func (a *Attachment) SortHeight() float64 {
	if a.ExistingHeight != nil {
		return *a.ExistingHeight
	}
	if a.ProposedHeight != nil {
		return *a.ProposedHeight
	}
	return -1
}

// Height pins a float64 so height literals can be taken by address.
func Height(v float64) *float64 { return &v }
