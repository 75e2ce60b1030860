package model

// RowKind distinguishes attachment rows from span header rows.
type RowKind string

const (
	RowAttachment RowKind = "attachment"
	RowHeader     RowKind = "header"
)

// Row is one line of the assembled per-pole report sequence: the primary
// attachments first, then each non-primary span as a header row followed by
// that span's attachment rows.
type Row struct {
	Kind       RowKind     `json:"kind"`
	Header     string      `json:"header,omitempty"`
	SpanKind   SpanKind    `json:"span_kind,omitempty"`
	Attachment *Attachment `json:"attachment,omitempty"`
}
