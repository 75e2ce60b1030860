package reconcile

import (
	"github.com/rkwm713/makeready-cli/internal/model"
)

// Rows assembles the report row sequence for one pole: the consolidated
// primary attachments first, then the backspan as a header row followed by
// its at-or-below-neutral attachments, then each reference span the same
// way. Primary spans contribute midspan minimums to the summary columns,
// not rows.
func Rows(attachments []model.Attachment, spans []model.Span, neutral *model.Attachment) []model.Row {
	var rows []model.Row
	for i := range attachments {
		att := attachments[i]
		rows = append(rows, model.Row{Kind: model.RowAttachment, Attachment: &att})
	}

	for _, kind := range []model.SpanKind{model.SpanBackspan, model.SpanReference} {
		for _, span := range spans {
			if span.Kind != kind {
				continue
			}
			rows = append(rows, model.Row{Kind: model.RowHeader, Header: span.Header, SpanKind: span.Kind})
			for _, att := range AtOrBelow(span.Attachments, neutral) {
				att := att
				rows = append(rows, model.Row{Kind: model.RowAttachment, SpanKind: span.Kind, Attachment: &att})
			}
		}
	}
	return rows
}

// Action summarizes the dominant change on a pole. Priority is fixed:
// a new install outranks any removal, which outranks everything else.
// Moves and untouched attachments both classify as existing.
func Action(atts []model.Attachment) model.PoleAction {
	hasRemove := false
	for _, att := range atts {
		switch att.Change {
		case model.ChangeInstall:
			return model.ActionInstalling
		case model.ChangeRemove:
			hasRemove = true
		}
	}
	if hasRemove {
		return model.ActionRemoving
	}
	return model.ActionExisting
}

// Status renders the pole action as the report status string.
func Status(action model.PoleAction) string {
	switch action {
	case model.ActionInstalling:
		return "Make Ready Required"
	case model.ActionRemoving:
		return "Removal Required"
	default:
		return "No Change"
	}
}
