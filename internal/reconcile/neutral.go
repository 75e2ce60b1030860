package reconcile

import (
	"github.com/rkwm713/makeready-cli/internal/model"
	"github.com/rkwm713/makeready-cli/internal/rules"
)

// HighestNeutral finds the pole's reference neutral: the highest attachment
// classified as neutral, by category or by pattern match on its descriptive
// fields. Nil when the pole has no identifiable neutral.
func HighestNeutral(atts []model.Attachment, r *rules.Rules) *model.Attachment {
	var best *model.Attachment
	for i := range atts {
		att := &atts[i]
		if att.Category != model.CategoryNeutral && !r.IsNeutral(att.Description, att.CableType) {
			continue
		}
		if !att.HasHeight() {
			continue
		}
		if best == nil || att.SortHeight() > best.SortHeight() {
			best = att
		}
	}
	return best
}

// AtOrBelow filters attachments to those at or below the neutral height.
// The comparison is inclusive: an attachment exactly at the neutral height
// is communication space and must be kept. Without a neutral the list
// passes through unfiltered.
func AtOrBelow(atts []model.Attachment, neutral *model.Attachment) []model.Attachment {
	if neutral == nil {
		return atts
	}
	limit := neutral.SortHeight()
	out := make([]model.Attachment, 0, len(atts))
	for _, att := range atts {
		if att.SortHeight() <= limit {
			out = append(out, att)
		}
	}
	return out
}
