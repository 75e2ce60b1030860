package survey

import (
	"go.uber.org/zap"

	"github.com/rkwm713/makeready-cli/internal/model"
	"github.com/rkwm713/makeready-cli/internal/rules"
)

// AttachmentOptions tunes field-survey attachment extraction.
type AttachmentOptions struct {
	// MidspanPointFallback allows the point measurement to stand in for a
	// missing midspan height.
	MidspanPointFallback bool
}

// Attachments extracts the attachments recorded on one pole node, keyed by
// formatted description. When the same description appears on multiple
// wires, the record with the greater measured height wins; crews often shoot
// the same wire from both sides of the pole. Items flagged as proposed carry
// no existing height, only a proposed one.
func Attachments(doc Document, nodeID string, node map[string]any, r *rules.Rules, opts AttachmentOptions) map[string]model.Attachment {
	log := zap.L().With(zap.String("component", "survey"))
	out := make(map[string]model.Attachment)

	photoID := MainPhotoID(node)
	for _, wire := range PhotoWires(doc, node, photoID) {
		traceID := getString(wire, "_trace")
		meta := ResolveWire(wire, TraceByID(doc, traceID), r)
		desc := r.Description(meta.Owner, meta.CableType)
		if desc == "" {
			continue
		}

		h := Height(wire)
		if h == nil {
			log.Debug("wire without measurable height",
				zap.String("node", nodeID),
				zap.String("description", desc),
			)
			continue
		}

		att := model.Attachment{
			Owner:       meta.Owner,
			Description: desc,
			CableType:   meta.CableType,
			Category:    r.Classify(meta.Owner, desc, meta.CableType),
			Source:      model.SourceSurvey,
			Change:      model.ChangeUnchanged,
		}
		if meta.Proposed {
			att.ProposedHeight = h
			att.Proposed = true
			att.Change = model.ChangeInstall
		} else {
			att.ExistingHeight = h
		}
		att.MidspanHeight = MidspanForTrace(doc, nodeID, traceID, opts.MidspanPointFallback)

		if prev, ok := out[desc]; ok && prev.SortHeight() >= att.SortHeight() {
			continue
		}
		out[desc] = att
	}
	return out
}
