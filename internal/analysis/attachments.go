package analysis

import (
	"math"
	"strings"

	"github.com/rkwm713/makeready-cli/internal/model"
	"github.com/rkwm713/makeready-cli/internal/rules"
)

// moveToleranceInches separates a genuine relocation from float jitter
// between scenario exports. Heights are reported to the inch.
const moveToleranceInches = 0.5

// Attachments diffs the measured and recommended designs for one pole and
// returns the engineering attachment list in measured-design order, new
// installs appended. For an item present in both scenarios the proposed
// height is always set; it is a move only when the heights actually differ.
// Items present only in the measured design are removals, and items present
// only in the recommended design are new installs.
func Attachments(loc *Location, r *rules.Rules) []model.Attachment {
	measured := loc.MeasuredDesign()
	recommended := loc.RecommendedDesign()
	if measured == nil && recommended == nil {
		return nil
	}

	out := designAttachments(measured, r)
	idx := make(map[model.AttachmentKey]int, len(out))
	for i := range out {
		idx[out[i].Key()] = i
	}

	if recommended == nil {
		return out
	}

	matched := make(map[model.AttachmentKey]struct{})
	for _, prop := range designAttachments(recommended, r) {
		key := prop.Key()
		if i, ok := idx[key]; ok {
			matched[key] = struct{}{}
			cur := &out[i]
			proposed := *prop.ExistingHeight
			cur.ProposedHeight = &proposed
			if math.Abs(proposed-*cur.ExistingHeight) > moveToleranceInches {
				cur.Change = model.ChangeMove
			} else {
				cur.Change = model.ChangeUnchanged
			}
			if cur.MidspanHeight == nil {
				cur.MidspanHeight = prop.MidspanHeight
			}
			cur.Underground = cur.Underground || prop.Underground
			continue
		}
		install := prop
		install.ProposedHeight = prop.ExistingHeight
		install.ExistingHeight = nil
		install.Proposed = true
		install.Change = model.ChangeInstall
		out = append(out, install)
		idx[key] = len(out) - 1
	}

	for i := range out {
		if out[i].Change != model.ChangeUnchanged {
			continue
		}
		if _, ok := matched[out[i].Key()]; !ok {
			out[i].Change = model.ChangeRemove
		}
	}
	return out
}

// designAttachments flattens one design's wires, equipment, and guys into
// attachments with the design height in the existing slot. Duplicate keys
// keep the higher attachment.
func designAttachments(d *Design, r *rules.Rules) []model.Attachment {
	if d == nil {
		return nil
	}

	var out []model.Attachment
	idx := make(map[model.AttachmentKey]int)

	add := func(att model.Attachment) {
		key := att.Key()
		if i, ok := idx[key]; ok {
			if att.SortHeight() > out[i].SortHeight() {
				out[i] = att
			}
			return
		}
		idx[key] = len(out)
		out = append(out, att)
	}

	for _, w := range d.Structure.Wires {
		owner := r.NormalizeOwner(w.Owner.ID)
		cable := firstNonEmpty(w.ClientItem.Description, w.ClientItem.Size, w.ClientItem.Type)
		desc := r.Description(owner, cable)
		if desc == "" {
			continue
		}
		h := w.AttachmentHeight.Inches()
		att := model.Attachment{
			Owner:          owner,
			Description:    desc,
			CableType:      cable,
			Category:       wireCategory(w.UsageGroup, owner, desc, cable, r),
			ExistingHeight: &h,
			Underground:    r.IsUnderground(desc, cable, w.UsageGroup),
			Source:         model.SourceAnalysis,
			Change:         model.ChangeUnchanged,
		}
		if w.MidspanHeight != nil {
			mid := w.MidspanHeight.Inches()
			att.MidspanHeight = &mid
		}
		add(att)
	}

	for _, e := range d.Structure.Equipments {
		owner := r.NormalizeOwner(e.Owner.ID)
		etype := strings.TrimSpace(string(e.ClientItem.Type))
		desc := r.Description(owner, etype)
		if desc == "" {
			continue
		}
		h := e.AttachmentHeight.Inches()
		add(model.Attachment{
			Owner:          owner,
			Description:    desc,
			CableType:      etype,
			Category:       r.Classify(owner, desc, etype),
			ExistingHeight: &h,
			Underground:    r.IsUnderground(etype),
			Source:         model.SourceAnalysis,
			Change:         model.ChangeUnchanged,
		})
	}

	for _, g := range d.Structure.Guys {
		owner := r.NormalizeOwner(g.Owner.ID)
		desc := r.Description(owner, "Down Guy")
		if desc == "" {
			continue
		}
		h := g.AttachmentHeight.Inches()
		add(model.Attachment{
			Owner:          owner,
			Description:    desc,
			CableType:      "Down Guy",
			Category:       r.Classify(owner, desc, "Down Guy"),
			ExistingHeight: &h,
			Source:         model.SourceAnalysis,
			Change:         model.ChangeUnchanged,
		})
	}

	return out
}

func wireCategory(usageGroup, owner, desc, cable string, r *rules.Rules) model.WireCategory {
	switch strings.ToUpper(strings.TrimSpace(usageGroup)) {
	case "NEUTRAL":
		return model.CategoryNeutral
	case "COMMUNICATION", "COMMUNICATION_BUNDLE":
		return model.CategoryCommunication
	case "POWER", "PRIMARY", "SECONDARY":
		return model.CategoryElectrical
	}
	return r.Classify(owner, desc, cable)
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if s := strings.TrimSpace(v); s != "" {
			return s
		}
	}
	return ""
}
