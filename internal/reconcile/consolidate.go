// Package reconcile merges the per-pole attachment sets from the two
// datasets into canonical records and assembles the report row sequence.
package reconcile

import (
	"fmt"
	"math"
	"sort"

	"go.uber.org/zap"

	"github.com/rkwm713/makeready-cli/internal/model"
	"github.com/rkwm713/makeready-cli/internal/units"
)

// conflictToleranceInches bounds how far the two datasets may disagree on a
// height before the highlight policy annotates it.
const conflictToleranceInches = 0.5

// Consolidate merges the engineering and field attachment sets for one pole
// into the canonical descending-height list. The engineering model is
// authoritative for pole heights; the field survey fills the gaps it
// leaves: attachments the model never saw, and midspan measurements for
// moved wires. Records without any usable height are discarded
// with a diagnostic, never silently.
func Consolidate(engineering []model.Attachment, field map[string]model.Attachment, policy model.Policy) []model.Attachment {
	log := zap.L().With(zap.String("component", "reconcile"))

	var out []model.Attachment
	idx := make(map[string]int)

	// dedupe the engineering set by description, preferring records that
	// carry both heights
	for _, att := range engineering {
		if i, ok := idx[att.Description]; ok {
			if preferable(att, out[i]) {
				out[i] = att
			}
			continue
		}
		idx[att.Description] = len(out)
		out = append(out, att)
	}

	for i := range out {
		f, ok := field[out[i].Description]
		if !ok {
			continue
		}
		out[i].Source = model.SourceMerged
		if f.ExistingHeight != nil && out[i].ExistingHeight != nil {
			switch policy {
			case model.PolicyPreferSurvey:
				out[i].ExistingHeight = f.ExistingHeight
			case model.PolicyHighlight:
				if math.Abs(*f.ExistingHeight-*out[i].ExistingHeight) > conflictToleranceInches {
					out[i].Note = fmt.Sprintf("survey: %s", units.FormatFeetInches(*f.ExistingHeight))
				}
			}
		}
		// only moved wires inherit the survey midspan; a new install has
		// no measurable midspan yet and stays blank
		if out[i].MidspanHeight == nil && out[i].Change == model.ChangeMove {
			out[i].MidspanHeight = f.MidspanHeight
			out[i].Underground = out[i].Underground || f.Underground
		}
	}

	// field-only attachments, in sorted description order for determinism
	for _, desc := range sortedDescriptions(field) {
		if _, ok := idx[desc]; ok {
			continue
		}
		out = append(out, field[desc])
	}

	kept := out[:0]
	for _, att := range out {
		if !att.HasHeight() {
			log.Debug("discarding heightless attachment", zap.String("description", att.Description))
			continue
		}
		kept = append(kept, att)
	}

	SortDescending(kept)
	return kept
}

// preferable reports whether a should replace b as the representative
// record for a description: records carrying both heights win, then the
// higher one.
func preferable(a, b model.Attachment) bool {
	aBoth := a.ExistingHeight != nil && a.ProposedHeight != nil
	bBoth := b.ExistingHeight != nil && b.ProposedHeight != nil
	if aBoth != bBoth {
		return aBoth
	}
	return a.SortHeight() > b.SortHeight()
}

// SortDescending orders attachments by existing height, highest first.
// Attachments without an existing height sort by proposed height and come
// after those with one.
func SortDescending(atts []model.Attachment) {
	sort.SliceStable(atts, func(i, j int) bool {
		a, b := &atts[i], &atts[j]
		aExisting := a.ExistingHeight != nil
		bExisting := b.ExistingHeight != nil
		if aExisting != bExisting {
			return aExisting
		}
		return a.SortHeight() > b.SortHeight()
	})
}

func sortedDescriptions(m map[string]model.Attachment) []string {
	descs := make([]string, 0, len(m))
	for d := range m {
		descs = append(descs, d)
	}
	sort.Strings(descs)
	return descs
}
