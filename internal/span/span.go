// Package span analyzes the connections leaving a pole in the field survey:
// classifying each as primary, reference, or backspan, and extracting the
// midspan clearance minimums the report summarizes.
package span

import (
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/rkwm713/makeready-cli/internal/model"
	"github.com/rkwm713/makeready-cli/internal/reconcile"
	"github.com/rkwm713/makeready-cli/internal/rules"
	"github.com/rkwm713/makeready-cli/internal/survey"
)

// Options tunes span analysis for one pole.
type Options struct {
	// PoleSequence is the engineering pole order; the span back to the
	// previous pole in the sequence is the backspan.
	PoleSequence []string
	// MidspanPointFallback allows a wire's point measurement to stand in
	// for a missing midspan height.
	MidspanPointFallback bool
}

// Analyze classifies every connection touching the pole's survey node and
// extracts each span's midspan minimums and attachment list. Connections
// with a missing far endpoint are skipped with a diagnostic.
func Analyze(doc survey.Document, nodeID, poleID string, r *rules.Rules, opts Options) []model.Span {
	log := zap.L().With(zap.String("component", "span"), zap.String("pole", poleID))

	node, _ := survey.Node(doc, nodeID)
	predecessor := predecessorOf(opts.PoleSequence, poleID)

	var spans []model.Span
	for _, ref := range survey.ConnectionsTouching(doc, nodeID) {
		if ref.OtherNode == "" {
			log.Debug("connection missing far endpoint", zap.String("connection", ref.ID))
			continue
		}
		other, ok := survey.Node(doc, ref.OtherNode)
		if !ok {
			log.Debug("connection to unknown node",
				zap.String("connection", ref.ID),
				zap.String("node", ref.OtherNode),
			)
			continue
		}

		otherPole, _ := survey.PoleID(other)
		sp := model.Span{Kind: model.SpanPrimary, OtherPole: otherPole}

		comm, elec, atts := spanWires(doc, ref.Conn, r, opts.MidspanPointFallback)
		sp.LowestComm = comm
		sp.LowestElectrical = elec

		if isUnderground(ref.Conn) {
			sp.Underground = true
			sp.LowestComm = nil
			sp.LowestElectrical = nil
		}

		switch {
		case predecessor != "" && otherPole == predecessor:
			sp.Kind = model.SpanBackspan
			sp.Direction = "Backspan"
			sp.Header = "Backspan to " + otherPole
			sp.Attachments = atts
		case isReference(ref.Conn):
			sp.Kind = model.SpanReference
			sp.Direction = direction(ref.Conn, node, other)
			sp.Header = referenceHeader(sp.Direction, otherPole)
			sp.Attachments = atts
		}
		spans = append(spans, sp)
	}
	return spans
}

func referenceHeader(dir, otherPole string) string {
	switch {
	case dir != "" && otherPole != "":
		return fmt.Sprintf("Ref (%s) to %s", dir, otherPole)
	case dir != "":
		return fmt.Sprintf("Ref (%s)", dir)
	case otherPole != "":
		return "Ref to " + otherPole
	}
	return "Ref"
}

// direction resolves a span's compass direction: the crew's tag when one
// was recorded, otherwise computed from the endpoint coordinates.
func direction(conn, node, other map[string]any) string {
	for _, key := range []string{"direction_tag", "direction"} {
		if tag := survey.AttributeValue(conn, key); tag != "" {
			return CanonicalDirection(tag)
		}
	}
	lat1, lon1, ok1 := survey.NodeCoords(node)
	lat2, lon2, ok2 := survey.NodeCoords(other)
	if !ok1 || !ok2 {
		return ""
	}
	return Cardinal(Bearing(lat1, lon1, lat2, lon2))
}

// isReference probes the ways a crew can mark a reference span, across
// export generations.
func isReference(conn map[string]any) bool {
	if ct := survey.AttributeValue(conn, "connection_type"); strings.Contains(strings.ToLower(ct), "reference") {
		return true
	}
	if ba, _ := conn["button_added"].(string); strings.EqualFold(strings.TrimSpace(ba), "reference") {
		return true
	}
	if survey.AttributeValue(conn, "reference") != "" {
		return true
	}
	st := survey.AttributeValue(conn, "span_type")
	if st == "" {
		st, _ = conn["span_type"].(string)
	}
	return strings.Contains(strings.ToLower(st), "ref")
}

func isUnderground(conn map[string]any) bool {
	if b, _ := conn["button"].(string); strings.EqualFold(strings.TrimSpace(b), "underground_path") {
		return true
	}
	ct := survey.AttributeValue(conn, "connection_type")
	return strings.Contains(strings.ToLower(ct), "underground")
}

// spanWires walks a connection's sections and returns the lowest
// communication midspan, the lowest electrical midspan, and the span's
// attachment list. Ties and duplicates resolve to the lower measurement;
// sag is what the report cares about.
func spanWires(doc survey.Document, conn map[string]any, r *rules.Rules, pointFallback bool) (comm, elec *float64, atts []model.Attachment) {
	seen := make(map[string]int)

	sections := survey.Sections(conn)
	for _, sectionID := range sortedKeys(sections) {
		section, ok := sections[sectionID].(map[string]any)
		if !ok {
			continue
		}
		photoID := survey.MainPhotoID(section)
		for _, wire := range survey.PhotoWires(doc, section, photoID) {
			meta := survey.ResolveWire(wire, survey.TraceByID(doc, survey.GetString(wire, "_trace")), r)
			desc := r.Description(meta.Owner, meta.CableType)
			if desc == "" {
				continue
			}
			category := r.Classify(meta.Owner, desc, meta.CableType)

			midspan := survey.WireMidspan(section, wire, pointFallback)
			if midspan != nil {
				switch category {
				case model.CategoryCommunication:
					comm = lower(comm, midspan)
				case model.CategoryElectrical, model.CategoryNeutral:
					elec = lower(elec, midspan)
				}
			}

			h := survey.Height(wire)
			if h == nil {
				continue
			}
			att := model.Attachment{
				Owner:         meta.Owner,
				Description:   desc,
				CableType:     meta.CableType,
				Category:      category,
				MidspanHeight: midspan,
				Source:        model.SourceSurvey,
				Change:        model.ChangeUnchanged,
			}
			if meta.Proposed {
				att.ProposedHeight = h
				att.Proposed = true
				att.Change = model.ChangeInstall
			} else {
				att.ExistingHeight = h
			}
			if i, ok := seen[desc]; ok {
				if att.SortHeight() > atts[i].SortHeight() {
					atts[i] = att
				}
				continue
			}
			seen[desc] = len(atts)
			atts = append(atts, att)
		}
	}

	reconcile.SortDescending(atts)
	return comm, elec, atts
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func lower(cur, candidate *float64) *float64 {
	if cur == nil || *candidate < *cur {
		return candidate
	}
	return cur
}

func predecessorOf(sequence []string, poleID string) string {
	for i, id := range sequence {
		if id == poleID && i > 0 {
			return sequence[i-1]
		}
	}
	return ""
}
