package survey

import (
	"strings"

	"github.com/rkwm713/makeready-cli/internal/rules"
)

// WireMeta is the descriptive metadata resolved for one photofirst wire.
type WireMeta struct {
	Owner     string // normalized
	CableType string
	Proposed  bool
}

// unknownMeta fills in for wires whose trace is missing and whose own
// fields carry nothing. A measured wire still belongs in the report even
// when the crew never identified it.
const unknownMeta = "Unknown"

// ResolveWire merges trace metadata over the wire's own fields. The trace is
// the authoritative record of what a wire is; the wire's underscore-prefixed
// fields are field-crew fallbacks, and anything still unresolved defaults to
// Unknown rather than dropping the wire.
func ResolveWire(wire, trace map[string]any, r *rules.Rules) WireMeta {
	owner := firstString(trace, "company", "owner", "client")
	if owner == "" {
		owner = firstString(wire, "_company", "company", "owner", "client")
	}
	if owner == "" {
		owner = unknownMeta
	}
	cable := firstString(trace, "cable_type", "type", "description")
	if cable == "" {
		cable = firstString(wire, "_cable_type", "cable_type", "type", "description")
	}
	if strings.TrimSpace(cable) == "" {
		cable = unknownMeta
	}
	return WireMeta{
		Owner:     r.NormalizeOwner(owner),
		CableType: strings.TrimSpace(cable),
		Proposed:  flagSet(trace, "proposed") || flagSet(wire, "_proposed", "proposed"),
	}
}

// flagSet interprets the loose truthiness conventions of survey exports.
func flagSet(m map[string]any, keys ...string) bool {
	for _, k := range keys {
		switch v := m[k].(type) {
		case bool:
			if v {
				return true
			}
		case string:
			switch strings.ToLower(strings.TrimSpace(v)) {
			case "true", "yes", "proposed", "1":
				return true
			}
		case float64:
			if v == 1 {
				return true
			}
		}
	}
	return false
}
