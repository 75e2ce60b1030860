package analysis

import (
	"strings"

	"github.com/rkwm713/makeready-cli/internal/units"
)

// Scenario design labels, matched case-insensitively by substring since
// exports vary in capitalization and numbering.
const (
	measuredLabel    = "measured design"
	recommendedLabel = "recommended design"
)

// Locations flattens the project's leads into document order, which is the
// engineering pole sequence the report follows.
func (p *Project) Locations() []*Location {
	var out []*Location
	for i := range p.Leads {
		for j := range p.Leads[i].Locations {
			out = append(out, &p.Leads[i].Locations[j])
		}
	}
	return out
}

// PoleID returns the location's normalized pole number, from its label
// first and its pole tags second.
func (l *Location) PoleID() (string, bool) {
	if id, ok := units.NormalizePoleID(l.Label); ok {
		return id, true
	}
	for _, tag := range l.PoleTags {
		if id, ok := units.NormalizePoleID(tag.Name); ok {
			return id, true
		}
	}
	return "", false
}

// PoleOrder returns the normalized pole IDs in engineering sequence, first
// occurrence winning on duplicates.
func (p *Project) PoleOrder() []string {
	seen := make(map[string]struct{})
	var order []string
	for _, loc := range p.Locations() {
		id, ok := loc.PoleID()
		if !ok {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		order = append(order, id)
	}
	return order
}

// LocationByPole finds the location for a normalized pole ID.
func (p *Project) LocationByPole(poleID string) (*Location, bool) {
	for _, loc := range p.Locations() {
		if id, ok := loc.PoleID(); ok && id == poleID {
			return loc, true
		}
	}
	return nil, false
}

// Design finds a scenario design by label fragment.
func (l *Location) Design(labelFragment string) *Design {
	for i := range l.Designs {
		if strings.Contains(strings.ToLower(l.Designs[i].Label), labelFragment) {
			return &l.Designs[i]
		}
	}
	return nil
}

// MeasuredDesign is the field-measured ("current") scenario.
func (l *Location) MeasuredDesign() *Design { return l.Design(measuredLabel) }

// RecommendedDesign is the proposed scenario.
func (l *Location) RecommendedDesign() *Design { return l.Design(recommendedLabel) }

// Coordinates returns the location's latitude and longitude.
func (l *Location) Coordinates() (lat, lon float64, ok bool) {
	if l.MapLocation == nil || len(l.MapLocation.Coordinates) < 2 {
		return 0, 0, false
	}
	// GeoJSON order: lon, lat
	return l.MapLocation.Coordinates[1], l.MapLocation.Coordinates[0], true
}
