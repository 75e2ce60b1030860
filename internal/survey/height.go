package survey

import (
	"github.com/rkwm713/makeready-cli/internal/units"
)

// metersHeuristicMax guards the coordinate-style keys (z, z_coord,
// elevation), which sometimes carry meters with no unit attached. A pole
// attachment is never below 15 inches, so smaller values under those keys
// are treated as meters. This is a documented approximation of the export
// tooling's behavior, not a unit declaration.
const metersHeuristicMax = 15.0

type heightProbe struct {
	key string
	// coordinate reports whether the small-magnitude meters heuristic
	// applies to this key.
	coordinate bool
}

// heightProbes is the ordered key list for wire heights, most trusted
// first. The underscore-prefixed key is the field crew's annotation layer.
var heightProbes = []heightProbe{
	{key: "_measured_height"},
	{key: "measured_height"},
	{key: "height"},
	{key: "attachmentHeight"},
	{key: "z", coordinate: true},
	{key: "z_coord", coordinate: true},
	{key: "elevation", coordinate: true},
	{key: "value"},
	{key: "measuredHeight_in"},
}

// Height extracts a wire's measured height in inches, trying each known key
// in order. Values may be numbers, numeric strings, feet-inches strings like
// `23'-4"`, or {value, unit} maps. Returns nil when no key yields a number.
func Height(wire map[string]any) *float64 {
	for _, p := range heightProbes {
		v, ok := wire[p.key]
		if !ok || v == nil {
			continue
		}
		if h, ok := heightValue(v, p.coordinate); ok {
			return &h
		}
	}
	return nil
}

func heightValue(v any, coordinate bool) (float64, bool) {
	switch t := v.(type) {
	case map[string]any:
		f, ok := units.Float(t["value"])
		if !ok {
			return 0, false
		}
		unit := getString(t, "unit")
		if unit == "" {
			// unit-less {value} maps come from the engineering export,
			// which measures in meters
			unit = "METRE"
		}
		return units.ToInches(f, unit), true
	case string:
		if h, ok := units.ParseFeetInches(t); ok {
			return h, true
		}
		f, ok := units.Float(t)
		if !ok {
			return 0, false
		}
		return applyMetersHeuristic(f, coordinate), true
	default:
		f, ok := units.Float(v)
		if !ok {
			return 0, false
		}
		return applyMetersHeuristic(f, coordinate), true
	}
}

func applyMetersHeuristic(f float64, coordinate bool) float64 {
	if coordinate && f < metersHeuristicMax {
		return f * units.InchesPerMeter
	}
	return f
}
