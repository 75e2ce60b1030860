package span

import (
	"math"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// compass holds the 8-way labels, clockwise from north.
var compass = [8]string{
	"North", "North East", "East", "South East",
	"South", "South West", "West", "North West",
}

var directionAbbrevs = map[string]string{
	"N": "North", "NE": "North East", "E": "East", "SE": "South East",
	"S": "South", "SW": "South West", "W": "West", "NW": "North West",
}

var titleCaser = cases.Title(language.English)

// Bearing computes the initial great-circle bearing in degrees from one
// coordinate to another, normalized to [0, 360).
func Bearing(lat1, lon1, lat2, lon2 float64) float64 {
	φ1 := lat1 * math.Pi / 180
	φ2 := lat2 * math.Pi / 180
	Δλ := (lon2 - lon1) * math.Pi / 180

	y := math.Sin(Δλ) * math.Cos(φ2)
	x := math.Cos(φ1)*math.Sin(φ2) - math.Sin(φ1)*math.Cos(φ2)*math.Cos(Δλ)
	deg := math.Atan2(y, x) * 180 / math.Pi
	return math.Mod(deg+360, 360)
}

// Cardinal buckets a bearing into one of the 8 compass labels.
func Cardinal(bearing float64) string {
	idx := int(math.Round(bearing/45)) % 8
	return compass[idx]
}

// CanonicalDirection normalizes a direction tag recorded by the field crew:
// abbreviations expand and free-text labels are title-cased, so "NE" and
// "north east" both come back as "North East".
func CanonicalDirection(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}
	if full, ok := directionAbbrevs[strings.ToUpper(s)]; ok {
		return full
	}
	return titleCaser.String(strings.ToLower(s))
}
