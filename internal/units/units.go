// Package units normalizes the heights, owner names, and pole identifiers
// that arrive in wildly inconsistent shapes from the two upstream datasets.
package units

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/rkwm713/makeready-cli/internal/model"
)

const (
	// InchesPerMeter matches the conversion factor used by the engineering
	// model exports.
	InchesPerMeter = 39.3701
	InchesPerFoot  = 12.0
)

var (
	feetInchesRe     = regexp.MustCompile(`^\s*(\d+)\s*'\s*-?\s*(\d+(?:\.\d+)?)\s*"?\s*$`)
	trailingDigitsRe = regexp.MustCompile(`(\d+)$`)
	multiSpaceRe     = regexp.MustCompile(`\s{2,}`)
)

// ToInches converts a height value in the named unit to inches. Unknown
// units are treated as inches already.
func ToInches(value float64, unit string) float64 {
	switch strings.ToLower(strings.TrimSpace(unit)) {
	case "metre", "meter", "metres", "meters", "m":
		return value * InchesPerMeter
	case "foot", "feet", "ft":
		return value * InchesPerFoot
	default:
		return value
	}
}

// Float coerces a loosely typed JSON value to float64. Strings are parsed;
// anything non-numeric reports false.
func Float(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case float32:
		return float64(t), true
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// ParseFeetInches parses a height written as feet and inches, e.g. `23'-4"`.
func ParseFeetInches(s string) (float64, bool) {
	m := feetInchesRe.FindStringSubmatch(s)
	if m == nil {
		return 0, false
	}
	feet, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, false
	}
	inches, err := strconv.ParseFloat(m[2], 64)
	if err != nil {
		return 0, false
	}
	return feet*InchesPerFoot + inches, true
}

// FormatFeetInches renders inches as `X'-Y"`, rounding to the nearest inch.
// A rounded remainder of 12 carries into the next foot, so 11.99 inches
// renders as `1'-0"` rather than `0'-12"`.
func FormatFeetInches(inches float64) string {
	feet := int(inches / InchesPerFoot)
	rem := int(math.Round(math.Mod(inches, InchesPerFoot)))
	if rem == 12 {
		feet++
		rem = 0
	}
	return fmt.Sprintf(`%d'-%d"`, feet, rem)
}

// FormatHeight renders an optional height, with the NA sentinel for nil.
func FormatHeight(h *float64) string {
	if h == nil {
		return model.NA
	}
	return FormatFeetInches(*h)
}

// NormalizeOwner folds an owner name for matching: trimmed, upper-cased,
// ampersands spelled out, then collapsed through the alias table so spelling
// variants of the same company compare equal. Unmapped owners pass through
// in folded form.
func NormalizeOwner(raw string, aliases map[string]string) string {
	folded := strings.ToUpper(strings.TrimSpace(raw))
	if folded == "" {
		return ""
	}
	folded = strings.ReplaceAll(folded, "&", " AND ")
	folded = strings.TrimSpace(multiSpaceRe.ReplaceAllString(folded, " "))
	if canonical, ok := aliases[folded]; ok {
		return canonical
	}
	return folded
}

// NormalizePoleID reduces a pole identifier to its trailing digit run,
// discarding tag prefixes like "PL" or "1-". IDs without a trailing digit
// run yield no match rather than a guess.
func NormalizePoleID(raw string) (string, bool) {
	s := strings.ToUpper(strings.TrimSpace(raw))
	m := trailingDigitsRe.FindStringSubmatch(s)
	if m == nil {
		return "", false
	}
	return m[1], true
}
