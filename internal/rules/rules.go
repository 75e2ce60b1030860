// Package rules holds the classification tables that drive owner
// normalization, wire categorization, and neutral identification. The
// defaults match the CPS Energy service territory; a YAML file can override
// any table for other utilities.
package rules

import (
	"os"
	"regexp"
	"strings"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/rkwm713/makeready-cli/internal/model"
	"github.com/rkwm713/makeready-cli/internal/units"
)

// Rules is the loaded rule set.
type Rules struct {
	OwnerAliases        map[string]string `yaml:"owner_aliases"`
	PrimaryOwner        string            `yaml:"primary_owner"`
	NeutralPatterns     []string          `yaml:"neutral_patterns"`
	UndergroundKeywords []string          `yaml:"underground_keywords"`
	EquipmentKeywords   []string          `yaml:"equipment_keywords"`

	neutralRes     []*regexp.Regexp
	undergroundRes []*regexp.Regexp
}

// Default returns the built-in rule set.
func Default() *Rules {
	r := &Rules{
		OwnerAliases: map[string]string{
			"ATT":        "AT&T",
			"AT AND T":   "AT&T",
			"ATANDT":     "AT&T",
			"AT T":       "AT&T",
			"CPS":        "CPS ENERGY",
			"CPS ENERGY": "CPS ENERGY",
		},
		PrimaryOwner: "CPS ENERGY",
		NeutralPatterns: []string{
			`(?i)\bneutral\b`,
		},
		UndergroundKeywords: []string{"underground", "riser", "vertical", "ug"},
		EquipmentKeywords:   []string{"riser", "drip loop", "street light", "transformer"},
	}
	r.compile()
	return r
}

// Load reads a rule file and merges it over the defaults. Empty tables in
// the file keep their default values.
func Load(path string) (*Rules, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "rules: read %s", path)
	}

	var loaded Rules
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		return nil, eris.Wrapf(err, "rules: parse %s", path)
	}

	r := Default()
	if len(loaded.OwnerAliases) > 0 {
		r.OwnerAliases = loaded.OwnerAliases
	}
	if loaded.PrimaryOwner != "" {
		r.PrimaryOwner = units.NormalizeOwner(loaded.PrimaryOwner, r.OwnerAliases)
	}
	if len(loaded.NeutralPatterns) > 0 {
		r.NeutralPatterns = loaded.NeutralPatterns
	}
	if len(loaded.UndergroundKeywords) > 0 {
		r.UndergroundKeywords = loaded.UndergroundKeywords
	}
	if len(loaded.EquipmentKeywords) > 0 {
		r.EquipmentKeywords = loaded.EquipmentKeywords
	}
	if err := r.compile(); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *Rules) compile() error {
	r.neutralRes = r.neutralRes[:0]
	for _, p := range r.NeutralPatterns {
		re, err := regexp.Compile(p)
		if err != nil {
			return eris.Wrapf(err, "rules: neutral pattern %q", p)
		}
		r.neutralRes = append(r.neutralRes, re)
	}
	// keywords match whole tokens, so "ug" never fires inside "gauge"
	r.undergroundRes = r.undergroundRes[:0]
	for _, kw := range r.UndergroundKeywords {
		re, err := regexp.Compile(`(?i)\b` + regexp.QuoteMeta(kw) + `\b`)
		if err != nil {
			return eris.Wrapf(err, "rules: underground keyword %q", kw)
		}
		r.undergroundRes = append(r.undergroundRes, re)
	}
	return nil
}

// NormalizeOwner folds an owner name through the alias table.
func (r *Rules) NormalizeOwner(raw string) string {
	return units.NormalizeOwner(raw, r.OwnerAliases)
}

// IsNeutral reports whether any of the wire's descriptive fields match a
// neutral pattern.
func (r *Rules) IsNeutral(fields ...string) bool {
	for _, f := range fields {
		for _, re := range r.neutralRes {
			if re.MatchString(f) {
				return true
			}
		}
	}
	return false
}

// IsUnderground reports whether the descriptive fields indicate underground
// or vertical routing.
func (r *Rules) IsUnderground(fields ...string) bool {
	for _, f := range fields {
		for _, re := range r.undergroundRes {
			if re.MatchString(f) {
				return true
			}
		}
	}
	return false
}

// Classify buckets a wire by its normalized owner and descriptive fields.
// Wires owned by the primary electrical utility are electrical (neutral when
// a neutral pattern matches); everything else with a known owner is
// communication.
func (r *Rules) Classify(owner, description, cableType string) model.WireCategory {
	if r.IsNeutral(description, cableType) {
		return model.CategoryNeutral
	}
	if owner == "" {
		return model.CategoryOther
	}
	if owner == r.PrimaryOwner {
		return model.CategoryElectrical
	}
	return model.CategoryCommunication
}

// Description builds the display description for an attachment. Neutral
// wires collapse to a single label regardless of owner spelling.
func (r *Rules) Description(owner, cableType string) string {
	if r.IsNeutral(cableType) {
		if owner == r.PrimaryOwner || owner == "" {
			return "Neutral"
		}
		return owner + " Neutral"
	}
	owner = strings.TrimSpace(owner)
	cableType = strings.TrimSpace(cableType)
	switch {
	case owner == "" && cableType == "":
		return ""
	case owner == "":
		return cableType
	case cableType == "":
		return owner
	default:
		return owner + " " + cableType
	}
}
