package analysis

import (
	"fmt"
	"math"
	"strings"

	"github.com/rkwm713/makeready-cli/internal/rules"
	"github.com/rkwm713/makeready-cli/internal/units"
)

// PoleOwner returns the normalized pole owner from either scenario.
func PoleOwner(loc *Location, r *rules.Rules) string {
	for _, d := range []*Design{loc.MeasuredDesign(), loc.RecommendedDesign()} {
		if d == nil {
			continue
		}
		if owner := r.NormalizeOwner(d.Structure.Pole.Owner.ID); owner != "" {
			return owner
		}
	}
	return ""
}

// PoleStructure formats the catalog description "height-class species",
// e.g. "40-3 Southern Pine". Height is rendered in whole feet.
func PoleStructure(loc *Location) string {
	for _, d := range []*Design{loc.MeasuredDesign(), loc.RecommendedDesign()} {
		if d == nil {
			continue
		}
		ci := d.Structure.Pole.ClientItem
		if ci.Height.Value == 0 && ci.ClassOfPole == "" {
			continue
		}
		feet := int(math.Round(ci.Height.Inches() / units.InchesPerFoot))
		s := fmt.Sprintf("%d-%s", feet, ci.ClassOfPole)
		if sp := strings.TrimSpace(ci.Species); sp != "" {
			s += " " + sp
		}
		return s
	}
	return ""
}

// ConstructionGrade returns the project's construction grade from the first
// analysis case that declares one.
func ConstructionGrade(p *Project) string {
	for _, ac := range p.ClientData.AnalysisCases {
		if g := strings.TrimSpace(ac.ConstructionGrade); g != "" {
			return g
		}
	}
	return ""
}

// LoadingPercent returns the pole stress utilization from the recommended
// design's analysis, formatted as a percentage. Empty when the design has no
// pole stress result.
func LoadingPercent(loc *Location) string {
	d := loc.RecommendedDesign()
	if d == nil {
		return ""
	}
	for _, set := range d.Analysis {
		for _, res := range set.Results {
			if res.Component == "Pole" && strings.EqualFold(res.AnalysisType, "STRESS") {
				return fmt.Sprintf("%.2f%%", res.Actual)
			}
		}
	}
	return ""
}

// RiserGuyCounts counts the risers and down guys in the recommended design.
func RiserGuyCounts(loc *Location) (risers, guys int) {
	d := loc.RecommendedDesign()
	if d == nil {
		return 0, 0
	}
	for _, e := range d.Structure.Equipments {
		if strings.Contains(strings.ToUpper(string(e.ClientItem.Type)), "RISER") {
			risers++
		}
	}
	return risers, len(d.Structure.Guys)
}
