package reconcile

import (
	"fmt"
	"strings"

	"github.com/rkwm713/makeready-cli/internal/model"
)

// ResolveField merges one attribute value from the two datasets under the
// given policy. A value present in only one dataset always wins; both
// absent yields the NA sentinel. Under the highlight policy a disagreement
// renders the survey value first with the model's in the annotation,
// as "survey (model: X)". The survey leads that rendering deliberately,
// even though the model is otherwise the authoritative dataset.
func ResolveField(surveyVal, modelVal string, policy model.Policy) string {
	s := strings.TrimSpace(surveyVal)
	m := strings.TrimSpace(modelVal)
	switch {
	case s == "" && m == "":
		return model.NA
	case s == "":
		return m
	case m == "":
		return s
	case strings.EqualFold(s, m):
		return m
	}

	switch policy {
	case model.PolicyPreferSurvey:
		return s
	case model.PolicyHighlight:
		return fmt.Sprintf("%s (model: %s)", s, m)
	default:
		return m
	}
}

// ResolveAttributes merges the per-pole attribute sets field by field.
// Coordinates are not policy-resolved: the engineering model's surveyed
// location wins when present.
func ResolveAttributes(surveyAttrs, modelAttrs model.PoleAttributes, policy model.Policy) model.PoleAttributes {
	out := model.PoleAttributes{
		Owner:             ResolveField(surveyAttrs.Owner, modelAttrs.Owner, policy),
		Structure:         ResolveField(surveyAttrs.Structure, modelAttrs.Structure, policy),
		ConstructionGrade: ResolveField(surveyAttrs.ConstructionGrade, modelAttrs.ConstructionGrade, policy),
		LoadingPercent:    ResolveField(surveyAttrs.LoadingPercent, modelAttrs.LoadingPercent, policy),
		Status:            ResolveField(surveyAttrs.Status, modelAttrs.Status, policy),
		ProposedRisers:    ResolveField(surveyAttrs.ProposedRisers, modelAttrs.ProposedRisers, policy),
		ProposedGuys:      ResolveField(surveyAttrs.ProposedGuys, modelAttrs.ProposedGuys, policy),
	}
	if modelAttrs.Latitude != nil && modelAttrs.Longitude != nil {
		out.Latitude, out.Longitude = modelAttrs.Latitude, modelAttrs.Longitude
	} else {
		out.Latitude, out.Longitude = surveyAttrs.Latitude, surveyAttrs.Longitude
	}
	return out
}
