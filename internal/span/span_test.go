package span

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rkwm713/makeready-cli/internal/model"
	"github.com/rkwm713/makeready-cli/internal/rules"
	"github.com/rkwm713/makeready-cli/internal/survey"
)

func spanNode(pole string, lat, lon float64) map[string]any {
	return map[string]any{
		"attributes": map[string]any{
			"PoleNumber": map[string]any{"-Imported": pole},
		},
		"latitude":  lat,
		"longitude": lon,
	}
}

func sectionWithWires(wires []any) map[string]any {
	return map[string]any{
		"photos": map[string]any{"p": map[string]any{
			"association":     "main",
			"photofirst_data": map[string]any{"wire": wires},
		}},
	}
}

// spanFixture: n1 is the pole under analysis. n0 is its predecessor
// (backspan), n2 is a plain aerial span, n3 is a reference span, n4 is an
// underground path.
func spanFixture() survey.Document {
	return survey.Document{
		"nodes": map[string]any{
			"n0": spanNode("PL410619", 29.4200, -98.4900),
			"n1": spanNode("PL410620", 29.4210, -98.4900),
			"n2": spanNode("PL410621", 29.4220, -98.4900),
			"n3": spanNode("PL410622", 29.4210, -98.4890),
			"n4": spanNode("PL410623", 29.4200, -98.4890),
		},
		"connections": map[string]any{
			"c0": map[string]any{
				"node_id_1": "n1", "node_id_2": "n0",
				"sections": map[string]any{"s": sectionWithWires([]any{
					map[string]any{"_trace": "att", "_measured_height": 331.0, "_midspan_height": 310.0},
				})},
			},
			"c1": map[string]any{
				"node_id_1": "n1", "node_id_2": "n2",
				"sections": map[string]any{"s": sectionWithWires([]any{
					map[string]any{"_trace": "att", "_measured_height": 330.0, "_midspan_height": 262.0},
					map[string]any{"_trace": "att2", "_measured_height": 320.0, "_midspan_height": 255.0},
					map[string]any{"_trace": "neutral", "_measured_height": 355.5, "_midspan_height": 340.0},
				})},
			},
			"c2": map[string]any{
				"node_id_1": "n3", "node_id_2": "n1",
				"attributes": map[string]any{
					"connection_type": map[string]any{"button_added": "reference"},
				},
				"sections": map[string]any{"s": sectionWithWires([]any{
					map[string]any{"_trace": "att", "_measured_height": 330.0, "_midspan_height": 300.0},
					map[string]any{"_trace": "high", "_measured_height": 400.0},
				})},
			},
			"c3": map[string]any{
				"node_id_1": "n1", "node_id_2": "n4",
				"button": "underground_path",
				"sections": map[string]any{"s": sectionWithWires([]any{
					map[string]any{"_trace": "att", "_measured_height": 300.0, "_midspan_height": 280.0},
				})},
			},
			"dangling": map[string]any{"node_id_1": "n1", "node_id_2": ""},
		},
		"traces": map[string]any{
			"att":     map[string]any{"company": "ATT", "cable_type": "Fiber Optic Com"},
			"att2":    map[string]any{"company": "Charter", "cable_type": "Fiber Optic Com"},
			"neutral": map[string]any{"company": "CPS Energy", "cable_type": "Neutral"},
			"high":    map[string]any{"company": "Sparklight", "cable_type": "Fiber Optic Com"},
		},
	}
}

func analyzeFixture(t *testing.T) map[model.SpanKind][]model.Span {
	t.Helper()
	spans := Analyze(spanFixture(), "n1", "410620", rules.Default(), Options{
		PoleSequence: []string{"410619", "410620", "410621"},
	})
	require.Len(t, spans, 4) // dangling connection skipped

	byKind := make(map[model.SpanKind][]model.Span)
	for _, s := range spans {
		byKind[s.Kind] = append(byKind[s.Kind], s)
	}
	return byKind
}

func TestAnalyze_Backspan(t *testing.T) {
	byKind := analyzeFixture(t)
	require.Len(t, byKind[model.SpanBackspan], 1)
	back := byKind[model.SpanBackspan][0]
	assert.Equal(t, "410619", back.OtherPole)
	assert.Equal(t, "Backspan to 410619", back.Header)
	require.Len(t, back.Attachments, 1)
}

func TestAnalyze_PrimaryMinimums(t *testing.T) {
	byKind := analyzeFixture(t)
	require.Len(t, byKind[model.SpanPrimary], 2)

	var aerial, underground *model.Span
	for i := range byKind[model.SpanPrimary] {
		s := &byKind[model.SpanPrimary][i]
		if s.Underground {
			underground = s
		} else {
			aerial = s
		}
	}

	require.NotNil(t, aerial)
	require.NotNil(t, aerial.LowestComm)
	assert.InDelta(t, 255.0, *aerial.LowestComm, 1e-9) // lower of the two comm wires
	require.NotNil(t, aerial.LowestElectrical)
	assert.InDelta(t, 340.0, *aerial.LowestElectrical, 1e-9) // the neutral

	require.NotNil(t, underground)
	assert.Nil(t, underground.LowestComm)
	assert.Nil(t, underground.LowestElectrical)
	assert.Equal(t, "UG", underground.MidspanComm(func(*float64) string { return "" }))
}

func TestAnalyze_ReferenceSpan(t *testing.T) {
	byKind := analyzeFixture(t)
	require.Len(t, byKind[model.SpanReference], 1)
	ref := byKind[model.SpanReference][0]

	assert.Equal(t, "410622", ref.OtherPole)
	// n3 is due east of n1; direction computed from coordinates
	assert.Equal(t, "Ref (East) to 410622", ref.Header)
	require.Len(t, ref.Attachments, 2)
	// height descending
	assert.Equal(t, "SPARKLIGHT Fiber Optic Com", ref.Attachments[0].Description)
	assert.Equal(t, "AT&T Fiber Optic Com", ref.Attachments[1].Description)
}

func TestAnalyze_DirectionTagWins(t *testing.T) {
	doc := spanFixture()
	conns := doc["connections"].(map[string]any)
	conns["c2"].(map[string]any)["attributes"].(map[string]any)["direction_tag"] = "NW"

	spans := Analyze(doc, "n1", "410620", rules.Default(), Options{})
	var ref *model.Span
	for i := range spans {
		if spans[i].Kind == model.SpanReference {
			ref = &spans[i]
		}
	}
	require.NotNil(t, ref)
	assert.Equal(t, "Ref (North West) to 410622", ref.Header)
}

func TestPredecessorOf(t *testing.T) {
	seq := []string{"a", "b", "c"}
	assert.Equal(t, "", predecessorOf(seq, "a"))
	assert.Equal(t, "a", predecessorOf(seq, "b"))
	assert.Equal(t, "", predecessorOf(seq, "missing"))
}
