package analysis

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEquipmentType_UnmarshalString(t *testing.T) {
	var ci EquipmentClientItem
	require.NoError(t, json.Unmarshal([]byte(`{"type":"RISER"}`), &ci))
	assert.Equal(t, EquipmentType("RISER"), ci.Type)
}

func TestEquipmentType_UnmarshalObject(t *testing.T) {
	var ci EquipmentClientItem
	require.NoError(t, json.Unmarshal([]byte(`{"type":{"name":"STREET_LIGHT"}}`), &ci))
	assert.Equal(t, EquipmentType("STREET_LIGHT"), ci.Type)
}

func TestMeasurement_Inches(t *testing.T) {
	assert.InDelta(t, 39.3701, Measurement{Unit: "METRE", Value: 1}.Inches(), 1e-9)
	assert.InDelta(t, 39.3701, Measurement{Value: 1}.Inches(), 1e-9) // defaults to meters
	assert.InDelta(t, 300.0, Measurement{Unit: "FEET", Value: 25}.Inches(), 1e-9)
}

func TestParse(t *testing.T) {
	p, err := Parse([]byte(`{
		"label": "Job 42",
		"leads": [{"locations": [
			{"label": "1-PL410620", "designs": []},
			{"label": "2-PL410621", "designs": []}
		]}]
	}`))
	require.NoError(t, err)
	assert.Equal(t, []string{"410620", "410621"}, p.PoleOrder())
}

func TestParse_Invalid(t *testing.T) {
	_, err := Parse([]byte(`{`))
	assert.Error(t, err)
}

func TestLocation_PoleIDFromTags(t *testing.T) {
	loc := &Location{Label: "unnumbered", PoleTags: []PoleTag{{Type: "MAP_NUMBER", Name: "PL410622"}}}
	id, ok := loc.PoleID()
	require.True(t, ok)
	assert.Equal(t, "410622", id)

	_, ok = (&Location{Label: "unnumbered"}).PoleID()
	assert.False(t, ok)
}

func TestLocation_Coordinates(t *testing.T) {
	loc := &Location{MapLocation: &MapLocation{Type: "Point", Coordinates: []float64{-98.49, 29.42}}}
	lat, lon, ok := loc.Coordinates()
	require.True(t, ok)
	assert.InDelta(t, 29.42, lat, 1e-9)
	assert.InDelta(t, -98.49, lon, 1e-9)

	_, _, ok = (&Location{}).Coordinates()
	assert.False(t, ok)
}

func TestProject_LocationByPole(t *testing.T) {
	p := &Project{Leads: []Lead{{Locations: []Location{{Label: "1-PL410620"}}}}}
	loc, ok := p.LocationByPole("410620")
	require.True(t, ok)
	assert.Equal(t, "1-PL410620", loc.Label)

	_, ok = p.LocationByPole("000")
	assert.False(t, ok)
}
