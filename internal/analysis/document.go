// Package analysis reads the engineering-model dataset: a structured JSON
// project export with one location per pole and one design per scenario
// (field-measured versus recommended). Unlike the field survey, this export
// is regular enough to decode into types directly.
package analysis

import (
	"encoding/json"
	"os"

	"github.com/rotisserie/eris"

	"github.com/rkwm713/makeready-cli/internal/units"
)

// Project is the decoded engineering export.
type Project struct {
	Label      string     `json:"label"`
	ClientData ClientData `json:"clientData"`
	Leads      []Lead     `json:"leads"`
}

// ClientData carries the analysis configuration shared across poles.
type ClientData struct {
	AnalysisCases []AnalysisCase `json:"analysisCases"`
}

// AnalysisCase names a load case and its construction grade.
type AnalysisCase struct {
	Name              string `json:"name"`
	ConstructionGrade string `json:"constructionGrade"`
}

// Lead is an ordered run of pole locations.
type Lead struct {
	Label     string     `json:"label"`
	Locations []Location `json:"locations"`
}

// Location is one pole site with its design scenarios.
type Location struct {
	Label       string       `json:"label"`
	MapLocation *MapLocation `json:"mapLocation,omitempty"`
	PoleTags    []PoleTag    `json:"poleTags,omitempty"`
	Remedies    []Remedy     `json:"remedies,omitempty"`
	Designs     []Design     `json:"designs"`
}

// MapLocation is a GeoJSON-style point, coordinates ordered lon then lat.
type MapLocation struct {
	Type        string    `json:"type"`
	Coordinates []float64 `json:"coordinates"`
}

// PoleTag is an alias identifier stamped on the pole.
type PoleTag struct {
	Type string `json:"type"`
	Name string `json:"name"`
}

// Remedy is an engineering note attached to the pole.
type Remedy struct {
	Description string `json:"description"`
}

// Design is one scenario's structure plus its load analysis.
type Design struct {
	Label     string      `json:"label"`
	Layer     string      `json:"layerType,omitempty"`
	Structure Structure   `json:"structure"`
	Analysis  []ResultSet `json:"analysis,omitempty"`
}

// ResultSet groups analysis results for one load case.
type ResultSet struct {
	ID      string   `json:"id"`
	Results []Result `json:"results"`
}

// Result is a single component check.
type Result struct {
	Component    string  `json:"component"`
	AnalysisType string  `json:"analysisType"`
	Unit         string  `json:"unit,omitempty"`
	Actual       float64 `json:"actual"`
	Allowable    float64 `json:"allowable,omitempty"`
}

// Structure holds the pole and everything attached to it.
type Structure struct {
	Pole       Pole        `json:"pole"`
	Wires      []Wire      `json:"wires,omitempty"`
	Equipments []Equipment `json:"equipments,omitempty"`
	Guys       []Guy       `json:"guys,omitempty"`
}

// Pole is the structure's pole element.
type Pole struct {
	Owner      Owner          `json:"owner"`
	ClientItem PoleClientItem `json:"clientItem"`
}

// Owner identifies an attachment owner.
type Owner struct {
	ID       string `json:"id"`
	Industry string `json:"industry,omitempty"`
}

// PoleClientItem carries the pole's catalog properties.
type PoleClientItem struct {
	Height      Measurement `json:"height"`
	ClassOfPole string      `json:"classOfPole,omitempty"`
	Species     string      `json:"species,omitempty"`
}

// Measurement is a unit-tagged value. The export measures in meters unless
// it says otherwise.
type Measurement struct {
	Unit  string  `json:"unit,omitempty"`
	Value float64 `json:"value"`
}

// Inches converts the measurement to inches.
func (m Measurement) Inches() float64 {
	unit := m.Unit
	if unit == "" {
		unit = "METRE"
	}
	return units.ToInches(m.Value, unit)
}

// Wire is one wire attachment in a design.
type Wire struct {
	ID               string         `json:"id,omitempty"`
	Owner            Owner          `json:"owner"`
	ClientItem       WireClientItem `json:"clientItem"`
	UsageGroup       string         `json:"usageGroup,omitempty"`
	AttachmentHeight Measurement    `json:"attachmentHeight"`
	MidspanHeight    *Measurement   `json:"midspanHeight,omitempty"`
}

// WireClientItem carries the wire's catalog properties.
type WireClientItem struct {
	Description string `json:"description,omitempty"`
	Size        string `json:"size,omitempty"`
	Type        string `json:"type,omitempty"`
}

// Equipment is a non-wire attachment (riser, light, transformer).
type Equipment struct {
	Owner            Owner               `json:"owner"`
	ClientItem       EquipmentClientItem `json:"clientItem"`
	AttachmentHeight Measurement         `json:"attachmentHeight"`
}

// EquipmentClientItem carries the equipment's catalog properties.
type EquipmentClientItem struct {
	Type EquipmentType `json:"type"`
	Size string        `json:"size,omitempty"`
}

// EquipmentType decodes both spellings in the export: a bare string or an
// object with a name.
type EquipmentType string

func (t *EquipmentType) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*t = EquipmentType(s)
		return nil
	}
	var obj struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return eris.Wrap(err, "analysis: equipment type")
	}
	*t = EquipmentType(obj.Name)
	return nil
}

// Guy is a down-guy anchor attachment.
type Guy struct {
	Owner            Owner       `json:"owner"`
	AttachmentHeight Measurement `json:"attachmentHeight"`
}

// LoadFile reads and decodes an engineering export.
func LoadFile(path string) (*Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "analysis: read %s", path)
	}
	return Parse(data)
}

// Parse decodes an engineering export from raw bytes.
func Parse(data []byte) (*Project, error) {
	var p Project
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, eris.Wrap(err, "analysis: decode")
	}
	return &p, nil
}
