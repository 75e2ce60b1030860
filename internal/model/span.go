package model

// SpanKind classifies a connection leaving a pole.
type SpanKind string

const (
	SpanPrimary   SpanKind = "primary"
	SpanReference SpanKind = "reference"
	SpanBackspan  SpanKind = "backspan"
)

// Span is the analyzed result for one connection touching a pole.
type Span struct {
	Kind             SpanKind     `json:"kind"`
	OtherPole        string       `json:"other_pole,omitempty"`
	Direction        string       `json:"direction,omitempty"`
	Header           string       `json:"header,omitempty"` // e.g. `Ref (North East) to 410620`
	LowestComm       *float64     `json:"lowest_comm,omitempty"`
	LowestElectrical *float64     `json:"lowest_electrical,omitempty"`
	Underground      bool         `json:"underground,omitempty"`
	Attachments      []Attachment `json:"attachments,omitempty"`
}

// PrimaryMidspans folds the primary spans into the pole-level summary: the
// lowest communication and electrical midspans across all aerial primary
// spans, and whether any primary span routes underground.
func PrimaryMidspans(spans []Span) (comm, elec *float64, underground bool) {
	for i := range spans {
		s := &spans[i]
		if s.Kind != SpanPrimary {
			continue
		}
		if s.Underground {
			underground = true
			continue
		}
		if s.LowestComm != nil && (comm == nil || *s.LowestComm < *comm) {
			comm = s.LowestComm
		}
		if s.LowestElectrical != nil && (elec == nil || *s.LowestElectrical < *elec) {
			elec = s.LowestElectrical
		}
	}
	return comm, elec, underground
}

// MidspanComm renders the lowest communication midspan height, with the UG
// sentinel for underground routing.
func (s *Span) MidspanComm(format func(*float64) string) string {
	if s.Underground {
		return UG
	}
	return format(s.LowestComm)
}

// MidspanElectrical renders the lowest electrical midspan height.
func (s *Span) MidspanElectrical(format func(*float64) string) string {
	if s.Underground {
		return UG
	}
	return format(s.LowestElectrical)
}
