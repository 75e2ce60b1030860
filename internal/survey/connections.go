package survey

// ConnectionRef pairs a connection record with the far endpoint as seen
// from one node.
type ConnectionRef struct {
	ID        string
	Conn      map[string]any
	OtherNode string
}

// ConnectionsTouching returns every connection with the given node as an
// endpoint, in sorted connection-ID order.
func ConnectionsTouching(doc Document, nodeID string) []ConnectionRef {
	conns, ok := getMap(doc, "connections")
	if !ok {
		return nil
	}
	var out []ConnectionRef
	for _, connID := range sortedKeys(conns) {
		conn, ok := asMap(conns[connID])
		if !ok {
			continue
		}
		n1 := firstString(conn, "node_id_1", "node_id1")
		n2 := firstString(conn, "node_id_2", "node_id2")
		switch nodeID {
		case n1:
			out = append(out, ConnectionRef{ID: connID, Conn: conn, OtherNode: n2})
		case n2:
			out = append(out, ConnectionRef{ID: connID, Conn: conn, OtherNode: n1})
		}
	}
	return out
}

// Sections returns a connection's section map.
func Sections(conn map[string]any) map[string]any {
	sections, _ := getMap(conn, "sections")
	return sections
}

// WireMidspan probes a span wire's midspan height in order: the field
// crew's annotation first, then the wire and section computed fields. The
// point measurement is a last resort the caller opts into, since it is
// taken at the photo location rather than the true midspan.
func WireMidspan(section, wire map[string]any, pointFallback bool) *float64 {
	for _, key := range []string{"_midspan_height", "midspanHeight_in"} {
		if v, ok := wire[key]; ok && v != nil {
			if h, ok := heightValue(v, false); ok {
				return &h
			}
		}
	}
	if v, ok := section["midspanHeight_in"]; ok && v != nil {
		if h, ok := heightValue(v, false); ok {
			return &h
		}
	}
	if pointFallback {
		if v, ok := wire["_measured_height"]; ok && v != nil {
			if h, ok := heightValue(v, false); ok {
				return &h
			}
		}
	}
	return nil
}

// MidspanForTrace scans the spans leaving a node for wires on the given
// trace and returns the lowest midspan height found.
func MidspanForTrace(doc Document, nodeID, traceID string, pointFallback bool) *float64 {
	if traceID == "" {
		return nil
	}
	var lowest *float64
	for _, ref := range ConnectionsTouching(doc, nodeID) {
		sections := Sections(ref.Conn)
		for _, sectionID := range sortedKeys(sections) {
			section, ok := asMap(sections[sectionID])
			if !ok {
				continue
			}
			photoID := MainPhotoID(section)
			for _, wire := range PhotoWires(doc, section, photoID) {
				if getString(wire, "_trace") != traceID {
					continue
				}
				h := WireMidspan(section, wire, pointFallback)
				if h == nil {
					continue
				}
				if lowest == nil || *h < *lowest {
					lowest = h
				}
			}
		}
	}
	return lowest
}
