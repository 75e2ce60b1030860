package survey

import (
	"github.com/rkwm713/makeready-cli/internal/units"
)

// poleNumberAttrs are the attributes a pole number may live under, most
// trusted first.
var poleNumberAttrs = []string{"PoleNumber", "PL_number", "DLOC_number", "pole_tag", "electric_pole_tag"}

// Nodes returns the survey's node map.
func Nodes(doc Document) map[string]any {
	nodes, _ := getMap(doc, "nodes")
	return nodes
}

// Node returns a single node by internal ID.
func Node(doc Document, nodeID string) (map[string]any, bool) {
	return getMap(Nodes(doc), nodeID)
}

// PoleID returns the normalized pole number carried by a survey node.
func PoleID(node map[string]any) (string, bool) {
	for _, name := range poleNumberAttrs {
		if raw := AttributeValue(node, name); raw != "" {
			if id, ok := units.NormalizePoleID(raw); ok {
				return id, true
			}
		}
	}
	return "", false
}

// NodeByPole finds the survey node carrying the given normalized pole ID.
// Node IDs are visited in sorted order so lookups are deterministic.
func NodeByPole(doc Document, poleID string) (string, map[string]any, bool) {
	nodes := Nodes(doc)
	for _, nodeID := range sortedKeys(nodes) {
		node, ok := asMap(nodes[nodeID])
		if !ok {
			continue
		}
		if id, ok := PoleID(node); ok && id == poleID {
			return nodeID, node, true
		}
	}
	return "", nil, false
}

// NodeCoords returns a node's latitude and longitude, probing the top-level
// fields first and the attribute layer second.
func NodeCoords(node map[string]any) (lat, lon float64, ok bool) {
	lat, latOK := units.Float(node["latitude"])
	lon, lonOK := units.Float(node["longitude"])
	if latOK && lonOK {
		return lat, lon, true
	}
	lat, latOK = units.Float(AttributeValue(node, "latitude"))
	lon, lonOK = units.Float(AttributeValue(node, "longitude"))
	if latOK && lonOK {
		return lat, lon, true
	}
	return 0, 0, false
}
