// Package survey reads the field-survey dataset: a loosely structured JSON
// export of nodes, connections, photos, and traces collected on site. Field
// crews and import tooling store the same fact under several different keys,
// so every accessor here is an ordered probe over the layouts seen in the
// wild rather than a single schema.
package survey

import (
	"encoding/json"
	"os"
	"sort"
	"strings"

	"github.com/rotisserie/eris"
)

// Document is the decoded field-survey JSON.
type Document map[string]any

// LoadFile reads and decodes a survey export.
func LoadFile(path string) (Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "survey: read %s", path)
	}
	return Parse(data)
}

// Parse decodes a survey export from raw bytes.
func Parse(data []byte) (Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, eris.Wrap(err, "survey: decode")
	}
	return doc, nil
}

func asMap(v any) (map[string]any, bool) {
	m, ok := v.(map[string]any)
	return m, ok
}

func getMap(m map[string]any, key string) (map[string]any, bool) {
	if m == nil {
		return nil, false
	}
	return asMap(m[key])
}

// GetString returns the trimmed string at key, or "" when absent or not a
// string.
func GetString(m map[string]any, key string) string {
	return getString(m, key)
}

func getString(m map[string]any, key string) string {
	if m == nil {
		return ""
	}
	s, _ := m[key].(string)
	return strings.TrimSpace(s)
}

func firstString(m map[string]any, keys ...string) string {
	for _, k := range keys {
		if s := getString(m, k); s != "" {
			return s
		}
	}
	return ""
}

// sortedKeys makes map iteration deterministic where order leaks into
// output.
func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// attributeValueKeys are the editor-provenance keys a survey attribute value
// may hide under, most trusted first.
var attributeValueKeys = []string{"-Imported", "assessment", "button_added", "auto_calced", "value", "one"}

// AttributeValue digs a value out of a node or connection attribute, which
// may be a bare string or a map keyed by editor provenance.
func AttributeValue(entity map[string]any, name string) string {
	attrs, ok := getMap(entity, "attributes")
	if !ok {
		return ""
	}
	switch v := attrs[name].(type) {
	case string:
		return strings.TrimSpace(v)
	case map[string]any:
		for _, k := range attributeValueKeys {
			if s, ok := v[k].(string); ok && strings.TrimSpace(s) != "" {
				return strings.TrimSpace(s)
			}
		}
		for _, k := range sortedKeys(v) {
			if s, ok := v[k].(string); ok && strings.TrimSpace(s) != "" {
				return strings.TrimSpace(s)
			}
		}
	}
	return ""
}
