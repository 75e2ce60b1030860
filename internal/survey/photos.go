package survey

// MainPhotoID picks the photo to read wire measurements from: the one
// associated as "main", falling back to the first in sorted order.
func MainPhotoID(entity map[string]any) string {
	photos, ok := getMap(entity, "photos")
	if !ok {
		return ""
	}
	keys := sortedKeys(photos)
	for _, id := range keys {
		p, ok := asMap(photos[id])
		if !ok {
			continue
		}
		if getString(p, "association") == "main" {
			return id
		}
		if flagSet(p, "main") {
			return id
		}
	}
	if len(keys) > 0 {
		return keys[0]
	}
	return ""
}

// PhotoWires returns the photofirst wire entries for a photo. The wire
// section is a list in newer exports and an ID-keyed map in older ones; map
// entries come back in sorted key order. The photofirst payload may live on
// the top-level photo record or inline on the node's photo entry.
func PhotoWires(doc Document, entity map[string]any, photoID string) []map[string]any {
	pf := photofirstData(doc, entity, photoID)
	if pf == nil {
		return nil
	}

	switch wires := pf["wire"].(type) {
	case []any:
		out := make([]map[string]any, 0, len(wires))
		for _, w := range wires {
			if m, ok := asMap(w); ok {
				out = append(out, m)
			}
		}
		return out
	case map[string]any:
		out := make([]map[string]any, 0, len(wires))
		for _, id := range sortedKeys(wires) {
			if m, ok := asMap(wires[id]); ok {
				out = append(out, m)
			}
		}
		return out
	}
	return nil
}

func photofirstData(doc Document, entity map[string]any, photoID string) map[string]any {
	if photoID == "" {
		return nil
	}
	if photos, ok := getMap(doc, "photos"); ok {
		if photo, ok := getMap(photos, photoID); ok {
			if pf, ok := getMap(photo, "photofirst_data"); ok {
				return pf
			}
		}
	}
	// inline layout: the node's own photo entry carries the payload
	if photos, ok := getMap(entity, "photos"); ok {
		if photo, ok := getMap(photos, photoID); ok {
			if pf, ok := getMap(photo, "photofirst_data"); ok {
				return pf
			}
		}
	}
	return nil
}
