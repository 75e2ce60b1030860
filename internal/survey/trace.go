package survey

// TraceByID resolves a trace record by ID, probing the storage layouts seen
// across export versions: keyed directly under traces, under trace_data,
// under trace_items, or nested one level under an arbitrary grouping key.
// Missing traces resolve to an empty record so wire metadata falls back to
// the wire's own fields.
func TraceByID(doc Document, traceID string) map[string]any {
	if traceID == "" {
		return map[string]any{}
	}
	traces, ok := getMap(doc, "traces")
	if !ok {
		return map[string]any{}
	}

	if t, ok := getMap(traces, traceID); ok {
		return t
	}
	for _, bucket := range []string{"trace_data", "trace_items"} {
		if sub, ok := getMap(traces, bucket); ok {
			if t, ok := getMap(sub, traceID); ok {
				return t
			}
		}
	}
	for _, k := range sortedKeys(traces) {
		if sub, ok := getMap(traces, k); ok {
			if t, ok := getMap(sub, traceID); ok {
				return t
			}
		}
	}
	return map[string]any{}
}
