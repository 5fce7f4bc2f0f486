package extract

import (
	"encoding/json"
	"os"
	"sort"
)

// extractJSON classifies the document root: array with element count
// (plus keys of the first element if it is an object), object with its
// top-level keys, or the scalar category name. Keys are reported sorted
// since JSON object order is not preserved.
func (e *Extractor) extractJSON(rec *Record, path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		rec.JSONError = err.Error()
		return
	}

	var root any
	if err := json.Unmarshal(data, &root); err != nil {
		rec.JSONError = err.Error()
		return
	}

	switch v := root.(type) {
	case []any:
		count := len(v)
		rec.JSONType = "array"
		rec.RecordCount = &count
		if count > 0 {
			if first, ok := v[0].(map[string]any); ok {
				rec.SampleKeys = sortedKeys(first)
			}
		}
	case map[string]any:
		rec.JSONType = "object"
		rec.TopLevelKeys = sortedKeys(v)
	case string:
		rec.JSONType = "string"
	case float64:
		rec.JSONType = "number"
	case bool:
		rec.JSONType = "boolean"
	default:
		rec.JSONType = "null"
	}
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
