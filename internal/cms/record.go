// Copyright (c) 2026 Daniel Marchetti
// SPDX-License-Identifier: GPL-3.0-or-later

package cms

// Record is a single content item as returned by the CMS. Field names
// and nesting vary by collection and by manual content entry, so all
// access goes through tolerant helpers that try several keys and return
// zero values on a miss.
type Record map[string]any

// Unwrap flattens the attributes-wrapped response shape some CMS API
// modes produce ({id, attributes: {...}}) into a single flat record.
// It is applied once at the client boundary so every downstream
// component sees one canonical shape. Records without an attributes
// wrapper pass through unchanged.
func Unwrap(raw map[string]any) Record {
	attrs, ok := raw["attributes"].(map[string]any)
	if !ok {
		return Record(raw)
	}

	flat := make(Record, len(attrs)+1)
	for k, v := range attrs {
		flat[k] = v
	}
	// The id lives outside the wrapper; keep it unless the attributes
	// carry their own.
	if id, ok := raw["id"]; ok {
		if _, exists := flat["id"]; !exists {
			flat["id"] = id
		}
	}
	return flat
}

// Field returns the first present value among the given keys.
func (r Record) Field(keys ...string) (any, bool) {
	for _, k := range keys {
		if v, ok := r[k]; ok && v != nil {
			return v, true
		}
	}
	return nil, false
}

// String returns the first non-empty string value among the given keys.
func (r Record) String(keys ...string) string {
	for _, k := range keys {
		if s, ok := r[k].(string); ok && s != "" {
			return s
		}
	}
	return ""
}

// Slice returns the first value among the given keys that is a list.
func (r Record) Slice(keys ...string) ([]any, bool) {
	for _, k := range keys {
		if v, ok := r[k].([]any); ok {
			return v, true
		}
	}
	return nil, false
}

// Map returns the first value among the given keys that is an object.
func (r Record) Map(keys ...string) (Record, bool) {
	for _, k := range keys {
		if v, ok := r[k].(map[string]any); ok {
			return Record(v), true
		}
	}
	return nil, false
}

// Number returns the first numeric value among the given keys. JSON
// decoding yields float64 for all numbers.
func (r Record) Number(keys ...string) (float64, bool) {
	for _, k := range keys {
		switch v := r[k].(type) {
		case float64:
			return v, true
		case int:
			return float64(v), true
		}
	}
	return 0, false
}
