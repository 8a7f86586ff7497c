package store

import (
	"encoding/json"
	"fmt"
)

// The memory backend manipulates records through their document form so
// that field keys mean the same thing in both backends: the json tags on
// the models match their bson tags.

// docOf converts a record into its document (key/value) form.
func docOf[T any](rec T) (map[string]interface{}, error) {
	data, err := json.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("failed to encode record: %w", err)
	}

	doc := map[string]interface{}{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode record document: %w", err)
	}
	return doc, nil
}

// fromDoc converts a document back into a typed record.
func fromDoc[T any](doc map[string]interface{}) (T, error) {
	var rec T
	data, err := json.Marshal(doc)
	if err != nil {
		return rec, fmt.Errorf("failed to encode record document: %w", err)
	}
	if err := json.Unmarshal(data, &rec); err != nil {
		return rec, fmt.Errorf("failed to decode record: %w", err)
	}
	return rec, nil
}

// applyFields merges fields into a record through its document form.
func applyFields[T any](rec T, fields map[string]interface{}) (T, error) {
	doc, err := docOf(rec)
	if err != nil {
		var zero T
		return zero, err
	}
	for k, v := range fields {
		doc[k] = normalizeValue(v)
	}
	return fromDoc[T](doc)
}

// normalizeValue passes v through JSON so that merged values have the
// same dynamic types as decoded ones.
func normalizeValue(v interface{}) interface{} {
	data, err := json.Marshal(v)
	if err != nil {
		return v
	}
	var out interface{}
	if err := json.Unmarshal(data, &out); err != nil {
		return v
	}
	return out
}

// docString reads a string value from a document; missing or non-string
// values read as "".
func docString(doc map[string]interface{}, key string) string {
	s, _ := doc[key].(string)
	return s
}

// docNumber reads a numeric value from a document; missing or
// non-numeric values read as 0.
func docNumber(doc map[string]interface{}, key string) float64 {
	n, _ := doc[key].(float64)
	return n
}

// docStringSet reads a string-set field from a document.
func docStringSet(doc map[string]interface{}, key string) []string {
	raw, ok := doc[key].([]interface{})
	if !ok {
		return nil
	}
	set := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			set = append(set, s)
		}
	}
	return set
}

// ContainsMember reports whether a record's string-set field contains
// member. It is how toggle actions decide between add and remove.
func ContainsMember[T Record](rec T, field, member string) bool {
	doc, err := docOf(rec)
	if err != nil {
		return false
	}
	for _, m := range docStringSet(doc, field) {
		if m == member {
			return true
		}
	}
	return false
}
