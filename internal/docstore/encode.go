package docstore

import (
	"fmt"
	"sort"

	"go.mongodb.org/mongo-driver/bson"
)

// Encode marshals doc to a BSON document.
func Encode(doc any) (bson.Raw, error) {
	if raw, ok := doc.(bson.Raw); ok {
		if err := raw.Validate(); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrNotDocument, err)
		}
		return raw, nil
	}
	data, err := bson.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotDocument, err)
	}
	return bson.Raw(data), nil
}

// MergeFields returns raw with the given top-level fields set, keeping the
// order of existing fields and appending new ones.
func MergeFields(raw bson.Raw, fields map[string]any) (bson.Raw, error) {
	var doc bson.D
	if err := bson.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}
	applied := make(map[string]bool, len(fields))
	for i, elem := range doc {
		if v, ok := fields[elem.Key]; ok {
			doc[i].Value = v
			applied[elem.Key] = true
		}
	}
	for _, key := range sortedKeys(fields) {
		if !applied[key] {
			doc = append(doc, bson.E{Key: key, Value: fields[key]})
		}
	}
	return Encode(doc)
}

func sortedKeys(fields map[string]any) []string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
