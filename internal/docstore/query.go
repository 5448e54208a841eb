package docstore

import (
	"bytes"
	"fmt"
	"sort"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
)

// Filter is an equality condition on a top-level field.
type Filter struct {
	Field string
	Value any
}

// Query is the small set of query shapes the application issues:
// equality filters, one ordering field and an optional limit.
type Query struct {
	Filters    []Filter
	OrderField string
	Descending bool
	Limit      int
}

// Where adds an equality filter.
func (q Query) Where(field string, value any) Query {
	q.Filters = append(append([]Filter(nil), q.Filters...), Filter{Field: field, Value: value})
	return q
}

// OrderBy sets the ordering field.
func (q Query) OrderBy(field string, descending bool) Query {
	q.OrderField = field
	q.Descending = descending
	return q
}

// WithLimit caps the number of results; zero means no limit.
func (q Query) WithLimit(n int) Query {
	q.Limit = n
	return q
}

// Apply evaluates q over docs in Go. Backends without native querying use it.
// Documents are first ordered by ID so results are deterministic.
func Apply(docs []Document, q Query) ([]Document, error) {
	wanted := make([]bson.RawValue, len(q.Filters))
	for i, f := range q.Filters {
		t, data, err := bson.MarshalValue(f.Value)
		if err != nil {
			return nil, fmt.Errorf("encoding filter on %s: %w", f.Field, err)
		}
		wanted[i] = bson.RawValue{Type: t, Value: data}
	}

	out := make([]Document, 0, len(docs))
	for _, doc := range docs {
		if matches(doc, q.Filters, wanted) {
			out = append(out, doc)
		}
	}

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	if q.OrderField != "" {
		sort.SliceStable(out, func(i, j int) bool {
			c := compareValues(lookup(out[i].Data, q.OrderField), lookup(out[j].Data, q.OrderField))
			if q.Descending {
				return c > 0
			}
			return c < 0
		})
	}
	if q.Limit > 0 && len(out) > q.Limit {
		out = out[:q.Limit]
	}
	return out, nil
}

func matches(doc Document, filters []Filter, wanted []bson.RawValue) bool {
	for i, f := range filters {
		got := lookup(doc.Data, f.Field)
		if got.Type == 0 || !got.Equal(wanted[i]) {
			return false
		}
	}
	return true
}

func lookup(raw bson.Raw, field string) bson.RawValue {
	v, err := raw.LookupErr(field)
	if err != nil {
		return bson.RawValue{}
	}
	return v
}

// compareValues orders missing values first, then by BSON type, then by value.
func compareValues(a, b bson.RawValue) int {
	if a.Type != b.Type {
		return int(a.Type) - int(b.Type)
	}
	switch a.Type {
	case 0:
		return 0
	case bsontype.DateTime:
		return compareInt64(a.DateTime(), b.DateTime())
	case bsontype.Int32:
		return compareInt64(int64(a.Int32()), int64(b.Int32()))
	case bsontype.Int64:
		return compareInt64(a.Int64(), b.Int64())
	case bsontype.Double:
		x, y := a.Double(), b.Double()
		switch {
		case x < y:
			return -1
		case x > y:
			return 1
		}
		return 0
	case bsontype.String:
		x, y := a.StringValue(), b.StringValue()
		switch {
		case x < y:
			return -1
		case x > y:
			return 1
		}
		return 0
	case bsontype.Boolean:
		x, y := a.Boolean(), b.Boolean()
		switch {
		case x == y:
			return 0
		case !x:
			return -1
		}
		return 1
	default:
		return bytes.Compare(a.Value, b.Value)
	}
}

func compareInt64(x, y int64) int {
	switch {
	case x < y:
		return -1
	case x > y:
		return 1
	}
	return 0
}
