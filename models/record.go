package models

import (
	"encoding/json"
	"reflect"
)

// Record is an arbitrary JSON-shaped domain row belonging to a named table.
// Within a table, records are uniquely identified by their "id" field.
// The local copy of a record is always the most recently known value for
// that id, whether it originated from a local write or a pull.
type Record map[string]any

// ID returns the record's "id" field as a string, or an empty string when
// the field is missing or not a string.
func (r Record) ID() string {
	id, _ := r["id"].(string)
	return id
}

// Clone returns a deep copy of the record obtained by round-tripping it
// through JSON. Nested maps and slices are copied, not shared.
func (r Record) Clone() Record {
	if r == nil {
		return nil
	}

	raw, err := json.Marshal(r)
	if err != nil {
		// A Record decoded from JSON always re-encodes; fall back to a
		// shallow copy for values that cannot round-trip.
		out := make(Record, len(r))
		for k, v := range r {
			out[k] = v
		}
		return out
	}

	var out Record
	if err = json.Unmarshal(raw, &out); err != nil {
		out = make(Record, len(r))
		for k, v := range r {
			out[k] = v
		}
	}
	return out
}

// ValuesEqual reports deep equality of two field values after normalising
// both through JSON, so that e.g. int(5) and float64(5) compare equal the
// way they would after a decode round-trip.
func ValuesEqual(a, b any) bool {
	if a == nil && b == nil {
		return true
	}
	if a == nil || b == nil {
		return false
	}

	na, errA := json.Marshal(a)
	nb, errB := json.Marshal(b)
	if errA != nil || errB != nil {
		return reflect.DeepEqual(a, b)
	}

	var va, vb any
	if json.Unmarshal(na, &va) != nil || json.Unmarshal(nb, &vb) != nil {
		return reflect.DeepEqual(a, b)
	}

	return reflect.DeepEqual(va, vb)
}
