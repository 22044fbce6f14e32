package supabase

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Record is a single table row as returned by the PostgREST query endpoint -
// a mapping from field name to scalar value. The field enumeration order is
// the order the fields appeared in the JSON object, which PostgREST emits in
// the table's column order.
type Record struct {
	fields []string
	values map[string]any
}

// UnmarshalJSON decodes a JSON object, keeping the object's own key order.
// Numbers are decoded as json.Number so that values pass through to the
// destination without loss.
func (r *Record) UnmarshalJSON(b []byte) error {
	decoder := json.NewDecoder(bytes.NewReader(b))
	decoder.UseNumber()

	token, err := decoder.Token()
	if err != nil {
		return err
	}

	if delim, ok := token.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("invalid record - expected an object, got '%v'", token)
	}

	fields := []string{}
	values := map[string]any{}

	for decoder.More() {
		token, err := decoder.Token()
		if err != nil {
			return err
		}

		field, ok := token.(string)
		if !ok {
			return fmt.Errorf("invalid record field '%v'", token)
		}

		var value any
		if err := decoder.Decode(&value); err != nil {
			return err
		}

		if _, ok := values[field]; !ok {
			fields = append(fields, field)
		}

		values[field] = value
	}

	r.fields = fields
	r.values = values

	return nil
}

// Fields returns the record's field names in source enumeration order.
func (r Record) Fields() []string {
	return r.fields
}

// Get returns the value for a field, with ok false when the record does not
// have the field.
func (r Record) Get(field string) (any, bool) {
	value, ok := r.values[field]

	return value, ok
}
