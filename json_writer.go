package expensefox

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
)

// jsonObjectWriter builds a JSON object with a fixed key order, so persisted
// documents stay stable and diffable. The zero value is ready to use.
type jsonObjectWriter struct {
	fields []jsonField
	err    error
}

type jsonField struct {
	key   string
	value []byte
}

// Append marshals value and records it under key.
func (w *jsonObjectWriter) Append(key string, value any) {
	if w.err != nil {
		return
	}
	data, err := json.Marshal(value)
	if err != nil {
		w.err = fmt.Errorf("failed to marshal value for key %q: %w", key, err)
		return
	}
	w.fields = append(w.fields, jsonField{key: key, value: data})
}

// Optional appends the field only when value is not its type's zero value,
// keeping empty fields out of the persisted document.
func (w *jsonObjectWriter) Optional(key string, value any) {
	v := reflect.ValueOf(value)
	if !v.IsValid() || v.IsZero() {
		return
	}
	w.Append(key, value)
}

// MarshalJSON assembles the recorded fields in order. It satisfies
// json.Marshaler.
func (w *jsonObjectWriter) MarshalJSON() ([]byte, error) {
	if w.err != nil {
		return nil, w.err
	}
	var b bytes.Buffer
	b.WriteByte('{')
	for i, f := range w.fields {
		if i > 0 {
			b.WriteByte(',')
		}
		fmt.Fprintf(&b, "%q:", f.key)
		b.Write(f.value)
	}
	b.WriteByte('}')
	return b.Bytes(), nil
}
