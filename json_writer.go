package pokergame

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
)

// jsonObjectWriter writes the fields of a JSON object in call order, which
// keeps journal lines stable and readable. The zero value is an empty object.
//
// The first marshaling error is kept and every later call is a no-op.
type jsonObjectWriter struct {
	fields bytes.Buffer
	err    error
}

func (w *jsonObjectWriter) field(raw []byte) {
	if w.fields.Len() > 0 {
		w.fields.WriteByte(',')
	}
	w.fields.Write(raw)
}

// Embed merges the members of the JSON object raw.
func (w *jsonObjectWriter) Embed(raw []byte) *jsonObjectWriter {
	if w.err != nil {
		return w
	}
	members := bytes.TrimSpace(raw)
	members = bytes.TrimPrefix(members, []byte("{"))
	members = bytes.TrimSuffix(members, []byte("}"))
	if members = bytes.TrimSpace(members); len(members) > 0 {
		w.field(members)
	}
	return w
}

// EmbedFrom merges the members of v, which must marshal to a JSON object.
func (w *jsonObjectWriter) EmbedFrom(v any) *jsonObjectWriter {
	if w.err != nil {
		return w
	}
	raw, err := json.Marshal(v)
	if err != nil {
		w.err = fmt.Errorf("cannot embed %T: %w", v, err)
		return w
	}
	return w.Embed(raw)
}

// Append writes key with the JSON encoding of value.
func (w *jsonObjectWriter) Append(key string, value any) *jsonObjectWriter {
	if w.err != nil {
		return w
	}
	k, _ := json.Marshal(key)
	v, err := json.Marshal(value)
	if err != nil {
		w.err = fmt.Errorf("cannot encode %q: %w", key, err)
		return w
	}
	w.field(append(append(k, ':'), v...))
	return w
}

// Optional is Append, skipped when value is nil or the zero value of its type.
func (w *jsonObjectWriter) Optional(key string, value any) *jsonObjectWriter {
	if v := reflect.ValueOf(value); !v.IsValid() || v.IsZero() {
		return w
	}
	return w.Append(key, value)
}

func (w *jsonObjectWriter) MarshalJSON() ([]byte, error) {
	if w.err != nil {
		return nil, w.err
	}
	out := make([]byte, 0, w.fields.Len()+2)
	out = append(out, '{')
	out = append(out, w.fields.Bytes()...)
	return append(out, '}'), nil
}
