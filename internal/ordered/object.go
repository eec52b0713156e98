// Package ordered provides a JSON object that keeps its key order.
package ordered

import (
	"bytes"
	"encoding/json"
)

// Field is one key/value pair of an Object.
type Field struct {
	Key   string
	Value any
}

// Object is a JSON object whose keys are emitted in insertion order.
type Object struct {
	fields []Field
	index  map[string]int
}

// New returns an empty Object.
func New() *Object {
	return &Object{index: map[string]int{}}
}

// Set adds key, or replaces its value in place when already present.
func (o *Object) Set(key string, value any) *Object {
	if i, ok := o.index[key]; ok {
		o.fields[i].Value = value
		return o
	}
	o.index[key] = len(o.fields)
	o.fields = append(o.fields, Field{Key: key, Value: value})
	return o
}

// SetNonZero sets key unless value is the zero value of a string, bool,
// slice, or a nil/empty Object.
func (o *Object) SetNonZero(key string, value any) *Object {
	switch v := value.(type) {
	case string:
		if v == "" {
			return o
		}
	case bool:
		if !v {
			return o
		}
	case []any:
		if len(v) == 0 {
			return o
		}
	case *Object:
		if v == nil || v.Len() == 0 {
			return o
		}
	case nil:
		return o
	}
	return o.Set(key, value)
}

// Get returns the value stored for key.
func (o *Object) Get(key string) (any, bool) {
	i, ok := o.index[key]
	if !ok {
		return nil, false
	}
	return o.fields[i].Value, true
}

// Keys returns the keys in order.
func (o *Object) Keys() []string {
	keys := make([]string, len(o.fields))
	for i, f := range o.fields {
		keys[i] = f.Key
	}
	return keys
}

// Len returns the number of fields.
func (o *Object) Len() int { return len(o.fields) }

// MarshalJSON implements json.Marshaler.
func (o *Object) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range o.fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(f.Key)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		v, err := json.Marshal(f.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
