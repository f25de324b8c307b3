package effectlog

import (
	"bytes"
	"fmt"

	json "github.com/goccy/go-json"
)

// Data is an insertion-ordered string-to-value mapping. Re-setting an
// existing key updates its value but keeps the key's first-seen
// position, so serialized output stays deterministic.
//
// Data is immutable by convention: every mutation happens on a copy
// owned by the caller of set.
type Data struct {
	keys   []string
	values map[string]any
}

// Get returns the value for key and whether it is present.
func (d Data) Get(key string) (any, bool) {
	v, ok := d.values[key]
	return v, ok
}

// Keys returns the keys in insertion order. The returned slice is a copy.
func (d Data) Keys() []string {
	out := make([]string, len(d.keys))
	copy(out, d.keys)
	return out
}

// Len returns the number of keys.
func (d Data) Len() int {
	return len(d.keys)
}

// clone copies d with room for extra additional keys.
func (d Data) clone(extra int) Data {
	out := Data{
		keys:   make([]string, len(d.keys), len(d.keys)+extra),
		values: make(map[string]any, len(d.keys)+extra),
	}
	copy(out.keys, d.keys)
	for k, v := range d.values {
		out.values[k] = v
	}
	return out
}

// set assigns key on a clone-owned Data. Not safe on shared values.
func (d *Data) set(key string, value any) {
	if d.values == nil {
		d.values = make(map[string]any)
	}
	if _, exists := d.values[key]; !exists {
		d.keys = append(d.keys, key)
	}
	d.values[key] = value
}

// MarshalJSON serializes the mapping as a JSON object in insertion
// order. A non-serializable value fails the whole object rather than
// silently corrupting output.
func (d Data) MarshalJSON() ([]byte, error) {
	if len(d.keys) == 0 {
		return []byte("{}"), nil
	}
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range d.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		vb, err := json.Marshal(d.values[k])
		if err != nil {
			return nil, fmt.Errorf("context key %q: %w", k, err)
		}
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Context is the immutable key/value bag plus optional span and trace
// identifiers carried by a Logger. Every enrichment operation returns a
// new Context; the receiver is never modified.
type Context struct {
	data    Data
	spanID  string
	traceID string
}

// NewContext returns an empty context.
func NewContext() Context {
	return Context{}
}

// Data returns the ordered key/value snapshot.
func (c Context) Data() Data { return c.data }

// SpanID returns the span identifier, or "" when unset.
func (c Context) SpanID() string { return c.spanID }

// TraceID returns the trace identifier, or "" when unset.
func (c Context) TraceID() string { return c.traceID }

// WithData returns a new context with the given fields applied in
// order. Later fields overwrite earlier ones of the same key; re-set
// keys keep their first-seen position.
func (c Context) WithData(fields ...Field) Context {
	if len(fields) == 0 {
		return c
	}
	out := c
	out.data = c.data.clone(len(fields))
	for _, f := range fields {
		out.data.set(f.Key, f.Value)
	}
	return out
}

// WithSpan returns a new context with the span identifier set. The
// trace identifier is replaced only when non-empty, otherwise the
// previous one is retained.
func (c Context) WithSpan(spanID, traceID string) Context {
	out := c
	out.spanID = spanID
	if traceID != emptyString {
		out.traceID = traceID
	}
	return out
}

// Merge returns the right-biased union of c and other: keys from other
// overwrite same-named keys in c, and other's span/trace identifiers
// win when present.
func (c Context) Merge(other Context) Context {
	out := c
	out.data = c.data.clone(other.data.Len())
	for _, k := range other.data.keys {
		out.data.set(k, other.data.values[k])
	}
	if other.spanID != emptyString {
		out.spanID = other.spanID
	}
	if other.traceID != emptyString {
		out.traceID = other.traceID
	}
	return out
}
