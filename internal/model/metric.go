package model

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
)

// MetricKind tags the variant held by a MetricValue.
type MetricKind int

const (
	// MetricText is a textual metric value such as "99.97%".
	MetricText MetricKind = iota
	// MetricNumber is a numeric metric value.
	MetricNumber
)

// ErrUnsupportedMetric is returned when a metric value is a JSON array or object.
var ErrUnsupportedMetric = errors.New("metric value must be a number or a string")

// MetricValue is a module metric value: either a Number or a Text.
// The zero value is an empty Text.
type MetricValue struct {
	kind   MetricKind
	number float64
	text   string
}

// Number creates a numeric MetricValue.
func Number(v float64) MetricValue {
	return MetricValue{kind: MetricNumber, number: v}
}

// Text creates a textual MetricValue.
func Text(s string) MetricValue {
	return MetricValue{kind: MetricText, text: s}
}

// Kind returns which variant the value holds.
func (v MetricValue) Kind() MetricKind {
	return v.kind
}

// Number returns the numeric value and true for MetricNumber values.
func (v MetricValue) Number() (float64, bool) {
	return v.number, v.kind == MetricNumber
}

// Text returns the text and true for MetricText values.
func (v MetricValue) Text() (string, bool) {
	return v.text, v.kind == MetricText
}

// String returns the plain string form of the value.
// Numbers use the shortest decimal representation.
func (v MetricValue) String() string {
	if v.kind == MetricNumber {
		return strconv.FormatFloat(v.number, 'f', -1, 64)
	}
	return v.text
}

// UnmarshalJSON decodes a JSON scalar. Numbers become MetricNumber, strings
// become MetricText and the literals true, false and null become MetricText
// holding the literal.
func (v *MetricValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return ErrUnsupportedMetric
	}

	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = Text(s)
	case '[', '{':
		return ErrUnsupportedMetric
	case 't', 'f', 'n':
		*v = Text(string(data))
	default:
		f, err := strconv.ParseFloat(string(data), 64)
		if err != nil {
			return fmt.Errorf("invalid metric number %s: %w", data, err)
		}
		*v = Number(f)
	}
	return nil
}

// MarshalJSON encodes the value back to a JSON number or string.
func (v MetricValue) MarshalJSON() ([]byte, error) {
	if v.kind == MetricNumber {
		return json.Marshal(v.number)
	}
	return json.Marshal(v.text)
}

// Metric is one named module metric.
type Metric struct {
	Key   string
	Value MetricValue
}

// Metrics is an ordered set of module metrics.
// It decodes from a JSON object and keeps the document order of its keys.
type Metrics []Metric

// Get returns the value stored under key.
func (m Metrics) Get(key string) (MetricValue, bool) {
	for _, e := range m {
		if e.Key == key {
			return e.Value, true
		}
	}
	return MetricValue{}, false
}

// UnmarshalJSON decodes a JSON object into an ordered metric list.
func (m *Metrics) UnmarshalJSON(data []byte) error {
	out := Metrics{}
	err := decodeOrderedObject(data, func(key string, raw json.RawMessage) error {
		var v MetricValue
		if err := v.UnmarshalJSON(raw); err != nil {
			return fmt.Errorf("metric %q: %w", key, err)
		}
		out = append(out, Metric{Key: key, Value: v})
		return nil
	})
	if err != nil {
		return err
	}
	*m = out
	return nil
}

// MarshalJSON encodes the metrics as a JSON object in order.
func (m Metrics) MarshalJSON() ([]byte, error) {
	return encodeOrderedObject(len(m), func(i int) (string, any) {
		return m[i].Key, m[i].Value
	})
}

// EquityEntry is the parity index of one demographic group.
type EquityEntry struct {
	Group string
	Index float64
}

// EquityIndex is an ordered set of demographic parity indexes.
type EquityIndex []EquityEntry

// Get returns the index of group.
func (e EquityIndex) Get(group string) (float64, bool) {
	for _, entry := range e {
		if entry.Group == group {
			return entry.Index, true
		}
	}
	return 0, false
}

// UnmarshalJSON decodes a JSON object of group to number in document order.
func (e *EquityIndex) UnmarshalJSON(data []byte) error {
	out := EquityIndex{}
	err := decodeOrderedObject(data, func(key string, raw json.RawMessage) error {
		var f float64
		if err := json.Unmarshal(raw, &f); err != nil {
			return fmt.Errorf("equity group %q: %w", key, err)
		}
		out = append(out, EquityEntry{Group: key, Index: f})
		return nil
	})
	if err != nil {
		return err
	}
	*e = out
	return nil
}

// MarshalJSON encodes the index as a JSON object in order.
func (e EquityIndex) MarshalJSON() ([]byte, error) {
	return encodeOrderedObject(len(e), func(i int) (string, any) {
		return e[i].Group, e[i].Index
	})
}

// decodeOrderedObject walks the members of a JSON object in document order.
// A JSON null decodes as an empty object.
func decodeOrderedObject(data []byte, fn func(key string, raw json.RawMessage) error) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("expected JSON object, got %v", tok)
	}

	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("expected object key, got %v", tok)
		}

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return fmt.Errorf("value of %q: %w", key, err)
		}
		if err := fn(key, raw); err != nil {
			return err
		}
	}

	// closing brace
	if _, err := dec.Token(); err != nil {
		return err
	}
	return nil
}

// encodeOrderedObject writes n key/value pairs as a JSON object.
func encodeOrderedObject(n int, at func(i int) (string, any)) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i := 0; i < n; i++ {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, value := at(i)
		k, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(value)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
