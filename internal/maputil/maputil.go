// Package maputil provides map helpers, including an insertion-ordered map
// that decodes from JSON and YAML without losing key order.
package maputil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"

	"go.yaml.in/yaml/v4"
)

// SortedKeys returns the keys of m in ascending order.
func SortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Keyer is implemented by values that know the key they should be stored
// under when an Ordered map is decoded from a list instead of an object.
type Keyer interface {
	OrderKey() string
}

// Ordered is a string-keyed map that remembers insertion order.
// The zero value is ready to use.
type Ordered[V any] struct {
	keys   []string
	values map[string]V
}

// Len returns the number of entries.
func (m *Ordered[V]) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// Keys returns the keys in insertion order.
func (m *Ordered[V]) Keys() []string {
	if m == nil {
		return nil
	}
	return append([]string(nil), m.keys...)
}

// Get returns the value stored under key.
func (m *Ordered[V]) Get(key string) (V, bool) {
	var zero V
	if m == nil || m.values == nil {
		return zero, false
	}
	v, ok := m.values[key]
	return v, ok
}

// Set stores v under key. Re-setting an existing key keeps its position.
func (m *Ordered[V]) Set(key string, v V) {
	if m.values == nil {
		m.values = make(map[string]V)
	}
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = v
}

// Values returns the values in insertion order.
func (m *Ordered[V]) Values() []V {
	if m == nil {
		return nil
	}
	out := make([]V, 0, len(m.keys))
	for _, k := range m.keys {
		out = append(out, m.values[k])
	}
	return out
}

// UnmarshalJSON accepts a JSON object (key order kept) or an array, whose
// elements are keyed by Keyer or by their index.
func (m *Ordered[V]) UnmarshalJSON(data []byte) error {
	*m = Ordered[V]{}
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}

	if data[0] == '[' {
		var list []V
		if err := json.Unmarshal(data, &list); err != nil {
			return err
		}
		for i, v := range list {
			m.Set(listKey(v, i), v)
		}
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("maputil: expected object or array, got %v", tok)
	}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("maputil: expected string key, got %v", tok)
		}
		var v V
		if err := dec.Decode(&v); err != nil {
			return fmt.Errorf("maputil: decoding %q: %w", key, err)
		}
		m.Set(key, v)
	}
	_, err = dec.Token()
	return err
}

// MarshalJSON writes the entries as an object in insertion order.
func (m Ordered[V]) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range m.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		vb, err := json.Marshal(m.values[k])
		if err != nil {
			return nil, err
		}
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// IsZero reports whether the map is empty. Encoders consult it for
// omitempty and omitzero.
func (m Ordered[V]) IsZero() bool {
	return len(m.keys) == 0
}

// MarshalYAML writes the entries as a mapping in insertion order.
func (m Ordered[V]) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, k := range m.keys {
		var val yaml.Node
		if err := val.Encode(m.values[k]); err != nil {
			return nil, fmt.Errorf("maputil: encoding %q: %w", k, err)
		}
		node.Content = append(node.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k}, &val)
	}
	return node, nil
}

// UnmarshalYAML accepts a mapping (key order kept) or a sequence, either
// bare or as the root of a document.
func (m *Ordered[V]) UnmarshalYAML(node *yaml.Node) error {
	*m = Ordered[V]{}
	switch node.Kind {
	case yaml.DocumentNode:
		if len(node.Content) == 0 {
			return nil
		}
		return m.UnmarshalYAML(node.Content[0])
	case yaml.MappingNode:
		for i := 0; i+1 < len(node.Content); i += 2 {
			var v V
			if err := node.Content[i+1].Decode(&v); err != nil {
				return fmt.Errorf("maputil: decoding %q: %w", node.Content[i].Value, err)
			}
			m.Set(node.Content[i].Value, v)
		}
	case yaml.SequenceNode:
		for i, item := range node.Content {
			var v V
			if err := item.Decode(&v); err != nil {
				return err
			}
			m.Set(listKey(v, i), v)
		}
	case yaml.ScalarNode:
		if node.Tag != "!!null" {
			return fmt.Errorf("maputil: line %d: expected mapping or sequence", node.Line)
		}
	default:
		return fmt.Errorf("maputil: line %d: expected mapping or sequence", node.Line)
	}
	return nil
}

func listKey(v any, i int) string {
	if k, ok := v.(Keyer); ok {
		if key := k.OrderKey(); key != "" {
			return key
		}
	}
	return strconv.Itoa(i)
}
