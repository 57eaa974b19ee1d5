package maputil

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v4"
)

func TestSortedKeys(t *testing.T) {
	tests := []struct {
		name     string
		input    map[string]bool
		expected []string
	}{
		{
			name:     "sorted keys",
			input:    map[string]bool{"zebra": true, "apple": true, "mango": true},
			expected: []string{"apple", "mango", "zebra"},
		},
		{
			name:     "single key",
			input:    map[string]bool{"only": true},
			expected: []string{"only"},
		},
		{
			name:     "empty map",
			input:    map[string]bool{},
			expected: []string{},
		},
		{
			name:     "nil map",
			input:    nil,
			expected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SortedKeys(tt.input)
			assert.Equal(t, tt.expected, got, "SortedKeys(%v)", tt.input)
		})
	}
}

func TestSortedKeys_StringValues(t *testing.T) {
	input := map[string]string{"c": "3", "a": "1", "b": "2"}
	got := SortedKeys(input)
	expected := []string{"a", "b", "c"}
	assert.Equal(t, expected, got, "SortedKeys(%v)", input)
}

func TestSortedKeys_PointerValues(t *testing.T) {
	type item struct{ name string }
	input := map[string]*item{"z": {name: "z"}, "a": {name: "a"}}
	got := SortedKeys(input)
	expected := []string{"a", "z"}
	assert.Equal(t, expected, got, "SortedKeys(pointer map)")
}

type keyed struct {
	Name  string `json:"name" yaml:"name"`
	Value int    `json:"value" yaml:"value"`
}

func (k keyed) OrderKey() string { return k.Name }

func TestOrderedJSONObjectKeepsOrder(t *testing.T) {
	var m Ordered[int]
	require.NoError(t, json.Unmarshal([]byte(`{"zebra":1,"apple":2,"mango":3}`), &m))

	assert.Equal(t, []string{"zebra", "apple", "mango"}, m.Keys())
	assert.Equal(t, []int{1, 2, 3}, m.Values())

	out, err := json.Marshal(m)
	require.NoError(t, err)
	assert.Equal(t, `{"zebra":1,"apple":2,"mango":3}`, string(out))
}

func TestOrderedJSONArrayUsesKeyer(t *testing.T) {
	var m Ordered[keyed]
	require.NoError(t, json.Unmarshal([]byte(`[{"name":"b","value":1},{"value":2}]`), &m))

	assert.Equal(t, []string{"b", "1"}, m.Keys())
	v, ok := m.Get("1")
	require.True(t, ok)
	assert.Equal(t, 2, v.Value)
}

func TestOrderedYAMLMappingKeepsOrder(t *testing.T) {
	var m Ordered[string]
	require.NoError(t, yaml.Unmarshal([]byte("z: one\na: two\n"), &m))
	assert.Equal(t, []string{"z", "a"}, m.Keys())
}

func TestOrderedYAMLDocumentSequence(t *testing.T) {
	var m Ordered[string]
	require.NoError(t, yaml.Unmarshal([]byte("---\n- one\n- two\n"), &m))
	assert.Equal(t, []string{"0", "1"}, m.Keys())

	err := yaml.Unmarshal([]byte("plain\n"), &m)
	assert.ErrorContains(t, err, "expected mapping or sequence")
}

func TestOrderedSetKeepsPosition(t *testing.T) {
	var m Ordered[int]
	m.Set("a", 1)
	m.Set("b", 2)
	m.Set("a", 3)

	assert.Equal(t, []string{"a", "b"}, m.Keys())
	v, _ := m.Get("a")
	assert.Equal(t, 3, v)

	var nilMap *Ordered[int]
	assert.Equal(t, 0, nilMap.Len())
	_, ok := nilMap.Get("a")
	assert.False(t, ok)
}

func TestOrderedRejectsScalar(t *testing.T) {
	var m Ordered[int]
	assert.Error(t, json.Unmarshal([]byte(`42`), &m))
}

func TestOrderedYAMLRoundTrip(t *testing.T) {
	var m Ordered[int]
	m.Set("z", 1)
	m.Set("a", 2)

	data, err := yaml.Marshal(m)
	require.NoError(t, err)
	assert.Equal(t, "z: 1\na: 2\n", string(data))

	var back Ordered[int]
	require.NoError(t, yaml.Unmarshal(data, &back))
	assert.Equal(t, []string{"z", "a"}, back.Keys())
}
