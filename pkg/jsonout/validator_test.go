package jsonout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_WellFormed(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"object", `{"answer": 42}`},
		{"array", `[1, 2, 3]`},
		{"nested", `{"a": {"b": [true, null]}}`},
		{"bare string", `"hello"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Validate(tt.text, nil)
			assert.True(t, res.Valid)
			assert.False(t, res.Repaired, "valid input must not trigger repair")
			assert.Equal(t, tt.text, res.Text)
		})
	}
}

func TestValidate_RepairsTrailingCommas(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"object", `{"a": 1,}`, `{"a": 1}`},
		{"array", `[1, 2,]`, `[1, 2]`},
		{"nested", `{"a": [1, 2,],}`, `{"a": [1, 2]}`},
		{"comma then whitespace", "{\"a\": 1,\n}", "{\"a\": 1\n}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Validate(tt.text, nil)
			assert.True(t, res.Valid)
			assert.True(t, res.Repaired)
			assert.Equal(t, tt.want, res.Text)
		})
	}
}

func TestValidate_Unrepairable(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"prose", "Sure! Here is your JSON: {\"a\": 1}"},
		{"truncated", `{"a": 1`},
		{"empty", ""},
		{"unquoted keys", `{a: 1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Validate(tt.text, nil)
			assert.False(t, res.Valid)
			assert.False(t, res.Repaired)
			assert.Equal(t, tt.text, res.Text, "failed validation must return input unchanged")
		})
	}
}

func TestValidate_Shape(t *testing.T) {
	shape, err := ParseShape(map[string]interface{}{
		"name":  "string",
		"count": "integer",
		"score": "float",
		"done":  "boolean",
	})
	require.NoError(t, err)

	tests := []struct {
		name  string
		text  string
		valid bool
	}{
		{"all fields match", `{"name": "x", "count": 3, "score": 0.5, "done": true}`, true},
		{"extra fields allowed", `{"name": "x", "count": 3, "score": 1, "done": false, "extra": null}`, true},
		{"integer accepts whole float literal", `{"name": "x", "count": 3.0, "score": 1, "done": true}`, true},
		{"missing field", `{"name": "x", "count": 3, "score": 0.5}`, false},
		{"wrong type", `{"name": "x", "count": "three", "score": 0.5, "done": true}`, false},
		{"fractional integer", `{"name": "x", "count": 3.5, "score": 0.5, "done": true}`, false},
		{"root not object", `[1, 2, 3]`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Validate(tt.text, shape)
			assert.Equal(t, tt.valid, res.Valid)
		})
	}
}

func TestValidate_NestedShape(t *testing.T) {
	shape, err := ParseShape(map[string]interface{}{
		"user": map[string]interface{}{
			"id":   "integer",
			"name": "string",
		},
	})
	require.NoError(t, err)

	res := Validate(`{"user": {"id": 7, "name": "ada"}}`, shape)
	assert.True(t, res.Valid)

	res = Validate(`{"user": {"id": "7", "name": "ada"}}`, shape)
	assert.False(t, res.Valid)

	res = Validate(`{"user": "ada"}`, shape)
	assert.False(t, res.Valid)
}

func TestValidate_RepairThenShape(t *testing.T) {
	shape, err := ParseShape(map[string]interface{}{"a": "integer"})
	require.NoError(t, err)

	res := Validate(`{"a": 1,}`, shape)
	assert.True(t, res.Valid)
	assert.True(t, res.Repaired)
	assert.Equal(t, `{"a": 1}`, res.Text)

	// A repair that parses but misses the shape returns the input.
	res = Validate(`{"b": 1,}`, shape)
	assert.False(t, res.Valid)
	assert.Equal(t, `{"b": 1,}`, res.Text)
}
