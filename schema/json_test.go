package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateJSON_Passes(t *testing.T) {
	doc := []byte(`{"name":"Ada","email":"ada@example.com","age":36}`)
	out := ValidateJSON(doc, userSchema())
	assert.True(t, out.Passed, "violations: %v", out.Messages())
}

func TestValidateJSON_MissingRequired(t *testing.T) {
	doc := []byte(`{"name":"Ada","age":36}`)
	out := ValidateJSON(doc, userSchema())
	require.False(t, out.Passed)
	require.Len(t, out.Violations, 1)
	assert.Equal(t, "email", out.Violations[0].Path)
}

func TestValidateJSON_TypeChecks(t *testing.T) {
	doc := []byte(`{"name":1,"email":"a@b","age":3.5}`)
	out := ValidateJSON(doc, userSchema())
	require.False(t, out.Passed)
	// name is a number, age has a fractional part.
	assert.Len(t, out.Violations, 2)
}

func TestValidateJSON_IntAcceptsWholeNumbers(t *testing.T) {
	s := &Schema{Kind: Object, Fields: map[string]*Schema{"n": {Kind: Int}}, Required: []string{"n"}}
	assert.True(t, ValidateJSON([]byte(`{"n": 42}`), s).Passed)
	assert.True(t, ValidateJSON([]byte(`{"n": 42.0}`), s).Passed, "whole-valued floats are ints in JSON")
	assert.False(t, ValidateJSON([]byte(`{"n": 42.5}`), s).Passed)
}

func TestValidateJSON_NestedArray(t *testing.T) {
	s := &Schema{
		Kind:     Object,
		Fields:   map[string]*Schema{"tags": {Kind: Array, Elem: &Schema{Kind: String}}},
		Required: []string{"tags"},
	}
	out := ValidateJSON([]byte(`{"tags":["a",2,"c"]}`), s)
	require.False(t, out.Passed)
	require.Len(t, out.Violations, 1)
	assert.Equal(t, "tags[1]", out.Violations[0].Path)
}

func TestValidateJSON_NullHandling(t *testing.T) {
	s := &Schema{
		Kind: Object,
		Fields: map[string]*Schema{
			"opt": {Kind: String, Nullable: true},
			"req": {Kind: String},
		},
	}
	assert.True(t, ValidateJSON([]byte(`{"opt":null}`), s).Passed)
	assert.False(t, ValidateJSON([]byte(`{"req":null}`), s).Passed)
}

func TestValidateJSON_EmptyDocument(t *testing.T) {
	out := ValidateJSON(nil, &Schema{Kind: Object})
	assert.False(t, out.Passed)
}
