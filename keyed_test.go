package schemadiff

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	var nilString *string
	var nilInt *int
	var nilBool *bool
	empty := ""
	padded := "  now()  "
	seven := 7
	yes := true

	for _, tc := range []struct {
		name  string
		value interface{}
		want  string
	}{
		{name: "nil", value: nil, want: ""},
		{name: "typed nil string", value: nilString, want: ""},
		{name: "typed nil int", value: nilInt, want: ""},
		{name: "typed nil bool", value: nilBool, want: ""},
		{name: "empty string", value: "", want: ""},
		{name: "pointer to empty string", value: &empty, want: ""},
		{name: "whitespace", value: " \t\n", want: ""},
		{name: "padded pointer", value: &padded, want: "now()"},
		{name: "int pointer", value: &seven, want: "7"},
		{name: "bool pointer", value: &yes, want: "true"},
		{name: "plain int", value: 42, want: "42"},
		{name: "padded string", value: " YES ", want: "YES"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			got := Normalize(tc.value)
			assert.Equal(t, tc.want, got)
			assert.Equal(t, got, Normalize(got), "normalize must be idempotent")
		})
	}
}

func TestKeyedSet(t *testing.T) {
	s := newKeyedSet([]Index{
		{TableName: "t", Name: "b", Definition: "1"},
		{TableName: "t", Name: "a", Definition: "2"},
		{TableName: "t", Name: "b", Definition: "3"},
	}, Index.identity, Index.Key)

	assert.Equal(t, []string{"t\x00b", "t\x00a"}, s.order)
	assert.Equal(t, "3", s.items["t\x00b"].Definition)
	assert.Equal(t, "t.b", s.keys["t\x00b"])
	assert.True(t, s.has("t\x00a"))
	assert.False(t, s.has("t.a"))

	other := newKeyedSet([]Index{{TableName: "t", Name: "a"}, {TableName: "t", Name: "c"}}, Index.identity, Index.Key)
	assert.Equal(t, []string{"t.b"}, s.missingFrom(other))
	assert.Equal(t, []string{"t.c"}, other.missingFrom(s))
	assert.Equal(t, []string{"t.a"}, s.sharedWith(other))

	none := newKeyedSet([]Index(nil), Index.identity, Index.Key)
	assert.NotNil(t, none.missingFrom(s))
	assert.Empty(t, none.missingFrom(s))
}

func TestIdentityWithDottedNames(t *testing.T) {
	for _, tc := range []struct {
		name string
		a, b string
	}{
		{name: "index", a: Index{TableName: "a.b", Name: "c"}.identity(), b: Index{TableName: "a", Name: "b.c"}.identity()},
		{name: "column", a: Column{TableName: "a.b", Name: "c"}.identity(), b: Column{TableName: "a", Name: "b.c"}.identity()},
		{name: "foreign key", a: ForeignKey{TableName: "a.b", Name: "c"}.identity(), b: ForeignKey{TableName: "a", Name: "b.c"}.identity()},
		{name: "policy", a: Policy{TableName: "a.b", Name: "c"}.identity(), b: Policy{TableName: "a", Name: "b.c"}.identity()},
		{name: "trigger", a: Trigger{TableName: "a.b", Name: "c", Event: "INSERT"}.identity(), b: Trigger{TableName: "a", Name: "b.c", Event: "INSERT"}.identity()},
		{name: "function", a: Function{Name: "f(x", Arguments: ""}.identity(), b: Function{Name: "f", Arguments: "x"}.identity()},
		{name: "enum value", a: EnumValue{TypeName: "a.b", Value: "c"}.identity(), b: EnumValue{TypeName: "a", Value: "b.c"}.identity()},
	} {
		t.Run(tc.name, func(t *testing.T) {
			assert.NotEqual(t, tc.a, tc.b)
		})
	}
}

func TestOptionalEqual(t *testing.T) {
	a, b := "x", "x"
	c := "y"

	assert.True(t, optionalEqual(nil, nil))
	assert.True(t, optionalEqual(&a, &b))
	assert.False(t, optionalEqual(&a, &c))
	assert.False(t, optionalEqual(&a, nil))
	assert.False(t, optionalEqual(nil, &a))
	assert.Equal(t, "NULL", optionalString(nil))
	assert.Equal(t, "x", optionalString(&a))
}
