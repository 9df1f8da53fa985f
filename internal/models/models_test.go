package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDisplayNameFor(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"mHealth", "Health"},
		{"mhealth", "mhealth"},
		{"m", "m"},
		{"Health", "Health"},
		{"mX", "X"},
		{"m_Value", "m_Value"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DisplayNameFor(tt.name))
		})
	}
}

func TestParseParameters(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []Parameter
	}{
		{name: "empty", input: "", want: nil},
		{name: "void", input: " void ", want: nil},
		{name: "single", input: "int count", want: []Parameter{{Type: "int", Name: "count"}}},
		{
			name:  "const reference",
			input: "std::string const & value",
			want:  []Parameter{{Type: "std::string const &", Name: "value"}},
		},
		{
			name:  "defaults and templates",
			input: "std::map<int, float> const& m, int x = Max(1, 2), bool y=true",
			want: []Parameter{
				{Type: "std::map<int, float> const&", Name: "m"},
				{Type: "int", Name: "x", Initializer: "Max(1, 2)"},
				{Type: "bool", Name: "y", Initializer: "true"},
			},
		},
		{name: "unnamed", input: "int, float*", want: []Parameter{{Type: "int"}, {Type: "float*"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseParameters(tt.input))
		})
	}
}

func TestFlagNames(t *testing.T) {
	var f FieldFlags
	f.Set(FieldNoGetter | FieldNoSave)
	assert.Equal(t, []string{"NoGetter", "NoSave"}, f.Names())
	f.Clear(FieldNoGetter)
	assert.False(t, f.Has(FieldNoGetter))
	assert.True(t, f.Has(FieldNoSave))

	m := MethodConst | MethodArtificial | MethodHasBody
	assert.Equal(t, []string{"Const", "Artificial", "HasBody"}, m.Names())

	c := ClassStruct | ClassNoConstructors
	assert.Equal(t, []string{"Struct", "NoConstructors"}, c.Names())

	assert.Nil(t, FieldFlags(0).Names())
	assert.Equal(t, "Public", AccessPublic.String())
	assert.Equal(t, "Unspecified", AccessUnspecified.String())
}

func TestAddArtificialMethod(t *testing.T) {
	c := &Class{Declaration: Declaration{Name: "Actor"}}

	m := c.AddArtificialMethod("void", "SetHealth", "int const & value", "mHealth = value; ", []string{"Sets health"}, 0)
	assert.Equal(t, AccessPublic, m.Access)
	assert.Equal(t, 0, m.DeclarationLine)
	assert.True(t, m.Flags.Has(MethodArtificial))
	assert.True(t, m.Flags.Has(MethodHasBody))
	assert.Equal(t, []Parameter{{Type: "int const &", Name: "value"}}, m.Parameters)

	m = c.AddArtificialMethod("bool", "IsDead", "", "", nil, MethodConst)
	assert.False(t, m.Flags.Has(MethodHasBody))
	assert.True(t, m.Flags.Has(MethodConst|MethodArtificial))

	require.Len(t, c.Methods, 2)
	assert.Equal(t, "SetHealth", c.Methods[0].Name)
	assert.Equal(t, "IsDead", c.Methods[1].Name)
}

func TestClassProperty(t *testing.T) {
	c := &Class{}
	p := c.Property("Health")
	p.GetterName = "GetHealth"
	assert.Same(t, p, c.Property("Health"))
	assert.Len(t, c.Properties, 1)
}

func TestFileMirrorFindEnum(t *testing.T) {
	m := &FileMirror{Enums: []*Enum{
		{Declaration: Declaration{Name: "A", DeclarationLine: 1}},
		{Declaration: Declaration{Name: "A", DeclarationLine: 9}},
	}}
	require.NotNil(t, m.FindEnum("A"))
	assert.Equal(t, 1, m.FindEnum("A").DeclarationLine)
	assert.Nil(t, m.FindEnum("B"))
	assert.Nil(t, (&FileMirror{}).CurrentClass())
	assert.True(t, (&FileMirror{}).IsEmpty())
}
