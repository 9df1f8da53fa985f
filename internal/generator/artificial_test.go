package generator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toyz/reflector/internal/annotations"
	"github.com/toyz/reflector/internal/errors"
	"github.com/toyz/reflector/internal/models"
)

func field(name, typ string, line int, attrs annotations.Attributes, flags models.FieldFlags) models.Field {
	return models.Field{
		Declaration: models.Declaration{Name: name, DeclarationLine: line, Attributes: attrs},
		Type:        typ,
		DisplayName: models.DisplayNameFor(name),
		Flags:       flags,
	}
}

func enumXY() *models.Enum {
	return &models.Enum{
		Declaration: models.Declaration{Name: "Flags"},
		Enumerators: []models.Enumerator{
			{Declaration: models.Declaration{Name: "X"}, Value: 0},
			{Declaration: models.Declaration{Name: "Y"}, Value: 1},
		},
	}
}

func methodNames(c *models.Class) []string {
	names := make([]string, len(c.Methods))
	for i, m := range c.Methods {
		names[i] = m.Name
	}
	return names
}

func TestSynthesizeGetterAndSetter(t *testing.T) {
	c := &models.Class{Declaration: models.Declaration{Name: "Actor"}}
	c.Fields = []models.Field{
		field("mHealth", "int", 5, nil, 0),
		field("Name", "std::string", 7, annotations.Attributes{}.With("OnChange", annotations.String("NameChanged")), 0),
	}
	c.Fields[0].Comments = []string{"Current health", "of the actor"}
	mirror := &models.FileMirror{Classes: []*models.Class{c}}

	require.NoError(t, NewSynthesizer(models.NewRegistry()).Synthesize(mirror))
	require.Equal(t, []string{"GetHealth", "SetHealth", "GetName", "SetName"}, methodNames(c))

	get := c.Methods[0]
	assert.Equal(t, "int&", get.Type)
	assert.Equal(t, "return mHealth;", get.Body)
	assert.Equal(t, []string{"Gets current health of the actor"}, get.Comments)
	assert.Equal(t, models.AccessPublic, get.Access)
	assert.Equal(t, 0, get.DeclarationLine)
	assert.True(t, get.Flags.Has(models.MethodArtificial|models.MethodHasBody))
	assert.Equal(t, 5, get.SourceFieldDeclarationLine())

	set := c.Methods[1]
	assert.Equal(t, "void", set.Type)
	assert.Equal(t, "int const & value", set.ParametersText)
	assert.Equal(t, []models.Parameter{{Type: "int const &", Name: "value"}}, set.Parameters)
	assert.Equal(t, "mHealth = value; ", set.Body)

	assert.Equal(t, "Name = value; NameChanged(); ", c.Methods[3].Body)
	assert.Equal(t, []string{"Sets the `Name` field of this object"}, c.Methods[3].Comments)
}

func TestSynthesizeRespectsSuppression(t *testing.T) {
	c := &models.Class{}
	c.Fields = []models.Field{
		field("mA", "int", 1, nil, models.FieldNoGetter),
		field("mB", "int", 2, nil, models.FieldNoSetter),
		field("mC", "int", 3, nil, models.FieldNoGetter|models.FieldNoSetter),
	}
	require.NoError(t, NewSynthesizer(nil).Synthesize(&models.FileMirror{Classes: []*models.Class{c}}))
	assert.Equal(t, []string{"SetA", "GetB"}, methodNames(c))
}

func TestSynthesizeFlagAccessors(t *testing.T) {
	tests := []struct {
		name  string
		attrs annotations.Attributes
		want  []string
	}{
		{
			name:  "flag getters only",
			attrs: annotations.Attributes{}.With("FlagGetters", annotations.String("Flags")),
			want:  []string{"IsX", "IsY"},
		},
		{
			name:  "full flag accessors in group order",
			attrs: annotations.Attributes{}.With("Flags", annotations.String("Flags")),
			want:  []string{"IsX", "IsY", "SetX", "SetY", "UnsetX", "UnsetY", "ToggleX", "ToggleY"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg := models.NewRegistry()
			reg.Add(&models.FileMirror{Enums: []*models.Enum{enumXY()}}, time.Time{})

			c := &models.Class{}
			c.Fields = []models.Field{field("mFlags", "Flags", 9, tt.attrs, models.FieldNoGetter|models.FieldNoSetter)}
			require.NoError(t, NewSynthesizer(reg).Synthesize(&models.FileMirror{Classes: []*models.Class{c}}))

			assert.Equal(t, tt.want, methodNames(c))
			is := c.Methods[1]
			assert.Equal(t, "bool", is.Type)
			assert.True(t, is.Flags.Has(models.MethodConst))
			assert.Equal(t, "return (mFlags & Flags{2}) != 0;", is.Body)
			assert.Equal(t, "Checks whether the `Y` flag is set in the `Flags` field of this object", is.Comments[0])
		})
	}
}

func TestSynthesizeFlagSetterBodies(t *testing.T) {
	c := &models.Class{}
	c.Fields = []models.Field{field("mFlags", "Flags", 9,
		annotations.Attributes{}.With("Flags", annotations.String("Flags")), models.FieldNoGetter|models.FieldNoSetter)}
	mirror := &models.FileMirror{Classes: []*models.Class{c}, Enums: []*models.Enum{enumXY()}}

	require.NoError(t, NewSynthesizer(models.NewRegistry()).Synthesize(mirror))

	bodies := map[string]string{}
	for _, m := range c.Methods {
		bodies[m.Name] = m.Body
	}
	assert.Equal(t, "mFlags |= Flags{1};", bodies["SetX"])
	assert.Equal(t, "mFlags &= ~Flags{2};", bodies["UnsetY"])
	assert.Equal(t, "mFlags ^= Flags{1};", bodies["ToggleX"])
}

func TestSynthesizeFlagErrors(t *testing.T) {
	both := annotations.Attributes{}.
		With("FlagGetters", annotations.String("Flags")).
		With("Flags", annotations.String("Flags"))
	missing := annotations.Attributes{}.With("FlagGetters", annotations.String("Missing"))

	tests := []struct {
		name  string
		attrs annotations.Attributes
		code  errors.ErrorCode
	}{
		{"both attribute families", both, errors.ConflictingAttributesErrorCode},
		{"enum not reflected", missing, errors.UnknownEnumErrorCode},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &models.Class{}
			c.Fields = []models.Field{field("mFlags", "Flags", 12, tt.attrs, 0)}
			mirror := &models.FileMirror{Classes: []*models.Class{c}, Enums: []*models.Enum{enumXY()}}

			err := NewSynthesizer(models.NewRegistry()).Synthesize(mirror)
			require.Error(t, err)
			assert.Equal(t, tt.code, errors.CodeOf(err))
			base, ok := errors.AsBase(err)
			require.True(t, ok)
			assert.Equal(t, 12, base.Loc.Line)
		})
	}
}

func TestFindEnumPrefersPublishedFiles(t *testing.T) {
	published := enumXY()
	published.Enumerators = published.Enumerators[:1]
	reg := models.NewRegistry()
	reg.Add(&models.FileMirror{Enums: []*models.Enum{published}}, time.Time{})

	local := enumXY()
	c := &models.Class{}
	c.Fields = []models.Field{field("mFlags", "Flags", 3,
		annotations.Attributes{}.With("FlagGetters", annotations.String("Flags")), models.FieldNoGetter|models.FieldNoSetter)}

	require.NoError(t, NewSynthesizer(reg).Synthesize(&models.FileMirror{Classes: []*models.Class{c}, Enums: []*models.Enum{local}}))
	assert.Equal(t, []string{"IsX"}, methodNames(c))
}
