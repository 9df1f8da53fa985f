package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toyz/reflector/internal/errors"
)

func TestNewOptionsDefaults(t *testing.T) {
	o := NewOptions()

	assert.True(t, o.UseJSON)
	assert.Equal(t, "R", o.AnnotationPrefix)
	assert.Equal(t, "REFLECT", o.MacroPrefix)
	assert.Equal(t, DefaultExtensions, o.Extensions)

	m := o.Markers()
	assert.Equal(t, Markers{
		Enum:       "REnum",
		Enumerator: "REnumerator",
		Class:      "RClass",
		Field:      "RField",
		Method:     "RMethod",
		Body:       "RBody",
	}, m)
}

func TestNewDerivesMarkersFromPrefix(t *testing.T) {
	o, err := New(WithAnnotationPrefix("Reflect"), WithWorkers(4), WithForce())
	require.NoError(t, err)

	m := o.Markers()
	assert.Equal(t, "ReflectEnum", m.Enum)
	assert.Equal(t, "ReflectEnumerator", m.Enumerator)
	assert.Equal(t, "ReflectClass", m.Class)
	assert.Equal(t, "ReflectField", m.Field)
	assert.Equal(t, "ReflectMethod", m.Method)
	assert.Equal(t, "ReflectBody", m.Body)
	assert.Equal(t, 4, o.Workers)
	assert.True(t, o.Force)
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name    string
		opts    Options
		wantErr bool
		check   func(t *testing.T, o *Options)
	}{
		{
			name: "empty prefix falls back to default",
			opts: Options{},
			check: func(t *testing.T, o *Options) {
				assert.Equal(t, "RClass", o.Markers().Class)
				assert.Equal(t, DefaultMacroPrefix, o.MacroPrefix)
			},
		},
		{
			name: "extensions are lowered and dotted",
			opts: Options{Extensions: []string{"H", " .HPP ", "inl"}},
			check: func(t *testing.T, o *Options) {
				assert.Equal(t, []string{".h", ".hpp", ".inl"}, o.Extensions)
				assert.True(t, o.HasExtension("/src/Widget.HPP"))
				assert.False(t, o.HasExtension("/src/widget.cpp"))
			},
		},
		{
			name: "verbose overrides quiet",
			opts: Options{Quiet: true, Verbose: true},
			check: func(t *testing.T, o *Options) {
				assert.False(t, o.Quiet)
				assert.True(t, o.Verbose)
			},
		},
		{
			name:    "prefix with punctuation is rejected",
			opts:    Options{AnnotationPrefix: "R::"},
			wantErr: true,
		},
		{
			name:    "negative workers are rejected",
			opts:    Options{Workers: -1},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := tt.opts
			err := o.Normalize()
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, errors.ConfigurationErrorCode))
				return
			}
			require.NoError(t, err)
			tt.check(t, &o)
		})
	}
}
