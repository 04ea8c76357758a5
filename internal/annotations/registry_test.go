package annotations

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRegistry_HasBuiltins(t *testing.T) {
	r := DefaultRegistry()

	assert.Equal(t, []AnnotationType{TagAnnotation, LibraryAnnotation, InfoAnnotation, FactoryAnnotation, ParamAnnotation}, r.ListTypes())
	for _, typ := range r.ListTypes() {
		schema, err := r.GetSchema(typ)
		require.NoError(t, err)
		assert.Equal(t, typ, schema.Type)
		assert.NotEmpty(t, schema.Examples, "schema %s should document examples", typ)
	}
}

func TestRegistry_Register(t *testing.T) {
	r := NewRegistry()

	err := r.Register(InfoAnnotation, InfoAnnotationSchema)
	require.NoError(t, err)
	assert.True(t, r.IsRegistered(InfoAnnotation))
	assert.False(t, r.IsRegistered(TagAnnotation))

	err = r.Register(InfoAnnotation, InfoAnnotationSchema)
	assert.ErrorContains(t, err, "already registered")

	err = r.Register(TagAnnotation, InfoAnnotationSchema)
	assert.ErrorContains(t, err, "does not match")

	_, err = r.GetSchema(ParamAnnotation)
	assert.ErrorContains(t, err, "not registered")
}

func TestRegistry_RejectsInvalidSchemas(t *testing.T) {
	r := NewRegistry()

	err := r.Register(TagAnnotation, AnnotationSchema{Type: TagAnnotation})
	assert.ErrorContains(t, err, "at least one target")

	err = r.Register(TagAnnotation, AnnotationSchema{
		Type:    TagAnnotation,
		Targets: []Target{TypeTarget},
		Parameters: map[string]ParameterSpec{
			"Flag": {Type: BoolType, DefaultValue: "yes"},
		},
	})
	assert.ErrorContains(t, err, "must be bool")
}

func TestSchema_Targets(t *testing.T) {
	assert.True(t, TagAnnotationSchema.AllowsTarget(TypeTarget))
	assert.False(t, TagAnnotationSchema.AllowsTarget(PackageTarget))
	assert.True(t, InfoAnnotationSchema.AllowsTarget(PackageTarget))
	assert.True(t, FactoryAnnotationSchema.AllowsTarget(TypeTarget))
	assert.True(t, ParamAnnotationSchema.AllowsTarget(FieldTarget))
	assert.True(t, LibraryAnnotationSchema.AllowsTarget(PackageTarget))
	assert.False(t, LibraryAnnotationSchema.AllowsTarget(TypeTarget))
}

func TestParseAnnotationType_RoundTrip(t *testing.T) {
	for _, name := range kindNames() {
		typ, err := ParseAnnotationType(name)
		require.NoError(t, err)
		assert.Equal(t, name, typ.String())
	}
	_, err := ParseAnnotationType("route")
	assert.Error(t, err)
}

func TestConvertToBool(t *testing.T) {
	b, err := ConvertToBool("true")
	require.NoError(t, err)
	assert.True(t, b)

	b, err = ConvertToBool("0")
	require.NoError(t, err)
	assert.False(t, b)

	_, err = ConvertToBool("maybe")
	assert.Error(t, err)

	_, err = ConvertToBool(3)
	assert.Error(t, err)
}
