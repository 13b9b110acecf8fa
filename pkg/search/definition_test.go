package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefinitionDefaults(t *testing.T) {
	normalized, err := IndexDefinition{}.normalize()
	require.NoError(t, err)
	assert.Equal(t, DefaultMinGram, normalized.MinGram)
	assert.Equal(t, DefaultMaxGram, normalized.MaxGram)
	assert.Equal(t, DefaultMaxNgramDiff, normalized.MaxNgramDiff)
}

func TestDefinitionRejectsGramRangeAboveMaxDiff(t *testing.T) {
	definition := IndexDefinition{MinGram: 1, MaxGram: 10, MaxNgramDiff: 2}
	err := definition.Validate()
	assert.ErrorIs(t, err, ErrInvalidIndexDefinition)
}

func TestDefinitionRejectsInvertedGramRange(t *testing.T) {
	definition := IndexDefinition{MinGram: 5, MaxGram: 3}
	assert.ErrorIs(t, definition.Validate(), ErrInvalidIndexDefinition)
}

func TestDefinitionRejectsZeroMinGram(t *testing.T) {
	definition := IndexDefinition{MinGram: -1, MaxGram: 3}
	assert.ErrorIs(t, definition.Validate(), ErrInvalidIndexDefinition)
}

func TestDefinitionRejectsUnknownFieldType(t *testing.T) {
	definition := IndexDefinition{Fields: []Field{{Name: "broken", Type: "half_keyword"}}}
	assert.ErrorIs(t, definition.Validate(), ErrInvalidIndexDefinition)
}

func TestDefinitionRejectsEmptyFieldName(t *testing.T) {
	definition := IndexDefinition{Fields: []Field{{Type: FieldText}}}
	assert.ErrorIs(t, definition.Validate(), ErrInvalidIndexDefinition)
}

func TestDefinitionRejectsSubFieldsOnScalarTypes(t *testing.T) {
	definition := IndexDefinition{Fields: []Field{
		{Name: "label", Type: FieldText, Fields: []Field{{Name: "inner", Type: FieldText}}},
	}}
	assert.ErrorIs(t, definition.Validate(), ErrInvalidIndexDefinition)
}

func TestDefinitionValidatesNestedFields(t *testing.T) {
	definition := IndexDefinition{Fields: []Field{
		{Name: "attachments", Type: FieldNested, Fields: []Field{
			{Name: "label", Type: "no_such_type"},
		}},
	}}
	assert.ErrorIs(t, definition.Validate(), ErrInvalidIndexDefinition)
}

func TestBuildMappingCoversAllFieldTypes(t *testing.T) {
	definition := IndexDefinition{Fields: []Field{
		{Name: "short_name", Type: FieldSuggest},
		{Name: "description", Type: FieldText},
		{Name: "status", Type: FieldKeyword},
		{Name: "archived", Type: FieldBoolean},
		{Name: "revision", Type: FieldInteger},
		{Name: "updated_at", Type: FieldDate},
		{Name: "geometry", Type: FieldGeoShape},
		{Name: "attachments", Type: FieldNested, Fields: []Field{
			{Name: "label", Type: FieldText},
		}},
	}}
	normalized, err := definition.normalize()
	require.NoError(t, err)

	indexMapping, err := normalized.buildMapping()
	require.NoError(t, err)
	assert.NoError(t, indexMapping.Validate())
}
