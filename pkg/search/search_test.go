package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// test entities with fixed capabilities

type directEntity struct {
	typ string
	id  string
	doc Document
}

func (e *directEntity) SearchType() string    { return e.typ }
func (e *directEntity) SearchID() string      { return e.id }
func (e *directEntity) SearchEntry() Document { return e.doc }

type indirectEntity struct {
	typ     string
	id      string
	parents []Entity
}

func (e *indirectEntity) SearchType() string             { return e.typ }
func (e *indirectEntity) SearchID() string               { return e.id }
func (e *indirectEntity) ParentSearchEntities() []Entity { return e.parents }

type dualEntity struct {
	typ     string
	id      string
	doc     Document
	parents []Entity
}

func (e *dualEntity) SearchType() string             { return e.typ }
func (e *dualEntity) SearchID() string               { return e.id }
func (e *dualEntity) SearchEntry() Document          { return e.doc }
func (e *dualEntity) ParentSearchEntities() []Entity { return e.parents }

func TestRegistryDerivesCapabilities(t *testing.T) {
	registry := NewRegistry()

	err := registry.Register(&directEntity{typ: "device"}, &IndexDefinition{})
	require.NoError(t, err)
	err = registry.Register(&indirectEntity{typ: "attachment"}, nil)
	require.NoError(t, err)
	err = registry.Register(&dualEntity{typ: "contact"}, &IndexDefinition{})
	require.NoError(t, err)

	assert.True(t, registry.Capabilities("device").Direct())
	assert.False(t, registry.Capabilities("device").Indirect())
	assert.False(t, registry.Capabilities("attachment").Direct())
	assert.True(t, registry.Capabilities("attachment").Indirect())
	assert.True(t, registry.Capabilities("contact").Direct())
	assert.True(t, registry.Capabilities("contact").Indirect())
	assert.Equal(t, CapabilityNone, registry.Capabilities("never-registered"))
}

func TestRegistryRejectsDuplicateRegistration(t *testing.T) {
	registry := NewRegistry()

	err := registry.Register(&directEntity{typ: "device"}, &IndexDefinition{})
	require.NoError(t, err)
	err = registry.Register(&directEntity{typ: "device"}, &IndexDefinition{})
	assert.Error(t, err)
}

func TestRegistryRequiresDefinitionForDirectTypes(t *testing.T) {
	registry := NewRegistry()

	err := registry.Register(&directEntity{typ: "device"}, nil)
	assert.Error(t, err)
}

func TestRegistryDirectTypesSorted(t *testing.T) {
	registry := NewRegistry()

	require.NoError(t, registry.Register(&directEntity{typ: "platform"}, &IndexDefinition{}))
	require.NoError(t, registry.Register(&directEntity{typ: "device"}, &IndexDefinition{}))
	require.NoError(t, registry.Register(&indirectEntity{typ: "attachment"}, nil))

	assert.Equal(t, []string{"device", "platform"}, registry.DirectTypes())
}

func TestTextSearchFields(t *testing.T) {
	registry := NewRegistry()

	definition := &IndexDefinition{
		Fields: []Field{
			{Name: "short_name", Type: FieldSuggest},
			{Name: "description", Type: FieldText},
			{Name: "status", Type: FieldKeyword},
			{Name: "archived", Type: FieldBoolean},
			{Name: "attachments", Type: FieldNested, Fields: []Field{
				{Name: "label", Type: FieldText},
				{Name: "url", Type: FieldText},
			}},
		},
	}
	require.NoError(t, registry.Register(&directEntity{typ: "device"}, definition))

	expected := []string{"short_name", "description", "attachments.label", "attachments.url"}
	assert.Equal(t, expected, registry.TextSearchFields("device"))

	// cached result is stable across calls
	assert.Equal(t, expected, registry.TextSearchFields("device"))
	assert.Nil(t, registry.TextSearchFields("never-registered"))
}
