// Package search keeps a denormalized full-text index consistent with the
// relational store. Entities announce their capabilities through the Direct
// and Indirect interfaces; the Registry fixes those capabilities once per
// entity type at startup, the Resolver walks the parent graph of a changed
// entity, and the Synchronizer stages documents before a transaction commits
// and flushes them once it has.
package search

import (
	"fmt"
	"sort"
	"sync"
)

// Document is the nested, serializable rendering of an entity (including the
// content of its indirectly searchable children) stored in the index.
type Document map[string]interface{}

// Entity is any persisted record that participates in search, identified by
// a stable (type, id) pair.
type Entity interface {
	SearchType() string
	SearchID() string
}

// Direct is an entity that owns its own index document.
type Direct interface {
	Entity
	SearchEntry() Document
}

// Indirect is an entity whose content is folded into one or more parent
// documents instead of being indexed on its own. An entity may be both
// Direct and Indirect (e.g. a contact).
type Indirect interface {
	Entity
	ParentSearchEntities() []Entity
}

// Capability describes which search roles an entity type fulfills.
type Capability uint8

const (
	CapabilityNone     Capability = 0
	CapabilityDirect   Capability = 1 << 0
	CapabilityIndirect Capability = 1 << 1
)

func (c Capability) Direct() bool {
	return c&CapabilityDirect != 0
}

func (c Capability) Indirect() bool {
	return c&CapabilityIndirect != 0
}

// Registry fixes the search capabilities and index definitions of all entity
// types. Capabilities are derived once per type at registration, so the
// resolver never has to probe individual instances.
type Registry struct {
	capabilities map[string]Capability
	definitions  map[string]IndexDefinition

	textFieldsMu sync.Mutex
	textFields   map[string][]string
}

func NewRegistry() *Registry {
	return &Registry{
		capabilities: make(map[string]Capability),
		definitions:  make(map[string]IndexDefinition),
		textFields:   make(map[string][]string),
	}
}

// Register derives the capabilities of prototype's entity type from the
// interfaces it implements. Directly searchable types must bring an index
// definition; purely indirect types pass nil.
func (r *Registry) Register(prototype Entity, def *IndexDefinition) error {
	typeName := prototype.SearchType()
	if _, ok := r.capabilities[typeName]; ok {
		return fmt.Errorf("search type %q is already registered", typeName)
	}

	var capability Capability
	if _, ok := prototype.(Direct); ok {
		capability |= CapabilityDirect
	}
	if _, ok := prototype.(Indirect); ok {
		capability |= CapabilityIndirect
	}
	if capability == CapabilityNone {
		return fmt.Errorf("search type %q implements neither Direct nor Indirect", typeName)
	}

	if capability.Direct() {
		if def == nil {
			return fmt.Errorf("search type %q is directly searchable but has no index definition", typeName)
		}
		normalized, err := def.normalize()
		if err != nil {
			return fmt.Errorf("search type %q: %w", typeName, err)
		}
		r.definitions[typeName] = normalized
	}

	r.capabilities[typeName] = capability
	return nil
}

// Capabilities returns the registered capability of a type. Unregistered
// types are not searchable.
func (r *Registry) Capabilities(typeName string) Capability {
	return r.capabilities[typeName]
}

// Definition returns the index definition of a directly searchable type.
func (r *Registry) Definition(typeName string) (IndexDefinition, bool) {
	def, ok := r.definitions[typeName]
	return def, ok
}

// DirectTypes returns the names of all directly searchable types in stable
// order.
func (r *Registry) DirectTypes() []string {
	types := make([]string, 0, len(r.definitions))
	for typeName := range r.definitions {
		types = append(types, typeName)
	}
	sort.Strings(types)
	return types
}

// TextSearchFields returns the paths of all full-text fields of a type,
// including those of nested sub-documents. The result is computed once per
// type and cached for the lifetime of the registry.
func (r *Registry) TextSearchFields(typeName string) []string {
	r.textFieldsMu.Lock()
	defer r.textFieldsMu.Unlock()

	if fields, ok := r.textFields[typeName]; ok {
		return fields
	}
	def, ok := r.definitions[typeName]
	if !ok {
		return nil
	}
	fields := collectTextFields("", def.Fields)
	r.textFields[typeName] = fields
	return fields
}

func collectTextFields(prefix string, fields []Field) []string {
	var paths []string
	for _, field := range fields {
		path := field.Name
		if prefix != "" {
			path = prefix + "." + field.Name
		}
		switch field.Type {
		case FieldText, FieldSuggest:
			paths = append(paths, path)
		case FieldNested:
			paths = append(paths, collectTextFields(path, field.Fields)...)
		}
	}
	return paths
}
