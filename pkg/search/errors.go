package search

import (
	"errors"
	"strings"
)

var (
	// ErrInvalidIndexDefinition is returned when an index definition cannot
	// be turned into a valid index mapping, e.g. when the n-gram range
	// exceeds the allowed difference.
	ErrInvalidIndexDefinition = errors.New("invalid index definition")

	// ErrUnknownIndex is returned when an operation addresses an entity type
	// for which no index exists.
	ErrUnknownIndex = errors.New("unknown index")
)

// CyclicParentGraphError reports that the parent-search-entity graph contains
// a cycle. The parent walk requires an acyclic graph; a cycle is a defect in
// the domain model, not a condition to recover from.
type CyclicParentGraphError struct {
	// Path holds the (type/id) keys from the first entity down to the one
	// that closed the cycle.
	Path []string
}

func (e *CyclicParentGraphError) Error() string {
	return "cyclic parent search entity graph: " + strings.Join(e.Path, " -> ")
}
