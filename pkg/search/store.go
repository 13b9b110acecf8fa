package search

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/search/query"
)

// DefaultPageSize is used when a query does not specify one.
const DefaultPageSize = 20

// Store is the index store adapter: one bleve index per directly searchable
// entity type. With an empty path all indexes live in memory, which is what
// the tests use.
type Store struct {
	path string

	mu       sync.RWMutex
	registry *Registry
	indexes  map[string]bleve.Index
}

func NewStore(path string) *Store {
	return &Store{
		path:    path,
		indexes: make(map[string]bleve.Index),
	}
}

// Open opens (or creates) the index of every directly searchable type in the
// registry. Call once at startup, after all types are registered.
func (s *Store) Open(registry *Registry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.registry = registry
	for _, typeName := range registry.DirectTypes() {
		definition, _ := registry.Definition(typeName)
		index, err := s.openIndex(typeName, definition, false)
		if err != nil {
			return fmt.Errorf("open index %q: %w", typeName, err)
		}
		s.indexes[typeName] = index
	}
	return nil
}

// RecreateIndex drops and recreates the index of one entity type. All
// documents are lost; the caller is expected to refill it (see the reindex
// service).
func (s *Store) RecreateIndex(typeName string, definition IndexDefinition) error {
	normalized, err := definition.normalize()
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if old, ok := s.indexes[typeName]; ok {
		if err = old.Close(); err != nil {
			return fmt.Errorf("close index %q: %w", typeName, err)
		}
		delete(s.indexes, typeName)
	}
	index, err := s.openIndex(typeName, normalized, true)
	if err != nil {
		return fmt.Errorf("recreate index %q: %w", typeName, err)
	}
	s.indexes[typeName] = index
	return nil
}

// AddOrUpdate upserts one document. The write is idempotent.
func (s *Store) AddOrUpdate(ctx context.Context, typeName string, id string, doc Document) error {
	index, err := s.index(typeName)
	if err != nil {
		return err
	}
	return index.Index(id, map[string]interface{}(doc))
}

// Remove deletes one document. Removing an absent id is not an error.
func (s *Store) Remove(ctx context.Context, typeName string, id string) error {
	index, err := s.index(typeName)
	if err != nil {
		return err
	}
	return index.Delete(id)
}

// Query runs a full-text query and returns the matching ids of one page in
// relevance order (or the given sort order) plus the total match count. The
// caller re-fetches the records from the relational store in exactly this
// order; the index is authoritative for which ids match and how they rank,
// never for record content.
func (s *Store) Query(
	ctx context.Context,
	typeName string,
	text string,
	page int,
	pageSize int,
	ordering []string,
) (ids []string, total uint64, err error) {
	index, err := s.index(typeName)
	if err != nil {
		return nil, 0, err
	}

	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}

	var request *bleve.SearchRequest
	if strings.TrimSpace(text) == "" {
		request = bleve.NewSearchRequestOptions(bleve.NewMatchAllQuery(), pageSize, (page-1)*pageSize, false)
	} else {
		request = bleve.NewSearchRequestOptions(s.textQuery(typeName, text), pageSize, (page-1)*pageSize, false)
	}
	if len(ordering) > 0 {
		request.SortBy(ordering)
	}

	result, err := index.SearchInContext(ctx, request)
	if err != nil {
		return nil, 0, err
	}

	ids = make([]string, 0, len(result.Hits))
	for _, hit := range result.Hits {
		ids = append(ids, hit.ID)
	}
	return ids, result.Total, nil
}

// textQuery scopes a full-text query to the registered text fields of the
// type, so keyword and boolean content never matches free text. Nested text
// fields are addressed by their dotted path.
func (s *Store) textQuery(typeName string, text string) query.Query {
	s.mu.RLock()
	registry := s.registry
	s.mu.RUnlock()

	var fields []string
	if registry != nil {
		fields = registry.TextSearchFields(typeName)
	}
	if len(fields) == 0 {
		match := bleve.NewMatchQuery(text)
		match.Analyzer = substringAnalyzer
		return match
	}

	disjunction := bleve.NewDisjunctionQuery()
	for _, field := range fields {
		match := bleve.NewMatchQuery(text)
		match.SetField(field)
		match.Analyzer = substringAnalyzer
		disjunction.AddQuery(match)
	}
	return disjunction
}

// DocCount returns the number of documents currently held for one type.
func (s *Store) DocCount(typeName string) (uint64, error) {
	index, err := s.index(typeName)
	if err != nil {
		return 0, err
	}
	return index.DocCount()
}

// Close closes all indexes.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	var errs []error
	for typeName, index := range s.indexes {
		if err := index.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close index %q: %w", typeName, err))
		}
		delete(s.indexes, typeName)
	}
	return errors.Join(errs...)
}

func (s *Store) index(typeName string) (bleve.Index, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	index, ok := s.indexes[typeName]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownIndex, typeName)
	}
	return index, nil
}

func (s *Store) openIndex(typeName string, definition IndexDefinition, recreate bool) (bleve.Index, error) {
	indexMapping, err := definition.buildMapping()
	if err != nil {
		return nil, err
	}

	if s.path == "" {
		return bleve.NewMemOnly(indexMapping)
	}

	indexPath := filepath.Join(s.path, typeName)
	if recreate {
		if err = os.RemoveAll(indexPath); err != nil {
			return nil, err
		}
	}
	index, err := bleve.Open(indexPath)
	if errors.Is(err, bleve.ErrorIndexPathDoesNotExist) {
		index, err = bleve.New(indexPath, indexMapping)
	}
	return index, err
}
