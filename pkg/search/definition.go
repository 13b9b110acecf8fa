package search

import (
	"fmt"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/custom"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/keyword"
	"github.com/blevesearch/bleve/v2/analysis/token/edgengram"
	"github.com/blevesearch/bleve/v2/analysis/token/lowercase"
	"github.com/blevesearch/bleve/v2/analysis/token/ngram"
	"github.com/blevesearch/bleve/v2/analysis/tokenizer/web"
	"github.com/blevesearch/bleve/v2/mapping"
)

// FieldType declares how a document field is indexed.
type FieldType string

const (
	// FieldKeyword is matched exactly, e.g. status or type vocabularies.
	FieldKeyword FieldType = "keyword"
	// FieldText is full-text searchable by substring via the n-gram analyzer.
	FieldText FieldType = "text"
	// FieldSuggest is prefix searchable (search-as-you-type).
	FieldSuggest FieldType = "suggest"
	FieldBoolean FieldType = "boolean"
	FieldInteger FieldType = "integer"
	FieldDate    FieldType = "date"
	// FieldGeoShape indexes GeoJSON-style geometries.
	FieldGeoShape FieldType = "geo_shape"
	// FieldNested indexes an embedded array of sub-documents.
	FieldNested FieldType = "nested"
)

// Field declares one document field. Nested fields carry their own sub-field
// declarations.
type Field struct {
	Name   string
	Type   FieldType
	Fields []Field
}

const (
	DefaultMinGram      = 3
	DefaultMaxGram      = 10
	DefaultMaxNgramDiff = 7

	suggestMinGram = 1
	suggestMaxGram = 20

	substringAnalyzer = "substring"
	suggestAnalyzer   = "suggest"
	ngramFilter       = "substring_ngram"
	suggestFilter     = "suggest_edge_ngram"
)

// IndexDefinition declares the mapping of one entity type's index. Zero gram
// values fall back to the defaults.
type IndexDefinition struct {
	Fields []Field

	// MinGram and MaxGram bound the n-gram filter of the full-text analyzer.
	MinGram int
	MaxGram int
	// MaxNgramDiff is the maximum allowed difference between MinGram and
	// MaxGram, mirroring the indexing constraint of hosted search engines.
	MaxNgramDiff int
}

// Validate reports whether the definition can be turned into an index
// mapping. Violations wrap ErrInvalidIndexDefinition.
func (d IndexDefinition) Validate() error {
	_, err := d.normalize()
	return err
}

func (d IndexDefinition) normalize() (IndexDefinition, error) {
	if d.MinGram == 0 {
		d.MinGram = DefaultMinGram
	}
	if d.MaxGram == 0 {
		d.MaxGram = DefaultMaxGram
	}
	if d.MaxNgramDiff == 0 {
		d.MaxNgramDiff = DefaultMaxNgramDiff
	}

	if d.MinGram < 1 {
		return d, fmt.Errorf("%w: min gram %d must be at least 1", ErrInvalidIndexDefinition, d.MinGram)
	}
	if d.MaxGram < d.MinGram {
		return d, fmt.Errorf("%w: max gram %d is below min gram %d", ErrInvalidIndexDefinition, d.MaxGram, d.MinGram)
	}
	if d.MaxGram-d.MinGram > d.MaxNgramDiff {
		return d, fmt.Errorf(
			"%w: gram range %d..%d exceeds max ngram diff %d",
			ErrInvalidIndexDefinition, d.MinGram, d.MaxGram, d.MaxNgramDiff)
	}
	if err := validateFields(d.Fields); err != nil {
		return d, err
	}
	return d, nil
}

func validateFields(fields []Field) error {
	for _, field := range fields {
		if field.Name == "" {
			return fmt.Errorf("%w: field with empty name", ErrInvalidIndexDefinition)
		}
		switch field.Type {
		case FieldKeyword, FieldText, FieldSuggest, FieldBoolean, FieldInteger, FieldDate, FieldGeoShape:
			if len(field.Fields) != 0 {
				return fmt.Errorf("%w: field %q of type %q must not declare sub-fields", ErrInvalidIndexDefinition, field.Name, field.Type)
			}
		case FieldNested:
			if err := validateFields(field.Fields); err != nil {
				return err
			}
		default:
			return fmt.Errorf("%w: field %q has unknown type %q", ErrInvalidIndexDefinition, field.Name, field.Type)
		}
	}
	return nil
}

// buildMapping turns a normalized definition into a bleve index mapping with
// the lowercase + n-gram substring analyzer over the URL/email aware web
// tokenizer.
func (d IndexDefinition) buildMapping() (*mapping.IndexMappingImpl, error) {
	indexMapping := bleve.NewIndexMapping()

	err := indexMapping.AddCustomTokenFilter(ngramFilter, map[string]interface{}{
		"type": ngram.Name,
		"min":  float64(d.MinGram),
		"max":  float64(d.MaxGram),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidIndexDefinition, err)
	}
	err = indexMapping.AddCustomAnalyzer(substringAnalyzer, map[string]interface{}{
		"type":          custom.Name,
		"tokenizer":     web.Name,
		"token_filters": []interface{}{lowercase.Name, ngramFilter},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidIndexDefinition, err)
	}

	err = indexMapping.AddCustomTokenFilter(suggestFilter, map[string]interface{}{
		"type": edgengram.Name,
		"min":  float64(suggestMinGram),
		"max":  float64(suggestMaxGram),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidIndexDefinition, err)
	}
	err = indexMapping.AddCustomAnalyzer(suggestAnalyzer, map[string]interface{}{
		"type":          custom.Name,
		"tokenizer":     web.Name,
		"token_filters": []interface{}{lowercase.Name, suggestFilter},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidIndexDefinition, err)
	}

	root := bleve.NewDocumentMapping()
	if err = addFieldMappings(root, d.Fields); err != nil {
		return nil, err
	}
	indexMapping.DefaultMapping = root

	return indexMapping, nil
}

func addFieldMappings(doc *mapping.DocumentMapping, fields []Field) error {
	for _, field := range fields {
		switch field.Type {
		case FieldKeyword:
			fm := bleve.NewTextFieldMapping()
			fm.Analyzer = keyword.Name
			doc.AddFieldMappingsAt(field.Name, fm)
		case FieldText:
			fm := bleve.NewTextFieldMapping()
			fm.Analyzer = substringAnalyzer
			doc.AddFieldMappingsAt(field.Name, fm)
		case FieldSuggest:
			fm := bleve.NewTextFieldMapping()
			fm.Analyzer = suggestAnalyzer
			doc.AddFieldMappingsAt(field.Name, fm)
		case FieldBoolean:
			doc.AddFieldMappingsAt(field.Name, bleve.NewBooleanFieldMapping())
		case FieldInteger:
			doc.AddFieldMappingsAt(field.Name, bleve.NewNumericFieldMapping())
		case FieldDate:
			doc.AddFieldMappingsAt(field.Name, bleve.NewDateTimeFieldMapping())
		case FieldGeoShape:
			doc.AddFieldMappingsAt(field.Name, bleve.NewGeoShapeFieldMapping())
		case FieldNested:
			sub := bleve.NewDocumentMapping()
			if err := addFieldMappings(sub, field.Fields); err != nil {
				return err
			}
			doc.AddSubDocumentMapping(field.Name, sub)
		}
	}
	return nil
}
