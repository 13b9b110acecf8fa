package datamodel

import (
	"strconv"
	"time"

	"github.com/sensorhub/sensor-management-system/pkg/search"
)

// Site is a geographic location configurations are assigned to.
type Site struct {
	ID           int64
	Label        string
	Description  string
	UsageName    string
	SiteTypeName string
	Street       string
	StreetNumber string
	City         string
	ZipCode      string
	Country      string
	Building     string
	Room         string
	// Geometry is the site outline as (longitude, latitude) pairs.
	Geometry  []Coordinate
	Archived  bool
	CreatedAt time.Time
	UpdatedAt time.Time

	Attachments  []*SiteAttachment
	ContactRoles []*ContactRole
}

// Coordinate is a (longitude, latitude) pair.
type Coordinate struct {
	Longitude float64
	Latitude  float64
}

func (s *Site) SearchType() string {
	return "site"
}

func (s *Site) SearchID() string {
	return strconv.FormatInt(s.ID, 10)
}

func (s *Site) SearchEntry() search.Document {
	attachments := make([]search.Document, 0, len(s.Attachments))
	for _, attachment := range s.Attachments {
		attachments = append(attachments, attachment.searchEntry())
	}

	doc := search.Document{
		"label":          s.Label,
		"description":    s.Description,
		"usage_name":     s.UsageName,
		"site_type_name": s.SiteTypeName,
		"street":         s.Street,
		"street_number":  s.StreetNumber,
		"city":           s.City,
		"zip_code":       s.ZipCode,
		"country":        s.Country,
		"building":       s.Building,
		"room":           s.Room,
		"archived":       s.Archived,
		"updated_at":     s.UpdatedAt,
		"attachments":    attachments,
		"contacts":       contactDocuments(s.ContactRoles),
	}
	if geometry := s.geometryDocument(); geometry != nil {
		doc["geometry"] = geometry
	}
	return doc
}

// geometryDocument renders the outline as a GeoJSON-style polygon, the shape
// format the index store expects for geo_shape fields.
func (s *Site) geometryDocument() search.Document {
	if len(s.Geometry) < 3 {
		return nil
	}
	ring := make([][]float64, 0, len(s.Geometry)+1)
	for _, coordinate := range s.Geometry {
		ring = append(ring, []float64{coordinate.Longitude, coordinate.Latitude})
	}
	// GeoJSON polygons are closed rings.
	first := s.Geometry[0]
	last := s.Geometry[len(s.Geometry)-1]
	if first != last {
		ring = append(ring, []float64{first.Longitude, first.Latitude})
	}
	return search.Document{
		"type":        "Polygon",
		"coordinates": [][][]float64{ring},
	}
}

func siteIndexDefinition() *search.IndexDefinition {
	return &search.IndexDefinition{
		// Site labels are often short codes, so grams start at one.
		MinGram:      1,
		MaxGram:      3,
		MaxNgramDiff: 2,
		Fields: []search.Field{
			{Name: "label", Type: search.FieldSuggest},
			{Name: "description", Type: search.FieldText},
			{Name: "usage_name", Type: search.FieldKeyword},
			{Name: "site_type_name", Type: search.FieldKeyword},
			{Name: "street", Type: search.FieldText},
			{Name: "street_number", Type: search.FieldKeyword},
			{Name: "city", Type: search.FieldText},
			{Name: "zip_code", Type: search.FieldKeyword},
			{Name: "country", Type: search.FieldText},
			{Name: "building", Type: search.FieldKeyword},
			{Name: "room", Type: search.FieldKeyword},
			{Name: "archived", Type: search.FieldBoolean},
			{Name: "updated_at", Type: search.FieldDate},
			{Name: "geometry", Type: search.FieldGeoShape},
			{Name: "attachments", Type: search.FieldNested, Fields: attachmentFields()},
			{Name: "contacts", Type: search.FieldNested, Fields: contactEmbeddedFields()},
		},
	}
}
