package datamodel

import (
	"strconv"

	"github.com/sensorhub/sensor-management-system/pkg/search"
)

// Contact is a person. Contacts own their own index document and are at the
// same time embedded in the documents of every device, platform,
// configuration and site they hold a role for — the one entity type with
// both search capabilities.
type Contact struct {
	ID           int64
	GivenName    string
	FamilyName   string
	Email        string
	Website      string
	Organization string
	Orcid        string
	Active       bool

	Roles []*ContactRole
}

func (c *Contact) SearchType() string {
	return "contact"
}

func (c *Contact) SearchID() string {
	return strconv.FormatInt(c.ID, 10)
}

func (c *Contact) SearchEntry() search.Document {
	return search.Document{
		"given_name":   c.GivenName,
		"family_name":  c.FamilyName,
		"email":        c.Email,
		"website":      c.Website,
		"organization": c.Organization,
		"orcid":        c.Orcid,
		"active":       c.Active,
	}
}

// ParentSearchEntities returns the owners of all roles the contact holds;
// their documents embed the contact's data.
func (c *Contact) ParentSearchEntities() []search.Entity {
	parents := make([]search.Entity, 0, len(c.Roles))
	for _, role := range c.Roles {
		if owner := role.Owner(); owner != nil {
			parents = append(parents, owner)
		}
	}
	return parents
}

// embeddedDocument is the rendering used inside a parent document.
func (c *Contact) embeddedDocument(roleName string) search.Document {
	return search.Document{
		"role":         roleName,
		"given_name":   c.GivenName,
		"family_name":  c.FamilyName,
		"email":        c.Email,
		"organization": c.Organization,
	}
}

func contactEmbeddedFields() []search.Field {
	return []search.Field{
		{Name: "role", Type: search.FieldKeyword},
		{Name: "given_name", Type: search.FieldText},
		{Name: "family_name", Type: search.FieldText},
		{Name: "email", Type: search.FieldText},
		{Name: "organization", Type: search.FieldText},
	}
}

func contactIndexDefinition() *search.IndexDefinition {
	return &search.IndexDefinition{
		// Names are short; single characters must already narrow the result.
		MinGram:      1,
		MaxGram:      3,
		MaxNgramDiff: 2,
		Fields: []search.Field{
			{Name: "given_name", Type: search.FieldSuggest},
			{Name: "family_name", Type: search.FieldSuggest},
			{Name: "email", Type: search.FieldText},
			{Name: "website", Type: search.FieldText},
			{Name: "organization", Type: search.FieldText},
			{Name: "orcid", Type: search.FieldKeyword},
			{Name: "active", Type: search.FieldBoolean},
		},
	}
}
