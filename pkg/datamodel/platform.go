package datamodel

import (
	"strconv"
	"time"

	"github.com/sensorhub/sensor-management-system/pkg/search"
)

// Platform is a carrier for devices, e.g. a station, a buoy or an aircraft.
type Platform struct {
	ID               int64
	ShortName        string
	LongName         string
	SerialNumber     string
	ManufacturerName string
	Model            string
	Description      string
	PlatformTypeName string
	StatusName       string
	InventoryNumber  string
	PersistentID     string
	Archived         bool
	CreatedAt        time.Time
	UpdatedAt        time.Time

	Attachments  []*PlatformAttachment
	Parameters   []*PlatformParameter
	ContactRoles []*ContactRole
}

func (p *Platform) SearchType() string {
	return "platform"
}

func (p *Platform) SearchID() string {
	return strconv.FormatInt(p.ID, 10)
}

func (p *Platform) SearchEntry() search.Document {
	attachments := make([]search.Document, 0, len(p.Attachments))
	for _, attachment := range p.Attachments {
		attachments = append(attachments, attachment.searchEntry())
	}
	parameters := make([]search.Document, 0, len(p.Parameters))
	for _, parameter := range p.Parameters {
		parameters = append(parameters, parameter.searchEntry())
	}

	return search.Document{
		"short_name":         p.ShortName,
		"long_name":          p.LongName,
		"serial_number":      p.SerialNumber,
		"manufacturer_name":  p.ManufacturerName,
		"model":              p.Model,
		"description":        p.Description,
		"platform_type_name": p.PlatformTypeName,
		"status_name":        p.StatusName,
		"inventory_number":   p.InventoryNumber,
		"persistent_id":      p.PersistentID,
		"archived":           p.Archived,
		"updated_at":         p.UpdatedAt,
		"attachments":        attachments,
		"parameters":         parameters,
		"contacts":           contactDocuments(p.ContactRoles),
	}
}

func platformIndexDefinition() *search.IndexDefinition {
	return &search.IndexDefinition{
		Fields: []search.Field{
			{Name: "short_name", Type: search.FieldSuggest},
			{Name: "long_name", Type: search.FieldText},
			{Name: "serial_number", Type: search.FieldText},
			{Name: "manufacturer_name", Type: search.FieldText},
			{Name: "model", Type: search.FieldText},
			{Name: "description", Type: search.FieldText},
			{Name: "platform_type_name", Type: search.FieldKeyword},
			{Name: "status_name", Type: search.FieldKeyword},
			{Name: "inventory_number", Type: search.FieldKeyword},
			{Name: "persistent_id", Type: search.FieldKeyword},
			{Name: "archived", Type: search.FieldBoolean},
			{Name: "updated_at", Type: search.FieldDate},
			{Name: "attachments", Type: search.FieldNested, Fields: attachmentFields()},
			{Name: "parameters", Type: search.FieldNested, Fields: parameterFields()},
			{Name: "contacts", Type: search.FieldNested, Fields: contactEmbeddedFields()},
		},
	}
}
