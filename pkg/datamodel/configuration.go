package datamodel

import (
	"strconv"
	"time"

	"github.com/sensorhub/sensor-management-system/pkg/search"
)

// Configuration is a deployment setup: devices mounted on platforms at a
// site for a measurement campaign.
type Configuration struct {
	ID          int64
	Label       string
	Description string
	Project     string
	Campaign    string
	StatusName  string
	StartDate   *time.Time
	EndDate     *time.Time
	Archived    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Site *Site

	Attachments    []*ConfigurationAttachment
	Parameters     []*ConfigurationParameter
	CustomFields   []*CustomField
	ContactRoles   []*ContactRole
	DeviceMounts   []*DeviceMountAction
	PlatformMounts []*PlatformMountAction
}

func (c *Configuration) SearchType() string {
	return "configuration"
}

func (c *Configuration) SearchID() string {
	return strconv.FormatInt(c.ID, 10)
}

func (c *Configuration) SearchEntry() search.Document {
	attachments := make([]search.Document, 0, len(c.Attachments))
	for _, attachment := range c.Attachments {
		attachments = append(attachments, attachment.searchEntry())
	}
	parameters := make([]search.Document, 0, len(c.Parameters))
	for _, parameter := range c.Parameters {
		parameters = append(parameters, parameter.searchEntry())
	}
	customFields := make([]search.Document, 0, len(c.CustomFields))
	for _, field := range c.CustomFields {
		customFields = append(customFields, field.searchEntry())
	}
	deviceMounts := make([]search.Document, 0, len(c.DeviceMounts))
	for _, mount := range c.DeviceMounts {
		deviceMounts = append(deviceMounts, mount.searchEntry())
	}
	platformMounts := make([]search.Document, 0, len(c.PlatformMounts))
	for _, mount := range c.PlatformMounts {
		platformMounts = append(platformMounts, mount.searchEntry())
	}

	doc := search.Document{
		"label":           c.Label,
		"description":     c.Description,
		"project":         c.Project,
		"campaign":        c.Campaign,
		"status_name":     c.StatusName,
		"archived":        c.Archived,
		"updated_at":      c.UpdatedAt,
		"attachments":     attachments,
		"parameters":      parameters,
		"customfields":    customFields,
		"device_mounts":   deviceMounts,
		"platform_mounts": platformMounts,
		"contacts":        contactDocuments(c.ContactRoles),
	}
	if c.StartDate != nil {
		doc["start_date"] = *c.StartDate
	}
	if c.EndDate != nil {
		doc["end_date"] = *c.EndDate
	}
	if c.Site != nil {
		doc["site_label"] = c.Site.Label
	}
	return doc
}

func configurationIndexDefinition() *search.IndexDefinition {
	return &search.IndexDefinition{
		Fields: []search.Field{
			{Name: "label", Type: search.FieldSuggest},
			{Name: "description", Type: search.FieldText},
			{Name: "project", Type: search.FieldText},
			{Name: "campaign", Type: search.FieldText},
			{Name: "status_name", Type: search.FieldKeyword},
			{Name: "site_label", Type: search.FieldText},
			{Name: "archived", Type: search.FieldBoolean},
			{Name: "start_date", Type: search.FieldDate},
			{Name: "end_date", Type: search.FieldDate},
			{Name: "updated_at", Type: search.FieldDate},
			{Name: "attachments", Type: search.FieldNested, Fields: attachmentFields()},
			{Name: "parameters", Type: search.FieldNested, Fields: parameterFields()},
			{Name: "customfields", Type: search.FieldNested, Fields: customFieldFields()},
			{Name: "device_mounts", Type: search.FieldNested, Fields: mountFields()},
			{Name: "platform_mounts", Type: search.FieldNested, Fields: mountFields()},
			{Name: "contacts", Type: search.FieldNested, Fields: contactEmbeddedFields()},
		},
	}
}
