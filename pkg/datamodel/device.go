// Package datamodel holds the persisted domain records of the sensor
// management system and their search renderings. Devices, platforms,
// configurations, sites and contacts own index documents; attachments,
// properties, parameters, custom fields, contact roles and actions only
// contribute content to their parents' documents.
package datamodel

import (
	"strconv"
	"time"

	"github.com/sensorhub/sensor-management-system/pkg/search"
)

// Device is a scientific instrument.
type Device struct {
	ID               int64
	ShortName        string
	LongName         string
	SerialNumber     string
	ManufacturerName string
	Model            string
	Description      string
	DeviceTypeName   string
	StatusName       string
	Website          string
	InventoryNumber  string
	PersistentID     string
	Archived         bool
	CreatedAt        time.Time
	UpdatedAt        time.Time

	Attachments        []*DeviceAttachment
	Properties         []*DeviceProperty
	Parameters         []*DeviceParameter
	CustomFields       []*CustomField
	ContactRoles       []*ContactRole
	CalibrationActions []*DeviceCalibrationAction
}

func (d *Device) SearchType() string {
	return "device"
}

func (d *Device) SearchID() string {
	return strconv.FormatInt(d.ID, 10)
}

// SearchEntry renders the device document, denormalizing all indirectly
// searchable children. Rendering is pure: the same state always produces the
// same document.
func (d *Device) SearchEntry() search.Document {
	attachments := make([]search.Document, 0, len(d.Attachments))
	for _, attachment := range d.Attachments {
		attachments = append(attachments, attachment.searchEntry())
	}
	properties := make([]search.Document, 0, len(d.Properties))
	for _, property := range d.Properties {
		properties = append(properties, property.searchEntry())
	}
	parameters := make([]search.Document, 0, len(d.Parameters))
	for _, parameter := range d.Parameters {
		parameters = append(parameters, parameter.searchEntry())
	}
	customFields := make([]search.Document, 0, len(d.CustomFields))
	for _, field := range d.CustomFields {
		customFields = append(customFields, field.searchEntry())
	}
	calibrations := make([]search.Document, 0, len(d.CalibrationActions))
	for _, action := range d.CalibrationActions {
		calibrations = append(calibrations, action.searchEntry())
	}

	return search.Document{
		"short_name":          d.ShortName,
		"long_name":           d.LongName,
		"serial_number":       d.SerialNumber,
		"manufacturer_name":   d.ManufacturerName,
		"model":               d.Model,
		"description":         d.Description,
		"device_type_name":    d.DeviceTypeName,
		"status_name":         d.StatusName,
		"website":             d.Website,
		"inventory_number":    d.InventoryNumber,
		"persistent_id":       d.PersistentID,
		"archived":            d.Archived,
		"updated_at":          d.UpdatedAt,
		"attachments":         attachments,
		"properties":          properties,
		"parameters":          parameters,
		"customfields":        customFields,
		"calibration_actions": calibrations,
		"contacts":            contactDocuments(d.ContactRoles),
	}
}

func deviceIndexDefinition() *search.IndexDefinition {
	return &search.IndexDefinition{
		Fields: []search.Field{
			{Name: "short_name", Type: search.FieldSuggest},
			{Name: "long_name", Type: search.FieldText},
			{Name: "serial_number", Type: search.FieldText},
			{Name: "manufacturer_name", Type: search.FieldText},
			{Name: "model", Type: search.FieldText},
			{Name: "description", Type: search.FieldText},
			{Name: "device_type_name", Type: search.FieldKeyword},
			{Name: "status_name", Type: search.FieldKeyword},
			{Name: "website", Type: search.FieldText},
			{Name: "inventory_number", Type: search.FieldKeyword},
			{Name: "persistent_id", Type: search.FieldKeyword},
			{Name: "archived", Type: search.FieldBoolean},
			{Name: "updated_at", Type: search.FieldDate},
			{Name: "attachments", Type: search.FieldNested, Fields: attachmentFields()},
			{Name: "properties", Type: search.FieldNested, Fields: propertyFields()},
			{Name: "parameters", Type: search.FieldNested, Fields: parameterFields()},
			{Name: "customfields", Type: search.FieldNested, Fields: customFieldFields()},
			{Name: "calibration_actions", Type: search.FieldNested, Fields: calibrationFields()},
			{Name: "contacts", Type: search.FieldNested, Fields: contactEmbeddedFields()},
		},
	}
}
