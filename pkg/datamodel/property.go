package datamodel

import (
	"strconv"

	"github.com/sensorhub/sensor-management-system/pkg/search"
)

// DeviceProperty describes a measured quantity of a device, e.g. soil
// moisture in percent.
type DeviceProperty struct {
	ID                int64
	Label             string
	PropertyName      string
	PropertyURI       string
	UnitName          string
	UnitURI           string
	CompartmentName   string
	SamplingMediaName string
	Resolution        float64
	ResolutionUnit    string
	AccuracyUnit      string

	Device *Device
}

func (p *DeviceProperty) SearchType() string {
	return "device_property"
}

func (p *DeviceProperty) SearchID() string {
	return strconv.FormatInt(p.ID, 10)
}

func (p *DeviceProperty) ParentSearchEntities() []search.Entity {
	if p.Device == nil {
		return nil
	}
	return []search.Entity{p.Device}
}

func (p *DeviceProperty) searchEntry() search.Document {
	return search.Document{
		"label":               p.Label,
		"property_name":       p.PropertyName,
		"unit_name":           p.UnitName,
		"compartment_name":    p.CompartmentName,
		"sampling_media_name": p.SamplingMediaName,
	}
}

func propertyFields() []search.Field {
	return []search.Field{
		{Name: "label", Type: search.FieldText},
		{Name: "property_name", Type: search.FieldText},
		{Name: "unit_name", Type: search.FieldKeyword},
		{Name: "compartment_name", Type: search.FieldKeyword},
		{Name: "sampling_media_name", Type: search.FieldKeyword},
	}
}
