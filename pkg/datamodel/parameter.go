package datamodel

import (
	"strconv"

	"github.com/sensorhub/sensor-management-system/pkg/search"
)

// Parameter holds the shared fields of the per-entity parameter kinds, e.g.
// a configurable measurement interval.
type Parameter struct {
	ID          int64
	Label       string
	Description string
	UnitName    string
	UnitURI     string
}

func (p *Parameter) searchEntry() search.Document {
	return search.Document{
		"label":       p.Label,
		"description": p.Description,
		"unit_name":   p.UnitName,
	}
}

func parameterFields() []search.Field {
	return []search.Field{
		{Name: "label", Type: search.FieldText},
		{Name: "description", Type: search.FieldText},
		{Name: "unit_name", Type: search.FieldKeyword},
	}
}

type DeviceParameter struct {
	Parameter
	Device *Device
}

func (p *DeviceParameter) SearchType() string {
	return "device_parameter"
}

func (p *DeviceParameter) SearchID() string {
	return strconv.FormatInt(p.ID, 10)
}

func (p *DeviceParameter) ParentSearchEntities() []search.Entity {
	if p.Device == nil {
		return nil
	}
	return []search.Entity{p.Device}
}

type PlatformParameter struct {
	Parameter
	Platform *Platform
}

func (p *PlatformParameter) SearchType() string {
	return "platform_parameter"
}

func (p *PlatformParameter) SearchID() string {
	return strconv.FormatInt(p.ID, 10)
}

func (p *PlatformParameter) ParentSearchEntities() []search.Entity {
	if p.Platform == nil {
		return nil
	}
	return []search.Entity{p.Platform}
}

type ConfigurationParameter struct {
	Parameter
	Configuration *Configuration
}

func (p *ConfigurationParameter) SearchType() string {
	return "configuration_parameter"
}

func (p *ConfigurationParameter) SearchID() string {
	return strconv.FormatInt(p.ID, 10)
}

func (p *ConfigurationParameter) ParentSearchEntities() []search.Entity {
	if p.Configuration == nil {
		return nil
	}
	return []search.Entity{p.Configuration}
}
