package datamodel

import (
	"github.com/sensorhub/sensor-management-system/pkg/search"
)

// RegisterSearchTypes registers every searchable entity type with its
// capabilities and, for directly searchable types, its index definition.
// Called once at startup, before the store is opened.
func RegisterSearchTypes(registry *search.Registry) error {
	registrations := []struct {
		prototype  search.Entity
		definition *search.IndexDefinition
	}{
		{&Device{}, deviceIndexDefinition()},
		{&Platform{}, platformIndexDefinition()},
		{&Configuration{}, configurationIndexDefinition()},
		{&Site{}, siteIndexDefinition()},
		{&Contact{}, contactIndexDefinition()},

		{&DeviceAttachment{}, nil},
		{&PlatformAttachment{}, nil},
		{&ConfigurationAttachment{}, nil},
		{&SiteAttachment{}, nil},
		{&DeviceProperty{}, nil},
		{&DeviceParameter{}, nil},
		{&PlatformParameter{}, nil},
		{&ConfigurationParameter{}, nil},
		{&CustomField{}, nil},
		{&ContactRole{}, nil},
		{&DeviceMountAction{}, nil},
		{&PlatformMountAction{}, nil},
		{&DeviceCalibrationAction{}, nil},
	}

	for _, registration := range registrations {
		if err := registry.Register(registration.prototype, registration.definition); err != nil {
			return err
		}
	}
	return nil
}
