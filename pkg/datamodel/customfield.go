package datamodel

import (
	"strconv"

	"github.com/sensorhub/sensor-management-system/pkg/search"
)

// CustomField is a free key/value annotation on a device or a configuration.
// Exactly one owner is set.
type CustomField struct {
	ID    int64
	Key   string
	Value string

	Device        *Device
	Configuration *Configuration
}

func (f *CustomField) SearchType() string {
	return "customfield"
}

func (f *CustomField) SearchID() string {
	return strconv.FormatInt(f.ID, 10)
}

func (f *CustomField) ParentSearchEntities() []search.Entity {
	switch {
	case f.Device != nil:
		return []search.Entity{f.Device}
	case f.Configuration != nil:
		return []search.Entity{f.Configuration}
	default:
		return nil
	}
}

func (f *CustomField) searchEntry() search.Document {
	return search.Document{
		"key":   f.Key,
		"value": f.Value,
	}
}

func customFieldFields() []search.Field {
	return []search.Field{
		{Name: "key", Type: search.FieldText},
		{Name: "value", Type: search.FieldText},
	}
}
