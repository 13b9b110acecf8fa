package datamodel

import (
	"strconv"
	"time"

	"github.com/sensorhub/sensor-management-system/pkg/search"
)

// DeviceMountAction records a device being mounted on a configuration for a
// time span. Mount actions surface in the configuration's document.
type DeviceMountAction struct {
	ID               int64
	Label            string
	BeginDescription string
	EndDescription   string
	BeginDate        time.Time
	EndDate          *time.Time
	OffsetX          float64
	OffsetY          float64
	OffsetZ          float64

	Device        *Device
	Configuration *Configuration
}

func (m *DeviceMountAction) SearchType() string {
	return "device_mount_action"
}

func (m *DeviceMountAction) SearchID() string {
	return strconv.FormatInt(m.ID, 10)
}

func (m *DeviceMountAction) ParentSearchEntities() []search.Entity {
	if m.Configuration == nil {
		return nil
	}
	return []search.Entity{m.Configuration}
}

func (m *DeviceMountAction) searchEntry() search.Document {
	doc := search.Document{
		"label":             m.Label,
		"begin_description": m.BeginDescription,
		"end_description":   m.EndDescription,
	}
	if m.Device != nil {
		doc["device_short_name"] = m.Device.ShortName
	}
	return doc
}

// PlatformMountAction records a platform being mounted on a configuration.
type PlatformMountAction struct {
	ID               int64
	Label            string
	BeginDescription string
	EndDescription   string
	BeginDate        time.Time
	EndDate          *time.Time
	OffsetX          float64
	OffsetY          float64
	OffsetZ          float64

	Platform      *Platform
	Configuration *Configuration
}

func (m *PlatformMountAction) SearchType() string {
	return "platform_mount_action"
}

func (m *PlatformMountAction) SearchID() string {
	return strconv.FormatInt(m.ID, 10)
}

func (m *PlatformMountAction) ParentSearchEntities() []search.Entity {
	if m.Configuration == nil {
		return nil
	}
	return []search.Entity{m.Configuration}
}

func (m *PlatformMountAction) searchEntry() search.Document {
	doc := search.Document{
		"label":             m.Label,
		"begin_description": m.BeginDescription,
		"end_description":   m.EndDescription,
	}
	if m.Platform != nil {
		doc["platform_short_name"] = m.Platform.ShortName
	}
	return doc
}

func mountFields() []search.Field {
	return []search.Field{
		{Name: "label", Type: search.FieldText},
		{Name: "begin_description", Type: search.FieldText},
		{Name: "end_description", Type: search.FieldText},
		{Name: "device_short_name", Type: search.FieldText},
		{Name: "platform_short_name", Type: search.FieldText},
	}
}

// DeviceCalibrationAction records a calibration of a device.
type DeviceCalibrationAction struct {
	ID                     int64
	Description            string
	Formula                string
	Value                  float64
	CurrentCalibrationDate time.Time
	NextCalibrationDate    *time.Time

	Device *Device
}

func (a *DeviceCalibrationAction) SearchType() string {
	return "device_calibration_action"
}

func (a *DeviceCalibrationAction) SearchID() string {
	return strconv.FormatInt(a.ID, 10)
}

func (a *DeviceCalibrationAction) ParentSearchEntities() []search.Entity {
	if a.Device == nil {
		return nil
	}
	return []search.Entity{a.Device}
}

func (a *DeviceCalibrationAction) searchEntry() search.Document {
	return search.Document{
		"description": a.Description,
		"formula":     a.Formula,
	}
}

func calibrationFields() []search.Field {
	return []search.Field{
		{Name: "description", Type: search.FieldText},
		{Name: "formula", Type: search.FieldText},
	}
}
