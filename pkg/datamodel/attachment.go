package datamodel

import (
	"strconv"

	"github.com/sensorhub/sensor-management-system/pkg/search"
)

// Attachment holds the shared fields of all attachment kinds. Attachments
// are indirectly searchable only: their content appears in the owning
// entity's document, never in an index of their own.
type Attachment struct {
	ID          int64
	Label       string
	URL         string
	Description string
	IsInternal  bool
}

func (a *Attachment) searchEntry() search.Document {
	return search.Document{
		"label":       a.Label,
		"url":         a.URL,
		"description": a.Description,
	}
}

func attachmentFields() []search.Field {
	return []search.Field{
		{Name: "label", Type: search.FieldText},
		{Name: "url", Type: search.FieldText},
		{Name: "description", Type: search.FieldText},
	}
}

type DeviceAttachment struct {
	Attachment
	Device *Device
}

func (a *DeviceAttachment) SearchType() string {
	return "device_attachment"
}

func (a *DeviceAttachment) SearchID() string {
	return strconv.FormatInt(a.ID, 10)
}

func (a *DeviceAttachment) ParentSearchEntities() []search.Entity {
	if a.Device == nil {
		return nil
	}
	return []search.Entity{a.Device}
}

type PlatformAttachment struct {
	Attachment
	Platform *Platform
}

func (a *PlatformAttachment) SearchType() string {
	return "platform_attachment"
}

func (a *PlatformAttachment) SearchID() string {
	return strconv.FormatInt(a.ID, 10)
}

func (a *PlatformAttachment) ParentSearchEntities() []search.Entity {
	if a.Platform == nil {
		return nil
	}
	return []search.Entity{a.Platform}
}

type ConfigurationAttachment struct {
	Attachment
	Configuration *Configuration
}

func (a *ConfigurationAttachment) SearchType() string {
	return "configuration_attachment"
}

func (a *ConfigurationAttachment) SearchID() string {
	return strconv.FormatInt(a.ID, 10)
}

func (a *ConfigurationAttachment) ParentSearchEntities() []search.Entity {
	if a.Configuration == nil {
		return nil
	}
	return []search.Entity{a.Configuration}
}

type SiteAttachment struct {
	Attachment
	Site *Site
}

func (a *SiteAttachment) SearchType() string {
	return "site_attachment"
}

func (a *SiteAttachment) SearchID() string {
	return strconv.FormatInt(a.ID, 10)
}

func (a *SiteAttachment) ParentSearchEntities() []search.Entity {
	if a.Site == nil {
		return nil
	}
	return []search.Entity{a.Site}
}
