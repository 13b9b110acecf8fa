package datamodel

import (
	"strconv"

	"github.com/sensorhub/sensor-management-system/pkg/search"
)

// ContactRole links a contact to a device, platform, configuration or site
// with a named role (owner, PI, technician). Exactly one owner is set. The
// role is indirectly searchable: its content surfaces as the "contacts"
// entries of the owner's document.
type ContactRole struct {
	ID       int64
	RoleName string
	RoleURI  string

	Contact *Contact

	Device        *Device
	Platform      *Platform
	Configuration *Configuration
	Site          *Site
}

func (r *ContactRole) SearchType() string {
	return "contact_role"
}

func (r *ContactRole) SearchID() string {
	return strconv.FormatInt(r.ID, 10)
}

// Owner returns the entity the role is attached to.
func (r *ContactRole) Owner() search.Entity {
	switch {
	case r.Device != nil:
		return r.Device
	case r.Platform != nil:
		return r.Platform
	case r.Configuration != nil:
		return r.Configuration
	case r.Site != nil:
		return r.Site
	default:
		return nil
	}
}

func (r *ContactRole) ParentSearchEntities() []search.Entity {
	if owner := r.Owner(); owner != nil {
		return []search.Entity{owner}
	}
	return nil
}

// contactDocuments renders the embedded contact entries of one owner.
func contactDocuments(roles []*ContactRole) []search.Document {
	contacts := make([]search.Document, 0, len(roles))
	for _, role := range roles {
		if role.Contact == nil {
			continue
		}
		contacts = append(contacts, role.Contact.embeddedDocument(role.RoleName))
	}
	return contacts
}
