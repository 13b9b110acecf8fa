package datamodel

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sensorhub/sensor-management-system/pkg/search"
)

func newSearchFixture(t *testing.T) (*search.Registry, *search.Store, *search.Synchronizer) {
	t.Helper()

	registry := search.NewRegistry()
	require.NoError(t, RegisterSearchTypes(registry))

	store := search.NewStore("")
	require.NoError(t, store.Open(registry))
	t.Cleanup(func() {
		assert.NoError(t, store.Close())
	})

	return registry, store, search.NewSynchronizer(registry, store)
}

func commit(t *testing.T, synchronizer *search.Synchronizer, changes search.ChangeSet) {
	t.Helper()
	cc, err := synchronizer.BeforeCommit(changes)
	require.NoError(t, err)
	synchronizer.AfterCommit(context.Background(), cc)
}

func TestCreateDeviceIsSearchable(t *testing.T) {
	_, store, synchronizer := newSearchFixture(t)

	device := &Device{ID: 1, ShortName: "SMT100", UpdatedAt: time.Now()}
	commit(t, synchronizer, search.ChangeSet{Created: []search.Entity{device}})

	ids, total, err := store.Query(context.Background(), "device", "SMT100", 1, 10, nil)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), total)
	assert.Equal(t, []string{"1"}, ids)
}

func TestAttachmentContentReachesDeviceDocument(t *testing.T) {
	_, store, synchronizer := newSearchFixture(t)

	device := &Device{ID: 1, ShortName: "SMT100"}
	commit(t, synchronizer, search.ChangeSet{Created: []search.Entity{device}})

	attachment := &DeviceAttachment{
		Attachment: Attachment{ID: 7, Label: "manual.pdf", URL: "https://example.org/manual.pdf"},
		Device:     device,
	}
	device.Attachments = append(device.Attachments, attachment)
	commit(t, synchronizer, search.ChangeSet{Created: []search.Entity{attachment}})

	// the attachment surfaces in the device document, not in an index of its own
	ids, total, err := store.Query(context.Background(), "device", "manual", 1, 10, nil)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), total)
	assert.Equal(t, []string{"1"}, ids)

	_, _, err = store.Query(context.Background(), "device_attachment", "manual", 1, 10, nil)
	assert.ErrorIs(t, err, search.ErrUnknownIndex)
}

func TestDeletedAttachmentLeavesDeviceDocument(t *testing.T) {
	_, store, synchronizer := newSearchFixture(t)

	device := &Device{ID: 1, ShortName: "SMT100"}
	attachment := &DeviceAttachment{
		Attachment: Attachment{ID: 7, Label: "manual.pdf"},
		Device:     device,
	}
	device.Attachments = []*DeviceAttachment{attachment}
	commit(t, synchronizer, search.ChangeSet{Created: []search.Entity{device, attachment}})

	// the service detaches the child before committing the deletion
	device.Attachments = nil
	commit(t, synchronizer, search.ChangeSet{Deleted: []search.Entity{attachment}})

	_, total, err := store.Query(context.Background(), "device", "manual", 1, 10, nil)
	require.NoError(t, err)
	assert.Zero(t, total)

	_, total, err = store.Query(context.Background(), "device", "SMT100", 1, 10, nil)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), total, "the device itself stays searchable")
}

func TestContactUpdatePropagatesToAllOwners(t *testing.T) {
	_, store, synchronizer := newSearchFixture(t)

	device := &Device{ID: 1, ShortName: "SMT100"}
	platform := &Platform{ID: 2, ShortName: "Station Nord"}
	contact := &Contact{ID: 3, GivenName: "Ada", FamilyName: "Lovelace"}

	deviceRole := &ContactRole{ID: 10, RoleName: "owner", Contact: contact, Device: device}
	platformRole := &ContactRole{ID: 11, RoleName: "pi", Contact: contact, Platform: platform}
	device.ContactRoles = []*ContactRole{deviceRole}
	platform.ContactRoles = []*ContactRole{platformRole}
	contact.Roles = []*ContactRole{deviceRole, platformRole}

	commit(t, synchronizer, search.ChangeSet{Created: []search.Entity{device, platform, contact}})

	contact.GivenName = "Augusta"
	commit(t, synchronizer, search.ChangeSet{Updated: []search.Entity{contact}})

	ctx := context.Background()
	for _, typeName := range []string{"device", "platform", "contact"} {
		_, total, err := store.Query(ctx, typeName, "Augusta", 1, 10, nil)
		require.NoError(t, err)
		assert.Equal(t, uint64(1), total, "type %s should reflect the new given name", typeName)
	}
}

func TestDeleteDeviceRemovesItsDocument(t *testing.T) {
	_, store, synchronizer := newSearchFixture(t)

	device := &Device{ID: 1, ShortName: "SMT100"}
	commit(t, synchronizer, search.ChangeSet{Created: []search.Entity{device}})
	commit(t, synchronizer, search.ChangeSet{Deleted: []search.Entity{device}})

	_, total, err := store.Query(context.Background(), "device", "SMT100", 1, 10, nil)
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestSearchEntryIsIdempotent(t *testing.T) {
	device := &Device{
		ID:        1,
		ShortName: "SMT100",
		Attachments: []*DeviceAttachment{
			{Attachment: Attachment{ID: 7, Label: "manual.pdf"}},
		},
		ContactRoles: []*ContactRole{
			{ID: 10, RoleName: "owner", Contact: &Contact{ID: 3, GivenName: "Ada"}},
		},
		UpdatedAt: time.Date(2024, 5, 2, 12, 0, 0, 0, time.UTC),
	}

	assert.Equal(t, device.SearchEntry(), device.SearchEntry())
}

func TestRegisterSearchTypesDefinitionsAreValid(t *testing.T) {
	registry := search.NewRegistry()
	require.NoError(t, RegisterSearchTypes(registry))

	expected := []string{"configuration", "contact", "device", "platform", "site"}
	assert.Equal(t, expected, registry.DirectTypes())
}

func TestSiteGeometryRendersAsClosedPolygon(t *testing.T) {
	site := &Site{
		ID:    1,
		Label: "test field",
		Geometry: []Coordinate{
			{Longitude: 12.0, Latitude: 51.0},
			{Longitude: 12.1, Latitude: 51.0},
			{Longitude: 12.1, Latitude: 51.1},
		},
	}

	doc := site.SearchEntry()
	geometry, ok := doc["geometry"].(search.Document)
	require.True(t, ok)
	assert.Equal(t, "Polygon", geometry["type"])

	rings, ok := geometry["coordinates"].([][][]float64)
	require.True(t, ok)
	require.Len(t, rings, 1)
	assert.Len(t, rings[0], 4, "polygon ring must be closed")
	assert.Equal(t, rings[0][0], rings[0][3])
}

func TestSiteWithoutOutlineHasNoGeometry(t *testing.T) {
	site := &Site{ID: 1, Label: "point site", Geometry: []Coordinate{{Longitude: 12, Latitude: 51}}}
	_, ok := site.SearchEntry()["geometry"]
	assert.False(t, ok)
}
