package search

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type writeCall struct {
	typeName string
	id       string
	doc      Document
}

type removeCall struct {
	typeName string
	id       string
}

// fakeWriter records every index store call and can be told to fail.
type fakeWriter struct {
	writes   []writeCall
	removes  []removeCall
	failAdds map[string]error
}

func (w *fakeWriter) AddOrUpdate(_ context.Context, typeName string, id string, doc Document) error {
	if err, ok := w.failAdds[typeName+"/"+id]; ok {
		return err
	}
	w.writes = append(w.writes, writeCall{typeName: typeName, id: id, doc: doc})
	return nil
}

func (w *fakeWriter) Remove(_ context.Context, typeName string, id string) error {
	w.removes = append(w.removes, removeCall{typeName: typeName, id: id})
	return nil
}

func (w *fakeWriter) calls() int {
	return len(w.writes) + len(w.removes)
}

func TestCommitFlowCreateDevice(t *testing.T) {
	registry := testRegistry(t)
	writer := &fakeWriter{}
	synchronizer := NewSynchronizer(registry, writer)

	device := &directEntity{typ: "device", id: "1", doc: Document{"short_name": "SMT100"}}

	cc, err := synchronizer.BeforeCommit(ChangeSet{Created: []Entity{device}})
	require.NoError(t, err)
	assert.Zero(t, writer.calls(), "pre-commit must not touch the index")

	synchronizer.AfterCommit(context.Background(), cc)
	require.Len(t, writer.writes, 1)
	assert.Equal(t, "device", writer.writes[0].typeName)
	assert.Equal(t, "1", writer.writes[0].id)
	assert.Equal(t, "SMT100", writer.writes[0].doc["short_name"])
	assert.Empty(t, writer.removes)
}

func TestCommitFlowChildUpdateRefreshesParent(t *testing.T) {
	registry := testRegistry(t)
	writer := &fakeWriter{}
	synchronizer := NewSynchronizer(registry, writer)

	device := &directEntity{typ: "device", id: "1", doc: Document{"attachments": []Document{{"label": "manual.pdf"}}}}
	attachment := &indirectEntity{typ: "attachment", id: "7", parents: []Entity{device}}

	cc, err := synchronizer.BeforeCommit(ChangeSet{Created: []Entity{attachment}})
	require.NoError(t, err)
	synchronizer.AfterCommit(context.Background(), cc)

	// the device document is refreshed, no attachment document exists
	require.Len(t, writer.writes, 1)
	assert.Equal(t, "device", writer.writes[0].typeName)
	assert.Empty(t, writer.removes)
}

func TestCommitFlowContactUpdateFansOutOnce(t *testing.T) {
	// A contact linked to a device and a platform refreshes its own document
	// and both owners' documents, each written exactly once.
	registry := testRegistry(t)
	writer := &fakeWriter{}
	synchronizer := NewSynchronizer(registry, writer)

	device := &directEntity{typ: "device", id: "1"}
	platform := &directEntity{typ: "platform", id: "2"}
	contact := &dualEntity{typ: "contact", id: "3", parents: []Entity{device, platform}}

	cc, err := synchronizer.BeforeCommit(ChangeSet{Updated: []Entity{contact}})
	require.NoError(t, err)
	synchronizer.AfterCommit(context.Background(), cc)

	require.Len(t, writer.writes, 3)
	seen := map[string]int{}
	for _, write := range writer.writes {
		seen[write.typeName+"/"+write.id]++
	}
	assert.Equal(t, map[string]int{"contact/3": 1, "device/1": 1, "platform/2": 1}, seen)
}

func TestCommitFlowDeduplicatesPropagationPaths(t *testing.T) {
	registry := testRegistry(t)
	writer := &fakeWriter{}
	synchronizer := NewSynchronizer(registry, writer)

	device := &directEntity{typ: "device", id: "1"}
	first := &indirectEntity{typ: "attachment", id: "10", parents: []Entity{device}}
	second := &indirectEntity{typ: "attachment", id: "11", parents: []Entity{device}}

	cc, err := synchronizer.BeforeCommit(ChangeSet{Updated: []Entity{first, second}})
	require.NoError(t, err)
	synchronizer.AfterCommit(context.Background(), cc)

	require.Len(t, writer.writes, 1, "each (type, id) pair is written at most once per commit")
}

func TestCommitFlowDeleteDirectEntity(t *testing.T) {
	registry := testRegistry(t)
	writer := &fakeWriter{}
	synchronizer := NewSynchronizer(registry, writer)

	device := &directEntity{typ: "device", id: "1"}

	cc, err := synchronizer.BeforeCommit(ChangeSet{Deleted: []Entity{device}})
	require.NoError(t, err)
	synchronizer.AfterCommit(context.Background(), cc)

	assert.Empty(t, writer.writes)
	assert.Equal(t, []removeCall{{typeName: "device", id: "1"}}, writer.removes)
}

func TestCommitFlowDeleteIndirectChildRefreshesParent(t *testing.T) {
	registry := testRegistry(t)
	writer := &fakeWriter{}
	synchronizer := NewSynchronizer(registry, writer)

	device := &directEntity{typ: "device", id: "1", doc: Document{"attachments": []Document{}}}
	attachment := &indirectEntity{typ: "attachment", id: "7", parents: []Entity{device}}

	cc, err := synchronizer.BeforeCommit(ChangeSet{Deleted: []Entity{attachment}})
	require.NoError(t, err)
	synchronizer.AfterCommit(context.Background(), cc)

	// parent refreshed, no remove call for a type without its own index
	require.Len(t, writer.writes, 1)
	assert.Equal(t, "device", writer.writes[0].typeName)
	assert.Empty(t, writer.removes)
}

func TestCommitFlowDeleteDualCapabilityEntity(t *testing.T) {
	// Deleting a contact removes its own document and refreshes its owners,
	// which no longer embed it.
	registry := testRegistry(t)
	writer := &fakeWriter{}
	synchronizer := NewSynchronizer(registry, writer)

	device := &directEntity{typ: "device", id: "1", doc: Document{"contacts": []Document{}}}
	contact := &dualEntity{typ: "contact", id: "3", parents: []Entity{device}}

	cc, err := synchronizer.BeforeCommit(ChangeSet{Deleted: []Entity{contact}})
	require.NoError(t, err)
	synchronizer.AfterCommit(context.Background(), cc)

	require.Len(t, writer.writes, 1)
	assert.Equal(t, "device", writer.writes[0].typeName)
	assert.Equal(t, []removeCall{{typeName: "contact", id: "3"}}, writer.removes)
}

func TestCommitFlowDeletionWinsOverStagedWrite(t *testing.T) {
	registry := testRegistry(t)
	writer := &fakeWriter{}
	synchronizer := NewSynchronizer(registry, writer)

	device := &directEntity{typ: "device", id: "1"}

	cc, err := synchronizer.BeforeCommit(ChangeSet{
		Updated: []Entity{device},
		Deleted: []Entity{&directEntity{typ: "device", id: "1"}},
	})
	require.NoError(t, err)
	synchronizer.AfterCommit(context.Background(), cc)

	assert.Empty(t, writer.writes)
	assert.Equal(t, []removeCall{{typeName: "device", id: "1"}}, writer.removes)
}

func TestCommitFlowCycleAbortsBeforeCommit(t *testing.T) {
	registry := testRegistry(t)
	writer := &fakeWriter{}
	synchronizer := NewSynchronizer(registry, writer)

	first := &indirectEntity{typ: "attachment", id: "1"}
	second := &indirectEntity{typ: "attachment", id: "2", parents: []Entity{first}}
	first.parents = []Entity{second}

	_, err := synchronizer.BeforeCommit(ChangeSet{Updated: []Entity{first}})
	var cycleErr *CyclicParentGraphError
	require.ErrorAs(t, err, &cycleErr)
	assert.Zero(t, writer.calls())
}

func TestAfterCommitContinuesPastWriteFailures(t *testing.T) {
	registry := testRegistry(t)
	writer := &fakeWriter{failAdds: map[string]error{"device/1": errors.New("index unavailable")}}
	synchronizer := NewSynchronizer(registry, writer)

	failing := &directEntity{typ: "device", id: "1"}
	healthy := &directEntity{typ: "device", id: "2"}

	cc, err := synchronizer.BeforeCommit(ChangeSet{Updated: []Entity{failing, healthy}})
	require.NoError(t, err)

	// a failing write is reported, not fatal — the remaining writes go through
	synchronizer.AfterCommit(context.Background(), cc)
	require.Len(t, writer.writes, 1)
	assert.Equal(t, "2", writer.writes[0].id)
}

func TestAfterCommitWithNilContextIsNoop(t *testing.T) {
	registry := testRegistry(t)
	writer := &fakeWriter{}
	synchronizer := NewSynchronizer(registry, writer)

	synchronizer.AfterCommit(context.Background(), nil)
	assert.Zero(t, writer.calls())
}

func TestAfterCommitConsumesTheContext(t *testing.T) {
	registry := testRegistry(t)
	writer := &fakeWriter{}
	synchronizer := NewSynchronizer(registry, writer)

	device := &directEntity{typ: "device", id: "1"}
	cc, err := synchronizer.BeforeCommit(ChangeSet{Created: []Entity{device}})
	require.NoError(t, err)

	synchronizer.AfterCommit(context.Background(), cc)
	require.Len(t, writer.writes, 1)

	// a second apply of the same context must not write again
	synchronizer.AfterCommit(context.Background(), cc)
	assert.Len(t, writer.writes, 1)
	assert.True(t, cc.Empty())
}
