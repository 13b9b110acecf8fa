package session

import (
	"context"
	"errors"
	"testing"

	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sensorhub/sensor-management-system/pkg/search"
)

type device struct {
	id  string
	doc search.Document
}

func (d *device) SearchType() string           { return "device" }
func (d *device) SearchID() string             { return d.id }
func (d *device) SearchEntry() search.Document { return d.doc }

type recordingStore struct {
	writes  []string
	removes []string
}

func (s *recordingStore) AddOrUpdate(_ context.Context, typeName string, id string, _ search.Document) error {
	s.writes = append(s.writes, typeName+"/"+id)
	return nil
}

func (s *recordingStore) Remove(_ context.Context, typeName string, id string) error {
	s.removes = append(s.removes, typeName+"/"+id)
	return nil
}

func newTestFactory(t *testing.T) (*Factory, pgxmock.PgxPoolIface, *recordingStore) {
	t.Helper()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)

	registry := search.NewRegistry()
	require.NoError(t, registry.Register(&device{}, &search.IndexDefinition{}))

	store := &recordingStore{}
	return NewFactory(mock, search.NewSynchronizer(registry, store)), mock, store
}

func TestCommitFlushesAfterSuccessfulCommit(t *testing.T) {
	factory, mock, store := newTestFactory(t)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectCommit()

	sess, err := factory.Begin(ctx)
	require.NoError(t, err)

	sess.MarkCreated(&device{id: "1", doc: search.Document{"short_name": "SMT100"}})
	require.NoError(t, sess.Commit(ctx))

	assert.Equal(t, []string{"device/1"}, store.writes)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFailedCommitTouchesNoIndex(t *testing.T) {
	factory, mock, store := newTestFactory(t)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectCommit().WillReturnError(errors.New("constraint violation"))

	sess, err := factory.Begin(ctx)
	require.NoError(t, err)

	sess.MarkCreated(&device{id: "1"})
	require.Error(t, sess.Commit(ctx))

	assert.Empty(t, store.writes)
	assert.Empty(t, store.removes)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRollbackDiscardsChanges(t *testing.T) {
	factory, mock, store := newTestFactory(t)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectRollback()

	sess, err := factory.Begin(ctx)
	require.NoError(t, err)

	sess.MarkCreated(&device{id: "1"})
	require.NoError(t, sess.Rollback(ctx))

	assert.Empty(t, store.writes)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRollbackAfterCommitIsNoop(t *testing.T) {
	factory, mock, _ := newTestFactory(t)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectCommit()

	sess, err := factory.Begin(ctx)
	require.NoError(t, err)
	require.NoError(t, sess.Commit(ctx))
	assert.NoError(t, sess.Rollback(ctx))

	assert.ErrorIs(t, sess.Commit(ctx), ErrClosed)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestChangeTrackingKeepsSetsDisjoint(t *testing.T) {
	factory, mock, _ := newTestFactory(t)
	ctx := context.Background()

	mock.ExpectBegin()
	sess, err := factory.Begin(ctx)
	require.NoError(t, err)

	created := &device{id: "1"}
	sess.MarkCreated(created)
	sess.MarkUpdated(created)
	changes := sess.changeSet()
	assert.Len(t, changes.Created, 1)
	assert.Empty(t, changes.Updated)

	// created then deleted never reaches the index
	sess.MarkDeleted(created)
	changes = sess.changeSet()
	assert.True(t, changes.Empty())

	updated := &device{id: "2"}
	sess.MarkUpdated(updated)
	sess.MarkDeleted(updated)
	changes = sess.changeSet()
	assert.Empty(t, changes.Updated)
	assert.Len(t, changes.Deleted, 1)
}

func TestNilSynchronizerSkipsIndexMaintenance(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectBegin()
	mock.ExpectCommit()

	factory := NewFactory(mock, nil)
	ctx := context.Background()

	sess, err := factory.Begin(ctx)
	require.NoError(t, err)
	sess.MarkCreated(&device{id: "1"})
	assert.NoError(t, sess.Commit(ctx))
	assert.NoError(t, mock.ExpectationsWereMet())
}
