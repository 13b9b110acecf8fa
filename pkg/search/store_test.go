package search

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testStore(t *testing.T) (*Store, *Registry) {
	t.Helper()
	registry := NewRegistry()
	definition := &IndexDefinition{Fields: []Field{
		{Name: "short_name", Type: FieldText},
		{Name: "description", Type: FieldText},
		{Name: "status", Type: FieldKeyword},
		{Name: "attachments", Type: FieldNested, Fields: []Field{
			{Name: "label", Type: FieldText},
		}},
	}}
	require.NoError(t, registry.Register(&directEntity{typ: "device"}, definition))

	store := NewStore("")
	require.NoError(t, store.Open(registry))
	t.Cleanup(func() {
		assert.NoError(t, store.Close())
	})
	return store, registry
}

func TestStoreAddAndQuery(t *testing.T) {
	store, _ := testStore(t)
	ctx := context.Background()

	err := store.AddOrUpdate(ctx, "device", "1", Document{"short_name": "SMT100", "status": "in use"})
	require.NoError(t, err)

	ids, total, err := store.Query(ctx, "device", "SMT100", 1, 10, nil)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), total)
	assert.Equal(t, []string{"1"}, ids)
}

func TestStoreSubstringQuery(t *testing.T) {
	store, _ := testStore(t)
	ctx := context.Background()

	require.NoError(t, store.AddOrUpdate(ctx, "device", "1", Document{"short_name": "SMT100"}))
	require.NoError(t, store.AddOrUpdate(ctx, "device", "2", Document{"short_name": "thermometer"}))

	// trigram of "SMT100"
	ids, total, err := store.Query(ctx, "device", "MT1", 1, 10, nil)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), total)
	assert.Equal(t, []string{"1"}, ids)
}

func TestStoreQueryFindsNestedContent(t *testing.T) {
	store, _ := testStore(t)
	ctx := context.Background()

	doc := Document{
		"short_name":  "SMT100",
		"attachments": []Document{{"label": "manual.pdf"}},
	}
	require.NoError(t, store.AddOrUpdate(ctx, "device", "1", doc))

	ids, total, err := store.Query(ctx, "device", "manual", 1, 10, nil)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), total)
	assert.Equal(t, []string{"1"}, ids)
}

func TestStoreQueryScopedToTextFields(t *testing.T) {
	store, _ := testStore(t)
	ctx := context.Background()

	err := store.AddOrUpdate(ctx, "device", "1", Document{"short_name": "SMT100", "status": "old"})
	require.NoError(t, err)

	// The keyword vocabulary must not satisfy free-text queries.
	_, total, err := store.Query(ctx, "device", "old", 1, 10, nil)
	require.NoError(t, err)
	assert.Zero(t, total)

	ids, total, err := store.Query(ctx, "device", "SMT", 1, 10, nil)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), total)
	assert.Equal(t, []string{"1"}, ids)
}

func TestStoreUpsertIsIdempotent(t *testing.T) {
	store, _ := testStore(t)
	ctx := context.Background()

	require.NoError(t, store.AddOrUpdate(ctx, "device", "1", Document{"short_name": "SMT100"}))
	require.NoError(t, store.AddOrUpdate(ctx, "device", "1", Document{"short_name": "SMT100v2"}))

	count, err := store.DocCount("device")
	require.NoError(t, err)
	assert.Equal(t, uint64(1), count)

	_, total, err := store.Query(ctx, "device", "SMT100v2", 1, 10, nil)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), total)
}

func TestStoreRemoveAbsentIDIsNoError(t *testing.T) {
	store, _ := testStore(t)
	assert.NoError(t, store.Remove(context.Background(), "device", "999"))
}

func TestStoreRemove(t *testing.T) {
	store, _ := testStore(t)
	ctx := context.Background()

	require.NoError(t, store.AddOrUpdate(ctx, "device", "1", Document{"short_name": "SMT100"}))
	require.NoError(t, store.Remove(ctx, "device", "1"))

	_, total, err := store.Query(ctx, "device", "SMT100", 1, 10, nil)
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestStoreQueryPagination(t *testing.T) {
	store, _ := testStore(t)
	ctx := context.Background()

	docs := map[string]string{"1": "alpha", "2": "beta", "3": "gamma", "4": "delta", "5": "epsilon"}
	for id, name := range docs {
		require.NoError(t, store.AddOrUpdate(ctx, "device", id, Document{"short_name": name}))
	}

	first, total, err := store.Query(ctx, "device", "", 1, 2, []string{"_id"})
	require.NoError(t, err)
	assert.Equal(t, uint64(5), total)
	assert.Equal(t, []string{"1", "2"}, first)

	second, total, err := store.Query(ctx, "device", "", 2, 2, []string{"_id"})
	require.NoError(t, err)
	assert.Equal(t, uint64(5), total)
	assert.Equal(t, []string{"3", "4"}, second)
}

func TestStoreQueryUnknownIndex(t *testing.T) {
	store, _ := testStore(t)
	_, _, err := store.Query(context.Background(), "rocket", "x", 1, 10, nil)
	assert.ErrorIs(t, err, ErrUnknownIndex)
}

func TestStoreRecreateIndexDropsDocuments(t *testing.T) {
	store, registry := testStore(t)
	ctx := context.Background()

	require.NoError(t, store.AddOrUpdate(ctx, "device", "1", Document{"short_name": "SMT100"}))

	definition, ok := registry.Definition("device")
	require.True(t, ok)
	require.NoError(t, store.RecreateIndex("device", definition))

	count, err := store.DocCount("device")
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestStoreRecreateIndexRejectsBadDefinition(t *testing.T) {
	store, _ := testStore(t)
	err := store.RecreateIndex("device", IndexDefinition{MinGram: 1, MaxGram: 10, MaxNgramDiff: 1})
	assert.ErrorIs(t, err, ErrInvalidIndexDefinition)
}
