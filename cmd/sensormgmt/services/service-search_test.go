// Copyright 2023 UMH Systems GmbH
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package services

import (
	"context"
	"testing"

	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sensorhub/sensor-management-system/cmd/sensormgmt/models"
	"github.com/sensorhub/sensor-management-system/pkg/search"
)

func TestSearchEntitiesUnknownType(t *testing.T) {
	setupServices(t)

	_, err := SearchEntities(context.Background(), "widget", models.SearchQuery{})
	assert.ErrorIs(t, err, search.ErrUnknownIndex)
}

func TestSearchEntitiesFetchesRowsInIndexOrder(t *testing.T) {
	mock := setupServices(t)
	ctx := context.Background()

	require.NoError(t, store.AddOrUpdate(ctx, "device", "1", map[string]interface{}{"short_name": "SMT100"}))
	require.NoError(t, store.AddOrUpdate(ctx, "device", "2", map[string]interface{}{"short_name": "thermometer"}))

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM device WHERE id IN \(1\) ORDER BY CASE id WHEN 1 THEN 0 END`).
		WillReturnRows(pgxmock.NewRows([]string{"id", "short_name"}).AddRow(int64(1), "SMT100"))
	mock.ExpectRollback()

	response, err := SearchEntities(ctx, "device", models.SearchQuery{
		Search:     "SMT100",
		PageNumber: 1,
		PageSize:   10,
	})
	require.NoError(t, err)
	assert.Equal(t, uint64(1), response.Total)
	require.Len(t, response.Hits, 1)

	hit, ok := response.Hits[0].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "SMT100", hit["short_name"])

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSearchEntitiesServesSecondCallFromCache(t *testing.T) {
	mock := setupServices(t)
	ctx := context.Background()

	require.NoError(t, store.AddOrUpdate(ctx, "device", "1", map[string]interface{}{"short_name": "SMT100"}))

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM device WHERE id IN \(1\)`).
		WillReturnRows(pgxmock.NewRows([]string{"id", "short_name"}).AddRow(int64(1), "SMT100"))
	mock.ExpectRollback()

	query := models.SearchQuery{Search: "SMT100", PageNumber: 1, PageSize: 10}

	first, err := SearchEntities(ctx, "device", query)
	require.NoError(t, err)

	// No further expectations: the second call must be served from the cache.
	second, err := SearchEntities(ctx, "device", query)
	require.NoError(t, err)
	assert.Equal(t, first.Total, second.Total)
	assert.Len(t, second.Hits, len(first.Hits))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSearchEntitiesEmptyResult(t *testing.T) {
	mock := setupServices(t)

	response, err := SearchEntities(context.Background(), "device", models.SearchQuery{
		Search:     "nothing-indexed",
		PageNumber: 1,
		PageSize:   10,
	})
	require.NoError(t, err)
	assert.Equal(t, uint64(0), response.Total)
	assert.Empty(t, response.Hits)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReindexRebuildsFromDatabase(t *testing.T) {
	mock := setupServices(t)
	ctx := context.Background()

	// A stale document that no longer exists in the database.
	require.NoError(t, store.AddOrUpdate(ctx, "contact", "99", map[string]interface{}{"family_name": "stale"}))

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT id FROM contact ORDER BY id`).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(1)))
	mock.ExpectQuery(`SELECT id, given_name, family_name`).
		WithArgs(int64(1)).
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "given_name", "family_name", "email", "website", "organization", "orcid", "active",
		}).AddRow(int64(1), "Erika", "Mustermann", "erika@example.org", "", "UFZ", "", true))
	mock.ExpectRollback()

	indexed, err := Reindex(ctx, "contact")
	require.NoError(t, err)
	assert.Equal(t, 1, indexed)

	count, err := store.DocCount("contact")
	require.NoError(t, err)
	assert.Equal(t, uint64(1), count)

	ids, _, err := store.Query(ctx, "contact", "Mustermann", 1, 10, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"1"}, ids)

	assert.NoError(t, mock.ExpectationsWereMet())
}
