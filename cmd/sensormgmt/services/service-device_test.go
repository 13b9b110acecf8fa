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
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sensorhub/sensor-management-system/cmd/sensormgmt/models"
)

func expectDeviceRow(mock pgxmock.PgxPoolIface, deviceID int64, shortName string) {
	now := time.Now()
	mock.ExpectQuery(`SELECT id, short_name, long_name`).
		WithArgs(deviceID).
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "short_name", "long_name", "serial_number", "manufacturer_name", "model",
			"description", "device_type_name", "status_name", "website", "inventory_number",
			"persistent_id", "archived", "created_at", "updated_at",
		}).AddRow(deviceID, shortName, "", "", "", "", "", "", "", "", "", "", false, now, now))

	mock.ExpectQuery(`SELECT id, label, url, description, is_internal`).
		WithArgs(deviceID).
		WillReturnRows(pgxmock.NewRows([]string{"id", "label", "url", "description", "is_internal"}))
	mock.ExpectQuery(`SELECT id, label, property_name`).
		WithArgs(deviceID).
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "label", "property_name", "property_uri", "unit_name", "unit_uri",
			"compartment_name", "sampling_media_name", "resolution", "resolution_unit", "accuracy_unit",
		}))
	mock.ExpectQuery(`SELECT id, label, description, unit_name, unit_uri`).
		WithArgs(deviceID).
		WillReturnRows(pgxmock.NewRows([]string{"id", "label", "description", "unit_name", "unit_uri"}))
	mock.ExpectQuery(`SELECT id, key, value FROM customfield`).
		WithArgs(deviceID).
		WillReturnRows(pgxmock.NewRows([]string{"id", "key", "value"}))
	mock.ExpectQuery(`FROM contact_role r JOIN contact c`).
		WithArgs(deviceID).
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "role_name", "role_uri", "contact_id", "given_name", "family_name",
			"email", "website", "organization", "orcid", "active",
		}))
	mock.ExpectQuery(`FROM device_calibration_action`).
		WithArgs(deviceID).
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "description", "formula", "value", "current_calibration_date", "next_calibration_date",
		}))
}

func TestCreateDeviceIndexesAfterCommit(t *testing.T) {
	mock := setupServices(t)
	ctx := context.Background()

	now := time.Now()
	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO device`).
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at", "updated_at"}).
			AddRow(int64(1), now, now))
	mock.ExpectCommit()

	deviceID, err := CreateDevice(ctx, models.CreateDeviceRequest{ShortName: "SMT100"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), deviceID)

	count, err := store.DocCount("device")
	require.NoError(t, err)
	assert.Equal(t, uint64(1), count)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateDeviceFailedCommitLeavesIndexEmpty(t *testing.T) {
	mock := setupServices(t)
	ctx := context.Background()

	now := time.Now()
	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO device`).
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at", "updated_at"}).
			AddRow(int64(1), now, now))
	mock.ExpectCommit().WillReturnError(errors.New("serialization failure"))

	_, err := CreateDevice(ctx, models.CreateDeviceRequest{ShortName: "SMT100"})
	require.Error(t, err)

	count, err := store.DocCount("device")
	require.NoError(t, err)
	assert.Equal(t, uint64(0), count)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetDeviceNotFound(t *testing.T) {
	mock := setupServices(t)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT id, short_name, long_name`).
		WithArgs(int64(404)).
		WillReturnError(pgx.ErrNoRows)
	mock.ExpectRollback()

	_, err := GetDevice(ctx, 404)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetDeviceServesSecondReadFromCache(t *testing.T) {
	mock := setupServices(t)
	ctx := context.Background()

	mock.ExpectBegin()
	expectDeviceRow(mock, 42, "SMT100")
	mock.ExpectRollback()

	first, err := GetDevice(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, "SMT100", first.ShortName)

	// No further expectations: the second read must not touch the database.
	second, err := GetDevice(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteDeviceRemovesIndexDocument(t *testing.T) {
	mock := setupServices(t)
	ctx := context.Background()

	require.NoError(t, store.AddOrUpdate(ctx, "device", "42", map[string]interface{}{"short_name": "SMT100"}))

	mock.ExpectBegin()
	expectDeviceRow(mock, 42, "SMT100")
	mock.ExpectExec(`DELETE FROM device`).
		WithArgs(int64(42)).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mock.ExpectCommit()

	require.NoError(t, DeleteDevice(ctx, 42))

	count, err := store.DocCount("device")
	require.NoError(t, err)
	assert.Equal(t, uint64(0), count)

	assert.NoError(t, mock.ExpectationsWereMet())
}
