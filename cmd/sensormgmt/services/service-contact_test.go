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
	"time"

	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sensorhub/sensor-management-system/cmd/sensormgmt/models"
)

func strPtr(s string) *string {
	return &s
}

// expectDeviceRowWithContact stages the loadDevice queries for a device that
// has one contact role attached.
func expectDeviceRowWithContact(
	mock pgxmock.PgxPoolIface,
	deviceID int64,
	shortName string,
	roleID int64,
	contactID int64,
	givenName string,
	familyName string,
	email string,
) {
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
		}).AddRow(roleID, "Principal Investigator", "", contactID, givenName, familyName, email, "", "", "", true))
	mock.ExpectQuery(`FROM device_calibration_action`).
		WithArgs(deviceID).
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "description", "formula", "value", "current_calibration_date", "next_calibration_date",
		}))
}

func TestUpdateContactRefreshesOwnerDocuments(t *testing.T) {
	mock := setupServices(t)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT id, given_name, family_name`).
		WithArgs(int64(7)).
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "given_name", "family_name", "email", "website", "organization", "orcid", "active",
		}).AddRow(int64(7), "Erika", "Mustermann", "e.m@example.org", "", "", "", true))
	devID := int64(1)
	mock.ExpectQuery(`device_id, platform_id, configuration_id, site_id`).
		WithArgs(int64(7)).
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "role_name", "role_uri", "device_id", "platform_id", "configuration_id", "site_id",
		}).AddRow(int64(5), "Principal Investigator", "", &devID, nil, nil, nil))
	expectDeviceRowWithContact(mock, 1, "SMT100", 5, 7, "Erika", "Mustermann", "e.m@example.org")
	mock.ExpectExec(`UPDATE contact SET given_name`).
		WithArgs(int64(7), "Roberta", "Mustermann", "e.m@example.org", "", "", "", true).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectCommit()

	err := UpdateContact(ctx, 7, models.UpdateContactRequest{GivenName: strPtr("Roberta")})
	require.NoError(t, err)

	// The device document embeds the contact and must carry the new name.
	ids, total, err := store.Query(ctx, "device", "Roberta", 1, 10, nil)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), total)
	assert.Equal(t, []string{"1"}, ids)

	_, total, err = store.Query(ctx, "device", "Erika", 1, 10, nil)
	require.NoError(t, err)
	assert.Zero(t, total)

	_, total, err = store.Query(ctx, "contact", "Roberta", 1, 10, nil)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), total)

	assert.NoError(t, mock.ExpectationsWereMet())
}
