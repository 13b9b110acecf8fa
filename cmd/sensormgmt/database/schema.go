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

package database

import (
	"context"

	"go.uber.org/zap"
)

var tableStatements = []string{
	`CREATE TABLE IF NOT EXISTS device (
		id BIGSERIAL PRIMARY KEY,
		short_name TEXT NOT NULL,
		long_name TEXT NOT NULL DEFAULT '',
		serial_number TEXT NOT NULL DEFAULT '',
		manufacturer_name TEXT NOT NULL DEFAULT '',
		model TEXT NOT NULL DEFAULT '',
		description TEXT NOT NULL DEFAULT '',
		device_type_name TEXT NOT NULL DEFAULT '',
		status_name TEXT NOT NULL DEFAULT '',
		website TEXT NOT NULL DEFAULT '',
		inventory_number TEXT NOT NULL DEFAULT '',
		persistent_id TEXT NOT NULL DEFAULT '',
		archived BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		UNIQUE (short_name, serial_number)
	)`,
	`CREATE TABLE IF NOT EXISTS platform (
		id BIGSERIAL PRIMARY KEY,
		short_name TEXT NOT NULL,
		long_name TEXT NOT NULL DEFAULT '',
		serial_number TEXT NOT NULL DEFAULT '',
		manufacturer_name TEXT NOT NULL DEFAULT '',
		model TEXT NOT NULL DEFAULT '',
		description TEXT NOT NULL DEFAULT '',
		platform_type_name TEXT NOT NULL DEFAULT '',
		status_name TEXT NOT NULL DEFAULT '',
		inventory_number TEXT NOT NULL DEFAULT '',
		persistent_id TEXT NOT NULL DEFAULT '',
		archived BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS site (
		id BIGSERIAL PRIMARY KEY,
		label TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		usage_name TEXT NOT NULL DEFAULT '',
		site_type_name TEXT NOT NULL DEFAULT '',
		street TEXT NOT NULL DEFAULT '',
		street_number TEXT NOT NULL DEFAULT '',
		city TEXT NOT NULL DEFAULT '',
		zip_code TEXT NOT NULL DEFAULT '',
		country TEXT NOT NULL DEFAULT '',
		building TEXT NOT NULL DEFAULT '',
		room TEXT NOT NULL DEFAULT '',
		geometry JSONB,
		archived BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS configuration (
		id BIGSERIAL PRIMARY KEY,
		label TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		project TEXT NOT NULL DEFAULT '',
		campaign TEXT NOT NULL DEFAULT '',
		status_name TEXT NOT NULL DEFAULT '',
		site_id BIGINT REFERENCES site (id) ON DELETE SET NULL,
		start_date TIMESTAMPTZ,
		end_date TIMESTAMPTZ,
		archived BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS contact (
		id BIGSERIAL PRIMARY KEY,
		given_name TEXT NOT NULL,
		family_name TEXT NOT NULL,
		email TEXT NOT NULL UNIQUE,
		website TEXT NOT NULL DEFAULT '',
		organization TEXT NOT NULL DEFAULT '',
		orcid TEXT NOT NULL DEFAULT '',
		active BOOLEAN NOT NULL DEFAULT TRUE
	)`,
	`CREATE TABLE IF NOT EXISTS device_attachment (
		id BIGSERIAL PRIMARY KEY,
		device_id BIGINT NOT NULL REFERENCES device (id) ON DELETE CASCADE,
		label TEXT NOT NULL,
		url TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		is_internal BOOLEAN NOT NULL DEFAULT FALSE
	)`,
	`CREATE TABLE IF NOT EXISTS platform_attachment (
		id BIGSERIAL PRIMARY KEY,
		platform_id BIGINT NOT NULL REFERENCES platform (id) ON DELETE CASCADE,
		label TEXT NOT NULL,
		url TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		is_internal BOOLEAN NOT NULL DEFAULT FALSE
	)`,
	`CREATE TABLE IF NOT EXISTS configuration_attachment (
		id BIGSERIAL PRIMARY KEY,
		configuration_id BIGINT NOT NULL REFERENCES configuration (id) ON DELETE CASCADE,
		label TEXT NOT NULL,
		url TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		is_internal BOOLEAN NOT NULL DEFAULT FALSE
	)`,
	`CREATE TABLE IF NOT EXISTS site_attachment (
		id BIGSERIAL PRIMARY KEY,
		site_id BIGINT NOT NULL REFERENCES site (id) ON DELETE CASCADE,
		label TEXT NOT NULL,
		url TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		is_internal BOOLEAN NOT NULL DEFAULT FALSE
	)`,
	`CREATE TABLE IF NOT EXISTS device_property (
		id BIGSERIAL PRIMARY KEY,
		device_id BIGINT NOT NULL REFERENCES device (id) ON DELETE CASCADE,
		label TEXT NOT NULL,
		property_name TEXT NOT NULL DEFAULT '',
		property_uri TEXT NOT NULL DEFAULT '',
		unit_name TEXT NOT NULL DEFAULT '',
		unit_uri TEXT NOT NULL DEFAULT '',
		compartment_name TEXT NOT NULL DEFAULT '',
		sampling_media_name TEXT NOT NULL DEFAULT '',
		resolution DOUBLE PRECISION NOT NULL DEFAULT 0,
		resolution_unit TEXT NOT NULL DEFAULT '',
		accuracy_unit TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS device_parameter (
		id BIGSERIAL PRIMARY KEY,
		device_id BIGINT NOT NULL REFERENCES device (id) ON DELETE CASCADE,
		label TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		unit_name TEXT NOT NULL DEFAULT '',
		unit_uri TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS platform_parameter (
		id BIGSERIAL PRIMARY KEY,
		platform_id BIGINT NOT NULL REFERENCES platform (id) ON DELETE CASCADE,
		label TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		unit_name TEXT NOT NULL DEFAULT '',
		unit_uri TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS configuration_parameter (
		id BIGSERIAL PRIMARY KEY,
		configuration_id BIGINT NOT NULL REFERENCES configuration (id) ON DELETE CASCADE,
		label TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		unit_name TEXT NOT NULL DEFAULT '',
		unit_uri TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS customfield (
		id BIGSERIAL PRIMARY KEY,
		device_id BIGINT REFERENCES device (id) ON DELETE CASCADE,
		configuration_id BIGINT REFERENCES configuration (id) ON DELETE CASCADE,
		key TEXT NOT NULL,
		value TEXT NOT NULL DEFAULT '',
		CHECK (num_nonnulls(device_id, configuration_id) = 1)
	)`,
	`CREATE TABLE IF NOT EXISTS contact_role (
		id BIGSERIAL PRIMARY KEY,
		contact_id BIGINT NOT NULL REFERENCES contact (id) ON DELETE CASCADE,
		device_id BIGINT REFERENCES device (id) ON DELETE CASCADE,
		platform_id BIGINT REFERENCES platform (id) ON DELETE CASCADE,
		configuration_id BIGINT REFERENCES configuration (id) ON DELETE CASCADE,
		site_id BIGINT REFERENCES site (id) ON DELETE CASCADE,
		role_name TEXT NOT NULL,
		role_uri TEXT NOT NULL DEFAULT '',
		CHECK (num_nonnulls(device_id, platform_id, configuration_id, site_id) = 1)
	)`,
	`CREATE TABLE IF NOT EXISTS device_mount_action (
		id BIGSERIAL PRIMARY KEY,
		configuration_id BIGINT NOT NULL REFERENCES configuration (id) ON DELETE CASCADE,
		device_id BIGINT NOT NULL REFERENCES device (id) ON DELETE CASCADE,
		label TEXT NOT NULL DEFAULT '',
		begin_description TEXT NOT NULL DEFAULT '',
		end_description TEXT NOT NULL DEFAULT '',
		begin_date TIMESTAMPTZ NOT NULL,
		end_date TIMESTAMPTZ,
		offset_x DOUBLE PRECISION NOT NULL DEFAULT 0,
		offset_y DOUBLE PRECISION NOT NULL DEFAULT 0,
		offset_z DOUBLE PRECISION NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS platform_mount_action (
		id BIGSERIAL PRIMARY KEY,
		configuration_id BIGINT NOT NULL REFERENCES configuration (id) ON DELETE CASCADE,
		platform_id BIGINT NOT NULL REFERENCES platform (id) ON DELETE CASCADE,
		label TEXT NOT NULL DEFAULT '',
		begin_description TEXT NOT NULL DEFAULT '',
		end_description TEXT NOT NULL DEFAULT '',
		begin_date TIMESTAMPTZ NOT NULL,
		end_date TIMESTAMPTZ,
		offset_x DOUBLE PRECISION NOT NULL DEFAULT 0,
		offset_y DOUBLE PRECISION NOT NULL DEFAULT 0,
		offset_z DOUBLE PRECISION NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS device_calibration_action (
		id BIGSERIAL PRIMARY KEY,
		device_id BIGINT NOT NULL REFERENCES device (id) ON DELETE CASCADE,
		description TEXT NOT NULL DEFAULT '',
		formula TEXT NOT NULL DEFAULT '',
		value DOUBLE PRECISION NOT NULL DEFAULT 0,
		current_calibration_date TIMESTAMPTZ NOT NULL,
		next_calibration_date TIMESTAMPTZ
	)`,
}

// CreateTables bootstraps the schema. Every statement is idempotent.
func CreateTables(ctx context.Context) error {
	for _, statement := range tableStatements {
		if _, err := Db.Exec(ctx, statement); err != nil {
			ErrorHandling(statement, err, false)
			return err
		}
	}
	zap.S().Debugf("Schema bootstrap complete, %d tables ensured", len(tableStatements))
	return nil
}
