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

	"github.com/jackc/pgx/v5"
	"github.com/sensorhub/sensor-management-system/cmd/sensormgmt/database"
	"github.com/sensorhub/sensor-management-system/cmd/sensormgmt/models"
	"github.com/sensorhub/sensor-management-system/pkg/datamodel"
	"go.uber.org/zap"
)

// CreateConfiguration inserts a new configuration and registers it for
// indexing.
func CreateConfiguration(
	ctx context.Context,
	request models.CreateConfigurationRequest,
) (configurationID int64, err error) {
	zap.S().Infof("[CreateConfiguration] Creating configuration %s", request.Label)

	sess, err := sessions.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer func() {
		_ = sess.Rollback(ctx)
	}()

	configuration := &datamodel.Configuration{
		Label:       request.Label,
		Description: request.Description,
		Project:     request.Project,
		Campaign:    request.Campaign,
		StatusName:  request.StatusName,
		StartDate:   request.StartDate,
		EndDate:     request.EndDate,
	}

	if request.SiteID != nil {
		configuration.Site, err = loadSite(ctx, sess.Tx(), *request.SiteID)
		if err != nil {
			return 0, err
		}
	}

	sqlStatement := `INSERT INTO configuration
		(label, description, project, campaign, status_name, site_id, start_date, end_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at`
	err = sess.Tx().QueryRow(ctx, sqlStatement,
		configuration.Label, configuration.Description, configuration.Project,
		configuration.Campaign, configuration.StatusName, request.SiteID,
		configuration.StartDate, configuration.EndDate,
	).Scan(&configuration.ID, &configuration.CreatedAt, &configuration.UpdatedAt)
	if err != nil {
		database.ErrorHandling(sqlStatement, err, false)
		return 0, err
	}

	sess.MarkCreated(configuration)
	if err = sess.Commit(ctx); err != nil {
		return 0, err
	}
	return configuration.ID, nil
}

// GetConfiguration returns a configuration with all its sub-resources.
func GetConfiguration(ctx context.Context, configurationID int64) (*datamodel.Configuration, error) {
	if cached, ok := entityCache.Get(entityCacheKey("configuration", configurationID)); ok {
		return cached.(*datamodel.Configuration), nil
	}

	tx, err := database.Db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	configuration, err := loadConfiguration(ctx, tx, configurationID)
	if err != nil {
		return nil, err
	}

	entityCache.Add(entityCacheKey("configuration", configurationID), configuration)
	return configuration, nil
}

// UpdateConfiguration applies a partial update and refreshes the index
// document.
func UpdateConfiguration(
	ctx context.Context,
	configurationID int64,
	request models.UpdateConfigurationRequest,
) (err error) {
	zap.S().Infof("[UpdateConfiguration] Updating configuration %d", configurationID)
	dropFromEntityCache("configuration", configurationID)

	sess, err := sessions.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = sess.Rollback(ctx)
	}()

	configuration, err := loadConfiguration(ctx, sess.Tx(), configurationID)
	if err != nil {
		return err
	}

	applyString(&configuration.Label, request.Label)
	applyString(&configuration.Description, request.Description)
	applyString(&configuration.Project, request.Project)
	applyString(&configuration.Campaign, request.Campaign)
	applyString(&configuration.StatusName, request.StatusName)
	applyBool(&configuration.Archived, request.Archived)
	if request.StartDate != nil {
		configuration.StartDate = request.StartDate
	}
	if request.EndDate != nil {
		configuration.EndDate = request.EndDate
	}

	siteID := siteIDOf(configuration)
	if request.SiteID != nil {
		configuration.Site, err = loadSite(ctx, sess.Tx(), *request.SiteID)
		if err != nil {
			return err
		}
		siteID = request.SiteID
	}

	sqlStatement := `UPDATE configuration SET
		label = $2, description = $3, project = $4, campaign = $5, status_name = $6,
		site_id = $7, start_date = $8, end_date = $9, archived = $10, updated_at = now()
		WHERE id = $1
		RETURNING updated_at`
	err = sess.Tx().QueryRow(ctx, sqlStatement, configuration.ID,
		configuration.Label, configuration.Description, configuration.Project,
		configuration.Campaign, configuration.StatusName, siteID,
		configuration.StartDate, configuration.EndDate, configuration.Archived,
	).Scan(&configuration.UpdatedAt)
	if err != nil {
		database.ErrorHandling(sqlStatement, err, false)
		return err
	}

	sess.MarkUpdated(configuration)
	return sess.Commit(ctx)
}

// DeleteConfiguration removes the configuration row and its index document.
func DeleteConfiguration(ctx context.Context, configurationID int64) (err error) {
	zap.S().Infof("[DeleteConfiguration] Deleting configuration %d", configurationID)
	dropFromEntityCache("configuration", configurationID)

	sess, err := sessions.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = sess.Rollback(ctx)
	}()

	configuration, err := loadConfiguration(ctx, sess.Tx(), configurationID)
	if err != nil {
		return err
	}

	sqlStatement := `DELETE FROM configuration WHERE id = $1`
	if _, err = sess.Tx().Exec(ctx, sqlStatement, configurationID); err != nil {
		database.ErrorHandling(sqlStatement, err, false)
		return err
	}

	sess.MarkDeleted(configuration)
	return sess.Commit(ctx)
}

// CreateConfigurationAttachment adds an attachment and refreshes the
// configuration document.
func CreateConfigurationAttachment(
	ctx context.Context,
	configurationID int64,
	request models.CreateAttachmentRequest,
) (attachmentID int64, err error) {
	dropFromEntityCache("configuration", configurationID)

	sess, err := sessions.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer func() {
		_ = sess.Rollback(ctx)
	}()

	configuration, err := loadConfiguration(ctx, sess.Tx(), configurationID)
	if err != nil {
		return 0, err
	}

	attachment := &datamodel.ConfigurationAttachment{
		Attachment: datamodel.Attachment{
			Label:       request.Label,
			URL:         request.URL,
			Description: request.Description,
			IsInternal:  request.IsInternal,
		},
		Configuration: configuration,
	}

	sqlStatement := `INSERT INTO configuration_attachment (configuration_id, label, url, description, is_internal)
		VALUES ($1, $2, $3, $4, $5) RETURNING id`
	err = sess.Tx().QueryRow(ctx, sqlStatement,
		configurationID, attachment.Label, attachment.URL, attachment.Description,
		attachment.IsInternal,
	).Scan(&attachment.ID)
	if err != nil {
		database.ErrorHandling(sqlStatement, err, false)
		return 0, err
	}

	configuration.Attachments = append(configuration.Attachments, attachment)
	sess.MarkCreated(attachment)
	if err = sess.Commit(ctx); err != nil {
		return 0, err
	}
	return attachment.ID, nil
}

// DeleteConfigurationAttachment removes an attachment.
func DeleteConfigurationAttachment(
	ctx context.Context,
	configurationID int64,
	attachmentID int64,
) (err error) {
	dropFromEntityCache("configuration", configurationID)

	sess, err := sessions.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = sess.Rollback(ctx)
	}()

	configuration, err := loadConfiguration(ctx, sess.Tx(), configurationID)
	if err != nil {
		return err
	}

	var attachment *datamodel.ConfigurationAttachment
	remaining := configuration.Attachments[:0]
	for _, candidate := range configuration.Attachments {
		if candidate.ID == attachmentID {
			attachment = candidate
			continue
		}
		remaining = append(remaining, candidate)
	}
	if attachment == nil {
		return ErrNotFound
	}
	configuration.Attachments = remaining

	sqlStatement := `DELETE FROM configuration_attachment WHERE id = $2 AND configuration_id = $1`
	if _, err = sess.Tx().Exec(ctx, sqlStatement, configurationID, attachmentID); err != nil {
		database.ErrorHandling(sqlStatement, err, false)
		return err
	}

	sess.MarkDeleted(attachment)
	return sess.Commit(ctx)
}

// CreateConfigurationParameter adds a parameter to a configuration.
func CreateConfigurationParameter(
	ctx context.Context,
	configurationID int64,
	request models.CreateParameterRequest,
) (parameterID int64, err error) {
	dropFromEntityCache("configuration", configurationID)

	sess, err := sessions.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer func() {
		_ = sess.Rollback(ctx)
	}()

	configuration, err := loadConfiguration(ctx, sess.Tx(), configurationID)
	if err != nil {
		return 0, err
	}

	parameter := &datamodel.ConfigurationParameter{
		Parameter: datamodel.Parameter{
			Label:       request.Label,
			Description: request.Description,
			UnitName:    request.UnitName,
			UnitURI:     request.UnitURI,
		},
		Configuration: configuration,
	}

	sqlStatement := `INSERT INTO configuration_parameter (configuration_id, label, description, unit_name, unit_uri)
		VALUES ($1, $2, $3, $4, $5) RETURNING id`
	err = sess.Tx().QueryRow(ctx, sqlStatement,
		configurationID, parameter.Label, parameter.Description, parameter.UnitName,
		parameter.UnitURI,
	).Scan(&parameter.ID)
	if err != nil {
		database.ErrorHandling(sqlStatement, err, false)
		return 0, err
	}

	configuration.Parameters = append(configuration.Parameters, parameter)
	sess.MarkCreated(parameter)
	if err = sess.Commit(ctx); err != nil {
		return 0, err
	}
	return parameter.ID, nil
}

// DeleteConfigurationParameter removes a parameter.
func DeleteConfigurationParameter(
	ctx context.Context,
	configurationID int64,
	parameterID int64,
) (err error) {
	dropFromEntityCache("configuration", configurationID)

	sess, err := sessions.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = sess.Rollback(ctx)
	}()

	configuration, err := loadConfiguration(ctx, sess.Tx(), configurationID)
	if err != nil {
		return err
	}

	var parameter *datamodel.ConfigurationParameter
	remaining := configuration.Parameters[:0]
	for _, candidate := range configuration.Parameters {
		if candidate.ID == parameterID {
			parameter = candidate
			continue
		}
		remaining = append(remaining, candidate)
	}
	if parameter == nil {
		return ErrNotFound
	}
	configuration.Parameters = remaining

	sqlStatement := `DELETE FROM configuration_parameter WHERE id = $2 AND configuration_id = $1`
	if _, err = sess.Tx().Exec(ctx, sqlStatement, configurationID, parameterID); err != nil {
		database.ErrorHandling(sqlStatement, err, false)
		return err
	}

	sess.MarkDeleted(parameter)
	return sess.Commit(ctx)
}

// CreateConfigurationCustomField adds a free key/value pair to a
// configuration.
func CreateConfigurationCustomField(
	ctx context.Context,
	configurationID int64,
	request models.CreateCustomFieldRequest,
) (fieldID int64, err error) {
	dropFromEntityCache("configuration", configurationID)

	sess, err := sessions.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer func() {
		_ = sess.Rollback(ctx)
	}()

	configuration, err := loadConfiguration(ctx, sess.Tx(), configurationID)
	if err != nil {
		return 0, err
	}

	field := &datamodel.CustomField{
		Key:           request.Key,
		Value:         request.Value,
		Configuration: configuration,
	}

	sqlStatement := `INSERT INTO customfield (configuration_id, key, value) VALUES ($1, $2, $3) RETURNING id`
	err = sess.Tx().QueryRow(ctx, sqlStatement, configurationID, field.Key, field.Value).Scan(&field.ID)
	if err != nil {
		database.ErrorHandling(sqlStatement, err, false)
		return 0, err
	}

	configuration.CustomFields = append(configuration.CustomFields, field)
	sess.MarkCreated(field)
	if err = sess.Commit(ctx); err != nil {
		return 0, err
	}
	return field.ID, nil
}

// DeleteConfigurationCustomField removes a custom field.
func DeleteConfigurationCustomField(
	ctx context.Context,
	configurationID int64,
	fieldID int64,
) (err error) {
	dropFromEntityCache("configuration", configurationID)

	sess, err := sessions.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = sess.Rollback(ctx)
	}()

	configuration, err := loadConfiguration(ctx, sess.Tx(), configurationID)
	if err != nil {
		return err
	}

	var field *datamodel.CustomField
	remaining := configuration.CustomFields[:0]
	for _, candidate := range configuration.CustomFields {
		if candidate.ID == fieldID {
			field = candidate
			continue
		}
		remaining = append(remaining, candidate)
	}
	if field == nil {
		return ErrNotFound
	}
	configuration.CustomFields = remaining

	sqlStatement := `DELETE FROM customfield WHERE id = $2 AND configuration_id = $1`
	if _, err = sess.Tx().Exec(ctx, sqlStatement, configurationID, fieldID); err != nil {
		database.ErrorHandling(sqlStatement, err, false)
		return err
	}

	sess.MarkDeleted(field)
	return sess.Commit(ctx)
}

// CreateConfigurationContactRole links a contact to a configuration.
func CreateConfigurationContactRole(
	ctx context.Context,
	configurationID int64,
	request models.CreateContactRoleRequest,
) (roleID int64, err error) {
	dropFromEntityCache("configuration", configurationID)
	dropFromEntityCache("contact", request.ContactID)

	sess, err := sessions.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer func() {
		_ = sess.Rollback(ctx)
	}()

	configuration, err := loadConfiguration(ctx, sess.Tx(), configurationID)
	if err != nil {
		return 0, err
	}
	contact, err := loadContactRow(ctx, sess.Tx(), request.ContactID)
	if err != nil {
		return 0, err
	}

	role := &datamodel.ContactRole{
		RoleName:      request.RoleName,
		RoleURI:       request.RoleURI,
		Contact:       contact,
		Configuration: configuration,
	}

	sqlStatement := `INSERT INTO contact_role (contact_id, configuration_id, role_name, role_uri)
		VALUES ($1, $2, $3, $4) RETURNING id`
	err = sess.Tx().QueryRow(ctx, sqlStatement,
		contact.ID, configurationID, role.RoleName, role.RoleURI,
	).Scan(&role.ID)
	if err != nil {
		database.ErrorHandling(sqlStatement, err, false)
		return 0, err
	}

	configuration.ContactRoles = append(configuration.ContactRoles, role)
	contact.Roles = append(contact.Roles, role)
	sess.MarkCreated(role)
	if err = sess.Commit(ctx); err != nil {
		return 0, err
	}
	return role.ID, nil
}

// DeleteConfigurationContactRole unlinks a contact from a configuration.
func DeleteConfigurationContactRole(
	ctx context.Context,
	configurationID int64,
	roleID int64,
) (err error) {
	dropFromEntityCache("configuration", configurationID)

	sess, err := sessions.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = sess.Rollback(ctx)
	}()

	configuration, err := loadConfiguration(ctx, sess.Tx(), configurationID)
	if err != nil {
		return err
	}

	var role *datamodel.ContactRole
	remaining := configuration.ContactRoles[:0]
	for _, candidate := range configuration.ContactRoles {
		if candidate.ID == roleID {
			role = candidate
			continue
		}
		remaining = append(remaining, candidate)
	}
	if role == nil {
		return ErrNotFound
	}
	configuration.ContactRoles = remaining
	if role.Contact != nil {
		dropFromEntityCache("contact", role.Contact.ID)
	}

	sqlStatement := `DELETE FROM contact_role WHERE id = $2 AND configuration_id = $1`
	if _, err = sess.Tx().Exec(ctx, sqlStatement, configurationID, roleID); err != nil {
		database.ErrorHandling(sqlStatement, err, false)
		return err
	}

	sess.MarkDeleted(role)
	return sess.Commit(ctx)
}

// CreateDeviceMount mounts a device on a configuration.
func CreateDeviceMount(
	ctx context.Context,
	configurationID int64,
	request models.CreateDeviceMountRequest,
) (mountID int64, err error) {
	dropFromEntityCache("configuration", configurationID)

	sess, err := sessions.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer func() {
		_ = sess.Rollback(ctx)
	}()

	configuration, err := loadConfiguration(ctx, sess.Tx(), configurationID)
	if err != nil {
		return 0, err
	}
	device, err := loadDevice(ctx, sess.Tx(), request.DeviceID)
	if err != nil {
		return 0, err
	}

	mount := &datamodel.DeviceMountAction{
		Label:            request.Label,
		BeginDescription: request.BeginDescription,
		EndDescription:   request.EndDescription,
		BeginDate:        request.BeginDate,
		EndDate:          request.EndDate,
		OffsetX:          request.OffsetX,
		OffsetY:          request.OffsetY,
		OffsetZ:          request.OffsetZ,
		Device:           device,
		Configuration:    configuration,
	}

	sqlStatement := `INSERT INTO device_mount_action
		(configuration_id, device_id, label, begin_description, end_description,
		 begin_date, end_date, offset_x, offset_y, offset_z)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10) RETURNING id`
	err = sess.Tx().QueryRow(ctx, sqlStatement,
		configurationID, device.ID, mount.Label, mount.BeginDescription, mount.EndDescription,
		mount.BeginDate, mount.EndDate, mount.OffsetX, mount.OffsetY, mount.OffsetZ,
	).Scan(&mount.ID)
	if err != nil {
		database.ErrorHandling(sqlStatement, err, false)
		return 0, err
	}

	configuration.DeviceMounts = append(configuration.DeviceMounts, mount)
	sess.MarkCreated(mount)
	if err = sess.Commit(ctx); err != nil {
		return 0, err
	}
	return mount.ID, nil
}

// DeleteDeviceMount unmounts a device from a configuration.
func DeleteDeviceMount(ctx context.Context, configurationID int64, mountID int64) (err error) {
	dropFromEntityCache("configuration", configurationID)

	sess, err := sessions.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = sess.Rollback(ctx)
	}()

	configuration, err := loadConfiguration(ctx, sess.Tx(), configurationID)
	if err != nil {
		return err
	}

	var mount *datamodel.DeviceMountAction
	remaining := configuration.DeviceMounts[:0]
	for _, candidate := range configuration.DeviceMounts {
		if candidate.ID == mountID {
			mount = candidate
			continue
		}
		remaining = append(remaining, candidate)
	}
	if mount == nil {
		return ErrNotFound
	}
	configuration.DeviceMounts = remaining

	sqlStatement := `DELETE FROM device_mount_action WHERE id = $2 AND configuration_id = $1`
	if _, err = sess.Tx().Exec(ctx, sqlStatement, configurationID, mountID); err != nil {
		database.ErrorHandling(sqlStatement, err, false)
		return err
	}

	sess.MarkDeleted(mount)
	return sess.Commit(ctx)
}

// CreatePlatformMount mounts a platform on a configuration.
func CreatePlatformMount(
	ctx context.Context,
	configurationID int64,
	request models.CreatePlatformMountRequest,
) (mountID int64, err error) {
	dropFromEntityCache("configuration", configurationID)

	sess, err := sessions.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer func() {
		_ = sess.Rollback(ctx)
	}()

	configuration, err := loadConfiguration(ctx, sess.Tx(), configurationID)
	if err != nil {
		return 0, err
	}
	platform, err := loadPlatform(ctx, sess.Tx(), request.PlatformID)
	if err != nil {
		return 0, err
	}

	mount := &datamodel.PlatformMountAction{
		Label:            request.Label,
		BeginDescription: request.BeginDescription,
		EndDescription:   request.EndDescription,
		BeginDate:        request.BeginDate,
		EndDate:          request.EndDate,
		OffsetX:          request.OffsetX,
		OffsetY:          request.OffsetY,
		OffsetZ:          request.OffsetZ,
		Platform:         platform,
		Configuration:    configuration,
	}

	sqlStatement := `INSERT INTO platform_mount_action
		(configuration_id, platform_id, label, begin_description, end_description,
		 begin_date, end_date, offset_x, offset_y, offset_z)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10) RETURNING id`
	err = sess.Tx().QueryRow(ctx, sqlStatement,
		configurationID, platform.ID, mount.Label, mount.BeginDescription, mount.EndDescription,
		mount.BeginDate, mount.EndDate, mount.OffsetX, mount.OffsetY, mount.OffsetZ,
	).Scan(&mount.ID)
	if err != nil {
		database.ErrorHandling(sqlStatement, err, false)
		return 0, err
	}

	configuration.PlatformMounts = append(configuration.PlatformMounts, mount)
	sess.MarkCreated(mount)
	if err = sess.Commit(ctx); err != nil {
		return 0, err
	}
	return mount.ID, nil
}

// DeletePlatformMount unmounts a platform from a configuration.
func DeletePlatformMount(ctx context.Context, configurationID int64, mountID int64) (err error) {
	dropFromEntityCache("configuration", configurationID)

	sess, err := sessions.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = sess.Rollback(ctx)
	}()

	configuration, err := loadConfiguration(ctx, sess.Tx(), configurationID)
	if err != nil {
		return err
	}

	var mount *datamodel.PlatformMountAction
	remaining := configuration.PlatformMounts[:0]
	for _, candidate := range configuration.PlatformMounts {
		if candidate.ID == mountID {
			mount = candidate
			continue
		}
		remaining = append(remaining, candidate)
	}
	if mount == nil {
		return ErrNotFound
	}
	configuration.PlatformMounts = remaining

	sqlStatement := `DELETE FROM platform_mount_action WHERE id = $2 AND configuration_id = $1`
	if _, err = sess.Tx().Exec(ctx, sqlStatement, configurationID, mountID); err != nil {
		database.ErrorHandling(sqlStatement, err, false)
		return err
	}

	sess.MarkDeleted(mount)
	return sess.Commit(ctx)
}

func siteIDOf(configuration *datamodel.Configuration) *int64 {
	if configuration.Site == nil {
		return nil
	}
	return &configuration.Site.ID
}

// loadConfiguration fetches a configuration with every sub-resource its
// index document embeds.
func loadConfiguration(ctx context.Context, tx pgx.Tx, configurationID int64) (*datamodel.Configuration, error) {
	configuration := &datamodel.Configuration{}
	var siteID *int64

	sqlStatement := `SELECT id, label, description, project, campaign, status_name, site_id,
		start_date, end_date, archived, created_at, updated_at
		FROM configuration WHERE id = $1`
	err := tx.QueryRow(ctx, sqlStatement, configurationID).Scan(
		&configuration.ID, &configuration.Label, &configuration.Description,
		&configuration.Project, &configuration.Campaign, &configuration.StatusName, &siteID,
		&configuration.StartDate, &configuration.EndDate, &configuration.Archived,
		&configuration.CreatedAt, &configuration.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		database.ErrorHandling(sqlStatement, err, false)
		return nil, err
	}

	if siteID != nil {
		// The site label alone is embedded; load the bare row.
		configuration.Site = &datamodel.Site{}
		sqlStatement = `SELECT id, label FROM site WHERE id = $1`
		err = tx.QueryRow(ctx, sqlStatement, *siteID).Scan(&configuration.Site.ID, &configuration.Site.Label)
		if err != nil && !errors.Is(err, pgx.ErrNoRows) {
			database.ErrorHandling(sqlStatement, err, false)
			return nil, err
		}
		if errors.Is(err, pgx.ErrNoRows) {
			configuration.Site = nil
		}
	}

	sqlStatement = `SELECT id, label, url, description, is_internal
		FROM configuration_attachment WHERE configuration_id = $1 ORDER BY id`
	rows, err := tx.Query(ctx, sqlStatement, configurationID)
	if err != nil {
		database.ErrorHandling(sqlStatement, err, false)
		return nil, err
	}
	for rows.Next() {
		attachment := &datamodel.ConfigurationAttachment{Configuration: configuration}
		if err = rows.Scan(&attachment.ID, &attachment.Label, &attachment.URL,
			&attachment.Description, &attachment.IsInternal); err != nil {
			rows.Close()
			database.ErrorHandling(sqlStatement, err, false)
			return nil, err
		}
		configuration.Attachments = append(configuration.Attachments, attachment)
	}
	rows.Close()
	if err = rows.Err(); err != nil {
		return nil, err
	}

	sqlStatement = `SELECT id, label, description, unit_name, unit_uri
		FROM configuration_parameter WHERE configuration_id = $1 ORDER BY id`
	rows, err = tx.Query(ctx, sqlStatement, configurationID)
	if err != nil {
		database.ErrorHandling(sqlStatement, err, false)
		return nil, err
	}
	for rows.Next() {
		parameter := &datamodel.ConfigurationParameter{Configuration: configuration}
		if err = rows.Scan(&parameter.ID, &parameter.Label, &parameter.Description,
			&parameter.UnitName, &parameter.UnitURI); err != nil {
			rows.Close()
			database.ErrorHandling(sqlStatement, err, false)
			return nil, err
		}
		configuration.Parameters = append(configuration.Parameters, parameter)
	}
	rows.Close()
	if err = rows.Err(); err != nil {
		return nil, err
	}

	sqlStatement = `SELECT id, key, value FROM customfield WHERE configuration_id = $1 ORDER BY id`
	rows, err = tx.Query(ctx, sqlStatement, configurationID)
	if err != nil {
		database.ErrorHandling(sqlStatement, err, false)
		return nil, err
	}
	for rows.Next() {
		field := &datamodel.CustomField{Configuration: configuration}
		if err = rows.Scan(&field.ID, &field.Key, &field.Value); err != nil {
			rows.Close()
			database.ErrorHandling(sqlStatement, err, false)
			return nil, err
		}
		configuration.CustomFields = append(configuration.CustomFields, field)
	}
	rows.Close()
	if err = rows.Err(); err != nil {
		return nil, err
	}

	roles, err := loadContactRolesFor(ctx, tx, "configuration_id", configurationID)
	if err != nil {
		return nil, err
	}
	for _, role := range roles {
		role.Configuration = configuration
	}
	configuration.ContactRoles = roles

	if err = loadDeviceMounts(ctx, tx, configuration); err != nil {
		return nil, err
	}
	if err = loadPlatformMounts(ctx, tx, configuration); err != nil {
		return nil, err
	}
	return configuration, nil
}

func loadDeviceMounts(ctx context.Context, tx pgx.Tx, configuration *datamodel.Configuration) error {
	sqlStatement := `SELECT m.id, m.label, m.begin_description, m.end_description, m.begin_date,
		m.end_date, m.offset_x, m.offset_y, m.offset_z, d.id, d.short_name
		FROM device_mount_action m JOIN device d ON d.id = m.device_id
		WHERE m.configuration_id = $1 ORDER BY m.id`
	rows, err := tx.Query(ctx, sqlStatement, configuration.ID)
	if err != nil {
		database.ErrorHandling(sqlStatement, err, false)
		return err
	}
	defer rows.Close()

	for rows.Next() {
		mount := &datamodel.DeviceMountAction{
			Configuration: configuration,
			Device:        &datamodel.Device{},
		}
		if err = rows.Scan(&mount.ID, &mount.Label, &mount.BeginDescription,
			&mount.EndDescription, &mount.BeginDate, &mount.EndDate,
			&mount.OffsetX, &mount.OffsetY, &mount.OffsetZ,
			&mount.Device.ID, &mount.Device.ShortName); err != nil {
			database.ErrorHandling(sqlStatement, err, false)
			return err
		}
		configuration.DeviceMounts = append(configuration.DeviceMounts, mount)
	}
	return rows.Err()
}

func loadPlatformMounts(ctx context.Context, tx pgx.Tx, configuration *datamodel.Configuration) error {
	sqlStatement := `SELECT m.id, m.label, m.begin_description, m.end_description, m.begin_date,
		m.end_date, m.offset_x, m.offset_y, m.offset_z, p.id, p.short_name
		FROM platform_mount_action m JOIN platform p ON p.id = m.platform_id
		WHERE m.configuration_id = $1 ORDER BY m.id`
	rows, err := tx.Query(ctx, sqlStatement, configuration.ID)
	if err != nil {
		database.ErrorHandling(sqlStatement, err, false)
		return err
	}
	defer rows.Close()

	for rows.Next() {
		mount := &datamodel.PlatformMountAction{
			Configuration: configuration,
			Platform:      &datamodel.Platform{},
		}
		if err = rows.Scan(&mount.ID, &mount.Label, &mount.BeginDescription,
			&mount.EndDescription, &mount.BeginDate, &mount.EndDate,
			&mount.OffsetX, &mount.OffsetY, &mount.OffsetZ,
			&mount.Platform.ID, &mount.Platform.ShortName); err != nil {
			database.ErrorHandling(sqlStatement, err, false)
			return err
		}
		configuration.PlatformMounts = append(configuration.PlatformMounts, mount)
	}
	return rows.Err()
}
