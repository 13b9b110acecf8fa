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

// CreatePlatform inserts a new platform and registers it for indexing.
func CreatePlatform(ctx context.Context, request models.CreatePlatformRequest) (platformID int64, err error) {
	zap.S().Infof("[CreatePlatform] Creating platform %s", request.ShortName)

	sess, err := sessions.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer func() {
		_ = sess.Rollback(ctx)
	}()

	platform := &datamodel.Platform{
		ShortName:        request.ShortName,
		LongName:         request.LongName,
		SerialNumber:     request.SerialNumber,
		ManufacturerName: request.ManufacturerName,
		Model:            request.Model,
		Description:      request.Description,
		PlatformTypeName: request.PlatformTypeName,
		StatusName:       request.StatusName,
		InventoryNumber:  request.InventoryNumber,
		PersistentID:     request.PersistentID,
	}

	sqlStatement := `INSERT INTO platform
		(short_name, long_name, serial_number, manufacturer_name, model, description,
		 platform_type_name, status_name, inventory_number, persistent_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at, updated_at`
	err = sess.Tx().QueryRow(ctx, sqlStatement,
		platform.ShortName, platform.LongName, platform.SerialNumber, platform.ManufacturerName,
		platform.Model, platform.Description, platform.PlatformTypeName, platform.StatusName,
		platform.InventoryNumber, platform.PersistentID,
	).Scan(&platform.ID, &platform.CreatedAt, &platform.UpdatedAt)
	if err != nil {
		database.ErrorHandling(sqlStatement, err, false)
		return 0, err
	}

	sess.MarkCreated(platform)
	if err = sess.Commit(ctx); err != nil {
		return 0, err
	}
	return platform.ID, nil
}

// GetPlatform returns a platform with all its sub-resources.
func GetPlatform(ctx context.Context, platformID int64) (*datamodel.Platform, error) {
	if cached, ok := entityCache.Get(entityCacheKey("platform", platformID)); ok {
		return cached.(*datamodel.Platform), nil
	}

	tx, err := database.Db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	platform, err := loadPlatform(ctx, tx, platformID)
	if err != nil {
		return nil, err
	}

	entityCache.Add(entityCacheKey("platform", platformID), platform)
	return platform, nil
}

// UpdatePlatform applies a partial update and refreshes the index document.
func UpdatePlatform(ctx context.Context, platformID int64, request models.UpdatePlatformRequest) (err error) {
	zap.S().Infof("[UpdatePlatform] Updating platform %d", platformID)
	dropFromEntityCache("platform", platformID)

	sess, err := sessions.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = sess.Rollback(ctx)
	}()

	platform, err := loadPlatform(ctx, sess.Tx(), platformID)
	if err != nil {
		return err
	}

	applyString(&platform.ShortName, request.ShortName)
	applyString(&platform.LongName, request.LongName)
	applyString(&platform.SerialNumber, request.SerialNumber)
	applyString(&platform.ManufacturerName, request.ManufacturerName)
	applyString(&platform.Model, request.Model)
	applyString(&platform.Description, request.Description)
	applyString(&platform.PlatformTypeName, request.PlatformTypeName)
	applyString(&platform.StatusName, request.StatusName)
	applyString(&platform.InventoryNumber, request.InventoryNumber)
	applyString(&platform.PersistentID, request.PersistentID)
	applyBool(&platform.Archived, request.Archived)

	sqlStatement := `UPDATE platform SET
		short_name = $2, long_name = $3, serial_number = $4, manufacturer_name = $5,
		model = $6, description = $7, platform_type_name = $8, status_name = $9,
		inventory_number = $10, persistent_id = $11, archived = $12, updated_at = now()
		WHERE id = $1
		RETURNING updated_at`
	err = sess.Tx().QueryRow(ctx, sqlStatement, platform.ID,
		platform.ShortName, platform.LongName, platform.SerialNumber, platform.ManufacturerName,
		platform.Model, platform.Description, platform.PlatformTypeName, platform.StatusName,
		platform.InventoryNumber, platform.PersistentID, platform.Archived,
	).Scan(&platform.UpdatedAt)
	if err != nil {
		database.ErrorHandling(sqlStatement, err, false)
		return err
	}

	sess.MarkUpdated(platform)
	return sess.Commit(ctx)
}

// DeletePlatform removes the platform row and its index document.
func DeletePlatform(ctx context.Context, platformID int64) (err error) {
	zap.S().Infof("[DeletePlatform] Deleting platform %d", platformID)
	dropFromEntityCache("platform", platformID)

	sess, err := sessions.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = sess.Rollback(ctx)
	}()

	platform, err := loadPlatform(ctx, sess.Tx(), platformID)
	if err != nil {
		return err
	}

	sqlStatement := `DELETE FROM platform WHERE id = $1`
	if _, err = sess.Tx().Exec(ctx, sqlStatement, platformID); err != nil {
		database.ErrorHandling(sqlStatement, err, false)
		return err
	}

	sess.MarkDeleted(platform)
	return sess.Commit(ctx)
}

// CreatePlatformAttachment adds an attachment and refreshes the platform
// document.
func CreatePlatformAttachment(
	ctx context.Context,
	platformID int64,
	request models.CreateAttachmentRequest,
) (attachmentID int64, err error) {
	dropFromEntityCache("platform", platformID)

	sess, err := sessions.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer func() {
		_ = sess.Rollback(ctx)
	}()

	platform, err := loadPlatform(ctx, sess.Tx(), platformID)
	if err != nil {
		return 0, err
	}

	attachment := &datamodel.PlatformAttachment{
		Attachment: datamodel.Attachment{
			Label:       request.Label,
			URL:         request.URL,
			Description: request.Description,
			IsInternal:  request.IsInternal,
		},
		Platform: platform,
	}

	sqlStatement := `INSERT INTO platform_attachment (platform_id, label, url, description, is_internal)
		VALUES ($1, $2, $3, $4, $5) RETURNING id`
	err = sess.Tx().QueryRow(ctx, sqlStatement,
		platformID, attachment.Label, attachment.URL, attachment.Description, attachment.IsInternal,
	).Scan(&attachment.ID)
	if err != nil {
		database.ErrorHandling(sqlStatement, err, false)
		return 0, err
	}

	platform.Attachments = append(platform.Attachments, attachment)
	sess.MarkCreated(attachment)
	if err = sess.Commit(ctx); err != nil {
		return 0, err
	}
	return attachment.ID, nil
}

// DeletePlatformAttachment removes an attachment; the platform document is
// re-rendered without it.
func DeletePlatformAttachment(ctx context.Context, platformID int64, attachmentID int64) (err error) {
	dropFromEntityCache("platform", platformID)

	sess, err := sessions.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = sess.Rollback(ctx)
	}()

	platform, err := loadPlatform(ctx, sess.Tx(), platformID)
	if err != nil {
		return err
	}

	var attachment *datamodel.PlatformAttachment
	remaining := platform.Attachments[:0]
	for _, candidate := range platform.Attachments {
		if candidate.ID == attachmentID {
			attachment = candidate
			continue
		}
		remaining = append(remaining, candidate)
	}
	if attachment == nil {
		return ErrNotFound
	}
	platform.Attachments = remaining

	sqlStatement := `DELETE FROM platform_attachment WHERE id = $2 AND platform_id = $1`
	if _, err = sess.Tx().Exec(ctx, sqlStatement, platformID, attachmentID); err != nil {
		database.ErrorHandling(sqlStatement, err, false)
		return err
	}

	sess.MarkDeleted(attachment)
	return sess.Commit(ctx)
}

// CreatePlatformParameter adds a parameter to a platform.
func CreatePlatformParameter(
	ctx context.Context,
	platformID int64,
	request models.CreateParameterRequest,
) (parameterID int64, err error) {
	dropFromEntityCache("platform", platformID)

	sess, err := sessions.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer func() {
		_ = sess.Rollback(ctx)
	}()

	platform, err := loadPlatform(ctx, sess.Tx(), platformID)
	if err != nil {
		return 0, err
	}

	parameter := &datamodel.PlatformParameter{
		Parameter: datamodel.Parameter{
			Label:       request.Label,
			Description: request.Description,
			UnitName:    request.UnitName,
			UnitURI:     request.UnitURI,
		},
		Platform: platform,
	}

	sqlStatement := `INSERT INTO platform_parameter (platform_id, label, description, unit_name, unit_uri)
		VALUES ($1, $2, $3, $4, $5) RETURNING id`
	err = sess.Tx().QueryRow(ctx, sqlStatement,
		platformID, parameter.Label, parameter.Description, parameter.UnitName, parameter.UnitURI,
	).Scan(&parameter.ID)
	if err != nil {
		database.ErrorHandling(sqlStatement, err, false)
		return 0, err
	}

	platform.Parameters = append(platform.Parameters, parameter)
	sess.MarkCreated(parameter)
	if err = sess.Commit(ctx); err != nil {
		return 0, err
	}
	return parameter.ID, nil
}

// DeletePlatformParameter removes a parameter.
func DeletePlatformParameter(ctx context.Context, platformID int64, parameterID int64) (err error) {
	dropFromEntityCache("platform", platformID)

	sess, err := sessions.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = sess.Rollback(ctx)
	}()

	platform, err := loadPlatform(ctx, sess.Tx(), platformID)
	if err != nil {
		return err
	}

	var parameter *datamodel.PlatformParameter
	remaining := platform.Parameters[:0]
	for _, candidate := range platform.Parameters {
		if candidate.ID == parameterID {
			parameter = candidate
			continue
		}
		remaining = append(remaining, candidate)
	}
	if parameter == nil {
		return ErrNotFound
	}
	platform.Parameters = remaining

	sqlStatement := `DELETE FROM platform_parameter WHERE id = $2 AND platform_id = $1`
	if _, err = sess.Tx().Exec(ctx, sqlStatement, platformID, parameterID); err != nil {
		database.ErrorHandling(sqlStatement, err, false)
		return err
	}

	sess.MarkDeleted(parameter)
	return sess.Commit(ctx)
}

// CreatePlatformContactRole links a contact to a platform under a role name.
func CreatePlatformContactRole(
	ctx context.Context,
	platformID int64,
	request models.CreateContactRoleRequest,
) (roleID int64, err error) {
	dropFromEntityCache("platform", platformID)
	dropFromEntityCache("contact", request.ContactID)

	sess, err := sessions.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer func() {
		_ = sess.Rollback(ctx)
	}()

	platform, err := loadPlatform(ctx, sess.Tx(), platformID)
	if err != nil {
		return 0, err
	}
	contact, err := loadContactRow(ctx, sess.Tx(), request.ContactID)
	if err != nil {
		return 0, err
	}

	role := &datamodel.ContactRole{
		RoleName: request.RoleName,
		RoleURI:  request.RoleURI,
		Contact:  contact,
		Platform: platform,
	}

	sqlStatement := `INSERT INTO contact_role (contact_id, platform_id, role_name, role_uri)
		VALUES ($1, $2, $3, $4) RETURNING id`
	err = sess.Tx().QueryRow(ctx, sqlStatement,
		contact.ID, platformID, role.RoleName, role.RoleURI,
	).Scan(&role.ID)
	if err != nil {
		database.ErrorHandling(sqlStatement, err, false)
		return 0, err
	}

	platform.ContactRoles = append(platform.ContactRoles, role)
	contact.Roles = append(contact.Roles, role)
	sess.MarkCreated(role)
	if err = sess.Commit(ctx); err != nil {
		return 0, err
	}
	return role.ID, nil
}

// DeletePlatformContactRole unlinks a contact from a platform.
func DeletePlatformContactRole(ctx context.Context, platformID int64, roleID int64) (err error) {
	dropFromEntityCache("platform", platformID)

	sess, err := sessions.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = sess.Rollback(ctx)
	}()

	platform, err := loadPlatform(ctx, sess.Tx(), platformID)
	if err != nil {
		return err
	}

	var role *datamodel.ContactRole
	remaining := platform.ContactRoles[:0]
	for _, candidate := range platform.ContactRoles {
		if candidate.ID == roleID {
			role = candidate
			continue
		}
		remaining = append(remaining, candidate)
	}
	if role == nil {
		return ErrNotFound
	}
	platform.ContactRoles = remaining
	if role.Contact != nil {
		dropFromEntityCache("contact", role.Contact.ID)
	}

	sqlStatement := `DELETE FROM contact_role WHERE id = $2 AND platform_id = $1`
	if _, err = sess.Tx().Exec(ctx, sqlStatement, platformID, roleID); err != nil {
		database.ErrorHandling(sqlStatement, err, false)
		return err
	}

	sess.MarkDeleted(role)
	return sess.Commit(ctx)
}

// loadPlatform fetches a platform with every sub-resource its index document
// embeds.
func loadPlatform(ctx context.Context, tx pgx.Tx, platformID int64) (*datamodel.Platform, error) {
	platform := &datamodel.Platform{}

	sqlStatement := `SELECT id, short_name, long_name, serial_number, manufacturer_name, model,
		description, platform_type_name, status_name, inventory_number, persistent_id,
		archived, created_at, updated_at
		FROM platform WHERE id = $1`
	err := tx.QueryRow(ctx, sqlStatement, platformID).Scan(
		&platform.ID, &platform.ShortName, &platform.LongName, &platform.SerialNumber,
		&platform.ManufacturerName, &platform.Model, &platform.Description,
		&platform.PlatformTypeName, &platform.StatusName, &platform.InventoryNumber,
		&platform.PersistentID, &platform.Archived, &platform.CreatedAt, &platform.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		database.ErrorHandling(sqlStatement, err, false)
		return nil, err
	}

	sqlStatement = `SELECT id, label, url, description, is_internal
		FROM platform_attachment WHERE platform_id = $1 ORDER BY id`
	rows, err := tx.Query(ctx, sqlStatement, platformID)
	if err != nil {
		database.ErrorHandling(sqlStatement, err, false)
		return nil, err
	}
	for rows.Next() {
		attachment := &datamodel.PlatformAttachment{Platform: platform}
		if err = rows.Scan(&attachment.ID, &attachment.Label, &attachment.URL,
			&attachment.Description, &attachment.IsInternal); err != nil {
			rows.Close()
			database.ErrorHandling(sqlStatement, err, false)
			return nil, err
		}
		platform.Attachments = append(platform.Attachments, attachment)
	}
	rows.Close()
	if err = rows.Err(); err != nil {
		return nil, err
	}

	sqlStatement = `SELECT id, label, description, unit_name, unit_uri
		FROM platform_parameter WHERE platform_id = $1 ORDER BY id`
	rows, err = tx.Query(ctx, sqlStatement, platformID)
	if err != nil {
		database.ErrorHandling(sqlStatement, err, false)
		return nil, err
	}
	for rows.Next() {
		parameter := &datamodel.PlatformParameter{Platform: platform}
		if err = rows.Scan(&parameter.ID, &parameter.Label, &parameter.Description,
			&parameter.UnitName, &parameter.UnitURI); err != nil {
			rows.Close()
			database.ErrorHandling(sqlStatement, err, false)
			return nil, err
		}
		platform.Parameters = append(platform.Parameters, parameter)
	}
	rows.Close()
	if err = rows.Err(); err != nil {
		return nil, err
	}

	roles, err := loadContactRolesFor(ctx, tx, "platform_id", platformID)
	if err != nil {
		return nil, err
	}
	for _, role := range roles {
		role.Platform = platform
	}
	platform.ContactRoles = roles

	return platform, nil
}
