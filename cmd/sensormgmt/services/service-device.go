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

// CreateDevice inserts a new device and registers it for indexing.
func CreateDevice(ctx context.Context, request models.CreateDeviceRequest) (deviceID int64, err error) {
	zap.S().Infof("[CreateDevice] Creating device %s", request.ShortName)

	sess, err := sessions.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer func() {
		_ = sess.Rollback(ctx)
	}()

	device := &datamodel.Device{
		ShortName:        request.ShortName,
		LongName:         request.LongName,
		SerialNumber:     request.SerialNumber,
		ManufacturerName: request.ManufacturerName,
		Model:            request.Model,
		Description:      request.Description,
		DeviceTypeName:   request.DeviceTypeName,
		StatusName:       request.StatusName,
		Website:          request.Website,
		InventoryNumber:  request.InventoryNumber,
		PersistentID:     request.PersistentID,
	}

	sqlStatement := `INSERT INTO device
		(short_name, long_name, serial_number, manufacturer_name, model, description,
		 device_type_name, status_name, website, inventory_number, persistent_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, created_at, updated_at`
	err = sess.Tx().QueryRow(ctx, sqlStatement,
		device.ShortName, device.LongName, device.SerialNumber, device.ManufacturerName,
		device.Model, device.Description, device.DeviceTypeName, device.StatusName,
		device.Website, device.InventoryNumber, device.PersistentID,
	).Scan(&device.ID, &device.CreatedAt, &device.UpdatedAt)
	if err != nil {
		database.ErrorHandling(sqlStatement, err, false)
		return 0, err
	}

	sess.MarkCreated(device)
	if err = sess.Commit(ctx); err != nil {
		return 0, err
	}
	return device.ID, nil
}

// GetDevice returns a device with all its sub-resources.
func GetDevice(ctx context.Context, deviceID int64) (*datamodel.Device, error) {
	if cached, ok := entityCache.Get(entityCacheKey("device", deviceID)); ok {
		return cached.(*datamodel.Device), nil
	}

	tx, err := database.Db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	device, err := loadDevice(ctx, tx, deviceID)
	if err != nil {
		return nil, err
	}

	entityCache.Add(entityCacheKey("device", deviceID), device)
	return device, nil
}

// UpdateDevice applies a partial update and refreshes the index document.
func UpdateDevice(ctx context.Context, deviceID int64, request models.UpdateDeviceRequest) (err error) {
	zap.S().Infof("[UpdateDevice] Updating device %d", deviceID)
	dropFromEntityCache("device", deviceID)

	sess, err := sessions.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = sess.Rollback(ctx)
	}()

	device, err := loadDevice(ctx, sess.Tx(), deviceID)
	if err != nil {
		return err
	}

	applyString(&device.ShortName, request.ShortName)
	applyString(&device.LongName, request.LongName)
	applyString(&device.SerialNumber, request.SerialNumber)
	applyString(&device.ManufacturerName, request.ManufacturerName)
	applyString(&device.Model, request.Model)
	applyString(&device.Description, request.Description)
	applyString(&device.DeviceTypeName, request.DeviceTypeName)
	applyString(&device.StatusName, request.StatusName)
	applyString(&device.Website, request.Website)
	applyString(&device.InventoryNumber, request.InventoryNumber)
	applyString(&device.PersistentID, request.PersistentID)
	applyBool(&device.Archived, request.Archived)

	sqlStatement := `UPDATE device SET
		short_name = $2, long_name = $3, serial_number = $4, manufacturer_name = $5,
		model = $6, description = $7, device_type_name = $8, status_name = $9,
		website = $10, inventory_number = $11, persistent_id = $12, archived = $13,
		updated_at = now()
		WHERE id = $1
		RETURNING updated_at`
	err = sess.Tx().QueryRow(ctx, sqlStatement, device.ID,
		device.ShortName, device.LongName, device.SerialNumber, device.ManufacturerName,
		device.Model, device.Description, device.DeviceTypeName, device.StatusName,
		device.Website, device.InventoryNumber, device.PersistentID, device.Archived,
	).Scan(&device.UpdatedAt)
	if err != nil {
		database.ErrorHandling(sqlStatement, err, false)
		return err
	}

	sess.MarkUpdated(device)
	return sess.Commit(ctx)
}

// DeleteDevice removes the device row and its index document.
func DeleteDevice(ctx context.Context, deviceID int64) (err error) {
	zap.S().Infof("[DeleteDevice] Deleting device %d", deviceID)
	dropFromEntityCache("device", deviceID)

	sess, err := sessions.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = sess.Rollback(ctx)
	}()

	device, err := loadDevice(ctx, sess.Tx(), deviceID)
	if err != nil {
		return err
	}

	sqlStatement := `DELETE FROM device WHERE id = $1`
	if _, err = sess.Tx().Exec(ctx, sqlStatement, deviceID); err != nil {
		database.ErrorHandling(sqlStatement, err, false)
		return err
	}

	sess.MarkDeleted(device)
	return sess.Commit(ctx)
}

// CreateDeviceAttachment adds an attachment and refreshes the device document.
func CreateDeviceAttachment(
	ctx context.Context,
	deviceID int64,
	request models.CreateAttachmentRequest,
) (attachmentID int64, err error) {
	dropFromEntityCache("device", deviceID)

	sess, err := sessions.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer func() {
		_ = sess.Rollback(ctx)
	}()

	device, err := loadDevice(ctx, sess.Tx(), deviceID)
	if err != nil {
		return 0, err
	}

	attachment := &datamodel.DeviceAttachment{
		Attachment: datamodel.Attachment{
			Label:       request.Label,
			URL:         request.URL,
			Description: request.Description,
			IsInternal:  request.IsInternal,
		},
		Device: device,
	}

	sqlStatement := `INSERT INTO device_attachment (device_id, label, url, description, is_internal)
		VALUES ($1, $2, $3, $4, $5) RETURNING id`
	err = sess.Tx().QueryRow(ctx, sqlStatement,
		deviceID, attachment.Label, attachment.URL, attachment.Description, attachment.IsInternal,
	).Scan(&attachment.ID)
	if err != nil {
		database.ErrorHandling(sqlStatement, err, false)
		return 0, err
	}

	device.Attachments = append(device.Attachments, attachment)
	sess.MarkCreated(attachment)
	if err = sess.Commit(ctx); err != nil {
		return 0, err
	}
	return attachment.ID, nil
}

// UpdateDeviceAttachment replaces an attachment's content.
func UpdateDeviceAttachment(
	ctx context.Context,
	deviceID int64,
	attachmentID int64,
	request models.CreateAttachmentRequest,
) (err error) {
	dropFromEntityCache("device", deviceID)

	sess, err := sessions.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = sess.Rollback(ctx)
	}()

	device, err := loadDevice(ctx, sess.Tx(), deviceID)
	if err != nil {
		return err
	}
	attachment := findDeviceAttachment(device, attachmentID)
	if attachment == nil {
		return ErrNotFound
	}

	attachment.Label = request.Label
	attachment.URL = request.URL
	attachment.Description = request.Description
	attachment.IsInternal = request.IsInternal

	sqlStatement := `UPDATE device_attachment SET label = $3, url = $4, description = $5, is_internal = $6
		WHERE id = $2 AND device_id = $1`
	if _, err = sess.Tx().Exec(ctx, sqlStatement,
		deviceID, attachmentID, attachment.Label, attachment.URL, attachment.Description,
		attachment.IsInternal); err != nil {
		database.ErrorHandling(sqlStatement, err, false)
		return err
	}

	sess.MarkUpdated(attachment)
	return sess.Commit(ctx)
}

// DeleteDeviceAttachment removes an attachment; the device document is
// re-rendered without it.
func DeleteDeviceAttachment(ctx context.Context, deviceID int64, attachmentID int64) (err error) {
	dropFromEntityCache("device", deviceID)

	sess, err := sessions.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = sess.Rollback(ctx)
	}()

	device, err := loadDevice(ctx, sess.Tx(), deviceID)
	if err != nil {
		return err
	}
	attachment := findDeviceAttachment(device, attachmentID)
	if attachment == nil {
		return ErrNotFound
	}

	sqlStatement := `DELETE FROM device_attachment WHERE id = $2 AND device_id = $1`
	if _, err = sess.Tx().Exec(ctx, sqlStatement, deviceID, attachmentID); err != nil {
		database.ErrorHandling(sqlStatement, err, false)
		return err
	}

	// Detach before rendering so the refreshed device document no longer
	// embeds the attachment.
	device.Attachments = removeDeviceAttachment(device.Attachments, attachmentID)
	sess.MarkDeleted(attachment)
	return sess.Commit(ctx)
}

// CreateDeviceProperty adds a measured property to a device.
func CreateDeviceProperty(
	ctx context.Context,
	deviceID int64,
	request models.CreateDevicePropertyRequest,
) (propertyID int64, err error) {
	dropFromEntityCache("device", deviceID)

	sess, err := sessions.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer func() {
		_ = sess.Rollback(ctx)
	}()

	device, err := loadDevice(ctx, sess.Tx(), deviceID)
	if err != nil {
		return 0, err
	}

	property := &datamodel.DeviceProperty{
		Label:             request.Label,
		PropertyName:      request.PropertyName,
		PropertyURI:       request.PropertyURI,
		UnitName:          request.UnitName,
		UnitURI:           request.UnitURI,
		CompartmentName:   request.CompartmentName,
		SamplingMediaName: request.SamplingMediaName,
		Resolution:        request.Resolution,
		ResolutionUnit:    request.ResolutionUnit,
		AccuracyUnit:      request.AccuracyUnit,
		Device:            device,
	}

	sqlStatement := `INSERT INTO device_property
		(device_id, label, property_name, property_uri, unit_name, unit_uri,
		 compartment_name, sampling_media_name, resolution, resolution_unit, accuracy_unit)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11) RETURNING id`
	err = sess.Tx().QueryRow(ctx, sqlStatement,
		deviceID, property.Label, property.PropertyName, property.PropertyURI,
		property.UnitName, property.UnitURI, property.CompartmentName,
		property.SamplingMediaName, property.Resolution, property.ResolutionUnit,
		property.AccuracyUnit,
	).Scan(&property.ID)
	if err != nil {
		database.ErrorHandling(sqlStatement, err, false)
		return 0, err
	}

	device.Properties = append(device.Properties, property)
	sess.MarkCreated(property)
	if err = sess.Commit(ctx); err != nil {
		return 0, err
	}
	return property.ID, nil
}

// DeleteDeviceProperty removes a measured property.
func DeleteDeviceProperty(ctx context.Context, deviceID int64, propertyID int64) (err error) {
	dropFromEntityCache("device", deviceID)

	sess, err := sessions.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = sess.Rollback(ctx)
	}()

	device, err := loadDevice(ctx, sess.Tx(), deviceID)
	if err != nil {
		return err
	}

	var property *datamodel.DeviceProperty
	remaining := device.Properties[:0]
	for _, candidate := range device.Properties {
		if candidate.ID == propertyID {
			property = candidate
			continue
		}
		remaining = append(remaining, candidate)
	}
	if property == nil {
		return ErrNotFound
	}
	device.Properties = remaining

	sqlStatement := `DELETE FROM device_property WHERE id = $2 AND device_id = $1`
	if _, err = sess.Tx().Exec(ctx, sqlStatement, deviceID, propertyID); err != nil {
		database.ErrorHandling(sqlStatement, err, false)
		return err
	}

	sess.MarkDeleted(property)
	return sess.Commit(ctx)
}

// CreateDeviceParameter adds a parameter to a device.
func CreateDeviceParameter(
	ctx context.Context,
	deviceID int64,
	request models.CreateParameterRequest,
) (parameterID int64, err error) {
	dropFromEntityCache("device", deviceID)

	sess, err := sessions.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer func() {
		_ = sess.Rollback(ctx)
	}()

	device, err := loadDevice(ctx, sess.Tx(), deviceID)
	if err != nil {
		return 0, err
	}

	parameter := &datamodel.DeviceParameter{
		Parameter: datamodel.Parameter{
			Label:       request.Label,
			Description: request.Description,
			UnitName:    request.UnitName,
			UnitURI:     request.UnitURI,
		},
		Device: device,
	}

	sqlStatement := `INSERT INTO device_parameter (device_id, label, description, unit_name, unit_uri)
		VALUES ($1, $2, $3, $4, $5) RETURNING id`
	err = sess.Tx().QueryRow(ctx, sqlStatement,
		deviceID, parameter.Label, parameter.Description, parameter.UnitName, parameter.UnitURI,
	).Scan(&parameter.ID)
	if err != nil {
		database.ErrorHandling(sqlStatement, err, false)
		return 0, err
	}

	device.Parameters = append(device.Parameters, parameter)
	sess.MarkCreated(parameter)
	if err = sess.Commit(ctx); err != nil {
		return 0, err
	}
	return parameter.ID, nil
}

// DeleteDeviceParameter removes a parameter.
func DeleteDeviceParameter(ctx context.Context, deviceID int64, parameterID int64) (err error) {
	dropFromEntityCache("device", deviceID)

	sess, err := sessions.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = sess.Rollback(ctx)
	}()

	device, err := loadDevice(ctx, sess.Tx(), deviceID)
	if err != nil {
		return err
	}

	var parameter *datamodel.DeviceParameter
	remaining := device.Parameters[:0]
	for _, candidate := range device.Parameters {
		if candidate.ID == parameterID {
			parameter = candidate
			continue
		}
		remaining = append(remaining, candidate)
	}
	if parameter == nil {
		return ErrNotFound
	}
	device.Parameters = remaining

	sqlStatement := `DELETE FROM device_parameter WHERE id = $2 AND device_id = $1`
	if _, err = sess.Tx().Exec(ctx, sqlStatement, deviceID, parameterID); err != nil {
		database.ErrorHandling(sqlStatement, err, false)
		return err
	}

	sess.MarkDeleted(parameter)
	return sess.Commit(ctx)
}

// CreateDeviceCustomField adds a free key/value pair to a device.
func CreateDeviceCustomField(
	ctx context.Context,
	deviceID int64,
	request models.CreateCustomFieldRequest,
) (fieldID int64, err error) {
	dropFromEntityCache("device", deviceID)

	sess, err := sessions.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer func() {
		_ = sess.Rollback(ctx)
	}()

	device, err := loadDevice(ctx, sess.Tx(), deviceID)
	if err != nil {
		return 0, err
	}

	field := &datamodel.CustomField{
		Key:    request.Key,
		Value:  request.Value,
		Device: device,
	}

	sqlStatement := `INSERT INTO customfield (device_id, key, value) VALUES ($1, $2, $3) RETURNING id`
	err = sess.Tx().QueryRow(ctx, sqlStatement, deviceID, field.Key, field.Value).Scan(&field.ID)
	if err != nil {
		database.ErrorHandling(sqlStatement, err, false)
		return 0, err
	}

	device.CustomFields = append(device.CustomFields, field)
	sess.MarkCreated(field)
	if err = sess.Commit(ctx); err != nil {
		return 0, err
	}
	return field.ID, nil
}

// DeleteDeviceCustomField removes a custom field.
func DeleteDeviceCustomField(ctx context.Context, deviceID int64, fieldID int64) (err error) {
	dropFromEntityCache("device", deviceID)

	sess, err := sessions.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = sess.Rollback(ctx)
	}()

	device, err := loadDevice(ctx, sess.Tx(), deviceID)
	if err != nil {
		return err
	}

	var field *datamodel.CustomField
	remaining := device.CustomFields[:0]
	for _, candidate := range device.CustomFields {
		if candidate.ID == fieldID {
			field = candidate
			continue
		}
		remaining = append(remaining, candidate)
	}
	if field == nil {
		return ErrNotFound
	}
	device.CustomFields = remaining

	sqlStatement := `DELETE FROM customfield WHERE id = $2 AND device_id = $1`
	if _, err = sess.Tx().Exec(ctx, sqlStatement, deviceID, fieldID); err != nil {
		database.ErrorHandling(sqlStatement, err, false)
		return err
	}

	sess.MarkDeleted(field)
	return sess.Commit(ctx)
}

// CreateDeviceContactRole links a contact to a device under a role name. Both
// the device and the contact documents are refreshed.
func CreateDeviceContactRole(
	ctx context.Context,
	deviceID int64,
	request models.CreateContactRoleRequest,
) (roleID int64, err error) {
	dropFromEntityCache("device", deviceID)
	dropFromEntityCache("contact", request.ContactID)

	sess, err := sessions.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer func() {
		_ = sess.Rollback(ctx)
	}()

	device, err := loadDevice(ctx, sess.Tx(), deviceID)
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
		Device:   device,
	}

	sqlStatement := `INSERT INTO contact_role (contact_id, device_id, role_name, role_uri)
		VALUES ($1, $2, $3, $4) RETURNING id`
	err = sess.Tx().QueryRow(ctx, sqlStatement,
		contact.ID, deviceID, role.RoleName, role.RoleURI,
	).Scan(&role.ID)
	if err != nil {
		database.ErrorHandling(sqlStatement, err, false)
		return 0, err
	}

	device.ContactRoles = append(device.ContactRoles, role)
	contact.Roles = append(contact.Roles, role)
	sess.MarkCreated(role)
	if err = sess.Commit(ctx); err != nil {
		return 0, err
	}
	return role.ID, nil
}

// DeleteDeviceContactRole unlinks a contact from a device.
func DeleteDeviceContactRole(ctx context.Context, deviceID int64, roleID int64) (err error) {
	dropFromEntityCache("device", deviceID)

	sess, err := sessions.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = sess.Rollback(ctx)
	}()

	device, err := loadDevice(ctx, sess.Tx(), deviceID)
	if err != nil {
		return err
	}

	var role *datamodel.ContactRole
	remaining := device.ContactRoles[:0]
	for _, candidate := range device.ContactRoles {
		if candidate.ID == roleID {
			role = candidate
			continue
		}
		remaining = append(remaining, candidate)
	}
	if role == nil {
		return ErrNotFound
	}
	device.ContactRoles = remaining
	if role.Contact != nil {
		dropFromEntityCache("contact", role.Contact.ID)
	}

	sqlStatement := `DELETE FROM contact_role WHERE id = $2 AND device_id = $1`
	if _, err = sess.Tx().Exec(ctx, sqlStatement, deviceID, roleID); err != nil {
		database.ErrorHandling(sqlStatement, err, false)
		return err
	}

	sess.MarkDeleted(role)
	return sess.Commit(ctx)
}

// CreateDeviceCalibration records a calibration action for a device.
func CreateDeviceCalibration(
	ctx context.Context,
	deviceID int64,
	request models.CreateDeviceCalibrationRequest,
) (calibrationID int64, err error) {
	dropFromEntityCache("device", deviceID)

	sess, err := sessions.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer func() {
		_ = sess.Rollback(ctx)
	}()

	device, err := loadDevice(ctx, sess.Tx(), deviceID)
	if err != nil {
		return 0, err
	}

	action := &datamodel.DeviceCalibrationAction{
		Description:            request.Description,
		Formula:                request.Formula,
		Value:                  request.Value,
		CurrentCalibrationDate: request.CurrentCalibrationDate,
		NextCalibrationDate:    request.NextCalibrationDate,
		Device:                 device,
	}

	sqlStatement := `INSERT INTO device_calibration_action
		(device_id, description, formula, value, current_calibration_date, next_calibration_date)
		VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	err = sess.Tx().QueryRow(ctx, sqlStatement,
		deviceID, action.Description, action.Formula, action.Value,
		action.CurrentCalibrationDate, action.NextCalibrationDate,
	).Scan(&action.ID)
	if err != nil {
		database.ErrorHandling(sqlStatement, err, false)
		return 0, err
	}

	device.CalibrationActions = append(device.CalibrationActions, action)
	sess.MarkCreated(action)
	if err = sess.Commit(ctx); err != nil {
		return 0, err
	}
	return action.ID, nil
}

// DeleteDeviceCalibration removes a calibration action.
func DeleteDeviceCalibration(ctx context.Context, deviceID int64, calibrationID int64) (err error) {
	dropFromEntityCache("device", deviceID)

	sess, err := sessions.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = sess.Rollback(ctx)
	}()

	device, err := loadDevice(ctx, sess.Tx(), deviceID)
	if err != nil {
		return err
	}

	var action *datamodel.DeviceCalibrationAction
	remaining := device.CalibrationActions[:0]
	for _, candidate := range device.CalibrationActions {
		if candidate.ID == calibrationID {
			action = candidate
			continue
		}
		remaining = append(remaining, candidate)
	}
	if action == nil {
		return ErrNotFound
	}
	device.CalibrationActions = remaining

	sqlStatement := `DELETE FROM device_calibration_action WHERE id = $2 AND device_id = $1`
	if _, err = sess.Tx().Exec(ctx, sqlStatement, deviceID, calibrationID); err != nil {
		database.ErrorHandling(sqlStatement, err, false)
		return err
	}

	sess.MarkDeleted(action)
	return sess.Commit(ctx)
}

func findDeviceAttachment(device *datamodel.Device, attachmentID int64) *datamodel.DeviceAttachment {
	for _, attachment := range device.Attachments {
		if attachment.ID == attachmentID {
			return attachment
		}
	}
	return nil
}

func removeDeviceAttachment(
	attachments []*datamodel.DeviceAttachment,
	attachmentID int64,
) []*datamodel.DeviceAttachment {
	remaining := attachments[:0]
	for _, attachment := range attachments {
		if attachment.ID != attachmentID {
			remaining = append(remaining, attachment)
		}
	}
	return remaining
}

// loadDevice fetches a device with every sub-resource its index document
// embeds.
func loadDevice(ctx context.Context, tx pgx.Tx, deviceID int64) (*datamodel.Device, error) {
	device := &datamodel.Device{}

	sqlStatement := `SELECT id, short_name, long_name, serial_number, manufacturer_name, model,
		description, device_type_name, status_name, website, inventory_number, persistent_id,
		archived, created_at, updated_at
		FROM device WHERE id = $1`
	err := tx.QueryRow(ctx, sqlStatement, deviceID).Scan(
		&device.ID, &device.ShortName, &device.LongName, &device.SerialNumber,
		&device.ManufacturerName, &device.Model, &device.Description, &device.DeviceTypeName,
		&device.StatusName, &device.Website, &device.InventoryNumber, &device.PersistentID,
		&device.Archived, &device.CreatedAt, &device.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		database.ErrorHandling(sqlStatement, err, false)
		return nil, err
	}

	if err = loadDeviceAttachments(ctx, tx, device); err != nil {
		return nil, err
	}
	if err = loadDeviceProperties(ctx, tx, device); err != nil {
		return nil, err
	}
	if err = loadDeviceParameters(ctx, tx, device); err != nil {
		return nil, err
	}
	if err = loadDeviceCustomFields(ctx, tx, device); err != nil {
		return nil, err
	}
	if err = loadDeviceContactRoles(ctx, tx, device); err != nil {
		return nil, err
	}
	if err = loadDeviceCalibrations(ctx, tx, device); err != nil {
		return nil, err
	}
	return device, nil
}

func loadDeviceAttachments(ctx context.Context, tx pgx.Tx, device *datamodel.Device) error {
	sqlStatement := `SELECT id, label, url, description, is_internal
		FROM device_attachment WHERE device_id = $1 ORDER BY id`
	rows, err := tx.Query(ctx, sqlStatement, device.ID)
	if err != nil {
		database.ErrorHandling(sqlStatement, err, false)
		return err
	}
	defer rows.Close()

	for rows.Next() {
		attachment := &datamodel.DeviceAttachment{Device: device}
		if err = rows.Scan(&attachment.ID, &attachment.Label, &attachment.URL,
			&attachment.Description, &attachment.IsInternal); err != nil {
			database.ErrorHandling(sqlStatement, err, false)
			return err
		}
		device.Attachments = append(device.Attachments, attachment)
	}
	return rows.Err()
}

func loadDeviceProperties(ctx context.Context, tx pgx.Tx, device *datamodel.Device) error {
	sqlStatement := `SELECT id, label, property_name, property_uri, unit_name, unit_uri,
		compartment_name, sampling_media_name, resolution, resolution_unit, accuracy_unit
		FROM device_property WHERE device_id = $1 ORDER BY id`
	rows, err := tx.Query(ctx, sqlStatement, device.ID)
	if err != nil {
		database.ErrorHandling(sqlStatement, err, false)
		return err
	}
	defer rows.Close()

	for rows.Next() {
		property := &datamodel.DeviceProperty{Device: device}
		if err = rows.Scan(&property.ID, &property.Label, &property.PropertyName,
			&property.PropertyURI, &property.UnitName, &property.UnitURI,
			&property.CompartmentName, &property.SamplingMediaName, &property.Resolution,
			&property.ResolutionUnit, &property.AccuracyUnit); err != nil {
			database.ErrorHandling(sqlStatement, err, false)
			return err
		}
		device.Properties = append(device.Properties, property)
	}
	return rows.Err()
}

func loadDeviceParameters(ctx context.Context, tx pgx.Tx, device *datamodel.Device) error {
	sqlStatement := `SELECT id, label, description, unit_name, unit_uri
		FROM device_parameter WHERE device_id = $1 ORDER BY id`
	rows, err := tx.Query(ctx, sqlStatement, device.ID)
	if err != nil {
		database.ErrorHandling(sqlStatement, err, false)
		return err
	}
	defer rows.Close()

	for rows.Next() {
		parameter := &datamodel.DeviceParameter{Device: device}
		if err = rows.Scan(&parameter.ID, &parameter.Label, &parameter.Description,
			&parameter.UnitName, &parameter.UnitURI); err != nil {
			database.ErrorHandling(sqlStatement, err, false)
			return err
		}
		device.Parameters = append(device.Parameters, parameter)
	}
	return rows.Err()
}

func loadDeviceCustomFields(ctx context.Context, tx pgx.Tx, device *datamodel.Device) error {
	sqlStatement := `SELECT id, key, value FROM customfield WHERE device_id = $1 ORDER BY id`
	rows, err := tx.Query(ctx, sqlStatement, device.ID)
	if err != nil {
		database.ErrorHandling(sqlStatement, err, false)
		return err
	}
	defer rows.Close()

	for rows.Next() {
		field := &datamodel.CustomField{Device: device}
		if err = rows.Scan(&field.ID, &field.Key, &field.Value); err != nil {
			database.ErrorHandling(sqlStatement, err, false)
			return err
		}
		device.CustomFields = append(device.CustomFields, field)
	}
	return rows.Err()
}

func loadDeviceContactRoles(ctx context.Context, tx pgx.Tx, device *datamodel.Device) error {
	roles, err := loadContactRolesFor(ctx, tx, "device_id", device.ID)
	if err != nil {
		return err
	}
	for _, role := range roles {
		role.Device = device
	}
	device.ContactRoles = roles
	return nil
}

func loadDeviceCalibrations(ctx context.Context, tx pgx.Tx, device *datamodel.Device) error {
	sqlStatement := `SELECT id, description, formula, value, current_calibration_date, next_calibration_date
		FROM device_calibration_action WHERE device_id = $1 ORDER BY id`
	rows, err := tx.Query(ctx, sqlStatement, device.ID)
	if err != nil {
		database.ErrorHandling(sqlStatement, err, false)
		return err
	}
	defer rows.Close()

	for rows.Next() {
		action := &datamodel.DeviceCalibrationAction{Device: device}
		if err = rows.Scan(&action.ID, &action.Description, &action.Formula, &action.Value,
			&action.CurrentCalibrationDate, &action.NextCalibrationDate); err != nil {
			database.ErrorHandling(sqlStatement, err, false)
			return err
		}
		device.CalibrationActions = append(device.CalibrationActions, action)
	}
	return rows.Err()
}

func applyString(target *string, value *string) {
	if value != nil {
		*target = *value
	}
}

func applyBool(target *bool, value *bool) {
	if value != nil {
		*target = *value
	}
}
