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

	"github.com/goccy/go-json"
	"github.com/jackc/pgx/v5"
	"github.com/sensorhub/sensor-management-system/cmd/sensormgmt/database"
	"github.com/sensorhub/sensor-management-system/cmd/sensormgmt/models"
	"github.com/sensorhub/sensor-management-system/pkg/datamodel"
	"go.uber.org/zap"
)

// CreateSite inserts a new site and registers it for indexing.
func CreateSite(ctx context.Context, request models.CreateSiteRequest) (siteID int64, err error) {
	zap.S().Infof("[CreateSite] Creating site %s", request.Label)

	sess, err := sessions.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer func() {
		_ = sess.Rollback(ctx)
	}()

	site := &datamodel.Site{
		Label:        request.Label,
		Description:  request.Description,
		UsageName:    request.UsageName,
		SiteTypeName: request.SiteTypeName,
		Street:       request.Street,
		StreetNumber: request.StreetNumber,
		City:         request.City,
		ZipCode:      request.ZipCode,
		Country:      request.Country,
		Building:     request.Building,
		Room:         request.Room,
		Geometry:     coordinatesOf(request.Geometry),
	}

	geometry, err := marshalGeometry(site.Geometry)
	if err != nil {
		return 0, err
	}

	sqlStatement := `INSERT INTO site
		(label, description, usage_name, site_type_name, street, street_number, city,
		 zip_code, country, building, room, geometry)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id, created_at, updated_at`
	err = sess.Tx().QueryRow(ctx, sqlStatement,
		site.Label, site.Description, site.UsageName, site.SiteTypeName, site.Street,
		site.StreetNumber, site.City, site.ZipCode, site.Country, site.Building, site.Room,
		geometry,
	).Scan(&site.ID, &site.CreatedAt, &site.UpdatedAt)
	if err != nil {
		database.ErrorHandling(sqlStatement, err, false)
		return 0, err
	}

	sess.MarkCreated(site)
	if err = sess.Commit(ctx); err != nil {
		return 0, err
	}
	return site.ID, nil
}

// GetSite returns a site with all its sub-resources.
func GetSite(ctx context.Context, siteID int64) (*datamodel.Site, error) {
	if cached, ok := entityCache.Get(entityCacheKey("site", siteID)); ok {
		return cached.(*datamodel.Site), nil
	}

	tx, err := database.Db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	site, err := loadSite(ctx, tx, siteID)
	if err != nil {
		return nil, err
	}

	entityCache.Add(entityCacheKey("site", siteID), site)
	return site, nil
}

// UpdateSite applies a partial update and refreshes the index document.
func UpdateSite(ctx context.Context, siteID int64, request models.UpdateSiteRequest) (err error) {
	zap.S().Infof("[UpdateSite] Updating site %d", siteID)
	dropFromEntityCache("site", siteID)

	sess, err := sessions.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = sess.Rollback(ctx)
	}()

	site, err := loadSite(ctx, sess.Tx(), siteID)
	if err != nil {
		return err
	}

	applyString(&site.Label, request.Label)
	applyString(&site.Description, request.Description)
	applyString(&site.UsageName, request.UsageName)
	applyString(&site.SiteTypeName, request.SiteTypeName)
	applyString(&site.Street, request.Street)
	applyString(&site.StreetNumber, request.StreetNumber)
	applyString(&site.City, request.City)
	applyString(&site.ZipCode, request.ZipCode)
	applyString(&site.Country, request.Country)
	applyString(&site.Building, request.Building)
	applyString(&site.Room, request.Room)
	applyBool(&site.Archived, request.Archived)
	if request.Geometry != nil {
		site.Geometry = coordinatesOf(request.Geometry)
	}

	geometry, err := marshalGeometry(site.Geometry)
	if err != nil {
		return err
	}

	sqlStatement := `UPDATE site SET
		label = $2, description = $3, usage_name = $4, site_type_name = $5, street = $6,
		street_number = $7, city = $8, zip_code = $9, country = $10, building = $11,
		room = $12, geometry = $13, archived = $14, updated_at = now()
		WHERE id = $1
		RETURNING updated_at`
	err = sess.Tx().QueryRow(ctx, sqlStatement, site.ID,
		site.Label, site.Description, site.UsageName, site.SiteTypeName, site.Street,
		site.StreetNumber, site.City, site.ZipCode, site.Country, site.Building, site.Room,
		geometry, site.Archived,
	).Scan(&site.UpdatedAt)
	if err != nil {
		database.ErrorHandling(sqlStatement, err, false)
		return err
	}

	sess.MarkUpdated(site)
	return sess.Commit(ctx)
}

// DeleteSite removes the site row and its index document.
func DeleteSite(ctx context.Context, siteID int64) (err error) {
	zap.S().Infof("[DeleteSite] Deleting site %d", siteID)
	dropFromEntityCache("site", siteID)

	sess, err := sessions.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = sess.Rollback(ctx)
	}()

	site, err := loadSite(ctx, sess.Tx(), siteID)
	if err != nil {
		return err
	}

	sqlStatement := `DELETE FROM site WHERE id = $1`
	if _, err = sess.Tx().Exec(ctx, sqlStatement, siteID); err != nil {
		database.ErrorHandling(sqlStatement, err, false)
		return err
	}

	sess.MarkDeleted(site)
	return sess.Commit(ctx)
}

// CreateSiteAttachment adds an attachment and refreshes the site document.
func CreateSiteAttachment(
	ctx context.Context,
	siteID int64,
	request models.CreateAttachmentRequest,
) (attachmentID int64, err error) {
	dropFromEntityCache("site", siteID)

	sess, err := sessions.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer func() {
		_ = sess.Rollback(ctx)
	}()

	site, err := loadSite(ctx, sess.Tx(), siteID)
	if err != nil {
		return 0, err
	}

	attachment := &datamodel.SiteAttachment{
		Attachment: datamodel.Attachment{
			Label:       request.Label,
			URL:         request.URL,
			Description: request.Description,
			IsInternal:  request.IsInternal,
		},
		Site: site,
	}

	sqlStatement := `INSERT INTO site_attachment (site_id, label, url, description, is_internal)
		VALUES ($1, $2, $3, $4, $5) RETURNING id`
	err = sess.Tx().QueryRow(ctx, sqlStatement,
		siteID, attachment.Label, attachment.URL, attachment.Description, attachment.IsInternal,
	).Scan(&attachment.ID)
	if err != nil {
		database.ErrorHandling(sqlStatement, err, false)
		return 0, err
	}

	site.Attachments = append(site.Attachments, attachment)
	sess.MarkCreated(attachment)
	if err = sess.Commit(ctx); err != nil {
		return 0, err
	}
	return attachment.ID, nil
}

// DeleteSiteAttachment removes an attachment.
func DeleteSiteAttachment(ctx context.Context, siteID int64, attachmentID int64) (err error) {
	dropFromEntityCache("site", siteID)

	sess, err := sessions.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = sess.Rollback(ctx)
	}()

	site, err := loadSite(ctx, sess.Tx(), siteID)
	if err != nil {
		return err
	}

	var attachment *datamodel.SiteAttachment
	remaining := site.Attachments[:0]
	for _, candidate := range site.Attachments {
		if candidate.ID == attachmentID {
			attachment = candidate
			continue
		}
		remaining = append(remaining, candidate)
	}
	if attachment == nil {
		return ErrNotFound
	}
	site.Attachments = remaining

	sqlStatement := `DELETE FROM site_attachment WHERE id = $2 AND site_id = $1`
	if _, err = sess.Tx().Exec(ctx, sqlStatement, siteID, attachmentID); err != nil {
		database.ErrorHandling(sqlStatement, err, false)
		return err
	}

	sess.MarkDeleted(attachment)
	return sess.Commit(ctx)
}

// CreateSiteContactRole links a contact to a site under a role name.
func CreateSiteContactRole(
	ctx context.Context,
	siteID int64,
	request models.CreateContactRoleRequest,
) (roleID int64, err error) {
	dropFromEntityCache("site", siteID)
	dropFromEntityCache("contact", request.ContactID)

	sess, err := sessions.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer func() {
		_ = sess.Rollback(ctx)
	}()

	site, err := loadSite(ctx, sess.Tx(), siteID)
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
		Site:     site,
	}

	sqlStatement := `INSERT INTO contact_role (contact_id, site_id, role_name, role_uri)
		VALUES ($1, $2, $3, $4) RETURNING id`
	err = sess.Tx().QueryRow(ctx, sqlStatement,
		contact.ID, siteID, role.RoleName, role.RoleURI,
	).Scan(&role.ID)
	if err != nil {
		database.ErrorHandling(sqlStatement, err, false)
		return 0, err
	}

	site.ContactRoles = append(site.ContactRoles, role)
	contact.Roles = append(contact.Roles, role)
	sess.MarkCreated(role)
	if err = sess.Commit(ctx); err != nil {
		return 0, err
	}
	return role.ID, nil
}

// DeleteSiteContactRole unlinks a contact from a site.
func DeleteSiteContactRole(ctx context.Context, siteID int64, roleID int64) (err error) {
	dropFromEntityCache("site", siteID)

	sess, err := sessions.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = sess.Rollback(ctx)
	}()

	site, err := loadSite(ctx, sess.Tx(), siteID)
	if err != nil {
		return err
	}

	var role *datamodel.ContactRole
	remaining := site.ContactRoles[:0]
	for _, candidate := range site.ContactRoles {
		if candidate.ID == roleID {
			role = candidate
			continue
		}
		remaining = append(remaining, candidate)
	}
	if role == nil {
		return ErrNotFound
	}
	site.ContactRoles = remaining
	if role.Contact != nil {
		dropFromEntityCache("contact", role.Contact.ID)
	}

	sqlStatement := `DELETE FROM contact_role WHERE id = $2 AND site_id = $1`
	if _, err = sess.Tx().Exec(ctx, sqlStatement, siteID, roleID); err != nil {
		database.ErrorHandling(sqlStatement, err, false)
		return err
	}

	sess.MarkDeleted(role)
	return sess.Commit(ctx)
}

func coordinatesOf(request []models.CoordinateRequest) []datamodel.Coordinate {
	coordinates := make([]datamodel.Coordinate, 0, len(request))
	for _, point := range request {
		coordinates = append(coordinates, datamodel.Coordinate{
			Longitude: point.Longitude,
			Latitude:  point.Latitude,
		})
	}
	return coordinates
}

func marshalGeometry(coordinates []datamodel.Coordinate) ([]byte, error) {
	if len(coordinates) == 0 {
		return nil, nil
	}
	return json.Marshal(coordinates)
}

// loadSite fetches a site with every sub-resource its index document embeds.
func loadSite(ctx context.Context, tx pgx.Tx, siteID int64) (*datamodel.Site, error) {
	site := &datamodel.Site{}
	var geometry []byte

	sqlStatement := `SELECT id, label, description, usage_name, site_type_name, street,
		street_number, city, zip_code, country, building, room, geometry, archived,
		created_at, updated_at
		FROM site WHERE id = $1`
	err := tx.QueryRow(ctx, sqlStatement, siteID).Scan(
		&site.ID, &site.Label, &site.Description, &site.UsageName, &site.SiteTypeName,
		&site.Street, &site.StreetNumber, &site.City, &site.ZipCode, &site.Country,
		&site.Building, &site.Room, &geometry, &site.Archived, &site.CreatedAt, &site.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		database.ErrorHandling(sqlStatement, err, false)
		return nil, err
	}
	if len(geometry) > 0 {
		if err = json.Unmarshal(geometry, &site.Geometry); err != nil {
			return nil, err
		}
	}

	sqlStatement = `SELECT id, label, url, description, is_internal
		FROM site_attachment WHERE site_id = $1 ORDER BY id`
	rows, err := tx.Query(ctx, sqlStatement, siteID)
	if err != nil {
		database.ErrorHandling(sqlStatement, err, false)
		return nil, err
	}
	for rows.Next() {
		attachment := &datamodel.SiteAttachment{Site: site}
		if err = rows.Scan(&attachment.ID, &attachment.Label, &attachment.URL,
			&attachment.Description, &attachment.IsInternal); err != nil {
			rows.Close()
			database.ErrorHandling(sqlStatement, err, false)
			return nil, err
		}
		site.Attachments = append(site.Attachments, attachment)
	}
	rows.Close()
	if err = rows.Err(); err != nil {
		return nil, err
	}

	roles, err := loadContactRolesFor(ctx, tx, "site_id", siteID)
	if err != nil {
		return nil, err
	}
	for _, role := range roles {
		role.Site = site
	}
	site.ContactRoles = roles

	return site, nil
}
