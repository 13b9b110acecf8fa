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

// CreateContact inserts a new contact and registers it for indexing.
func CreateContact(ctx context.Context, request models.CreateContactRequest) (contactID int64, err error) {
	zap.S().Infof("[CreateContact] Creating contact %s", request.Email)

	sess, err := sessions.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer func() {
		_ = sess.Rollback(ctx)
	}()

	contact := &datamodel.Contact{
		GivenName:    request.GivenName,
		FamilyName:   request.FamilyName,
		Email:        request.Email,
		Website:      request.Website,
		Organization: request.Organization,
		Orcid:        request.Orcid,
		Active:       true,
	}

	sqlStatement := `INSERT INTO contact (given_name, family_name, email, website, organization, orcid, active)
		VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`
	err = sess.Tx().QueryRow(ctx, sqlStatement,
		contact.GivenName, contact.FamilyName, contact.Email, contact.Website,
		contact.Organization, contact.Orcid, contact.Active,
	).Scan(&contact.ID)
	if err != nil {
		database.ErrorHandling(sqlStatement, err, false)
		return 0, err
	}

	sess.MarkCreated(contact)
	if err = sess.Commit(ctx); err != nil {
		return 0, err
	}
	return contact.ID, nil
}

// GetContact returns a contact with its role assignments.
func GetContact(ctx context.Context, contactID int64) (*datamodel.Contact, error) {
	if cached, ok := entityCache.Get(entityCacheKey("contact", contactID)); ok {
		return cached.(*datamodel.Contact), nil
	}

	tx, err := database.Db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	contact, err := loadContactRow(ctx, tx, contactID)
	if err != nil {
		return nil, err
	}
	if err = loadContactRoles(ctx, tx, contact); err != nil {
		return nil, err
	}

	entityCache.Add(entityCacheKey("contact", contactID), contact)
	return contact, nil
}

// UpdateContact applies a partial update. Because contact data is embedded in
// the documents of every entity the contact holds a role for, all of those
// owners are loaded in full and their documents refreshed.
func UpdateContact(ctx context.Context, contactID int64, request models.UpdateContactRequest) (err error) {
	zap.S().Infof("[UpdateContact] Updating contact %d", contactID)
	dropFromEntityCache("contact", contactID)

	sess, err := sessions.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = sess.Rollback(ctx)
	}()

	contact, err := loadContact(ctx, sess.Tx(), contactID)
	if err != nil {
		return err
	}
	for _, role := range contact.Roles {
		if owner := role.Owner(); owner != nil {
			dropFromEntityCache(owner.SearchType(), ownerID(role))
		}
	}

	applyString(&contact.GivenName, request.GivenName)
	applyString(&contact.FamilyName, request.FamilyName)
	applyString(&contact.Email, request.Email)
	applyString(&contact.Website, request.Website)
	applyString(&contact.Organization, request.Organization)
	applyString(&contact.Orcid, request.Orcid)
	applyBool(&contact.Active, request.Active)

	sqlStatement := `UPDATE contact SET given_name = $2, family_name = $3, email = $4,
		website = $5, organization = $6, orcid = $7, active = $8 WHERE id = $1`
	if _, err = sess.Tx().Exec(ctx, sqlStatement, contact.ID,
		contact.GivenName, contact.FamilyName, contact.Email, contact.Website,
		contact.Organization, contact.Orcid, contact.Active); err != nil {
		database.ErrorHandling(sqlStatement, err, false)
		return err
	}

	sess.MarkUpdated(contact)
	return sess.Commit(ctx)
}

// DeleteContact removes the contact, its roles and its index document. Owner
// documents are refreshed without the contact.
func DeleteContact(ctx context.Context, contactID int64) (err error) {
	zap.S().Infof("[DeleteContact] Deleting contact %d", contactID)
	dropFromEntityCache("contact", contactID)

	sess, err := sessions.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = sess.Rollback(ctx)
	}()

	contact, err := loadContact(ctx, sess.Tx(), contactID)
	if err != nil {
		return err
	}

	// Detach the roles from their owners so the refreshed owner documents no
	// longer embed the contact.
	for _, role := range contact.Roles {
		if owner := role.Owner(); owner != nil {
			dropFromEntityCache(owner.SearchType(), ownerID(role))
		}
		detachRoleFromOwner(role)
	}

	sqlStatement := `DELETE FROM contact WHERE id = $1`
	if _, err = sess.Tx().Exec(ctx, sqlStatement, contactID); err != nil {
		database.ErrorHandling(sqlStatement, err, false)
		return err
	}

	sess.MarkDeleted(contact)
	return sess.Commit(ctx)
}

func ownerID(role *datamodel.ContactRole) int64 {
	switch {
	case role.Device != nil:
		return role.Device.ID
	case role.Platform != nil:
		return role.Platform.ID
	case role.Configuration != nil:
		return role.Configuration.ID
	case role.Site != nil:
		return role.Site.ID
	}
	return 0
}

func detachRoleFromOwner(role *datamodel.ContactRole) {
	switch {
	case role.Device != nil:
		role.Device.ContactRoles = removeRole(role.Device.ContactRoles, role.ID)
	case role.Platform != nil:
		role.Platform.ContactRoles = removeRole(role.Platform.ContactRoles, role.ID)
	case role.Configuration != nil:
		role.Configuration.ContactRoles = removeRole(role.Configuration.ContactRoles, role.ID)
	case role.Site != nil:
		role.Site.ContactRoles = removeRole(role.Site.ContactRoles, role.ID)
	}
}

func removeRole(roles []*datamodel.ContactRole, roleID int64) []*datamodel.ContactRole {
	remaining := roles[:0]
	for _, role := range roles {
		if role.ID != roleID {
			remaining = append(remaining, role)
		}
	}
	return remaining
}

// loadContactRow fetches the bare contact record without role assignments.
func loadContactRow(ctx context.Context, tx pgx.Tx, contactID int64) (*datamodel.Contact, error) {
	contact := &datamodel.Contact{}

	sqlStatement := `SELECT id, given_name, family_name, email, website, organization, orcid, active
		FROM contact WHERE id = $1`
	err := tx.QueryRow(ctx, sqlStatement, contactID).Scan(
		&contact.ID, &contact.GivenName, &contact.FamilyName, &contact.Email,
		&contact.Website, &contact.Organization, &contact.Orcid, &contact.Active)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		database.ErrorHandling(sqlStatement, err, false)
		return nil, err
	}
	return contact, nil
}

// loadContact fetches a contact together with its roles and their fully
// loaded owners. The owners are needed because their index documents embed
// the contact and must be re-rendered when the contact changes.
func loadContact(ctx context.Context, tx pgx.Tx, contactID int64) (*datamodel.Contact, error) {
	contact, err := loadContactRow(ctx, tx, contactID)
	if err != nil {
		return nil, err
	}

	sqlStatement := `SELECT id, role_name, role_uri, device_id, platform_id, configuration_id, site_id
		FROM contact_role WHERE contact_id = $1 ORDER BY id`
	rows, err := tx.Query(ctx, sqlStatement, contactID)
	if err != nil {
		database.ErrorHandling(sqlStatement, err, false)
		return nil, err
	}

	type roleRow struct {
		role            *datamodel.ContactRole
		deviceID        *int64
		platformID      *int64
		configurationID *int64
		siteID          *int64
	}
	var roleRows []roleRow
	for rows.Next() {
		rr := roleRow{role: &datamodel.ContactRole{Contact: contact}}
		if err = rows.Scan(&rr.role.ID, &rr.role.RoleName, &rr.role.RoleURI,
			&rr.deviceID, &rr.platformID, &rr.configurationID, &rr.siteID); err != nil {
			rows.Close()
			database.ErrorHandling(sqlStatement, err, false)
			return nil, err
		}
		roleRows = append(roleRows, rr)
	}
	rows.Close()
	if err = rows.Err(); err != nil {
		return nil, err
	}

	devices := map[int64]*datamodel.Device{}
	platforms := map[int64]*datamodel.Platform{}
	configurations := map[int64]*datamodel.Configuration{}
	sites := map[int64]*datamodel.Site{}

	for _, rr := range roleRows {
		switch {
		case rr.deviceID != nil:
			owner, ok := devices[*rr.deviceID]
			if !ok {
				if owner, err = loadDevice(ctx, tx, *rr.deviceID); err != nil {
					return nil, err
				}
				devices[*rr.deviceID] = owner
			}
			rr.role.Device = owner
		case rr.platformID != nil:
			owner, ok := platforms[*rr.platformID]
			if !ok {
				if owner, err = loadPlatform(ctx, tx, *rr.platformID); err != nil {
					return nil, err
				}
				platforms[*rr.platformID] = owner
			}
			rr.role.Platform = owner
		case rr.configurationID != nil:
			owner, ok := configurations[*rr.configurationID]
			if !ok {
				if owner, err = loadConfiguration(ctx, tx, *rr.configurationID); err != nil {
					return nil, err
				}
				configurations[*rr.configurationID] = owner
			}
			rr.role.Configuration = owner
		case rr.siteID != nil:
			owner, ok := sites[*rr.siteID]
			if !ok {
				if owner, err = loadSite(ctx, tx, *rr.siteID); err != nil {
					return nil, err
				}
				sites[*rr.siteID] = owner
			}
			rr.role.Site = owner
		}
		contact.Roles = append(contact.Roles, rr.role)
	}

	// The owner loaders scan their own contact copies from the role join.
	// Repoint those at the canonical object, otherwise a later mutation of the
	// contact would not show up in the re-rendered owner documents.
	for _, owner := range devices {
		adoptContact(owner.ContactRoles, contact)
	}
	for _, owner := range platforms {
		adoptContact(owner.ContactRoles, contact)
	}
	for _, owner := range configurations {
		adoptContact(owner.ContactRoles, contact)
	}
	for _, owner := range sites {
		adoptContact(owner.ContactRoles, contact)
	}
	return contact, nil
}

func adoptContact(roles []*datamodel.ContactRole, contact *datamodel.Contact) {
	for _, role := range roles {
		if role.Contact != nil && role.Contact.ID == contact.ID {
			role.Contact = contact
		}
	}
}

// loadContactRoles fetches role assignments without loading the owners in
// full. Sufficient for read responses.
func loadContactRoles(ctx context.Context, tx pgx.Tx, contact *datamodel.Contact) error {
	sqlStatement := `SELECT id, role_name, role_uri FROM contact_role WHERE contact_id = $1 ORDER BY id`
	rows, err := tx.Query(ctx, sqlStatement, contact.ID)
	if err != nil {
		database.ErrorHandling(sqlStatement, err, false)
		return err
	}
	defer rows.Close()

	for rows.Next() {
		role := &datamodel.ContactRole{Contact: contact}
		if err = rows.Scan(&role.ID, &role.RoleName, &role.RoleURI); err != nil {
			database.ErrorHandling(sqlStatement, err, false)
			return err
		}
		contact.Roles = append(contact.Roles, role)
	}
	return rows.Err()
}

// loadContactRolesFor fetches the roles attached to one owner row, with the
// contact record joined in.
func loadContactRolesFor(
	ctx context.Context,
	tx pgx.Tx,
	ownerColumn string,
	ownerRowID int64,
) ([]*datamodel.ContactRole, error) {
	sqlStatement := `SELECT r.id, r.role_name, r.role_uri,
		c.id, c.given_name, c.family_name, c.email, c.website, c.organization, c.orcid, c.active
		FROM contact_role r JOIN contact c ON c.id = r.contact_id
		WHERE r.` + ownerColumn + ` = $1 ORDER BY r.id`
	rows, err := tx.Query(ctx, sqlStatement, ownerRowID)
	if err != nil {
		database.ErrorHandling(sqlStatement, err, false)
		return nil, err
	}
	defer rows.Close()

	var roles []*datamodel.ContactRole
	for rows.Next() {
		role := &datamodel.ContactRole{Contact: &datamodel.Contact{}}
		if err = rows.Scan(&role.ID, &role.RoleName, &role.RoleURI,
			&role.Contact.ID, &role.Contact.GivenName, &role.Contact.FamilyName,
			&role.Contact.Email, &role.Contact.Website, &role.Contact.Organization,
			&role.Contact.Orcid, &role.Contact.Active); err != nil {
			database.ErrorHandling(sqlStatement, err, false)
			return nil, err
		}
		roles = append(roles, role)
	}
	return roles, rows.Err()
}
