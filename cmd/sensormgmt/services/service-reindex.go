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
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/sensorhub/sensor-management-system/cmd/sensormgmt/database"
	"github.com/sensorhub/sensor-management-system/pkg/search"
	"go.uber.org/zap"
)

// Reindex drops and rebuilds one type's index from the relational store.
// Intended for admin use after index corruption or mapping changes.
func Reindex(ctx context.Context, typeName string) (indexed int, err error) {
	zap.S().Infof("[Reindex] Rebuilding index %s", typeName)

	definition, ok := registry.Definition(typeName)
	if !ok || !registry.Capabilities(typeName).Direct() {
		return 0, search.ErrUnknownIndex
	}

	if err = store.RecreateIndex(typeName, definition); err != nil {
		return 0, err
	}

	tx, err := database.Db.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	// typeName doubles as the table name for every direct type.
	sqlStatement := fmt.Sprintf(`SELECT id FROM %s ORDER BY id`, typeName)
	rows, err := tx.Query(ctx, sqlStatement)
	if err != nil {
		database.ErrorHandling(sqlStatement, err, false)
		return 0, err
	}

	var ids []int64
	for rows.Next() {
		var id int64
		if err = rows.Scan(&id); err != nil {
			rows.Close()
			database.ErrorHandling(sqlStatement, err, false)
			return 0, err
		}
		ids = append(ids, id)
	}
	rows.Close()
	if err = rows.Err(); err != nil {
		return 0, err
	}

	for _, id := range ids {
		entity, err := loadDirect(ctx, tx, typeName, id)
		if err != nil {
			return indexed, err
		}
		if err = store.AddOrUpdate(ctx, typeName, entity.SearchID(), entity.SearchEntry()); err != nil {
			return indexed, err
		}
		indexed++
	}

	zap.S().Infof("[Reindex] Rebuilt index %s with %d documents", typeName, indexed)
	return indexed, nil
}

func loadDirect(ctx context.Context, tx pgx.Tx, typeName string, id int64) (search.Direct, error) {
	switch typeName {
	case "device":
		return loadDevice(ctx, tx, id)
	case "platform":
		return loadPlatform(ctx, tx, id)
	case "configuration":
		return loadConfiguration(ctx, tx, id)
	case "site":
		return loadSite(ctx, tx, id)
	case "contact":
		return loadContactRow(ctx, tx, id)
	}
	return nil, search.ErrUnknownIndex
}
