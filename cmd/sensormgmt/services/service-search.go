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
	"strconv"
	"time"

	"github.com/goccy/go-json"
	"github.com/sensorhub/sensor-management-system/cmd/sensormgmt/database"
	"github.com/sensorhub/sensor-management-system/cmd/sensormgmt/models"
	"github.com/sensorhub/sensor-management-system/internal"
	"github.com/sensorhub/sensor-management-system/pkg/search"
	"go.uber.org/zap"
)

const searchCacheExpiration = time.Minute

// SearchEntities runs a full-text query against one type's index, then
// re-fetches the matching rows from the relational store in exactly the
// order the index ranked them. The index decides which ids match and how
// they rank; the database is authoritative for record content.
func SearchEntities(
	ctx context.Context,
	typeName string,
	query models.SearchQuery,
) (response models.SearchResponse, err error) {
	if !registry.Capabilities(typeName).Direct() {
		return response, search.ErrUnknownIndex
	}

	cacheKey := searchCacheKey(typeName, query)
	if cached, value := internal.GetTiered(cacheKey); cached {
		if raw, ok := value.([]byte); ok {
			if err = json.Unmarshal(raw, &response); err == nil {
				return response, nil
			}
			// Fall through to a fresh query on a corrupt cache entry.
			zap.S().Warnf("[SearchEntities] Dropping corrupt cache entry for %s", typeName)
		}
	}

	var ordering []string
	if query.Ordering != "" {
		ordering = []string{query.Ordering}
	}

	ids, total, err := store.Query(ctx, typeName, query.Search, query.PageNumber, query.PageSize, ordering)
	if err != nil {
		return response, err
	}

	response.Total = total
	response.Hits = make([]interface{}, 0, len(ids))
	if len(ids) == 0 {
		return response, nil
	}

	hits, err := fetchInIndexOrder(ctx, typeName, ids)
	if err != nil {
		return response, err
	}
	response.Hits = hits

	if raw, marshalErr := json.Marshal(response); marshalErr == nil {
		internal.SetTiered(cacheKey, raw, searchCacheExpiration)
	}
	return response, nil
}

func searchCacheKey(typeName string, query models.SearchQuery) string {
	return string(internal.AsXXHash(
		[]byte(typeName),
		[]byte(query.Search),
		[]byte(strconv.Itoa(query.PageNumber)),
		[]byte(strconv.Itoa(query.PageSize)),
		[]byte(query.Ordering),
	))
}

// fetchInIndexOrder re-fetches the given rows preserving the index ranking
// with an ORDER BY CASE clause. typeName doubles as the table name; it has
// been validated against the registry, never against user input.
func fetchInIndexOrder(ctx context.Context, typeName string, ids []string) ([]interface{}, error) {
	orderClause, err := orderByIDCase(ids)
	if err != nil {
		return nil, err
	}

	tx, err := database.Db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	sqlStatement := fmt.Sprintf(
		`SELECT * FROM %s WHERE id IN (%s) %s`,
		typeName, idList(ids), orderClause)
	rows, err := tx.Query(ctx, sqlStatement)
	if err != nil {
		database.ErrorHandling(sqlStatement, err, false)
		return nil, err
	}
	defer rows.Close()

	columns := rows.FieldDescriptions()
	var hits []interface{}
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			database.ErrorHandling(sqlStatement, err, false)
			return nil, err
		}
		hit := make(map[string]interface{}, len(columns))
		for i, column := range columns {
			hit[column.Name] = values[i]
		}
		hits = append(hits, hit)
	}
	return hits, rows.Err()
}
