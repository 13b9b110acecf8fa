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
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/sensorhub/sensor-management-system/internal"
)

// ErrNotFound is returned when the requested record does not exist.
var ErrNotFound = errors.New("record not found")

func entityCacheKey(typeName string, id int64) string {
	return string(internal.AsXXHash([]byte(typeName), []byte(strconv.FormatInt(id, 10))))
}

func dropFromEntityCache(typeName string, id int64) {
	if entityCache != nil {
		entityCache.Remove(entityCacheKey(typeName, id))
	}
}

func notFoundOf(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

// orderByIDCase builds an ORDER BY clause that preserves the given id order,
// e.g. `ORDER BY CASE id WHEN 7 THEN 0 WHEN 3 THEN 1 END`. Every id must be
// numeric; the ids come from the search index and are never interpolated from
// user input, but the check keeps the clause safe regardless.
func orderByIDCase(ids []string) (string, error) {
	if len(ids) == 0 {
		return "", errors.New("orderByIDCase: no ids")
	}

	var b strings.Builder
	b.WriteString("ORDER BY CASE id")
	for position, id := range ids {
		if _, err := strconv.ParseInt(id, 10, 64); err != nil {
			return "", fmt.Errorf("orderByIDCase: non-numeric id %q: %w", id, err)
		}
		fmt.Fprintf(&b, " WHEN %s THEN %d", id, position)
	}
	b.WriteString(" END")
	return b.String(), nil
}

func idList(ids []string) string {
	return strings.Join(ids, ", ")
}
