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
	"testing"

	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sensorhub/sensor-management-system/cmd/sensormgmt/database"
	"github.com/sensorhub/sensor-management-system/internal"
	"github.com/sensorhub/sensor-management-system/pkg/datamodel"
	"github.com/sensorhub/sensor-management-system/pkg/search"
	"github.com/sensorhub/sensor-management-system/pkg/session"
)

// setupServices wires the service layer to a pgxmock pool and an in-memory
// search index. The mock doubles as database.Db for the read paths.
func setupServices(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)

	internal.InitMemcache()

	searchRegistry := search.NewRegistry()
	require.NoError(t, datamodel.RegisterSearchTypes(searchRegistry))

	searchStore := search.NewStore("")
	require.NoError(t, searchStore.Open(searchRegistry))
	t.Cleanup(func() {
		assert.NoError(t, searchStore.Close())
	})

	factory := session.NewFactory(mock, search.NewSynchronizer(searchRegistry, searchStore))
	Setup(factory, searchStore, searchRegistry)

	database.Db = mock
	return mock
}

func TestOrderByIDCasePreservesRanking(t *testing.T) {
	clause, err := orderByIDCase([]string{"7", "3", "12"})
	require.NoError(t, err)
	assert.Equal(t, "ORDER BY CASE id WHEN 7 THEN 0 WHEN 3 THEN 1 WHEN 12 THEN 2 END", clause)
}

func TestOrderByIDCaseRejectsNonNumericIDs(t *testing.T) {
	_, err := orderByIDCase([]string{"7", "7; DROP TABLE device"})
	assert.Error(t, err)
}

func TestOrderByIDCaseRequiresIDs(t *testing.T) {
	_, err := orderByIDCase(nil)
	assert.Error(t, err)
}

func TestIDList(t *testing.T) {
	assert.Equal(t, "7, 3, 12", idList([]string{"7", "3", "12"}))
}
