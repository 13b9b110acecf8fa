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
	lru "github.com/hashicorp/golang-lru"
	"github.com/sensorhub/sensor-management-system/pkg/search"
	"github.com/sensorhub/sensor-management-system/pkg/session"
	"go.uber.org/zap"
)

const entityCacheSize = 1024

var (
	sessions *session.Factory
	store    *search.Store
	registry *search.Registry

	// entityCache holds rendered single-entity responses keyed by a hash of
	// type and id. Entries are dropped on every write to that entity.
	entityCache *lru.ARCCache
)

// Setup wires the service layer to its collaborators. Must be called once
// before any service function.
func Setup(factory *session.Factory, searchStore *search.Store, searchRegistry *search.Registry) {
	sessions = factory
	store = searchStore
	registry = searchRegistry

	var err error
	entityCache, err = lru.NewARC(entityCacheSize)
	if err != nil {
		zap.S().Fatalf("Failed to create entity cache: %s", err)
	}
}
