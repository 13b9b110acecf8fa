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

package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sensorhub/sensor-management-system/cmd/sensormgmt/helpers"
	"github.com/sensorhub/sensor-management-system/cmd/sensormgmt/models"
	"github.com/sensorhub/sensor-management-system/cmd/sensormgmt/services"
	"github.com/sensorhub/sensor-management-system/pkg/search"
)

func bindUris(c *gin.Context, targets ...any) error {
	for _, target := range targets {
		if err := c.ShouldBindUri(target); err != nil {
			return err
		}
	}
	return nil
}

// SearchHandler returns the list endpoint for one entity type. Without a
// search parameter it pages through all records; with one it runs a
// full-text query and returns records in index ranking order.
func SearchHandler(typeName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var query models.SearchQuery
		if err := c.ShouldBindQuery(&query); err != nil {
			helpers.HandleInvalidInputError(c, err)
			return
		}
		if query.PageNumber < 1 {
			query.PageNumber = 1
		}
		if query.PageSize < 1 {
			query.PageSize = search.DefaultPageSize
		}

		response, err := services.SearchEntities(c.Request.Context(), typeName, query)
		if errors.Is(err, search.ErrUnknownIndex) {
			helpers.HandleTypeNotFound(c, typeName)
			return
		} else if err != nil {
			helpers.HandleInternalServerError(c, err)
			return
		}
		c.JSON(http.StatusOK, response)
	}
}

// ReindexHandler rebuilds one type's index from the relational store.
func ReindexHandler(c *gin.Context) {
	var request models.ReindexRequest
	if err := c.BindUri(&request); err != nil {
		helpers.HandleInvalidInputError(c, err)
		return
	}

	indexed, err := services.Reindex(c.Request.Context(), request.Type)
	if errors.Is(err, search.ErrUnknownIndex) {
		helpers.HandleTypeNotFound(c, request.Type)
		return
	} else if err != nil {
		helpers.HandleInternalServerError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.ReindexResponse{Type: request.Type, Indexed: indexed})
}
