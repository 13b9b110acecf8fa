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
)

func CreateContactHandler(c *gin.Context) {
	var request models.CreateContactRequest
	if err := c.BindJSON(&request); err != nil {
		helpers.HandleInvalidInputError(c, err)
		return
	}

	contactID, err := services.CreateContact(c.Request.Context(), request)
	if err != nil {
		helpers.HandleInternalServerError(c, err)
		return
	}
	c.JSON(http.StatusCreated, models.IDResponse{ID: contactID})
}

func GetContactHandler(c *gin.Context) {
	var request models.GetContactRequest
	if err := c.BindUri(&request); err != nil {
		helpers.HandleInvalidInputError(c, err)
		return
	}

	contact, err := services.GetContact(c.Request.Context(), request.ContactID)
	if errors.Is(err, services.ErrNotFound) {
		helpers.HandleNotFound(c, "contact", request.ContactID)
		return
	} else if err != nil {
		helpers.HandleInternalServerError(c, err)
		return
	}
	c.JSON(http.StatusOK, contact)
}

func UpdateContactHandler(c *gin.Context) {
	var request models.GetContactRequest
	if err := c.BindUri(&request); err != nil {
		helpers.HandleInvalidInputError(c, err)
		return
	}
	var body models.UpdateContactRequest
	if err := c.BindJSON(&body); err != nil {
		helpers.HandleInvalidInputError(c, err)
		return
	}

	err := services.UpdateContact(c.Request.Context(), request.ContactID, body)
	if errors.Is(err, services.ErrNotFound) {
		helpers.HandleNotFound(c, "contact", request.ContactID)
		return
	} else if err != nil {
		helpers.HandleInternalServerError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func DeleteContactHandler(c *gin.Context) {
	var request models.GetContactRequest
	if err := c.BindUri(&request); err != nil {
		helpers.HandleInvalidInputError(c, err)
		return
	}

	err := services.DeleteContact(c.Request.Context(), request.ContactID)
	if errors.Is(err, services.ErrNotFound) {
		helpers.HandleNotFound(c, "contact", request.ContactID)
		return
	} else if err != nil {
		helpers.HandleInternalServerError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
