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

func CreateSiteHandler(c *gin.Context) {
	var request models.CreateSiteRequest
	if err := c.BindJSON(&request); err != nil {
		helpers.HandleInvalidInputError(c, err)
		return
	}

	siteID, err := services.CreateSite(c.Request.Context(), request)
	if err != nil {
		helpers.HandleInternalServerError(c, err)
		return
	}
	c.JSON(http.StatusCreated, models.IDResponse{ID: siteID})
}

func GetSiteHandler(c *gin.Context) {
	var request models.GetSiteRequest
	if err := c.BindUri(&request); err != nil {
		helpers.HandleInvalidInputError(c, err)
		return
	}

	site, err := services.GetSite(c.Request.Context(), request.SiteID)
	if errors.Is(err, services.ErrNotFound) {
		helpers.HandleNotFound(c, "site", request.SiteID)
		return
	} else if err != nil {
		helpers.HandleInternalServerError(c, err)
		return
	}
	c.JSON(http.StatusOK, site)
}

func UpdateSiteHandler(c *gin.Context) {
	var request models.GetSiteRequest
	if err := c.BindUri(&request); err != nil {
		helpers.HandleInvalidInputError(c, err)
		return
	}
	var body models.UpdateSiteRequest
	if err := c.BindJSON(&body); err != nil {
		helpers.HandleInvalidInputError(c, err)
		return
	}

	err := services.UpdateSite(c.Request.Context(), request.SiteID, body)
	if errors.Is(err, services.ErrNotFound) {
		helpers.HandleNotFound(c, "site", request.SiteID)
		return
	} else if err != nil {
		helpers.HandleInternalServerError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func DeleteSiteHandler(c *gin.Context) {
	var request models.GetSiteRequest
	if err := c.BindUri(&request); err != nil {
		helpers.HandleInvalidInputError(c, err)
		return
	}

	err := services.DeleteSite(c.Request.Context(), request.SiteID)
	if errors.Is(err, services.ErrNotFound) {
		helpers.HandleNotFound(c, "site", request.SiteID)
		return
	} else if err != nil {
		helpers.HandleInternalServerError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func CreateSiteAttachmentHandler(c *gin.Context) {
	var request models.GetSiteRequest
	if err := c.BindUri(&request); err != nil {
		helpers.HandleInvalidInputError(c, err)
		return
	}
	var body models.CreateAttachmentRequest
	if err := c.BindJSON(&body); err != nil {
		helpers.HandleInvalidInputError(c, err)
		return
	}

	attachmentID, err := services.CreateSiteAttachment(c.Request.Context(), request.SiteID, body)
	if errors.Is(err, services.ErrNotFound) {
		helpers.HandleNotFound(c, "site", request.SiteID)
		return
	} else if err != nil {
		helpers.HandleInternalServerError(c, err)
		return
	}
	c.JSON(http.StatusCreated, models.IDResponse{ID: attachmentID})
}

func DeleteSiteAttachmentHandler(c *gin.Context) {
	var request models.GetSiteRequest
	var ref models.AttachmentRef
	if err := bindUris(c, &request, &ref); err != nil {
		helpers.HandleInvalidInputError(c, err)
		return
	}

	err := services.DeleteSiteAttachment(c.Request.Context(), request.SiteID, ref.AttachmentID)
	if errors.Is(err, services.ErrNotFound) {
		helpers.HandleNotFound(c, "attachment", ref.AttachmentID)
		return
	} else if err != nil {
		helpers.HandleInternalServerError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func CreateSiteContactRoleHandler(c *gin.Context) {
	var request models.GetSiteRequest
	if err := c.BindUri(&request); err != nil {
		helpers.HandleInvalidInputError(c, err)
		return
	}
	var body models.CreateContactRoleRequest
	if err := c.BindJSON(&body); err != nil {
		helpers.HandleInvalidInputError(c, err)
		return
	}

	roleID, err := services.CreateSiteContactRole(c.Request.Context(), request.SiteID, body)
	if errors.Is(err, services.ErrNotFound) {
		helpers.HandleNotFound(c, "site or contact", request.SiteID)
		return
	} else if err != nil {
		helpers.HandleInternalServerError(c, err)
		return
	}
	c.JSON(http.StatusCreated, models.IDResponse{ID: roleID})
}

func DeleteSiteContactRoleHandler(c *gin.Context) {
	var request models.GetSiteRequest
	var ref models.ContactRoleRef
	if err := bindUris(c, &request, &ref); err != nil {
		helpers.HandleInvalidInputError(c, err)
		return
	}

	err := services.DeleteSiteContactRole(c.Request.Context(), request.SiteID, ref.RoleID)
	if errors.Is(err, services.ErrNotFound) {
		helpers.HandleNotFound(c, "contact role", ref.RoleID)
		return
	} else if err != nil {
		helpers.HandleInternalServerError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
