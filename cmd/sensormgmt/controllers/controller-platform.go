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

func CreatePlatformHandler(c *gin.Context) {
	var request models.CreatePlatformRequest
	if err := c.BindJSON(&request); err != nil {
		helpers.HandleInvalidInputError(c, err)
		return
	}

	platformID, err := services.CreatePlatform(c.Request.Context(), request)
	if err != nil {
		helpers.HandleInternalServerError(c, err)
		return
	}
	c.JSON(http.StatusCreated, models.IDResponse{ID: platformID})
}

func GetPlatformHandler(c *gin.Context) {
	var request models.GetPlatformRequest
	if err := c.BindUri(&request); err != nil {
		helpers.HandleInvalidInputError(c, err)
		return
	}

	platform, err := services.GetPlatform(c.Request.Context(), request.PlatformID)
	if errors.Is(err, services.ErrNotFound) {
		helpers.HandleNotFound(c, "platform", request.PlatformID)
		return
	} else if err != nil {
		helpers.HandleInternalServerError(c, err)
		return
	}
	c.JSON(http.StatusOK, platform)
}

func UpdatePlatformHandler(c *gin.Context) {
	var request models.GetPlatformRequest
	if err := c.BindUri(&request); err != nil {
		helpers.HandleInvalidInputError(c, err)
		return
	}
	var body models.UpdatePlatformRequest
	if err := c.BindJSON(&body); err != nil {
		helpers.HandleInvalidInputError(c, err)
		return
	}

	err := services.UpdatePlatform(c.Request.Context(), request.PlatformID, body)
	if errors.Is(err, services.ErrNotFound) {
		helpers.HandleNotFound(c, "platform", request.PlatformID)
		return
	} else if err != nil {
		helpers.HandleInternalServerError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func DeletePlatformHandler(c *gin.Context) {
	var request models.GetPlatformRequest
	if err := c.BindUri(&request); err != nil {
		helpers.HandleInvalidInputError(c, err)
		return
	}

	err := services.DeletePlatform(c.Request.Context(), request.PlatformID)
	if errors.Is(err, services.ErrNotFound) {
		helpers.HandleNotFound(c, "platform", request.PlatformID)
		return
	} else if err != nil {
		helpers.HandleInternalServerError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func CreatePlatformAttachmentHandler(c *gin.Context) {
	var request models.GetPlatformRequest
	if err := c.BindUri(&request); err != nil {
		helpers.HandleInvalidInputError(c, err)
		return
	}
	var body models.CreateAttachmentRequest
	if err := c.BindJSON(&body); err != nil {
		helpers.HandleInvalidInputError(c, err)
		return
	}

	attachmentID, err := services.CreatePlatformAttachment(c.Request.Context(), request.PlatformID, body)
	if errors.Is(err, services.ErrNotFound) {
		helpers.HandleNotFound(c, "platform", request.PlatformID)
		return
	} else if err != nil {
		helpers.HandleInternalServerError(c, err)
		return
	}
	c.JSON(http.StatusCreated, models.IDResponse{ID: attachmentID})
}

func DeletePlatformAttachmentHandler(c *gin.Context) {
	var request models.GetPlatformRequest
	var ref models.AttachmentRef
	if err := bindUris(c, &request, &ref); err != nil {
		helpers.HandleInvalidInputError(c, err)
		return
	}

	err := services.DeletePlatformAttachment(c.Request.Context(), request.PlatformID, ref.AttachmentID)
	if errors.Is(err, services.ErrNotFound) {
		helpers.HandleNotFound(c, "attachment", ref.AttachmentID)
		return
	} else if err != nil {
		helpers.HandleInternalServerError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func CreatePlatformParameterHandler(c *gin.Context) {
	var request models.GetPlatformRequest
	if err := c.BindUri(&request); err != nil {
		helpers.HandleInvalidInputError(c, err)
		return
	}
	var body models.CreateParameterRequest
	if err := c.BindJSON(&body); err != nil {
		helpers.HandleInvalidInputError(c, err)
		return
	}

	parameterID, err := services.CreatePlatformParameter(c.Request.Context(), request.PlatformID, body)
	if errors.Is(err, services.ErrNotFound) {
		helpers.HandleNotFound(c, "platform", request.PlatformID)
		return
	} else if err != nil {
		helpers.HandleInternalServerError(c, err)
		return
	}
	c.JSON(http.StatusCreated, models.IDResponse{ID: parameterID})
}

func DeletePlatformParameterHandler(c *gin.Context) {
	var request models.GetPlatformRequest
	var ref models.ParameterRef
	if err := bindUris(c, &request, &ref); err != nil {
		helpers.HandleInvalidInputError(c, err)
		return
	}

	err := services.DeletePlatformParameter(c.Request.Context(), request.PlatformID, ref.ParameterID)
	if errors.Is(err, services.ErrNotFound) {
		helpers.HandleNotFound(c, "parameter", ref.ParameterID)
		return
	} else if err != nil {
		helpers.HandleInternalServerError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func CreatePlatformContactRoleHandler(c *gin.Context) {
	var request models.GetPlatformRequest
	if err := c.BindUri(&request); err != nil {
		helpers.HandleInvalidInputError(c, err)
		return
	}
	var body models.CreateContactRoleRequest
	if err := c.BindJSON(&body); err != nil {
		helpers.HandleInvalidInputError(c, err)
		return
	}

	roleID, err := services.CreatePlatformContactRole(c.Request.Context(), request.PlatformID, body)
	if errors.Is(err, services.ErrNotFound) {
		helpers.HandleNotFound(c, "platform or contact", request.PlatformID)
		return
	} else if err != nil {
		helpers.HandleInternalServerError(c, err)
		return
	}
	c.JSON(http.StatusCreated, models.IDResponse{ID: roleID})
}

func DeletePlatformContactRoleHandler(c *gin.Context) {
	var request models.GetPlatformRequest
	var ref models.ContactRoleRef
	if err := bindUris(c, &request, &ref); err != nil {
		helpers.HandleInvalidInputError(c, err)
		return
	}

	err := services.DeletePlatformContactRole(c.Request.Context(), request.PlatformID, ref.RoleID)
	if errors.Is(err, services.ErrNotFound) {
		helpers.HandleNotFound(c, "contact role", ref.RoleID)
		return
	} else if err != nil {
		helpers.HandleInternalServerError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
