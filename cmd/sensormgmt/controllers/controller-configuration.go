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

func CreateConfigurationHandler(c *gin.Context) {
	var request models.CreateConfigurationRequest
	if err := c.BindJSON(&request); err != nil {
		helpers.HandleInvalidInputError(c, err)
		return
	}

	configurationID, err := services.CreateConfiguration(c.Request.Context(), request)
	if errors.Is(err, services.ErrNotFound) {
		helpers.HandleNotFound(c, "site", request.SiteID)
		return
	} else if err != nil {
		helpers.HandleInternalServerError(c, err)
		return
	}
	c.JSON(http.StatusCreated, models.IDResponse{ID: configurationID})
}

func GetConfigurationHandler(c *gin.Context) {
	var request models.GetConfigurationRequest
	if err := c.BindUri(&request); err != nil {
		helpers.HandleInvalidInputError(c, err)
		return
	}

	configuration, err := services.GetConfiguration(c.Request.Context(), request.ConfigurationID)
	if errors.Is(err, services.ErrNotFound) {
		helpers.HandleNotFound(c, "configuration", request.ConfigurationID)
		return
	} else if err != nil {
		helpers.HandleInternalServerError(c, err)
		return
	}
	c.JSON(http.StatusOK, configuration)
}

func UpdateConfigurationHandler(c *gin.Context) {
	var request models.GetConfigurationRequest
	if err := c.BindUri(&request); err != nil {
		helpers.HandleInvalidInputError(c, err)
		return
	}
	var body models.UpdateConfigurationRequest
	if err := c.BindJSON(&body); err != nil {
		helpers.HandleInvalidInputError(c, err)
		return
	}

	err := services.UpdateConfiguration(c.Request.Context(), request.ConfigurationID, body)
	if errors.Is(err, services.ErrNotFound) {
		helpers.HandleNotFound(c, "configuration", request.ConfigurationID)
		return
	} else if err != nil {
		helpers.HandleInternalServerError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func DeleteConfigurationHandler(c *gin.Context) {
	var request models.GetConfigurationRequest
	if err := c.BindUri(&request); err != nil {
		helpers.HandleInvalidInputError(c, err)
		return
	}

	err := services.DeleteConfiguration(c.Request.Context(), request.ConfigurationID)
	if errors.Is(err, services.ErrNotFound) {
		helpers.HandleNotFound(c, "configuration", request.ConfigurationID)
		return
	} else if err != nil {
		helpers.HandleInternalServerError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func CreateConfigurationAttachmentHandler(c *gin.Context) {
	var request models.GetConfigurationRequest
	if err := c.BindUri(&request); err != nil {
		helpers.HandleInvalidInputError(c, err)
		return
	}
	var body models.CreateAttachmentRequest
	if err := c.BindJSON(&body); err != nil {
		helpers.HandleInvalidInputError(c, err)
		return
	}

	attachmentID, err := services.CreateConfigurationAttachment(c.Request.Context(), request.ConfigurationID, body)
	if errors.Is(err, services.ErrNotFound) {
		helpers.HandleNotFound(c, "configuration", request.ConfigurationID)
		return
	} else if err != nil {
		helpers.HandleInternalServerError(c, err)
		return
	}
	c.JSON(http.StatusCreated, models.IDResponse{ID: attachmentID})
}

func DeleteConfigurationAttachmentHandler(c *gin.Context) {
	var request models.GetConfigurationRequest
	var ref models.AttachmentRef
	if err := bindUris(c, &request, &ref); err != nil {
		helpers.HandleInvalidInputError(c, err)
		return
	}

	err := services.DeleteConfigurationAttachment(c.Request.Context(), request.ConfigurationID, ref.AttachmentID)
	if errors.Is(err, services.ErrNotFound) {
		helpers.HandleNotFound(c, "attachment", ref.AttachmentID)
		return
	} else if err != nil {
		helpers.HandleInternalServerError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func CreateConfigurationParameterHandler(c *gin.Context) {
	var request models.GetConfigurationRequest
	if err := c.BindUri(&request); err != nil {
		helpers.HandleInvalidInputError(c, err)
		return
	}
	var body models.CreateParameterRequest
	if err := c.BindJSON(&body); err != nil {
		helpers.HandleInvalidInputError(c, err)
		return
	}

	parameterID, err := services.CreateConfigurationParameter(c.Request.Context(), request.ConfigurationID, body)
	if errors.Is(err, services.ErrNotFound) {
		helpers.HandleNotFound(c, "configuration", request.ConfigurationID)
		return
	} else if err != nil {
		helpers.HandleInternalServerError(c, err)
		return
	}
	c.JSON(http.StatusCreated, models.IDResponse{ID: parameterID})
}

func DeleteConfigurationParameterHandler(c *gin.Context) {
	var request models.GetConfigurationRequest
	var ref models.ParameterRef
	if err := bindUris(c, &request, &ref); err != nil {
		helpers.HandleInvalidInputError(c, err)
		return
	}

	err := services.DeleteConfigurationParameter(c.Request.Context(), request.ConfigurationID, ref.ParameterID)
	if errors.Is(err, services.ErrNotFound) {
		helpers.HandleNotFound(c, "parameter", ref.ParameterID)
		return
	} else if err != nil {
		helpers.HandleInternalServerError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func CreateConfigurationCustomFieldHandler(c *gin.Context) {
	var request models.GetConfigurationRequest
	if err := c.BindUri(&request); err != nil {
		helpers.HandleInvalidInputError(c, err)
		return
	}
	var body models.CreateCustomFieldRequest
	if err := c.BindJSON(&body); err != nil {
		helpers.HandleInvalidInputError(c, err)
		return
	}

	fieldID, err := services.CreateConfigurationCustomField(c.Request.Context(), request.ConfigurationID, body)
	if errors.Is(err, services.ErrNotFound) {
		helpers.HandleNotFound(c, "configuration", request.ConfigurationID)
		return
	} else if err != nil {
		helpers.HandleInternalServerError(c, err)
		return
	}
	c.JSON(http.StatusCreated, models.IDResponse{ID: fieldID})
}

func DeleteConfigurationCustomFieldHandler(c *gin.Context) {
	var request models.GetConfigurationRequest
	var ref models.CustomFieldRef
	if err := bindUris(c, &request, &ref); err != nil {
		helpers.HandleInvalidInputError(c, err)
		return
	}

	err := services.DeleteConfigurationCustomField(c.Request.Context(), request.ConfigurationID, ref.FieldID)
	if errors.Is(err, services.ErrNotFound) {
		helpers.HandleNotFound(c, "custom field", ref.FieldID)
		return
	} else if err != nil {
		helpers.HandleInternalServerError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func CreateConfigurationContactRoleHandler(c *gin.Context) {
	var request models.GetConfigurationRequest
	if err := c.BindUri(&request); err != nil {
		helpers.HandleInvalidInputError(c, err)
		return
	}
	var body models.CreateContactRoleRequest
	if err := c.BindJSON(&body); err != nil {
		helpers.HandleInvalidInputError(c, err)
		return
	}

	roleID, err := services.CreateConfigurationContactRole(c.Request.Context(), request.ConfigurationID, body)
	if errors.Is(err, services.ErrNotFound) {
		helpers.HandleNotFound(c, "configuration or contact", request.ConfigurationID)
		return
	} else if err != nil {
		helpers.HandleInternalServerError(c, err)
		return
	}
	c.JSON(http.StatusCreated, models.IDResponse{ID: roleID})
}

func DeleteConfigurationContactRoleHandler(c *gin.Context) {
	var request models.GetConfigurationRequest
	var ref models.ContactRoleRef
	if err := bindUris(c, &request, &ref); err != nil {
		helpers.HandleInvalidInputError(c, err)
		return
	}

	err := services.DeleteConfigurationContactRole(c.Request.Context(), request.ConfigurationID, ref.RoleID)
	if errors.Is(err, services.ErrNotFound) {
		helpers.HandleNotFound(c, "contact role", ref.RoleID)
		return
	} else if err != nil {
		helpers.HandleInternalServerError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func CreateDeviceMountHandler(c *gin.Context) {
	var request models.GetConfigurationRequest
	if err := c.BindUri(&request); err != nil {
		helpers.HandleInvalidInputError(c, err)
		return
	}
	var body models.CreateDeviceMountRequest
	if err := c.BindJSON(&body); err != nil {
		helpers.HandleInvalidInputError(c, err)
		return
	}

	mountID, err := services.CreateDeviceMount(c.Request.Context(), request.ConfigurationID, body)
	if errors.Is(err, services.ErrNotFound) {
		helpers.HandleNotFound(c, "configuration or device", request.ConfigurationID)
		return
	} else if err != nil {
		helpers.HandleInternalServerError(c, err)
		return
	}
	c.JSON(http.StatusCreated, models.IDResponse{ID: mountID})
}

func DeleteDeviceMountHandler(c *gin.Context) {
	var request models.GetMountActionRequest
	if err := c.BindUri(&request); err != nil {
		helpers.HandleInvalidInputError(c, err)
		return
	}

	err := services.DeleteDeviceMount(c.Request.Context(), request.ConfigurationID, request.MountID)
	if errors.Is(err, services.ErrNotFound) {
		helpers.HandleNotFound(c, "device mount", request.MountID)
		return
	} else if err != nil {
		helpers.HandleInternalServerError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func CreatePlatformMountHandler(c *gin.Context) {
	var request models.GetConfigurationRequest
	if err := c.BindUri(&request); err != nil {
		helpers.HandleInvalidInputError(c, err)
		return
	}
	var body models.CreatePlatformMountRequest
	if err := c.BindJSON(&body); err != nil {
		helpers.HandleInvalidInputError(c, err)
		return
	}

	mountID, err := services.CreatePlatformMount(c.Request.Context(), request.ConfigurationID, body)
	if errors.Is(err, services.ErrNotFound) {
		helpers.HandleNotFound(c, "configuration or platform", request.ConfigurationID)
		return
	} else if err != nil {
		helpers.HandleInternalServerError(c, err)
		return
	}
	c.JSON(http.StatusCreated, models.IDResponse{ID: mountID})
}

func DeletePlatformMountHandler(c *gin.Context) {
	var request models.GetMountActionRequest
	if err := c.BindUri(&request); err != nil {
		helpers.HandleInvalidInputError(c, err)
		return
	}

	err := services.DeletePlatformMount(c.Request.Context(), request.ConfigurationID, request.MountID)
	if errors.Is(err, services.ErrNotFound) {
		helpers.HandleNotFound(c, "platform mount", request.MountID)
		return
	} else if err != nil {
		helpers.HandleInternalServerError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
