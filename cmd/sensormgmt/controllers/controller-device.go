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

func CreateDeviceHandler(c *gin.Context) {
	var request models.CreateDeviceRequest
	if err := c.BindJSON(&request); err != nil {
		helpers.HandleInvalidInputError(c, err)
		return
	}

	deviceID, err := services.CreateDevice(c.Request.Context(), request)
	if err != nil {
		helpers.HandleInternalServerError(c, err)
		return
	}
	c.JSON(http.StatusCreated, models.IDResponse{ID: deviceID})
}

func GetDeviceHandler(c *gin.Context) {
	var request models.GetDeviceRequest
	if err := c.BindUri(&request); err != nil {
		helpers.HandleInvalidInputError(c, err)
		return
	}

	device, err := services.GetDevice(c.Request.Context(), request.DeviceID)
	if errors.Is(err, services.ErrNotFound) {
		helpers.HandleNotFound(c, "device", request.DeviceID)
		return
	} else if err != nil {
		helpers.HandleInternalServerError(c, err)
		return
	}
	c.JSON(http.StatusOK, device)
}

func UpdateDeviceHandler(c *gin.Context) {
	var request models.GetDeviceRequest
	if err := c.BindUri(&request); err != nil {
		helpers.HandleInvalidInputError(c, err)
		return
	}
	var body models.UpdateDeviceRequest
	if err := c.BindJSON(&body); err != nil {
		helpers.HandleInvalidInputError(c, err)
		return
	}

	err := services.UpdateDevice(c.Request.Context(), request.DeviceID, body)
	if errors.Is(err, services.ErrNotFound) {
		helpers.HandleNotFound(c, "device", request.DeviceID)
		return
	} else if err != nil {
		helpers.HandleInternalServerError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func DeleteDeviceHandler(c *gin.Context) {
	var request models.GetDeviceRequest
	if err := c.BindUri(&request); err != nil {
		helpers.HandleInvalidInputError(c, err)
		return
	}

	err := services.DeleteDevice(c.Request.Context(), request.DeviceID)
	if errors.Is(err, services.ErrNotFound) {
		helpers.HandleNotFound(c, "device", request.DeviceID)
		return
	} else if err != nil {
		helpers.HandleInternalServerError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func CreateDeviceAttachmentHandler(c *gin.Context) {
	var request models.GetDeviceRequest
	if err := c.BindUri(&request); err != nil {
		helpers.HandleInvalidInputError(c, err)
		return
	}
	var body models.CreateAttachmentRequest
	if err := c.BindJSON(&body); err != nil {
		helpers.HandleInvalidInputError(c, err)
		return
	}

	attachmentID, err := services.CreateDeviceAttachment(c.Request.Context(), request.DeviceID, body)
	if errors.Is(err, services.ErrNotFound) {
		helpers.HandleNotFound(c, "device", request.DeviceID)
		return
	} else if err != nil {
		helpers.HandleInternalServerError(c, err)
		return
	}
	c.JSON(http.StatusCreated, models.IDResponse{ID: attachmentID})
}

func UpdateDeviceAttachmentHandler(c *gin.Context) {
	var request models.GetDeviceRequest
	var ref models.AttachmentRef
	if err := bindUris(c, &request, &ref); err != nil {
		helpers.HandleInvalidInputError(c, err)
		return
	}
	var body models.CreateAttachmentRequest
	if err := c.BindJSON(&body); err != nil {
		helpers.HandleInvalidInputError(c, err)
		return
	}

	err := services.UpdateDeviceAttachment(c.Request.Context(), request.DeviceID, ref.AttachmentID, body)
	if errors.Is(err, services.ErrNotFound) {
		helpers.HandleNotFound(c, "attachment", ref.AttachmentID)
		return
	} else if err != nil {
		helpers.HandleInternalServerError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func DeleteDeviceAttachmentHandler(c *gin.Context) {
	var request models.GetDeviceRequest
	var ref models.AttachmentRef
	if err := bindUris(c, &request, &ref); err != nil {
		helpers.HandleInvalidInputError(c, err)
		return
	}

	err := services.DeleteDeviceAttachment(c.Request.Context(), request.DeviceID, ref.AttachmentID)
	if errors.Is(err, services.ErrNotFound) {
		helpers.HandleNotFound(c, "attachment", ref.AttachmentID)
		return
	} else if err != nil {
		helpers.HandleInternalServerError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func CreateDevicePropertyHandler(c *gin.Context) {
	var request models.GetDeviceRequest
	if err := c.BindUri(&request); err != nil {
		helpers.HandleInvalidInputError(c, err)
		return
	}
	var body models.CreateDevicePropertyRequest
	if err := c.BindJSON(&body); err != nil {
		helpers.HandleInvalidInputError(c, err)
		return
	}

	propertyID, err := services.CreateDeviceProperty(c.Request.Context(), request.DeviceID, body)
	if errors.Is(err, services.ErrNotFound) {
		helpers.HandleNotFound(c, "device", request.DeviceID)
		return
	} else if err != nil {
		helpers.HandleInternalServerError(c, err)
		return
	}
	c.JSON(http.StatusCreated, models.IDResponse{ID: propertyID})
}

func DeleteDevicePropertyHandler(c *gin.Context) {
	var request models.GetDevicePropertyRequest
	if err := c.BindUri(&request); err != nil {
		helpers.HandleInvalidInputError(c, err)
		return
	}

	err := services.DeleteDeviceProperty(c.Request.Context(), request.DeviceID, request.PropertyID)
	if errors.Is(err, services.ErrNotFound) {
		helpers.HandleNotFound(c, "property", request.PropertyID)
		return
	} else if err != nil {
		helpers.HandleInternalServerError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func CreateDeviceParameterHandler(c *gin.Context) {
	var request models.GetDeviceRequest
	if err := c.BindUri(&request); err != nil {
		helpers.HandleInvalidInputError(c, err)
		return
	}
	var body models.CreateParameterRequest
	if err := c.BindJSON(&body); err != nil {
		helpers.HandleInvalidInputError(c, err)
		return
	}

	parameterID, err := services.CreateDeviceParameter(c.Request.Context(), request.DeviceID, body)
	if errors.Is(err, services.ErrNotFound) {
		helpers.HandleNotFound(c, "device", request.DeviceID)
		return
	} else if err != nil {
		helpers.HandleInternalServerError(c, err)
		return
	}
	c.JSON(http.StatusCreated, models.IDResponse{ID: parameterID})
}

func DeleteDeviceParameterHandler(c *gin.Context) {
	var request models.GetDeviceRequest
	var ref models.ParameterRef
	if err := bindUris(c, &request, &ref); err != nil {
		helpers.HandleInvalidInputError(c, err)
		return
	}

	err := services.DeleteDeviceParameter(c.Request.Context(), request.DeviceID, ref.ParameterID)
	if errors.Is(err, services.ErrNotFound) {
		helpers.HandleNotFound(c, "parameter", ref.ParameterID)
		return
	} else if err != nil {
		helpers.HandleInternalServerError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func CreateDeviceCustomFieldHandler(c *gin.Context) {
	var request models.GetDeviceRequest
	if err := c.BindUri(&request); err != nil {
		helpers.HandleInvalidInputError(c, err)
		return
	}
	var body models.CreateCustomFieldRequest
	if err := c.BindJSON(&body); err != nil {
		helpers.HandleInvalidInputError(c, err)
		return
	}

	fieldID, err := services.CreateDeviceCustomField(c.Request.Context(), request.DeviceID, body)
	if errors.Is(err, services.ErrNotFound) {
		helpers.HandleNotFound(c, "device", request.DeviceID)
		return
	} else if err != nil {
		helpers.HandleInternalServerError(c, err)
		return
	}
	c.JSON(http.StatusCreated, models.IDResponse{ID: fieldID})
}

func DeleteDeviceCustomFieldHandler(c *gin.Context) {
	var request models.GetDeviceRequest
	var ref models.CustomFieldRef
	if err := bindUris(c, &request, &ref); err != nil {
		helpers.HandleInvalidInputError(c, err)
		return
	}

	err := services.DeleteDeviceCustomField(c.Request.Context(), request.DeviceID, ref.FieldID)
	if errors.Is(err, services.ErrNotFound) {
		helpers.HandleNotFound(c, "custom field", ref.FieldID)
		return
	} else if err != nil {
		helpers.HandleInternalServerError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func CreateDeviceContactRoleHandler(c *gin.Context) {
	var request models.GetDeviceRequest
	if err := c.BindUri(&request); err != nil {
		helpers.HandleInvalidInputError(c, err)
		return
	}
	var body models.CreateContactRoleRequest
	if err := c.BindJSON(&body); err != nil {
		helpers.HandleInvalidInputError(c, err)
		return
	}

	roleID, err := services.CreateDeviceContactRole(c.Request.Context(), request.DeviceID, body)
	if errors.Is(err, services.ErrNotFound) {
		helpers.HandleNotFound(c, "device or contact", request.DeviceID)
		return
	} else if err != nil {
		helpers.HandleInternalServerError(c, err)
		return
	}
	c.JSON(http.StatusCreated, models.IDResponse{ID: roleID})
}

func DeleteDeviceContactRoleHandler(c *gin.Context) {
	var request models.GetDeviceRequest
	var ref models.ContactRoleRef
	if err := bindUris(c, &request, &ref); err != nil {
		helpers.HandleInvalidInputError(c, err)
		return
	}

	err := services.DeleteDeviceContactRole(c.Request.Context(), request.DeviceID, ref.RoleID)
	if errors.Is(err, services.ErrNotFound) {
		helpers.HandleNotFound(c, "contact role", ref.RoleID)
		return
	} else if err != nil {
		helpers.HandleInternalServerError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func CreateDeviceCalibrationHandler(c *gin.Context) {
	var request models.GetDeviceRequest
	if err := c.BindUri(&request); err != nil {
		helpers.HandleInvalidInputError(c, err)
		return
	}
	var body models.CreateDeviceCalibrationRequest
	if err := c.BindJSON(&body); err != nil {
		helpers.HandleInvalidInputError(c, err)
		return
	}

	calibrationID, err := services.CreateDeviceCalibration(c.Request.Context(), request.DeviceID, body)
	if errors.Is(err, services.ErrNotFound) {
		helpers.HandleNotFound(c, "device", request.DeviceID)
		return
	} else if err != nil {
		helpers.HandleInternalServerError(c, err)
		return
	}
	c.JSON(http.StatusCreated, models.IDResponse{ID: calibrationID})
}

func DeleteDeviceCalibrationHandler(c *gin.Context) {
	var request models.GetDeviceCalibrationRequest
	if err := c.BindUri(&request); err != nil {
		helpers.HandleInvalidInputError(c, err)
		return
	}

	err := services.DeleteDeviceCalibration(c.Request.Context(), request.DeviceID, request.CalibrationID)
	if errors.Is(err, services.ErrNotFound) {
		helpers.HandleNotFound(c, "calibration action", request.CalibrationID)
		return
	} else if err != nil {
		helpers.HandleInternalServerError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
