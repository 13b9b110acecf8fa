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

package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/gzip"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sensorhub/sensor-management-system/cmd/sensormgmt/controllers"
	"go.uber.org/zap"
)

// SetupRestAPI initializes the REST API and starts listening
func SetupRestAPI(accounts gin.Accounts, version string) {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()

	// Add a ginzap middleware, which:
	//   - Logs all requests, like a combined access and error log.
	//   - Logs to stdout.
	//   - RFC3339 with UTC time format.
	router.Use(ginzap.Ginzap(zap.L(), time.RFC3339, true))

	// Logs all panic to error log
	//   - stack means whether output the stack info.
	router.Use(ginzap.RecoveryWithZap(zap.L(), true))

	router.Use(gzip.Gzip(gzip.DefaultCompression))

	// Healthcheck
	router.GET(
		"/", func(c *gin.Context) {
			if shutdownHandler != nil && shutdownHandler.ShuttingDown() {
				c.String(http.StatusOK, "shutdown")
			} else {
				c.String(http.StatusOK, "online")
			}
		})

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	apiString := fmt.Sprintf("/api/v%s", version)

	// Version of the API
	v1 := router.Group(apiString, gin.BasicAuth(accounts))
	{
		devices := v1.Group("/devices")
		{
			devices.GET("", controllers.SearchHandler("device"))
			devices.POST("", controllers.CreateDeviceHandler)
			devices.GET("/:deviceId", controllers.GetDeviceHandler)
			devices.PATCH("/:deviceId", controllers.UpdateDeviceHandler)
			devices.DELETE("/:deviceId", controllers.DeleteDeviceHandler)

			devices.POST("/:deviceId/attachments", controllers.CreateDeviceAttachmentHandler)
			devices.PATCH("/:deviceId/attachments/:attachmentId", controllers.UpdateDeviceAttachmentHandler)
			devices.DELETE("/:deviceId/attachments/:attachmentId", controllers.DeleteDeviceAttachmentHandler)

			devices.POST("/:deviceId/properties", controllers.CreateDevicePropertyHandler)
			devices.DELETE("/:deviceId/properties/:propertyId", controllers.DeleteDevicePropertyHandler)

			devices.POST("/:deviceId/parameters", controllers.CreateDeviceParameterHandler)
			devices.DELETE("/:deviceId/parameters/:parameterId", controllers.DeleteDeviceParameterHandler)

			devices.POST("/:deviceId/customfields", controllers.CreateDeviceCustomFieldHandler)
			devices.DELETE("/:deviceId/customfields/:fieldId", controllers.DeleteDeviceCustomFieldHandler)

			devices.POST("/:deviceId/contacts", controllers.CreateDeviceContactRoleHandler)
			devices.DELETE("/:deviceId/contacts/:roleId", controllers.DeleteDeviceContactRoleHandler)

			devices.POST("/:deviceId/calibrations", controllers.CreateDeviceCalibrationHandler)
			devices.DELETE("/:deviceId/calibrations/:calibrationId", controllers.DeleteDeviceCalibrationHandler)
		}

		platforms := v1.Group("/platforms")
		{
			platforms.GET("", controllers.SearchHandler("platform"))
			platforms.POST("", controllers.CreatePlatformHandler)
			platforms.GET("/:platformId", controllers.GetPlatformHandler)
			platforms.PATCH("/:platformId", controllers.UpdatePlatformHandler)
			platforms.DELETE("/:platformId", controllers.DeletePlatformHandler)

			platforms.POST("/:platformId/attachments", controllers.CreatePlatformAttachmentHandler)
			platforms.DELETE("/:platformId/attachments/:attachmentId", controllers.DeletePlatformAttachmentHandler)

			platforms.POST("/:platformId/parameters", controllers.CreatePlatformParameterHandler)
			platforms.DELETE("/:platformId/parameters/:parameterId", controllers.DeletePlatformParameterHandler)

			platforms.POST("/:platformId/contacts", controllers.CreatePlatformContactRoleHandler)
			platforms.DELETE("/:platformId/contacts/:roleId", controllers.DeletePlatformContactRoleHandler)
		}

		configurations := v1.Group("/configurations")
		{
			configurations.GET("", controllers.SearchHandler("configuration"))
			configurations.POST("", controllers.CreateConfigurationHandler)
			configurations.GET("/:configurationId", controllers.GetConfigurationHandler)
			configurations.PATCH("/:configurationId", controllers.UpdateConfigurationHandler)
			configurations.DELETE("/:configurationId", controllers.DeleteConfigurationHandler)

			configurations.POST("/:configurationId/attachments", controllers.CreateConfigurationAttachmentHandler)
			configurations.DELETE("/:configurationId/attachments/:attachmentId", controllers.DeleteConfigurationAttachmentHandler)

			configurations.POST("/:configurationId/parameters", controllers.CreateConfigurationParameterHandler)
			configurations.DELETE("/:configurationId/parameters/:parameterId", controllers.DeleteConfigurationParameterHandler)

			configurations.POST("/:configurationId/customfields", controllers.CreateConfigurationCustomFieldHandler)
			configurations.DELETE("/:configurationId/customfields/:fieldId", controllers.DeleteConfigurationCustomFieldHandler)

			configurations.POST("/:configurationId/contacts", controllers.CreateConfigurationContactRoleHandler)
			configurations.DELETE("/:configurationId/contacts/:roleId", controllers.DeleteConfigurationContactRoleHandler)

			configurations.POST("/:configurationId/device-mounts", controllers.CreateDeviceMountHandler)
			configurations.DELETE("/:configurationId/device-mounts/:mountId", controllers.DeleteDeviceMountHandler)

			configurations.POST("/:configurationId/platform-mounts", controllers.CreatePlatformMountHandler)
			configurations.DELETE("/:configurationId/platform-mounts/:mountId", controllers.DeletePlatformMountHandler)
		}

		sites := v1.Group("/sites")
		{
			sites.GET("", controllers.SearchHandler("site"))
			sites.POST("", controllers.CreateSiteHandler)
			sites.GET("/:siteId", controllers.GetSiteHandler)
			sites.PATCH("/:siteId", controllers.UpdateSiteHandler)
			sites.DELETE("/:siteId", controllers.DeleteSiteHandler)

			sites.POST("/:siteId/attachments", controllers.CreateSiteAttachmentHandler)
			sites.DELETE("/:siteId/attachments/:attachmentId", controllers.DeleteSiteAttachmentHandler)

			sites.POST("/:siteId/contacts", controllers.CreateSiteContactRoleHandler)
			sites.DELETE("/:siteId/contacts/:roleId", controllers.DeleteSiteContactRoleHandler)
		}

		contacts := v1.Group("/contacts")
		{
			contacts.GET("", controllers.SearchHandler("contact"))
			contacts.POST("", controllers.CreateContactHandler)
			contacts.GET("/:contactId", controllers.GetContactHandler)
			contacts.PATCH("/:contactId", controllers.UpdateContactHandler)
			contacts.DELETE("/:contactId", controllers.DeleteContactHandler)
		}

		v1.POST("/reindex/:type", controllers.ReindexHandler)
	}

	go func() {
		err := router.Run(":80")
		if err != nil {
			zap.S().Fatalf("Failed to start REST API: %s", err)
		}
	}()
}
