package models

import "time"

type GetConfigurationRequest struct {
	ConfigurationID int64 `uri:"configurationId" binding:"required"`
}

type CreateConfigurationRequest struct {
	Label       string     `json:"label" binding:"required"`
	Description string     `json:"description"`
	Project     string     `json:"project"`
	Campaign    string     `json:"campaign"`
	StatusName  string     `json:"statusName"`
	SiteID      *int64     `json:"siteId"`
	StartDate   *time.Time `json:"startDate"`
	EndDate     *time.Time `json:"endDate"`
}

type UpdateConfigurationRequest struct {
	Label       *string    `json:"label"`
	Description *string    `json:"description"`
	Project     *string    `json:"project"`
	Campaign    *string    `json:"campaign"`
	StatusName  *string    `json:"statusName"`
	SiteID      *int64     `json:"siteId"`
	StartDate   *time.Time `json:"startDate"`
	EndDate     *time.Time `json:"endDate"`
	Archived    *bool      `json:"archived"`
}

type GetMountActionRequest struct {
	ConfigurationID int64 `uri:"configurationId" binding:"required"`
	MountID         int64 `uri:"mountId" binding:"required"`
}

type CreateDeviceMountRequest struct {
	DeviceID         int64      `json:"deviceId" binding:"required"`
	Label            string     `json:"label"`
	BeginDescription string     `json:"beginDescription"`
	EndDescription   string     `json:"endDescription"`
	BeginDate        time.Time  `json:"beginDate" binding:"required"`
	EndDate          *time.Time `json:"endDate"`
	OffsetX          float64    `json:"offsetX"`
	OffsetY          float64    `json:"offsetY"`
	OffsetZ          float64    `json:"offsetZ"`
}

type CreatePlatformMountRequest struct {
	PlatformID       int64      `json:"platformId" binding:"required"`
	Label            string     `json:"label"`
	BeginDescription string     `json:"beginDescription"`
	EndDescription   string     `json:"endDescription"`
	BeginDate        time.Time  `json:"beginDate" binding:"required"`
	EndDate          *time.Time `json:"endDate"`
	OffsetX          float64    `json:"offsetX"`
	OffsetY          float64    `json:"offsetY"`
	OffsetZ          float64    `json:"offsetZ"`
}
