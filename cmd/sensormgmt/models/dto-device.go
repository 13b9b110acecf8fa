package models

import "time"

type GetDeviceRequest struct {
	DeviceID int64 `uri:"deviceId" binding:"required"`
}

type CreateDeviceRequest struct {
	ShortName        string `json:"shortName" binding:"required"`
	LongName         string `json:"longName"`
	SerialNumber     string `json:"serialNumber"`
	ManufacturerName string `json:"manufacturerName"`
	Model            string `json:"model"`
	Description      string `json:"description"`
	DeviceTypeName   string `json:"deviceTypeName"`
	StatusName       string `json:"statusName"`
	Website          string `json:"website"`
	InventoryNumber  string `json:"inventoryNumber"`
	PersistentID     string `json:"persistentId"`
}

type UpdateDeviceRequest struct {
	ShortName        *string `json:"shortName"`
	LongName         *string `json:"longName"`
	SerialNumber     *string `json:"serialNumber"`
	ManufacturerName *string `json:"manufacturerName"`
	Model            *string `json:"model"`
	Description      *string `json:"description"`
	DeviceTypeName   *string `json:"deviceTypeName"`
	StatusName       *string `json:"statusName"`
	Website          *string `json:"website"`
	InventoryNumber  *string `json:"inventoryNumber"`
	PersistentID     *string `json:"persistentId"`
	Archived         *bool   `json:"archived"`
}

type GetDevicePropertyRequest struct {
	DeviceID   int64 `uri:"deviceId" binding:"required"`
	PropertyID int64 `uri:"propertyId" binding:"required"`
}

type CreateDevicePropertyRequest struct {
	Label             string  `json:"label" binding:"required"`
	PropertyName      string  `json:"propertyName"`
	PropertyURI       string  `json:"propertyUri"`
	UnitName          string  `json:"unitName"`
	UnitURI           string  `json:"unitUri"`
	CompartmentName   string  `json:"compartmentName"`
	SamplingMediaName string  `json:"samplingMediaName"`
	Resolution        float64 `json:"resolution"`
	ResolutionUnit    string  `json:"resolutionUnit"`
	AccuracyUnit      string  `json:"accuracyUnit"`
}

type GetDeviceCalibrationRequest struct {
	DeviceID      int64 `uri:"deviceId" binding:"required"`
	CalibrationID int64 `uri:"calibrationId" binding:"required"`
}

type CreateDeviceCalibrationRequest struct {
	Description            string     `json:"description"`
	Formula                string     `json:"formula"`
	Value                  float64    `json:"value"`
	CurrentCalibrationDate time.Time  `json:"currentCalibrationDate" binding:"required"`
	NextCalibrationDate    *time.Time `json:"nextCalibrationDate"`
}
