package models

type GetPlatformRequest struct {
	PlatformID int64 `uri:"platformId" binding:"required"`
}

type CreatePlatformRequest struct {
	ShortName        string `json:"shortName" binding:"required"`
	LongName         string `json:"longName"`
	SerialNumber     string `json:"serialNumber"`
	ManufacturerName string `json:"manufacturerName"`
	Model            string `json:"model"`
	Description      string `json:"description"`
	PlatformTypeName string `json:"platformTypeName"`
	StatusName       string `json:"statusName"`
	InventoryNumber  string `json:"inventoryNumber"`
	PersistentID     string `json:"persistentId"`
}

type UpdatePlatformRequest struct {
	ShortName        *string `json:"shortName"`
	LongName         *string `json:"longName"`
	SerialNumber     *string `json:"serialNumber"`
	ManufacturerName *string `json:"manufacturerName"`
	Model            *string `json:"model"`
	Description      *string `json:"description"`
	PlatformTypeName *string `json:"platformTypeName"`
	StatusName       *string `json:"statusName"`
	InventoryNumber  *string `json:"inventoryNumber"`
	PersistentID     *string `json:"persistentId"`
	Archived         *bool   `json:"archived"`
}
