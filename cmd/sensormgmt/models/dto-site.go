package models

type GetSiteRequest struct {
	SiteID int64 `uri:"siteId" binding:"required"`
}

type CoordinateRequest struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type CreateSiteRequest struct {
	Label        string              `json:"label" binding:"required"`
	Description  string              `json:"description"`
	UsageName    string              `json:"usageName"`
	SiteTypeName string              `json:"siteTypeName"`
	Street       string              `json:"street"`
	StreetNumber string              `json:"streetNumber"`
	City         string              `json:"city"`
	ZipCode      string              `json:"zipCode"`
	Country      string              `json:"country"`
	Building     string              `json:"building"`
	Room         string              `json:"room"`
	Geometry     []CoordinateRequest `json:"geometry"`
}

type UpdateSiteRequest struct {
	Label        *string             `json:"label"`
	Description  *string             `json:"description"`
	UsageName    *string             `json:"usageName"`
	SiteTypeName *string             `json:"siteTypeName"`
	Street       *string             `json:"street"`
	StreetNumber *string             `json:"streetNumber"`
	City         *string             `json:"city"`
	ZipCode      *string             `json:"zipCode"`
	Country      *string             `json:"country"`
	Building     *string             `json:"building"`
	Room         *string             `json:"room"`
	Geometry     []CoordinateRequest `json:"geometry"`
	Archived     *bool               `json:"archived"`
}
