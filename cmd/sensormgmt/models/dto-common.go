package models

type CreateAttachmentRequest struct {
	Label       string `json:"label" binding:"required"`
	URL         string `json:"url" binding:"required,url"`
	Description string `json:"description"`
	IsInternal  bool   `json:"isInternal"`
}

type AttachmentRef struct {
	AttachmentID int64 `uri:"attachmentId" binding:"required"`
}

type CreateParameterRequest struct {
	Label       string `json:"label" binding:"required"`
	Description string `json:"description"`
	UnitName    string `json:"unitName"`
	UnitURI     string `json:"unitUri"`
}

type ParameterRef struct {
	ParameterID int64 `uri:"parameterId" binding:"required"`
}

type CreateCustomFieldRequest struct {
	Key   string `json:"key" binding:"required"`
	Value string `json:"value"`
}

type CustomFieldRef struct {
	FieldID int64 `uri:"fieldId" binding:"required"`
}

type ContactRoleRef struct {
	RoleID int64 `uri:"roleId" binding:"required"`
}

type IDResponse struct {
	ID int64 `json:"id"`
}
