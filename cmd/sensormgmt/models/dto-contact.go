package models

type GetContactRequest struct {
	ContactID int64 `uri:"contactId" binding:"required"`
}

type CreateContactRequest struct {
	GivenName    string `json:"givenName" binding:"required"`
	FamilyName   string `json:"familyName" binding:"required"`
	Email        string `json:"email" binding:"required,email"`
	Website      string `json:"website"`
	Organization string `json:"organization"`
	Orcid        string `json:"orcid"`
}

type UpdateContactRequest struct {
	GivenName    *string `json:"givenName"`
	FamilyName   *string `json:"familyName"`
	Email        *string `json:"email"`
	Website      *string `json:"website"`
	Organization *string `json:"organization"`
	Orcid        *string `json:"orcid"`
	Active       *bool   `json:"active"`
}

type CreateContactRoleRequest struct {
	ContactID int64  `json:"contactId" binding:"required"`
	RoleName  string `json:"roleName" binding:"required"`
	RoleURI   string `json:"roleUri"`
}
