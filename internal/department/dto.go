package department

import (
	"strings"

	departmentDatamodel "github.com/frahmantamala/notice-management/internal/core/datamodel/department"
)

type CreateDTO struct {
	Name        string `json:"name"`
	FirstName   string `json:"first_name,omitempty"`
	LastName    string `json:"last_name,omitempty"`
	Email       string `json:"email,omitempty"`
	PhoneNumber string `json:"phone_number,omitempty"`
	Fax         string `json:"fax,omitempty"`
	ParentID    *int64 `json:"parent_office,omitempty"`
	OfficeType  string `json:"office_type,omitempty"`
	Province    string `json:"province,omitempty"`
	District    string `json:"district,omitempty"`
	Address     string `json:"address,omitempty"`
	PhotoURL    string `json:"photo_url,omitempty"`
	HeadUserID  *int64 `json:"head_user_id,omitempty"`
}

// UpdateDTO uses pointers so absent fields stay untouched.
type UpdateDTO struct {
	Name        *string `json:"name,omitempty"`
	FirstName   *string `json:"first_name,omitempty"`
	LastName    *string `json:"last_name,omitempty"`
	Email       *string `json:"email,omitempty"`
	PhoneNumber *string `json:"phone_number,omitempty"`
	Fax         *string `json:"fax,omitempty"`
	ParentID    *int64  `json:"parent_office,omitempty"`
	OfficeType  *string `json:"office_type,omitempty"`
	Province    *string `json:"province,omitempty"`
	District    *string `json:"district,omitempty"`
	Address     *string `json:"address,omitempty"`
	PhotoURL    *string `json:"photo_url,omitempty"`
	HeadUserID  *int64  `json:"head_user_id,omitempty"`
}

type ValidationError struct {
	Msg string
}

func (v ValidationError) Error() string { return v.Msg }

var validOfficeTypes = map[string]bool{
	departmentDatamodel.OfficeTypeDirectorate:      true,
	departmentDatamodel.OfficeTypeProvince:         true,
	departmentDatamodel.OfficeTypeProvinceDivision: true,
	departmentDatamodel.OfficeTypeDivision:         true,
	departmentDatamodel.OfficeTypeOther:            true,
}

func (d *CreateDTO) Validate() error {
	if strings.TrimSpace(d.Name) == "" {
		return ValidationError{Msg: "name is required"}
	}
	if d.OfficeType == "" {
		d.OfficeType = departmentDatamodel.OfficeTypeOther
	}
	if !validOfficeTypes[d.OfficeType] {
		return ValidationError{Msg: "office_type is invalid"}
	}
	return nil
}

func (d *UpdateDTO) Validate() error {
	if d.Name != nil && strings.TrimSpace(*d.Name) == "" {
		return ValidationError{Msg: "name cannot be empty"}
	}
	if d.OfficeType != nil && !validOfficeTypes[*d.OfficeType] {
		return ValidationError{Msg: "office_type is invalid"}
	}
	return nil
}
