package department

import (
	"errors"

	departmentDatamodel "github.com/frahmantamala/notice-management/internal/core/datamodel/department"
)

type Department struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	FirstName   string `json:"first_name,omitempty"`
	LastName    string `json:"last_name,omitempty"`
	Email       string `json:"email,omitempty"`
	PhoneNumber string `json:"phone_number,omitempty"`
	Fax         string `json:"fax,omitempty"`
	ParentID    *int64 `json:"parent_office,omitempty"`
	OfficeType  string `json:"office_type"`
	Province    string `json:"province,omitempty"`
	District    string `json:"district,omitempty"`
	Address     string `json:"address,omitempty"`
	PhotoURL    string `json:"photo_url,omitempty"`
	HeadUserID  *int64 `json:"head_user_id,omitempty"`
}

var (
	ErrNotFound      = errors.New("department not found")
	ErrDuplicateName = errors.New("department name already exists")
	ErrParentCycle   = errors.New("department parent chain would form a cycle")
)

func ToDataModel(d *Department) *departmentDatamodel.Department {
	return &departmentDatamodel.Department{
		ID:          d.ID,
		Name:        d.Name,
		FirstName:   d.FirstName,
		LastName:    d.LastName,
		Email:       d.Email,
		PhoneNumber: d.PhoneNumber,
		Fax:         d.Fax,
		ParentID:    d.ParentID,
		OfficeType:  d.OfficeType,
		Province:    d.Province,
		District:    d.District,
		Address:     d.Address,
		PhotoURL:    d.PhotoURL,
		HeadUserID:  d.HeadUserID,
	}
}

func FromDataModel(d *departmentDatamodel.Department) *Department {
	return &Department{
		ID:          d.ID,
		Name:        d.Name,
		FirstName:   d.FirstName,
		LastName:    d.LastName,
		Email:       d.Email,
		PhoneNumber: d.PhoneNumber,
		Fax:         d.Fax,
		ParentID:    d.ParentID,
		OfficeType:  d.OfficeType,
		Province:    d.Province,
		District:    d.District,
		Address:     d.Address,
		PhotoURL:    d.PhotoURL,
		HeadUserID:  d.HeadUserID,
	}
}
