package user

import (
	"strings"

	datamodel "github.com/frahmantamala/notice-management/internal/core/datamodel/user"
)

// RegisterDTO is the payload for admin-driven user registration.
type RegisterDTO struct {
	Email        string `json:"email"`
	Name         string `json:"name"`
	Phone        string `json:"phone,omitempty"`
	Password     string `json:"password"`
	Role         string `json:"role"`
	DepartmentID *int64 `json:"department_id,omitempty"`
}

type ValidationError struct {
	Msg string
}

func (v ValidationError) Error() string { return v.Msg }

var validRoles = map[string]bool{
	datamodel.RoleAdmin:          true,
	datamodel.RoleDepartmentHead: true,
	datamodel.RoleSectionChief:   true,
	datamodel.RoleStaff:          true,
	datamodel.RoleITManager:      true,
}

func (d *RegisterDTO) Validate() error {
	if strings.TrimSpace(d.Email) == "" {
		return ValidationError{Msg: "email is required"}
	}
	if !strings.Contains(d.Email, "@") {
		return ValidationError{Msg: "email is invalid"}
	}
	if strings.TrimSpace(d.Name) == "" {
		return ValidationError{Msg: "name is required"}
	}
	if len(d.Password) < 8 {
		return ValidationError{Msg: "password must be at least 8 characters"}
	}
	if d.Role == "" {
		d.Role = datamodel.RoleStaff
	}
	if !validRoles[d.Role] {
		return ValidationError{Msg: "role is invalid"}
	}
	return nil
}
