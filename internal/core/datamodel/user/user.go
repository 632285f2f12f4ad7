package user

import "time"

// Roles carried on a user record. The authorization table in internal/auth
// maps these to allowed operations.
const (
	RoleAdmin          = "admin"
	RoleDepartmentHead = "department_head"
	RoleSectionChief   = "section_chief"
	RoleStaff          = "staff"
	RoleITManager      = "it_manager"
)

type User struct {
	ID           int64     `gorm:"primaryKey"`
	Name         string    `gorm:"column:name;not null"`
	Email        string    `gorm:"column:email;uniqueIndex;not null"`
	Phone        string    `gorm:"column:phone"`
	Role         string    `gorm:"column:role;default:staff;not null"`
	DepartmentID *int64    `gorm:"column:department_id"`
	IsActive     bool      `gorm:"column:is_active;default:true"`
	PasswordHash string    `gorm:"column:password_hash;not null"`
	DateJoined   time.Time `gorm:"column:date_joined;autoCreateTime"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (User) TableName() string {
	return "users"
}

// RevokedToken is the server-side blacklist consulted on refresh after a
// logout. Rows past ExpiresAt are garbage, safe to purge.
type RevokedToken struct {
	ID        int64     `gorm:"primaryKey"`
	TokenHash string    `gorm:"column:token_hash;uniqueIndex;not null"`
	UserID    int64     `gorm:"column:user_id;not null"`
	ExpiresAt time.Time `gorm:"column:expires_at;not null"`
	RevokedAt time.Time `gorm:"column:revoked_at;autoCreateTime"`
}

func (RevokedToken) TableName() string {
	return "revoked_tokens"
}
