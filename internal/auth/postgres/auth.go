package auth

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/frahmantamala/notice-management/internal/auth"
	datamodel "github.com/frahmantamala/notice-management/internal/core/datamodel/user"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		db: db,
	}
}

func (r *Repository) GetByEmail(email string) (*auth.User, string, error) {
	var record datamodel.User
	err := r.db.Where("email = ? AND is_active = true", email).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", auth.ErrInvalidCredentials
		}
		return nil, "", err
	}
	return toAuthUser(&record), record.PasswordHash, nil
}

func (r *Repository) GetByID(userID int64) (*auth.User, error) {
	var record datamodel.User
	err := r.db.Where("id = ? AND is_active = true", userID).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, auth.ErrInvalidToken
		}
		return nil, err
	}
	return toAuthUser(&record), nil
}

// RevokeToken inserts the digest into the blacklist. A duplicate hash means
// the token was already revoked, which is not an error.
func (r *Repository) RevokeToken(tokenHash string, userID int64, expiresAt time.Time) error {
	revoked := datamodel.RevokedToken{
		TokenHash: tokenHash,
		UserID:    userID,
		ExpiresAt: expiresAt,
	}
	err := r.db.Create(&revoked).Error
	if err != nil && errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil
	}
	return err
}

func (r *Repository) IsTokenRevoked(tokenHash string) (bool, error) {
	var count int64
	err := r.db.Model(&datamodel.RevokedToken{}).
		Where("token_hash = ?", tokenHash).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// PurgeExpiredTokens drops blacklist rows whose tokens expired anyway.
func (r *Repository) PurgeExpiredTokens(before time.Time) (int64, error) {
	result := r.db.Where("expires_at < ?", before).Delete(&datamodel.RevokedToken{})
	return result.RowsAffected, result.Error
}

func toAuthUser(record *datamodel.User) *auth.User {
	return &auth.User{
		ID:           record.ID,
		Name:         record.Name,
		Email:        record.Email,
		Phone:        record.Phone,
		Role:         record.Role,
		DepartmentID: record.DepartmentID,
	}
}
