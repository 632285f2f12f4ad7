package user

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	datamodel "github.com/frahmantamala/notice-management/internal/core/datamodel/user"
	"github.com/frahmantamala/notice-management/internal/user"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(u *user.User) error {
	record := user.ToDataModel(u)
	if err := r.db.Create(record).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) || strings.Contains(err.Error(), "UNIQUE") {
			return user.ErrDuplicateEmail
		}
		return err
	}
	u.ID = record.ID
	u.DateJoined = record.DateJoined
	u.UpdatedAt = record.UpdatedAt
	return nil
}

func (r *Repository) GetByID(userID int64) (*user.User, error) {
	var record datamodel.User
	if err := r.db.First(&record, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, user.ErrNotFound
		}
		return nil, err
	}
	return user.FromDataModel(&record), nil
}

func (r *Repository) GetByEmail(email string) (*user.User, error) {
	var record datamodel.User
	if err := r.db.Where("email = ?", email).First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, user.ErrNotFound
		}
		return nil, err
	}
	return user.FromDataModel(&record), nil
}

// ContactsByDepartment returns contact rows for active members of one
// department. Inactive users never receive notifications.
func (r *Repository) ContactsByDepartment(departmentID int64) ([]user.Contact, error) {
	var records []datamodel.User
	err := r.db.
		Where("department_id = ? AND is_active = true", departmentID).
		Order("id").
		Find(&records).Error
	if err != nil {
		return nil, err
	}

	contacts := make([]user.Contact, 0, len(records))
	for _, rec := range records {
		contacts = append(contacts, user.Contact{
			UserID: rec.ID,
			Email:  rec.Email,
			Phone:  rec.Phone,
		})
	}
	return contacts, nil
}
