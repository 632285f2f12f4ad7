package department

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	departmentDatamodel "github.com/frahmantamala/notice-management/internal/core/datamodel/department"
	"github.com/frahmantamala/notice-management/internal/department"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) GetAll() ([]*department.Department, error) {
	var records []departmentDatamodel.Department
	if err := r.db.Order("name").Find(&records).Error; err != nil {
		return nil, err
	}

	departments := make([]*department.Department, 0, len(records))
	for i := range records {
		departments = append(departments, department.FromDataModel(&records[i]))
	}
	return departments, nil
}

func (r *Repository) GetByID(id int64) (*department.Department, error) {
	var record departmentDatamodel.Department
	if err := r.db.First(&record, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, department.ErrNotFound
		}
		return nil, err
	}
	return department.FromDataModel(&record), nil
}

func (r *Repository) Create(d *department.Department) error {
	record := department.ToDataModel(d)
	if err := r.db.Create(record).Error; err != nil {
		if isDuplicate(err) {
			return department.ErrDuplicateName
		}
		return err
	}
	d.ID = record.ID
	return nil
}

func (r *Repository) Update(d *department.Department) error {
	record := department.ToDataModel(d)
	if err := r.db.Save(record).Error; err != nil {
		if isDuplicate(err) {
			return department.ErrDuplicateName
		}
		return err
	}
	return nil
}

func (r *Repository) Delete(id int64) error {
	result := r.db.Delete(&departmentDatamodel.Department{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return department.ErrNotFound
	}
	return nil
}

func isDuplicate(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey) || strings.Contains(err.Error(), "UNIQUE")
}
