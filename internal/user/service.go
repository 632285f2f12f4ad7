package user

import (
	"fmt"
)

type Repository interface {
	Create(u *User) error
	GetByID(userID int64) (*User, error)
	GetByEmail(email string) (*User, error)
	ContactsByDepartment(departmentID int64) ([]Contact, error)
}

// PasswordHasher abstracts the bcrypt step so tests can swap it out.
type PasswordHasher interface {
	HashPassword(password string) (string, error)
}

type Service struct {
	repo   Repository
	hasher PasswordHasher
}

func NewService(repo Repository, hasher PasswordHasher) *Service {
	return &Service{
		repo:   repo,
		hasher: hasher,
	}
}

// Register creates a new active user. Duplicate emails surface as
// ErrDuplicateEmail regardless of which layer catches them first.
func (s *Service) Register(dto RegisterDTO) (*User, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	if existing, err := s.repo.GetByEmail(dto.Email); err == nil && existing != nil {
		return nil, ErrDuplicateEmail
	}

	hash, err := s.hasher.HashPassword(dto.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u := &User{
		Email:        dto.Email,
		Name:         dto.Name,
		Phone:        dto.Phone,
		PasswordHash: hash,
		Role:         dto.Role,
		DepartmentID: dto.DepartmentID,
		IsActive:     true,
	}

	if err := s.repo.Create(u); err != nil {
		return nil, err
	}

	return u, nil
}

func (s *Service) GetByID(userID int64) (*User, error) {
	u, err := s.repo.GetByID(userID)
	if err != nil {
		return nil, fmt.Errorf("get user by id: %w", err)
	}
	return u, nil
}

// ContactsByDepartment returns the active members the notification fan-out
// should reach for one department.
func (s *Service) ContactsByDepartment(departmentID int64) ([]Contact, error) {
	return s.repo.ContactsByDepartment(departmentID)
}
