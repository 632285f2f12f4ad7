package department

import (
	"errors"
	"log/slog"
)

type RepositoryAPI interface {
	GetAll() ([]*Department, error)
	GetByID(id int64) (*Department, error)
	Create(d *Department) error
	Update(d *Department) error
	Delete(id int64) error
}

type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

func (s *Service) GetAll() ([]*Department, error) {
	return s.repo.GetAll()
}

func (s *Service) GetByID(id int64) (*Department, error) {
	return s.repo.GetByID(id)
}

func (s *Service) Create(dto CreateDTO) (*Department, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	if dto.ParentID != nil {
		if _, err := s.repo.GetByID(*dto.ParentID); err != nil {
			return nil, err
		}
	}

	d := &Department{
		Name:        dto.Name,
		FirstName:   dto.FirstName,
		LastName:    dto.LastName,
		Email:       dto.Email,
		PhoneNumber: dto.PhoneNumber,
		Fax:         dto.Fax,
		ParentID:    dto.ParentID,
		OfficeType:  dto.OfficeType,
		Province:    dto.Province,
		District:    dto.District,
		Address:     dto.Address,
		PhotoURL:    dto.PhotoURL,
		HeadUserID:  dto.HeadUserID,
	}

	if err := s.repo.Create(d); err != nil {
		return nil, err
	}

	s.logger.Info("department created", "department_id", d.ID, "name", d.Name)
	return d, nil
}

func (s *Service) Update(id int64, dto UpdateDTO) (*Department, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	d, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	if dto.Name != nil {
		d.Name = *dto.Name
	}
	if dto.FirstName != nil {
		d.FirstName = *dto.FirstName
	}
	if dto.LastName != nil {
		d.LastName = *dto.LastName
	}
	if dto.Email != nil {
		d.Email = *dto.Email
	}
	if dto.PhoneNumber != nil {
		d.PhoneNumber = *dto.PhoneNumber
	}
	if dto.Fax != nil {
		d.Fax = *dto.Fax
	}
	if dto.OfficeType != nil {
		d.OfficeType = *dto.OfficeType
	}
	if dto.Province != nil {
		d.Province = *dto.Province
	}
	if dto.District != nil {
		d.District = *dto.District
	}
	if dto.Address != nil {
		d.Address = *dto.Address
	}
	if dto.PhotoURL != nil {
		d.PhotoURL = *dto.PhotoURL
	}
	if dto.HeadUserID != nil {
		d.HeadUserID = dto.HeadUserID
	}
	if dto.ParentID != nil {
		if err := s.checkParentChain(id, *dto.ParentID); err != nil {
			return nil, err
		}
		d.ParentID = dto.ParentID
	}

	if err := s.repo.Update(d); err != nil {
		return nil, err
	}

	s.logger.Info("department updated", "department_id", d.ID)
	return d, nil
}

func (s *Service) Delete(id int64) error {
	if _, err := s.repo.GetByID(id); err != nil {
		return err
	}
	if err := s.repo.Delete(id); err != nil {
		return err
	}
	s.logger.Info("department deleted", "department_id", id)
	return nil
}

// checkParentChain walks up from the proposed parent. Hitting the department
// itself means the assignment would close a loop in the office hierarchy.
func (s *Service) checkParentChain(id, parentID int64) error {
	if id == parentID {
		return ErrParentCycle
	}

	current := parentID
	// Bounded walk so a corrupted chain cannot spin forever.
	for i := 0; i < 100; i++ {
		parent, err := s.repo.GetByID(current)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				return ErrNotFound
			}
			return err
		}
		if parent.ParentID == nil {
			return nil
		}
		if *parent.ParentID == id {
			return ErrParentCycle
		}
		current = *parent.ParentID
	}
	return ErrParentCycle
}
