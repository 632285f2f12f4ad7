package dashboard

import (
	"log/slog"

	departmentDomain "github.com/frahmantamala/notice-management/internal/department"
)

const recentNoticeLimit = 10

// RepositoryAPI is the read-only aggregation surface backing both dashboards.
type RepositoryAPI interface {
	AdminStats() (*AdminStats, error)
	RecentNoticesForDepartment(departmentID int64, limit int) ([]NoticeSummary, error)
	UnseenMemberCount(departmentID int64) (int64, error)
	DownloadMemberCount(departmentID int64) (int64, error)
}

// DepartmentChecker verifies the department exists before aggregating.
type DepartmentChecker interface {
	GetByID(id int64) (*departmentDomain.Department, error)
}

type Service struct {
	repo        RepositoryAPI
	departments DepartmentChecker
	logger      *slog.Logger
}

func NewService(repo RepositoryAPI, departments DepartmentChecker, logger *slog.Logger) *Service {
	return &Service{
		repo:        repo,
		departments: departments,
		logger:      logger,
	}
}

// AdminOverview returns the global counts.
func (s *Service) AdminOverview() (*AdminStats, error) {
	stats, err := s.repo.AdminStats()
	if err != nil {
		s.logger.Error("failed to compute admin dashboard", "error", err)
		return nil, err
	}
	return stats, nil
}

// DepartmentOverview aggregates one department's distribution reach and
// member engagement.
func (s *Service) DepartmentOverview(departmentID int64) (*DepartmentStats, error) {
	if _, err := s.departments.GetByID(departmentID); err != nil {
		return nil, err
	}

	recent, err := s.repo.RecentNoticesForDepartment(departmentID, recentNoticeLimit)
	if err != nil {
		s.logger.Error("failed to list recent notices", "department_id", departmentID, "error", err)
		return nil, err
	}

	unseen, err := s.repo.UnseenMemberCount(departmentID)
	if err != nil {
		return nil, err
	}

	downloads, err := s.repo.DownloadMemberCount(departmentID)
	if err != nil {
		return nil, err
	}

	return &DepartmentStats{
		DepartmentID:  departmentID,
		RecentNotices: recent,
		UnseenMembers: unseen,
		Downloads:     downloads,
	}, nil
}
