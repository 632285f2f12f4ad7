package postgres

import (
	"gorm.io/gorm"

	departmentDatamodel "github.com/frahmantamala/notice-management/internal/core/datamodel/department"
	noticeDatamodel "github.com/frahmantamala/notice-management/internal/core/datamodel/notice"
	"github.com/frahmantamala/notice-management/internal/dashboard"
	"github.com/frahmantamala/notice-management/internal/notifier"
)

// DashboardRepository aggregates dashboard counts straight from the tables;
// there is no materialized state to keep in sync.
type DashboardRepository struct {
	db *gorm.DB
}

func NewDashboardRepository(db *gorm.DB) *DashboardRepository {
	return &DashboardRepository{db: db}
}

func (r *DashboardRepository) AdminStats() (*dashboard.AdminStats, error) {
	var stats dashboard.AdminStats

	if err := r.db.Model(&noticeDatamodel.Notice{}).Count(&stats.TotalNotices).Error; err != nil {
		return nil, err
	}
	if err := r.db.Model(&noticeDatamodel.Distribution{}).
		Where("email_status = ?", notifier.StatusSent).
		Count(&stats.EmailDelivered).Error; err != nil {
		return nil, err
	}
	if err := r.db.Model(&noticeDatamodel.Distribution{}).
		Where("email_status = ?", notifier.StatusFailed).
		Count(&stats.EmailFailed).Error; err != nil {
		return nil, err
	}
	if err := r.db.Model(&noticeDatamodel.Notice{}).
		Where("priority = ?", noticeDatamodel.PriorityUrgent).
		Count(&stats.UrgentNotices).Error; err != nil {
		return nil, err
	}
	if err := r.db.Model(&departmentDatamodel.Department{}).Count(&stats.Departments).Error; err != nil {
		return nil, err
	}

	return &stats, nil
}

func (r *DashboardRepository) RecentNoticesForDepartment(departmentID int64, limit int) ([]dashboard.NoticeSummary, error) {
	var summaries []dashboard.NoticeSummary
	err := r.db.Table("notices").
		Select("notices.id, notices.title, notices.priority, notices.status, notices.created_at").
		Joins("JOIN notice_distributions ON notice_distributions.notice_id = notices.id").
		Where("notice_distributions.department_id = ?", departmentID).
		Order("notices.created_at DESC").
		Limit(limit).
		Scan(&summaries).Error
	if err != nil {
		return nil, err
	}
	return summaries, nil
}

// UnseenMemberCount counts the department's active members who have never
// opened any notice.
func (r *DashboardRepository) UnseenMemberCount(departmentID int64) (int64, error) {
	var count int64
	err := r.db.Table("users").
		Where("department_id = ? AND is_active = ?", departmentID, true).
		Where("NOT EXISTS (SELECT 1 FROM notice_tracking WHERE notice_tracking.user_id = users.id AND notice_tracking.viewed_at IS NOT NULL)").
		Count(&count).Error
	return count, err
}

// DownloadMemberCount counts the department's active members who downloaded
// at least one notice attachment.
func (r *DashboardRepository) DownloadMemberCount(departmentID int64) (int64, error) {
	var count int64
	err := r.db.Table("users").
		Where("department_id = ? AND is_active = ?", departmentID, true).
		Where("EXISTS (SELECT 1 FROM notice_tracking WHERE notice_tracking.user_id = users.id AND notice_tracking.downloaded = ?)", true).
		Count(&count).Error
	return count, err
}
