package postgres

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	noticeDatamodel "github.com/frahmantamala/notice-management/internal/core/datamodel/notice"
	"github.com/frahmantamala/notice-management/internal/notice"
	"github.com/frahmantamala/notice-management/internal/notifier"
)

// NoticeRepository implements notice.Repository using GORM.
type NoticeRepository struct {
	db *gorm.DB
}

func NewNoticeRepository(db *gorm.DB) *NoticeRepository {
	return &NoticeRepository{db: db}
}

// Transaction yields a repository bound to one database transaction.
func (r *NoticeRepository) Transaction(fn func(tx notice.Repository) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return fn(&NoticeRepository{db: tx})
	})
}

func (r *NoticeRepository) Create(n *notice.Notice) error {
	record := notice.ToDataModel(n)
	if err := r.db.Create(record).Error; err != nil {
		return err
	}
	n.ID = record.ID
	n.CreatedAt = record.CreatedAt
	n.UpdatedAt = record.UpdatedAt
	return nil
}

func (r *NoticeRepository) GetByID(id int64) (*notice.Notice, error) {
	var record noticeDatamodel.Notice
	err := r.db.Where("id = ?", id).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notice.ErrNotFound
		}
		return nil, err
	}
	return notice.FromDataModel(&record), nil
}

func (r *NoticeRepository) List(filter notice.ListFilter) ([]*notice.Notice, error) {
	query := r.db.Model(&noticeDatamodel.Notice{})
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Priority != "" {
		query = query.Where("priority = ?", filter.Priority)
	}
	if filter.DepartmentID != 0 {
		query = query.
			Joins("JOIN notice_distributions ON notice_distributions.notice_id = notices.id").
			Where("notice_distributions.department_id = ?", filter.DepartmentID)
	}

	query = query.Order("created_at DESC")
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	var records []noticeDatamodel.Notice
	err := query.Find(&records).Error
	if err != nil {
		return nil, err
	}

	notices := make([]*notice.Notice, 0, len(records))
	for i := range records {
		notices = append(notices, notice.FromDataModel(&records[i]))
	}
	return notices, nil
}

func (r *NoticeRepository) Update(n *notice.Notice) error {
	record := notice.ToDataModel(n)
	record.UpdatedAt = time.Now()
	return r.db.Save(record).Error
}

func (r *NoticeRepository) SetApproved(noticeID, approverID int64) error {
	return r.db.Model(&noticeDatamodel.Notice{}).
		Where("id = ?", noticeID).
		Updates(map[string]interface{}{
			"status":         noticeDatamodel.StatusApproved,
			"approved_by_id": approverID,
			"updated_at":     time.Now(),
		}).Error
}

func (r *NoticeRepository) SetArchived(noticeID int64) error {
	return r.db.Model(&noticeDatamodel.Notice{}).
		Where("id = ?", noticeID).
		Updates(map[string]interface{}{
			"status":     noticeDatamodel.StatusArchived,
			"updated_at": time.Now(),
		}).Error
}

// GetOrCreateDistribution returns the distribution row for (notice,
// department), creating it when absent. The composite unique index catches
// concurrent creators; the loser refetches the winner's row.
func (r *NoticeRepository) GetOrCreateDistribution(noticeID, departmentID int64) (*notice.DistributionView, error) {
	var record noticeDatamodel.Distribution
	err := r.db.Where("notice_id = ? AND department_id = ?", noticeID, departmentID).First(&record).Error
	if err == nil {
		return toDistributionView(&record), nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	record = noticeDatamodel.Distribution{
		NoticeID:     noticeID,
		DepartmentID: departmentID,
		EmailStatus:  noticeDatamodel.DeliveryPending,
		SMSStatus:    noticeDatamodel.DeliveryPending,
		PushStatus:   noticeDatamodel.DeliveryPending,
	}
	if err := r.db.Create(&record).Error; err != nil {
		if isDuplicate(err) {
			var existing noticeDatamodel.Distribution
			if ferr := r.db.Where("notice_id = ? AND department_id = ?", noticeID, departmentID).First(&existing).Error; ferr != nil {
				return nil, ferr
			}
			return toDistributionView(&existing), nil
		}
		return nil, err
	}
	return toDistributionView(&record), nil
}

func (r *NoticeRepository) UpdateDistributionStatuses(distributionID int64, email, sms, push notifier.Result) error {
	return r.db.Model(&noticeDatamodel.Distribution{}).
		Where("id = ?", distributionID).
		Updates(map[string]interface{}{
			"email_status": email.Status,
			"sms_status":   sms.Status,
			"push_status":  push.Status,
			"sent_email":   email.Status == notifier.StatusSent,
			"sent_sms":     sms.Status == notifier.StatusSent,
			"sent_push":    push.Status == notifier.StatusSent,
			"sent_time":    time.Now(),
		}).Error
}

// EnsureTrackingViewed stamps viewed_at the first time a user reads a
// notice. The bool reports whether this call was the first view.
func (r *NoticeRepository) EnsureTrackingViewed(userID, noticeID int64) (*notice.TrackingView, bool, error) {
	record, err := r.getOrCreateTracking(userID, noticeID)
	if err != nil {
		return nil, false, err
	}

	if record.ViewedAt != nil {
		return toTrackingView(record), false, nil
	}

	now := time.Now()
	err = r.db.Model(&noticeDatamodel.Tracking{}).
		Where("id = ? AND viewed_at IS NULL", record.ID).
		Update("viewed_at", now).Error
	if err != nil {
		return nil, false, err
	}
	record.ViewedAt = &now
	return toTrackingView(record), true, nil
}

// MarkDownloaded flags the tracking row; the first download wins the
// download_time stamp.
func (r *NoticeRepository) MarkDownloaded(userID, noticeID int64) (*notice.TrackingView, error) {
	record, err := r.getOrCreateTracking(userID, noticeID)
	if err != nil {
		return nil, err
	}

	if record.Downloaded {
		return toTrackingView(record), nil
	}

	now := time.Now()
	err = r.db.Model(&noticeDatamodel.Tracking{}).
		Where("id = ?", record.ID).
		Updates(map[string]interface{}{
			"downloaded":    true,
			"download_time": now,
		}).Error
	if err != nil {
		return nil, err
	}
	record.Downloaded = true
	record.DownloadTime = &now
	return toTrackingView(record), nil
}

func (r *NoticeRepository) DistributionsForNotice(noticeID int64) ([]notice.DistributionView, error) {
	var records []noticeDatamodel.Distribution
	err := r.db.Where("notice_id = ?", noticeID).Order("department_id").Find(&records).Error
	if err != nil {
		return nil, err
	}

	views := make([]notice.DistributionView, 0, len(records))
	for i := range records {
		views = append(views, *toDistributionView(&records[i]))
	}
	return views, nil
}

func (r *NoticeRepository) TrackingForNotice(noticeID int64) ([]notice.TrackingView, error) {
	var records []noticeDatamodel.Tracking
	err := r.db.Where("notice_id = ?", noticeID).Order("user_id").Find(&records).Error
	if err != nil {
		return nil, err
	}

	views := make([]notice.TrackingView, 0, len(records))
	for i := range records {
		views = append(views, *toTrackingView(&records[i]))
	}
	return views, nil
}

// AppendActivity writes one audit row. Rows are never updated or deleted.
func (r *NoticeRepository) AppendActivity(userID *int64, action string, noticeID *int64) error {
	return r.db.Create(&noticeDatamodel.ActivityLog{
		UserID:   userID,
		Action:   action,
		NoticeID: noticeID,
	}).Error
}

func (r *NoticeRepository) getOrCreateTracking(userID, noticeID int64) (*noticeDatamodel.Tracking, error) {
	var record noticeDatamodel.Tracking
	err := r.db.Where("user_id = ? AND notice_id = ?", userID, noticeID).First(&record).Error
	if err == nil {
		return &record, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	record = noticeDatamodel.Tracking{
		UserID:   userID,
		NoticeID: noticeID,
	}
	if err := r.db.Create(&record).Error; err != nil {
		if isDuplicate(err) {
			var existing noticeDatamodel.Tracking
			if ferr := r.db.Where("user_id = ? AND notice_id = ?", userID, noticeID).First(&existing).Error; ferr != nil {
				return nil, ferr
			}
			return &existing, nil
		}
		return nil, err
	}
	return &record, nil
}

func toDistributionView(d *noticeDatamodel.Distribution) *notice.DistributionView {
	return &notice.DistributionView{
		ID:           d.ID,
		NoticeID:     d.NoticeID,
		DepartmentID: d.DepartmentID,
		EmailStatus:  d.EmailStatus,
		SMSStatus:    d.SMSStatus,
		PushStatus:   d.PushStatus,
		SentTime:     d.SentTime,
	}
}

func toTrackingView(t *noticeDatamodel.Tracking) *notice.TrackingView {
	return &notice.TrackingView{
		ID:           t.ID,
		UserID:       t.UserID,
		NoticeID:     t.NoticeID,
		ViewedAt:     t.ViewedAt,
		Downloaded:   t.Downloaded,
		DownloadTime: t.DownloadTime,
	}
}

func isDuplicate(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey) || strings.Contains(err.Error(), "UNIQUE") || strings.Contains(err.Error(), "duplicate key")
}
