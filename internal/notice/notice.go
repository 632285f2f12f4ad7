package notice

import (
	"errors"
	"time"

	noticeDatamodel "github.com/frahmantamala/notice-management/internal/core/datamodel/notice"
	"github.com/frahmantamala/notice-management/internal/notifier"
)

// Notice is the distributed document. Creation lands it directly in pending;
// the draft status exists in the schema but no code path produces it.
type Notice struct {
	ID           int64      `json:"id"`
	Title        string     `json:"title"`
	Content      string     `json:"content"`
	Priority     string     `json:"priority"`
	FileURL      string     `json:"file_url,omitempty"`
	CreatedByID  int64      `json:"created_by"`
	ApprovedByID *int64     `json:"approved_by,omitempty"`
	ExpiryDate   *time.Time `json:"expiry_date,omitempty"`
	Status       string     `json:"status"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// DistributionView is the per-department delivery record exposed on the
// tracking endpoint.
type DistributionView struct {
	ID           int64     `json:"id"`
	NoticeID     int64     `json:"notice_id"`
	DepartmentID int64     `json:"department_id"`
	EmailStatus  string    `json:"email_status"`
	SMSStatus    string    `json:"sms_status"`
	PushStatus   string    `json:"push_status"`
	SentTime     time.Time `json:"sent_time"`
}

// TrackingView is the per-user read/download record.
type TrackingView struct {
	ID           int64      `json:"id"`
	UserID       int64      `json:"user_id"`
	NoticeID     int64      `json:"notice_id"`
	ViewedAt     *time.Time `json:"viewed_at,omitempty"`
	Downloaded   bool       `json:"downloaded"`
	DownloadTime *time.Time `json:"download_time,omitempty"`
}

// DepartmentDelivery is one department's fan-out outcome in the approval
// response.
type DepartmentDelivery struct {
	DepartmentID int64           `json:"department_id"`
	Department   string          `json:"department"`
	Email        notifier.Result `json:"email"`
	SMS          notifier.Result `json:"sms"`
	Push         notifier.Result `json:"push"`
}

// ApprovalSummary is the approve endpoint's response body.
type ApprovalSummary struct {
	NoticeID   int64                `json:"notice_id"`
	Status     string               `json:"status"`
	Deliveries []DepartmentDelivery `json:"deliveries"`
}

var (
	ErrNotFound           = errors.New("notice not found")
	ErrInvalidStatus      = errors.New("invalid notice status for this operation")
	ErrUnauthorizedAccess = errors.New("unauthorized access to notice")
)

// Audit actions written to the activity log.
const (
	ActionCreated    = "created notice"
	ActionUpdated    = "updated notice"
	ActionApproved   = "approved notice"
	ActionArchived   = "archived notice"
	ActionViewed     = "viewed notice"
	ActionDownloaded = "downloaded notice"
)

func ToDataModel(n *Notice) *noticeDatamodel.Notice {
	return &noticeDatamodel.Notice{
		ID:           n.ID,
		Title:        n.Title,
		Content:      n.Content,
		Priority:     n.Priority,
		FileURL:      n.FileURL,
		CreatedByID:  n.CreatedByID,
		ApprovedByID: n.ApprovedByID,
		ExpiryDate:   n.ExpiryDate,
		Status:       n.Status,
		CreatedAt:    n.CreatedAt,
		UpdatedAt:    n.UpdatedAt,
	}
}

func FromDataModel(n *noticeDatamodel.Notice) *Notice {
	return &Notice{
		ID:           n.ID,
		Title:        n.Title,
		Content:      n.Content,
		Priority:     n.Priority,
		FileURL:      n.FileURL,
		CreatedByID:  n.CreatedByID,
		ApprovedByID: n.ApprovedByID,
		ExpiryDate:   n.ExpiryDate,
		Status:       n.Status,
		CreatedAt:    n.CreatedAt,
		UpdatedAt:    n.UpdatedAt,
	}
}
