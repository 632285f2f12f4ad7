package notice

import "time"

const (
	PriorityLow    = "low"
	PriorityNormal = "normal"
	PriorityHigh   = "high"
	PriorityUrgent = "urgent"
)

// Status lifecycle: draft -> pending -> approved -> archived. The create
// endpoint forces pending, so draft only exists for schema completeness.
const (
	StatusDraft    = "draft"
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusArchived = "archived"
)

// Per-channel delivery statuses recorded on a distribution row.
const (
	DeliveryPending = "pending"
	DeliverySent    = "sent"
	DeliverySkipped = "skipped"
	DeliveryFailed  = "failed"
)

type Notice struct {
	ID           int64      `gorm:"primaryKey"`
	Title        string     `gorm:"column:title;not null"`
	Content      string     `gorm:"column:content;not null"`
	Priority     string     `gorm:"column:priority;default:normal;not null"`
	FileURL      string     `gorm:"column:file_url"`
	CreatedByID  int64      `gorm:"column:created_by_id;not null"`
	ApprovedByID *int64     `gorm:"column:approved_by_id"`
	ExpiryDate   *time.Time `gorm:"column:expiry_date;type:date"`
	Status       string     `gorm:"column:status;default:draft;not null"`
	CreatedAt    time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}

func (Notice) TableName() string {
	return "notices"
}

// Distribution records whether one notice reached one department, per
// channel. The composite unique index closes the check-then-insert race on
// concurrent approvals.
type Distribution struct {
	ID           int64     `gorm:"primaryKey"`
	NoticeID     int64     `gorm:"column:notice_id;not null;uniqueIndex:idx_notice_department"`
	DepartmentID int64     `gorm:"column:department_id;not null;uniqueIndex:idx_notice_department"`
	SentEmail    bool      `gorm:"column:sent_email;default:false"`
	SentSMS      bool      `gorm:"column:sent_sms;default:false"`
	SentPush     bool      `gorm:"column:sent_push;default:false"`
	SentTime     time.Time `gorm:"column:sent_time;autoCreateTime"`
	EmailStatus  string    `gorm:"column:email_status;default:pending"`
	SMSStatus    string    `gorm:"column:sms_status;default:pending"`
	PushStatus   string    `gorm:"column:push_status;default:pending"`
}

func (Distribution) TableName() string {
	return "notice_distributions"
}

// Tracking is the per-user read/download state, created lazily on first
// retrieval by an authenticated user.
type Tracking struct {
	ID           int64      `gorm:"primaryKey"`
	UserID       int64      `gorm:"column:user_id;not null;uniqueIndex:idx_user_notice"`
	NoticeID     int64      `gorm:"column:notice_id;not null;uniqueIndex:idx_user_notice"`
	ViewedAt     *time.Time `gorm:"column:viewed_at"`
	Downloaded   bool       `gorm:"column:downloaded;default:false"`
	DownloadTime *time.Time `gorm:"column:download_time"`
}

func (Tracking) TableName() string {
	return "notice_tracking"
}

// ActivityLog is append-only; rows are never updated or deleted.
type ActivityLog struct {
	ID        int64     `gorm:"primaryKey"`
	UserID    *int64    `gorm:"column:user_id"`
	Action    string    `gorm:"column:action;not null"`
	NoticeID  *int64    `gorm:"column:notice_id"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (ActivityLog) TableName() string {
	return "activity_logs"
}
