package dashboard

import "time"

// AdminStats is the global overview. Every call recomputes from current
// state; nothing is cached.
type AdminStats struct {
	TotalNotices   int64 `json:"total_notices"`
	EmailDelivered int64 `json:"email_delivered"`
	EmailFailed    int64 `json:"email_failed"`
	UrgentNotices  int64 `json:"urgent_notices"`
	Departments    int64 `json:"departments"`
}

// NoticeSummary is the trimmed notice row shown on the department dashboard.
type NoticeSummary struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Priority  string    `json:"priority"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// DepartmentStats describes one department's reach: the latest notices
// distributed to it, how many of its members have never viewed a notice, and
// how many have downloaded at least one attachment.
type DepartmentStats struct {
	DepartmentID  int64           `json:"department_id"`
	RecentNotices []NoticeSummary `json:"recent_notices"`
	UnseenMembers int64           `json:"unseen_members"`
	Downloads     int64           `json:"downloads"`
}
