package notice

import (
	"time"

	errors "github.com/frahmantamala/notice-management/internal"
	"github.com/frahmantamala/notice-management/internal/core/common/validation"
	noticeDatamodel "github.com/frahmantamala/notice-management/internal/core/datamodel/notice"
)

var priorities = []string{
	noticeDatamodel.PriorityLow,
	noticeDatamodel.PriorityNormal,
	noticeDatamodel.PriorityHigh,
	noticeDatamodel.PriorityUrgent,
}

type CreateNoticeDTO struct {
	Title      string     `json:"title"`
	Content    string     `json:"content"`
	Priority   string     `json:"priority,omitempty"`
	FileURL    string     `json:"file_url,omitempty"`
	ExpiryDate *time.Time `json:"expiry_date,omitempty"`
}

func (dto *CreateNoticeDTO) Validate() *errors.AppError {
	if dto.Priority == "" {
		dto.Priority = noticeDatamodel.PriorityNormal
	}

	validator := validation.NewValidator()
	validator.Field("title", dto.Title).
		Required().
		MaxLength(200)
	validator.Field("content", dto.Content).
		Required()
	validator.Field("priority", dto.Priority).
		OneOf(priorities, errors.ErrCodeInvalidPriority)
	return validator.Validate()
}

// UpdateNoticeDTO uses pointers so absent fields stay untouched.
type UpdateNoticeDTO struct {
	Title      *string    `json:"title,omitempty"`
	Content    *string    `json:"content,omitempty"`
	Priority   *string    `json:"priority,omitempty"`
	FileURL    *string    `json:"file_url,omitempty"`
	ExpiryDate *time.Time `json:"expiry_date,omitempty"`
}

func (dto *UpdateNoticeDTO) Validate() *errors.AppError {
	validator := validation.NewValidator()
	if dto.Title != nil {
		validator.Field("title", *dto.Title).
			Required().
			MaxLength(200)
	}
	if dto.Content != nil {
		validator.Field("content", *dto.Content).
			Required()
	}
	if dto.Priority != nil {
		validator.Field("priority", *dto.Priority).
			Required().
			OneOf(priorities, errors.ErrCodeInvalidPriority)
	}
	return validator.Validate()
}

// ApproveDTO names the departments the approval fans out to. An absent or
// empty list approves the notice without distributing it anywhere.
type ApproveDTO struct {
	DepartmentIDs []int64 `json:"department_ids,omitempty"`
}

// ListFilter narrows the notice listing. DepartmentID restricts the list to
// notices with a distribution to that department. A zero Limit means no
// paging.
type ListFilter struct {
	Status       string
	Priority     string
	DepartmentID int64
	Limit        int
	Offset       int
}
