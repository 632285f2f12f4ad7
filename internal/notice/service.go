package notice

import (
	"context"
	"fmt"
	"log/slog"

	noticeDatamodel "github.com/frahmantamala/notice-management/internal/core/datamodel/notice"
	departmentDomain "github.com/frahmantamala/notice-management/internal/department"
	"github.com/frahmantamala/notice-management/internal/notifier"
	userDomain "github.com/frahmantamala/notice-management/internal/user"
)

// Repository is the persistence surface the service needs. Transaction yields
// a repository bound to the open transaction; everything called on it commits
// or rolls back together.
type Repository interface {
	Create(n *Notice) error
	GetByID(id int64) (*Notice, error)
	List(filter ListFilter) ([]*Notice, error)
	Update(n *Notice) error
	SetApproved(noticeID, approverID int64) error
	SetArchived(noticeID int64) error
	GetOrCreateDistribution(noticeID, departmentID int64) (*DistributionView, error)
	UpdateDistributionStatuses(distributionID int64, email, sms, push notifier.Result) error
	EnsureTrackingViewed(userID, noticeID int64) (*TrackingView, bool, error)
	MarkDownloaded(userID, noticeID int64) (*TrackingView, error)
	DistributionsForNotice(noticeID int64) ([]DistributionView, error)
	TrackingForNotice(noticeID int64) ([]TrackingView, error)
	AppendActivity(userID *int64, action string, noticeID *int64) error
	Transaction(fn func(tx Repository) error) error
}

// DepartmentLister feeds the fan-out with the full department list.
type DepartmentLister interface {
	GetAll() ([]*departmentDomain.Department, error)
}

// Directory resolves a department to its members' contact details.
type Directory interface {
	ContactsByDepartment(departmentID int64) ([]userDomain.Contact, error)
}

// TokenStore would map departments to device tokens. No implementation is
// wired today; a nil store makes the push channel report a skip instead of
// pretending to deliver.
type TokenStore interface {
	TokensByDepartment(departmentID int64) ([]string, error)
}

type Service struct {
	repo        Repository
	departments DepartmentLister
	directory   Directory
	email       notifier.EmailSender
	sms         notifier.SMSSender
	push        notifier.PushSender
	tokens      TokenStore
	logger      *slog.Logger
}

func NewService(
	repo Repository,
	departments DepartmentLister,
	directory Directory,
	email notifier.EmailSender,
	sms notifier.SMSSender,
	push notifier.PushSender,
	tokens TokenStore,
	logger *slog.Logger,
) *Service {
	return &Service{
		repo:        repo,
		departments: departments,
		directory:   directory,
		email:       email,
		sms:         sms,
		push:        push,
		tokens:      tokens,
		logger:      logger,
	}
}

// Create stores a new notice. Every notice starts out pending approval.
func (s *Service) Create(userID int64, dto CreateNoticeDTO) (*Notice, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	n := &Notice{
		Title:       dto.Title,
		Content:     dto.Content,
		Priority:    dto.Priority,
		FileURL:     dto.FileURL,
		ExpiryDate:  dto.ExpiryDate,
		CreatedByID: userID,
		Status:      noticeDatamodel.StatusPending,
	}

	err := s.repo.Transaction(func(tx Repository) error {
		if err := tx.Create(n); err != nil {
			return err
		}
		return tx.AppendActivity(&userID, ActionCreated, &n.ID)
	})
	if err != nil {
		s.logger.Error("failed to create notice", "error", err, "user_id", userID)
		return nil, err
	}

	s.logger.Info("notice created", "notice_id", n.ID, "user_id", userID, "priority", n.Priority)
	return n, nil
}

// Update merges the provided fields onto the notice. The edit never touches
// status, so it is allowed in any lifecycle state.
func (s *Service) Update(noticeID, actorID int64, dto UpdateNoticeDTO) (*Notice, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	var updated *Notice
	err := s.repo.Transaction(func(tx Repository) error {
		n, err := tx.GetByID(noticeID)
		if err != nil {
			return err
		}

		if dto.Title != nil {
			n.Title = *dto.Title
		}
		if dto.Content != nil {
			n.Content = *dto.Content
		}
		if dto.Priority != nil {
			n.Priority = *dto.Priority
		}
		if dto.FileURL != nil {
			n.FileURL = *dto.FileURL
		}
		if dto.ExpiryDate != nil {
			n.ExpiryDate = dto.ExpiryDate
		}

		if err := tx.Update(n); err != nil {
			return err
		}
		if err := tx.AppendActivity(&actorID, ActionUpdated, &noticeID); err != nil {
			return err
		}
		updated = n
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("notice updated", "notice_id", noticeID, "user_id", actorID)
	return updated, nil
}

// Approve flips a notice to approved and fans it out over email, SMS and
// push to the departments named in departmentIDs. Unknown ids are dropped
// silently and an empty list approves without creating any distribution row.
// Re-approving re-sends to the requested departments but get-or-create keeps
// one distribution row per (notice, department) pair, so re-invoking approval
// is the retry path for failed channels. The status change, distribution rows
// and audit entry commit atomically; channel sends are total functions whose
// outcomes are recorded, never raised.
func (s *Service) Approve(ctx context.Context, noticeID, approverID int64, departmentIDs []int64) (*ApprovalSummary, error) {
	departments, err := s.departments.GetAll()
	if err != nil {
		return nil, fmt.Errorf("list departments: %w", err)
	}
	departments = filterDepartments(departments, departmentIDs)

	var summary *ApprovalSummary
	err = s.repo.Transaction(func(tx Repository) error {
		n, err := tx.GetByID(noticeID)
		if err != nil {
			return err
		}
		// archived is terminal; everything else may be (re-)approved.
		if n.Status == noticeDatamodel.StatusArchived {
			return ErrInvalidStatus
		}

		if err := tx.SetApproved(noticeID, approverID); err != nil {
			return err
		}

		deliveries := make([]DepartmentDelivery, 0, len(departments))
		for _, dept := range departments {
			dist, err := tx.GetOrCreateDistribution(noticeID, dept.ID)
			if err != nil {
				return err
			}

			delivery := s.deliverToDepartment(ctx, n, dept.ID)
			delivery.DepartmentID = dept.ID
			delivery.Department = dept.Name

			if err := tx.UpdateDistributionStatuses(dist.ID, delivery.Email, delivery.SMS, delivery.Push); err != nil {
				return err
			}
			deliveries = append(deliveries, delivery)
		}

		if err := tx.AppendActivity(&approverID, ActionApproved, &noticeID); err != nil {
			return err
		}

		summary = &ApprovalSummary{
			NoticeID:   noticeID,
			Status:     noticeDatamodel.StatusApproved,
			Deliveries: deliveries,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("notice approved",
		"notice_id", noticeID,
		"approver_id", approverID,
		"departments", len(summary.Deliveries))
	return summary, nil
}

// filterDepartments resolves the requested ids against the known departments.
// Ids that match nothing simply drop out, so an empty or all-invalid list
// yields no fan-out targets.
func filterDepartments(all []*departmentDomain.Department, ids []int64) []*departmentDomain.Department {
	wanted := make(map[int64]bool, len(ids))
	for _, id := range ids {
		wanted[id] = true
	}
	var out []*departmentDomain.Department
	for _, dept := range all {
		if wanted[dept.ID] {
			out = append(out, dept)
		}
	}
	return out
}

// deliverToDepartment runs all three channels for one department. Each sender
// always yields a Result, so a dead SMTP host degrades to a failed status on
// the distribution row instead of aborting the approval.
func (s *Service) deliverToDepartment(ctx context.Context, n *Notice, departmentID int64) DepartmentDelivery {
	var delivery DepartmentDelivery

	contacts, err := s.directory.ContactsByDepartment(departmentID)
	if err != nil {
		s.logger.Error("failed to resolve department contacts", "department_id", departmentID, "error", err)
		reason := fmt.Sprintf("directory lookup failed: %v", err)
		delivery.Email = notifier.Failed(reason)
		delivery.SMS = notifier.Failed(reason)
		delivery.Push = notifier.Failed(reason)
		return delivery
	}

	var emails, numbers []string
	for _, c := range contacts {
		if c.Email != "" {
			emails = append(emails, c.Email)
		}
		if c.Phone != "" {
			numbers = append(numbers, c.Phone)
		}
	}

	delivery.Email = s.email.SendEmail(ctx, notifier.EmailMessage{
		Subject:    "[NEA Notice] " + n.Title,
		Body:       n.Content,
		Recipients: emails,
	})

	// SMS is reserved for high and urgent notices; lower priorities skip the
	// carrier gateway entirely.
	if n.Priority == noticeDatamodel.PriorityHigh || n.Priority == noticeDatamodel.PriorityUrgent {
		delivery.SMS = s.sms.SendSMS(ctx, notifier.SMSMessage{
			Text:    "NEA Notice: " + n.Title,
			Numbers: numbers,
		})
	} else {
		delivery.SMS = notifier.Skipped("priority below high")
	}

	if s.tokens == nil {
		delivery.Push = notifier.Skipped("no token store configured")
	} else {
		tokens, err := s.tokens.TokensByDepartment(departmentID)
		if err != nil {
			delivery.Push = notifier.Failed(fmt.Sprintf("token lookup failed: %v", err))
		} else {
			delivery.Push = s.push.SendPush(ctx, notifier.PushMessage{
				Title:  n.Title,
				Body:   n.Content,
				Tokens: tokens,
				Data:   map[string]string{"notice_id": fmt.Sprintf("%d", n.ID)},
			})
		}
	}

	return delivery
}

// Archive retires a notice from any status; archiving a pending notice is
// how one is rejected. The row and its distribution and tracking records
// remain.
func (s *Service) Archive(noticeID, actorID int64) (*Notice, error) {
	var archived *Notice
	err := s.repo.Transaction(func(tx Repository) error {
		n, err := tx.GetByID(noticeID)
		if err != nil {
			return err
		}

		if err := tx.SetArchived(noticeID); err != nil {
			return err
		}
		if err := tx.AppendActivity(&actorID, ActionArchived, &noticeID); err != nil {
			return err
		}

		n.Status = noticeDatamodel.StatusArchived
		archived = n
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("notice archived", "notice_id", noticeID, "user_id", actorID)
	return archived, nil
}

// List returns notices matching the filter, newest first. Listing needs no
// authentication.
func (s *Service) List(filter ListFilter) ([]*Notice, error) {
	return s.repo.List(filter)
}

// Get fetches one notice. Authenticated viewers get a tracking row stamped
// with viewed_at on their first read; later reads leave it untouched.
func (s *Service) Get(noticeID int64, viewerID *int64) (*Notice, error) {
	n, err := s.repo.GetByID(noticeID)
	if err != nil {
		return nil, err
	}

	if viewerID == nil {
		return n, nil
	}

	_, firstView, err := s.repo.EnsureTrackingViewed(*viewerID, noticeID)
	if err != nil {
		s.logger.Error("failed to record notice view", "notice_id", noticeID, "user_id", *viewerID, "error", err)
		return n, nil
	}
	if firstView {
		if err := s.repo.AppendActivity(viewerID, ActionViewed, &noticeID); err != nil {
			s.logger.Error("failed to record view activity", "notice_id", noticeID, "error", err)
		}
	}

	return n, nil
}

// Tracking returns the delivery and read state for one notice.
func (s *Service) Tracking(noticeID int64) ([]DistributionView, []TrackingView, error) {
	if _, err := s.repo.GetByID(noticeID); err != nil {
		return nil, nil, err
	}

	distributions, err := s.repo.DistributionsForNotice(noticeID)
	if err != nil {
		return nil, nil, err
	}
	tracking, err := s.repo.TrackingForNotice(noticeID)
	if err != nil {
		return nil, nil, err
	}
	return distributions, tracking, nil
}

// MarkDownloaded records that the user pulled the notice attachment. The
// first download stamps download_time; repeats are no-ops.
func (s *Service) MarkDownloaded(noticeID, userID int64) (*TrackingView, error) {
	if _, err := s.repo.GetByID(noticeID); err != nil {
		return nil, err
	}

	var tracking *TrackingView
	err := s.repo.Transaction(func(tx Repository) error {
		t, err := tx.MarkDownloaded(userID, noticeID)
		if err != nil {
			return err
		}
		tracking = t
		return tx.AppendActivity(&userID, ActionDownloaded, &noticeID)
	})
	if err != nil {
		return nil, err
	}
	return tracking, nil
}
