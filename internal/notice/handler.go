package notice

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"

	apperrors "github.com/frahmantamala/notice-management/internal"
	"github.com/frahmantamala/notice-management/internal/auth"
	"github.com/frahmantamala/notice-management/internal/transport"
	"github.com/frahmantamala/notice-management/pkg/logger"
)

type ServiceAPI interface {
	Create(userID int64, dto CreateNoticeDTO) (*Notice, error)
	Update(noticeID, actorID int64, dto UpdateNoticeDTO) (*Notice, error)
	Approve(ctx context.Context, noticeID, approverID int64, departmentIDs []int64) (*ApprovalSummary, error)
	Archive(noticeID, actorID int64) (*Notice, error)
	List(filter ListFilter) ([]*Notice, error)
	Get(noticeID int64, viewerID *int64) (*Notice, error)
	Tracking(noticeID int64) ([]DistributionView, []TrackingView, error)
	MarkDownloaded(noticeID, userID int64) (*TrackingView, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(service ServiceAPI) *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     service,
	}
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	user := auth.UserFromContext(r.Context())
	if user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var dto CreateNoticeDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	n, err := h.Service.Create(user.ID, dto)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, n)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	user := auth.UserFromContext(r.Context())
	if user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	noticeID, ok := h.idParam(w, r)
	if !ok {
		return
	}

	var dto UpdateNoticeDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	n, err := h.Service.Update(noticeID, user.ID, dto)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, n)
}

func (h *Handler) Approve(w http.ResponseWriter, r *http.Request) {
	user := auth.UserFromContext(r.Context())
	if user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	noticeID, ok := h.idParam(w, r)
	if !ok {
		return
	}

	// The body is optional; with no department_ids the notice is approved
	// without being distributed.
	var dto ApproveDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil && err != io.EOF {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	summary, err := h.Service.Approve(r.Context(), noticeID, user.ID, dto.DepartmentIDs)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, summary)
}

func (h *Handler) Archive(w http.ResponseWriter, r *http.Request) {
	user := auth.UserFromContext(r.Context())
	if user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	noticeID, ok := h.idParam(w, r)
	if !ok {
		return
	}

	if _, err := h.Service.Archive(noticeID, user.ID); err != nil {
		h.writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// List handles GET /notices. The listing is public; limit and offset page
// the result only when the caller asks for them.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	filter := ListFilter{
		Status:   r.URL.Query().Get("status"),
		Priority: r.URL.Query().Get("priority"),
	}

	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 {
			filter.Limit = l
		}
	}
	if offsetStr := r.URL.Query().Get("offset"); offsetStr != "" {
		if o, err := strconv.Atoi(offsetStr); err == nil && o >= 0 {
			filter.Offset = o
		}
	}
	if deptStr := r.URL.Query().Get("department_id"); deptStr != "" {
		if d, err := strconv.ParseInt(deptStr, 10, 64); err == nil && d > 0 {
			filter.DepartmentID = d
		}
	}

	notices, err := h.Service.List(filter)
	if err != nil {
		h.Logger.Error("failed to list notices", "error", err)
		h.WriteError(w, http.StatusInternalServerError, "failed to list notices")
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"notices": notices,
	})
}

// Get handles GET /notices/{id}. A logged-in reader gets a first-view
// timestamp recorded as a side effect.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	noticeID, ok := h.idParam(w, r)
	if !ok {
		return
	}

	var viewerID *int64
	if user := auth.UserFromContext(r.Context()); user != nil {
		viewerID = &user.ID
	}

	n, err := h.Service.Get(noticeID, viewerID)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, n)
}

func (h *Handler) Tracking(w http.ResponseWriter, r *http.Request) {
	noticeID, ok := h.idParam(w, r)
	if !ok {
		return
	}

	distributions, tracking, err := h.Service.Tracking(noticeID)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"distributions": distributions,
		"tracking":      tracking,
	})
}

func (h *Handler) MarkDownloaded(w http.ResponseWriter, r *http.Request) {
	user := auth.UserFromContext(r.Context())
	if user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	noticeID, ok := h.idParam(w, r)
	if !ok {
		return
	}

	tracking, err := h.Service.MarkDownloaded(noticeID, user.ID)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, tracking)
}

func (h *Handler) idParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid notice ID")
		return 0, false
	}
	return id, true
}

func (h *Handler) writeServiceError(w http.ResponseWriter, err error) {
	if appErr, ok := apperrors.IsAppError(err); ok {
		status, body := appErr.ToHTTPResponse()
		h.WriteJSON(w, status, body)
		return
	}

	switch {
	case errors.Is(err, ErrNotFound):
		h.WriteError(w, http.StatusNotFound, "notice not found")
	case errors.Is(err, ErrInvalidStatus):
		h.WriteError(w, http.StatusBadRequest, "notice cannot be modified in current status")
	case errors.Is(err, ErrUnauthorizedAccess):
		h.WriteError(w, http.StatusForbidden, "insufficient permissions")
	default:
		h.Logger.Error("notice operation failed", "error", err)
		h.WriteError(w, http.StatusInternalServerError, "internal server error")
	}
}
