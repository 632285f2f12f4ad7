package dashboard

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	departmentDomain "github.com/frahmantamala/notice-management/internal/department"
	"github.com/frahmantamala/notice-management/internal/transport"
	"github.com/frahmantamala/notice-management/pkg/logger"
)

type ServiceAPI interface {
	AdminOverview() (*AdminStats, error)
	DepartmentOverview(departmentID int64) (*DepartmentStats, error)
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

// AdminDashboard handles GET /admin/dashboard.
func (h *Handler) AdminDashboard(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Service.AdminOverview()
	if err != nil {
		h.Logger.Error("admin dashboard failed", "error", err)
		h.WriteError(w, http.StatusInternalServerError, "failed to compute dashboard")
		return
	}

	h.WriteJSON(w, http.StatusOK, stats)
}

// DepartmentDashboard handles GET /department/dashboard?department_id=.
func (h *Handler) DepartmentDashboard(w http.ResponseWriter, r *http.Request) {
	departmentID, err := strconv.ParseInt(r.URL.Query().Get("department_id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid department_id")
		return
	}

	stats, err := h.Service.DepartmentOverview(departmentID)
	if err != nil {
		if errors.Is(err, departmentDomain.ErrNotFound) {
			h.WriteError(w, http.StatusNotFound, "department not found")
			return
		}
		h.Logger.Error("department dashboard failed", "department_id", departmentID, "error", err)
		h.WriteError(w, http.StatusInternalServerError, "failed to compute dashboard")
		return
	}

	h.WriteJSON(w, http.StatusOK, stats)
}
