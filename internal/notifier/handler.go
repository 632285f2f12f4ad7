package notifier

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/frahmantamala/notice-management/internal/transport"
	"github.com/frahmantamala/notice-management/pkg/logger"
)

// Handler exposes the direct notification endpoints used for ad hoc sends
// outside the approval fan-out.
type Handler struct {
	*transport.BaseHandler
	Email EmailSender
	SMS   SMSSender
	Push  PushSender
}

func NewHandler(email EmailSender, sms SMSSender, push PushSender) *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Email:       email,
		SMS:         sms,
		Push:        push,
	}
}

func (h *Handler) SendEmail(w http.ResponseWriter, r *http.Request) {
	var msg EmailMessage
	if err := json.NewDecoder(r.Body).Decode(&msg); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result := h.Email.SendEmail(r.Context(), msg)
	h.WriteJSON(w, http.StatusOK, result)
}

func (h *Handler) SendSMS(w http.ResponseWriter, r *http.Request) {
	var msg SMSMessage
	if err := json.NewDecoder(r.Body).Decode(&msg); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result := h.SMS.SendSMS(r.Context(), msg)
	h.WriteJSON(w, http.StatusOK, result)
}

func (h *Handler) SendPush(w http.ResponseWriter, r *http.Request) {
	var msg PushMessage
	if err := json.NewDecoder(r.Body).Decode(&msg); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result := h.Push.SendPush(r.Context(), msg)
	h.WriteJSON(w, http.StatusOK, result)
}
