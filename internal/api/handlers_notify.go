package api

import (
	"errors"
	"net/http"

	"github.com/chasecurtis1991/vynlo-ai-dashboard/internal/notify"
)

// NotifyHandler relays dashboard notifications to the Telegram bot. The
// client is nil when the server has no bot credentials configured.
type NotifyHandler struct {
	client *notify.Client
}

func NewNotifyHandler(client *notify.Client) *NotifyHandler {
	return &NotifyHandler{client: client}
}

type notifyRequest struct {
	Message string `json:"message"`
}

// Send handles POST /api/notify
func (h *NotifyHandler) Send(w http.ResponseWriter, r *http.Request) {
	if h.client == nil {
		writeError(w, http.StatusServiceUnavailable, "telegram credentials not configured")
		return
	}

	var req notifyRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if req.Message == "" {
		writeError(w, http.StatusBadRequest, "message is required")
		return
	}

	err := h.client.Send(req.Message)
	var rejected *notify.RejectedError
	if errors.As(err, &rejected) {
		writeError(w, http.StatusBadRequest, rejected.Description)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to send message")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
