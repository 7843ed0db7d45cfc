package api

import (
	"net/http"

	"github.com/chasecurtis1991/vynlo-ai-dashboard/internal/store"
)

type HealthHandler struct {
	db *store.DB
}

func NewHealthHandler(db *store.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

type healthResponse struct {
	Status    string `json:"status"`
	TaskCount int    `json:"taskCount,omitempty"`
	Message   string `json:"message,omitempty"`
}

// Health handles GET /health
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	count, err := h.db.TaskCount()
	if err != nil {
		writeJSON(w, http.StatusServiceUnavailable, healthResponse{
			Status:  "degraded",
			Message: err.Error(),
		})
		return
	}
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", TaskCount: count})
}
