package api

import (
	"net/http"
	"strconv"

	"github.com/chasecurtis1991/vynlo-ai-dashboard/internal/models"
	"github.com/chasecurtis1991/vynlo-ai-dashboard/internal/store"
)

type AnalyticsHandler struct {
	store *store.MetricsStore
}

func NewAnalyticsHandler(s *store.MetricsStore) *AnalyticsHandler {
	return &AnalyticsHandler{store: s}
}

// queryInt parses a positive integer query parameter, falling back on the
// default for missing or malformed values.
func queryInt(r *http.Request, key string, fallback int) int {
	if v := r.URL.Query().Get(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}

// TasksOverTime handles GET /api/analytics/tasks-over-time
func (h *AnalyticsHandler) TasksOverTime(w http.ResponseWriter, r *http.Request) {
	resp, err := h.store.TasksOverTime(queryInt(r, "days", 30))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// AIActivity handles GET /api/analytics/ai-activity
func (h *AnalyticsHandler) AIActivity(w http.ResponseWriter, r *http.Request) {
	resp, err := h.store.AIActivity(queryInt(r, "days", 30))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// Summary handles GET /api/analytics/summary
func (h *AnalyticsHandler) Summary(w http.ResponseWriter, r *http.Request) {
	resp, err := h.store.Summary()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// Events handles GET /api/analytics/events
func (h *AnalyticsHandler) Events(w http.ResponseWriter, r *http.Request) {
	events, err := h.store.RecentEvents(queryInt(r, "limit", 10))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, events)
}

// RecordEvent handles POST /api/analytics/events
func (h *AnalyticsHandler) RecordEvent(w http.ResponseWriter, r *http.Request) {
	var req models.RecordEventRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if req.EventType == "" || req.EventName == "" {
		writeError(w, http.StatusBadRequest, "event_type and event_name are required")
		return
	}

	id, err := h.store.RecordEvent(&req)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"id":      id,
		"message": "Event recorded",
	})
}

// Distribution handles GET /api/analytics/task-distribution
func (h *AnalyticsHandler) Distribution(w http.ResponseWriter, r *http.Request) {
	resp, err := h.store.Distribution()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
