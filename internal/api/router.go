package api

import (
	"log/slog"

	"github.com/go-chi/chi/v5"

	"github.com/chasecurtis1991/vynlo-ai-dashboard/internal/notify"
	"github.com/chasecurtis1991/vynlo-ai-dashboard/internal/store"
)

// NewRouter creates the Chi router with all routes and middleware. notifier
// may be nil when no Telegram credentials are configured.
func NewRouter(
	db *store.DB,
	tasks *store.TaskStore,
	metrics *store.MetricsStore,
	notifier *notify.Client,
	logger *slog.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	r.Use(CORS)
	r.Use(RequestID)
	r.Use(Logger(logger))
	r.Use(Recovery(logger))

	healthH := NewHealthHandler(db)
	taskH := NewTaskHandler(tasks)
	analyticsH := NewAnalyticsHandler(metrics)
	notifyH := NewNotifyHandler(notifier)

	r.Get("/health", healthH.Health)

	r.Route("/api/tasks", func(r chi.Router) {
		r.Get("/", taskH.List)
		r.Post("/", taskH.Create)
		// Static segment registered alongside {id}; chi prefers the
		// literal match, so stats never shadows a task fetch.
		r.Get("/stats/summary", taskH.Stats)
		r.Get("/{id}", taskH.Get)
		r.Put("/{id}", taskH.Update)
		r.Delete("/{id}", taskH.Delete)
		r.Put("/{id}/move", taskH.Move)
	})

	r.Route("/api/analytics", func(r chi.Router) {
		r.Get("/tasks-over-time", analyticsH.TasksOverTime)
		r.Get("/ai-activity", analyticsH.AIActivity)
		r.Get("/summary", analyticsH.Summary)
		r.Get("/events", analyticsH.Events)
		r.Post("/events", analyticsH.RecordEvent)
		r.Get("/task-distribution", analyticsH.Distribution)
	})

	r.Post("/api/notify", notifyH.Send)

	return r
}
