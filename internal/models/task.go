package models

// Task is the core board entity stored in SQLite. Within each status column
// the task_order values of all tasks form a dense sequence 0..n-1.
type Task struct {
	ID          int64    `json:"id"`
	Title       string   `json:"title"`
	Description *string  `json:"description"`
	Status      Status   `json:"status"`
	Priority    Priority `json:"priority"`
	Category    string   `json:"category"`
	TaskOrder   int      `json:"task_order"`
	CreatedAt   string   `json:"created_at"`
	UpdatedAt   string   `json:"updated_at"`
	CompletedAt *string  `json:"completed_at"`
	DueDate     *string  `json:"due_date"`
}

// Status identifies the board column a task belongs to.
type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

var ValidStatuses = map[Status]bool{
	StatusPending:    true,
	StatusInProgress: true,
	StatusCompleted:  true,
	StatusCancelled:  true,
}

func (s Status) IsValid() bool {
	return ValidStatuses[s]
}

// Priority represents task urgency.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

var ValidPriorities = map[Priority]bool{
	PriorityLow:    true,
	PriorityMedium: true,
	PriorityHigh:   true,
}

func (p Priority) IsValid() bool {
	return ValidPriorities[p]
}

// DefaultCategory is applied when a task is created without one.
const DefaultCategory = "general"

// CreateTaskRequest is the payload for POST /api/tasks. Empty optional
// fields receive defaults before validation.
type CreateTaskRequest struct {
	Title       string   `json:"title"`
	Description *string  `json:"description"`
	Status      Status   `json:"status"`
	Priority    Priority `json:"priority"`
	Category    string   `json:"category"`
	DueDate     *string  `json:"due_date"`
}

// ApplyDefaults fills unset optional fields with their creation defaults.
func (r *CreateTaskRequest) ApplyDefaults() {
	if r.Status == "" {
		r.Status = StatusPending
	}
	if r.Priority == "" {
		r.Priority = PriorityMedium
	}
	if r.Category == "" {
		r.Category = DefaultCategory
	}
}

// UpdateTaskRequest is the payload for PUT /api/tasks/{id}. Nil fields keep
// their previous value; task_order is never touched by a plain update.
type UpdateTaskRequest struct {
	Title       *string   `json:"title"`
	Description *string   `json:"description"`
	Status      *Status   `json:"status"`
	Priority    *Priority `json:"priority"`
	Category    *string   `json:"category"`
	DueDate     *string   `json:"due_date"`
}

// MoveTaskRequest is the payload for PUT /api/tasks/{id}/move.
type MoveTaskRequest struct {
	Status   Status `json:"status"`
	NewOrder int    `json:"newOrder"`
}

// TaskFilter narrows GET /api/tasks. Empty or "all" means no constraint;
// Search matches title or description as a substring.
type TaskFilter struct {
	Status   string
	Priority string
	Category string
	Search   string
}

// TaskStats is the response for GET /api/tasks/stats/summary.
type TaskStats struct {
	Total      int `json:"total"`
	Pending    int `json:"pending"`
	InProgress int `json:"in_progress"`
	Completed  int `json:"completed"`
	Cancelled  int `json:"cancelled"`
}
