package store

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/chasecurtis1991/vynlo-ai-dashboard/internal/models"
)

// taskColumns is the canonical column list for all SELECT queries.
// Order must match scanOne/scanMany.
const taskColumns = `id, title, description, status, priority, category,
	task_order, created_at, updated_at, completed_at, due_date`

// timeFormat is how timestamps are stored and served (UTC, second precision).
const timeFormat = "2006-01-02 15:04:05"

func nowStamp() string {
	return time.Now().UTC().Format(timeFormat)
}

// TaskStore handles task CRUD and the per-column ordering on SQLite.
//
// Invariant: for every status column, the task_order values of its tasks are
// exactly {0..n-1}. Every operation that can disturb that set (create, move,
// delete) runs inside a single transaction and either commits the fully
// renumbered state or leaves the table untouched.
type TaskStore struct {
	db *DB
}

func NewTaskStore(db *DB) *TaskStore {
	return &TaskStore{db: db}
}

// withTx runs fn inside a transaction, rolling back on any error.
func (s *TaskStore) withTx(fn func(tx *sql.Tx) error) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

// List returns tasks matching the filter, ordered by task_order with
// created_at (newest first) as the tie-break across columns.
func (s *TaskStore) List(f models.TaskFilter) ([]*models.Task, error) {
	query := fmt.Sprintf(`SELECT %s FROM tasks WHERE 1=1`, taskColumns)
	var args []any

	if f.Status != "" && f.Status != "all" {
		query += ` AND status = ?`
		args = append(args, f.Status)
	}
	if f.Priority != "" && f.Priority != "all" {
		query += ` AND priority = ?`
		args = append(args, f.Priority)
	}
	if f.Category != "" && f.Category != "all" {
		query += ` AND category = ?`
		args = append(args, f.Category)
	}
	if f.Search != "" {
		query += ` AND (title LIKE ? OR description LIKE ?)`
		pattern := "%" + f.Search + "%"
		args = append(args, pattern, pattern)
	}

	query += ` ORDER BY task_order ASC, created_at DESC`

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()
	return scanMany(rows)
}

// GetByID fetches a single task, returning ErrNotFound when it is missing.
func (s *TaskStore) GetByID(id int64) (*models.Task, error) {
	t, err := scanOne(s.db.QueryRow(
		fmt.Sprintf(`SELECT %s FROM tasks WHERE id = ?`, taskColumns), id))
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	return t, err
}

// Create inserts a new task at the bottom of its status column. The ordinal
// lookup and the insert share one transaction so concurrent creates in the
// same column cannot claim the same slot.
func (s *TaskStore) Create(req *models.CreateTaskRequest) (int64, error) {
	now := nowStamp()
	var id int64
	err := s.withTx(func(tx *sql.Tx) error {
		var maxOrder int
		if err := tx.QueryRow(
			`SELECT COALESCE(MAX(task_order), -1) FROM tasks WHERE status = ?`,
			string(req.Status),
		).Scan(&maxOrder); err != nil {
			return fmt.Errorf("max order: %w", err)
		}

		res, err := tx.Exec(`
			INSERT INTO tasks (title, description, status, priority, category, task_order, due_date, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, req.Title, req.Description, string(req.Status), string(req.Priority),
			req.Category, maxOrder+1, req.DueDate, now, now)
		if err != nil {
			return fmt.Errorf("insert task: %w", err)
		}
		id, err = res.LastInsertId()
		if err != nil {
			return fmt.Errorf("last insert id: %w", err)
		}
		return nil
	})
	return id, err
}

// Update applies partial field updates. Nil request fields keep their stored
// value. The first transition to completed stamps completed_at; later updates
// leave it alone. task_order is deliberately untouched; callers that need a
// column change with correct ordering use Move.
func (s *TaskStore) Update(id int64, req *models.UpdateTaskRequest) error {
	now := nowStamp()
	sets := []string{"updated_at = ?"}
	args := []any{now}

	if req.Title != nil {
		sets = append(sets, "title = ?")
		args = append(args, *req.Title)
	}
	if req.Description != nil {
		sets = append(sets, "description = ?")
		args = append(args, *req.Description)
	}
	if req.Status != nil {
		sets = append(sets, "status = ?")
		args = append(args, string(*req.Status))
		if *req.Status == models.StatusCompleted {
			sets = append(sets, "completed_at = COALESCE(completed_at, ?)")
			args = append(args, now)
		}
	}
	if req.Priority != nil {
		sets = append(sets, "priority = ?")
		args = append(args, string(*req.Priority))
	}
	if req.Category != nil {
		sets = append(sets, "category = ?")
		args = append(args, *req.Category)
	}
	if req.DueDate != nil {
		sets = append(sets, "due_date = ?")
		args = append(args, *req.DueDate)
	}

	args = append(args, id)
	query := fmt.Sprintf("UPDATE tasks SET %s WHERE id = ?", strings.Join(sets, ", "))
	res, err := s.db.Exec(query, args...)
	if err != nil {
		return fmt.Errorf("update task: %w", err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// Move relocates a task to (newStatus, newOrder), renumbering every ordinal
// it disturbs in one transaction.
//
// Same-column moves reinsert the task: the tasks between the old and new
// position shift by one toward the vacated slot. Cross-column moves compact
// the source column, clamp the requested position to the end of the
// destination column, and open a slot there. A move onto the task's current
// position is a no-op.
func (s *TaskStore) Move(id int64, newStatus models.Status, newOrder int) error {
	return s.withTx(func(tx *sql.Tx) error {
		var oldStatus string
		var oldOrder int
		err := tx.QueryRow(`SELECT status, task_order FROM tasks WHERE id = ?`, id).
			Scan(&oldStatus, &oldOrder)
		if err == sql.ErrNoRows {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("load task: %w", err)
		}

		target := newOrder
		if target < 0 {
			target = 0
		}

		if oldStatus == string(newStatus) {
			var count int
			if err := tx.QueryRow(
				`SELECT COUNT(*) FROM tasks WHERE status = ?`, oldStatus,
			).Scan(&count); err != nil {
				return fmt.Errorf("count column: %w", err)
			}
			if target > count-1 {
				target = count - 1
			}

			switch {
			case target < oldOrder:
				if _, err := tx.Exec(
					`UPDATE tasks SET task_order = task_order + 1 WHERE status = ? AND task_order >= ? AND task_order < ?`,
					oldStatus, target, oldOrder,
				); err != nil {
					return fmt.Errorf("shift down: %w", err)
				}
			case target > oldOrder:
				if _, err := tx.Exec(
					`UPDATE tasks SET task_order = task_order - 1 WHERE status = ? AND task_order > ? AND task_order <= ?`,
					oldStatus, oldOrder, target,
				); err != nil {
					return fmt.Errorf("shift up: %w", err)
				}
			default:
				return nil
			}
		} else {
			// Close the gap in the source column.
			if _, err := tx.Exec(
				`UPDATE tasks SET task_order = task_order - 1 WHERE status = ? AND task_order > ?`,
				oldStatus, oldOrder,
			); err != nil {
				return fmt.Errorf("compact source: %w", err)
			}

			var maxOrder int
			if err := tx.QueryRow(
				`SELECT COALESCE(MAX(task_order), -1) FROM tasks WHERE status = ?`,
				string(newStatus),
			).Scan(&maxOrder); err != nil {
				return fmt.Errorf("max order: %w", err)
			}
			if target > maxOrder+1 {
				target = maxOrder + 1
			}

			// Open a slot in the destination column.
			if _, err := tx.Exec(
				`UPDATE tasks SET task_order = task_order + 1 WHERE status = ? AND task_order >= ?`,
				string(newStatus), target,
			); err != nil {
				return fmt.Errorf("open slot: %w", err)
			}
		}

		now := nowStamp()
		if newStatus == models.StatusCompleted {
			_, err = tx.Exec(
				`UPDATE tasks SET status = ?, task_order = ?, updated_at = ?, completed_at = COALESCE(completed_at, ?) WHERE id = ?`,
				string(newStatus), target, now, now, id)
		} else {
			_, err = tx.Exec(
				`UPDATE tasks SET status = ?, task_order = ?, updated_at = ? WHERE id = ?`,
				string(newStatus), target, now, id)
		}
		if err != nil {
			return fmt.Errorf("place task: %w", err)
		}
		return nil
	})
}

// Delete removes a task and compacts the ordinals of the column it vacates.
func (s *TaskStore) Delete(id int64) error {
	return s.withTx(func(tx *sql.Tx) error {
		var status string
		var order int
		err := tx.QueryRow(`SELECT status, task_order FROM tasks WHERE id = ?`, id).
			Scan(&status, &order)
		if err == sql.ErrNoRows {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("load task: %w", err)
		}

		if _, err := tx.Exec(`DELETE FROM tasks WHERE id = ?`, id); err != nil {
			return fmt.Errorf("delete task: %w", err)
		}
		if _, err := tx.Exec(
			`UPDATE tasks SET task_order = task_order - 1 WHERE status = ? AND task_order > ?`,
			status, order,
		); err != nil {
			return fmt.Errorf("compact column: %w", err)
		}
		return nil
	})
}

// Stats returns the total task count and the per-status breakdown.
func (s *TaskStore) Stats() (*models.TaskStats, error) {
	var st models.TaskStats
	err := s.db.QueryRow(`
		SELECT
			COUNT(*),
			COALESCE(SUM(CASE WHEN status = 'pending' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN status = 'in_progress' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN status = 'completed' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN status = 'cancelled' THEN 1 ELSE 0 END), 0)
		FROM tasks
	`).Scan(&st.Total, &st.Pending, &st.InProgress, &st.Completed, &st.Cancelled)
	if err != nil {
		return nil, fmt.Errorf("task stats: %w", err)
	}
	return &st, nil
}

// SeedIfEmpty inserts the sample board when the tasks table has no rows.
// Ordinals are assigned densely per status column.
func (s *TaskStore) SeedIfEmpty() error {
	count, err := s.db.TaskCount()
	if err != nil {
		return fmt.Errorf("count tasks: %w", err)
	}
	if count > 0 {
		return nil
	}

	seed := []struct {
		title    string
		status   models.Status
		priority models.Priority
		category string
	}{
		{"Process customer request", models.StatusCompleted, models.PriorityHigh, "support"},
		{"Generate daily report", models.StatusCompleted, models.PriorityMedium, "reports"},
		{"Update database", models.StatusCompleted, models.PriorityHigh, "development"},
		{"Send notifications", models.StatusInProgress, models.PriorityMedium, "automation"},
		{"Analyze metrics", models.StatusInProgress, models.PriorityLow, "analytics"},
		{"Review emails", models.StatusPending, models.PriorityMedium, "communication"},
		{"Schedule meeting", models.StatusPending, models.PriorityLow, "meetings"},
		{"Backup files", models.StatusPending, models.PriorityLow, "maintenance"},
		{"Code review", models.StatusPending, models.PriorityHigh, "development"},
		{"Update documentation", models.StatusPending, models.PriorityMedium, "documentation"},
	}

	now := nowStamp()
	return s.withTx(func(tx *sql.Tx) error {
		ordinals := make(map[models.Status]int)
		for _, t := range seed {
			order := ordinals[t.status]
			ordinals[t.status]++

			var completedAt any
			if t.status == models.StatusCompleted {
				completedAt = now
			}
			if _, err := tx.Exec(`
				INSERT INTO tasks (title, status, priority, category, task_order, created_at, updated_at, completed_at)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?)
			`, t.title, string(t.status), string(t.priority), t.category, order, now, now, completedAt); err != nil {
				return fmt.Errorf("seed task %q: %w", t.title, err)
			}
		}
		return nil
	})
}

func scanOne(row *sql.Row) (*models.Task, error) {
	var t models.Task
	err := row.Scan(
		&t.ID, &t.Title, &t.Description, &t.Status, &t.Priority, &t.Category,
		&t.TaskOrder, &t.CreatedAt, &t.UpdatedAt, &t.CompletedAt, &t.DueDate,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func scanMany(rows *sql.Rows) ([]*models.Task, error) {
	tasks := []*models.Task{}
	for rows.Next() {
		var t models.Task
		if err := rows.Scan(
			&t.ID, &t.Title, &t.Description, &t.Status, &t.Priority, &t.Category,
			&t.TaskOrder, &t.CreatedAt, &t.UpdatedAt, &t.CompletedAt, &t.DueDate,
		); err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		tasks = append(tasks, &t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return tasks, nil
}
