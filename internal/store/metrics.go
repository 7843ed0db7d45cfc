package store

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"time"

	"github.com/chasecurtis1991/vynlo-ai-dashboard/internal/models"
)

// MetricsStore serves the read-only analytics aggregates and the activity
// event feed. Nothing here participates in the task ordering invariant.
type MetricsStore struct {
	db *DB
}

func NewMetricsStore(db *DB) *MetricsStore {
	return &MetricsStore{db: db}
}

// TasksOverTime returns the most recent `days` daily metrics for the tasks
// chart, dates ascending.
func (s *MetricsStore) TasksOverTime(days int) (*models.TasksOverTimeResponse, error) {
	// Inner query picks the newest N days, outer reorders them ascending
	// for the chart axis.
	rows, err := s.db.Query(`
		SELECT date, tasks_completed, automations_run FROM (
			SELECT date, tasks_completed, automations_run
			FROM daily_metrics
			ORDER BY date DESC
			LIMIT ?
		) ORDER BY date ASC
	`, days)
	if err != nil {
		return nil, fmt.Errorf("tasks over time: %w", err)
	}
	defer rows.Close()

	resp := &models.TasksOverTimeResponse{
		Labels:      []string{},
		Tasks:       []int{},
		Automations: []int{},
	}
	for rows.Next() {
		var date string
		var tasks, automations int
		if err := rows.Scan(&date, &tasks, &automations); err != nil {
			return nil, fmt.Errorf("scan metric: %w", err)
		}
		resp.Labels = append(resp.Labels, date)
		resp.Tasks = append(resp.Tasks, tasks)
		resp.Automations = append(resp.Automations, automations)
	}
	return resp, rows.Err()
}

// AIActivity returns the most recent `days` daily metrics for the AI chart,
// dates ascending, efficiency rounded to whole percent.
func (s *MetricsStore) AIActivity(days int) (*models.AIActivityResponse, error) {
	rows, err := s.db.Query(`
		SELECT date, ai_responses, efficiency_score FROM (
			SELECT date, ai_responses, efficiency_score
			FROM daily_metrics
			ORDER BY date DESC
			LIMIT ?
		) ORDER BY date ASC
	`, days)
	if err != nil {
		return nil, fmt.Errorf("ai activity: %w", err)
	}
	defer rows.Close()

	resp := &models.AIActivityResponse{
		Labels:      []string{},
		AIResponses: []int{},
		Efficiency:  []int{},
	}
	for rows.Next() {
		var date string
		var responses int
		var efficiency float64
		if err := rows.Scan(&date, &responses, &efficiency); err != nil {
			return nil, fmt.Errorf("scan metric: %w", err)
		}
		resp.Labels = append(resp.Labels, date)
		resp.AIResponses = append(resp.AIResponses, responses)
		resp.Efficiency = append(resp.Efficiency, int(efficiency+0.5))
	}
	return resp, rows.Err()
}

// Summary aggregates all daily metrics into the dashboard header numbers.
func (s *MetricsStore) Summary() (*models.AnalyticsSummary, error) {
	var totalTasks, totalAutomations, totalResponses int
	var avgEfficiency float64
	err := s.db.QueryRow(`
		SELECT
			COALESCE(SUM(tasks_completed), 0),
			COALESCE(SUM(automations_run), 0),
			COALESCE(SUM(ai_responses), 0),
			COALESCE(AVG(efficiency_score), 0)
		FROM daily_metrics
	`).Scan(&totalTasks, &totalAutomations, &totalResponses, &avgEfficiency)
	if err != nil {
		return nil, fmt.Errorf("analytics summary: %w", err)
	}
	return &models.AnalyticsSummary{
		TotalTasks:       totalTasks,
		TotalAutomations: totalAutomations,
		TotalAIResponses: totalResponses,
		AvgEfficiency:    int(avgEfficiency + 0.5),
	}, nil
}

// Distribution groups tasks by status for the pie chart.
func (s *MetricsStore) Distribution() (*models.TaskDistribution, error) {
	rows, err := s.db.Query(`SELECT status, COUNT(*) FROM tasks GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("task distribution: %w", err)
	}
	defer rows.Close()

	dist := &models.TaskDistribution{Labels: []string{}, Data: []int{}}
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("scan distribution: %w", err)
		}
		dist.Labels = append(dist.Labels, status)
		dist.Data = append(dist.Data, count)
	}
	return dist, rows.Err()
}

// RecordEvent appends an activity-feed entry and returns its id.
func (s *MetricsStore) RecordEvent(req *models.RecordEventRequest) (int64, error) {
	value := 1
	if req.Value != nil {
		value = *req.Value
	}
	metadata, err := marshalMetadata(req.Metadata)
	if err != nil {
		return 0, err
	}

	res, err := s.db.Exec(`
		INSERT INTO analytics_events (event_type, event_name, value, metadata, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, req.EventType, req.EventName, value, metadata, nowStamp())
	if err != nil {
		return 0, fmt.Errorf("record event: %w", err)
	}
	return res.LastInsertId()
}

// RecentEvents returns the newest events, most recent first.
func (s *MetricsStore) RecentEvents(limit int) ([]models.AnalyticsEvent, error) {
	rows, err := s.db.Query(`
		SELECT id, event_type, event_name, value, metadata, created_at
		FROM analytics_events
		ORDER BY created_at DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("recent events: %w", err)
	}
	defer rows.Close()

	events := []models.AnalyticsEvent{}
	for rows.Next() {
		var e models.AnalyticsEvent
		if err := rows.Scan(&e.ID, &e.EventType, &e.EventName, &e.Value, &e.Metadata, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

// SeedIfEmpty generates the last 30 days of daily metrics when the table has
// no rows, so the charts have data on a fresh install.
func (s *MetricsStore) SeedIfEmpty() error {
	var count int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM daily_metrics`).Scan(&count); err != nil {
		return fmt.Errorf("count metrics: %w", err)
	}
	if count > 0 {
		return nil
	}

	stmt, err := s.db.Prepare(`
		INSERT OR REPLACE INTO daily_metrics (date, tasks_completed, automations_run, ai_responses, efficiency_score)
		VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("prepare seed: %w", err)
	}
	defer stmt.Close()

	today := time.Now().UTC()
	for i := 29; i >= 0; i-- {
		date := today.AddDate(0, 0, -i).Format("2006-01-02")
		if _, err := stmt.Exec(
			date,
			rand.Intn(50)+20,
			rand.Intn(30)+10,
			rand.Intn(100)+50,
			rand.Float64()*30+70,
		); err != nil {
			return fmt.Errorf("seed metric %s: %w", date, err)
		}
	}
	return nil
}

// marshalMetadata serializes event metadata for storage, returning nil for
// absent metadata so the column stays NULL.
func marshalMetadata(m map[string]any) (any, error) {
	if m == nil {
		return nil, nil
	}
	b, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("marshal metadata: %w", err)
	}
	return string(b), nil
}
