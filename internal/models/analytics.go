package models

// DailyMetric is one row of the seeded daily_metrics table. Read-only after
// seeding; the charts aggregate over it.
type DailyMetric struct {
	ID              int64   `json:"id"`
	Date            string  `json:"date"`
	TasksCompleted  int     `json:"tasks_completed"`
	AutomationsRun  int     `json:"automations_run"`
	AIResponses     int     `json:"ai_responses"`
	EfficiencyScore float64 `json:"efficiency_score"`
}

// AnalyticsEvent is a recorded activity-feed entry.
type AnalyticsEvent struct {
	ID        int64   `json:"id"`
	EventType string  `json:"event_type"`
	EventName string  `json:"event_name"`
	Value     int     `json:"value"`
	Metadata  *string `json:"metadata"`
	CreatedAt string  `json:"created_at"`
}

// RecordEventRequest is the payload for POST /api/analytics/events.
type RecordEventRequest struct {
	EventType string         `json:"event_type"`
	EventName string         `json:"event_name"`
	Value     *int           `json:"value"`
	Metadata  map[string]any `json:"metadata"`
}

// TasksOverTimeResponse feeds the tasks line chart, dates ascending.
type TasksOverTimeResponse struct {
	Labels      []string `json:"labels"`
	Tasks       []int    `json:"tasks"`
	Automations []int    `json:"automations"`
}

// AIActivityResponse feeds the AI activity chart, dates ascending.
type AIActivityResponse struct {
	Labels      []string `json:"labels"`
	AIResponses []int    `json:"aiResponses"`
	Efficiency  []int    `json:"efficiency"`
}

// AnalyticsSummary is the response for GET /api/analytics/summary.
type AnalyticsSummary struct {
	TotalTasks       int `json:"totalTasks"`
	TotalAutomations int `json:"totalAutomations"`
	TotalAIResponses int `json:"totalAiResponses"`
	AvgEfficiency    int `json:"avgEfficiency"`
}

// TaskDistribution feeds the status pie chart.
type TaskDistribution struct {
	Labels []string `json:"labels"`
	Data   []int    `json:"data"`
}
