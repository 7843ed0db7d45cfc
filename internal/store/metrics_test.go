package store

import (
	"testing"

	"github.com/chasecurtis1991/vynlo-ai-dashboard/internal/models"
)

func TestMetricsSeed(t *testing.T) {
	s := NewMetricsStore(newTestDB(t))

	if err := s.SeedIfEmpty(); err != nil {
		t.Fatalf("seed: %v", err)
	}

	t.Run("seeds thirty days", func(t *testing.T) {
		resp, err := s.TasksOverTime(365)
		if err != nil {
			t.Fatalf("tasks over time: %v", err)
		}
		if len(resp.Labels) != 30 {
			t.Fatalf("expected 30 days, got %d", len(resp.Labels))
		}
	})

	t.Run("second seed is a no-op", func(t *testing.T) {
		if err := s.SeedIfEmpty(); err != nil {
			t.Fatalf("second seed: %v", err)
		}
		resp, _ := s.TasksOverTime(365)
		if len(resp.Labels) != 30 {
			t.Fatalf("second seed changed row count: %d", len(resp.Labels))
		}
	})
}

func TestTasksOverTime(t *testing.T) {
	s := NewMetricsStore(newTestDB(t))
	if err := s.SeedIfEmpty(); err != nil {
		t.Fatalf("seed: %v", err)
	}

	resp, err := s.TasksOverTime(7)
	if err != nil {
		t.Fatalf("tasks over time: %v", err)
	}
	if len(resp.Labels) != 7 || len(resp.Tasks) != 7 || len(resp.Automations) != 7 {
		t.Fatalf("expected 7 aligned points, got %d/%d/%d",
			len(resp.Labels), len(resp.Tasks), len(resp.Automations))
	}
	for i := 1; i < len(resp.Labels); i++ {
		if resp.Labels[i-1] >= resp.Labels[i] {
			t.Fatalf("dates not ascending: %s >= %s", resp.Labels[i-1], resp.Labels[i])
		}
	}
}

func TestAIActivity(t *testing.T) {
	s := NewMetricsStore(newTestDB(t))
	if err := s.SeedIfEmpty(); err != nil {
		t.Fatalf("seed: %v", err)
	}

	resp, err := s.AIActivity(7)
	if err != nil {
		t.Fatalf("ai activity: %v", err)
	}
	if len(resp.Labels) != 7 || len(resp.AIResponses) != 7 || len(resp.Efficiency) != 7 {
		t.Fatalf("expected 7 aligned points, got %d/%d/%d",
			len(resp.Labels), len(resp.AIResponses), len(resp.Efficiency))
	}
	for _, e := range resp.Efficiency {
		// Seeded efficiency is drawn from [70, 100).
		if e < 70 || e > 100 {
			t.Fatalf("efficiency out of seeded range: %d", e)
		}
	}
}

func TestSummary(t *testing.T) {
	t.Run("empty table reports zeros", func(t *testing.T) {
		s := NewMetricsStore(newTestDB(t))
		sum, err := s.Summary()
		if err != nil {
			t.Fatalf("summary: %v", err)
		}
		if sum.TotalTasks != 0 || sum.TotalAutomations != 0 ||
			sum.TotalAIResponses != 0 || sum.AvgEfficiency != 0 {
			t.Fatalf("expected zeroed summary, got %+v", sum)
		}
	})

	t.Run("seeded table aggregates", func(t *testing.T) {
		s := NewMetricsStore(newTestDB(t))
		if err := s.SeedIfEmpty(); err != nil {
			t.Fatalf("seed: %v", err)
		}
		sum, err := s.Summary()
		if err != nil {
			t.Fatalf("summary: %v", err)
		}
		if sum.TotalTasks == 0 || sum.AvgEfficiency < 70 {
			t.Fatalf("unexpected summary: %+v", sum)
		}
	})
}

func TestEvents(t *testing.T) {
	s := NewMetricsStore(newTestDB(t))

	t.Run("record and fetch", func(t *testing.T) {
		value := 3
		id, err := s.RecordEvent(&models.RecordEventRequest{
			EventType: "automation",
			EventName: "report generated",
			Value:     &value,
			Metadata:  map[string]any{"source": "scheduler"},
		})
		if err != nil {
			t.Fatalf("record: %v", err)
		}
		if id == 0 {
			t.Fatal("expected non-zero event id")
		}

		events, err := s.RecentEvents(10)
		if err != nil {
			t.Fatalf("recent: %v", err)
		}
		if len(events) != 1 {
			t.Fatalf("expected 1 event, got %d", len(events))
		}
		e := events[0]
		if e.EventType != "automation" || e.EventName != "report generated" || e.Value != 3 {
			t.Fatalf("unexpected event: %+v", e)
		}
		if e.Metadata == nil {
			t.Fatal("expected metadata to round-trip")
		}
	})

	t.Run("value defaults to one and metadata stays null", func(t *testing.T) {
		if _, err := s.RecordEvent(&models.RecordEventRequest{
			EventType: "task",
			EventName: "created",
		}); err != nil {
			t.Fatalf("record: %v", err)
		}
		events, _ := s.RecentEvents(1)
		if events[0].Value != 1 {
			t.Fatalf("expected default value 1, got %d", events[0].Value)
		}
		if events[0].Metadata != nil {
			t.Fatalf("expected nil metadata, got %v", *events[0].Metadata)
		}
	})

	t.Run("limit caps the feed", func(t *testing.T) {
		for i := 0; i < 5; i++ {
			s.RecordEvent(&models.RecordEventRequest{EventType: "task", EventName: "touched"})
		}
		events, err := s.RecentEvents(2)
		if err != nil {
			t.Fatalf("recent: %v", err)
		}
		if len(events) != 2 {
			t.Fatalf("expected 2 events, got %d", len(events))
		}
	})
}

func TestDistribution(t *testing.T) {
	db := newTestDB(t)
	metrics := NewMetricsStore(db)
	tasks := NewTaskStore(db)

	mustCreate(t, tasks, "one", models.StatusPending)
	mustCreate(t, tasks, "two", models.StatusPending)
	mustCreate(t, tasks, "three", models.StatusCompleted)

	dist, err := metrics.Distribution()
	if err != nil {
		t.Fatalf("distribution: %v", err)
	}
	counts := make(map[string]int)
	for i, label := range dist.Labels {
		counts[label] = dist.Data[i]
	}
	if counts["pending"] != 2 || counts["completed"] != 1 {
		t.Fatalf("unexpected distribution: %v", counts)
	}
}
