package scheduler

import (
	"context"
	"testing"

	"github.com/Kento03Onodera/pick-re-crm/internal/leads/repository"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

func newTestClient(t *testing.T) *Client {
	t.Helper()
	mr := miniredis.RunT(t)
	opt := asynq.RedisClientOpt{Addr: mr.Addr()}
	c := &Client{
		client:    asynq.NewClient(opt),
		inspector: asynq.NewInspector(opt),
		queue:     "default",
	}
	t.Cleanup(func() { c.Close() })
	return c
}

func scheduledTasks(t *testing.T, c *Client) []*asynq.TaskInfo {
	t.Helper()
	tasks, err := c.inspector.ListScheduledTasks(c.queue)
	if err != nil {
		t.Fatalf("ListScheduledTasks: %v", err)
	}
	return tasks
}

func TestScheduleSearchDigestReplacesPending(t *testing.T) {
	c := newTestClient(t)
	leadID := uuid.New()

	if err := c.ScheduleSearchDigest(context.Background(), leadID, FrequencyOneWeek); err != nil {
		t.Fatalf("first schedule: %v", err)
	}
	if err := c.ScheduleSearchDigest(context.Background(), leadID, FrequencyThreeDays); err != nil {
		t.Fatalf("reschedule: %v", err)
	}

	tasks := scheduledTasks(t, c)
	if len(tasks) != 1 {
		t.Fatalf("got %d scheduled tasks, want 1", len(tasks))
	}
	if tasks[0].ID != searchDigestTaskID(leadID.String()) {
		t.Errorf("task id = %s, want %s", tasks[0].ID, searchDigestTaskID(leadID.String()))
	}
	payload, err := ParseSearchDigestPayload(asynq.NewTask(tasks[0].Type, tasks[0].Payload))
	if err != nil {
		t.Fatalf("parse payload: %v", err)
	}
	if payload.Frequency != FrequencyThreeDays {
		t.Errorf("payload frequency = %s, want %s", payload.Frequency, FrequencyThreeDays)
	}
}

// A chain enqueue must succeed while the lead-scoped task id is still
// taken, since the worker calls it from inside the handler for that
// very task.
func TestScheduleNextDigestDoesNotTouchLeadScopedTask(t *testing.T) {
	c := newTestClient(t)
	leadID := uuid.New()

	if err := c.ScheduleSearchDigest(context.Background(), leadID, FrequencyOneWeek); err != nil {
		t.Fatalf("schedule: %v", err)
	}
	if err := c.ScheduleNextDigest(context.Background(), leadID, FrequencyOneWeek); err != nil {
		t.Fatalf("chain enqueue: %v", err)
	}

	tasks := scheduledTasks(t, c)
	if len(tasks) != 2 {
		t.Fatalf("got %d scheduled tasks, want 2", len(tasks))
	}

	leadScoped := 0
	for _, task := range tasks {
		if task.ID == searchDigestTaskID(leadID.String()) {
			leadScoped++
		}
	}
	if leadScoped != 1 {
		t.Errorf("got %d tasks with the lead-scoped id, want 1", leadScoped)
	}
}

func TestCancelSearchDigest(t *testing.T) {
	c := newTestClient(t)
	leadID := uuid.New()

	if err := c.CancelSearchDigest(context.Background(), leadID); err != nil {
		t.Fatalf("cancel with nothing pending: %v", err)
	}

	if err := c.ScheduleSearchDigest(context.Background(), leadID, FrequencyOneWeek); err != nil {
		t.Fatalf("schedule: %v", err)
	}
	if err := c.ScheduleNextDigest(context.Background(), leadID, FrequencyOneWeek); err != nil {
		t.Fatalf("chain enqueue: %v", err)
	}
	if err := c.CancelSearchDigest(context.Background(), leadID); err != nil {
		t.Fatalf("cancel: %v", err)
	}

	for _, task := range scheduledTasks(t, c) {
		if task.ID == searchDigestTaskID(leadID.String()) {
			t.Errorf("lead-scoped task still pending after cancel")
		}
	}
}

func TestDigestFrequency(t *testing.T) {
	oneWeek := FrequencyOneWeek

	tests := []struct {
		name    string
		stored  *string
		payload string
		want    string
		wantOK  bool
	}{
		{"no stored frequency", nil, FrequencyThreeDays, FrequencyThreeDays, true},
		{"matching frequency", &oneWeek, FrequencyOneWeek, FrequencyOneWeek, true},
		{"stale chain after frequency change", &oneWeek, FrequencyThreeDays, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lead := repository.Lead{SearchFrequency: tt.stored}
			got, ok := digestFrequency(lead, SearchDigestPayload{Frequency: tt.payload})
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("digestFrequency = (%q, %v), want (%q, %v)", got, ok, tt.want, tt.wantOK)
			}
		})
	}
}
