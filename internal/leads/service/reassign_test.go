package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Kento03Onodera/pick-re-crm/internal/events"
	"github.com/Kento03Onodera/pick-re-crm/internal/leads/domain"
	"github.com/Kento03Onodera/pick-re-crm/internal/leads/repository"
	"github.com/Kento03Onodera/pick-re-crm/internal/leads/transport"
	"github.com/Kento03Onodera/pick-re-crm/platform/apperr"

	"github.com/google/uuid"
)

// fakeStore serves one canned lead and records writes.
type fakeStore struct {
	lead         repository.Lead
	createParams repository.CreateLeadParams
	createCalls  int
	updateCalls  int
	updateParams repository.UpdateLeadParams
}

func (f *fakeStore) GetByID(ctx context.Context, id uuid.UUID) (repository.Lead, error) {
	if id != f.lead.ID {
		return repository.Lead{}, repository.ErrNotFound
	}
	return f.lead, nil
}

func (f *fakeStore) Update(ctx context.Context, id uuid.UUID, params repository.UpdateLeadParams) (repository.Lead, error) {
	f.updateCalls++
	f.updateParams = params
	updated := f.lead
	if params.Status != nil {
		updated.Status = *params.Status
	}
	if params.Priority != nil {
		updated.Priority = *params.Priority
	}
	updated.UpdatedAt = updated.UpdatedAt.Add(time.Second)
	return updated, nil
}

func (f *fakeStore) Create(ctx context.Context, params repository.CreateLeadParams) (repository.Lead, error) {
	f.createCalls++
	f.createParams = params
	return repository.Lead{
		ID:                uuid.New(),
		Name:              params.Name,
		Tel:               params.Tel,
		Mail:              params.Mail,
		LeadType:          params.LeadType,
		Status:            params.Status,
		Priority:          params.Priority,
		Budget:            params.Budget,
		DiscountRate:      params.DiscountRate,
		IsSearchRequested: params.IsSearchRequested,
		SearchFrequency:   params.SearchFrequency,
	}, nil
}

func (f *fakeStore) List(ctx context.Context) ([]repository.Lead, error) { return nil, nil }

func (f *fakeStore) Delete(ctx context.Context, id uuid.UUID) error { return nil }

func (f *fakeStore) SeedLeads(ctx context.Context, batch []repository.CreateLeadParams) ([]repository.Lead, error) {
	return nil, nil
}

func (f *fakeStore) AddActivity(ctx context.Context, params repository.AddActivityParams) (repository.Activity, error) {
	return repository.Activity{}, nil
}

func (f *fakeStore) ListActivities(ctx context.Context, leadID uuid.UUID) ([]repository.Activity, error) {
	return nil, nil
}

func (f *fakeStore) UpdateActivity(ctx context.Context, leadID, activityID uuid.UUID, params repository.UpdateActivityParams) (repository.Activity, error) {
	return repository.Activity{}, nil
}

func (f *fakeStore) DeleteActivity(ctx context.Context, leadID, activityID uuid.UUID) error {
	return nil
}

// recordingBus captures published events synchronously.
type recordingBus struct {
	published []events.Event
}

func (b *recordingBus) Publish(ctx context.Context, event events.Event) {
	b.published = append(b.published, event)
}

func (b *recordingBus) PublishSync(ctx context.Context, event events.Event) error {
	b.published = append(b.published, event)
	return nil
}

func (b *recordingBus) Subscribe(eventName string, handler events.Handler) {}

func newReassignFixture(status, priority string) (*Service, *fakeStore, *recordingBus) {
	store := &fakeStore{
		lead: repository.Lead{
			ID:        uuid.New(),
			Name:      "佐藤 美咲",
			Status:    status,
			Priority:  priority,
			UpdatedAt: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
		},
	}
	bus := &recordingBus{}
	return New(store, bus, nil), store, bus
}

func TestReassignDropOnCurrentGroupIsNoOp(t *testing.T) {
	tests := []struct {
		name string
		req  transport.ReassignRequest
	}{
		{"status dimension", transport.ReassignRequest{Dimension: domain.GroupByStatus, Target: domain.StatusNegotiating}},
		{"priority dimension", transport.ReassignRequest{Dimension: domain.GroupByPriority, Target: domain.PriorityHigh}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, store, bus := newReassignFixture(domain.StatusNegotiating, domain.PriorityHigh)

			resp, err := svc.Reassign(context.Background(), store.lead.ID, tt.req)
			if err != nil {
				t.Fatalf("Reassign: %v", err)
			}
			if store.updateCalls != 0 {
				t.Errorf("no-op performed %d writes", store.updateCalls)
			}
			if len(bus.published) != 0 {
				t.Errorf("no-op published %d events", len(bus.published))
			}
			if !resp.UpdatedAt.Equal(store.lead.UpdatedAt) {
				t.Errorf("no-op moved updatedAt from %v to %v", store.lead.UpdatedAt, resp.UpdatedAt)
			}
		})
	}
}

func TestReassignStatusMove(t *testing.T) {
	svc, store, bus := newReassignFixture(domain.StatusViewed, domain.PriorityMid)

	resp, err := svc.Reassign(context.Background(), store.lead.ID, transport.ReassignRequest{
		Dimension: domain.GroupByStatus,
		Target:    domain.StatusNegotiating,
	})
	if err != nil {
		t.Fatalf("Reassign: %v", err)
	}
	if resp.Status != domain.StatusNegotiating {
		t.Errorf("status = %s, want %s", resp.Status, domain.StatusNegotiating)
	}
	if store.updateCalls != 1 {
		t.Fatalf("update calls = %d, want 1", store.updateCalls)
	}

	// Only the moved column may be touched.
	params := store.updateParams
	if params.Status == nil || *params.Status != domain.StatusNegotiating {
		t.Error("status not set in update params")
	}
	if params.Priority != nil || params.Name != nil || params.Budget != nil {
		t.Errorf("reassign touched unrelated fields: %+v", params)
	}

	if len(bus.published) != 1 {
		t.Fatalf("published %d events, want 1", len(bus.published))
	}
	moved, ok := bus.published[0].(events.LeadReassigned)
	if !ok {
		t.Fatalf("published %T, want LeadReassigned", bus.published[0])
	}
	if moved.From != domain.StatusViewed || moved.To != domain.StatusNegotiating {
		t.Errorf("event from/to = %s/%s", moved.From, moved.To)
	}
}

func TestReassignRejectsUnknownTargets(t *testing.T) {
	tests := []struct {
		name string
		req  transport.ReassignRequest
	}{
		{"unknown status", transport.ReassignRequest{Dimension: domain.GroupByStatus, Target: "Archived"}},
		{"unknown priority", transport.ReassignRequest{Dimension: domain.GroupByPriority, Target: "Urgent"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, store, _ := newReassignFixture(domain.StatusNew, domain.PriorityMid)

			_, err := svc.Reassign(context.Background(), store.lead.ID, tt.req)
			var appErr *apperr.Error
			if !errors.As(err, &appErr) || appErr.Kind != apperr.KindValidation {
				t.Fatalf("got %v, want validation error", err)
			}
			if store.updateCalls != 0 {
				t.Errorf("rejected target still performed %d writes", store.updateCalls)
			}
		})
	}
}

func TestReassignLeadNotFound(t *testing.T) {
	svc, _, _ := newReassignFixture(domain.StatusNew, domain.PriorityMid)

	_, err := svc.Reassign(context.Background(), uuid.New(), transport.ReassignRequest{
		Dimension: domain.GroupByStatus,
		Target:    domain.StatusSent,
	})
	var appErr *apperr.Error
	if !errors.As(err, &appErr) || appErr.Kind != apperr.KindNotFound {
		t.Fatalf("got %v, want not found error", err)
	}
}
