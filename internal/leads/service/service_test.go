package service

import (
	"context"
	"errors"
	"testing"

	"github.com/Kento03Onodera/pick-re-crm/internal/leads/domain"
	"github.com/Kento03Onodera/pick-re-crm/internal/leads/repository"
	"github.com/Kento03Onodera/pick-re-crm/internal/leads/transport"
	"github.com/Kento03Onodera/pick-re-crm/platform/apperr"

	"github.com/google/uuid"
)

func TestToLeadResponse(t *testing.T) {
	id := uuid.New()
	lead := repository.Lead{
		ID:           id,
		Name:         "田中 太郎",
		Tel:          "+819012345678",
		Status:       domain.StatusNew,
		Priority:     domain.PriorityHigh,
		Budget:       50000000,
		DiscountRate: 1.0,
	}

	resp := toLeadResponse(lead)

	if resp.ID != id {
		t.Errorf("ID = %v, want %v", resp.ID, id)
	}
	if resp.EstimatedRevenue != 1560000 {
		t.Errorf("EstimatedRevenue = %v, want 1560000", resp.EstimatedRevenue)
	}
	if resp.Tags == nil {
		t.Error("Tags should be an empty slice, not nil")
	}
	if resp.InquiredProperties == nil {
		t.Error("InquiredProperties should be an empty slice, not nil")
	}
}

func TestDemoLeadsIntegrity(t *testing.T) {
	leads := demoLeads()

	if len(leads) != 12 {
		t.Fatalf("demoLeads() returned %d leads, want 12", len(leads))
	}

	closed := 0
	for _, l := range leads {
		if l.Name == "" {
			t.Error("demo lead with empty name")
		}
		if l.Tel == "" {
			t.Errorf("demo lead %q has no phone number", l.Name)
		}
		if !domain.IsCanonicalStatus(l.Status) {
			t.Errorf("demo lead %q has unknown status %q", l.Name, l.Status)
		}
		if !domain.IsKnownPriority(l.Priority) {
			t.Errorf("demo lead %q has unknown priority %q", l.Name, l.Priority)
		}
		if l.LeadType != domain.LeadTypeBuy && l.LeadType != domain.LeadTypeSell {
			t.Errorf("demo lead %q has unknown type %q", l.Name, l.LeadType)
		}
		if l.DiscountRate < 0 || l.DiscountRate > 1 {
			t.Errorf("demo lead %q has discount rate %v outside [0,1]", l.Name, l.DiscountRate)
		}
		if l.SearchFrequency != nil && !domain.IsKnownSearchFrequency(*l.SearchFrequency) {
			t.Errorf("demo lead %q has unknown search frequency %q", l.Name, *l.SearchFrequency)
		}
		if l.IsSearchRequested && l.SearchFrequency == nil {
			t.Errorf("demo lead %q requests searches without a frequency", l.Name)
		}
		if l.Status == domain.StatusClosed {
			closed++
		}
	}

	if closed == 0 {
		t.Error("demo dataset should include at least one closed deal for the dashboard")
	}
}

func TestCreateRejectsInvalidPhone(t *testing.T) {
	store := &fakeStore{}
	svc := New(store, &recordingBus{}, nil)

	for _, tel := range []string{"", "abc", "0000", "+81 12"} {
		_, err := svc.Create(context.Background(), transport.CreateLeadRequest{
			Name: "田中 太郎",
			Tel:  tel,
		})
		var appErr *apperr.Error
		if !errors.As(err, &appErr) || appErr.Kind != apperr.KindValidation {
			t.Errorf("Create with tel %q: got %v, want validation error", tel, err)
		}
	}
	if store.createCalls != 0 {
		t.Errorf("rejected phone still performed %d writes", store.createCalls)
	}
}

func TestCreateNormalizesPhoneAndDefaults(t *testing.T) {
	store := &fakeStore{}
	svc := New(store, &recordingBus{}, nil)

	resp, err := svc.Create(context.Background(), transport.CreateLeadRequest{
		Name: "田中 太郎",
		Tel:  "090-1234-5678",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if resp.Tel != "+819012345678" {
		t.Errorf("tel = %q, want +819012345678", resp.Tel)
	}
	if store.createParams.LeadType != domain.LeadTypeBuy {
		t.Errorf("lead type = %q, want %q", store.createParams.LeadType, domain.LeadTypeBuy)
	}
	if store.createParams.Priority != domain.PriorityMid {
		t.Errorf("priority = %q, want %q", store.createParams.Priority, domain.PriorityMid)
	}
	if store.createParams.DiscountRate != 1.0 {
		t.Errorf("discount rate = %v, want 1.0", store.createParams.DiscountRate)
	}
}

func TestDefaultString(t *testing.T) {
	if got := defaultString("", "Mid"); got != "Mid" {
		t.Errorf("defaultString(\"\", Mid) = %q", got)
	}
	if got := defaultString("High", "Mid"); got != "High" {
		t.Errorf("defaultString(High, Mid) = %q", got)
	}
}
