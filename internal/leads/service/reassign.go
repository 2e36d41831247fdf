package service

import (
	"context"
	"errors"

	"github.com/Kento03Onodera/pick-re-crm/internal/events"
	"github.com/Kento03Onodera/pick-re-crm/internal/leads/domain"
	"github.com/Kento03Onodera/pick-re-crm/internal/leads/repository"
	"github.com/Kento03Onodera/pick-re-crm/internal/leads/transport"
	"github.com/Kento03Onodera/pick-re-crm/platform/apperr"

	"github.com/google/uuid"
)

// Reassign moves a lead to a new kanban group. Transitions are free-form:
// any status can move to any other status. Dropping a card back onto its
// current group is a no-op and leaves updatedAt untouched.
//
// The durable write is the source of truth. The caller applies the move
// optimistically; an error here tells it to roll the card back.
func (s *Service) Reassign(ctx context.Context, id uuid.UUID, req transport.ReassignRequest) (transport.LeadResponse, error) {
	switch req.Dimension {
	case domain.GroupByPriority:
		if !domain.IsKnownPriority(req.Target) {
			return transport.LeadResponse{}, apperr.Validation("unknown priority")
		}
	default:
		if !domain.IsCanonicalStatus(req.Target) {
			return transport.LeadResponse{}, apperr.Validation("unknown status")
		}
	}

	lead, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return transport.LeadResponse{}, apperr.NotFound("lead not found")
		}
		return transport.LeadResponse{}, err
	}

	current := lead.Status
	if req.Dimension == domain.GroupByPriority {
		current = lead.Priority
	}
	if current == req.Target {
		return toLeadResponse(lead), nil
	}

	params := repository.UpdateLeadParams{}
	if req.Dimension == domain.GroupByPriority {
		params.Priority = &req.Target
	} else {
		params.Status = &req.Target
	}

	updated, err := s.repo.Update(ctx, id, params)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return transport.LeadResponse{}, apperr.NotFound("lead not found")
		}
		return transport.LeadResponse{}, err
	}

	s.bus.Publish(ctx, events.LeadReassigned{
		BaseEvent: events.NewBaseEvent(),
		LeadID:    updated.ID,
		Dimension: req.Dimension,
		From:      current,
		To:        req.Target,
	})

	return toLeadResponse(updated), nil
}
