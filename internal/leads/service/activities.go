package service

import (
	"context"
	"errors"
	"time"

	"github.com/Kento03Onodera/pick-re-crm/internal/events"
	"github.com/Kento03Onodera/pick-re-crm/internal/leads/repository"
	"github.com/Kento03Onodera/pick-re-crm/internal/leads/transport"
	"github.com/Kento03Onodera/pick-re-crm/platform/apperr"

	"github.com/google/uuid"
)

// Actor identifies the agent performing an activity-log mutation.
type Actor struct {
	AgentID   *uuid.UUID
	AgentName string
}

func (s *Service) AddActivity(ctx context.Context, leadID uuid.UUID, actor Actor, req transport.AddActivityRequest) (transport.ActivityResponse, error) {
	if _, err := s.repo.GetByID(ctx, leadID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return transport.ActivityResponse{}, apperr.NotFound("lead not found")
		}
		return transport.ActivityResponse{}, err
	}

	occurredAt := time.Now()
	if req.OccurredAt != nil {
		occurredAt = *req.OccurredAt
	}

	activity, err := s.repo.AddActivity(ctx, repository.AddActivityParams{
		LeadID:     leadID,
		Type:       req.Type,
		Content:    req.Content,
		AgentID:    actor.AgentID,
		AgentName:  actor.AgentName,
		OccurredAt: occurredAt,
	})
	if err != nil {
		return transport.ActivityResponse{}, err
	}

	s.bus.Publish(ctx, events.LeadUpdated{BaseEvent: events.NewBaseEvent(), LeadID: leadID})
	return toActivityResponse(activity), nil
}

func (s *Service) ListActivities(ctx context.Context, leadID uuid.UUID) (transport.ActivityListResponse, error) {
	if _, err := s.repo.GetByID(ctx, leadID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return transport.ActivityListResponse{}, apperr.NotFound("lead not found")
		}
		return transport.ActivityListResponse{}, err
	}

	activities, err := s.repo.ListActivities(ctx, leadID)
	if err != nil {
		return transport.ActivityListResponse{}, err
	}
	items := make([]transport.ActivityResponse, 0, len(activities))
	for _, a := range activities {
		items = append(items, toActivityResponse(a))
	}
	return transport.ActivityListResponse{Items: items}, nil
}

func (s *Service) UpdateActivity(ctx context.Context, leadID, activityID uuid.UUID, req transport.UpdateActivityRequest) (transport.ActivityResponse, error) {
	activity, err := s.repo.UpdateActivity(ctx, leadID, activityID, repository.UpdateActivityParams{
		Type:       req.Type,
		Content:    req.Content,
		OccurredAt: req.OccurredAt,
	})
	if err != nil {
		if errors.Is(err, repository.ErrActivityNotFound) {
			return transport.ActivityResponse{}, apperr.NotFound("activity not found")
		}
		return transport.ActivityResponse{}, err
	}

	s.bus.Publish(ctx, events.LeadUpdated{BaseEvent: events.NewBaseEvent(), LeadID: leadID})
	return toActivityResponse(activity), nil
}

func (s *Service) DeleteActivity(ctx context.Context, leadID, activityID uuid.UUID) error {
	if err := s.repo.DeleteActivity(ctx, leadID, activityID); err != nil {
		if errors.Is(err, repository.ErrActivityNotFound) {
			return apperr.NotFound("activity not found")
		}
		return err
	}
	s.bus.Publish(ctx, events.LeadUpdated{BaseEvent: events.NewBaseEvent(), LeadID: leadID})
	return nil
}

func toActivityResponse(activity repository.Activity) transport.ActivityResponse {
	return transport.ActivityResponse{
		ID:         activity.ID,
		LeadID:     activity.LeadID,
		Type:       activity.Type,
		Content:    activity.Content,
		AgentID:    activity.AgentID,
		AgentName:  activity.AgentName,
		OccurredAt: activity.OccurredAt,
		CreatedAt:  activity.CreatedAt,
		UpdatedAt:  activity.UpdatedAt,
	}
}
