package settings

import (
	"context"
	"errors"
	"strconv"

	"github.com/Kento03Onodera/pick-re-crm/internal/events"
	leaddomain "github.com/Kento03Onodera/pick-re-crm/internal/leads/domain"
	"github.com/Kento03Onodera/pick-re-crm/platform/apperr"
)

type Service struct {
	repo  *Repository
	cache *StatusCache
	bus   events.Bus
}

// NewService builds the settings service. cache may be nil when redis is
// not configured; reads then always hit the database.
func NewService(repo *Repository, cache *StatusCache, bus events.Bus) *Service {
	return &Service{repo: repo, cache: cache, bus: bus}
}

// GetStatuses returns the saved configuration, falling back to the factory
// defaults when nothing was ever saved.
func (s *Service) GetStatuses(ctx context.Context) (StatusesResponse, error) {
	if config, ok := s.cache.Get(ctx); ok {
		return toStatusesResponse(config), nil
	}

	config, err := s.repo.GetStatuses(ctx)
	if errors.Is(err, ErrDocumentNotFound) {
		config = DefaultStatusConfig()
	} else if err != nil {
		return StatusesResponse{}, err
	}

	s.cache.Set(ctx, config)
	return toStatusesResponse(config), nil
}

// PutStatuses replaces the whole configuration. The canonical id set is
// fixed: the request must cover exactly the six known ids, each once.
func (s *Service) PutStatuses(ctx context.Context, req PutStatusesRequest) (StatusesResponse, error) {
	seen := make(map[string]struct{}, len(req.Config))
	config := make([]StatusConfig, 0, len(req.Config))
	for _, dto := range req.Config {
		if !leaddomain.IsCanonicalStatus(dto.ID) {
			return StatusesResponse{}, apperr.Validation("unknown status id: " + dto.ID)
		}
		if _, dup := seen[dto.ID]; dup {
			return StatusesResponse{}, apperr.Validation("duplicate status id: " + dto.ID)
		}
		seen[dto.ID] = struct{}{}
		config = append(config, StatusConfig(dto))
	}
	if len(seen) != len(leaddomain.CanonicalStatuses) {
		return StatusesResponse{}, apperr.Validation("config must cover every status id")
	}

	if err := s.repo.PutStatuses(ctx, config); err != nil {
		return StatusesResponse{}, err
	}

	s.cache.Invalidate(ctx)
	s.bus.Publish(ctx, events.StatusConfigUpdated{BaseEvent: events.NewBaseEvent()})
	return toStatusesResponse(config), nil
}

func (s *Service) GetTargets(ctx context.Context, year int) (TargetsResponse, error) {
	months, err := s.repo.GetTargets(ctx, year)
	if err != nil {
		return TargetsResponse{}, err
	}
	return TargetsResponse{Year: year, Months: months}, nil
}

// TargetsForYear exposes the raw month map for the dashboard aggregator.
func (s *Service) TargetsForYear(ctx context.Context, year int) (map[string]int64, error) {
	return s.repo.GetTargets(ctx, year)
}

// PutTargets replaces one year's months. Month keys must be "1".."12" and
// amounts non-negative.
func (s *Service) PutTargets(ctx context.Context, year int, req PutTargetsRequest) (TargetsResponse, error) {
	for key, amount := range req.Months {
		month, err := strconv.Atoi(key)
		if err != nil || month < 1 || month > 12 {
			return TargetsResponse{}, apperr.Validation("invalid month key: " + key)
		}
		if amount < 0 {
			return TargetsResponse{}, apperr.Validation("target amount must not be negative")
		}
	}

	if err := s.repo.PutTargets(ctx, year, req.Months); err != nil {
		return TargetsResponse{}, err
	}

	s.bus.Publish(ctx, events.TargetsUpdated{BaseEvent: events.NewBaseEvent(), Year: year})
	return TargetsResponse{Year: year, Months: req.Months}, nil
}

func toStatusesResponse(config []StatusConfig) StatusesResponse {
	dtos := make([]StatusConfigDTO, 0, len(config))
	for _, c := range config {
		dtos = append(dtos, StatusConfigDTO(c))
	}
	return StatusesResponse{Config: dtos}
}
