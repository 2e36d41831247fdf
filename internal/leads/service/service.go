package service

import (
	"context"
	"errors"

	"github.com/Kento03Onodera/pick-re-crm/internal/events"
	"github.com/Kento03Onodera/pick-re-crm/internal/leads/domain"
	"github.com/Kento03Onodera/pick-re-crm/internal/leads/repository"
	"github.com/Kento03Onodera/pick-re-crm/internal/leads/transport"
	"github.com/Kento03Onodera/pick-re-crm/platform/apperr"
	"github.com/Kento03Onodera/pick-re-crm/platform/phone"

	"github.com/google/uuid"
)

// DigestScheduler books and cancels the recurring property-search digest
// for a lead. Implemented by the asynq-backed scheduler client.
type DigestScheduler interface {
	ScheduleSearchDigest(ctx context.Context, leadID uuid.UUID, frequency string) error
	CancelSearchDigest(ctx context.Context, leadID uuid.UUID) error
}

// Store is the persistence surface the lead service depends on,
// satisfied by *repository.Repository.
type Store interface {
	Create(ctx context.Context, params repository.CreateLeadParams) (repository.Lead, error)
	GetByID(ctx context.Context, id uuid.UUID) (repository.Lead, error)
	List(ctx context.Context) ([]repository.Lead, error)
	Update(ctx context.Context, id uuid.UUID, params repository.UpdateLeadParams) (repository.Lead, error)
	Delete(ctx context.Context, id uuid.UUID) error
	SeedLeads(ctx context.Context, batch []repository.CreateLeadParams) ([]repository.Lead, error)

	AddActivity(ctx context.Context, params repository.AddActivityParams) (repository.Activity, error)
	ListActivities(ctx context.Context, leadID uuid.UUID) ([]repository.Activity, error)
	UpdateActivity(ctx context.Context, leadID, activityID uuid.UUID, params repository.UpdateActivityParams) (repository.Activity, error)
	DeleteActivity(ctx context.Context, leadID, activityID uuid.UUID) error
}

type Service struct {
	repo      Store
	bus       events.Bus
	scheduler DigestScheduler
}

// New builds the lead service. scheduler may be nil when digest delivery
// is not configured; search flags are still persisted.
func New(repo Store, bus events.Bus, scheduler DigestScheduler) *Service {
	return &Service{repo: repo, bus: bus, scheduler: scheduler}
}

func (s *Service) Create(ctx context.Context, req transport.CreateLeadRequest) (transport.LeadResponse, error) {
	if !phone.IsValid(req.Tel) {
		return transport.LeadResponse{}, apperr.Validation("invalid phone number")
	}

	params := repository.CreateLeadParams{
		Name:              req.Name,
		NameKana:          req.NameKana,
		Tel:               phone.NormalizeE164(req.Tel),
		LeadType:          defaultString(req.LeadType, domain.LeadTypeBuy),
		Status:            req.Status,
		Priority:          defaultString(req.Priority, domain.PriorityMid),
		Budget:            req.Budget,
		DiscountRate:      1.0,
		AgentName:         req.AgentName,
		IsSearchRequested: req.IsSearchRequested,
		Tags:              req.Tags,
		Memo:              req.Memo,
	}
	if req.DiscountRate != nil {
		params.DiscountRate = *req.DiscountRate
	}
	if req.Mail != "" {
		params.Mail = &req.Mail
	}
	if req.Source != "" {
		params.Source = &req.Source
	}
	if req.AgentID.Set {
		params.AgentID = req.AgentID.Value
	}
	if req.Criteria != nil {
		params.Criteria = toCriteria(*req.Criteria)
	}
	if req.SearchFrequency != "" {
		if !domain.IsKnownSearchFrequency(req.SearchFrequency) {
			return transport.LeadResponse{}, apperr.Validation("unknown search frequency")
		}
		params.SearchFrequency = &req.SearchFrequency
	}
	if params.IsSearchRequested && params.SearchFrequency == nil {
		freq := domain.SearchFrequency1Week
		params.SearchFrequency = &freq
	}

	lead, err := s.repo.Create(ctx, params)
	if err != nil {
		return transport.LeadResponse{}, err
	}

	s.bus.Publish(ctx, events.LeadCreated{
		BaseEvent: events.NewBaseEvent(),
		LeadID:    lead.ID,
		Name:      lead.Name,
		Status:    lead.Status,
		AgentID:   lead.AgentID,
		AgentName: lead.AgentName,
	})
	s.syncDigestSchedule(ctx, lead)

	return toLeadResponse(lead), nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (transport.LeadResponse, error) {
	lead, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return transport.LeadResponse{}, apperr.NotFound("lead not found")
		}
		return transport.LeadResponse{}, err
	}
	return toLeadResponse(lead), nil
}

func (s *Service) List(ctx context.Context) (transport.LeadListResponse, error) {
	leads, err := s.repo.List(ctx)
	if err != nil {
		return transport.LeadListResponse{}, err
	}
	items := make([]transport.LeadResponse, 0, len(leads))
	for _, lead := range leads {
		items = append(items, toLeadResponse(lead))
	}
	return transport.LeadListResponse{Items: items}, nil
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, req transport.UpdateLeadRequest) (transport.LeadResponse, error) {
	params := repository.UpdateLeadParams{
		Name:              req.Name.Value,
		NameKana:          req.NameKana.Value,
		LeadType:          req.LeadType.Value,
		Status:            req.Status.Value,
		Priority:          req.Priority.Value,
		Source:            req.Source.Value,
		SourceSet:         req.Source.Set,
		Budget:            req.Budget,
		DiscountRate:      req.DiscountRate,
		AgentID:           req.AgentID.Value,
		AgentIDSet:        req.AgentID.Set,
		AgentName:         req.AgentName.Value,
		IsSearchRequested: req.IsSearchRequested,
		Tags:              req.Tags.Value,
		TagsSet:           req.Tags.Set,
		Memo:              req.Memo.Value,
	}
	if req.Tel.Value != nil {
		if !phone.IsValid(*req.Tel.Value) {
			return transport.LeadResponse{}, apperr.Validation("invalid phone number")
		}
		normalized := phone.NormalizeE164(*req.Tel.Value)
		params.Tel = &normalized
	}
	if req.Mail.Set {
		params.Mail = req.Mail.Value
		params.MailSet = true
	}
	if req.SearchFrequency.Set {
		if req.SearchFrequency.Value != nil && !domain.IsKnownSearchFrequency(*req.SearchFrequency.Value) {
			return transport.LeadResponse{}, apperr.Validation("unknown search frequency")
		}
		params.SearchFrequency = req.SearchFrequency.Value
		params.SearchFrequencySet = true
	}
	if req.Criteria != nil {
		criteria := toCriteria(*req.Criteria)
		params.Criteria = &criteria
	}

	lead, err := s.repo.Update(ctx, id, params)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return transport.LeadResponse{}, apperr.NotFound("lead not found")
		}
		return transport.LeadResponse{}, err
	}

	s.bus.Publish(ctx, events.LeadUpdated{BaseEvent: events.NewBaseEvent(), LeadID: lead.ID})
	if req.IsSearchRequested != nil || req.SearchFrequency.Set {
		s.syncDigestSchedule(ctx, lead)
	}

	return toLeadResponse(lead), nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperr.NotFound("lead not found")
		}
		return err
	}
	if s.scheduler != nil {
		// Orphaned digest tasks are also dropped by the worker when the lead is gone.
		_ = s.scheduler.CancelSearchDigest(ctx, id)
	}
	s.bus.Publish(ctx, events.LeadDeleted{BaseEvent: events.NewBaseEvent(), LeadID: id})
	return nil
}

// Seed replaces nothing and inserts the demo dataset in one transaction.
func (s *Service) Seed(ctx context.Context) (transport.SeedResponse, error) {
	leads, err := s.repo.SeedLeads(ctx, demoLeads())
	if err != nil {
		return transport.SeedResponse{}, err
	}
	items := make([]transport.LeadResponse, 0, len(leads))
	for _, lead := range leads {
		items = append(items, toLeadResponse(lead))
	}
	s.bus.Publish(ctx, events.LeadUpdated{BaseEvent: events.NewBaseEvent()})
	return transport.SeedResponse{Inserted: len(items), Items: items}, nil
}

func (s *Service) syncDigestSchedule(ctx context.Context, lead repository.Lead) {
	if s.scheduler == nil {
		return
	}
	if lead.IsSearchRequested && lead.SearchFrequency != nil {
		if err := s.scheduler.ScheduleSearchDigest(ctx, lead.ID, *lead.SearchFrequency); err == nil {
			s.bus.Publish(ctx, events.LeadSearchRequested{
				BaseEvent: events.NewBaseEvent(),
				LeadID:    lead.ID,
				Frequency: *lead.SearchFrequency,
			})
		}
		return
	}
	_ = s.scheduler.CancelSearchDigest(ctx, lead.ID)
}

func toCriteria(dto transport.SearchCriteriaDTO) repository.SearchCriteria {
	return repository.SearchCriteria{
		Areas:         dto.Areas,
		Stations:      dto.Stations,
		Layouts:       dto.Layouts,
		PropertyTypes: dto.PropertyTypes,
		BudgetMin:     dto.BudgetMin,
		BudgetMax:     dto.BudgetMax,
		SizeMin:       dto.SizeMin,
		BuiltYearMax:  dto.BuiltYearMax,
		PetAllowed:    dto.PetAllowed,
		CarOwned:      dto.CarOwned,
		ParkingNeeded: dto.ParkingNeeded,
		Floor:         dto.Floor,
	}
}

func toLeadResponse(lead repository.Lead) transport.LeadResponse {
	inquiries := make([]transport.InquiredPropertyDTO, 0, len(lead.InquiredProperties))
	for _, p := range lead.InquiredProperties {
		inquiries = append(inquiries, transport.InquiredPropertyDTO{
			PropertyID: p.PropertyID,
			Name:       p.Name,
			Price:      p.Price,
			Address:    p.Address,
			InquiredAt: p.InquiredAt,
		})
	}
	tags := lead.Tags
	if tags == nil {
		tags = []string{}
	}
	return transport.LeadResponse{
		ID:                lead.ID,
		Name:              lead.Name,
		NameKana:          lead.NameKana,
		Tel:               lead.Tel,
		Mail:              lead.Mail,
		LeadType:          lead.LeadType,
		Status:            lead.Status,
		Priority:          lead.Priority,
		Source:            lead.Source,
		Budget:            lead.Budget,
		DiscountRate:      lead.DiscountRate,
		EstimatedRevenue:  domain.EstimatedRevenue(lead.Budget, lead.DiscountRate),
		AgentID:           lead.AgentID,
		AgentName:         lead.AgentName,
		IsSearchRequested: lead.IsSearchRequested,
		SearchFrequency:   lead.SearchFrequency,
		Criteria: transport.SearchCriteriaDTO{
			Areas:         lead.Criteria.Areas,
			Stations:      lead.Criteria.Stations,
			Layouts:       lead.Criteria.Layouts,
			PropertyTypes: lead.Criteria.PropertyTypes,
			BudgetMin:     lead.Criteria.BudgetMin,
			BudgetMax:     lead.Criteria.BudgetMax,
			SizeMin:       lead.Criteria.SizeMin,
			BuiltYearMax:  lead.Criteria.BuiltYearMax,
			PetAllowed:    lead.Criteria.PetAllowed,
			CarOwned:      lead.Criteria.CarOwned,
			ParkingNeeded: lead.Criteria.ParkingNeeded,
			Floor:         lead.Criteria.Floor,
		},
		Tags:               tags,
		Memo:               lead.Memo,
		InquiredProperties: inquiries,
		CreatedAt:          lead.CreatedAt,
		UpdatedAt:          lead.UpdatedAt,
	}
}

func defaultString(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
