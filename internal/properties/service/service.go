package service

import (
	"context"
	"errors"
	"strings"

	"github.com/Kento03Onodera/pick-re-crm/internal/events"
	"github.com/Kento03Onodera/pick-re-crm/internal/properties/domain"
	"github.com/Kento03Onodera/pick-re-crm/internal/properties/repository"
	"github.com/Kento03Onodera/pick-re-crm/internal/properties/seed"
	"github.com/Kento03Onodera/pick-re-crm/internal/properties/transport"
	"github.com/Kento03Onodera/pick-re-crm/internal/storage"
	"github.com/Kento03Onodera/pick-re-crm/platform/apperr"

	"github.com/google/uuid"
)

// Uploader issues presigned image upload URLs. Nil when object storage is
// not configured.
type Uploader interface {
	PropertyImageUploadURL(ctx context.Context, propertyID, fileName, contentType string, sizeBytes int64) (*storage.PresignedURL, error)
}

type Service struct {
	repo     *repository.Repository
	bus      events.Bus
	uploader Uploader
}

func New(repo *repository.Repository, bus events.Bus, uploader Uploader) *Service {
	return &Service{repo: repo, bus: bus, uploader: uploader}
}

// List returns the merged seed/live view, optionally filtered by a
// substring match on name or address.
func (s *Service) List(ctx context.Context, query string) (transport.PropertyListResponse, error) {
	live, err := s.repo.List(ctx)
	if err != nil {
		return transport.PropertyListResponse{}, err
	}

	effective := domain.Merge(seed.Catalog(), live)
	items := make([]transport.PropertyResponse, 0, len(effective))
	for _, p := range effective {
		if query != "" && !strings.Contains(p.Name, query) && !strings.Contains(p.Address, query) {
			continue
		}
		items = append(items, toResponse(p))
	}
	return transport.PropertyListResponse{Items: items}, nil
}

// Active returns the merged view restricted to purchasable listings.
// The search digest worker filters these against lead criteria.
func (s *Service) Active(ctx context.Context) ([]domain.Property, error) {
	live, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	var active []domain.Property
	for _, p := range domain.Merge(seed.Catalog(), live) {
		if p.Status == domain.StatusSold {
			continue
		}
		active = append(active, p)
	}
	return active, nil
}

func (s *Service) Get(ctx context.Context, id string) (transport.PropertyResponse, error) {
	var live *domain.Property
	doc, err := s.repo.GetByID(ctx, id)
	switch {
	case err == nil:
		live = &doc
	case errors.Is(err, repository.ErrNotFound):
		// Fall through to the seed catalog.
	default:
		return transport.PropertyResponse{}, err
	}

	p, ok := domain.Resolve(seed.Catalog(), live, id)
	if !ok {
		return transport.PropertyResponse{}, apperr.NotFound("property not found")
	}
	return toResponse(p), nil
}

func (s *Service) Create(ctx context.Context, req transport.CreatePropertyRequest) (transport.PropertyResponse, error) {
	p := domain.Property{
		ID:        uuid.New().String(),
		Name:      req.Name,
		Address:   req.Address,
		Price:     req.Price,
		Layout:    req.Layout,
		Size:      req.Size,
		BuiltYear: req.BuiltYear,
		Status:    defaultStatus(req.Status),
		Images:    req.Images,
		Memo:      req.Memo,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
	}

	saved, err := s.repo.Upsert(ctx, p)
	if err != nil {
		return transport.PropertyResponse{}, err
	}

	s.bus.Publish(ctx, events.PropertySaved{BaseEvent: events.NewBaseEvent(), PropertyID: saved.ID})
	return toResponse(saved), nil
}

// Update writes a live override for the id. When the id only exists in the
// seed catalog, the seed entry is promoted: its values become the base and
// the requested changes are applied on top.
func (s *Service) Update(ctx context.Context, id string, req transport.UpdatePropertyRequest) (transport.PropertyResponse, error) {
	base, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		seeded, ok := domain.Resolve(seed.Catalog(), nil, id)
		if !ok {
			return transport.PropertyResponse{}, apperr.NotFound("property not found")
		}
		base = seeded
	} else if err != nil {
		return transport.PropertyResponse{}, err
	}
	if base.Deleted {
		return transport.PropertyResponse{}, apperr.NotFound("property not found")
	}

	applyUpdate(&base, req)

	saved, err := s.repo.Upsert(ctx, base)
	if err != nil {
		return transport.PropertyResponse{}, err
	}

	s.bus.Publish(ctx, events.PropertySaved{BaseEvent: events.NewBaseEvent(), PropertyID: saved.ID})
	return toResponse(saved), nil
}

// Delete is always soft. Deleting a seed-only entry writes a tombstone
// override so the seed constant stays bundled but disappears from the view.
func (s *Service) Delete(ctx context.Context, id string) error {
	err := s.repo.SoftDelete(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		seeded, ok := domain.Resolve(seed.Catalog(), nil, id)
		if !ok {
			return apperr.NotFound("property not found")
		}
		seeded.Deleted = true
		if _, err := s.repo.Upsert(ctx, seeded); err != nil {
			return err
		}
	} else if err != nil {
		return err
	}

	s.bus.Publish(ctx, events.PropertySaved{BaseEvent: events.NewBaseEvent(), PropertyID: id})
	return nil
}

func (s *Service) ImageUploadURL(ctx context.Context, id string, req transport.ImageUploadURLRequest) (transport.ImageUploadURLResponse, error) {
	if s.uploader == nil {
		return transport.ImageUploadURLResponse{}, apperr.Internal("object storage is not configured")
	}

	presigned, err := s.uploader.PropertyImageUploadURL(ctx, id, req.FileName, req.ContentType, req.SizeBytes)
	if err != nil {
		return transport.ImageUploadURLResponse{}, apperr.Wrap(apperr.KindBadRequest, "could not create upload URL", err)
	}
	return transport.ImageUploadURLResponse{
		UploadURL: presigned.URL,
		FileKey:   presigned.FileKey,
		ExpiresAt: presigned.ExpiresAt.Unix(),
	}, nil
}

func applyUpdate(p *domain.Property, req transport.UpdatePropertyRequest) {
	if req.Name != nil {
		p.Name = *req.Name
	}
	if req.Address != nil {
		p.Address = *req.Address
	}
	if req.Price != nil {
		p.Price = *req.Price
	}
	if req.Layout != nil {
		p.Layout = *req.Layout
	}
	if req.Size != nil {
		p.Size = *req.Size
	}
	if req.BuiltYear != nil {
		p.BuiltYear = *req.BuiltYear
	}
	if req.Status != nil {
		p.Status = *req.Status
	}
	if req.Images != nil {
		p.Images = req.Images
	}
	if req.Memo != nil {
		p.Memo = *req.Memo
	}
	if req.Latitude != nil {
		p.Latitude = req.Latitude
	}
	if req.Longitude != nil {
		p.Longitude = req.Longitude
	}
}

func toResponse(p domain.Property) transport.PropertyResponse {
	images := p.Images
	if images == nil {
		images = []string{}
	}
	resp := transport.PropertyResponse{
		ID:        p.ID,
		Name:      p.Name,
		Address:   p.Address,
		Price:     p.Price,
		Layout:    p.Layout,
		Size:      p.Size,
		BuiltYear: p.BuiltYear,
		Status:    p.Status,
		Images:    images,
		Memo:      p.Memo,
		Latitude:  p.Latitude,
		Longitude: p.Longitude,
		CreatedAt: p.CreatedAt,
	}
	if !p.UpdatedAt.IsZero() {
		updatedAt := p.UpdatedAt
		resp.UpdatedAt = &updatedAt
	}
	return resp
}

func defaultStatus(status string) string {
	if status == "" {
		return domain.StatusActive
	}
	return status
}
