package agents

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/Kento03Onodera/pick-re-crm/internal/events"
	"github.com/Kento03Onodera/pick-re-crm/internal/storage"
	"github.com/Kento03Onodera/pick-re-crm/platform/apperr"
	"github.com/Kento03Onodera/pick-re-crm/platform/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// AvatarUploader issues presigned avatar upload URLs. Nil when object
// storage is not configured.
type AvatarUploader interface {
	AgentAvatarUploadURL(ctx context.Context, agentID, fileName, contentType string, sizeBytes int64) (*storage.PresignedURL, error)
}

type Service struct {
	repo     *Repository
	cfg      config.AuthServiceConfig
	bus      events.Bus
	uploader AvatarUploader
}

func NewService(repo *Repository, cfg config.AuthServiceConfig, bus events.Bus, uploader AvatarUploader) *Service {
	return &Service{repo: repo, cfg: cfg, bus: bus, uploader: uploader}
}

// displayName is "lastName firstName"; when both are blank the account
// still needs something the boards can render.
func displayName(lastName, firstName string) string {
	name := strings.TrimSpace(lastName + " " + firstName)
	if name == "" {
		return "Unknown"
	}
	return name
}

func (s *Service) Register(ctx context.Context, req RegisterRequest) (AuthResponse, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return AuthResponse{}, err
	}

	agent, err := s.repo.Create(ctx, CreateAgentParams{
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		LastName:     req.LastName,
		FirstName:    req.FirstName,
		Name:         displayName(req.LastName, req.FirstName),
		PasswordHash: string(hash),
	})
	if err != nil {
		if errors.Is(err, ErrDuplicateEmail) {
			return AuthResponse{}, apperr.Conflict("email already registered")
		}
		return AuthResponse{}, err
	}

	token, err := s.signAccessToken(agent)
	if err != nil {
		return AuthResponse{}, err
	}

	s.bus.Publish(ctx, events.AgentSaved{BaseEvent: events.NewBaseEvent(), AgentID: agent.ID})
	return AuthResponse{AccessToken: token, Agent: toAgentResponse(agent)}, nil
}

func (s *Service) Login(ctx context.Context, req LoginRequest) (AuthResponse, error) {
	agent, err := s.repo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return AuthResponse{}, apperr.Unauthorized("invalid credentials")
		}
		return AuthResponse{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(agent.PasswordHash), []byte(req.Password)); err != nil {
		return AuthResponse{}, apperr.Unauthorized("invalid credentials")
	}

	token, err := s.signAccessToken(agent)
	if err != nil {
		return AuthResponse{}, err
	}
	return AuthResponse{AccessToken: token, Agent: toAgentResponse(agent)}, nil
}

func (s *Service) List(ctx context.Context) (AgentListResponse, error) {
	agents, err := s.repo.List(ctx)
	if err != nil {
		return AgentListResponse{}, err
	}
	items := make([]AgentResponse, 0, len(agents))
	for _, agent := range agents {
		items = append(items, toAgentResponse(agent))
	}
	return AgentListResponse{Items: items}, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (AgentResponse, error) {
	agent, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return AgentResponse{}, apperr.NotFound("agent not found")
		}
		return AgentResponse{}, err
	}
	return toAgentResponse(agent), nil
}

// UpdateProfile edits the caller's own record. The display name is
// recomputed whenever either name part changes.
func (s *Service) UpdateProfile(ctx context.Context, id uuid.UUID, req UpdateProfileRequest) (AgentResponse, error) {
	params := UpdateAgentParams{
		LastName:  req.LastName,
		FirstName: req.FirstName,
	}
	if req.AvatarURL != nil {
		params.AvatarURL = req.AvatarURL
		params.AvatarURLSet = true
	}

	if req.LastName != nil || req.FirstName != nil {
		current, err := s.repo.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				return AgentResponse{}, apperr.NotFound("agent not found")
			}
			return AgentResponse{}, err
		}
		lastName := current.LastName
		firstName := current.FirstName
		if req.LastName != nil {
			lastName = *req.LastName
		}
		if req.FirstName != nil {
			firstName = *req.FirstName
		}
		name := displayName(lastName, firstName)
		params.Name = &name
	}

	agent, err := s.repo.Update(ctx, id, params)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return AgentResponse{}, apperr.NotFound("agent not found")
		}
		return AgentResponse{}, err
	}

	s.bus.Publish(ctx, events.AgentSaved{BaseEvent: events.NewBaseEvent(), AgentID: agent.ID})
	return toAgentResponse(agent), nil
}

func (s *Service) AvatarUploadURL(ctx context.Context, id uuid.UUID, req AvatarUploadURLRequest) (AvatarUploadURLResponse, error) {
	if s.uploader == nil {
		return AvatarUploadURLResponse{}, apperr.Internal("object storage is not configured")
	}

	presigned, err := s.uploader.AgentAvatarUploadURL(ctx, id.String(), req.FileName, req.ContentType, req.SizeBytes)
	if err != nil {
		return AvatarUploadURLResponse{}, apperr.Wrap(apperr.KindBadRequest, "could not create upload URL", err)
	}
	return AvatarUploadURLResponse{
		UploadURL: presigned.URL,
		FileKey:   presigned.FileKey,
		ExpiresAt: presigned.ExpiresAt.Unix(),
	}, nil
}

func (s *Service) signAccessToken(agent Agent) (string, error) {
	claims := jwt.MapClaims{
		"sub":  agent.ID.String(),
		"name": agent.Name,
		"type": "access",
		"exp":  time.Now().Add(s.cfg.GetAccessTokenTTL()).Unix(),
		"iat":  time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.GetJWTAccessSecret()))
}

func toAgentResponse(agent Agent) AgentResponse {
	return AgentResponse{
		ID:        agent.ID,
		Email:     agent.Email,
		LastName:  agent.LastName,
		FirstName: agent.FirstName,
		Name:      agent.Name,
		AvatarURL: agent.AvatarURL,
		CreatedAt: agent.CreatedAt,
	}
}
