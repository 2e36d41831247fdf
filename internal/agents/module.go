package agents

import (
	"github.com/Kento03Onodera/pick-re-crm/internal/events"
	apphttp "github.com/Kento03Onodera/pick-re-crm/internal/http"
	"github.com/Kento03Onodera/pick-re-crm/platform/config"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the agents bounded context module implementing http.Module.
type Module struct {
	handler *Handler
}

// NewModule wires the agent repository, service and handler. uploader may
// be nil when object storage is not configured.
func NewModule(pool *pgxpool.Pool, cfg config.AuthServiceConfig, eventBus events.Bus, uploader AvatarUploader) *Module {
	repo := NewRepository(pool)
	svc := NewService(repo, cfg, eventBus, uploader)
	return &Module{handler: NewHandler(svc)}
}

func (m *Module) Name() string { return "agents" }

func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	// Register/login are public but behind the stricter auth rate limit.
	public := ctx.V1.Group("/auth")
	public.Use(ctx.AuthRateLimiter.RateLimit())
	m.handler.RegisterPublicRoutes(public)

	m.handler.RegisterProtectedRoutes(ctx.Protected.Group("/agents"))
}
