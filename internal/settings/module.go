package settings

import (
	"github.com/Kento03Onodera/pick-re-crm/internal/events"
	apphttp "github.com/Kento03Onodera/pick-re-crm/internal/http"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

// Module is the settings bounded context module implementing http.Module.
type Module struct {
	handler *Handler
	svc     *Service
}

// NewModule wires the settings repository, cache, service and handler.
// redisClient may be nil; the status config is then read straight from the
// database on every request.
func NewModule(pool *pgxpool.Pool, redisClient *redis.Client, eventBus events.Bus) *Module {
	repo := NewRepository(pool)
	var cache *StatusCache
	if redisClient != nil {
		cache = NewStatusCache(redisClient)
	}
	svc := NewService(repo, cache, eventBus)
	return &Module{handler: NewHandler(svc), svc: svc}
}

func (m *Module) Name() string { return "settings" }

// Service exposes target lookups for the dashboard module.
func (m *Module) Service() *Service { return m.svc }

func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterRoutes(ctx.Protected.Group("/settings"))
}
