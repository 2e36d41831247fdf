// Package properties provides the listing management bounded context module.
package properties

import (
	"github.com/Kento03Onodera/pick-re-crm/internal/events"
	apphttp "github.com/Kento03Onodera/pick-re-crm/internal/http"
	"github.com/Kento03Onodera/pick-re-crm/internal/properties/handler"
	"github.com/Kento03Onodera/pick-re-crm/internal/properties/repository"
	"github.com/Kento03Onodera/pick-re-crm/internal/properties/service"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the properties bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	svc     *service.Service
}

// NewModule wires the property repository, service and handler. uploader
// may be nil when object storage is not configured.
func NewModule(pool *pgxpool.Pool, eventBus events.Bus, uploader service.Uploader) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, eventBus, uploader)
	return &Module{
		handler: handler.New(svc),
		svc:     svc,
	}
}

func (m *Module) Name() string { return "properties" }

// Service exposes the merged listing view for the digest worker.
func (m *Module) Service() *service.Service { return m.svc }

func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterRoutes(ctx.Protected.Group("/properties"))
}
