// Package leads provides the lead management bounded context module.
package leads

import (
	"github.com/Kento03Onodera/pick-re-crm/internal/events"
	apphttp "github.com/Kento03Onodera/pick-re-crm/internal/http"
	"github.com/Kento03Onodera/pick-re-crm/internal/leads/handler"
	"github.com/Kento03Onodera/pick-re-crm/internal/leads/repository"
	"github.com/Kento03Onodera/pick-re-crm/internal/leads/service"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the leads bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	svc     *service.Service
	repo    *repository.Repository
}

// NewModule wires the leads repository, service and handler. scheduler may
// be nil when the digest worker is not configured.
func NewModule(pool *pgxpool.Pool, eventBus events.Bus, scheduler service.DigestScheduler) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, eventBus, scheduler)
	return &Module{
		handler: handler.New(svc),
		svc:     svc,
		repo:    repo,
	}
}

func (m *Module) Name() string { return "leads" }

// Repository exposes the lead store for modules that aggregate over leads.
func (m *Module) Repository() *repository.Repository { return m.repo }

func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterRoutes(ctx.Protected.Group("/leads"))
}
