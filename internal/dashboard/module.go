package dashboard

import (
	apphttp "github.com/Kento03Onodera/pick-re-crm/internal/http"
)

// Module is the dashboard module implementing http.Module. It owns no
// storage; it aggregates over the leads and settings modules.
type Module struct {
	handler *Handler
}

func NewModule(leads LeadSource, targets TargetSource) *Module {
	return &Module{handler: NewHandler(leads, targets)}
}

func (m *Module) Name() string { return "dashboard" }

func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterRoutes(ctx.Protected.Group("/dashboard"))
}
