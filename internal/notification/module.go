// Package notification fans domain events out to connected SSE clients.
// It subscribes to the event bus so domain modules never talk to the
// transport directly.
package notification

import (
	"context"

	"github.com/Kento03Onodera/pick-re-crm/internal/events"
	apphttp "github.com/Kento03Onodera/pick-re-crm/internal/http"
	"github.com/Kento03Onodera/pick-re-crm/internal/notification/sse"
	"github.com/Kento03Onodera/pick-re-crm/platform/logger"

	"github.com/google/uuid"
)

// Module owns the SSE hub and translates domain events into topic
// notifications.
type Module struct {
	sse *sse.Service
	log *logger.Logger
}

func NewModule(log *logger.Logger) *Module {
	return &Module{
		sse: sse.New(log),
		log: log,
	}
}

func (m *Module) Name() string { return "notification" }

// RegisterRoutes mounts the SSE endpoint. Auth middleware accepts the
// token from a ?token= query parameter because EventSource cannot set
// headers.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.Protected.GET("/events", m.sse.Handler())
}

// RegisterHandlers subscribes the module to every event it mirrors to SSE.
func (m *Module) RegisterHandlers(bus *events.InMemoryBus) {
	bus.Subscribe(events.LeadCreated{}.EventName(), m)
	bus.Subscribe(events.LeadUpdated{}.EventName(), m)
	bus.Subscribe(events.LeadReassigned{}.EventName(), m)
	bus.Subscribe(events.LeadDeleted{}.EventName(), m)
	bus.Subscribe(events.LeadSearchRequested{}.EventName(), m)

	bus.Subscribe(events.PropertySaved{}.EventName(), m)

	bus.Subscribe(events.StatusConfigUpdated{}.EventName(), m)
	bus.Subscribe(events.TargetsUpdated{}.EventName(), m)

	bus.Subscribe(events.AgentSaved{}.EventName(), m)

	m.log.Info("notification module registered event handlers")
}

// Handle routes events to the matching SSE topics.
func (m *Module) Handle(ctx context.Context, event events.Event) error {
	switch e := event.(type) {
	case events.LeadCreated:
		m.publishLead(e.EventName(), e.LeadID)
	case events.LeadUpdated:
		m.publishLead(e.EventName(), e.LeadID)
	case events.LeadReassigned:
		m.publishLead(e.EventName(), e.LeadID)
	case events.LeadDeleted:
		m.publishLead(e.EventName(), e.LeadID)
	case events.LeadSearchRequested:
		m.publishLead(e.EventName(), e.LeadID)
	case events.PropertySaved:
		m.sse.Publish(sse.Event{Topic: sse.TopicProperties, Type: e.EventName(), EntityID: e.PropertyID})
		m.sse.Publish(sse.Event{Topic: sse.PropertyTopic(e.PropertyID), Type: e.EventName(), EntityID: e.PropertyID})
	case events.StatusConfigUpdated:
		m.sse.Publish(sse.Event{Topic: sse.TopicStatusSettings, Type: e.EventName()})
	case events.TargetsUpdated:
		m.sse.Publish(sse.Event{Topic: sse.TopicTargetSettings, Type: e.EventName()})
	case events.AgentSaved:
		m.sse.Publish(sse.Event{Topic: sse.TopicAgents, Type: e.EventName(), EntityID: e.AgentID.String()})
	}
	return nil
}

// publishLead notifies the collection topic and, for a concrete lead,
// its document topic. A zero id marks a bulk change like seeding.
func (m *Module) publishLead(eventName string, leadID uuid.UUID) {
	var entityID string
	if leadID != uuid.Nil {
		entityID = leadID.String()
	}
	m.sse.Publish(sse.Event{Topic: sse.TopicLeads, Type: eventName, EntityID: entityID})
	if leadID != uuid.Nil {
		m.sse.Publish(sse.Event{Topic: sse.LeadTopic(entityID), Type: eventName, EntityID: entityID})
	}
}

// Close disconnects all SSE clients during shutdown.
func (m *Module) Close() {
	m.sse.Close()
}
