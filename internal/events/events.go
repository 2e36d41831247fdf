// Package events provides domain event definitions for decoupled,
// event-driven communication between modules.
// Infrastructure (Bus, Handler) is in platform/events.
package events

import (
	"github.com/Kento03Onodera/pick-re-crm/platform/events"

	"github.com/google/uuid"
)

// Re-export platform types for convenience
type (
	Event       = events.Event
	Bus         = events.Bus
	Handler     = events.Handler
	HandlerFunc = events.HandlerFunc
	BaseEvent   = events.BaseEvent
)

// Re-export platform functions
var NewBaseEvent = events.NewBaseEvent

// InMemoryBus is a type alias to the platform InMemoryBus
type InMemoryBus = events.InMemoryBus

// NewInMemoryBus creates a new in-memory event bus.
var NewInMemoryBus = events.NewInMemoryBus

// =============================================================================
// Leads Domain Events
// =============================================================================

// LeadCreated is published when a new lead is registered.
type LeadCreated struct {
	BaseEvent
	LeadID    uuid.UUID  `json:"leadId"`
	Name      string     `json:"name"`
	Status    string     `json:"status"`
	AgentID   *uuid.UUID `json:"agentId,omitempty"`
	AgentName string     `json:"agentName,omitempty"`
}

func (e LeadCreated) EventName() string { return "leads.lead.created" }

// LeadUpdated is published after any lead mutation, including activity
// log edits. SSE fan-out uses it to invalidate lead snapshots.
type LeadUpdated struct {
	BaseEvent
	LeadID uuid.UUID `json:"leadId"`
}

func (e LeadUpdated) EventName() string { return "leads.lead.updated" }

// LeadReassigned is published when a kanban drop moves a lead to a new
// status or priority column.
type LeadReassigned struct {
	BaseEvent
	LeadID    uuid.UUID `json:"leadId"`
	Dimension string    `json:"dimension"` // "status" or "priority"
	From      string    `json:"from"`
	To        string    `json:"to"`
}

func (e LeadReassigned) EventName() string { return "leads.lead.reassigned" }

// LeadDeleted is published when a lead is hard-deleted.
type LeadDeleted struct {
	BaseEvent
	LeadID uuid.UUID `json:"leadId"`
}

func (e LeadDeleted) EventName() string { return "leads.lead.deleted" }

// LeadSearchRequested is published when a lead opts into scheduled
// property-search digests (or changes frequency).
type LeadSearchRequested struct {
	BaseEvent
	LeadID    uuid.UUID `json:"leadId"`
	Frequency string    `json:"frequency"`
}

func (e LeadSearchRequested) EventName() string { return "leads.lead.search_requested" }

// =============================================================================
// Properties Domain Events
// =============================================================================

// PropertySaved is published when a property is created or updated
// (including soft deletes, which are updates of the deleted flag).
type PropertySaved struct {
	BaseEvent
	PropertyID string `json:"propertyId"`
}

func (e PropertySaved) EventName() string { return "properties.property.saved" }

// =============================================================================
// Settings Domain Events
// =============================================================================

// StatusConfigUpdated is published when the shared status label/color
// configuration changes.
type StatusConfigUpdated struct {
	BaseEvent
}

func (e StatusConfigUpdated) EventName() string { return "settings.statuses.updated" }

// TargetsUpdated is published when monthly revenue targets change.
type TargetsUpdated struct {
	BaseEvent
	Year int `json:"year"`
}

func (e TargetsUpdated) EventName() string { return "settings.targets.updated" }

// =============================================================================
// Agents Domain Events
// =============================================================================

// AgentSaved is published when an agent registers or updates their profile.
type AgentSaved struct {
	BaseEvent
	AgentID uuid.UUID `json:"agentId"`
}

func (e AgentSaved) EventName() string { return "agents.agent.saved" }
