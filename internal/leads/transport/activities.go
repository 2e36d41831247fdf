package transport

import (
	"time"

	"github.com/google/uuid"
)

type AddActivityRequest struct {
	Type       string     `json:"type" validate:"required,oneof=Call Email Meeting Visit Note"`
	Content    string     `json:"content" validate:"required,min=1,max=4000"`
	OccurredAt *time.Time `json:"occurredAt"`
}

type UpdateActivityRequest struct {
	Type       *string    `json:"type" validate:"omitempty,oneof=Call Email Meeting Visit Note"`
	Content    *string    `json:"content" validate:"omitempty,min=1,max=4000"`
	OccurredAt *time.Time `json:"occurredAt"`
}

type ActivityResponse struct {
	ID         uuid.UUID  `json:"id"`
	LeadID     uuid.UUID  `json:"leadId"`
	Type       string     `json:"type"`
	Content    string     `json:"content"`
	AgentID    *uuid.UUID `json:"agentId,omitempty"`
	AgentName  string     `json:"agentName"`
	OccurredAt time.Time  `json:"occurredAt"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
}

type ActivityListResponse struct {
	Items []ActivityResponse `json:"items"`
}
