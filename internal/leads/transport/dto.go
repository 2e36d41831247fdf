package transport

import (
	"time"

	"github.com/google/uuid"
)

// SearchCriteriaDTO mirrors the stored criteria document.
type SearchCriteriaDTO struct {
	Areas         []string `json:"areas,omitempty" validate:"max=3"`
	Stations      []string `json:"stations,omitempty" validate:"max=3"`
	Layouts       []string `json:"layouts,omitempty"`
	PropertyTypes []string `json:"propertyTypes,omitempty"`
	BudgetMin     *int64   `json:"budgetMin,omitempty"`
	BudgetMax     *int64   `json:"budgetMax,omitempty"`
	SizeMin       *float64 `json:"sizeMin,omitempty"`
	BuiltYearMax  *int     `json:"builtYearMax,omitempty"`
	PetAllowed    bool     `json:"petAllowed,omitempty"`
	CarOwned      bool     `json:"carOwned,omitempty"`
	ParkingNeeded bool     `json:"parkingNeeded,omitempty"`
	Floor         string   `json:"floor,omitempty" validate:"max=100"`
}

type InquiredPropertyDTO struct {
	PropertyID string    `json:"propertyId"`
	Name       string    `json:"name"`
	Price      int64     `json:"price"`
	Address    string    `json:"address,omitempty"`
	InquiredAt time.Time `json:"inquiredAt"`
}

type CreateLeadRequest struct {
	Name              string             `json:"name" validate:"required,min=1,max=120"`
	NameKana          string             `json:"nameKana" validate:"max=120"`
	Tel               string             `json:"tel" validate:"required,min=8,max=20"`
	Mail              string             `json:"mail" validate:"omitempty,email"`
	LeadType          string             `json:"leadType" validate:"omitempty,oneof=Buy Sell"`
	Status            string             `json:"status" validate:"required,min=1,max=40"`
	Priority          string             `json:"priority" validate:"omitempty,oneof=High Mid Low"`
	Source            string             `json:"source" validate:"max=80"`
	Budget            int64              `json:"budget" validate:"min=0"`
	DiscountRate      *float64           `json:"discountRate" validate:"omitempty,min=0,max=1"`
	AgentID           OptionalUUID       `json:"agentId"`
	AgentName         string             `json:"agentName" validate:"required,min=1,max=120"`
	IsSearchRequested bool               `json:"isSearchRequested"`
	SearchFrequency   string             `json:"searchFrequency" validate:"omitempty,oneof=3days 1week 2week"`
	Criteria          *SearchCriteriaDTO `json:"criteria"`
	Tags              []string           `json:"tags" validate:"max=20,dive,max=40"`
	Memo              string             `json:"memo" validate:"max=4000"`
}

type UpdateLeadRequest struct {
	Name              OptionalString      `json:"name"`
	NameKana          OptionalString      `json:"nameKana"`
	Tel               OptionalString      `json:"tel"`
	Mail              OptionalString      `json:"mail"`
	LeadType          OptionalString      `json:"leadType"`
	Status            OptionalString      `json:"status"`
	Priority          OptionalString      `json:"priority"`
	Source            OptionalString      `json:"source"`
	Budget            *int64              `json:"budget"`
	DiscountRate      *float64            `json:"discountRate"`
	AgentID           OptionalUUID        `json:"agentId"`
	AgentName         OptionalString      `json:"agentName"`
	IsSearchRequested *bool               `json:"isSearchRequested"`
	SearchFrequency   OptionalString      `json:"searchFrequency"`
	Criteria          *SearchCriteriaDTO  `json:"criteria"`
	Tags              OptionalStringSlice `json:"tags"`
	Memo              OptionalString      `json:"memo"`
}

// ReassignRequest moves a lead across one kanban dimension.
type ReassignRequest struct {
	Dimension string `json:"dimension" validate:"required,oneof=status priority"`
	Target    string `json:"target" validate:"required,min=1,max=40"`
}

type LeadResponse struct {
	ID                 uuid.UUID             `json:"id"`
	Name               string                `json:"name"`
	NameKana           string                `json:"nameKana,omitempty"`
	Tel                string                `json:"tel"`
	Mail               *string               `json:"mail,omitempty"`
	LeadType           string                `json:"leadType"`
	Status             string                `json:"status"`
	Priority           string                `json:"priority"`
	Source             *string               `json:"source,omitempty"`
	Budget             int64                 `json:"budget"`
	DiscountRate       float64               `json:"discountRate"`
	EstimatedRevenue   float64               `json:"estimatedRevenue"`
	AgentID            *uuid.UUID            `json:"agentId,omitempty"`
	AgentName          string                `json:"agentName"`
	IsSearchRequested  bool                  `json:"isSearchRequested"`
	SearchFrequency    *string               `json:"searchFrequency,omitempty"`
	Criteria           SearchCriteriaDTO     `json:"criteria"`
	Tags               []string              `json:"tags"`
	Memo               string                `json:"memo,omitempty"`
	InquiredProperties []InquiredPropertyDTO `json:"inquiredProperties"`
	CreatedAt          time.Time             `json:"createdAt"`
	UpdatedAt          time.Time             `json:"updatedAt"`
}

type LeadListResponse struct {
	Items []LeadResponse `json:"items"`
}

type SeedResponse struct {
	Inserted int            `json:"inserted"`
	Items    []LeadResponse `json:"items"`
}
