package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("lead not found")

type Repository struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// SearchCriteria captures what a buy-side lead is looking for. It is stored
// as a single jsonb document and replaced wholesale on update.
type SearchCriteria struct {
	Areas         []string `json:"areas,omitempty"`
	Stations      []string `json:"stations,omitempty"`
	Layouts       []string `json:"layouts,omitempty"`
	PropertyTypes []string `json:"propertyTypes,omitempty"`
	BudgetMin     *int64   `json:"budgetMin,omitempty"`
	BudgetMax     *int64   `json:"budgetMax,omitempty"`
	SizeMin       *float64 `json:"sizeMin,omitempty"`
	BuiltYearMax  *int     `json:"builtYearMax,omitempty"`
	PetAllowed    bool     `json:"petAllowed,omitempty"`
	CarOwned      bool     `json:"carOwned,omitempty"`
	ParkingNeeded bool     `json:"parkingNeeded,omitempty"`
	Floor         string   `json:"floor,omitempty"`
}

// InquiredProperty is a point-in-time snapshot of a listing the lead asked
// about. Snapshots are append-only and never refreshed when the listing
// itself changes later.
type InquiredProperty struct {
	PropertyID string    `json:"propertyId"`
	Name       string    `json:"name"`
	Price      int64     `json:"price"`
	Address    string    `json:"address,omitempty"`
	InquiredAt time.Time `json:"inquiredAt"`
}

type Lead struct {
	ID                 uuid.UUID
	Name               string
	NameKana           string
	Tel                string
	Mail               *string
	LeadType           string
	Status             string
	Priority           string
	Source             *string
	Budget             int64
	DiscountRate       float64
	AgentID            *uuid.UUID
	AgentName          string
	IsSearchRequested  bool
	SearchFrequency    *string
	Criteria           SearchCriteria
	Tags               []string
	Memo               string
	InquiredProperties []InquiredProperty
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

const leadColumns = `id, name, name_kana, tel, mail, lead_type, status, priority, source,
		budget, discount_rate, agent_id, agent_name, is_search_requested, search_frequency,
		criteria, tags, memo, inquired_properties, created_at, updated_at`

func scanLead(row pgx.Row) (Lead, error) {
	var (
		lead         Lead
		criteriaRaw  []byte
		tagsRaw      []byte
		inquiriesRaw []byte
	)
	err := row.Scan(
		&lead.ID, &lead.Name, &lead.NameKana, &lead.Tel, &lead.Mail, &lead.LeadType,
		&lead.Status, &lead.Priority, &lead.Source, &lead.Budget, &lead.DiscountRate,
		&lead.AgentID, &lead.AgentName, &lead.IsSearchRequested, &lead.SearchFrequency,
		&criteriaRaw, &tagsRaw, &lead.Memo, &inquiriesRaw,
		&lead.CreatedAt, &lead.UpdatedAt,
	)
	if err != nil {
		return Lead{}, err
	}
	if len(criteriaRaw) > 0 {
		if err := json.Unmarshal(criteriaRaw, &lead.Criteria); err != nil {
			return Lead{}, fmt.Errorf("decode criteria: %w", err)
		}
	}
	if len(tagsRaw) > 0 {
		if err := json.Unmarshal(tagsRaw, &lead.Tags); err != nil {
			return Lead{}, fmt.Errorf("decode tags: %w", err)
		}
	}
	if len(inquiriesRaw) > 0 {
		if err := json.Unmarshal(inquiriesRaw, &lead.InquiredProperties); err != nil {
			return Lead{}, fmt.Errorf("decode inquired properties: %w", err)
		}
	}
	return lead, nil
}

type CreateLeadParams struct {
	Name               string
	NameKana           string
	Tel                string
	Mail               *string
	LeadType           string
	Status             string
	Priority           string
	Source             *string
	Budget             int64
	DiscountRate       float64
	AgentID            *uuid.UUID
	AgentName          string
	IsSearchRequested  bool
	SearchFrequency    *string
	Criteria           SearchCriteria
	Tags               []string
	Memo               string
	InquiredProperties []InquiredProperty
}

func marshalJSONB(value interface{}) ([]byte, error) {
	raw, err := json.Marshal(value)
	if err != nil {
		return nil, err
	}
	return raw, nil
}

func (r *Repository) Create(ctx context.Context, params CreateLeadParams) (Lead, error) {
	criteriaRaw, err := marshalJSONB(params.Criteria)
	if err != nil {
		return Lead{}, err
	}
	tagsRaw, err := marshalJSONB(emptySlice(params.Tags))
	if err != nil {
		return Lead{}, err
	}
	inquiriesRaw, err := marshalJSONB(emptyInquiries(params.InquiredProperties))
	if err != nil {
		return Lead{}, err
	}

	row := r.pool.QueryRow(ctx, `
		INSERT INTO leads (
			name, name_kana, tel, mail, lead_type, status, priority, source,
			budget, discount_rate, agent_id, agent_name, is_search_requested, search_frequency,
			criteria, tags, memo, inquired_properties
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
		RETURNING `+leadColumns,
		params.Name, params.NameKana, params.Tel, params.Mail, params.LeadType,
		params.Status, params.Priority, params.Source, params.Budget, params.DiscountRate,
		params.AgentID, params.AgentName, params.IsSearchRequested, params.SearchFrequency,
		criteriaRaw, tagsRaw, params.Memo, inquiriesRaw,
	)
	return scanLead(row)
}

func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (Lead, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+leadColumns+`
		FROM leads
		WHERE id = $1
	`, id)
	lead, err := scanLead(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Lead{}, ErrNotFound
	}
	return lead, err
}

func (r *Repository) List(ctx context.Context) ([]Lead, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+leadColumns+`
		FROM leads
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	leads := make([]Lead, 0)
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, err
		}
		leads = append(leads, lead)
	}
	return leads, rows.Err()
}

// UpdateLeadParams applies only the fields whose pointers are set. Slices and
// the criteria document replace the stored value wholesale when present.
type UpdateLeadParams struct {
	Name                  *string
	NameKana              *string
	Tel                   *string
	Mail                  *string
	MailSet               bool
	LeadType              *string
	Status                *string
	Priority              *string
	Source                *string
	SourceSet             bool
	Budget                *int64
	DiscountRate          *float64
	AgentID               *uuid.UUID
	AgentIDSet            bool
	AgentName             *string
	IsSearchRequested     *bool
	SearchFrequency       *string
	SearchFrequencySet    bool
	Criteria              *SearchCriteria
	Tags                  []string
	TagsSet               bool
	Memo                  *string
	InquiredProperties    []InquiredProperty
	InquiredPropertiesSet bool
}

// buildUpdateClauses maps the set fields of params onto SQL SET clauses
// and their positional arguments. Untouched fields produce no clause, so
// a partial update leaves every other column as stored.
func buildUpdateClauses(params UpdateLeadParams) ([]string, []interface{}, error) {
	setClauses := []string{}
	args := []interface{}{}
	argIdx := 1

	appendClause := func(column string, value interface{}) {
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", column, argIdx))
		args = append(args, value)
		argIdx++
	}

	if params.Name != nil {
		appendClause("name", *params.Name)
	}
	if params.NameKana != nil {
		appendClause("name_kana", *params.NameKana)
	}
	if params.Tel != nil {
		appendClause("tel", *params.Tel)
	}
	if params.MailSet {
		appendClause("mail", params.Mail)
	}
	if params.LeadType != nil {
		appendClause("lead_type", *params.LeadType)
	}
	if params.Status != nil {
		appendClause("status", *params.Status)
	}
	if params.Priority != nil {
		appendClause("priority", *params.Priority)
	}
	if params.SourceSet {
		appendClause("source", params.Source)
	}
	if params.Budget != nil {
		appendClause("budget", *params.Budget)
	}
	if params.DiscountRate != nil {
		appendClause("discount_rate", *params.DiscountRate)
	}
	if params.AgentIDSet {
		appendClause("agent_id", params.AgentID)
	}
	if params.AgentName != nil {
		appendClause("agent_name", *params.AgentName)
	}
	if params.IsSearchRequested != nil {
		appendClause("is_search_requested", *params.IsSearchRequested)
	}
	if params.SearchFrequencySet {
		appendClause("search_frequency", params.SearchFrequency)
	}
	if params.Criteria != nil {
		raw, err := marshalJSONB(params.Criteria)
		if err != nil {
			return nil, nil, err
		}
		appendClause("criteria", raw)
	}
	if params.TagsSet {
		raw, err := marshalJSONB(emptySlice(params.Tags))
		if err != nil {
			return nil, nil, err
		}
		appendClause("tags", raw)
	}
	if params.Memo != nil {
		appendClause("memo", *params.Memo)
	}
	if params.InquiredPropertiesSet {
		raw, err := marshalJSONB(emptyInquiries(params.InquiredProperties))
		if err != nil {
			return nil, nil, err
		}
		appendClause("inquired_properties", raw)
	}

	return setClauses, args, nil
}

func (r *Repository) Update(ctx context.Context, id uuid.UUID, params UpdateLeadParams) (Lead, error) {
	setClauses, args, err := buildUpdateClauses(params)
	if err != nil {
		return Lead{}, err
	}

	if len(setClauses) == 0 {
		return r.GetByID(ctx, id)
	}

	setClauses = append(setClauses, "updated_at = now()")
	args = append(args, id)

	query := fmt.Sprintf(`
		UPDATE leads SET %s
		WHERE id = $%d
		RETURNING `+leadColumns,
		strings.Join(setClauses, ", "), len(args))

	lead, err := scanLead(r.pool.QueryRow(ctx, query, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return Lead{}, ErrNotFound
	}
	return lead, err
}

// Delete removes the lead and its activity log in one transaction.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM lead_activities WHERE lead_id = $1`, id); err != nil {
		return err
	}
	tag, err := tx.Exec(ctx, `DELETE FROM leads WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return tx.Commit(ctx)
}

// SeedLeads inserts demo leads atomically. Either all rows land or none do.
func (r *Repository) SeedLeads(ctx context.Context, batch []CreateLeadParams) ([]Lead, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	leads := make([]Lead, 0, len(batch))
	for _, params := range batch {
		criteriaRaw, err := marshalJSONB(params.Criteria)
		if err != nil {
			return nil, err
		}
		tagsRaw, err := marshalJSONB(emptySlice(params.Tags))
		if err != nil {
			return nil, err
		}
		inquiriesRaw, err := marshalJSONB(emptyInquiries(params.InquiredProperties))
		if err != nil {
			return nil, err
		}
		row := tx.QueryRow(ctx, `
			INSERT INTO leads (
				name, name_kana, tel, mail, lead_type, status, priority, source,
				budget, discount_rate, agent_id, agent_name, is_search_requested, search_frequency,
				criteria, tags, memo, inquired_properties
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
			RETURNING `+leadColumns,
			params.Name, params.NameKana, params.Tel, params.Mail, params.LeadType,
			params.Status, params.Priority, params.Source, params.Budget, params.DiscountRate,
			params.AgentID, params.AgentName, params.IsSearchRequested, params.SearchFrequency,
			criteriaRaw, tagsRaw, params.Memo, inquiriesRaw,
		)
		lead, err := scanLead(row)
		if err != nil {
			return nil, err
		}
		leads = append(leads, lead)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return leads, nil
}

func emptySlice(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}

func emptyInquiries(values []InquiredProperty) []InquiredProperty {
	if values == nil {
		return []InquiredProperty{}
	}
	return values
}
