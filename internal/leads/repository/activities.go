package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var ErrActivityNotFound = errors.New("activity not found")

type Activity struct {
	ID         uuid.UUID
	LeadID     uuid.UUID
	Type       string
	Content    string
	AgentID    *uuid.UUID
	AgentName  string
	OccurredAt time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

const activityColumns = `id, lead_id, type, content, agent_id, agent_name, occurred_at, created_at, updated_at`

func scanActivity(row pgx.Row) (Activity, error) {
	var a Activity
	err := row.Scan(
		&a.ID, &a.LeadID, &a.Type, &a.Content, &a.AgentID, &a.AgentName,
		&a.OccurredAt, &a.CreatedAt, &a.UpdatedAt,
	)
	return a, err
}

type AddActivityParams struct {
	LeadID     uuid.UUID
	Type       string
	Content    string
	AgentID    *uuid.UUID
	AgentName  string
	OccurredAt time.Time
}

func (r *Repository) AddActivity(ctx context.Context, params AddActivityParams) (Activity, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO lead_activities (lead_id, type, content, agent_id, agent_name, occurred_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+activityColumns,
		params.LeadID, params.Type, params.Content, params.AgentID, params.AgentName, params.OccurredAt,
	)
	return scanActivity(row)
}

// ListActivities returns the lead's log newest first.
func (r *Repository) ListActivities(ctx context.Context, leadID uuid.UUID) ([]Activity, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+activityColumns+`
		FROM lead_activities
		WHERE lead_id = $1
		ORDER BY occurred_at DESC, created_at DESC
	`, leadID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	activities := make([]Activity, 0)
	for rows.Next() {
		a, err := scanActivity(rows)
		if err != nil {
			return nil, err
		}
		activities = append(activities, a)
	}
	return activities, rows.Err()
}

type UpdateActivityParams struct {
	Type       *string
	Content    *string
	OccurredAt *time.Time
}

func (r *Repository) UpdateActivity(ctx context.Context, leadID, activityID uuid.UUID, params UpdateActivityParams) (Activity, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE lead_activities SET
			type = COALESCE($3, type),
			content = COALESCE($4, content),
			occurred_at = COALESCE($5, occurred_at),
			updated_at = now()
		WHERE id = $2 AND lead_id = $1
		RETURNING `+activityColumns,
		leadID, activityID, params.Type, params.Content, params.OccurredAt,
	)
	activity, err := scanActivity(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Activity{}, ErrActivityNotFound
	}
	return activity, err
}

func (r *Repository) DeleteActivity(ctx context.Context, leadID, activityID uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `
		DELETE FROM lead_activities
		WHERE id = $2 AND lead_id = $1
	`, leadID, activityID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrActivityNotFound
	}
	return nil
}
