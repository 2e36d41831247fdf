// Package agents provides the agent directory and authentication module.
// The users table doubles as the directory: every registered account is a
// selectable salesperson.
package agents

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrNotFound       = errors.New("agent not found")
	ErrDuplicateEmail = errors.New("email already registered")
)

type Agent struct {
	ID           uuid.UUID
	Email        string
	LastName     string
	FirstName    string
	Name         string
	AvatarURL    *string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type Repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const agentColumns = `id, email, last_name, first_name, name, avatar_url, password_hash, created_at, updated_at`

func scanAgent(row pgx.Row) (Agent, error) {
	var a Agent
	err := row.Scan(
		&a.ID, &a.Email, &a.LastName, &a.FirstName, &a.Name, &a.AvatarURL,
		&a.PasswordHash, &a.CreatedAt, &a.UpdatedAt,
	)
	return a, err
}

type CreateAgentParams struct {
	Email        string
	LastName     string
	FirstName    string
	Name         string
	PasswordHash string
}

func (r *Repository) Create(ctx context.Context, params CreateAgentParams) (Agent, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO users (email, last_name, first_name, name, password_hash)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+agentColumns,
		params.Email, params.LastName, params.FirstName, params.Name, params.PasswordHash,
	)
	agent, err := scanAgent(row)
	if err != nil && isUniqueViolation(err) {
		return Agent{}, ErrDuplicateEmail
	}
	return agent, err
}

func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (Agent, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+agentColumns+` FROM users WHERE id = $1`, id)
	agent, err := scanAgent(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Agent{}, ErrNotFound
	}
	return agent, err
}

func (r *Repository) GetByEmail(ctx context.Context, email string) (Agent, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+agentColumns+` FROM users WHERE email = $1`, email)
	agent, err := scanAgent(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Agent{}, ErrNotFound
	}
	return agent, err
}

func (r *Repository) List(ctx context.Context) ([]Agent, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+agentColumns+`
		FROM users
		ORDER BY name ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	agents := make([]Agent, 0)
	for rows.Next() {
		agent, err := scanAgent(rows)
		if err != nil {
			return nil, err
		}
		agents = append(agents, agent)
	}
	return agents, rows.Err()
}

type UpdateAgentParams struct {
	LastName     *string
	FirstName    *string
	Name         *string
	AvatarURL    *string
	AvatarURLSet bool
}

func (r *Repository) Update(ctx context.Context, id uuid.UUID, params UpdateAgentParams) (Agent, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE users SET
			last_name = COALESCE($2, last_name),
			first_name = COALESCE($3, first_name),
			name = COALESCE($4, name),
			avatar_url = CASE WHEN $5 THEN $6 ELSE avatar_url END,
			updated_at = now()
		WHERE id = $1
		RETURNING `+agentColumns,
		id, params.LastName, params.FirstName, params.Name, params.AvatarURLSet, params.AvatarURL,
	)
	agent, err := scanAgent(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Agent{}, ErrNotFound
	}
	return agent, err
}

func isUniqueViolation(err error) bool {
	// 23505 is the Postgres unique_violation code.
	var pgErr interface{ SQLState() string }
	return errors.As(err, &pgErr) && pgErr.SQLState() == "23505"
}
