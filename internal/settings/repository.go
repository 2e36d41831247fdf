package settings

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrDocumentNotFound is returned when a settings document has never been
// written. Callers fall back to defaults.
var ErrDocumentNotFound = errors.New("settings document not found")

const (
	keyStatuses = "statuses"
	keyTargets  = "targets"
)

// Repository stores the settings documents as jsonb rows keyed by name.
type Repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

func (r *Repository) getDocument(ctx context.Context, key string, out interface{}) error {
	var raw []byte
	err := r.pool.QueryRow(ctx, `
		SELECT doc FROM settings WHERE key = $1
	`, key).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrDocumentNotFound
	}
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode settings document %q: %w", key, err)
	}
	return nil
}

func (r *Repository) putDocument(ctx context.Context, key string, doc interface{}) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	_, err = r.pool.Exec(ctx, `
		INSERT INTO settings (key, doc) VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET doc = EXCLUDED.doc, updated_at = now()
	`, key, raw)
	return err
}

type statusesDocument struct {
	Config []StatusConfig `json:"config"`
}

// GetStatuses loads the saved status configuration. ErrDocumentNotFound
// means nothing was ever saved.
func (r *Repository) GetStatuses(ctx context.Context) ([]StatusConfig, error) {
	var doc statusesDocument
	if err := r.getDocument(ctx, keyStatuses, &doc); err != nil {
		return nil, err
	}
	return doc.Config, nil
}

func (r *Repository) PutStatuses(ctx context.Context, config []StatusConfig) error {
	return r.putDocument(ctx, keyStatuses, statusesDocument{Config: config})
}

// targetsDocument maps year → month ("1".."12") → target amount in yen.
type targetsDocument map[string]map[string]int64

// GetTargets returns the month targets for one year. A year never written
// yields an empty map, not an error.
func (r *Repository) GetTargets(ctx context.Context, year int) (map[string]int64, error) {
	var doc targetsDocument
	if err := r.getDocument(ctx, keyTargets, &doc); err != nil {
		if errors.Is(err, ErrDocumentNotFound) {
			return map[string]int64{}, nil
		}
		return nil, err
	}
	months, ok := doc[fmt.Sprintf("%d", year)]
	if !ok {
		return map[string]int64{}, nil
	}
	return months, nil
}

// PutTargets replaces one year's months, leaving other years untouched.
// The merge happens in the database as a single jsonb concatenation, so
// concurrent writers for different years cannot lose each other's year.
func (r *Repository) PutTargets(ctx context.Context, year int, months map[string]int64) error {
	yearKey, patch, err := targetsYearPatch(year, months)
	if err != nil {
		return err
	}
	_, err = r.pool.Exec(ctx, `
		INSERT INTO settings (key, doc)
		VALUES ($1, jsonb_build_object($2::text, $3::jsonb))
		ON CONFLICT (key) DO UPDATE
		SET doc = settings.doc || jsonb_build_object($2::text, $3::jsonb),
		    updated_at = now()
	`, keyTargets, yearKey, patch)
	return err
}

// targetsYearPatch renders the year key and month map applied to the
// targets document. Nil months become an empty object so the year key
// is still written.
func targetsYearPatch(year int, months map[string]int64) (string, []byte, error) {
	if months == nil {
		months = map[string]int64{}
	}
	patch, err := json.Marshal(months)
	if err != nil {
		return "", nil, err
	}
	return fmt.Sprintf("%d", year), patch, nil
}
