package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Kento03Onodera/pick-re-crm/internal/properties/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("property not found")

type Repository struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const propertyColumns = `id, name, address, price, layout, size, built_year, status,
		images, memo, latitude, longitude, deleted, created_at, updated_at`

func scanProperty(row pgx.Row) (domain.Property, error) {
	var (
		p         domain.Property
		imagesRaw []byte
	)
	err := row.Scan(
		&p.ID, &p.Name, &p.Address, &p.Price, &p.Layout, &p.Size, &p.BuiltYear,
		&p.Status, &imagesRaw, &p.Memo, &p.Latitude, &p.Longitude, &p.Deleted,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return domain.Property{}, err
	}
	if len(imagesRaw) > 0 {
		if err := json.Unmarshal(imagesRaw, &p.Images); err != nil {
			return domain.Property{}, fmt.Errorf("decode images: %w", err)
		}
	}
	return p, nil
}

// Upsert writes the full document for the id, creating a live document or
// replacing an existing override. Soft-deleted rows are revived when the
// incoming document clears the flag.
func (r *Repository) Upsert(ctx context.Context, p domain.Property) (domain.Property, error) {
	images := p.Images
	if images == nil {
		images = []string{}
	}
	imagesRaw, err := json.Marshal(images)
	if err != nil {
		return domain.Property{}, err
	}

	row := r.pool.QueryRow(ctx, `
		INSERT INTO properties (
			id, name, address, price, layout, size, built_year, status,
			images, memo, latitude, longitude, deleted
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			address = EXCLUDED.address,
			price = EXCLUDED.price,
			layout = EXCLUDED.layout,
			size = EXCLUDED.size,
			built_year = EXCLUDED.built_year,
			status = EXCLUDED.status,
			images = EXCLUDED.images,
			memo = EXCLUDED.memo,
			latitude = EXCLUDED.latitude,
			longitude = EXCLUDED.longitude,
			deleted = EXCLUDED.deleted,
			updated_at = now()
		RETURNING `+propertyColumns,
		p.ID, p.Name, p.Address, p.Price, p.Layout, p.Size, p.BuiltYear, p.Status,
		imagesRaw, p.Memo, p.Latitude, p.Longitude, p.Deleted,
	)
	return scanProperty(row)
}

func (r *Repository) GetByID(ctx context.Context, id string) (domain.Property, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+propertyColumns+`
		FROM properties
		WHERE id = $1
	`, id)
	p, err := scanProperty(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Property{}, ErrNotFound
	}
	return p, err
}

// List returns every live document, soft-deleted ones included; the merge
// layer needs deleted overrides to suppress their seed entries.
func (r *Repository) List(ctx context.Context) ([]domain.Property, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+propertyColumns+`
		FROM properties
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	docs := make([]domain.Property, 0)
	for rows.Next() {
		p, err := scanProperty(rows)
		if err != nil {
			return nil, err
		}
		docs = append(docs, p)
	}
	return docs, rows.Err()
}

// SoftDelete marks an existing document deleted. Seed ids with no override
// yet are handled by the service, which upserts a tombstone instead.
func (r *Repository) SoftDelete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE properties SET deleted = true, updated_at = now()
		WHERE id = $1
	`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
