package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"recipeshare/internal/recipe"
)

const schema = `
CREATE TABLE IF NOT EXISTS recipes (
	record_type TEXT NOT NULL,
	id          TEXT NOT NULL,
	file_ext    TEXT NOT NULL,
	has_image   BOOLEAN NOT NULL,
	title       TEXT NOT NULL,
	description TEXT NOT NULL,
	steps       TEXT NOT NULL,
	PRIMARY KEY (record_type, id)
)`

// Postgres implements RecipeStore on a pgx connection pool.
type Postgres struct {
	pool *pgxpool.Pool
}

var _ RecipeStore = (*Postgres)(nil)

func NewPostgres(pool *pgxpool.Pool) *Postgres {
	return &Postgres{pool: pool}
}

// EnsureSchema applies the table definition if it is not present.
func (p *Postgres) EnsureSchema(ctx context.Context) error {
	if _, err := p.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("applying schema: %w", err)
	}
	return nil
}

func (p *Postgres) Put(ctx context.Context, rec recipe.Record) error {
	const q = `
		INSERT INTO recipes (record_type, id, file_ext, has_image, title, description, steps)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := p.pool.Exec(ctx, q,
		rec.Type, rec.ID, rec.FileExt, rec.HasImage, rec.Title, rec.Description, rec.Steps)
	if err != nil {
		return fmt.Errorf("inserting record %q: %w", rec.ID, err)
	}
	return nil
}

func (p *Postgres) Query(ctx context.Context, recordType string, limit int, startKey string) ([]recipe.Record, string, error) {
	// Fetch one extra row to decide whether a next page exists.
	const base = `
		SELECT record_type, id, file_ext, has_image, title, description, steps
		FROM recipes
		WHERE record_type = $1`

	var (
		q    string
		args []any
	)
	if startKey == "" {
		q = base + ` ORDER BY id DESC LIMIT $2`
		args = []any{recordType, limit + 1}
	} else {
		q = base + ` AND id < $2 ORDER BY id DESC LIMIT $3`
		args = []any{recordType, startKey, limit + 1}
	}

	rows, err := p.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, "", fmt.Errorf("querying records: %w", err)
	}
	defer rows.Close()

	var records []recipe.Record
	for rows.Next() {
		var rec recipe.Record
		if err := rows.Scan(&rec.Type, &rec.ID, &rec.FileExt, &rec.HasImage,
			&rec.Title, &rec.Description, &rec.Steps); err != nil {
			return nil, "", fmt.Errorf("scanning record: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, "", fmt.Errorf("reading records: %w", err)
	}

	var nextKey string
	if len(records) > limit {
		records = records[:limit]
		nextKey = records[limit-1].ID
	}
	return records, nextKey, nil
}
