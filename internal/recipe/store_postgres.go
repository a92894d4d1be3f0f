package recipe

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"en13813/internal/designation"
	id "en13813/pkg/domain"
	"en13813/pkg/platform/sentinel"
	"en13813/pkg/platform/tx"
)

const uniqueViolation = "23505"

// PostgresStore persists recipes in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed recipe store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Create(ctx context.Context, r *Recipe) error {
	props, err := json.Marshal(r.Properties)
	if err != nil {
		return fmt.Errorf("marshal recipe properties: %w", err)
	}
	query := `
		INSERT INTO recipes (id, name, properties, designation, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err = tx.Conn(ctx, s.db).ExecContext(ctx, query,
		uuid.UUID(r.ID), r.Name, props, r.Designation, r.CreatedAt, r.UpdatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return sentinel.ErrAlreadyUsed
		}
		return fmt.Errorf("insert recipe: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, recipeID id.RecipeID) (*Recipe, error) {
	query := `
		SELECT id, name, properties, designation, created_at, updated_at
		FROM recipes
		WHERE id = $1
	`
	r, err := scanRecipe(tx.Conn(ctx, s.db).QueryRowContext(ctx, query, uuid.UUID(recipeID)))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find recipe by id: %w", err)
	}
	return r, nil
}

func (s *PostgresStore) List(ctx context.Context) ([]*Recipe, error) {
	query := `
		SELECT id, name, properties, designation, created_at, updated_at
		FROM recipes
		ORDER BY created_at
	`
	rows, err := tx.Conn(ctx, s.db).QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list recipes: %w", err)
	}
	defer rows.Close()

	out := []*Recipe{}
	for rows.Next() {
		r, err := scanRecipe(rows)
		if err != nil {
			return nil, fmt.Errorf("scan recipe: %w", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate recipes: %w", err)
	}
	return out, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecipe(row rowScanner) (*Recipe, error) {
	var (
		r     Recipe
		rid   uuid.UUID
		props []byte
	)
	if err := row.Scan(&rid, &r.Name, &props, &r.Designation, &r.CreatedAt, &r.UpdatedAt); err != nil {
		return nil, err
	}
	r.ID = id.RecipeID(rid)
	var p designation.Properties
	if err := json.Unmarshal(props, &p); err != nil {
		return nil, fmt.Errorf("unmarshal recipe properties: %w", err)
	}
	r.Properties = p
	return &r, nil
}
