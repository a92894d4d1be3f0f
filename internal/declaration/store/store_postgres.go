package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"en13813/internal/declaration/models"
	id "en13813/pkg/domain"
	"en13813/pkg/platform/sentinel"
	"en13813/pkg/platform/tx"
)

const uniqueViolation = "23505"

const selectColumns = `
	id, declaration_number, recipe_id, batch_id, test_report_ids, manufacturer,
	harmonized_spec, avcp_system, notified_body, performance, signatory,
	valid_until, workflow_status, version, revision_of, active, created_at, updated_at
`

// PostgresStore persists declarations in PostgreSQL. Nested records are
// stored as jsonb; workflow_status only changes through UpdateStatus.
type PostgresStore struct {
	db *sql.DB
	tx *tx.Runner
}

// NewPostgres constructs a PostgreSQL-backed declaration store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db, tx: tx.NewRunner(db)}
}

// RunInTx runs fn in a transaction that every store method called with the
// ctx passed to fn joins.
func (s *PostgresStore) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return s.tx.RunInTx(ctx, fn)
}

func (s *PostgresStore) Create(ctx context.Context, d *models.Declaration) error {
	manufacturer, err := json.Marshal(d.Manufacturer)
	if err != nil {
		return fmt.Errorf("marshal manufacturer: %w", err)
	}
	performance, err := json.Marshal(d.Performance)
	if err != nil {
		return fmt.Errorf("marshal performance: %w", err)
	}
	notifiedBody, err := nullableJSON(d.NotifiedBody)
	if err != nil {
		return fmt.Errorf("marshal notified body: %w", err)
	}
	signatory, err := nullableJSON(d.Signatory)
	if err != nil {
		return fmt.Errorf("marshal signatory: %w", err)
	}

	query := `
		INSERT INTO declarations (` + selectColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
	`
	_, err = tx.Conn(ctx, s.db).ExecContext(ctx, query,
		uuid.UUID(d.ID),
		d.Number,
		uuid.UUID(d.RecipeID),
		nullableUUID((*uuid.UUID)(d.BatchID)),
		pq.Array(reportIDStrings(d.TestReportIDs)),
		string(manufacturer),
		d.HarmonizedSpec,
		int(d.AVCPSystem),
		notifiedBody,
		string(performance),
		signatory,
		d.ValidUntil,
		d.Status.String(),
		d.Version,
		nullableUUID((*uuid.UUID)(d.RevisionOf)),
		d.Active,
		d.CreatedAt,
		d.UpdatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return sentinel.ErrAlreadyUsed
		}
		return fmt.Errorf("insert declaration: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, declID id.DeclarationID) (*models.Declaration, error) {
	query := `SELECT ` + selectColumns + ` FROM declarations WHERE id = $1`
	d, err := scanDeclaration(tx.Conn(ctx, s.db).QueryRowContext(ctx, query, uuid.UUID(declID)))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find declaration by id: %w", err)
	}
	return d, nil
}

// UpdateStatus is a single conditional UPDATE, so two writers racing from the
// same expected status cannot both succeed.
func (s *PostgresStore) UpdateStatus(ctx context.Context, declID id.DeclarationID, expected, next models.Status, at time.Time) error {
	query := `
		UPDATE declarations
		SET workflow_status = $3, updated_at = $4
		WHERE id = $1 AND workflow_status = $2
	`
	res, err := tx.Conn(ctx, s.db).ExecContext(ctx, query, uuid.UUID(declID), expected.String(), next.String(), at)
	if err != nil {
		return fmt.Errorf("update declaration status: %w", err)
	}
	return s.checkAffected(ctx, res, declID)
}

func (s *PostgresStore) SetActive(ctx context.Context, declID id.DeclarationID, active bool, at time.Time) error {
	query := `UPDATE declarations SET active = $2, updated_at = $3 WHERE id = $1`
	res, err := tx.Conn(ctx, s.db).ExecContext(ctx, query, uuid.UUID(declID), active, at)
	if err != nil {
		return fmt.Errorf("update declaration active flag: %w", err)
	}
	return s.checkAffected(ctx, res, declID)
}

func (s *PostgresStore) ListRevisions(ctx context.Context, declID id.DeclarationID) ([]*models.Declaration, error) {
	query := `SELECT ` + selectColumns + ` FROM declarations WHERE revision_of = $1 ORDER BY version, created_at`
	rows, err := tx.Conn(ctx, s.db).QueryContext(ctx, query, uuid.UUID(declID))
	if err != nil {
		return nil, fmt.Errorf("list revisions: %w", err)
	}
	defer rows.Close()

	out := []*models.Declaration{}
	for rows.Next() {
		d, err := scanDeclaration(rows)
		if err != nil {
			return nil, fmt.Errorf("scan declaration: %w", err)
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate revisions: %w", err)
	}
	return out, nil
}

// checkAffected distinguishes "no such row" from "row in another state" when
// a conditional update touched nothing.
func (s *PostgresStore) checkAffected(ctx context.Context, res sql.Result, declID id.DeclarationID) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n > 0 {
		return nil
	}
	var exists bool
	err = tx.Conn(ctx, s.db).QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM declarations WHERE id = $1)`, uuid.UUID(declID)).Scan(&exists)
	if err != nil {
		return fmt.Errorf("check declaration exists: %w", err)
	}
	if !exists {
		return sentinel.ErrNotFound
	}
	return sentinel.ErrConflict
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDeclaration(row rowScanner) (*models.Declaration, error) {
	var (
		d            models.Declaration
		declID       uuid.UUID
		recipeID     uuid.UUID
		batchID      uuid.NullUUID
		revisionOf   uuid.NullUUID
		reportIDs    []string
		manufacturer []byte
		performance  []byte
		notifiedBody []byte
		signatory    []byte
		validUntil   sql.NullTime
		avcp         int
		status       string
	)
	err := row.Scan(
		&declID, &d.Number, &recipeID, &batchID, pq.Array(&reportIDs), &manufacturer,
		&d.HarmonizedSpec, &avcp, &notifiedBody, &performance, &signatory,
		&validUntil, &status, &d.Version, &revisionOf, &d.Active, &d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	d.ID = id.DeclarationID(declID)
	d.RecipeID = id.RecipeID(recipeID)
	d.AVCPSystem = models.AVCPSystem(avcp)
	d.Status = models.Status(status)
	if batchID.Valid {
		b := id.BatchID(batchID.UUID)
		d.BatchID = &b
	}
	if revisionOf.Valid {
		r := id.DeclarationID(revisionOf.UUID)
		d.RevisionOf = &r
	}
	if validUntil.Valid {
		v := validUntil.Time
		d.ValidUntil = &v
	}
	d.TestReportIDs = make([]id.TestReportID, 0, len(reportIDs))
	for _, raw := range reportIDs {
		reportID, err := id.ParseTestReportID(raw)
		if err != nil {
			return nil, fmt.Errorf("parse test report id: %w", err)
		}
		d.TestReportIDs = append(d.TestReportIDs, reportID)
	}
	if err := json.Unmarshal(manufacturer, &d.Manufacturer); err != nil {
		return nil, fmt.Errorf("unmarshal manufacturer: %w", err)
	}
	if err := json.Unmarshal(performance, &d.Performance); err != nil {
		return nil, fmt.Errorf("unmarshal performance: %w", err)
	}
	if notifiedBody != nil {
		d.NotifiedBody = &models.NotifiedBody{}
		if err := json.Unmarshal(notifiedBody, d.NotifiedBody); err != nil {
			return nil, fmt.Errorf("unmarshal notified body: %w", err)
		}
	}
	if signatory != nil {
		d.Signatory = &models.Signatory{}
		if err := json.Unmarshal(signatory, d.Signatory); err != nil {
			return nil, fmt.Errorf("unmarshal signatory: %w", err)
		}
	}
	return &d, nil
}

func reportIDStrings(ids []id.TestReportID) []string {
	out := make([]string, 0, len(ids))
	for _, reportID := range ids {
		out = append(out, reportID.String())
	}
	return out
}

func nullableUUID(u *uuid.UUID) uuid.NullUUID {
	if u == nil {
		return uuid.NullUUID{}
	}
	return uuid.NullUUID{UUID: *u, Valid: true}
}

// nullableJSON encodes v, or returns a nil value for SQL NULL.
func nullableJSON[T any](v *T) (any, error) {
	if v == nil {
		return nil, nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}
