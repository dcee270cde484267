package requirementstore

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	apperrors "pbf-marketplace/internal/common/errors"
	"pbf-marketplace/internal/models"

	"github.com/shopspring/decimal"
)

const requirementsSchema = `
CREATE TABLE IF NOT EXISTS requirements (
  id            BIGSERIAL PRIMARY KEY,
  product       TEXT        NOT NULL,
  quantity      NUMERIC     NOT NULL,
  delivery_date DATE        NOT NULL,
  notes         TEXT        NOT NULL DEFAULT '',
  created_at    TIMESTAMPTZ NOT NULL
);`

// PostgresStore persists requirements in the requirements table. The
// BIGSERIAL column provides the monotonic ID.
type PostgresStore struct {
	db  *sql.DB
	now Clock
}

func NewPostgresStore(db *sql.DB, now Clock) *PostgresStore {
	if now == nil {
		now = time.Now
	}
	return &PostgresStore{db: db, now: now}
}

// EnsureSchema creates the requirements table if it is missing.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, requirementsSchema); err != nil {
		return apperrors.NewStorageFailedError("ensure_schema", err)
	}
	return nil
}

func (s *PostgresStore) Append(ctx context.Context, candidate models.RequirementCandidate) (*models.Requirement, error) {
	createdAt := s.now().UTC()

	var id int64
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO requirements (product, quantity, delivery_date, notes, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`,
		candidate.Product,
		candidate.Quantity.String(),
		candidate.DeliveryDate,
		candidate.Notes,
		createdAt,
	).Scan(&id)
	if err != nil {
		return nil, apperrors.NewStorageFailedError("append", err)
	}

	req := models.NewRequirement(id, candidate, createdAt)
	return &req, nil
}

func (s *PostgresStore) List(ctx context.Context) ([]models.Requirement, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, product, quantity, delivery_date, notes, created_at
		FROM requirements
		ORDER BY id`)
	if err != nil {
		return nil, apperrors.NewStorageFailedError("list", err)
	}
	defer rows.Close()

	out := []models.Requirement{}
	for rows.Next() {
		var (
			req          models.Requirement
			quantity     string
			deliveryDate time.Time
		)
		if err := rows.Scan(&req.ID, &req.Product, &quantity, &deliveryDate, &req.Notes, &req.CreatedAt); err != nil {
			return nil, apperrors.NewStorageFailedError("list", err)
		}
		d, err := decimal.NewFromString(quantity)
		if err != nil {
			return nil, apperrors.NewStorageFailedError("list", fmt.Errorf("requirement %d quantity: %w", req.ID, err))
		}
		req.Quantity = models.Quantity(d)
		req.DeliveryDate = deliveryDate.Format(models.DateLayout)
		req.CreatedAt = req.CreatedAt.UTC()
		out = append(out, req)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewStorageFailedError("list", err)
	}
	return out, nil
}

var _ Store = (*PostgresStore)(nil)
