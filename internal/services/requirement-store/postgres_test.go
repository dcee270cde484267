package requirementstore

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	apperrors "pbf-marketplace/internal/common/errors"
	"pbf-marketplace/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostgresStore_Append(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := fixedClock()
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO requirements (product, quantity, delivery_date, notes, created_at)")).
		WithArgs("Fresh Tomato", "100", "2026-10-24", "", now()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))

	store := NewPostgresStore(db, now)
	req, err := store.Append(context.Background(), candidate("Fresh Tomato"))

	require.NoError(t, err)
	assert.Equal(t, int64(7), req.ID)
	assert.Equal(t, "Fresh Tomato", req.Product)
	assert.Equal(t, now(), req.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_AppendFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("INSERT INTO requirements").WillReturnError(errors.New("connection reset"))

	_, err = NewPostgresStore(db, fixedClock()).Append(context.Background(), candidate("tomato"))

	require.Error(t, err)
	stdErr, ok := apperrors.AsStandardError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrCodeStorageFailed, stdErr.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_List(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	created := time.Date(2026, 10, 17, 8, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"id", "product", "quantity", "delivery_date", "notes", "created_at"}).
		AddRow(1, "potato", "50", time.Date(2026, 11, 1, 0, 0, 0, 0, time.UTC), "", created).
		AddRow(2, "Fresh Tomato", "12.5", time.Date(2026, 10, 24, 0, 0, 0, 0, time.UTC), "organic", created)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, product, quantity, delivery_date, notes, created_at")).
		WillReturnRows(rows)

	all, err := NewPostgresStore(db, nil).List(context.Background())

	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, int64(1), all[0].ID)
	assert.Equal(t, "2026-11-01", all[0].DeliveryDate)
	assert.Equal(t, "12.5", all[1].Quantity.String())
	assert.Equal(t, "organic", all[1].Notes)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_ListEmpty(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT id").
		WillReturnRows(sqlmock.NewRows([]string{"id", "product", "quantity", "delivery_date", "notes", "created_at"}))

	all, err := NewPostgresStore(db, nil).List(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []models.Requirement{}, all)
}

func TestPostgresStore_EnsureSchema(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS requirements").WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, NewPostgresStore(db, nil).EnsureSchema(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}
