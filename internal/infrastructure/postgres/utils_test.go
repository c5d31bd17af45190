package postgres

import (
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Ventas-api/internal/domain"
	"github.com/jhoicas/Ventas-api/internal/domain/repository"
)

func TestSalesWhere(t *testing.T) {
	where, args := salesWhere(repository.SalesFilter{})
	assert.Empty(t, where)
	assert.Empty(t, args)

	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	cat := int64(4)
	where, args = salesWhere(repository.SalesFilter{StartDate: &start, CategoryID: &cat})
	assert.Equal(t, "WHERE s.date >= $1 AND p.category_id = $2", where)
	assert.Equal(t, []any{start, cat}, args)
}

func TestMapWriteError(t *testing.T) {
	err := mapWriteError(&pgconn.PgError{Code: "23503"}, "insert product", "category", 9, "price")
	var verr *domain.ValidationError
	assert.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Fields["category"], "\"9\"")

	err = mapWriteError(&pgconn.PgError{Code: "23514"}, "insert sale", "product", 1, "quantity")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	err = mapWriteError(&pgconn.PgError{Code: "22003"}, "insert sale", "product", 1, "quantity")
	verr = nil
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "fuera de rango", verr.Fields["quantity"])

	boom := errors.New("boom")
	err = mapWriteError(boom, "insert sale", "product", 1, "quantity")
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "insert sale")
}

func TestSyncSequenceSQL(t *testing.T) {
	assert.Contains(t, syncSequenceSQL("sales"), "pg_get_serial_sequence('sales', 'id')")
}
