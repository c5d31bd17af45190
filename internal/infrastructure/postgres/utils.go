package postgres

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/Ventas-api/internal/domain"
)

// isForeignKeyViolation verifica si un error es una violación de llave foránea (23503).
func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23503"
	}
	return strings.Contains(err.Error(), "23503")
}

// isCheckViolation verifica si un error es una violación de CHECK (23514).
func isCheckViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23514"
	}
	return false
}

// isNumericOutOfRange verifica si un valor excede el tipo de la columna (22003).
func isNumericOutOfRange(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "22003"
	}
	return false
}

// mapWriteError traduce errores de escritura a errores de dominio.
// field es el campo JSON de la referencia (category, product); rangeField el
// campo numérico que puede desbordar la columna (price, quantity).
func mapWriteError(err error, op, field string, refID int64, rangeField string) error {
	if isForeignKeyViolation(err) {
		return domain.InvalidReference(field, refID)
	}
	if isNumericOutOfRange(err) {
		return domain.NewValidationError(rangeField, "fuera de rango")
	}
	if isCheckViolation(err) {
		return domain.NewValidationError("quantity", "debe ser mayor que 0")
	}
	return fmt.Errorf("%s: %w", op, err)
}

// syncSequenceSQL alinea la secuencia identity con el máximo id tras inserts con id explícito.
func syncSequenceSQL(table string) string {
	return fmt.Sprintf(
		`SELECT setval(pg_get_serial_sequence('%s', 'id'), GREATEST((SELECT COALESCE(MAX(id), 0) FROM %s), 1))`,
		table, table,
	)
}
