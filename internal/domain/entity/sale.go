package entity

import (
	"math"
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout formato de fecha de calendario usado en API, CSV y base de datos.
const DateLayout = "2006-01-02"

// MaxQuantity tope de la columna quantity (INTEGER).
const MaxQuantity = math.MaxInt32

// Sale representa una transacción de venta.
// TotalPrice se almacena tal cual llega; no se reconcilia con Price × Quantity.
type Sale struct {
	ID          int64
	ProductID   int64
	ProductName string
	Date        time.Time // solo fecha (00:00 UTC)
	Quantity    int
	TotalPrice  decimal.Decimal
}

// TruncateDate normaliza un instante a fecha de calendario en UTC.
func TruncateDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ParseDate interpreta una fecha YYYY-MM-DD.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, time.UTC)
}
