package dto

import "github.com/shopspring/decimal"

// ErrorResponse cuerpo de error HTTP para errores que no son de validación.
type ErrorResponse struct {
	Error string `json:"error"`
}

// Money serializa importes con 2 decimales fijos ("9.90"), como NUMERIC(10,2).
type Money decimal.Decimal

// NewMoney convierte un decimal a Money.
func NewMoney(d decimal.Decimal) Money { return Money(d) }

// MarshalJSON emite el importe como string con escala 2.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(`"` + decimal.Decimal(m).StringFixed(2) + `"`), nil
}

// Decimal devuelve el valor subyacente.
func (m Money) Decimal() decimal.Decimal { return decimal.Decimal(m) }
