package entity

import "github.com/shopspring/decimal"

// Product representa un producto del catálogo. Price se guarda con 2 decimales.
// CategoryName es una proyección de solo lectura (JOIN con categories).
type Product struct {
	ID           int64
	Name         string
	Price        decimal.Decimal
	CategoryID   int64
	CategoryName string
	Description  string
}
