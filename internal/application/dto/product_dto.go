package dto

import "github.com/shopspring/decimal"

// CreateProductRequest entrada para crear un producto.
// Price acepta número o string JSON ("9.99").
type CreateProductRequest struct {
	Name        string           `json:"name" validate:"required,max=255"`
	Price       *decimal.Decimal `json:"price" validate:"required"`
	Category    *int64           `json:"category" validate:"required"`
	Description string           `json:"description"`
}

// UpdateProductRequest entrada de PUT; los campos nil se consideran ausentes.
type UpdateProductRequest struct {
	Name        *string          `json:"name" validate:"omitempty,max=255"`
	Price       *decimal.Decimal `json:"price"`
	Category    *int64           `json:"category"`
	Description *string          `json:"description"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Price        Money  `json:"price"`
	Category     int64  `json:"category"`
	CategoryName string `json:"category_name"`
	Description  string `json:"description"`
}
