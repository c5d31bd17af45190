package dto

import "github.com/shopspring/decimal"

// CreateSaleRequest entrada para registrar una venta.
type CreateSaleRequest struct {
	Product    *int64           `json:"product" validate:"required"`
	Date       string           `json:"date" validate:"required,datetime=2006-01-02"`
	Quantity   *int             `json:"quantity" validate:"required,gt=0,lte=2147483647"`
	TotalPrice *decimal.Decimal `json:"total_price" validate:"required"`
}

// UpdateSaleRequest entrada de PUT (parcial si la política lo permite).
type UpdateSaleRequest struct {
	Product    *int64           `json:"product"`
	Date       *string          `json:"date" validate:"omitempty,datetime=2006-01-02"`
	Quantity   *int             `json:"quantity" validate:"omitempty,gt=0,lte=2147483647"`
	TotalPrice *decimal.Decimal `json:"total_price"`
}

// SaleResponse salida de una venta.
type SaleResponse struct {
	ID          int64  `json:"id"`
	Product     int64  `json:"product"`
	ProductName string `json:"product_name"`
	Date        string `json:"date"`
	Quantity    int    `json:"quantity"`
	TotalPrice  Money  `json:"total_price"`
}
