package validation_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Ventas-api/internal/application/validation"
	"github.com/jhoicas/Ventas-api/internal/domain"
)

type sample struct {
	Name     string `json:"name" validate:"required,max=5"`
	Quantity *int   `json:"quantity" validate:"required,gt=0"`
	Date     string `json:"date" validate:"required,datetime=2006-01-02"`
}

func TestStruct_Valido(t *testing.T) {
	q := 2
	assert.Nil(t, validation.Struct(sample{Name: "ok", Quantity: &q, Date: "2024-01-05"}))
}

func TestStruct_ErroresPorCampoJSON(t *testing.T) {
	q := 0
	verr := validation.Struct(sample{Name: "demasiado largo", Quantity: &q, Date: "05/01/2024"})
	require.NotNil(t, verr)

	assert.Contains(t, verr.Fields["name"], "5")
	assert.Equal(t, "debe ser mayor que 0", verr.Fields["quantity"])
	assert.Contains(t, verr.Fields["date"], "YYYY-MM-DD")
	assert.ErrorIs(t, verr, domain.ErrInvalidInput)
}

func TestStruct_Requeridos(t *testing.T) {
	verr := validation.Struct(sample{})
	require.NotNil(t, verr)
	assert.Equal(t, validation.MsgRequired, verr.Fields["name"])
	assert.Equal(t, validation.MsgRequired, verr.Fields["quantity"])
	assert.Equal(t, validation.MsgRequired, verr.Fields["date"])
}

func TestMoney(t *testing.T) {
	tests := []struct {
		in string
		ok bool
	}{
		{"9.99", true},
		{"10", true},
		{"-3.5", true},
		{"9.999", false},
		{"99999999.99", true},
		{"100000000", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			verr := &domain.ValidationError{}
			assert.Equal(t, tt.ok, validation.Money(verr, "price", decimal.RequireFromString(tt.in)))
			assert.Equal(t, !tt.ok, verr.HasErrors())
		})
	}
}

func TestMerge(t *testing.T) {
	assert.Nil(t, validation.Merge(nil, &domain.ValidationError{}))

	merged := validation.Merge(
		domain.NewValidationError("name", "a"),
		nil,
		domain.NewValidationError("price", "b"),
	)
	require.NotNil(t, merged)
	assert.Len(t, merged.Fields, 2)
}
