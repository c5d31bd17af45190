// Package validation valida DTOs con go-playground/validator y traduce los
// errores a domain.ValidationError (campo JSON -> mensaje).
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Ventas-api/internal/domain"
)

// MsgRequired mensaje para campos obligatorios ausentes.
const MsgRequired = "este campo es requerido"

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Reportar el nombre del tag json (category, total_price...) en lugar del campo Go.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

// Struct valida s y devuelve los errores por campo (nil si es válido).
func Struct(s any) *domain.ValidationError {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return domain.NewValidationError("non_field_errors", err.Error())
	}
	verr := &domain.ValidationError{}
	for _, fe := range fieldErrs {
		verr.Add(fe.Field(), message(fe))
	}
	return verr
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return MsgRequired
	case "max":
		return fmt.Sprintf("no puede tener más de %s caracteres", fe.Param())
	case "gt":
		return fmt.Sprintf("debe ser mayor que %s", fe.Param())
	case "gte":
		return fmt.Sprintf("debe ser mayor o igual que %s", fe.Param())
	case "lte":
		return fmt.Sprintf("debe ser menor o igual que %s", fe.Param())
	case "datetime":
		return "formato de fecha inválido, use YYYY-MM-DD"
	default:
		return fmt.Sprintf("valor inválido (%s)", fe.Tag())
	}
}

// Money verifica un importe NUMERIC(10,2): máximo 2 decimales y 8 dígitos enteros.
// Agrega el error a verr y devuelve false si no cumple.
func Money(verr *domain.ValidationError, field string, d decimal.Decimal) bool {
	if !d.Equal(d.Round(2)) {
		verr.Add(field, "no puede tener más de 2 decimales")
		return false
	}
	if d.Abs().GreaterThanOrEqual(decimal.New(1, 8)) {
		verr.Add(field, "no puede tener más de 10 dígitos en total")
		return false
	}
	return true
}

// Merge combina errores; devuelve nil si ninguno tiene campos.
func Merge(errs ...*domain.ValidationError) *domain.ValidationError {
	out := &domain.ValidationError{}
	for _, e := range errs {
		if !e.HasErrors() {
			continue
		}
		for k, v := range e.Fields {
			out.Add(k, v)
		}
	}
	if !out.HasErrors() {
		return nil
	}
	return out
}
