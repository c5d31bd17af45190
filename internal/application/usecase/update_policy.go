package usecase

import (
	"sort"

	"github.com/jhoicas/Ventas-api/internal/application/validation"
	"github.com/jhoicas/Ventas-api/internal/domain"
)

// UpdatePolicy indica si PUT acepta cuerpos parciales para una entidad.
// Sin soporte parcial todos los campos obligatorios deben venir en el cuerpo.
type UpdatePolicy struct {
	SupportsPartialUpdate bool
}

// requireFull devuelve un error por cada campo ausente cuando no se admiten parciales.
func (p UpdatePolicy) requireFull(absent map[string]bool) *domain.ValidationError {
	if p.SupportsPartialUpdate {
		return nil
	}
	fields := make([]string, 0, len(absent))
	for f, missing := range absent {
		if missing {
			fields = append(fields, f)
		}
	}
	if len(fields) == 0 {
		return nil
	}
	sort.Strings(fields)
	verr := &domain.ValidationError{}
	for _, f := range fields {
		verr.Add(f, validation.MsgRequired)
	}
	return verr
}
