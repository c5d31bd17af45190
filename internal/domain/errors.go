package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrImport       = errors.New("error de importación")
)

// ValidationError agrupa errores por campo (campo -> mensaje). Nunca implica escritura parcial.
type ValidationError struct {
	Fields map[string]string
}

// NewValidationError construye un error con un único campo.
func NewValidationError(field, msg string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: msg}}
}

// Add agrega (o reemplaza) el mensaje de un campo.
func (e *ValidationError) Add(field, msg string) {
	if e.Fields == nil {
		e.Fields = make(map[string]string)
	}
	e.Fields[field] = msg
}

// HasErrors indica si hay al menos un campo con error.
func (e *ValidationError) HasErrors() bool {
	return e != nil && len(e.Fields) > 0
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "validación: " + strings.Join(parts, "; ")
}

// Is permite errors.Is(err, ErrInvalidInput).
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// InvalidReference error de validación para una llave foránea que no resuelve.
func InvalidReference(field string, id int64) *ValidationError {
	return NewValidationError(field, fmt.Sprintf("clave primaria inválida \"%d\": el objeto no existe", id))
}
