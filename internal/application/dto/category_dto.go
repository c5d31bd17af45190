package dto

// CreateCategoryRequest entrada para crear una categoría.
type CreateCategoryRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}

// UpdateCategoryRequest entrada de PUT; los campos nil se consideran ausentes.
type UpdateCategoryRequest struct {
	Name *string `json:"name" validate:"omitempty,max=100"`
}

// CategoryResponse salida de una categoría.
type CategoryResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
