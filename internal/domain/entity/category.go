package entity

// Category agrupa productos. El nombre no es único a nivel de esquema.
type Category struct {
	ID   int64
	Name string
}
