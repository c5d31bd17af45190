package dto

// ImportResultDTO respuesta de la carga masiva de productos.
type ImportResultDTO struct {
	Message string `json:"message"`
	Count   int    `json:"count"`
}

// SeedReportDTO filas creadas por la siembra inicial.
type SeedReportDTO struct {
	Categories int `json:"categories"`
	Products   int `json:"products"`
	Sales      int `json:"sales"`
}
