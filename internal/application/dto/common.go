package dto

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// CatalogItem entrada genérica de catálogo (roles, roles de guardia, tipos y estados de permiso).
type CatalogItem struct {
	ID     int64  `json:"id"`
	Codigo string `json:"codigo"`
	Nombre string `json:"nombre"`
}

// HealthResponse salida de /health.
type HealthResponse struct {
	Status string `json:"status"`
}
