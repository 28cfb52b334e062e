package dto

import "time"

// Límites de paginación de los listados.
const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// PageRequest paginación y búsqueda para listados.
type PageRequest struct {
	Limit           int    `query:"limit"`
	Offset          int    `query:"offset"`
	Search          string `query:"search"`
	IncludeInactive bool   `query:"include_inactive"`
}

// DefaultPage aplica valores por defecto: limit 20 (máximo 100), offset no negativo.
func (p *PageRequest) DefaultPage() {
	if p.Limit <= 0 {
		p.Limit = DefaultLimit
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
}

// PageResponse metadatos de página en respuestas.
type PageResponse struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
	Total  int `json:"total"`
}

// ListResponse lista paginada.
type ListResponse[T any] struct {
	Items []T          `json:"items"`
	Page  PageResponse `json:"page"`
}

// NewListResponse arma la respuesta de una página.
func NewListResponse[T any](items []T, page PageRequest, total int) ListResponse[T] {
	if items == nil {
		items = []T{}
	}
	return ListResponse[T]{Items: items, Page: PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total}}
}

// ErrorResponse cuerpo de error HTTP. Errors detalla fallos por campo.
type ErrorResponse struct {
	Code         string            `json:"code"`
	Message      string            `json:"message"`
	Errors       map[string]string `json:"errors,omitempty"`
	AllowedTypes []string          `json:"allowed_types,omitempty"` // solo en INVALID_TYPE_FOR_MOVEMENT
}

// LifecycleResponse estado de borrado lógico incluido en cada recurso.
type LifecycleResponse struct {
	IsActive  bool       `json:"is_active"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}
