// Package usecase contiene los casos de uso CRUD del catálogo y de usuarios.
// Ninguno borra filas: DELETE desactiva y /activate reactiva.
package usecase

import (
	"time"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// Clock devuelve la hora actual. Reemplazable en tests.
type Clock func() time.Time

func listFilter(p dto.PageRequest) repository.ListFilter {
	p.DefaultPage()
	return repository.ListFilter{
		Search:          p.Search,
		IncludeInactive: p.IncludeInactive,
		Limit:           p.Limit,
		Offset:          p.Offset,
	}
}

func lifecycleOf(l entity.Lifecycle, createdAt, updatedAt time.Time) dto.LifecycleResponse {
	return dto.LifecycleResponse{
		IsActive:  l.IsActive,
		DeletedAt: l.DeletedAt,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}
}

func nowOr(clock Clock) Clock {
	if clock == nil {
		return time.Now
	}
	return clock
}
