package repository

import (
	"context"
	"time"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

// PersonFilter filtro de listado de personas (Kind vacío = todas).
type PersonFilter struct {
	ListFilter
	Kind entity.PersonKind
}

// PersonRepository define el puerto de persistencia para Person y sus subtipos.
type PersonRepository interface {
	Create(ctx context.Context, person *entity.Person) error
	GetByID(ctx context.Context, id string) (*entity.Person, error)
	Update(ctx context.Context, person *entity.Person) error
	List(ctx context.Context, f PersonFilter) ([]*entity.Person, int, error)
	SetActive(ctx context.Context, id string, active bool, at time.Time) error
}
