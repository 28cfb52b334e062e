package repository

import (
	"context"
	"time"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

// LocationFilter filtro de listado de ubicaciones.
type LocationFilter struct {
	ListFilter
	WarehouseID string
}

// LocationRepository define el puerto de persistencia para Location.
type LocationRepository interface {
	Create(ctx context.Context, location *entity.Location) error
	GetByID(ctx context.Context, id string) (*entity.Location, error)
	Update(ctx context.Context, location *entity.Location) error
	List(ctx context.Context, f LocationFilter) ([]*entity.Location, int, error)
	SetActive(ctx context.Context, id string, active bool, at time.Time) error
}
