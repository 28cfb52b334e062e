package repository

import (
	"context"
	"time"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

// ProductFilter filtro de listado de productos.
type ProductFilter struct {
	ListFilter
	CategoryID string
}

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	List(ctx context.Context, f ProductFilter) ([]*entity.Product, int, error)
	SetActive(ctx context.Context, id string, active bool, at time.Time) error
}
