package repository

import (
	"context"
	"time"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
	List(ctx context.Context, f ListFilter) ([]*entity.User, int, error)
	SetActive(ctx context.Context, id string, active bool, at time.Time) error
	// Count cuenta todos los usuarios (activos o no). Cero indica instalación nueva.
	Count(ctx context.Context) (int, error)
}
