package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

var _ repository.WarehouseRepository = (*WarehouseRepo)(nil)

const warehouseColumns = `id, name, description, is_active, deleted_at, created_at, updated_at`

// WarehouseRepo implementación del puerto WarehouseRepository sobre PostgreSQL.
type WarehouseRepo struct {
	q Querier
}

// NewWarehouseRepository construye el adaptador de persistencia para almacenes.
func NewWarehouseRepository(q Querier) *WarehouseRepo {
	return &WarehouseRepo{q: q}
}

// Create persiste un nuevo almacén.
func (r *WarehouseRepo) Create(ctx context.Context, w *entity.Warehouse) error {
	query := `
		INSERT INTO warehouses (id, name, description, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(ctx, query, w.ID, w.Name, w.Description, w.IsActive, w.CreatedAt, w.UpdatedAt)
	if err != nil {
		return writeError("insert warehouse", err)
	}
	return nil
}

// GetByID obtiene un almacén por ID (activo o no). nil si no existe.
func (r *WarehouseRepo) GetByID(ctx context.Context, id string) (*entity.Warehouse, error) {
	var w entity.Warehouse
	err := r.q.QueryRow(ctx, `SELECT `+warehouseColumns+` FROM warehouses WHERE id = $1`, id).Scan(
		&w.ID, &w.Name, &w.Description, &w.IsActive, &w.DeletedAt, &w.CreatedAt, &w.UpdatedAt,
	)
	if err != nil {
		missing, err := readError("get warehouse", err)
		if missing {
			return nil, nil
		}
		return nil, err
	}
	return &w, nil
}

// Update actualiza nombre y descripción.
func (r *WarehouseRepo) Update(ctx context.Context, w *entity.Warehouse) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE warehouses SET name = $2, description = $3, updated_at = $4 WHERE id = $1`,
		w.ID, w.Name, w.Description, w.UpdatedAt,
	)
	if err != nil {
		return writeError("update warehouse", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista almacenes ordenados por nombre.
func (r *WarehouseRepo) List(ctx context.Context, f repository.ListFilter) ([]*entity.Warehouse, int, error) {
	var w where
	w.activeOnly(f.IncludeInactive, "is_active")
	w.search(f.Search, "name", "description")

	total, err := w.count(ctx, r.q, "warehouses")
	if err != nil {
		return nil, 0, err
	}
	pageSQL, args := w.page(f.Limit, f.Offset)
	rows, err := r.q.Query(ctx, `SELECT `+warehouseColumns+` FROM warehouses`+w.sql()+` ORDER BY name`+pageSQL, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list warehouses: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.Warehouse, 0)
	for rows.Next() {
		var it entity.Warehouse
		if err := rows.Scan(&it.ID, &it.Name, &it.Description, &it.IsActive, &it.DeletedAt, &it.CreatedAt, &it.UpdatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan warehouse: %w", err)
		}
		list = append(list, &it)
	}
	return list, total, rows.Err()
}

// SetActive activa o desactiva el almacén.
func (r *WarehouseRepo) SetActive(ctx context.Context, id string, active bool, at time.Time) error {
	return setActive(ctx, r.q, "warehouses", id, active, at)
}
