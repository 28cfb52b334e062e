package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

var _ repository.LocationRepository = (*LocationRepo)(nil)

const locationColumns = `id, warehouse_id, name, description, is_active, deleted_at, created_at, updated_at`

// LocationRepo implementación del puerto LocationRepository sobre PostgreSQL.
type LocationRepo struct {
	q Querier
}

// NewLocationRepository construye el adaptador de persistencia para ubicaciones.
func NewLocationRepository(q Querier) *LocationRepo {
	return &LocationRepo{q: q}
}

// Create persiste una ubicación. ErrNotFound si el almacén no existe.
func (r *LocationRepo) Create(ctx context.Context, l *entity.Location) error {
	query := `
		INSERT INTO locations (id, warehouse_id, name, description, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query, l.ID, l.WarehouseID, l.Name, l.Description, l.IsActive, l.CreatedAt, l.UpdatedAt)
	if err != nil {
		return writeError("insert location", err)
	}
	return nil
}

// GetByID obtiene una ubicación por ID. nil si no existe.
func (r *LocationRepo) GetByID(ctx context.Context, id string) (*entity.Location, error) {
	var l entity.Location
	err := r.q.QueryRow(ctx, `SELECT `+locationColumns+` FROM locations WHERE id = $1`, id).Scan(
		&l.ID, &l.WarehouseID, &l.Name, &l.Description, &l.IsActive, &l.DeletedAt, &l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		missing, err := readError("get location", err)
		if missing {
			return nil, nil
		}
		return nil, err
	}
	return &l, nil
}

// Update actualiza nombre, descripción y almacén.
func (r *LocationRepo) Update(ctx context.Context, l *entity.Location) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE locations SET warehouse_id = $2, name = $3, description = $4, updated_at = $5 WHERE id = $1`,
		l.ID, l.WarehouseID, l.Name, l.Description, l.UpdatedAt,
	)
	if err != nil {
		return writeError("update location", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista ubicaciones, opcionalmente de un almacén.
func (r *LocationRepo) List(ctx context.Context, f repository.LocationFilter) ([]*entity.Location, int, error) {
	var w where
	w.activeOnly(f.IncludeInactive, "is_active")
	w.addIf(f.WarehouseID != "", "warehouse_id = ?", f.WarehouseID)
	w.search(f.Search, "name", "description")

	total, err := w.count(ctx, r.q, "locations")
	if err != nil {
		return nil, 0, err
	}
	pageSQL, args := w.page(f.Limit, f.Offset)
	rows, err := r.q.Query(ctx, `SELECT `+locationColumns+` FROM locations`+w.sql()+` ORDER BY name`+pageSQL, args...)
	if err != nil {
		if isInvalidID(err) {
			return []*entity.Location{}, 0, nil
		}
		return nil, 0, fmt.Errorf("list locations: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.Location, 0)
	for rows.Next() {
		var it entity.Location
		if err := rows.Scan(&it.ID, &it.WarehouseID, &it.Name, &it.Description, &it.IsActive, &it.DeletedAt, &it.CreatedAt, &it.UpdatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan location: %w", err)
		}
		list = append(list, &it)
	}
	return list, total, rows.Err()
}

// SetActive activa o desactiva la ubicación.
func (r *LocationRepo) SetActive(ctx context.Context, id string, active bool, at time.Time) error {
	return setActive(ctx, r.q, "locations", id, active, at)
}
