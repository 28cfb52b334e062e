package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/inventory"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

var _ repository.InventoryRepository = (*InventoryRepo)(nil)

const inventoryColumns = `id, product_id, location_id, is_active, deleted_at, created_at, updated_at`

// levelQuery proyección de inventarios con la cantidad derivada de sus transacciones activas.
// La cantidad nunca se guarda: se suma en cada lectura.
const levelQuery = `
	SELECT i.id, i.product_id, i.location_id, i.is_active, i.deleted_at, i.created_at, i.updated_at,
	       p.name AS product_name, l.name AS location_name, w.name AS warehouse_name, lv.quantity
	FROM inventories i
	JOIN products   p ON p.id = i.product_id
	JOIN locations  l ON l.id = i.location_id
	JOIN warehouses w ON w.id = l.warehouse_id
	CROSS JOIN LATERAL (
	    SELECT (COALESCE(SUM(t.quantity) FILTER (WHERE t.movement = 'IN'), 0)
	          - COALESCE(SUM(t.quantity) FILTER (WHERE t.movement = 'OUT'), 0))::bigint AS quantity
	    FROM transactions t
	    WHERE t.inventory_id = i.id AND t.is_active
	) lv`

// InventoryRepo implementación del puerto InventoryRepository sobre PostgreSQL (usable con pool o tx).
type InventoryRepo struct {
	q Querier
}

// NewInventoryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInventoryRepository(q Querier) *InventoryRepo {
	return &InventoryRepo{q: q}
}

// GetOrCreate inserta el par si no existe (ON CONFLICT DO NOTHING) y lo devuelve.
// ErrNotFound si el producto o la ubicación no existen o están inactivos.
func (r *InventoryRepo) GetOrCreate(ctx context.Context, productID, locationID string) (*entity.Inventory, error) {
	var ok bool
	err := r.q.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM products WHERE id = $1 AND is_active)
		   AND EXISTS (SELECT 1 FROM locations WHERE id = $2 AND is_active)`,
		productID, locationID,
	).Scan(&ok)
	if err != nil {
		if isInvalidID(err) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("check inventory refs: %w", err)
	}
	if !ok {
		return nil, domain.ErrNotFound
	}

	now := time.Now().UTC()
	_, err = r.q.Exec(ctx, `
		INSERT INTO inventories (id, product_id, location_id, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, TRUE, $4, $4)
		ON CONFLICT (product_id, location_id) DO NOTHING`,
		uuid.New().String(), productID, locationID, now,
	)
	if err != nil {
		return nil, writeError("insert inventory", err)
	}

	inv, err := scanInventory(r.q.QueryRow(ctx,
		`SELECT `+inventoryColumns+` FROM inventories WHERE product_id = $1 AND location_id = $2`,
		productID, locationID,
	))
	if err != nil {
		return nil, fmt.Errorf("get inventory by pair: %w", err)
	}
	return inv, nil
}

// GetByID obtiene un inventario por ID. nil si no existe.
func (r *InventoryRepo) GetByID(ctx context.Context, id string) (*entity.Inventory, error) {
	return r.findOne(ctx, "get inventory", `SELECT `+inventoryColumns+` FROM inventories WHERE id = $1`, id)
}

// LockForUpdate obtiene el inventario y bloquea la fila (SELECT FOR UPDATE) hasta el fin de la tx.
func (r *InventoryRepo) LockForUpdate(ctx context.Context, id string) (*entity.Inventory, error) {
	return r.findOne(ctx, "lock inventory", `SELECT `+inventoryColumns+` FROM inventories WHERE id = $1 FOR UPDATE`, id)
}

// GetLevel devuelve el inventario activo con su cantidad derivada. nil si no existe o está inactivo.
func (r *InventoryRepo) GetLevel(ctx context.Context, id string) (*entity.InventoryLevel, error) {
	lvl, err := scanLevel(r.q.QueryRow(ctx, levelQuery+` WHERE i.id = $1 AND i.is_active`, id))
	if err != nil {
		missing, err := readError("get inventory level", err)
		if missing {
			return nil, nil
		}
		return nil, err
	}
	return lvl, nil
}

// ListLevels lista inventarios con su cantidad derivada.
func (r *InventoryRepo) ListLevels(ctx context.Context, f repository.InventoryFilter) ([]*entity.InventoryLevel, int, error) {
	var w where
	w.activeOnly(f.IncludeInactive, "i.is_active")
	w.addIf(f.ProductID != "", "i.product_id = ?", f.ProductID)
	w.addIf(f.LocationID != "", "i.location_id = ?", f.LocationID)
	w.search(f.Search, "p.name", "l.name", "w.name")
	if f.Availability != "" {
		w.conds = append(w.conds, availabilityCond(f.Availability))
	}

	from := `(` + levelQuery + w.sql() + `) AS levels`
	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM `+from, w.args...).Scan(&total); err != nil {
		if isInvalidID(err) {
			return []*entity.InventoryLevel{}, 0, nil
		}
		return nil, 0, fmt.Errorf("count inventory levels: %w", err)
	}

	order := ` ORDER BY p.name, l.name`
	if f.ByQuantity {
		order = ` ORDER BY lv.quantity DESC, p.name`
	}
	pageSQL, args := w.page(f.Limit, f.Offset)
	rows, err := r.q.Query(ctx, levelQuery+w.sql()+order+pageSQL, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list inventory levels: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.InventoryLevel, 0)
	for rows.Next() {
		lvl, err := scanLevel(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan inventory level: %w", err)
		}
		list = append(list, lvl)
	}
	return list, total, rows.Err()
}

// SetActive activa o desactiva el inventario. Sus transacciones se conservan.
func (r *InventoryRepo) SetActive(ctx context.Context, id string, active bool, at time.Time) error {
	return setActive(ctx, r.q, "inventories", id, active, at)
}

func (r *InventoryRepo) findOne(ctx context.Context, op, query string, arg any) (*entity.Inventory, error) {
	inv, err := scanInventory(r.q.QueryRow(ctx, query, arg))
	if err != nil {
		missing, err := readError(op, err)
		if missing {
			return nil, nil
		}
		return nil, err
	}
	return inv, nil
}

// availabilityCond traduce un nivel a un rango de cantidad con los mismos límites que el dominio.
func availabilityCond(a entity.Availability) string {
	switch a {
	case entity.AvailabilityOutOfStock:
		return "lv.quantity <= 0"
	case entity.AvailabilityLow:
		return fmt.Sprintf("lv.quantity BETWEEN 1 AND %d", inventory.LowMax)
	case entity.AvailabilityMedium:
		return fmt.Sprintf("lv.quantity BETWEEN %d AND %d", inventory.LowMax+1, inventory.MediumMax)
	case entity.AvailabilityHigh:
		return fmt.Sprintf("lv.quantity > %d", inventory.MediumMax)
	}
	return "FALSE"
}

func scanInventory(row pgx.Row) (*entity.Inventory, error) {
	var inv entity.Inventory
	if err := row.Scan(&inv.ID, &inv.ProductID, &inv.LocationID, &inv.IsActive, &inv.DeletedAt,
		&inv.CreatedAt, &inv.UpdatedAt); err != nil {
		return nil, err
	}
	return &inv, nil
}

func scanLevel(row pgx.Row) (*entity.InventoryLevel, error) {
	var lvl entity.InventoryLevel
	if err := row.Scan(&lvl.ID, &lvl.ProductID, &lvl.LocationID, &lvl.IsActive, &lvl.DeletedAt,
		&lvl.CreatedAt, &lvl.UpdatedAt, &lvl.ProductName, &lvl.LocationName, &lvl.WarehouseName,
		&lvl.Quantity); err != nil {
		return nil, err
	}
	lvl.Availability = inventory.AvailabilityFor(lvl.Quantity)
	return &lvl, nil
}
