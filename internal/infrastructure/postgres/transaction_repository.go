package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/inventory"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

var _ repository.TransactionRepository = (*TransactionRepo)(nil)

const transactionColumns = `id, inventory_id, person_id, quantity, movement, type, description, created_by,
	is_active, deleted_at, created_at, updated_at`

const entryQuery = `
	SELECT t.id, t.inventory_id, t.person_id, t.quantity, t.movement, t.type, t.description, t.created_by,
	       t.is_active, t.deleted_at, t.created_at, t.updated_at,
	       p.name, l.name, w.name,
	       COALESCE(NULLIF(TRIM(pe.first_name || ' ' || pe.last_name), ''), '')
	FROM transactions t
	JOIN inventories i ON i.id = t.inventory_id
	JOIN products    p ON p.id = i.product_id
	JOIN locations   l ON l.id = i.location_id
	JOIN warehouses  w ON w.id = l.warehouse_id
	LEFT JOIN persons pe ON pe.id = t.person_id`

// TransactionRepo implementación del libro de inventario sobre PostgreSQL (usable con pool o tx).
type TransactionRepo struct {
	q Querier
}

// NewTransactionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTransactionRepository(q Querier) *TransactionRepo {
	return &TransactionRepo{q: q}
}

// Create inserta la transacción. ErrNotFound si el inventario no existe o si la persona
// no existe o está inactiva. FOR SHARE impide desactivar la persona antes del commit.
func (r *TransactionRepo) Create(ctx context.Context, t *entity.Transaction) error {
	if t.PersonID != "" {
		var active bool
		err := r.q.QueryRow(ctx, `SELECT is_active FROM persons WHERE id = $1 FOR SHARE`, t.PersonID).Scan(&active)
		if err != nil {
			missing, err := readError("check transaction person", err)
			if missing {
				return domain.ErrNotFound
			}
			return err
		}
		if !active {
			return domain.ErrNotFound
		}
	}

	query := `
		INSERT INTO transactions (id, inventory_id, person_id, quantity, movement, type, description, created_by,
			is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		t.ID, t.InventoryID, nullable(t.PersonID), t.Quantity, string(t.Movement), string(t.Type),
		t.Description, t.CreatedBy, t.IsActive, t.CreatedAt, t.UpdatedAt,
	)
	if err != nil {
		return writeError("insert transaction", err)
	}
	return nil
}

// GetByID obtiene una transacción (activa o no). nil si no existe.
func (r *TransactionRepo) GetByID(ctx context.Context, id string) (*entity.Transaction, error) {
	t, err := scanTransaction(r.q.QueryRow(ctx, `SELECT `+transactionColumns+` FROM transactions WHERE id = $1`, id))
	if err != nil {
		missing, err := readError("get transaction", err)
		if missing {
			return nil, nil
		}
		return nil, err
	}
	return t, nil
}

// GetEntry obtiene la transacción con los nombres para mostrarla. nil si no existe.
func (r *TransactionRepo) GetEntry(ctx context.Context, id string) (*repository.TransactionEntry, error) {
	e, err := scanEntry(r.q.QueryRow(ctx, entryQuery+` WHERE t.id = $1`, id))
	if err != nil {
		missing, err := readError("get transaction entry", err)
		if missing {
			return nil, nil
		}
		return nil, err
	}
	return e, nil
}

// Totals suma entradas y salidas activas del inventario.
func (r *TransactionRepo) Totals(ctx context.Context, inventoryID string) (inventory.Totals, error) {
	var t inventory.Totals
	err := r.q.QueryRow(ctx, `
		SELECT COALESCE(SUM(quantity) FILTER (WHERE movement = 'IN'), 0)::bigint,
		       COALESCE(SUM(quantity) FILTER (WHERE movement = 'OUT'), 0)::bigint
		FROM transactions
		WHERE inventory_id = $1 AND is_active`,
		inventoryID,
	).Scan(&t.In, &t.Out)
	if err != nil {
		if isInvalidID(err) {
			return inventory.Totals{}, nil
		}
		return inventory.Totals{}, fmt.Errorf("sum transactions: %w", err)
	}
	return t, nil
}

// List lista transacciones, más recientes primero.
func (r *TransactionRepo) List(ctx context.Context, f repository.TransactionFilter) ([]*repository.TransactionEntry, int, error) {
	var w where
	w.activeOnly(f.IncludeInactive, "t.is_active")
	w.addIf(f.InventoryID != "", "t.inventory_id = ?", f.InventoryID)
	w.addIf(f.PersonID != "", "t.person_id = ?", f.PersonID)
	w.addIf(f.Movement != "", "t.movement = ?", string(f.Movement))
	w.addIf(f.Type != "", "t.type = ?", string(f.Type))
	w.search(f.Search, "p.name", "t.description")

	var total int
	countSQL := `SELECT COUNT(*) FROM transactions t
		JOIN inventories i ON i.id = t.inventory_id
		JOIN products p ON p.id = i.product_id` + w.sql()
	if err := r.q.QueryRow(ctx, countSQL, w.args...).Scan(&total); err != nil {
		if isInvalidID(err) {
			return []*repository.TransactionEntry{}, 0, nil
		}
		return nil, 0, fmt.Errorf("count transactions: %w", err)
	}

	pageSQL, args := w.page(f.Limit, f.Offset)
	rows, err := r.q.Query(ctx, entryQuery+w.sql()+` ORDER BY t.created_at DESC, t.id`+pageSQL, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()
	list := make([]*repository.TransactionEntry, 0)
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan transaction: %w", err)
		}
		list = append(list, e)
	}
	return list, total, rows.Err()
}

// SetActive activa o desactiva la transacción. Es el único cambio permitido tras crearla.
func (r *TransactionRepo) SetActive(ctx context.Context, id string, active bool, at time.Time) error {
	return setActive(ctx, r.q, "transactions", id, active, at)
}

func scanTransaction(row pgx.Row) (*entity.Transaction, error) {
	var t entity.Transaction
	var personID *string
	var movement, typ string
	if err := row.Scan(&t.ID, &t.InventoryID, &personID, &t.Quantity, &movement, &typ, &t.Description, &t.CreatedBy,
		&t.IsActive, &t.DeletedAt, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return nil, err
	}
	t.PersonID = deref(personID)
	t.Movement = entity.Movement(movement)
	t.Type = entity.TransactionType(typ)
	return &t, nil
}

func scanEntry(row pgx.Row) (*repository.TransactionEntry, error) {
	var e repository.TransactionEntry
	var personID *string
	var movement, typ string
	if err := row.Scan(&e.ID, &e.InventoryID, &personID, &e.Quantity, &movement, &typ, &e.Description, &e.CreatedBy,
		&e.IsActive, &e.DeletedAt, &e.CreatedAt, &e.UpdatedAt,
		&e.ProductName, &e.LocationName, &e.WarehouseName, &e.PersonName); err != nil {
		return nil, err
	}
	e.PersonID = deref(personID)
	e.Movement = entity.Movement(movement)
	e.Type = entity.TransactionType(typ)
	return &e, nil
}
