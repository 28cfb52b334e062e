package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `id, category_id, name, description, unit, is_single_use, is_active, deleted_at, created_at, updated_at`

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste un nuevo producto. ErrNotFound si la categoría no existe.
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	query := `
		INSERT INTO products (id, category_id, name, description, unit, is_single_use, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		p.ID, nullable(p.CategoryID), p.Name, p.Description, string(p.Unit), p.IsSingleUse,
		p.IsActive, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return writeError("insert product", err)
	}
	return nil
}

// GetByID obtiene un producto por ID. nil si no existe.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id))
	if err != nil {
		missing, err := readError("get product", err)
		if missing {
			return nil, nil
		}
		return nil, err
	}
	return p, nil
}

// Update actualiza los datos del producto. Su stock no se modifica aquí: se deriva de transacciones.
func (r *ProductRepo) Update(ctx context.Context, p *entity.Product) error {
	query := `
		UPDATE products SET category_id = $2, name = $3, description = $4, unit = $5, is_single_use = $6, updated_at = $7
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query,
		p.ID, nullable(p.CategoryID), p.Name, p.Description, string(p.Unit), p.IsSingleUse, p.UpdatedAt,
	)
	if err != nil {
		return writeError("update product", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista productos, opcionalmente de una categoría.
func (r *ProductRepo) List(ctx context.Context, f repository.ProductFilter) ([]*entity.Product, int, error) {
	var w where
	w.activeOnly(f.IncludeInactive, "is_active")
	w.addIf(f.CategoryID != "", "category_id = ?", f.CategoryID)
	w.search(f.Search, "name", "description")

	total, err := w.count(ctx, r.q, "products")
	if err != nil {
		return nil, 0, err
	}
	pageSQL, args := w.page(f.Limit, f.Offset)
	rows, err := r.q.Query(ctx, `SELECT `+productColumns+` FROM products`+w.sql()+` ORDER BY name`+pageSQL, args...)
	if err != nil {
		if isInvalidID(err) {
			return []*entity.Product{}, 0, nil
		}
		return nil, 0, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, p)
	}
	return list, total, rows.Err()
}

// SetActive activa o desactiva el producto.
func (r *ProductRepo) SetActive(ctx context.Context, id string, active bool, at time.Time) error {
	return setActive(ctx, r.q, "products", id, active, at)
}

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	var categoryID *string
	var unit string
	if err := row.Scan(&p.ID, &categoryID, &p.Name, &p.Description, &unit, &p.IsSingleUse,
		&p.IsActive, &p.DeletedAt, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	if categoryID != nil {
		p.CategoryID = *categoryID
	}
	p.Unit = entity.Unit(unit)
	return &p, nil
}
