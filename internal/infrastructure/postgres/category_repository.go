package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

var _ repository.CategoryRepository = (*CategoryRepo)(nil)

const categoryColumns = `id, code, name, description, is_active, deleted_at, created_at, updated_at`

// CategoryRepo implementación del puerto CategoryRepository sobre PostgreSQL.
type CategoryRepo struct {
	q Querier
}

// NewCategoryRepository construye el adaptador de persistencia para categorías.
func NewCategoryRepository(q Querier) *CategoryRepo {
	return &CategoryRepo{q: q}
}

// Create persiste una categoría. ErrDuplicate si el código o el nombre ya existen.
func (r *CategoryRepo) Create(ctx context.Context, c *entity.Category) error {
	query := `
		INSERT INTO categories (id, code, name, description, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query, c.ID, c.Code, c.Name, c.Description, c.IsActive, c.CreatedAt, c.UpdatedAt)
	if err != nil {
		return writeError("insert category", err)
	}
	return nil
}

// GetByID obtiene una categoría por ID. nil si no existe.
func (r *CategoryRepo) GetByID(ctx context.Context, id string) (*entity.Category, error) {
	var c entity.Category
	err := r.q.QueryRow(ctx, `SELECT `+categoryColumns+` FROM categories WHERE id = $1`, id).Scan(
		&c.ID, &c.Code, &c.Name, &c.Description, &c.IsActive, &c.DeletedAt, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		missing, err := readError("get category", err)
		if missing {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

// Update actualiza código, nombre y descripción.
func (r *CategoryRepo) Update(ctx context.Context, c *entity.Category) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE categories SET code = $2, name = $3, description = $4, updated_at = $5 WHERE id = $1`,
		c.ID, c.Code, c.Name, c.Description, c.UpdatedAt,
	)
	if err != nil {
		return writeError("update category", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista categorías por código.
func (r *CategoryRepo) List(ctx context.Context, f repository.ListFilter) ([]*entity.Category, int, error) {
	var w where
	w.activeOnly(f.IncludeInactive, "is_active")
	w.search(f.Search, "name", "description", "code::text")

	total, err := w.count(ctx, r.q, "categories")
	if err != nil {
		return nil, 0, err
	}
	pageSQL, args := w.page(f.Limit, f.Offset)
	rows, err := r.q.Query(ctx, `SELECT `+categoryColumns+` FROM categories`+w.sql()+` ORDER BY code`+pageSQL, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.Category, 0)
	for rows.Next() {
		var it entity.Category
		if err := rows.Scan(&it.ID, &it.Code, &it.Name, &it.Description, &it.IsActive, &it.DeletedAt, &it.CreatedAt, &it.UpdatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan category: %w", err)
		}
		list = append(list, &it)
	}
	return list, total, rows.Err()
}

// SetActive activa o desactiva la categoría.
func (r *CategoryRepo) SetActive(ctx context.Context, id string, active bool, at time.Time) error {
	return setActive(ctx, r.q, "categories", id, active, at)
}
