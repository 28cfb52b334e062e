package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas de solo lectura para el tablero.
type AnalyticsRepo struct {
	q Querier
}

// NewAnalyticsRepository construye el adaptador de analítica.
func NewAnalyticsRepository(q Querier) *AnalyticsRepo {
	return &AnalyticsRepo{q: q}
}

// GetDashboardTotals cuenta entidades activas en una sola consulta.
func (r *AnalyticsRepo) GetDashboardTotals(ctx context.Context) (repository.DashboardTotals, error) {
	const query = `
	SELECT
	    (SELECT COUNT(*) FROM products    WHERE is_active) AS products,
	    (SELECT COUNT(*) FROM locations   WHERE is_active) AS locations,
	    (SELECT COUNT(*) FROM warehouses  WHERE is_active) AS warehouses,
	    (SELECT COUNT(*) FROM inventories WHERE is_active) AS inventories`

	var t repository.DashboardTotals
	if err := r.q.QueryRow(ctx, query).Scan(&t.Products, &t.Locations, &t.Warehouses, &t.Inventories); err != nil {
		return repository.DashboardTotals{}, fmt.Errorf("dashboard totals: %w", err)
	}
	return t, nil
}
