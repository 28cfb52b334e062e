package repository

import "context"

// DashboardTotals conteos de entidades activas para el tablero.
type DashboardTotals struct {
	Products    int
	Locations   int
	Warehouses  int
	Inventories int
}

// AnalyticsRepository define las consultas de lectura del tablero.
// Las implementaciones son read-only (no modifican datos).
type AnalyticsRepository interface {
	// GetDashboardTotals cuenta productos, ubicaciones, almacenes e inventarios activos.
	GetDashboardTotals(ctx context.Context) (DashboardTotals, error)
}
