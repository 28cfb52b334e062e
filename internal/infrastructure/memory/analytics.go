package memory

import (
	"context"

	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*Store)(nil)

// GetDashboardTotals cuenta entidades activas.
func (s *Store) GetDashboardTotals(_ context.Context) (repository.DashboardTotals, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var t repository.DashboardTotals
	for _, p := range s.products {
		if p.IsActive {
			t.Products++
		}
	}
	for _, l := range s.locations {
		if l.IsActive {
			t.Locations++
		}
	}
	for _, w := range s.warehouses {
		if w.IsActive {
			t.Warehouses++
		}
	}
	for _, i := range s.inventories {
		if i.IsActive {
			t.Inventories++
		}
	}
	return t, nil
}
