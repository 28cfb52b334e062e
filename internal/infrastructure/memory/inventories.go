package memory

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

type inventoryRepo struct{ s *Store }

// GetOrCreate devuelve el inventario del par o lo crea. Fuera de Run el alta es inmediata;
// dentro de Run queda pendiente hasta el commit (ver scopeInventories.GetOrCreate).
func (r inventoryRepo) GetOrCreate(_ context.Context, productID, locationID string) (*entity.Inventory, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.checkPairLocked(productID, locationID); err != nil {
		return nil, err
	}
	key := pairKey{productID, locationID}
	if id, ok := r.s.pairs[key]; ok {
		inv := *r.s.inventories[id]
		return &inv, nil
	}
	now := r.s.now()
	inv := &entity.Inventory{
		ID:         uuid.New().String(),
		ProductID:  productID,
		LocationID: locationID,
		Lifecycle:  entity.Active(),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	r.s.inventories[inv.ID] = inv
	r.s.pairs[key] = inv.ID
	out := *inv
	return &out, nil
}

// checkPairLocked producto y ubicación deben existir y estar activos.
func (s *Store) checkPairLocked(productID, locationID string) error {
	if p, ok := s.products[productID]; !ok || !p.IsActive {
		return domain.ErrNotFound
	}
	if l, ok := s.locations[locationID]; !ok || !l.IsActive {
		return domain.ErrNotFound
	}
	return nil
}

// GetByID devuelve una copia del inventario o nil.
func (r inventoryRepo) GetByID(_ context.Context, id string) (*entity.Inventory, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	inv, ok := r.s.inventories[id]
	if !ok {
		return nil, nil
	}
	out := *inv
	return &out, nil
}

// LockForUpdate fuera de Run no bloquea: equivale a una lectura simple.
func (r inventoryRepo) LockForUpdate(ctx context.Context, id string) (*entity.Inventory, error) {
	return r.GetByID(ctx, id)
}

// GetLevel devuelve el inventario activo con su cantidad derivada, o nil.
func (r inventoryRepo) GetLevel(_ context.Context, id string) (*entity.InventoryLevel, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	inv, ok := r.s.inventories[id]
	if !ok || !inv.IsActive {
		return nil, nil
	}
	return r.s.levelLocked(inv), nil
}

// ListLevels lista inventarios con su cantidad derivada.
func (r inventoryRepo) ListLevels(_ context.Context, f repository.InventoryFilter) ([]*entity.InventoryLevel, int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	search := strings.ToLower(f.Search)
	var out []*entity.InventoryLevel
	for _, inv := range r.s.inventories {
		if !f.IncludeInactive && !inv.IsActive {
			continue
		}
		if f.ProductID != "" && inv.ProductID != f.ProductID {
			continue
		}
		if f.LocationID != "" && inv.LocationID != f.LocationID {
			continue
		}
		lvl := r.s.levelLocked(inv)
		if f.Availability != "" && lvl.Availability != f.Availability {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(lvl.ProductName), search) &&
			!strings.Contains(strings.ToLower(lvl.LocationName), search) {
			continue
		}
		out = append(out, lvl)
	}
	sort.Slice(out, func(i, j int) bool {
		if f.ByQuantity && out[i].Quantity != out[j].Quantity {
			return out[i].Quantity > out[j].Quantity
		}
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	total := len(out)
	return paginate(out, f.Limit, f.Offset), total, nil
}

// SetActive activa o desactiva un inventario.
func (r inventoryRepo) SetActive(_ context.Context, id string, active bool, at time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	inv, ok := r.s.inventories[id]
	if !ok {
		return domain.ErrNotFound
	}
	setLifecycle(&inv.Lifecycle, active, at)
	inv.UpdatedAt = at
	return nil
}

