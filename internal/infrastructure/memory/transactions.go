package memory

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/inventory"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

type transactionRepo struct{ s *Store }

// Create persiste una transacción sin validación de stock (carga de datos en tests).
func (r transactionRepo) Create(_ context.Context, tx *entity.Transaction) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.checkRefsLocked(tx); err != nil {
		return err
	}
	r.s.insertLocked(tx)
	return nil
}

func (r transactionRepo) GetByID(_ context.Context, id string) (*entity.Transaction, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	tx, ok := r.s.transactions[id]
	if !ok {
		return nil, nil
	}
	out := *tx
	return &out, nil
}

func (r transactionRepo) GetEntry(_ context.Context, id string) (*repository.TransactionEntry, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	tx, ok := r.s.transactions[id]
	if !ok {
		return nil, nil
	}
	return r.s.entryLocked(tx), nil
}

func (r transactionRepo) Totals(_ context.Context, inventoryID string) (inventory.Totals, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.s.totalsLocked(inventoryID), nil
}

// List lista transacciones, más recientes primero.
func (r transactionRepo) List(_ context.Context, f repository.TransactionFilter) ([]*repository.TransactionEntry, int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	search := strings.ToLower(f.Search)
	var out []*repository.TransactionEntry
	for i := len(r.s.order) - 1; i >= 0; i-- {
		tx := r.s.transactions[r.s.order[i]]
		if !f.IncludeInactive && !tx.IsActive {
			continue
		}
		if f.InventoryID != "" && tx.InventoryID != f.InventoryID {
			continue
		}
		if f.PersonID != "" && tx.PersonID != f.PersonID {
			continue
		}
		if f.Movement != "" && tx.Movement != f.Movement {
			continue
		}
		if f.Type != "" && tx.Type != f.Type {
			continue
		}
		e := r.s.entryLocked(tx)
		if search != "" &&
			!strings.Contains(strings.ToLower(e.ProductName), search) &&
			!strings.Contains(strings.ToLower(e.Description), search) {
			continue
		}
		out = append(out, e)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	total := len(out)
	return paginate(out, f.Limit, f.Offset), total, nil
}

func (r transactionRepo) SetActive(_ context.Context, id string, active bool, at time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.setTransactionActiveLocked(id, active, at)
}

func (s *Store) setTransactionActiveLocked(id string, active bool, at time.Time) error {
	tx, ok := s.transactions[id]
	if !ok {
		return domain.ErrNotFound
	}
	setLifecycle(&tx.Lifecycle, active, at)
	tx.UpdatedAt = at
	return nil
}

func (s *Store) checkRefsLocked(tx *entity.Transaction) error {
	if _, ok := s.inventories[tx.InventoryID]; !ok {
		return domain.ErrNotFound
	}
	return s.checkPersonLocked(tx.PersonID)
}

// checkPersonLocked la persona es opcional; si viene debe existir y estar activa.
func (s *Store) checkPersonLocked(personID string) error {
	if personID == "" {
		return nil
	}
	if p, ok := s.persons[personID]; !ok || !p.IsActive {
		return domain.ErrNotFound
	}
	return nil
}

func (s *Store) insertLocked(tx *entity.Transaction) {
	stored := *tx
	s.transactions[stored.ID] = &stored
	s.order = append(s.order, stored.ID)
}

func (s *Store) entryLocked(tx *entity.Transaction) *repository.TransactionEntry {
	e := &repository.TransactionEntry{Transaction: *tx}
	if inv, ok := s.inventories[tx.InventoryID]; ok {
		if p, ok := s.products[inv.ProductID]; ok {
			e.ProductName = p.Name
		}
		if l, ok := s.locations[inv.LocationID]; ok {
			e.LocationName = l.Name
			if w, ok := s.warehouses[l.WarehouseID]; ok {
				e.WarehouseName = w.Name
			}
		}
	}
	if p, ok := s.persons[tx.PersonID]; ok {
		e.PersonName = p.FullName()
	}
	return e
}
