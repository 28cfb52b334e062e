package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/inventory"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// scope transacción en curso: bloqueos tomados y escrituras pendientes de confirmar.
// Los inventarios creados por GetOrCreate también quedan pendientes: si fn falla no existen.
type scope struct {
	store   *Store
	held    map[string]*sync.Mutex
	staged  map[pairKey]*entity.Inventory
	created []*entity.Transaction
	flips   map[string]bool
	flipAt  time.Time
}

type scopeInventories struct{ *scope }

type scopeTransactions struct{ *scope }

// hold toma el mutex de key hasta que Run termine. Reentrante dentro del mismo scope.
func (sc *scope) hold(key string) {
	if _, ok := sc.held[key]; ok {
		return
	}
	m := sc.store.lockFor(key)
	m.Lock()
	sc.held[key] = m
}

func (sc *scope) stagedByID(id string) *entity.Inventory {
	for _, inv := range sc.staged {
		if inv.ID == id {
			return inv
		}
	}
	return nil
}

func (sc *scope) release() {
	for _, m := range sc.held {
		m.Unlock()
	}
	sc.held = nil
}

func (sc *scope) commit(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s := sc.store
	s.mu.Lock()
	defer s.mu.Unlock()
	for key := range sc.staged {
		if _, ok := s.pairs[key]; ok {
			return domain.ErrConflict
		}
	}
	for key, inv := range sc.staged {
		stored := *inv
		s.inventories[stored.ID] = &stored
		s.pairs[key] = stored.ID
	}
	for _, tx := range sc.created {
		if err := s.checkRefsLocked(tx); err != nil {
			sc.unstageLocked()
			return err
		}
	}
	for _, tx := range sc.created {
		s.insertLocked(tx)
	}
	for id, active := range sc.flips {
		if err := s.setTransactionActiveLocked(id, active, sc.flipAt); err != nil {
			return err
		}
	}
	return nil
}

func (sc *scope) unstageLocked() {
	for key, inv := range sc.staged {
		delete(sc.store.inventories, inv.ID)
		delete(sc.store.pairs, key)
	}
}

// GetOrCreate devuelve el inventario del par. Si no existe lo deja pendiente hasta el commit
// y retiene el bloqueo del par: otro alta concurrente del mismo par espera a que Run termine.
func (sc scopeInventories) GetOrCreate(_ context.Context, productID, locationID string) (*entity.Inventory, error) {
	key := pairKey{productID, locationID}
	if inv, ok := sc.staged[key]; ok {
		out := *inv
		return &out, nil
	}
	if inv, err := sc.existingPair(key); inv != nil || err != nil {
		return inv, err
	}

	sc.hold("pair:" + productID + "/" + locationID)
	// Releer bajo el bloqueo: otro scope pudo confirmar el par mientras se esperaba.
	if inv, err := sc.existingPair(key); inv != nil || err != nil {
		return inv, err
	}
	now := sc.store.now()
	inv := &entity.Inventory{
		ID:         uuid.New().String(),
		ProductID:  productID,
		LocationID: locationID,
		Lifecycle:  entity.Active(),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	sc.staged[key] = inv
	out := *inv
	return &out, nil
}

// existingPair valida producto y ubicación y devuelve el inventario confirmado del par, o nil.
func (sc scopeInventories) existingPair(key pairKey) (*entity.Inventory, error) {
	s := sc.store
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.checkPairLocked(key.productID, key.locationID); err != nil {
		return nil, err
	}
	if id, ok := s.pairs[key]; ok {
		out := *s.inventories[id]
		return &out, nil
	}
	return nil, nil
}

func (sc scopeInventories) GetByID(ctx context.Context, id string) (*entity.Inventory, error) {
	if inv := sc.stagedByID(id); inv != nil {
		out := *inv
		return &out, nil
	}
	return sc.store.Inventories().GetByID(ctx, id)
}

// LockForUpdate toma el mutex del inventario hasta que Run termine.
func (sc scopeInventories) LockForUpdate(ctx context.Context, id string) (*entity.Inventory, error) {
	if inv := sc.stagedByID(id); inv != nil {
		// Pendiente: nadie más lo ve, el bloqueo del par ya lo protege.
		out := *inv
		return &out, nil
	}
	inv, err := sc.store.Inventories().GetByID(ctx, id)
	if err != nil || inv == nil {
		return inv, err
	}
	sc.hold(id)
	// Releer bajo el bloqueo: el estado pudo cambiar mientras se esperaba.
	return sc.store.Inventories().GetByID(ctx, id)
}

func (sc scopeInventories) GetLevel(ctx context.Context, id string) (*entity.InventoryLevel, error) {
	return sc.store.Inventories().GetLevel(ctx, id)
}

func (sc scopeInventories) ListLevels(ctx context.Context, f repository.InventoryFilter) ([]*entity.InventoryLevel, int, error) {
	return sc.store.Inventories().ListLevels(ctx, f)
}

func (sc scopeInventories) SetActive(ctx context.Context, id string, active bool, at time.Time) error {
	return sc.store.Inventories().SetActive(ctx, id, active, at)
}

// Create deja la transacción pendiente hasta el commit.
func (sc scopeTransactions) Create(_ context.Context, tx *entity.Transaction) error {
	s := sc.store
	s.mu.RLock()
	err := s.checkPersonLocked(tx.PersonID)
	if err == nil && sc.stagedByID(tx.InventoryID) == nil {
		if _, ok := s.inventories[tx.InventoryID]; !ok {
			err = domain.ErrNotFound
		}
	}
	s.mu.RUnlock()
	if err != nil {
		return err
	}
	staged := *tx
	sc.created = append(sc.created, &staged)
	return nil
}

func (sc scopeTransactions) GetByID(ctx context.Context, id string) (*entity.Transaction, error) {
	for _, tx := range sc.created {
		if tx.ID == id {
			out := sc.withFlip(*tx)
			return &out, nil
		}
	}
	tx, err := sc.store.Transactions().GetByID(ctx, id)
	if err != nil || tx == nil {
		return tx, err
	}
	out := sc.withFlip(*tx)
	return &out, nil
}

func (sc scopeTransactions) GetEntry(ctx context.Context, id string) (*repository.TransactionEntry, error) {
	return sc.store.Transactions().GetEntry(ctx, id)
}

// Totals suma lo confirmado más lo pendiente en esta transacción.
func (sc scopeTransactions) Totals(_ context.Context, inventoryID string) (inventory.Totals, error) {
	s := sc.store
	s.mu.RLock()
	defer s.mu.RUnlock()
	var t inventory.Totals
	for _, id := range s.order {
		tx := s.transactions[id]
		if tx.InventoryID == inventoryID {
			t = t.Apply(sc.withFlip(*tx))
		}
	}
	for _, tx := range sc.created {
		if tx.InventoryID == inventoryID {
			t = t.Apply(sc.withFlip(*tx))
		}
	}
	return t, nil
}

func (sc scopeTransactions) List(ctx context.Context, f repository.TransactionFilter) ([]*repository.TransactionEntry, int, error) {
	return sc.store.Transactions().List(ctx, f)
}

func (sc scopeTransactions) SetActive(ctx context.Context, id string, active bool, at time.Time) error {
	tx, err := sc.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if tx == nil {
		return domain.ErrNotFound
	}
	sc.flips[id] = active
	sc.flipAt = at
	return nil
}

func (sc *scope) withFlip(tx entity.Transaction) entity.Transaction {
	if active, ok := sc.flips[tx.ID]; ok {
		setLifecycle(&tx.Lifecycle, active, sc.flipAt)
	}
	return tx
}
