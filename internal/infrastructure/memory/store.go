// Package memory implementa el libro de inventario en memoria para tests y ejecuciones locales.
// Replica la disciplina de PostgreSQL: LockForUpdate toma un mutex por inventario que se
// libera al terminar Run, y las escrituras de la transacción se confirman solo si fn no falla.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/almacen-api/internal/application/ledger"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/inventory"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

var _ ledger.TxRunner = (*Store)(nil)

type pairKey struct{ productID, locationID string }

// Store guarda catálogo mínimo, inventarios y transacciones.
type Store struct {
	mu           sync.RWMutex
	warehouses   map[string]*entity.Warehouse
	locations    map[string]*entity.Location
	products     map[string]*entity.Product
	persons      map[string]*entity.Person
	inventories  map[string]*entity.Inventory
	pairs        map[pairKey]string
	transactions map[string]*entity.Transaction
	order        []string // ids de transacciones en orden de alta

	locksMu sync.Mutex
	locks   map[string]*sync.Mutex

	now func() time.Time
}

// NewStore crea un store vacío.
func NewStore() *Store {
	return &Store{
		warehouses:   make(map[string]*entity.Warehouse),
		locations:    make(map[string]*entity.Location),
		products:     make(map[string]*entity.Product),
		persons:      make(map[string]*entity.Person),
		inventories:  make(map[string]*entity.Inventory),
		pairs:        make(map[pairKey]string),
		transactions: make(map[string]*entity.Transaction),
		locks:        make(map[string]*sync.Mutex),
		now:          time.Now,
	}
}

// AddWarehouse registra un almacén activo y devuelve su id.
func (s *Store) AddWarehouse(name string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	w := &entity.Warehouse{ID: uuid.New().String(), Name: name, Lifecycle: entity.Active(), CreatedAt: s.now()}
	s.warehouses[w.ID] = w
	return w.ID
}

// AddLocation registra una ubicación activa en el almacén dado.
func (s *Store) AddLocation(warehouseID, name string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	l := &entity.Location{ID: uuid.New().String(), WarehouseID: warehouseID, Name: name, Lifecycle: entity.Active(), CreatedAt: s.now()}
	s.locations[l.ID] = l
	return l.ID
}

// AddProduct registra un producto activo.
func (s *Store) AddProduct(name string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := &entity.Product{ID: uuid.New().String(), Name: name, Unit: entity.UnitPiece, Lifecycle: entity.Active(), CreatedAt: s.now()}
	s.products[p.ID] = p
	return p.ID
}

// AddPerson registra una persona activa.
func (s *Store) AddPerson(kind entity.PersonKind, firstName, lastName string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := &entity.Person{ID: uuid.New().String(), Kind: kind, FirstName: firstName, LastName: lastName, Lifecycle: entity.Active(), CreatedAt: s.now()}
	s.persons[p.ID] = p
	return p.ID
}

// SetPersonActive activa o desactiva una persona (tests de referencias inactivas).
func (s *Store) SetPersonActive(id string, active bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p, ok := s.persons[id]; ok {
		setLifecycle(&p.Lifecycle, active, s.now())
	}
}

// SetProductActive activa o desactiva un producto (tests de referencias inactivas).
func (s *Store) SetProductActive(id string, active bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p, ok := s.products[id]; ok {
		setLifecycle(&p.Lifecycle, active, s.now())
	}
}

// TransactionCount número de transacciones persistidas (activas o no).
func (s *Store) TransactionCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.order)
}

// Run ejecuta fn con repositorios ligados a una transacción en memoria.
// Si fn devuelve error se descartan las escrituras; los bloqueos se liberan siempre.
func (s *Store) Run(ctx context.Context, fn func(
	invRepo repository.InventoryRepository,
	txRepo repository.TransactionRepository,
) error) error {
	sc := &scope{
		store:  s,
		held:   make(map[string]*sync.Mutex),
		staged: make(map[pairKey]*entity.Inventory),
		flips:  make(map[string]bool),
	}
	defer sc.release()

	if err := fn(scopeInventories{sc}, scopeTransactions{sc}); err != nil {
		return err
	}
	return sc.commit(ctx)
}

// Inventories repositorio de inventarios fuera de transacción.
func (s *Store) Inventories() repository.InventoryRepository {
	return inventoryRepo{s: s}
}

// Transactions repositorio de transacciones fuera de transacción.
func (s *Store) Transactions() repository.TransactionRepository {
	return transactionRepo{s: s}
}

// lockFor mutex por clave: id de inventario o "pair:<producto>/<ubicación>".
func (s *Store) lockFor(key string) *sync.Mutex {
	s.locksMu.Lock()
	defer s.locksMu.Unlock()
	m, ok := s.locks[key]
	if !ok {
		m = &sync.Mutex{}
		s.locks[key] = m
	}
	return m
}

func (s *Store) levelLocked(inv *entity.Inventory) *entity.InventoryLevel {
	totals := s.totalsLocked(inv.ID)
	lvl := &entity.InventoryLevel{
		Inventory:    *inv,
		Quantity:     totals.Quantity(),
		Availability: totals.Availability(),
	}
	if p, ok := s.products[inv.ProductID]; ok {
		lvl.ProductName = p.Name
	}
	if l, ok := s.locations[inv.LocationID]; ok {
		lvl.LocationName = l.Name
		if w, ok := s.warehouses[l.WarehouseID]; ok {
			lvl.WarehouseName = w.Name
		}
	}
	return lvl
}

func (s *Store) totalsLocked(inventoryID string) inventory.Totals {
	var t inventory.Totals
	for _, id := range s.order {
		tx := s.transactions[id]
		if tx.InventoryID == inventoryID {
			t = t.Apply(*tx)
		}
	}
	return t
}

func setLifecycle(l *entity.Lifecycle, active bool, at time.Time) {
	if active {
		l.Reactivate()
		return
	}
	l.Deactivate(at)
}

func paginate[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return []T{}
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}
