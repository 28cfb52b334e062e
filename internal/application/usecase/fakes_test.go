package usecase_test

import (
	"context"
	"sync"
	"time"

	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// table repositorio genérico en memoria para los tests de casos de uso.
type table[T any] struct {
	mu   sync.Mutex
	rows map[string]*T
	id   func(*T) string
	life func(*T) *entity.Lifecycle
}

func newTable[T any](id func(*T) string, life func(*T) *entity.Lifecycle) *table[T] {
	return &table[T]{rows: make(map[string]*T), id: id, life: life}
}

func (t *table[T]) Create(_ context.Context, v *T) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	cp := *v
	t.rows[t.id(v)] = &cp
	return nil
}

func (t *table[T]) GetByID(_ context.Context, id string) (*T, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	v, ok := t.rows[id]
	if !ok {
		return nil, nil
	}
	cp := *v
	return &cp, nil
}

func (t *table[T]) Update(_ context.Context, v *T) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.rows[t.id(v)]; !ok {
		return domain.ErrNotFound
	}
	cp := *v
	t.rows[t.id(v)] = &cp
	return nil
}

func (t *table[T]) SetActive(_ context.Context, id string, active bool, at time.Time) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	v, ok := t.rows[id]
	if !ok {
		return domain.ErrNotFound
	}
	if active {
		t.life(v).Reactivate()
	} else {
		t.life(v).Deactivate(at)
	}
	return nil
}

func (t *table[T]) all() []*T {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]*T, 0, len(t.rows))
	for _, v := range t.rows {
		cp := *v
		out = append(out, &cp)
	}
	return out
}

type warehouseRepo struct{ *table[entity.Warehouse] }

func newWarehouseRepo() warehouseRepo {
	return warehouseRepo{newTable(
		func(w *entity.Warehouse) string { return w.ID },
		func(w *entity.Warehouse) *entity.Lifecycle { return &w.Lifecycle },
	)}
}

func (r warehouseRepo) List(context.Context, repository.ListFilter) ([]*entity.Warehouse, int, error) {
	rows := r.all()
	return rows, len(rows), nil
}

type locationRepo struct{ *table[entity.Location] }

func newLocationRepo() locationRepo {
	return locationRepo{newTable(
		func(l *entity.Location) string { return l.ID },
		func(l *entity.Location) *entity.Lifecycle { return &l.Lifecycle },
	)}
}

func (r locationRepo) List(_ context.Context, f repository.LocationFilter) ([]*entity.Location, int, error) {
	var rows []*entity.Location
	for _, l := range r.all() {
		if f.WarehouseID == "" || l.WarehouseID == f.WarehouseID {
			rows = append(rows, l)
		}
	}
	return rows, len(rows), nil
}

type categoryRepo struct{ *table[entity.Category] }

func newCategoryRepo() categoryRepo {
	return categoryRepo{newTable(
		func(c *entity.Category) string { return c.ID },
		func(c *entity.Category) *entity.Lifecycle { return &c.Lifecycle },
	)}
}

func (r categoryRepo) List(context.Context, repository.ListFilter) ([]*entity.Category, int, error) {
	rows := r.all()
	return rows, len(rows), nil
}

type productRepo struct{ *table[entity.Product] }

func newProductRepo() productRepo {
	return productRepo{newTable(
		func(p *entity.Product) string { return p.ID },
		func(p *entity.Product) *entity.Lifecycle { return &p.Lifecycle },
	)}
}

func (r productRepo) List(_ context.Context, f repository.ProductFilter) ([]*entity.Product, int, error) {
	var rows []*entity.Product
	for _, p := range r.all() {
		if f.CategoryID == "" || p.CategoryID == f.CategoryID {
			rows = append(rows, p)
		}
	}
	return rows, len(rows), nil
}

type personRepo struct{ *table[entity.Person] }

func newPersonRepo() personRepo {
	return personRepo{newTable(
		func(p *entity.Person) string { return p.ID },
		func(p *entity.Person) *entity.Lifecycle { return &p.Lifecycle },
	)}
}

func (r personRepo) List(_ context.Context, f repository.PersonFilter) ([]*entity.Person, int, error) {
	var rows []*entity.Person
	for _, p := range r.all() {
		if f.Kind == "" || p.Kind == f.Kind {
			rows = append(rows, p)
		}
	}
	return rows, len(rows), nil
}

type userRepo struct{ *table[entity.User] }

func newUserRepo() userRepo {
	return userRepo{newTable(
		func(u *entity.User) string { return u.ID },
		func(u *entity.User) *entity.Lifecycle { return &u.Lifecycle },
	)}
}

func (r userRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range r.all() {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (r userRepo) List(context.Context, repository.ListFilter) ([]*entity.User, int, error) {
	rows := r.all()
	return rows, len(rows), nil
}

func (r userRepo) Count(context.Context) (int, error) {
	return len(r.all()), nil
}

var (
	_ repository.WarehouseRepository = warehouseRepo{}
	_ repository.LocationRepository  = locationRepo{}
	_ repository.CategoryRepository  = categoryRepo{}
	_ repository.ProductRepository   = productRepo{}
	_ repository.PersonRepository    = personRepo{}
	_ repository.UserRepository      = userRepo{}
)
