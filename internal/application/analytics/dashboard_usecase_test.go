package analytics_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/almacen-api/internal/application/analytics"
	"github.com/jhoicas/almacen-api/internal/application/ledger"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
	"github.com/jhoicas/almacen-api/internal/infrastructure/cache"
	"github.com/jhoicas/almacen-api/internal/infrastructure/memory"
)

type dashboardFixture struct {
	store    *memory.Store
	ledger   *ledger.UseCase
	uc       *analytics.DashboardUseCase
	redis    *miniredis.Miniredis
	location string
}

func newDashboardFixture(t *testing.T) *dashboardFixture {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	dc := cache.NewDashboardCache(client, time.Minute)

	store := memory.NewStore()
	wh := store.AddWarehouse("Campus Norte")
	ledgerUC := ledger.NewUseCase(store, store.Inventories(), store.Transactions(), ledger.WithInvalidator(dc))
	return &dashboardFixture{
		store:    store,
		ledger:   ledgerUC,
		uc:       analytics.NewDashboardUseCase(store, ledgerUC, dc, nil),
		redis:    mr,
		location: store.AddLocation(wh, "Laboratorio A"),
	}
}

func (f *dashboardFixture) purchase(t *testing.T, productID string, q int64) {
	t.Helper()
	_, err := f.ledger.RecordTransaction(context.Background(), ledger.RecordInput{
		ProductID:  productID,
		LocationID: f.location,
		Quantity:   q,
		Movement:   entity.MovementIn,
		Type:       entity.TypePurchase,
	})
	require.NoError(t, err)
}

func TestGetSummary_ConteosYListas(t *testing.T) {
	f := newDashboardFixture(t)
	products := make([]string, 7)
	for i := range products {
		products[i] = f.store.AddProduct("Producto " + string(rune('A'+i)))
		f.purchase(t, products[i], int64(i+1))
	}

	summary, err := f.uc.GetSummary(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 7, summary.TotalProducts)
	assert.Equal(t, 1, summary.TotalLocations)
	assert.Equal(t, 1, summary.TotalWarehouses)
	assert.Equal(t, 7, summary.TotalInventories)
	require.Len(t, summary.LatestTransactions, analytics.LatestTransactions)
	require.Len(t, summary.TopInventories, analytics.TopInventories)

	assert.Equal(t, int64(7), summary.TopInventories[0].Quantity, "el inventario con más stock va primero")
	assert.Equal(t, "Producto G", summary.TopInventories[0].ProductName)
	assert.Equal(t, string(entity.AvailabilityLow), summary.TopInventories[0].Availability)
	for i := 1; i < len(summary.TopInventories); i++ {
		assert.GreaterOrEqual(t, summary.TopInventories[i-1].Quantity, summary.TopInventories[i].Quantity)
	}
}

func TestGetSummary_UsaCacheHastaLaSiguienteEscritura(t *testing.T) {
	f := newDashboardFixture(t)
	product := f.store.AddProduct("Multímetro")
	f.purchase(t, product, 20)

	first, err := f.uc.GetSummary(context.Background())
	require.NoError(t, err)
	require.Len(t, first.TopInventories, 1)
	assert.Equal(t, int64(20), first.TopInventories[0].Quantity)
	assert.True(t, f.redis.Exists("almacen:dashboard:summary:0"), "el resumen queda en caché")

	// Un producto sin movimientos no invalida: el resumen cacheado sigue vigente.
	f.store.AddProduct("Osciloscopio")
	cached, err := f.uc.GetSummary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, cached.TotalProducts)

	f.purchase(t, product, 5)
	assert.False(t, f.redis.Exists("almacen:dashboard:summary:0"), "registrar una transacción invalida la caché")

	fresh, err := f.uc.GetSummary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, fresh.TotalProducts)
	assert.Equal(t, int64(25), fresh.TopInventories[0].Quantity)
	assert.Len(t, fresh.LatestTransactions, 2)
}

// writeDuringSet simula una escritura que se confirma entre el cálculo del resumen y su Set.
type writeDuringSet struct {
	analytics.Cache
	write func()
}

func (w *writeDuringSet) Set(ctx context.Context, gen int64, val []byte) error {
	if w.write != nil {
		w.write()
		w.write = nil
	}
	return w.Cache.Set(ctx, gen, val)
}

func TestGetSummary_EscrituraConcurrenteNoDejaResumenViejo(t *testing.T) {
	f := newDashboardFixture(t)
	product := f.store.AddProduct("Multímetro")
	f.purchase(t, product, 20)

	client := redis.NewClient(&redis.Options{Addr: f.redis.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	racing := &writeDuringSet{
		Cache: cache.NewDashboardCache(client, time.Minute),
		write: func() { f.purchase(t, product, 5) },
	}
	uc := analytics.NewDashboardUseCase(f.store, f.ledger, racing, nil)

	stale, err := uc.GetSummary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(20), stale.TopInventories[0].Quantity)

	fresh, err := uc.GetSummary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(25), fresh.TopInventories[0].Quantity, "el resumen calculado antes de la escritura no se sirve")
}

func TestGetSummary_CacheCaidaNoBloquea(t *testing.T) {
	f := newDashboardFixture(t)
	f.purchase(t, f.store.AddProduct("Multímetro"), 3)
	f.redis.Close()

	summary, err := f.uc.GetSummary(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, summary.TotalInventories)
}

type failingTotals struct{}

func (failingTotals) GetDashboardTotals(context.Context) (repository.DashboardTotals, error) {
	return repository.DashboardTotals{}, errors.New("db caída")
}

func TestGetSummary_PropagaErrorDeConsulta(t *testing.T) {
	store := memory.NewStore()
	ledgerUC := ledger.NewUseCase(store, store.Inventories(), store.Transactions())
	uc := analytics.NewDashboardUseCase(failingTotals{}, ledgerUC, nil, nil)

	_, err := uc.GetSummary(context.Background())

	assert.EqualError(t, err, "db caída")
}
