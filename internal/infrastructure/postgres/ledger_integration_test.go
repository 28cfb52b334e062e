//go:build integration

package postgres_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/jhoicas/almacen-api/internal/application/ledger"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
	"github.com/jhoicas/almacen-api/internal/infrastructure/postgres"
	"github.com/jhoicas/almacen-api/pkg/logger"
)

func setupPostgres(t *testing.T) *pgxpool.Pool {
	t.Helper()
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("almacen"),
		tcpostgres.WithUsername("test"),
		tcpostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, container.Terminate(ctx)) })

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)
	require.NoError(t, postgres.Migrate(dsn, logger.Nop()))
	require.NoError(t, postgres.Migrate(dsn, logger.Nop()), "migrar dos veces no falla")

	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	return pool
}

type seed struct {
	productID  string
	locationID string
}

func seedCatalog(t *testing.T, pool *pgxpool.Pool) seed {
	t.Helper()
	ctx := context.Background()
	now := time.Now().UTC()

	w := &entity.Warehouse{ID: uuid.New().String(), Name: "Campus Norte", Lifecycle: entity.Active(), CreatedAt: now, UpdatedAt: now}
	require.NoError(t, postgres.NewWarehouseRepository(pool).Create(ctx, w))
	l := &entity.Location{ID: uuid.New().String(), WarehouseID: w.ID, Name: "Laboratorio A", Lifecycle: entity.Active(), CreatedAt: now, UpdatedAt: now}
	require.NoError(t, postgres.NewLocationRepository(pool).Create(ctx, l))
	c := &entity.Category{ID: uuid.New().String(), Code: 21101, Name: "Materiales", Lifecycle: entity.Active(), CreatedAt: now, UpdatedAt: now}
	require.NoError(t, postgres.NewCategoryRepository(pool).Create(ctx, c))
	p := &entity.Product{ID: uuid.New().String(), CategoryID: c.ID, Name: "Multímetro", Unit: entity.UnitPiece, Lifecycle: entity.Active(), CreatedAt: now, UpdatedAt: now}
	require.NoError(t, postgres.NewProductRepository(pool).Create(ctx, p))

	dup := &entity.Category{ID: uuid.New().String(), Code: 21101, Name: "Otra", Lifecycle: entity.Active(), CreatedAt: now, UpdatedAt: now}
	require.ErrorIs(t, postgres.NewCategoryRepository(pool).Create(ctx, dup), domain.ErrDuplicate)

	return seed{productID: p.ID, locationID: l.ID}
}

func TestIntegration_Ledger_SalidasConcurrentes(t *testing.T) {
	pool := setupPostgres(t)
	s := seedCatalog(t, pool)
	ctx := context.Background()

	uc := ledger.NewUseCase(postgres.NewTxRunner(pool),
		postgres.NewInventoryRepository(pool), postgres.NewTransactionRepository(pool))

	in, err := uc.RecordTransaction(ctx, ledger.RecordInput{
		ProductID: s.productID, LocationID: s.locationID,
		Quantity: 10, Movement: entity.MovementIn, Type: entity.TypePurchase,
	})
	require.NoError(t, err)

	const workers = 6
	var wg sync.WaitGroup
	errs := make([]error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = uc.RecordTransaction(ctx, ledger.RecordInput{
				InventoryID: in.InventoryID, Quantity: 7, Movement: entity.MovementOut, Type: entity.TypeSale,
			})
		}(i)
	}
	wg.Wait()

	var ok int
	for _, err := range errs {
		if err == nil {
			ok++
			continue
		}
		assert.True(t, errors.Is(err, domain.ErrInsufficientStock), "error inesperado: %v", err)
	}
	assert.Equal(t, 1, ok)

	q, a, err := uc.ResolveQuantity(ctx, in.InventoryID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), q)
	assert.Equal(t, entity.AvailabilityLow, a)

	levels, total, err := uc.ListInventories(ctx, repository.InventoryFilter{Availability: entity.AvailabilityLow})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, levels, 1)
	assert.Equal(t, "Campus Norte", levels[0].WarehouseName)

	entries, total, err := uc.ListTransactions(ctx, repository.TransactionFilter{InventoryID: in.InventoryID})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	assert.Len(t, entries, 2)
}

func TestIntegration_Ledger_DesactivarYReactivar(t *testing.T) {
	pool := setupPostgres(t)
	s := seedCatalog(t, pool)
	ctx := context.Background()
	uc := ledger.NewUseCase(postgres.NewTxRunner(pool),
		postgres.NewInventoryRepository(pool), postgres.NewTransactionRepository(pool))

	in, err := uc.RecordTransaction(ctx, ledger.RecordInput{
		ProductID: s.productID, LocationID: s.locationID,
		Quantity: 5, Movement: entity.MovementIn, Type: entity.TypePurchase,
	})
	require.NoError(t, err)
	out, err := uc.RecordTransaction(ctx, ledger.RecordInput{
		InventoryID: in.InventoryID, Quantity: 4, Movement: entity.MovementOut, Type: entity.TypeLoan,
	})
	require.NoError(t, err)

	assert.ErrorIs(t, uc.DeactivateTransaction(ctx, in.ID), domain.ErrInsufficientStock)
	require.NoError(t, uc.DeactivateTransaction(ctx, out.ID))

	q, _, err := uc.ResolveQuantity(ctx, in.InventoryID)
	require.NoError(t, err)
	assert.Equal(t, int64(5), q)

	entry, err := uc.GetTransaction(ctx, out.ID)
	require.NoError(t, err)
	assert.False(t, entry.IsActive)
	assert.NotNil(t, entry.DeletedAt)

	_, err = uc.GetTransaction(ctx, "no-es-uuid")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestIntegration_Ledger_PersonaInactiva(t *testing.T) {
	pool := setupPostgres(t)
	s := seedCatalog(t, pool)
	ctx := context.Background()
	now := time.Now().UTC()

	persons := postgres.NewPersonRepository(pool)
	p := &entity.Person{
		ID: uuid.New().String(), Kind: entity.PersonStudent, FirstName: "Ana", LastName: "López",
		Student:   &entity.StudentInfo{ControlNumber: "20310045"},
		Lifecycle: entity.Active(), CreatedAt: now, UpdatedAt: now,
	}
	require.NoError(t, persons.Create(ctx, p))
	require.NoError(t, persons.SetActive(ctx, p.ID, false, now))

	uc := ledger.NewUseCase(postgres.NewTxRunner(pool),
		postgres.NewInventoryRepository(pool), postgres.NewTransactionRepository(pool))
	_, err := uc.RecordTransaction(ctx, ledger.RecordInput{
		ProductID: s.productID, LocationID: s.locationID, PersonID: p.ID,
		Quantity: 5, Movement: entity.MovementIn, Type: entity.TypePurchase,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// El rechazo revierte también el alta implícita del par.
	_, total, err := uc.ListInventories(ctx, repository.InventoryFilter{
		ListFilter: repository.ListFilter{IncludeInactive: true},
	})
	require.NoError(t, err)
	assert.Equal(t, 0, total)
}
