package ledger

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
	"github.com/jhoicas/almacen-api/pkg/logger"
)

const tracerName = "github.com/jhoicas/almacen-api/internal/application/ledger"

// UseCase libro de inventario: resuelve cantidades y registra transacciones validadas.
// Las lecturas usan los repositorios del pool; las escrituras pasan por TxRunner.
type UseCase struct {
	txRunner     TxRunner
	inventories  repository.InventoryRepository
	transactions repository.TransactionRepository
	invalidator  CacheInvalidator
	log          *logger.Logger
	tracer       trace.Tracer
	now          func() time.Time
}

// Option configura dependencias opcionales del caso de uso.
type Option func(*UseCase)

// WithInvalidator invalida la caché del tablero tras cada escritura confirmada.
func WithInvalidator(inv CacheInvalidator) Option {
	return func(uc *UseCase) { uc.invalidator = inv }
}

// WithLogger asigna el logger.
func WithLogger(log *logger.Logger) Option {
	return func(uc *UseCase) { uc.log = log }
}

// WithTracer asigna el tracer (por defecto el proveedor global de OpenTelemetry).
func WithTracer(tracer trace.Tracer) Option {
	return func(uc *UseCase) { uc.tracer = tracer }
}

// WithClock reemplaza el reloj (tests).
func WithClock(now func() time.Time) Option {
	return func(uc *UseCase) { uc.now = now }
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	txRunner TxRunner,
	inventories repository.InventoryRepository,
	transactions repository.TransactionRepository,
	opts ...Option,
) *UseCase {
	uc := &UseCase{
		txRunner:     txRunner,
		inventories:  inventories,
		transactions: transactions,
		log:          logger.Nop(),
		tracer:       otel.Tracer(tracerName),
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// ResolveQuantity devuelve la cantidad actual y el nivel de disponibilidad de un inventario,
// recalculados desde sus transacciones activas.
func (uc *UseCase) ResolveQuantity(ctx context.Context, inventoryID string) (int64, entity.Availability, error) {
	ctx, span := uc.tracer.Start(ctx, "ledger.ResolveQuantity",
		trace.WithAttributes(attribute.String("inventory.id", inventoryID)))
	defer span.End()

	inv, err := uc.inventories.GetByID(ctx, inventoryID)
	if err != nil {
		return 0, "", fail(span, err)
	}
	if inv == nil || !inv.IsActive {
		return 0, "", fail(span, domain.ErrNotFound)
	}
	totals, err := uc.transactions.Totals(ctx, inventoryID)
	if err != nil {
		return 0, "", fail(span, err)
	}
	span.SetAttributes(attribute.Int64("inventory.quantity", totals.Quantity()))
	return totals.Quantity(), totals.Availability(), nil
}

// GetInventory obtiene un inventario activo con su cantidad derivada.
func (uc *UseCase) GetInventory(ctx context.Context, id string) (*entity.InventoryLevel, error) {
	level, err := uc.inventories.GetLevel(ctx, id)
	if err != nil {
		return nil, err
	}
	if level == nil {
		return nil, domain.ErrNotFound
	}
	return level, nil
}

// ListInventories lista inventarios con su cantidad derivada.
func (uc *UseCase) ListInventories(ctx context.Context, f repository.InventoryFilter) ([]*entity.InventoryLevel, int, error) {
	return uc.inventories.ListLevels(ctx, f)
}

// SetInventoryActive activa o desactiva un inventario. Sus transacciones se conservan.
func (uc *UseCase) SetInventoryActive(ctx context.Context, id string, active bool) error {
	inv, err := uc.inventories.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if inv == nil {
		return domain.ErrNotFound
	}
	if err := uc.inventories.SetActive(ctx, id, active, uc.now()); err != nil {
		return err
	}
	uc.invalidate(ctx)
	return nil
}

// GetTransaction obtiene una transacción (activa o no) con los nombres para mostrarla.
func (uc *UseCase) GetTransaction(ctx context.Context, id string) (*repository.TransactionEntry, error) {
	entry, err := uc.transactions.GetEntry(ctx, id)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, domain.ErrNotFound
	}
	return entry, nil
}

// ListTransactions lista transacciones, más recientes primero.
func (uc *UseCase) ListTransactions(ctx context.Context, f repository.TransactionFilter) ([]*repository.TransactionEntry, int, error) {
	return uc.transactions.List(ctx, f)
}

func (uc *UseCase) invalidate(ctx context.Context) {
	if uc.invalidator == nil {
		return
	}
	if err := uc.invalidator.Invalidate(ctx); err != nil {
		uc.log.Warn().Err(err).Msg("invalidar caché del tablero")
	}
}

func fail(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return err
}
