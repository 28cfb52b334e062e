// Package analytics contiene el caso de uso del tablero: conteos, últimas transacciones
// e inventarios con más stock.
package analytics

import (
	"context"
	"encoding/json"

	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/application/ledger"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
	"github.com/jhoicas/almacen-api/pkg/logger"
)

// Tamaño de las listas del tablero.
const (
	LatestTransactions = 5
	TopInventories     = 5
)

// Cache guarda el resumen serializado por generación. La implementa cache.DashboardCache (Redis).
// Cada escritura del libro o del catálogo abre una generación nueva.
type Cache interface {
	Generation(ctx context.Context) (int64, error)
	Get(ctx context.Context, gen int64) ([]byte, bool, error)
	Set(ctx context.Context, gen int64, val []byte) error
}

// DashboardUseCase genera el resumen del tablero.
//
// Fuente de datos: AnalyticsRepository para los conteos y el libro de inventario para
// transacciones y cantidades. Si hay caché, el resumen se sirve desde ella hasta que una
// escritura del libro la invalide o expire el TTL.
type DashboardUseCase struct {
	analyticsRepo repository.AnalyticsRepository
	ledger        *ledger.UseCase
	cache         Cache
	log           *logger.Logger
}

// NewDashboardUseCase construye el caso de uso. cache y log pueden ser nil.
func NewDashboardUseCase(analyticsRepo repository.AnalyticsRepository, ledgerUC *ledger.UseCase, cache Cache, log *logger.Logger) *DashboardUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &DashboardUseCase{analyticsRepo: analyticsRepo, ledger: ledgerUC, cache: cache, log: log}
}

// GetSummary construye el DashboardDTO.
//
// Tres consultas en paralelo:
//  1. GetDashboardTotals        → conteos de entidades activas
//  2. ListTransactions(top 5)   → últimas transacciones
//  3. ListInventories(top 5)    → inventarios activos con más stock
//
// La generación se lee antes de consultar: si una escritura la invalida mientras tanto, el
// resumen se guarda bajo una generación vieja y no se vuelve a servir.
func (uc *DashboardUseCase) GetSummary(ctx context.Context) (*dto.DashboardDTO, error) {
	gen, cacheable := uc.generation(ctx)
	if cacheable {
		if cached := uc.fromCache(ctx, gen); cached != nil {
			return cached, nil
		}
	}

	var (
		totals repository.DashboardTotals
		latest []*repository.TransactionEntry
		top    []*entity.InventoryLevel
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		totals, err = uc.analyticsRepo.GetDashboardTotals(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		latest, _, err = uc.ledger.ListTransactions(gctx, repository.TransactionFilter{
			ListFilter: repository.ListFilter{Limit: LatestTransactions},
		})
		return err
	})
	g.Go(func() error {
		var err error
		top, _, err = uc.ledger.ListInventories(gctx, repository.InventoryFilter{
			ListFilter: repository.ListFilter{Limit: TopInventories},
			ByQuantity: true,
		})
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	summary := &dto.DashboardDTO{
		TotalProducts:      totals.Products,
		TotalLocations:     totals.Locations,
		TotalWarehouses:    totals.Warehouses,
		TotalInventories:   totals.Inventories,
		LatestTransactions: make([]dto.TransactionResponse, 0, len(latest)),
		TopInventories:     make([]dto.InventoryResponse, 0, len(top)),
	}
	for _, e := range latest {
		summary.LatestTransactions = append(summary.LatestTransactions, ledger.EntryResponse(e))
	}
	for _, l := range top {
		summary.TopInventories = append(summary.TopInventories, ledger.ToInventoryResponse(l))
	}
	if cacheable {
		uc.toCache(ctx, gen, summary)
	}
	return summary, nil
}

func (uc *DashboardUseCase) generation(ctx context.Context) (int64, bool) {
	if uc.cache == nil {
		return 0, false
	}
	gen, err := uc.cache.Generation(ctx)
	if err != nil {
		uc.log.Warn().Err(err).Msg("leer generación de la caché del tablero")
		return 0, false
	}
	return gen, true
}

func (uc *DashboardUseCase) fromCache(ctx context.Context, gen int64) *dto.DashboardDTO {
	raw, ok, err := uc.cache.Get(ctx, gen)
	if err != nil {
		uc.log.Warn().Err(err).Msg("leer caché del tablero")
		return nil
	}
	if !ok {
		return nil
	}
	var summary dto.DashboardDTO
	if err := json.Unmarshal(raw, &summary); err != nil {
		uc.log.Warn().Err(err).Msg("resumen en caché corrupto")
		return nil
	}
	return &summary
}

func (uc *DashboardUseCase) toCache(ctx context.Context, gen int64, summary *dto.DashboardDTO) {
	raw, err := json.Marshal(summary)
	if err != nil {
		uc.log.Warn().Err(err).Msg("serializar resumen del tablero")
		return
	}
	if err := uc.cache.Set(ctx, gen, raw); err != nil {
		uc.log.Warn().Err(err).Msg("guardar caché del tablero")
	}
}
