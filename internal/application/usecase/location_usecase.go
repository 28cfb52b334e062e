package usecase

import (
	"context"

	"github.com/google/uuid"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
	"github.com/jhoicas/almacen-api/internal/domain/validation"
)

// LocationUseCase casos de uso CRUD para ubicaciones.
type LocationUseCase struct {
	repo       repository.LocationRepository
	warehouses repository.WarehouseRepository
	now        Clock
	changes    changes
}

// NewLocationUseCase construye el caso de uso.
func NewLocationUseCase(repo repository.LocationRepository, warehouses repository.WarehouseRepository, clock Clock, opts ...Option) *LocationUseCase {
	return &LocationUseCase{repo: repo, warehouses: warehouses, now: nowOr(clock), changes: newChanges(opts)}
}

// Create crea una ubicación en un almacén activo.
func (uc *LocationUseCase) Create(ctx context.Context, in dto.CreateLocationRequest) (*dto.LocationResponse, error) {
	in.Name = validation.Text(in.Name)
	in.Description = validation.Text(in.Description)
	errs, err := validation.Check(in)
	if err != nil {
		return nil, err
	}
	if err := uc.checkWarehouse(ctx, errs, in.WarehouseID); err != nil {
		return nil, err
	}
	if err := errs.Err(); err != nil {
		return nil, err
	}
	now := uc.now()
	l := &entity.Location{
		ID:          uuid.New().String(),
		WarehouseID: in.WarehouseID,
		Name:        in.Name,
		Description: in.Description,
		Lifecycle:   entity.Active(),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(ctx, l); err != nil {
		return nil, err
	}
	uc.changes.notify(ctx, "location", l.ID)
	return toLocationResponse(l), nil
}

// GetByID obtiene una ubicación por ID.
func (uc *LocationUseCase) GetByID(ctx context.Context, id string) (*dto.LocationResponse, error) {
	l, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if l == nil {
		return nil, domain.ErrNotFound
	}
	return toLocationResponse(l), nil
}

// Update actualiza una ubicación; puede moverla a otro almacén activo.
func (uc *LocationUseCase) Update(ctx context.Context, id string, in dto.UpdateLocationRequest) (*dto.LocationResponse, error) {
	l, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if l == nil {
		return nil, domain.ErrNotFound
	}
	in.Name = validation.TextPtr(in.Name)
	in.Description = validation.TextPtr(in.Description)
	errs, err := validation.Check(in)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		l.Name = *in.Name
	}
	if in.Description != nil {
		l.Description = *in.Description
	}
	if in.WarehouseID != nil && *in.WarehouseID != "" && *in.WarehouseID != l.WarehouseID {
		if err := uc.checkWarehouse(ctx, errs, *in.WarehouseID); err != nil {
			return nil, err
		}
		l.WarehouseID = *in.WarehouseID
	}
	if err := errs.Err(); err != nil {
		return nil, err
	}
	l.UpdatedAt = uc.now()
	if err := uc.repo.Update(ctx, l); err != nil {
		return nil, err
	}
	uc.changes.notify(ctx, "location", l.ID)
	return toLocationResponse(l), nil
}

// List lista ubicaciones, opcionalmente de un almacén.
func (uc *LocationUseCase) List(ctx context.Context, page dto.PageRequest, warehouseID string) (*dto.ListResponse[dto.LocationResponse], error) {
	page.DefaultPage()
	list, total, err := uc.repo.List(ctx, repository.LocationFilter{ListFilter: listFilter(page), WarehouseID: warehouseID})
	if err != nil {
		return nil, err
	}
	items := make([]dto.LocationResponse, 0, len(list))
	for _, l := range list {
		items = append(items, *toLocationResponse(l))
	}
	resp := dto.NewListResponse(items, page, total)
	return &resp, nil
}

// SetActive desactiva o reactiva una ubicación.
func (uc *LocationUseCase) SetActive(ctx context.Context, id string, active bool) error {
	if err := uc.repo.SetActive(ctx, id, active, uc.now()); err != nil {
		return err
	}
	uc.changes.notify(ctx, "location", id)
	return nil
}

func (uc *LocationUseCase) checkWarehouse(ctx context.Context, errs validation.Errors, id string) error {
	if id == "" {
		return nil
	}
	w, err := uc.warehouses.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if w == nil || !w.IsActive {
		errs.Add("warehouse_id", "el almacén no existe o está inactivo")
	}
	return nil
}

func toLocationResponse(l *entity.Location) *dto.LocationResponse {
	return &dto.LocationResponse{
		ID:                l.ID,
		WarehouseID:       l.WarehouseID,
		Name:              l.Name,
		Description:       l.Description,
		LifecycleResponse: lifecycleOf(l.Lifecycle, l.CreatedAt, l.UpdatedAt),
	}
}
