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

// WarehouseUseCase casos de uso CRUD para almacenes.
type WarehouseUseCase struct {
	repo    repository.WarehouseRepository
	now     Clock
	changes changes
}

// NewWarehouseUseCase construye el caso de uso.
func NewWarehouseUseCase(repo repository.WarehouseRepository, clock Clock, opts ...Option) *WarehouseUseCase {
	return &WarehouseUseCase{repo: repo, now: nowOr(clock), changes: newChanges(opts)}
}

// Create crea un almacén. Nombre único, validado y normalizado.
func (uc *WarehouseUseCase) Create(ctx context.Context, in dto.CreateWarehouseRequest) (*dto.WarehouseResponse, error) {
	in.Name = validation.Text(in.Name)
	in.Description = validation.Text(in.Description)
	errs, err := validation.Check(in)
	if err != nil {
		return nil, err
	}
	if err := errs.Err(); err != nil {
		return nil, err
	}
	now := uc.now()
	w := &entity.Warehouse{
		ID:          uuid.New().String(),
		Name:        in.Name,
		Description: in.Description,
		Lifecycle:   entity.Active(),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(ctx, w); err != nil {
		return nil, err
	}
	uc.changes.notify(ctx, "warehouse", w.ID)
	return toWarehouseResponse(w), nil
}

// GetByID obtiene un almacén por ID.
func (uc *WarehouseUseCase) GetByID(ctx context.Context, id string) (*dto.WarehouseResponse, error) {
	w, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if w == nil {
		return nil, domain.ErrNotFound
	}
	return toWarehouseResponse(w), nil
}

// Update actualiza un almacén.
func (uc *WarehouseUseCase) Update(ctx context.Context, id string, in dto.UpdateWarehouseRequest) (*dto.WarehouseResponse, error) {
	w, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if w == nil {
		return nil, domain.ErrNotFound
	}
	in.Name = validation.TextPtr(in.Name)
	in.Description = validation.TextPtr(in.Description)
	errs, err := validation.Check(in)
	if err != nil {
		return nil, err
	}
	if err := errs.Err(); err != nil {
		return nil, err
	}
	if in.Name != nil {
		w.Name = *in.Name
	}
	if in.Description != nil {
		w.Description = *in.Description
	}
	w.UpdatedAt = uc.now()
	if err := uc.repo.Update(ctx, w); err != nil {
		return nil, err
	}
	uc.changes.notify(ctx, "warehouse", w.ID)
	return toWarehouseResponse(w), nil
}

// List lista almacenes con búsqueda y paginación.
func (uc *WarehouseUseCase) List(ctx context.Context, page dto.PageRequest) (*dto.ListResponse[dto.WarehouseResponse], error) {
	page.DefaultPage()
	list, total, err := uc.repo.List(ctx, listFilter(page))
	if err != nil {
		return nil, err
	}
	items := make([]dto.WarehouseResponse, 0, len(list))
	for _, w := range list {
		items = append(items, *toWarehouseResponse(w))
	}
	resp := dto.NewListResponse(items, page, total)
	return &resp, nil
}

// SetActive desactiva (borrado lógico) o reactiva un almacén.
func (uc *WarehouseUseCase) SetActive(ctx context.Context, id string, active bool) error {
	if err := uc.repo.SetActive(ctx, id, active, uc.now()); err != nil {
		return err
	}
	uc.changes.notify(ctx, "warehouse", id)
	return nil
}

func toWarehouseResponse(w *entity.Warehouse) *dto.WarehouseResponse {
	return &dto.WarehouseResponse{
		ID:                w.ID,
		Name:              w.Name,
		Description:       w.Description,
		LifecycleResponse: lifecycleOf(w.Lifecycle, w.CreatedAt, w.UpdatedAt),
	}
}
