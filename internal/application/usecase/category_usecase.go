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

// CategoryUseCase casos de uso CRUD para categorías (partidas).
type CategoryUseCase struct {
	repo repository.CategoryRepository
	now  Clock
}

// NewCategoryUseCase construye el caso de uso.
func NewCategoryUseCase(repo repository.CategoryRepository, clock Clock) *CategoryUseCase {
	return &CategoryUseCase{repo: repo, now: nowOr(clock)}
}

// Create crea una categoría. El código debe estar entre 10000 y 30000.
func (uc *CategoryUseCase) Create(ctx context.Context, in dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
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
	c := &entity.Category{
		ID:          uuid.New().String(),
		Code:        in.Code,
		Name:        in.Name,
		Description: in.Description,
		Lifecycle:   entity.Active(),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return toCategoryResponse(c), nil
}

// GetByID obtiene una categoría por ID.
func (uc *CategoryUseCase) GetByID(ctx context.Context, id string) (*dto.CategoryResponse, error) {
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	return toCategoryResponse(c), nil
}

// Update actualiza una categoría.
func (uc *CategoryUseCase) Update(ctx context.Context, id string, in dto.UpdateCategoryRequest) (*dto.CategoryResponse, error) {
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
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
	if in.Code != nil {
		c.Code = *in.Code
	}
	if in.Name != nil {
		c.Name = *in.Name
	}
	if in.Description != nil {
		c.Description = *in.Description
	}
	c.UpdatedAt = uc.now()
	if err := uc.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return toCategoryResponse(c), nil
}

// List lista categorías ordenadas por código.
func (uc *CategoryUseCase) List(ctx context.Context, page dto.PageRequest) (*dto.ListResponse[dto.CategoryResponse], error) {
	page.DefaultPage()
	list, total, err := uc.repo.List(ctx, listFilter(page))
	if err != nil {
		return nil, err
	}
	items := make([]dto.CategoryResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *toCategoryResponse(c))
	}
	resp := dto.NewListResponse(items, page, total)
	return &resp, nil
}

// SetActive desactiva o reactiva una categoría.
func (uc *CategoryUseCase) SetActive(ctx context.Context, id string, active bool) error {
	return uc.repo.SetActive(ctx, id, active, uc.now())
}

func toCategoryResponse(c *entity.Category) *dto.CategoryResponse {
	return &dto.CategoryResponse{
		ID:                c.ID,
		Code:              c.Code,
		Name:              c.Name,
		Description:       c.Description,
		LifecycleResponse: lifecycleOf(c.Lifecycle, c.CreatedAt, c.UpdatedAt),
	}
}
