package usecase

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
	"github.com/jhoicas/almacen-api/internal/domain/validation"
)

// ProductUseCase casos de uso CRUD para productos. El stock no se edita aquí.
type ProductUseCase struct {
	repo       repository.ProductRepository
	categories repository.CategoryRepository
	now        Clock
	changes    changes
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, categories repository.CategoryRepository, clock Clock, opts ...Option) *ProductUseCase {
	return &ProductUseCase{repo: repo, categories: categories, now: nowOr(clock), changes: newChanges(opts)}
}

// Create crea un producto. Unidad por defecto PC.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	in.Name = validation.Text(in.Name)
	in.Description = validation.Text(in.Description)
	in.Unit = normalizeUnit(in.Unit)
	errs, err := validation.Check(in)
	if err != nil {
		return nil, err
	}
	if err := uc.checkCategory(ctx, errs, in.CategoryID); err != nil {
		return nil, err
	}
	if err := errs.Err(); err != nil {
		return nil, err
	}
	now := uc.now()
	p := &entity.Product{
		ID:          uuid.New().String(),
		CategoryID:  in.CategoryID,
		Name:        in.Name,
		Description: in.Description,
		Unit:        entity.UnitPiece,
		IsSingleUse: in.IsSingleUse,
		Lifecycle:   entity.Active(),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if in.Unit != "" {
		p.Unit = entity.Unit(in.Unit)
	}
	if err := uc.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	uc.changes.notify(ctx, "product", p.ID)
	return toProductResponse(p), nil
}

// GetByID obtiene un producto por ID.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	p, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	return toProductResponse(p), nil
}

// Update actualiza un producto.
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	p, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	in.Name = validation.TextPtr(in.Name)
	in.Description = validation.TextPtr(in.Description)
	if in.Unit != nil {
		u := normalizeUnit(*in.Unit)
		in.Unit = &u
	}
	errs, err := validation.Check(in)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		p.Name = *in.Name
	}
	if in.Description != nil {
		p.Description = *in.Description
	}
	if in.Unit != nil {
		p.Unit = entity.Unit(*in.Unit)
	}
	if in.IsSingleUse != nil {
		p.IsSingleUse = *in.IsSingleUse
	}
	if in.CategoryID != nil && *in.CategoryID != "" && *in.CategoryID != p.CategoryID {
		if err := uc.checkCategory(ctx, errs, *in.CategoryID); err != nil {
			return nil, err
		}
		p.CategoryID = *in.CategoryID
	}
	if err := errs.Err(); err != nil {
		return nil, err
	}
	p.UpdatedAt = uc.now()
	if err := uc.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	uc.changes.notify(ctx, "product", p.ID)
	return toProductResponse(p), nil
}

// List lista productos, opcionalmente de una categoría.
func (uc *ProductUseCase) List(ctx context.Context, page dto.PageRequest, categoryID string) (*dto.ListResponse[dto.ProductResponse], error) {
	page.DefaultPage()
	list, total, err := uc.repo.List(ctx, repository.ProductFilter{ListFilter: listFilter(page), CategoryID: categoryID})
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	resp := dto.NewListResponse(items, page, total)
	return &resp, nil
}

// SetActive desactiva o reactiva un producto.
func (uc *ProductUseCase) SetActive(ctx context.Context, id string, active bool) error {
	if err := uc.repo.SetActive(ctx, id, active, uc.now()); err != nil {
		return err
	}
	uc.changes.notify(ctx, "product", id)
	return nil
}

func (uc *ProductUseCase) checkCategory(ctx context.Context, errs validation.Errors, id string) error {
	if id == "" {
		return nil
	}
	c, err := uc.categories.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if c == nil || !c.IsActive {
		errs.Add("category_id", "la categoría no existe o está inactiva")
	}
	return nil
}

func normalizeUnit(raw string) string {
	return strings.ToUpper(strings.TrimSpace(raw))
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:                p.ID,
		CategoryID:        p.CategoryID,
		Name:              p.Name,
		Description:       p.Description,
		Unit:              string(p.Unit),
		IsSingleUse:       p.IsSingleUse,
		LifecycleResponse: lifecycleOf(p.Lifecycle, p.CreatedAt, p.UpdatedAt),
	}
}
