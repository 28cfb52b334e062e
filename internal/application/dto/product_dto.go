package dto

// CreateCategoryRequest entrada para crear una categoría (partida).
type CreateCategoryRequest struct {
	Code        int    `json:"code" validate:"gte=10000,lte=30000"`
	Name        string `json:"name" validate:"required,max=64,catalog_text"`
	Description string `json:"description" validate:"max=128,catalog_text"`
}

// UpdateCategoryRequest entrada para actualizar una categoría.
type UpdateCategoryRequest struct {
	Code        *int    `json:"code" validate:"omitnil,gte=10000,lte=30000"`
	Name        *string `json:"name" validate:"omitnil,min=1,max=64,catalog_text"`
	Description *string `json:"description" validate:"omitnil,max=128,catalog_text"`
}

// CategoryResponse salida de una categoría.
type CategoryResponse struct {
	ID          string `json:"id"`
	Code        int    `json:"code"`
	Name        string `json:"name"`
	Description string `json:"description"`
	LifecycleResponse
}

// CreateProductRequest entrada para crear un producto. Unit vacío = PC.
type CreateProductRequest struct {
	CategoryID  string `json:"category_id" validate:"required"`
	Name        string `json:"name" validate:"required,max=64,catalog_text"`
	Description string `json:"description" validate:"max=128,catalog_text"`
	Unit        string `json:"unit" validate:"omitempty,oneof=GAL PC BOX M L KG PKG"`
	IsSingleUse bool   `json:"is_single_use"`
}

// UpdateProductRequest entrada para actualizar un producto (sin stock: se deriva de transacciones).
type UpdateProductRequest struct {
	CategoryID  *string `json:"category_id" validate:"omitnil,min=1"`
	Name        *string `json:"name" validate:"omitnil,min=1,max=64,catalog_text"`
	Description *string `json:"description" validate:"omitnil,max=128,catalog_text"`
	Unit        *string `json:"unit" validate:"omitnil,oneof=GAL PC BOX M L KG PKG"`
	IsSingleUse *bool   `json:"is_single_use"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID          string `json:"id"`
	CategoryID  string `json:"category_id,omitempty"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Unit        string `json:"unit"`
	IsSingleUse bool   `json:"is_single_use"`
	LifecycleResponse
}
