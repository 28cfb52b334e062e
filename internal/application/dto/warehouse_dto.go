package dto

// CreateWarehouseRequest entrada para crear un almacén.
type CreateWarehouseRequest struct {
	Name        string `json:"name" validate:"required,max=64,catalog_text"`
	Description string `json:"description" validate:"max=128,catalog_text"`
}

// UpdateWarehouseRequest entrada para actualizar un almacén (campos nil no cambian).
type UpdateWarehouseRequest struct {
	Name        *string `json:"name" validate:"omitnil,min=1,max=64,catalog_text"`
	Description *string `json:"description" validate:"omitnil,max=128,catalog_text"`
}

// WarehouseResponse salida de un almacén.
type WarehouseResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	LifecycleResponse
}

// CreateLocationRequest entrada para crear una ubicación.
type CreateLocationRequest struct {
	WarehouseID string `json:"warehouse_id" validate:"required"`
	Name        string `json:"name" validate:"required,max=64,catalog_text"`
	Description string `json:"description" validate:"max=128,catalog_text"`
}

// UpdateLocationRequest entrada para actualizar una ubicación.
type UpdateLocationRequest struct {
	WarehouseID *string `json:"warehouse_id" validate:"omitnil,min=1"`
	Name        *string `json:"name" validate:"omitnil,min=1,max=64,catalog_text"`
	Description *string `json:"description" validate:"omitnil,max=128,catalog_text"`
}

// LocationResponse salida de una ubicación.
type LocationResponse struct {
	ID          string `json:"id"`
	WarehouseID string `json:"warehouse_id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	LifecycleResponse
}
