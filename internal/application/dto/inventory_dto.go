package dto

// InventoryResponse inventario (producto en ubicación) con su cantidad derivada.
type InventoryResponse struct {
	ID            string `json:"id"`
	ProductID     string `json:"product_id"`
	ProductName   string `json:"product_name"`
	LocationID    string `json:"location_id"`
	LocationName  string `json:"location_name"`
	WarehouseName string `json:"warehouse_name"`
	Quantity      int64  `json:"quantity"`
	Availability  string `json:"availability"`
	LifecycleResponse
}

// CreateTransactionRequest entrada para registrar una transacción.
// Se indica inventory_id, o bien product_id + location_id.
type CreateTransactionRequest struct {
	InventoryID string `json:"inventory_id"`
	ProductID   string `json:"product_id"`
	LocationID  string `json:"location_id"`
	PersonID    string `json:"person_id"`
	Quantity    int64  `json:"quantity"`
	Movement    string `json:"movement"` // IN, OUT
	Type        string `json:"type"`     // PURCHASE, RETURN, SALE, LOST, DAMAGED, LOAN
	Description string `json:"description"`
}

// TransactionResponse salida de una transacción.
type TransactionResponse struct {
	ID            string `json:"id"`
	InventoryID   string `json:"inventory_id"`
	ProductName   string `json:"product_name,omitempty"`
	LocationName  string `json:"location_name,omitempty"`
	WarehouseName string `json:"warehouse_name,omitempty"`
	PersonID      string `json:"person_id,omitempty"`
	PersonName    string `json:"person_name,omitempty"`
	Quantity      int64  `json:"quantity"`
	Movement      string `json:"movement"`
	Type          string `json:"type"`
	Description   string `json:"description"`
	CreatedBy     string `json:"created_by,omitempty"`
	LifecycleResponse
}
