package dto

// DashboardDTO respuesta de GET /api/dashboard.
// Conteos de entidades activas, últimas transacciones e inventarios con más stock.
type DashboardDTO struct {
	TotalProducts      int                   `json:"total_products"`
	TotalLocations     int                   `json:"total_locations"`
	TotalWarehouses    int                   `json:"total_warehouses"`
	TotalInventories   int                   `json:"total_inventories"`
	LatestTransactions []TransactionResponse `json:"latest_transactions"`
	TopInventories     []InventoryResponse   `json:"top_inventories"`
}
