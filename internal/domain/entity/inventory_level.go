package entity

// InventoryLevel proyección de lectura de un inventario con su cantidad derivada.
// Se calcula en cada lectura a partir de las transacciones activas.
type InventoryLevel struct {
	Inventory
	ProductName   string
	LocationName  string
	WarehouseName string
	Quantity      int64
	Availability  Availability
}
