package ledger

import (
	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// ToInventoryResponse mapea un inventario con cantidad derivada a su DTO.
func ToInventoryResponse(l *entity.InventoryLevel) dto.InventoryResponse {
	return dto.InventoryResponse{
		ID:            l.ID,
		ProductID:     l.ProductID,
		ProductName:   l.ProductName,
		LocationID:    l.LocationID,
		LocationName:  l.LocationName,
		WarehouseName: l.WarehouseName,
		Quantity:      l.Quantity,
		Availability:  string(l.Availability),
		LifecycleResponse: dto.LifecycleResponse{
			IsActive:  l.IsActive,
			DeletedAt: l.DeletedAt,
			CreatedAt: l.CreatedAt,
			UpdatedAt: l.UpdatedAt,
		},
	}
}

// ToTransactionResponse mapea una transacción a su DTO. Los nombres vienen de la entrada
// del libro; una transacción recién creada no los tiene.
func ToTransactionResponse(tx *entity.Transaction, names *repository.TransactionEntry) dto.TransactionResponse {
	resp := dto.TransactionResponse{
		ID:          tx.ID,
		InventoryID: tx.InventoryID,
		PersonID:    tx.PersonID,
		Quantity:    tx.Quantity,
		Movement:    string(tx.Movement),
		Type:        string(tx.Type),
		Description: tx.Description,
		CreatedBy:   tx.CreatedBy,
		LifecycleResponse: dto.LifecycleResponse{
			IsActive:  tx.IsActive,
			DeletedAt: tx.DeletedAt,
			CreatedAt: tx.CreatedAt,
			UpdatedAt: tx.UpdatedAt,
		},
	}
	if names != nil {
		resp.ProductName = names.ProductName
		resp.LocationName = names.LocationName
		resp.WarehouseName = names.WarehouseName
		resp.PersonName = names.PersonName
	}
	return resp
}

// EntryResponse mapea una entrada del libro a su DTO.
func EntryResponse(e *repository.TransactionEntry) dto.TransactionResponse {
	return ToTransactionResponse(&e.Transaction, e)
}
