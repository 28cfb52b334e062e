package entity

import "time"

// Unit unidad de medida de un producto.
type Unit string

// Unidades de medida válidas.
const (
	UnitGallon  Unit = "GAL"
	UnitPiece   Unit = "PC"
	UnitBox     Unit = "BOX"
	UnitMeter   Unit = "M"
	UnitLitre   Unit = "L"
	UnitKilo    Unit = "KG"
	UnitPackage Unit = "PKG"
)

// Units lista ordenada de unidades válidas.
var Units = []Unit{UnitGallon, UnitPiece, UnitBox, UnitMeter, UnitLitre, UnitKilo, UnitPackage}

// Valid indica si la unidad pertenece al catálogo.
func (u Unit) Valid() bool {
	for _, v := range Units {
		if u == v {
			return true
		}
	}
	return false
}

// Product representa un producto del catálogo.
type Product struct {
	ID          string
	CategoryID  string
	Name        string
	Description string
	Unit        Unit
	IsSingleUse bool
	Lifecycle
	CreatedAt time.Time
	UpdatedAt time.Time
}
