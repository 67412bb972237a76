package entity

import "github.com/shopspring/decimal"

// Unit unidad de medida de una línea.
type Unit string

const (
	UnitPC  Unit = "PC"
	UnitST  Unit = "ST"
	UnitEA  Unit = "EA"
	UnitKG  Unit = "KG"
	UnitM   Unit = "M"
	UnitL   Unit = "L"
	UnitHR  Unit = "HR"
	UnitBOX Unit = "BOX"
)

// Valid indica si la unidad pertenece al conjunto cerrado.
func (u Unit) Valid() bool {
	switch u {
	case UnitPC, UnitST, UnitEA, UnitKG, UnitM, UnitL, UnitHR, UnitBOX:
		return true
	}
	return false
}

// LineItem representa una línea facturable. ID solo sirve para direccionar
// la línea dentro de la secuencia; no tiene significado de negocio.
type LineItem struct {
	ID          string          `json:"id"`
	MaterialNo  string          `json:"materialNo"`
	Description string          `json:"description"`
	Quantity    int             `json:"quantity"`
	Unit        Unit            `json:"unit"`
	Price       decimal.Decimal `json:"price"` // precio unitario
}

// LineItemPatch actualización parcial de una línea: nil = sin cambio.
// El ID no es modificable.
type LineItemPatch struct {
	MaterialNo  *string          `json:"materialNo,omitempty"`
	Description *string          `json:"description,omitempty"`
	Quantity    *int             `json:"quantity,omitempty"`
	Unit        *Unit            `json:"unit,omitempty"`
	Price       *decimal.Decimal `json:"price,omitempty"`
}

// Apply devuelve una copia de item con los campos del patch aplicados.
func (p LineItemPatch) Apply(item LineItem) LineItem {
	if p.MaterialNo != nil {
		item.MaterialNo = *p.MaterialNo
	}
	if p.Description != nil {
		item.Description = *p.Description
	}
	if p.Quantity != nil {
		item.Quantity = *p.Quantity
	}
	if p.Unit != nil {
		item.Unit = *p.Unit
	}
	if p.Price != nil {
		item.Price = *p.Price
	}
	return item
}
