package dto

import (
	"encoding/json"

	"github.com/jhoicas/facturador/internal/domain/entity"
)

// SessionResponse factura de la sesión con sus totales, tal como la ve el formulario.
type SessionResponse struct {
	ID      string               `json:"id"`
	Locale  string               `json:"locale"`
	Invoice entity.Invoice       `json:"invoice"`
	Totals  entity.InvoiceTotals `json:"totals"`
}

// CreateSessionRequest body opcional de POST /api/sessions.
type CreateSessionRequest struct {
	Locale string `json:"locale,omitempty"`
}

// SetFieldRequest body de PUT /api/sessions/:id/fields/:field. Value es el JSON
// crudo: texto para los campos de texto, número o texto para taxRate, objeto
// {description, days} o texto para paymentTerms.
type SetFieldRequest struct {
	Value json.RawMessage `json:"value" swaggertype:"object"`
}

// UpdateLineItemRequest body de PATCH /api/sessions/:id/line-items/:itemId.
// Campo ausente = sin cambio. Quantity y Price aceptan número o texto; el texto
// que no se puede interpretar toma el valor por defecto.
type UpdateLineItemRequest struct {
	MaterialNo  *string         `json:"materialNo,omitempty"`
	Description *string         `json:"description,omitempty"`
	Quantity    json.RawMessage `json:"quantity,omitempty" swaggertype:"string"`
	Unit        *string         `json:"unit,omitempty"`
	Price       json.RawMessage `json:"price,omitempty" swaggertype:"string"`
}

// LineItemResponse respuesta de POST line-items: la línea creada y la sesión.
type LineItemResponse struct {
	Item    entity.LineItem `json:"item"`
	Session SessionResponse `json:"session"`
}
