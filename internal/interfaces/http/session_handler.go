package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/facturador/internal/application/dto"
	"github.com/jhoicas/facturador/internal/application/editor"
)

// SessionHandler edición de la factura de una sesión.
type SessionHandler struct {
	svc *editor.Service
}

// NewSessionHandler construye el handler.
func NewSessionHandler(svc *editor.Service) *SessionHandler {
	return &SessionHandler{svc: svc}
}

// Create godoc
// @Summary      Crear sesión de edición
// @Description  Abre una sesión con la factura semilla: número y fecha nuevos y dos líneas de ejemplo.
// @Tags         sessions
// @Accept       json
// @Produce      json
// @Param        body  body      dto.CreateSessionRequest  false  "locale preferido (en, de)"
// @Success      201   {object}  dto.SessionResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /api/sessions [post]
func (h *SessionHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateSessionRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return badBody(c)
		}
	}
	snap, err := h.svc.Create(in.Locale)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toSessionResponse(snap))
}

// Get godoc
// @Summary      Estado de la sesión
// @Tags         sessions
// @Produce      json
// @Param        id   path      string  true  "id de sesión"
// @Success      200  {object}  dto.SessionResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sessions/{id} [get]
func (h *SessionHandler) Get(c *fiber.Ctx) error {
	snap, err := h.svc.Get(GetSessionID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(toSessionResponse(snap))
}

// Delete godoc
// @Summary      Cerrar sesión
// @Tags         sessions
// @Param        id   path  string  true  "id de sesión"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sessions/{id} [delete]
func (h *SessionHandler) Delete(c *fiber.Ctx) error {
	if err := h.svc.Close(GetSessionID(c)); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// SetField godoc
// @Summary      Editar un campo de cabecera
// @Description  field: template, vendor.name, vendor.vatNumber, invoiceNumber, invoiceDate, referencePO,
// @Description  currency, taxRate, customer.companyName, customer.address, bankDetails.bankName,
// @Description  bankDetails.accountNumber, bankDetails.swiftCode, paymentTerms. taxRate acepta número o texto;
// @Description  el texto que no es un número vale 0.
// @Tags         sessions
// @Accept       json
// @Produce      json
// @Param        id     path      string               true  "id de sesión"
// @Param        field  path      string               true  "ruta del campo"
// @Param        body   body      dto.SetFieldRequest  true  "value"
// @Success      200    {object}  dto.SessionResponse
// @Failure      400    {object}  dto.ErrorResponse
// @Failure      404    {object}  dto.ErrorResponse
// @Router       /api/sessions/{id}/fields/{field} [put]
func (h *SessionHandler) SetField(c *fiber.Ctx) error {
	var in dto.SetFieldRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	snap, err := h.svc.SetField(GetSessionID(c), c.Params("field"), in.Value)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(toSessionResponse(snap))
}

// AddLineItem godoc
// @Summary      Agregar línea
// @Description  Agrega al final una línea con cantidad 1, unidad PC y precio 0.
// @Tags         line-items
// @Produce      json
// @Param        id   path      string  true  "id de sesión"
// @Success      201  {object}  dto.LineItemResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sessions/{id}/line-items [post]
func (h *SessionHandler) AddLineItem(c *fiber.Ctx) error {
	item, snap, err := h.svc.AddLineItem(GetSessionID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.LineItemResponse{Item: item, Session: toSessionResponse(snap)})
}

// UpdateLineItem godoc
// @Summary      Editar línea
// @Description  Cambio parcial; los campos ausentes no cambian. Un itemId desconocido no cambia nada.
// @Tags         line-items
// @Accept       json
// @Produce      json
// @Param        id      path      string                     true  "id de sesión"
// @Param        itemId  path      string                     true  "id de línea"
// @Param        body    body      dto.UpdateLineItemRequest  true  "campos a cambiar"
// @Success      200     {object}  dto.SessionResponse
// @Failure      400     {object}  dto.ErrorResponse
// @Failure      404     {object}  dto.ErrorResponse
// @Router       /api/sessions/{id}/line-items/{itemId} [patch]
func (h *SessionHandler) UpdateLineItem(c *fiber.Ctx) error {
	var in dto.UpdateLineItemRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	snap, err := h.svc.UpdateLineItem(GetSessionID(c), c.Params("itemId"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(toSessionResponse(snap))
}

// RemoveLineItem godoc
// @Summary      Quitar línea
// @Tags         line-items
// @Produce      json
// @Param        id      path      string  true  "id de sesión"
// @Param        itemId  path      string  true  "id de línea"
// @Success      200     {object}  dto.SessionResponse
// @Failure      404     {object}  dto.ErrorResponse
// @Failure      409     {object}  dto.ErrorResponse  "es la última línea"
// @Router       /api/sessions/{id}/line-items/{itemId} [delete]
func (h *SessionHandler) RemoveLineItem(c *fiber.Ctx) error {
	snap, err := h.svc.RemoveLineItem(GetSessionID(c), c.Params("itemId"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(toSessionResponse(snap))
}

// Reset godoc
// @Summary      Reiniciar factura
// @Description  Vuelve a la factura semilla con número, fecha e ids de línea nuevos.
// @Tags         sessions
// @Produce      json
// @Param        id   path      string  true  "id de sesión"
// @Success      200  {object}  dto.SessionResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sessions/{id}/reset [post]
func (h *SessionHandler) Reset(c *fiber.Ctx) error {
	snap, err := h.svc.Reset(GetSessionID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(toSessionResponse(snap))
}

// RegenerateInvoiceNumber godoc
// @Summary      Nuevo número de factura
// @Tags         sessions
// @Produce      json
// @Param        id   path      string  true  "id de sesión"
// @Success      200  {object}  dto.SessionResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sessions/{id}/invoice-number [post]
func (h *SessionHandler) RegenerateInvoiceNumber(c *fiber.Ctx) error {
	snap, err := h.svc.RegenerateInvoiceNumber(GetSessionID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(toSessionResponse(snap))
}

// Totals godoc
// @Summary      Totales
// @Description  Subtotal, impuesto y total redondeados a 2 decimales.
// @Tags         sessions
// @Produce      json
// @Param        id   path      string  true  "id de sesión"
// @Success      200  {object}  entity.InvoiceTotals
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sessions/{id}/totals [get]
func (h *SessionHandler) Totals(c *fiber.Ctx) error {
	snap, err := h.svc.Get(GetSessionID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(snap.Totals)
}

func toSessionResponse(s editor.Snapshot) dto.SessionResponse {
	return dto.SessionResponse{
		ID:      s.ID,
		Locale:  string(s.Locale),
		Invoice: s.Invoice,
		Totals:  s.Totals,
	}
}
