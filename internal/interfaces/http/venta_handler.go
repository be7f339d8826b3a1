package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/carbosur/inventario-api/internal/application/dto"
	"github.com/carbosur/inventario-api/internal/application/ventas"
)

// VentaHandler maneja las peticiones HTTP de ventas y pagos.
type VentaHandler struct {
	crearUC *ventas.CrearVentaUseCase
	pagoUC  *ventas.AplicarPagoUseCase
}

// NewVentaHandler construye el handler.
func NewVentaHandler(crearUC *ventas.CrearVentaUseCase, pagoUC *ventas.AplicarPagoUseCase) *VentaHandler {
	return &VentaHandler{crearUC: crearUC, pagoUC: pagoUC}
}

// Crear registra una venta descontando stock de forma atómica.
func (h *VentaHandler) Crear(c *fiber.Ctx) error {
	var in dto.CrearVentaRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.ClienteID == "" || in.AlmacenID == "" || len(in.Detalles) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "cliente_id, almacen_id y detalles son requeridos"})
	}
	out, err := h.crearUC.CrearVenta(c.Context(), usuarioID(c), in)
	if err != nil {
		return responderError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID obtiene una venta con sus líneas.
func (h *VentaHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.crearUC.GetVenta(c.Context(), c.Params("id"))
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(out)
}

// AplicarPago registra un abono contra la venta.
func (h *VentaHandler) AplicarPago(c *fiber.Ctx) error {
	var in dto.AplicarPagoRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.pagoUC.AplicarPago(c.Context(), usuarioID(c), c.Params("id"), in)
	if err != nil {
		return responderError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}
