package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/carbosur/inventario-api/internal/application/dto"
	"github.com/carbosur/inventario-api/internal/application/pedidos"
	"github.com/carbosur/inventario-api/internal/domain/repository"
)

// PedidoHandler maneja las peticiones HTTP de pedidos.
type PedidoHandler struct {
	uc *pedidos.UseCase
}

// NewPedidoHandler construye el handler.
func NewPedidoHandler(uc *pedidos.UseCase) *PedidoHandler {
	return &PedidoHandler{uc: uc}
}

// Crear registra un pedido programado.
func (h *PedidoHandler) Crear(c *fiber.Ctx) error {
	var in dto.CrearPedidoRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.ClienteID == "" || in.AlmacenID == "" || len(in.Detalles) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "cliente_id, almacen_id y detalles son requeridos"})
	}
	out, err := h.uc.Crear(c.Context(), usuarioID(c), in)
	if err != nil {
		return responderError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID devuelve un pedido con sus detalles.
func (h *PedidoHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(out)
}

// List consulta pedidos con filtros por query string.
func (h *PedidoHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.Context(), repository.PedidoFiltro{
		ClienteID: c.Query("cliente_id"),
		AlmacenID: c.Query("almacen_id"),
		Estado:    c.Query("estado"),
		Limit:     c.QueryInt("limit", 50),
		Offset:    c.QueryInt("offset", 0),
	})
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(out)
}

// Confirmar pasa el pedido a confirmado.
func (h *PedidoHandler) Confirmar(c *fiber.Ctx) error {
	if err := h.uc.Confirmar(c.Context(), c.Params("id")); err != nil {
		return responderError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Cancelar cancela un pedido aún no entregado.
func (h *PedidoHandler) Cancelar(c *fiber.Ctx) error {
	if err := h.uc.Cancelar(c.Context(), c.Params("id")); err != nil {
		return responderError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Entregar convierte el pedido en una venta.
func (h *PedidoHandler) Entregar(c *fiber.Ctx) error {
	var in dto.EntregarPedidoRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Entregar(c.Context(), usuarioID(c), c.Params("id"), in)
	if err != nil {
		return responderError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}
