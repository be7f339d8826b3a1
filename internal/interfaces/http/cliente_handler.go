package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/carbosur/inventario-api/internal/application/clientes"
	"github.com/carbosur/inventario-api/internal/application/dto"
)

// ClienteHandler maneja las peticiones HTTP de clientes y su proyección de compra.
type ClienteHandler struct {
	uc *clientes.UseCase
}

// NewClienteHandler construye el handler.
func NewClienteHandler(uc *clientes.UseCase) *ClienteHandler {
	return &ClienteHandler{uc: uc}
}

// Crear da de alta un cliente.
func (h *ClienteHandler) Crear(c *fiber.Ctx) error {
	var in dto.CrearClienteRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Nombre == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "nombre es requerido"})
	}
	out, err := h.uc.Crear(c.Context(), in)
	if err != nil {
		return responderError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID obtiene un cliente por ID.
func (h *ClienteHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(out)
}

// List lista clientes con filtros por nombre y ciudad.
func (h *ClienteHandler) List(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 20)
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	offset := c.QueryInt("offset", 0)
	if offset < 0 {
		offset = 0
	}
	out, err := h.uc.List(c.Context(), c.Query("nombre"), c.Query("ciudad"), limit, offset)
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(out)
}

// Proyeccion devuelve la proyección de próxima compra del cliente.
func (h *ClienteHandler) Proyeccion(c *fiber.Ctx) error {
	out, err := h.uc.Proyectar(c.Context(), c.Params("id"))
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(out)
}

// ProximaManual fija o limpia la fecha manual de próxima compra.
func (h *ClienteHandler) ProximaManual(c *fiber.Ctx) error {
	var in dto.ProximaManualRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.uc.FijarProximaManual(c.Context(), c.Params("id"), in.Fecha); err != nil {
		return responderError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
