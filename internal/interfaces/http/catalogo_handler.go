package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/carbosur/inventario-api/internal/application/catalogo"
	"github.com/carbosur/inventario-api/internal/application/dto"
)

// CatalogoHandler maneja las peticiones HTTP del catálogo: presentaciones,
// almacenes y lotes.
type CatalogoHandler struct {
	uc *catalogo.UseCase
}

// NewCatalogoHandler construye el handler.
func NewCatalogoHandler(uc *catalogo.UseCase) *CatalogoHandler {
	return &CatalogoHandler{uc: uc}
}

// CrearPresentacion da de alta una presentación.
func (h *CatalogoHandler) CrearPresentacion(c *fiber.Ctx) error {
	var in dto.CrearPresentacionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.CrearPresentacion(c.Context(), in)
	if err != nil {
		return responderError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetPresentacion obtiene una presentación por ID.
func (h *CatalogoHandler) GetPresentacion(c *fiber.Ctx) error {
	out, err := h.uc.GetPresentacion(c.Context(), c.Params("id"))
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(out)
}

// ListPresentaciones lista el catálogo de presentaciones.
func (h *CatalogoHandler) ListPresentaciones(c *fiber.Ctx) error {
	soloActivas := c.QueryBool("solo_activas", true)
	out, err := h.uc.ListPresentaciones(c.Context(), soloActivas)
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(out)
}

// DesactivarPresentacion marca una presentación como inactiva.
func (h *CatalogoHandler) DesactivarPresentacion(c *fiber.Ctx) error {
	if err := h.uc.DesactivarPresentacion(c.Context(), c.Params("id")); err != nil {
		return responderError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// CrearAlmacen da de alta un almacén.
func (h *CatalogoHandler) CrearAlmacen(c *fiber.Ctx) error {
	var in dto.CrearAlmacenRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.CrearAlmacen(c.Context(), in)
	if err != nil {
		return responderError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListAlmacenes lista los almacenes.
func (h *CatalogoHandler) ListAlmacenes(c *fiber.Ctx) error {
	out, err := h.uc.ListAlmacenes(c.Context())
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(out)
}

// CrearLote registra el ingreso de un lote de materia prima.
func (h *CatalogoHandler) CrearLote(c *fiber.Ctx) error {
	var in dto.CrearLoteRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.CrearLote(c.Context(), in)
	if err != nil {
		return responderError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetLote obtiene un lote por ID.
func (h *CatalogoHandler) GetLote(c *fiber.Ctx) error {
	out, err := h.uc.GetLote(c.Context(), c.Params("id"))
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(out)
}

// ListLotes lista los lotes.
func (h *CatalogoHandler) ListLotes(c *fiber.Ctx) error {
	out, err := h.uc.ListLotes(c.Context())
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(out)
}
