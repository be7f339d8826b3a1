package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/carbosur/inventario-api/internal/application/dto"
	"github.com/carbosur/inventario-api/internal/application/produccion"
	"github.com/carbosur/inventario-api/internal/domain/repository"
)

// ProduccionHandler maneja las peticiones HTTP de producción.
type ProduccionHandler struct {
	uc *produccion.UseCase
}

// NewProduccionHandler construye el handler.
func NewProduccionHandler(uc *produccion.UseCase) *ProduccionHandler {
	return &ProduccionHandler{uc: uc}
}

// Convertir fabrica producto terminado directamente desde kg de un lote.
func (h *ProduccionHandler) Convertir(c *fiber.Ctx) error {
	var in dto.ConvertirProduccionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.LoteOrigenID == "" || in.PresentacionOutID == "" || in.AlmacenID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "lote_origen_id, presentacion_out_id y almacen_id son requeridos"})
	}
	out, err := h.uc.Convertir(c.Context(), usuarioID(c), in)
	if err != nil {
		return responderError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// RegistrarMerma asienta residuo detectado en un lote.
func (h *ProduccionHandler) RegistrarMerma(c *fiber.Ctx) error {
	var in dto.RegistrarMermaRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.LoteID == "" || in.AlmacenID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "lote_id y almacen_id son requeridos"})
	}
	out, err := h.uc.RegistrarMerma(c.Context(), usuarioID(c), in)
	if err != nil {
		return responderError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListarMermas consulta registros de merma con filtros por query string.
func (h *ProduccionHandler) ListarMermas(c *fiber.Ctx) error {
	out, err := h.uc.ListarMermas(c.Context(), repository.MermaFiltro{
		LoteID:         c.Query("lote_id"),
		SoloPendientes: c.QueryBool("pendientes", false),
	})
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(out)
}

// ConvertirMerma transforma una merma pendiente en producto terminado.
func (h *ProduccionHandler) ConvertirMerma(c *fiber.Ctx) error {
	var in dto.ConvertirMermaRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	in.MermaID = c.Params("id")
	if in.PresentacionOutID == "" || in.AlmacenID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "presentacion_out_id y almacen_id son requeridos"})
	}
	out, err := h.uc.ConvertirMerma(c.Context(), usuarioID(c), in)
	if err != nil {
		return responderError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}
