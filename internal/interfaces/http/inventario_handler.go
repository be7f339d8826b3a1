package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/carbosur/inventario-api/internal/application/dto"
	"github.com/carbosur/inventario-api/internal/application/inventario"
	"github.com/carbosur/inventario-api/internal/domain/entity"
	"github.com/carbosur/inventario-api/internal/domain/repository"
)

// InventarioHandler maneja las peticiones HTTP del libro de inventario.
type InventarioHandler struct {
	uc *inventario.MovimientosUseCase
}

// NewInventarioHandler construye el handler.
func NewInventarioHandler(uc *inventario.MovimientosUseCase) *InventarioHandler {
	return &InventarioHandler{uc: uc}
}

// RegistrarMovimiento registra una entrada o salida manual.
func (h *InventarioHandler) RegistrarMovimiento(c *fiber.Ctx) error {
	var in dto.RegistrarMovimientoRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.PresentacionID == "" || in.AlmacenID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "presentacion_id y almacen_id son requeridos"})
	}
	mov, err := h.uc.RegistrarMovimiento(c.Context(), inventario.MovimientoInput{
		Tipo:           in.Tipo,
		PresentacionID: in.PresentacionID,
		AlmacenID:      in.AlmacenID,
		LoteID:         in.LoteID,
		Cantidad:       in.Cantidad,
		Motivo:         in.Motivo,
		UsuarioID:      usuarioID(c),
	})
	if err != nil {
		return responderError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(movimientoAResponse(mov))
}

// ListarMovimientos consulta el historial con filtros por query string.
func (h *InventarioHandler) ListarMovimientos(c *fiber.Ctx) error {
	f := repository.MovimientoFiltro{
		AlmacenID:      c.Query("almacen_id"),
		PresentacionID: c.Query("presentacion_id"),
		LoteID:         c.Query("lote_id"),
		TipoOperacion:  c.Query("tipo_operacion"),
		Limit:          c.QueryInt("limit", 50),
		Offset:         c.QueryInt("offset", 0),
	}
	if desde := c.Query("desde"); desde != "" {
		t, err := time.Parse(time.RFC3339, desde)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "desde debe ser RFC3339"})
		}
		f.Desde = &t
	}
	if hasta := c.Query("hasta"); hasta != "" {
		t, err := time.Parse(time.RFC3339, hasta)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "hasta debe ser RFC3339"})
		}
		f.Hasta = &t
	}

	movs, err := h.uc.ListarMovimientos(c.Context(), f)
	if err != nil {
		return responderError(c, err)
	}
	out := make([]*dto.MovimientoResponse, 0, len(movs))
	for _, m := range movs {
		out = append(out, movimientoAResponse(m))
	}
	return c.JSON(out)
}

// ObtenerStock devuelve la cantidad total de una presentación en un almacén.
func (h *InventarioHandler) ObtenerStock(c *fiber.Ctx) error {
	presentacionID := c.Query("presentacion_id")
	almacenID := c.Query("almacen_id")
	if presentacionID == "" || almacenID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "presentacion_id y almacen_id son requeridos"})
	}
	total, err := h.uc.ObtenerStock(c.Context(), presentacionID, almacenID)
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(dto.StockResponse{PresentacionID: presentacionID, AlmacenID: almacenID, Cantidad: total})
}

// BajoMinimo lista las posiciones por debajo de su stock mínimo.
func (h *InventarioHandler) BajoMinimo(c *fiber.Ctx) error {
	almacenID := c.Query("almacen_id")
	if almacenID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "almacen_id es requerido"})
	}
	posiciones, err := h.uc.ListarBajoMinimo(c.Context(), almacenID)
	if err != nil {
		return responderError(c, err)
	}
	out := make([]dto.PosicionBajoMinimoResponse, 0, len(posiciones))
	for _, p := range posiciones {
		out = append(out, dto.PosicionBajoMinimoResponse{
			PresentacionID: p.PresentacionID,
			AlmacenID:      p.AlmacenID,
			LoteID:         p.LoteID,
			Cantidad:       p.Cantidad,
			StockMinimo:    p.StockMinimo,
		})
	}
	return c.JSON(out)
}

// Transferir traslada stock entre almacenes.
func (h *InventarioHandler) Transferir(c *fiber.Ctx) error {
	var in dto.TransferirRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.PresentacionID == "" || in.AlmacenOrigenID == "" || in.AlmacenDestID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "presentacion_id, almacen_origen_id y almacen_destino_id son requeridos"})
	}
	grupoID, err := h.uc.Transferir(c.Context(), inventario.TransferirInput{
		PresentacionID:  in.PresentacionID,
		AlmacenOrigenID: in.AlmacenOrigenID,
		AlmacenDestID:   in.AlmacenDestID,
		LoteID:          in.LoteID,
		Cantidad:        in.Cantidad,
		Motivo:          in.Motivo,
		UsuarioID:       usuarioID(c),
	})
	if err != nil {
		return responderError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"grupo_id": grupoID})
}

func movimientoAResponse(m *entity.Movimiento) *dto.MovimientoResponse {
	return &dto.MovimientoResponse{
		ID:             m.ID,
		GrupoID:        m.GrupoID,
		Tipo:           m.Tipo,
		PresentacionID: m.PresentacionID,
		AlmacenID:      m.AlmacenID,
		LoteID:         m.LoteID,
		Cantidad:       m.Cantidad,
		Fecha:          m.Fecha,
		Motivo:         m.Motivo,
		TipoOperacion:  m.TipoOperacion,
	}
}
