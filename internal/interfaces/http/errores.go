package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/carbosur/inventario-api/internal/application/dto"
	"github.com/carbosur/inventario-api/internal/domain"
)

// responderError traduce la taxonomía de errores del dominio a respuestas
// HTTP uniformes. Los handlers delegan aquí todo error que no manejan solos.
func responderError(c *fiber.Ctx, err error) error {
	var stockErr *domain.StockInsuficienteError
	if errors.As(err, &stockErr) {
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
			Code:     "STOCK_INSUFICIENTE",
			Message:  stockErr.Error(),
			Faltante: stockErr.Faltante().String(),
		})
	}

	switch {
	case errors.Is(err, domain.ErrNoEncontrado):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "recurso no encontrado"})
	case errors.Is(err, domain.ErrTotalNoCoincide):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "TOTAL_NO_COINCIDE", Message: err.Error()})
	case errors.Is(err, domain.ErrMontoInvalido):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MONTO_INVALIDO", Message: err.Error()})
	case errors.Is(err, domain.ErrEntradaInvalida):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrDuplicado):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: err.Error()})
	case errors.Is(err, domain.ErrContencion):
		// La transacción perdió contra otra concurrente; el cliente puede reintentar.
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: "RETRY", Message: "conflicto de concurrencia, reintente"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}

// usuarioID identifica al operador de la petición. Sin capa de autenticación,
// viene por header; vacío queda como "sistema".
func usuarioID(c *fiber.Ctx) string {
	if id := c.Get("X-Usuario-ID"); id != "" {
		return id
	}
	return "sistema"
}
