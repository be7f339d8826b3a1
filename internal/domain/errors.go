package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Errores de dominio (sin dependencias de infraestructura).
var (
	ErrNoEncontrado      = errors.New("recurso no encontrado")
	ErrEntradaInvalida   = errors.New("entrada inválida")
	ErrDuplicado         = errors.New("recurso duplicado")
	ErrStockInsuficiente = errors.New("stock insuficiente")
	ErrTotalNoCoincide   = errors.New("el total declarado no coincide con la suma de los detalles")
	ErrMontoInvalido     = errors.New("el monto o la cantidad debe ser mayor a cero")
	// ErrContencion indica un conflicto de bloqueo/serialización sobre una fila
	// de inventario. No es un error de negocio: la operación completa puede reintentarse.
	ErrContencion = errors.New("contención sobre el inventario, reintentar la operación")
)

// StockInsuficienteError detalla un faltante de stock: qué se pidió, cuánto
// había y sobre qué posición (presentación o lote). Envuelve ErrStockInsuficiente
// para que errors.Is siga funcionando en los handlers.
type StockInsuficienteError struct {
	PresentacionID string
	LoteID         string
	Solicitado     decimal.Decimal
	Disponible     decimal.Decimal
}

func (e *StockInsuficienteError) Error() string {
	if e.LoteID != "" {
		return fmt.Sprintf("stock insuficiente en lote %s: solicitado %s, disponible %s",
			e.LoteID, e.Solicitado, e.Disponible)
	}
	return fmt.Sprintf("stock insuficiente para presentación %s: solicitado %s, disponible %s",
		e.PresentacionID, e.Solicitado, e.Disponible)
}

func (e *StockInsuficienteError) Unwrap() error { return ErrStockInsuficiente }

// Faltante devuelve cuánto faltó para satisfacer la solicitud.
func (e *StockInsuficienteError) Faltante() decimal.Decimal {
	return e.Solicitado.Sub(e.Disponible)
}
