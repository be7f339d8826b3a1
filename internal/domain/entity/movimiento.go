package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Direcciones de movimiento.
const (
	MovimientoEntrada = "entrada"
	MovimientoSalida  = "salida"
)

// Tipos de operación que originan un movimiento. Los reportes usan este
// marcador para distinguir producción propia de stock comprado.
const (
	OperacionManual        = "manual"
	OperacionVenta         = "venta"
	OperacionEnsamblaje    = "ensamblaje"
	OperacionTransferencia = "transferencia"
	OperacionAjuste        = "ajuste"
	OperacionMerma         = "merma"
)

// Movimiento es una entrada inmutable del libro de inventario. Es la fuente
// de verdad: la cantidad de cada posición de Inventario se deriva de aquí.
// Nunca se actualiza ni se borra.
type Movimiento struct {
	ID             string
	GrupoID        string  // agrupa los movimientos de una misma operación (venta, ensamblaje, traslado)
	Tipo           string  // entrada | salida
	PresentacionID *string // nil cuando la salida es materia prima en kg contra un lote
	AlmacenID      string
	LoteID         *string
	Cantidad       decimal.Decimal // siempre > 0; el signo lo da Tipo
	Fecha          time.Time
	Motivo         string
	TipoOperacion  string
	UsuarioID      string
	CreatedAt      time.Time
}

// Firmada devuelve la cantidad con signo: positiva para entradas, negativa
// para salidas. Útil para recomputar posiciones desde el log.
func (m *Movimiento) Firmada() decimal.Decimal {
	if m.Tipo == MovimientoSalida {
		return m.Cantidad.Neg()
	}
	return m.Cantidad
}
