package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Inventario representa la posición de stock de una presentación en un almacén,
// opcionalmente acotada a un lote. La cantidad es una vista materializada del
// log de movimientos: siempre debe poder recomputarse sumando movimientos con
// signo. Se crea de forma perezosa con el primer movimiento.
type Inventario struct {
	ID                   string
	PresentacionID       string
	AlmacenID            string
	LoteID               *string // nil para posiciones sin lote (SKUs terminados)
	Cantidad             decimal.Decimal
	StockMinimo          decimal.Decimal
	CreatedAt            time.Time
	UltimaActualizacion  time.Time
}
