package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de pago de una venta.
const (
	PagoContado = "contado"
	PagoCredito = "credito"
)

// Venta representa una venta a un cliente desde un almacén. Los detalles son
// propiedad exclusiva de la venta (se eliminan en cascada con ella).
type Venta struct {
	ID              string
	ClienteID       string
	AlmacenID       string
	VendedorID      string
	Fecha           time.Time
	Total           decimal.Decimal
	TipoPago        string // contado | credito
	EstadoPago      string // pendiente | parcial | pagado
	ConsumoDiarioKg *decimal.Decimal
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
