package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de presentación según el proceso del carbón.
const (
	TipoBruto     = "bruto"     // materia prima sin procesar
	TipoProcesado = "procesado" // carbón clasificado y empacado
	TipoMerma     = "merma"     // residuo recuperable
	TipoBriqueta  = "briqueta"  // producto fabricado a partir de merma
	TipoDetalle   = "detalle"   // venta al menudeo
)

// Presentacion representa una forma empacada y vendible del producto
// (ej: "Saco 20kg", "Bolsa 5kg Supermercado"). Una vez referenciada por un
// movimiento es inmutable; se desactiva con el flag Activo, nunca se borra.
type Presentacion struct {
	ID          string
	Nombre      string
	CapacidadKg decimal.Decimal // peso neto del contenido
	Tipo        string
	PrecioVenta decimal.Decimal
	Activo      bool
	URLFoto     string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// UsaLotes indica si la presentación se descuenta contra lotes de materia
// prima (FIFO) o directamente contra la posición sin lote.
func (p *Presentacion) UsaLotes() bool {
	return p.Tipo == TipoBruto || p.Tipo == TipoProcesado
}
