package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Lote representa una partida de materia prima con trazabilidad propia.
// CantidadDisponibleKg solo se decrementa por movimientos que lo referencian;
// nunca se incrementa salvo por corrección explícita o producción con lote destino.
type Lote struct {
	ID                   string
	Proveedor            string
	Descripcion          string
	PesoHumedoKg         decimal.Decimal // peso inicial, recién ingresado
	PesoSecoKg           decimal.Decimal // peso real después del secado
	CantidadDisponibleKg decimal.Decimal
	FechaIngreso         time.Time
	CreatedAt            time.Time
	UpdatedAt            time.Time
}
