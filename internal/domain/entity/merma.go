package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Merma registro de residuo detectado en un lote. Los kg salen del
// disponible del lote al registrarse; ConvertidaABriquetas marca si ese
// residuo ya se transformó en producto terminado.
type Merma struct {
	ID                   string
	LoteID               string
	CantidadKg           decimal.Decimal
	ConvertidaABriquetas bool
	FechaRegistro        time.Time
	UsuarioID            string
	CreatedAt            time.Time
}
