package repository

import (
	"github.com/shopspring/decimal"

	"github.com/carbosur/inventario-api/internal/domain/entity"
)

// PagoRepository acceso a pagos.
type PagoRepository interface {
	Create(p *entity.Pago) error
	// TotalPagado suma los pagos registrados de una venta.
	TotalPagado(ventaID string) (decimal.Decimal, error)
	ListByVenta(ventaID string) ([]*entity.Pago, error)
}
