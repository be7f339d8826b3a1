package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de un pedido.
const (
	PedidoProgramado = "programado"
	PedidoConfirmado = "confirmado"
	PedidoEntregado  = "entregado"
	PedidoCancelado  = "cancelado"
)

// Pedido es una reserva de mercadería con fecha de entrega comprometida.
// No toca stock: el descuento ocurre recién al entregarse, cuando el pedido
// se convierte en venta.
type Pedido struct {
	ID            string
	ClienteID     string
	AlmacenID     string
	VendedorID    string
	FechaCreacion time.Time
	FechaEntrega  time.Time
	Estado        string
	Notas         string
	VentaID       *string // venta generada al entregar
	UpdatedAt     time.Time
}

// PedidoDetalle línea reservada con su precio estimado al momento del pedido.
type PedidoDetalle struct {
	ID             string
	PedidoID       string
	PresentacionID string
	Cantidad       decimal.Decimal
	PrecioEstimado decimal.Decimal
}

// TotalLinea cantidad × precio estimado.
func (d *PedidoDetalle) TotalLinea() decimal.Decimal {
	return d.Cantidad.Mul(d.PrecioEstimado)
}
