package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// PedidoDetalleRequest línea a reservar. PrecioEstimado en cero toma el
// precio de lista de la presentación.
type PedidoDetalleRequest struct {
	PresentacionID string          `json:"presentacion_id"`
	Cantidad       decimal.Decimal `json:"cantidad"`
	PrecioEstimado decimal.Decimal `json:"precio_estimado"`
}

// CrearPedidoRequest reserva de mercadería con fecha de entrega comprometida.
type CrearPedidoRequest struct {
	ClienteID    string                 `json:"cliente_id"`
	AlmacenID    string                 `json:"almacen_id"`
	FechaEntrega time.Time              `json:"fecha_entrega"`
	Notas        string                 `json:"notas,omitempty"`
	Detalles     []PedidoDetalleRequest `json:"detalles"`
}

// PedidoDetalleResponse línea reservada.
type PedidoDetalleResponse struct {
	ID             string          `json:"id"`
	PresentacionID string          `json:"presentacion_id"`
	Cantidad       decimal.Decimal `json:"cantidad"`
	PrecioEstimado decimal.Decimal `json:"precio_estimado"`
	TotalLinea     decimal.Decimal `json:"total_linea"`
}

// PedidoResponse pedido persistido. TotalEstimado y Detalles solo se llenan
// en la consulta individual.
type PedidoResponse struct {
	ID            string                  `json:"id"`
	ClienteID     string                  `json:"cliente_id"`
	AlmacenID     string                  `json:"almacen_id"`
	VendedorID    string                  `json:"vendedor_id"`
	FechaCreacion time.Time               `json:"fecha_creacion"`
	FechaEntrega  time.Time               `json:"fecha_entrega"`
	Estado        string                  `json:"estado"`
	Notas         string                  `json:"notas,omitempty"`
	VentaID       *string                 `json:"venta_id,omitempty"`
	TotalEstimado decimal.Decimal         `json:"total_estimado"`
	Detalles      []PedidoDetalleResponse `json:"detalles,omitempty"`
}

// EntregarPedidoRequest condiciones de pago al convertir el pedido en venta.
type EntregarPedidoRequest struct {
	TipoPago        string           `json:"tipo_pago"`
	ConsumoDiarioKg *decimal.Decimal `json:"consumo_diario_kg,omitempty"`
}

// EntregarPedidoResponse pedido entregado y la venta que generó.
type EntregarPedidoResponse struct {
	PedidoID string         `json:"pedido_id"`
	Estado   string         `json:"estado"`
	Venta    *VentaResponse `json:"venta"`
}
