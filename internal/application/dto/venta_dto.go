package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CrearVentaDetalleRequest línea de una venta. PrecioUnitario en cero toma el
// precio de lista de la presentación.
type CrearVentaDetalleRequest struct {
	PresentacionID string          `json:"presentacion_id"`
	Cantidad       decimal.Decimal `json:"cantidad"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario"`
}

// CrearVentaRequest solicitud de venta. TotalDeclarado es opcional; si viene,
// debe coincidir con la suma de las líneas o la venta se rechaza.
type CrearVentaRequest struct {
	ClienteID       string                     `json:"cliente_id"`
	AlmacenID       string                     `json:"almacen_id"`
	TipoPago        string                     `json:"tipo_pago"`
	Detalles        []CrearVentaDetalleRequest `json:"detalles"`
	TotalDeclarado  *decimal.Decimal           `json:"total_declarado,omitempty"`
	ConsumoDiarioKg *decimal.Decimal           `json:"consumo_diario_kg,omitempty"`
}

// VentaDetalleResponse línea persistida.
type VentaDetalleResponse struct {
	ID             string          `json:"id"`
	PresentacionID string          `json:"presentacion_id"`
	LoteID         *string         `json:"lote_id,omitempty"`
	Cantidad       decimal.Decimal `json:"cantidad"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario"`
	TotalLinea     decimal.Decimal `json:"total_linea"`
}

// VentaResponse venta persistida con sus líneas.
type VentaResponse struct {
	ID         string                 `json:"id"`
	ClienteID  string                 `json:"cliente_id"`
	AlmacenID  string                 `json:"almacen_id"`
	VendedorID string                 `json:"vendedor_id"`
	Fecha      time.Time              `json:"fecha"`
	Total      decimal.Decimal        `json:"total"`
	TipoPago   string                 `json:"tipo_pago"`
	EstadoPago string                 `json:"estado_pago"`
	Detalles   []VentaDetalleResponse `json:"detalles"`
}

// AplicarPagoRequest abono contra una venta.
type AplicarPagoRequest struct {
	Monto      decimal.Decimal `json:"monto"`
	MetodoPago string          `json:"metodo_pago"`
	Referencia string          `json:"referencia,omitempty"`
}

// PagoResponse estado de pago de la venta tras aplicar el abono.
type PagoResponse struct {
	PagoID         string          `json:"pago_id"`
	VentaID        string          `json:"venta_id"`
	EstadoPago     string          `json:"estado_pago"`
	TotalPagado    decimal.Decimal `json:"total_pagado"`
	SaldoPendiente decimal.Decimal `json:"saldo_pendiente"`
}
