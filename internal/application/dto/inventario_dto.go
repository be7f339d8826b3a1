package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RegistrarMovimientoRequest entrada o salida manual de inventario.
type RegistrarMovimientoRequest struct {
	Tipo           string          `json:"tipo"` // entrada | salida
	PresentacionID string          `json:"presentacion_id"`
	AlmacenID      string          `json:"almacen_id"`
	LoteID         *string         `json:"lote_id,omitempty"`
	Cantidad       decimal.Decimal `json:"cantidad"`
	Motivo         string          `json:"motivo"`
}

// TransferirRequest traslado de stock entre almacenes.
type TransferirRequest struct {
	PresentacionID  string          `json:"presentacion_id"`
	AlmacenOrigenID string          `json:"almacen_origen_id"`
	AlmacenDestID   string          `json:"almacen_destino_id"`
	LoteID          *string         `json:"lote_id,omitempty"`
	Cantidad        decimal.Decimal `json:"cantidad"`
	Motivo          string          `json:"motivo"`
}

// MovimientoResponse representación de un movimiento del libro.
type MovimientoResponse struct {
	ID             string          `json:"id"`
	GrupoID        string          `json:"grupo_id"`
	Tipo           string          `json:"tipo"`
	PresentacionID *string         `json:"presentacion_id,omitempty"`
	AlmacenID      string          `json:"almacen_id"`
	LoteID         *string         `json:"lote_id,omitempty"`
	Cantidad       decimal.Decimal `json:"cantidad"`
	Fecha          time.Time       `json:"fecha"`
	Motivo         string          `json:"motivo"`
	TipoOperacion  string          `json:"tipo_operacion"`
}

// StockResponse cantidad total de una presentación en un almacén.
type StockResponse struct {
	PresentacionID string          `json:"presentacion_id"`
	AlmacenID      string          `json:"almacen_id"`
	Cantidad       decimal.Decimal `json:"cantidad"`
}
