package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CrearPresentacionRequest alta de una presentación del catálogo.
type CrearPresentacionRequest struct {
	Nombre      string          `json:"nombre"`
	CapacidadKg decimal.Decimal `json:"capacidad_kg"`
	Tipo        string          `json:"tipo"`
	PrecioVenta decimal.Decimal `json:"precio_venta"`
	URLFoto     string          `json:"url_foto,omitempty"`
}

// CrearAlmacenRequest alta de almacén.
type CrearAlmacenRequest struct {
	Nombre    string `json:"nombre"`
	Direccion string `json:"direccion,omitempty"`
	Ciudad    string `json:"ciudad,omitempty"`
}

// CrearLoteRequest ingreso de un lote de materia prima.
type CrearLoteRequest struct {
	Proveedor    string          `json:"proveedor,omitempty"`
	Descripcion  string          `json:"descripcion,omitempty"`
	PesoHumedoKg decimal.Decimal `json:"peso_humedo_kg"`
	PesoSecoKg   decimal.Decimal `json:"peso_seco_kg,omitempty"`
	FechaIngreso *time.Time      `json:"fecha_ingreso,omitempty"`
}

// PresentacionResponse representación de una presentación.
type PresentacionResponse struct {
	ID          string          `json:"id"`
	Nombre      string          `json:"nombre"`
	CapacidadKg decimal.Decimal `json:"capacidad_kg"`
	Tipo        string          `json:"tipo"`
	PrecioVenta decimal.Decimal `json:"precio_venta"`
	Activo      bool            `json:"activo"`
	URLFoto     string          `json:"url_foto,omitempty"`
}

// AlmacenResponse representación de un almacén.
type AlmacenResponse struct {
	ID        string `json:"id"`
	Nombre    string `json:"nombre"`
	Direccion string `json:"direccion,omitempty"`
	Ciudad    string `json:"ciudad,omitempty"`
}

// LoteResponse representación de un lote.
type LoteResponse struct {
	ID                   string          `json:"id"`
	Proveedor            string          `json:"proveedor,omitempty"`
	Descripcion          string          `json:"descripcion,omitempty"`
	PesoHumedoKg         decimal.Decimal `json:"peso_humedo_kg"`
	PesoSecoKg           decimal.Decimal `json:"peso_seco_kg"`
	CantidadDisponibleKg decimal.Decimal `json:"cantidad_disponible_kg"`
	FechaIngreso         time.Time       `json:"fecha_ingreso"`
}

// PosicionBajoMinimoResponse posición por debajo de su stock mínimo.
type PosicionBajoMinimoResponse struct {
	PresentacionID string          `json:"presentacion_id"`
	AlmacenID      string          `json:"almacen_id"`
	LoteID         *string         `json:"lote_id,omitempty"`
	Cantidad       decimal.Decimal `json:"cantidad"`
	StockMinimo    decimal.Decimal `json:"stock_minimo"`
}
