package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ConvertirProduccionRequest fabricación de producto terminado (ej. briquetas)
// a partir de merma de un lote.
type ConvertirProduccionRequest struct {
	LoteOrigenID       string          `json:"lote_origen_id"`
	PresentacionOutID  string          `json:"presentacion_out_id"`
	AlmacenID          string          `json:"almacen_id"`
	UnidadesProducidas decimal.Decimal `json:"unidades_producidas"`
	Descripcion        string          `json:"descripcion,omitempty"`
}

// ConvertirProduccionResponse par de movimientos emitidos por la conversión.
type ConvertirProduccionResponse struct {
	GrupoID      string          `json:"grupo_id"`
	SalidaID     string          `json:"movimiento_salida_id"`
	EntradaID    string          `json:"movimiento_entrada_id"`
	KgConsumidos decimal.Decimal `json:"kg_consumidos"`
	Unidades     decimal.Decimal `json:"unidades_producidas"`
}

// RegistrarMermaRequest residuo detectado en un lote. Los kg salen del
// disponible del lote al registrarse.
type RegistrarMermaRequest struct {
	LoteID      string          `json:"lote_id"`
	AlmacenID   string          `json:"almacen_id"`
	CantidadKg  decimal.Decimal `json:"cantidad_kg"`
	Descripcion string          `json:"descripcion,omitempty"`
}

// MermaResponse registro de merma persistido.
type MermaResponse struct {
	ID            string          `json:"id"`
	LoteID        string          `json:"lote_id"`
	CantidadKg    decimal.Decimal `json:"cantidad_kg"`
	Convertida    bool            `json:"convertida_a_briquetas"`
	FechaRegistro time.Time       `json:"fecha_registro"`
}

// ConvertirMermaRequest conversión de una merma pendiente en producto
// terminado. El ID de la merma viene por la ruta.
type ConvertirMermaRequest struct {
	MermaID           string `json:"-"`
	PresentacionOutID string `json:"presentacion_out_id"`
	AlmacenID         string `json:"almacen_id"`
	Descripcion       string `json:"descripcion,omitempty"`
}

// ConvertirMermaResponse resultado de la conversión de una merma.
type ConvertirMermaResponse struct {
	MermaID        string          `json:"merma_id"`
	GrupoID        string          `json:"grupo_id"`
	EntradaID      string          `json:"movimiento_entrada_id"`
	Unidades       decimal.Decimal `json:"unidades_producidas"`
	KgAprovechados decimal.Decimal `json:"kg_aprovechados"`
}
