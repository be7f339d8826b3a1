package entity

import "time"

// Cliente representa un comprador recurrente. FrecuenciaCompraDias y
// UltimaFechaCompra alimentan la proyección de próxima compra;
// ProximaCompraManual, si existe, tiene prioridad absoluta sobre lo calculado.
type Cliente struct {
	ID                   string
	Nombre               string
	Telefono             string
	Direccion            string
	Ciudad               string
	FrecuenciaCompraDias *int
	UltimaFechaCompra    *time.Time
	ProximaCompraManual  *time.Time
	UltimaFechaContacto  *time.Time
	CreatedAt            time.Time
	UpdatedAt            time.Time
}
