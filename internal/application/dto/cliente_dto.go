package dto

import "time"

// CrearClienteRequest alta de cliente.
type CrearClienteRequest struct {
	Nombre    string `json:"nombre"`
	Telefono  string `json:"telefono,omitempty"`
	Direccion string `json:"direccion,omitempty"`
	Ciudad    string `json:"ciudad,omitempty"`
}

// ClienteResponse representación de un cliente.
type ClienteResponse struct {
	ID                   string     `json:"id"`
	Nombre               string     `json:"nombre"`
	Telefono             string     `json:"telefono,omitempty"`
	Ciudad               string     `json:"ciudad,omitempty"`
	FrecuenciaCompraDias *int       `json:"frecuencia_compra_dias,omitempty"`
	UltimaFechaCompra    *time.Time `json:"ultima_fecha_compra,omitempty"`
	ProximaCompraManual  *time.Time `json:"proxima_compra_manual,omitempty"`
}

// ProyeccionResponse proyección de próxima compra de un cliente.
type ProyeccionResponse struct {
	ClienteID     string     `json:"cliente_id"`
	ProximaCompra *time.Time `json:"proxima_compra,omitempty"`
	DiasAtraso    int        `json:"dias_atraso"`
	Estado        string     `json:"estado"`
}

// ProximaManualRequest fija o limpia la fecha manual de próxima compra.
type ProximaManualRequest struct {
	Fecha *time.Time `json:"fecha"`
}
