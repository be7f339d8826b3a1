package entity

import "github.com/shopspring/decimal"

// VentaDetalle es una línea de una venta con el precio al momento de vender.
// El consumo por lote de la línea queda registrado en movimientos; LoteID solo
// se llena cuando la línea salió completa de un único lote.
type VentaDetalle struct {
	ID             string
	VentaID        string
	PresentacionID string
	LoteID         *string
	Cantidad       decimal.Decimal
	PrecioUnitario decimal.Decimal
}

// TotalLinea devuelve cantidad × precio unitario.
func (d *VentaDetalle) TotalLinea() decimal.Decimal {
	return d.Cantidad.Mul(d.PrecioUnitario)
}
