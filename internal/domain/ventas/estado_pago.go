package ventas

import "github.com/shopspring/decimal"

// Estados de pago de una venta. La máquina solo avanza:
// pendiente -> parcial -> pagado; pagado es terminal.
const (
	EstadoPendiente = "pendiente"
	EstadoParcial   = "parcial"
	EstadoPagado    = "pagado"
)

// toleranciaSaldo absorbe residuos de redondeo al comparar saldos.
var toleranciaSaldo = decimal.NewFromFloat(0.001)

// DerivarEstadoPago deriva el estado de pago de una venta a partir de su total
// y del acumulado pagado. El sobrepago se tolera (estado pagado); la decisión
// de negocio sobre el excedente queda fuera de este motor.
func DerivarEstadoPago(total, pagado decimal.Decimal) string {
	saldo := total.Sub(pagado)
	switch {
	case saldo.Abs().LessThanOrEqual(toleranciaSaldo), saldo.IsNegative():
		return EstadoPagado
	case pagado.GreaterThan(decimal.Zero):
		return EstadoParcial
	default:
		return EstadoPendiente
	}
}
