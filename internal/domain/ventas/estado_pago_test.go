package ventas_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/carbosur/inventario-api/internal/domain/ventas"
)

func monto(s string) decimal.Decimal {
	m, _ := decimal.NewFromString(s)
	return m
}

func TestDerivarEstadoPago(t *testing.T) {
	casos := []struct {
		nombre string
		total  string
		pagado string
		quiere string
	}{
		{"sin pagos", "360.00", "0", ventas.EstadoPendiente},
		{"abono parcial", "360.00", "200.00", ventas.EstadoParcial},
		{"pago completo en dos abonos", "360.00", "360.00", ventas.EstadoPagado},
		{"sobrepago tolerado", "360.00", "400.00", ventas.EstadoPagado},
		{"residuo de redondeo cuenta como pagado", "100.00", "99.9995", ventas.EstadoPagado},
		{"casi todo pagado sigue parcial", "100.00", "99.50", ventas.EstadoParcial},
	}

	for _, c := range casos {
		t.Run(c.nombre, func(t *testing.T) {
			estado := ventas.DerivarEstadoPago(monto(c.total), monto(c.pagado))
			assert.Equal(t, c.quiere, estado)
		})
	}
}

// El acumulado solo crece, así que el estado solo puede avanzar
// pendiente -> parcial -> pagado.
func TestDerivarEstadoPago_SoloAvanza(t *testing.T) {
	total := monto("360.00")
	pagado := decimal.Zero

	orden := map[string]int{
		ventas.EstadoPendiente: 0,
		ventas.EstadoParcial:   1,
		ventas.EstadoPagado:    2,
	}

	anterior := ventas.DerivarEstadoPago(total, pagado)
	for _, abono := range []string{"200.00", "160.00", "50.00"} {
		pagado = pagado.Add(monto(abono))
		actual := ventas.DerivarEstadoPago(total, pagado)
		assert.GreaterOrEqual(t, orden[actual], orden[anterior])
		anterior = actual
	}
	assert.Equal(t, ventas.EstadoPagado, anterior)
}
