package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Métodos de pago aceptados.
const (
	MetodoEfectivo      = "efectivo"
	MetodoDeposito      = "deposito"
	MetodoTransferencia = "transferencia"
	MetodoTarjeta       = "tarjeta"
	MetodoYapePlin      = "yape_plin"
	MetodoOtro          = "otro"
)

// Pago es un abono contra una venta. Varios pagos pueden aplicar a la misma
// venta; la suma acumulada determina el estado de pago.
type Pago struct {
	ID         string
	VentaID    string
	UsuarioID  string
	Monto      decimal.Decimal
	Fecha      time.Time
	MetodoPago string
	Referencia string
	CreatedAt  time.Time
}
