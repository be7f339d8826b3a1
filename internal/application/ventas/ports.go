package ventas

import (
	"context"

	appinv "github.com/carbosur/inventario-api/internal/application/inventario"
	"github.com/carbosur/inventario-api/internal/domain/entity"
	"github.com/carbosur/inventario-api/internal/domain/repository"
)

// TxRunner transacciones para ventas y pagos. RunVenta abre la unidad
// atómica venta + detalles + movimientos; RunPago la de pago + estado.
type TxRunner interface {
	RunVenta(ctx context.Context, fn func(
		movRepo repository.MovimientoRepository,
		invRepo repository.InventarioRepository,
		loteRepo repository.LoteRepository,
		ventaRepo repository.VentaRepository,
		clienteRepo repository.ClienteRepository,
	) error) error

	RunPago(ctx context.Context, fn func(
		ventaRepo repository.VentaRepository,
		pagoRepo repository.PagoRepository,
	) error) error
}

// InventarioUseCase lo que ventas necesita del motor de inventario: aplicar
// un movimiento dentro de la transacción del caller.
type InventarioUseCase interface {
	AplicarEnTx(
		movRepo repository.MovimientoRepository,
		invRepo repository.InventarioRepository,
		loteRepo repository.LoteRepository,
		m appinv.MovimientoTx,
	) (*entity.Movimiento, error)
}
