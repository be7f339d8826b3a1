package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/carbosur/inventario-api/internal/application/inventario"
	"github.com/carbosur/inventario-api/internal/application/pedidos"
	"github.com/carbosur/inventario-api/internal/application/produccion"
	appventas "github.com/carbosur/inventario-api/internal/application/ventas"
	"github.com/carbosur/inventario-api/internal/domain/repository"
)

// Ensure TxRunner implementa los runners de todos los módulos.
var _ inventario.TxRunner = (*TxRunner)(nil)
var _ appventas.TxRunner = (*TxRunner)(nil)
var _ produccion.TxRunner = (*TxRunner)(nil)
var _ pedidos.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL, con
// repositorios atados a la tx. Commit si fn retorna nil, Rollback si no.
// Los errores transitorios de concurrencia salen como domain.ErrContencion.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

func (r *TxRunner) enTx(ctx context.Context, fn func(q Querier) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		return traducirError(err)
	}
	if err := tx.Commit(ctx); err != nil {
		return traducirError(fmt.Errorf("commit transaction: %w", err))
	}
	return nil
}

// Run transacción del motor de inventario (movimientos, posiciones, lotes).
func (r *TxRunner) Run(ctx context.Context, fn func(
	movRepo repository.MovimientoRepository,
	invRepo repository.InventarioRepository,
	loteRepo repository.LoteRepository,
) error) error {
	return r.enTx(ctx, func(q Querier) error {
		return fn(NewMovimientoRepository(q), NewInventarioRepository(q), NewLoteRepository(q))
	})
}

// RunVenta transacción de creación de venta: inventario + venta + cliente.
func (r *TxRunner) RunVenta(ctx context.Context, fn func(
	movRepo repository.MovimientoRepository,
	invRepo repository.InventarioRepository,
	loteRepo repository.LoteRepository,
	ventaRepo repository.VentaRepository,
	clienteRepo repository.ClienteRepository,
) error) error {
	return r.enTx(ctx, func(q Querier) error {
		return fn(
			NewMovimientoRepository(q),
			NewInventarioRepository(q),
			NewLoteRepository(q),
			NewVentaRepository(q),
			NewClienteRepository(q),
		)
	})
}

// RunMerma transacción de producción sobre inventario y mermas.
func (r *TxRunner) RunMerma(ctx context.Context, fn func(
	movRepo repository.MovimientoRepository,
	invRepo repository.InventarioRepository,
	loteRepo repository.LoteRepository,
	mermaRepo repository.MermaRepository,
) error) error {
	return r.enTx(ctx, func(q Querier) error {
		return fn(
			NewMovimientoRepository(q),
			NewInventarioRepository(q),
			NewLoteRepository(q),
			NewMermaRepository(q),
		)
	})
}

// RunPedido transacción sobre pedidos y sus detalles.
func (r *TxRunner) RunPedido(ctx context.Context, fn func(
	pedidoRepo repository.PedidoRepository,
) error) error {
	return r.enTx(ctx, func(q Querier) error {
		return fn(NewPedidoRepository(q))
	})
}

// RunPago transacción de conciliación de un pago.
func (r *TxRunner) RunPago(ctx context.Context, fn func(
	ventaRepo repository.VentaRepository,
	pagoRepo repository.PagoRepository,
) error) error {
	return r.enTx(ctx, func(q Querier) error {
		return fn(NewVentaRepository(q), NewPagoRepository(q))
	})
}
