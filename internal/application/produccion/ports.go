package produccion

import (
	"context"

	appinv "github.com/carbosur/inventario-api/internal/application/inventario"
	"github.com/carbosur/inventario-api/internal/domain/repository"
)

// TxRunner transacciones de producción. Las conversiones desde lote usan la
// unidad del motor de inventario; las operaciones sobre mermas suman su
// propio repositorio a la misma tx.
type TxRunner interface {
	appinv.TxRunner
	RunMerma(ctx context.Context, fn func(
		movRepo repository.MovimientoRepository,
		invRepo repository.InventarioRepository,
		loteRepo repository.LoteRepository,
		mermaRepo repository.MermaRepository,
	) error) error
}
