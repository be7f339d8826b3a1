package inventario

import (
	"context"

	"github.com/carbosur/inventario-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Es la unidad todo-o-nada del motor de
// inventario: si fn devuelve error no queda ningún movimiento ni cambio
// de posición persistido.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		movRepo repository.MovimientoRepository,
		invRepo repository.InventarioRepository,
		loteRepo repository.LoteRepository,
	) error) error
}
