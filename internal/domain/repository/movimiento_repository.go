package repository

import (
	"time"

	"github.com/carbosur/inventario-api/internal/domain/entity"
)

// MovimientoFiltro filtros opcionales para listar el historial de movimientos.
type MovimientoFiltro struct {
	AlmacenID      string
	PresentacionID string
	LoteID         string
	TipoOperacion  string
	Desde          *time.Time
	Hasta          *time.Time
	Limit          int
	Offset         int
}

// MovimientoRepository acceso al log de movimientos. Solo inserta y lee:
// los movimientos son historia inmutable, no hay Update ni Delete.
type MovimientoRepository interface {
	Create(m *entity.Movimiento) error
	GetByID(id string) (*entity.Movimiento, error)
	List(f MovimientoFiltro) ([]*entity.Movimiento, error)
}
