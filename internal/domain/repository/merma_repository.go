package repository

import "github.com/carbosur/inventario-api/internal/domain/entity"

// MermaFiltro filtros opcionales del listado de mermas.
type MermaFiltro struct {
	LoteID         string
	SoloPendientes bool // solo mermas aún no convertidas
}

// MermaRepository acceso a los registros de merma.
type MermaRepository interface {
	Create(m *entity.Merma) error
	GetByID(id string) (*entity.Merma, error)
	// GetForUpdate bloquea la fila de la merma. Evita que dos conversiones
	// concurrentes consuman el mismo registro.
	GetForUpdate(id string) (*entity.Merma, error)
	List(f MermaFiltro) ([]*entity.Merma, error)
	MarcarConvertida(id string) error
}
