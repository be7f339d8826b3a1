package repository

import "github.com/carbosur/inventario-api/internal/domain/entity"

// PresentacionRepository acceso a presentaciones del catálogo.
type PresentacionRepository interface {
	Create(p *entity.Presentacion) error
	GetByID(id string) (*entity.Presentacion, error)
	List(soloActivas bool) ([]*entity.Presentacion, error)
	// Desactivar marca la presentación como inactiva. Nunca se borra: los
	// movimientos históricos la referencian.
	Desactivar(id string) error
}
