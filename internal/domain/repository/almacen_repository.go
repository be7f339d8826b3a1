package repository

import "github.com/carbosur/inventario-api/internal/domain/entity"

// AlmacenRepository acceso a almacenes.
type AlmacenRepository interface {
	Create(a *entity.Almacen) error
	GetByID(id string) (*entity.Almacen, error)
	List() ([]*entity.Almacen, error)
}
