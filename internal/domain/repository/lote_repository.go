package repository

import (
	"github.com/shopspring/decimal"

	"github.com/carbosur/inventario-api/internal/domain/entity"
)

// LoteRepository acceso a lotes de materia prima.
type LoteRepository interface {
	Create(l *entity.Lote) error
	GetByID(id string) (*entity.Lote, error)
	// GetForUpdate bloquea la fila del lote (SELECT FOR UPDATE) para ajustar
	// su cantidad disponible sin carreras. Solo tiene sentido dentro de una tx.
	GetForUpdate(id string) (*entity.Lote, error)
	List() ([]*entity.Lote, error)
	// ActualizarDisponible fija la nueva cantidad disponible en kg.
	ActualizarDisponible(id string, cantidadKg decimal.Decimal) error
}
