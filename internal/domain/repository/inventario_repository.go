package repository

import (
	"github.com/shopspring/decimal"

	"github.com/carbosur/inventario-api/internal/domain/entity"
	dominv "github.com/carbosur/inventario-api/internal/domain/inventario"
)

// InventarioRepository acceso a posiciones de stock. Toda mutación de cantidad
// pasa por el caso de uso de movimientos; aquí solo hay lectura, bloqueo y upsert.
type InventarioRepository interface {
	// Get devuelve la posición (presentación, almacén, lote opcional). Si no
	// existe, devuelve una posición en cero lista para el primer movimiento.
	Get(presentacionID, almacenID string, loteID *string) (*entity.Inventario, error)
	// GetForUpdate es Get con bloqueo de fila (SELECT FOR UPDATE).
	GetForUpdate(presentacionID, almacenID string, loteID *string) (*entity.Inventario, error)
	Upsert(inv *entity.Inventario) error
	// TotalPorPresentacion suma todas las posiciones (con y sin lote) de una
	// presentación en un almacén.
	TotalPorPresentacion(presentacionID, almacenID string) (decimal.Decimal, error)
	// LotesDisponiblesForUpdate devuelve las posiciones con lote y cantidad
	// positiva para la presentación en el almacén, bloqueadas y ordenadas por
	// fecha de ingreso del lote. El orden fijo de bloqueo evita deadlocks
	// entre asignaciones concurrentes.
	LotesDisponiblesForUpdate(presentacionID, almacenID string) ([]dominv.LoteDisponible, error)
	// BajoStockMinimo lista posiciones por debajo de su umbral de reposición.
	BajoStockMinimo(almacenID string) ([]*entity.Inventario, error)
}
