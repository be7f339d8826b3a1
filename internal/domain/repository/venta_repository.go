package repository

import "github.com/carbosur/inventario-api/internal/domain/entity"

// VentaRepository acceso a ventas y sus detalles.
type VentaRepository interface {
	Create(v *entity.Venta) error
	CreateDetalle(d *entity.VentaDetalle) error
	GetByID(id string) (*entity.Venta, error)
	// GetForUpdate bloquea la fila de la venta. Serializa pagos concurrentes
	// sobre la misma venta (carrera de lost-update sobre el acumulado).
	GetForUpdate(id string) (*entity.Venta, error)
	GetDetalles(ventaID string) ([]*entity.VentaDetalle, error)
	UpdateEstadoPago(id, estado string) error
}
