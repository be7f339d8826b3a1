package repository

import "github.com/carbosur/inventario-api/internal/domain/entity"

// PedidoFiltro filtros opcionales del listado de pedidos.
type PedidoFiltro struct {
	ClienteID string
	AlmacenID string
	Estado    string
	Limit     int
	Offset    int
}

// PedidoRepository acceso a pedidos y sus detalles.
type PedidoRepository interface {
	Create(p *entity.Pedido) error
	CreateDetalle(d *entity.PedidoDetalle) error
	GetByID(id string) (*entity.Pedido, error)
	// GetForUpdate bloquea la fila del pedido. Serializa las transiciones de
	// estado: dos entregas simultáneas no pueden pasar las dos.
	GetForUpdate(id string) (*entity.Pedido, error)
	GetDetalles(pedidoID string) ([]*entity.PedidoDetalle, error)
	List(f PedidoFiltro) ([]*entity.Pedido, error)
	UpdateEstado(id, estado string) error
	VincularVenta(id, ventaID string) error
}
