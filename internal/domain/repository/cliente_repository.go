package repository

import (
	"time"

	"github.com/carbosur/inventario-api/internal/domain/entity"
)

// ClienteRepository acceso a clientes.
type ClienteRepository interface {
	Create(c *entity.Cliente) error
	GetByID(id string) (*entity.Cliente, error)
	List(nombre, ciudad string, limit, offset int) ([]*entity.Cliente, error)
	// ActualizarCadencia fija la última fecha de compra y la frecuencia
	// derivada tras una venta con consumo diario declarado.
	ActualizarCadencia(id string, ultimaCompra time.Time, frecuenciaDias int) error
	// ActualizarProximaManual fija (o limpia con nil) la fecha manual que
	// pisa la proyección calculada.
	ActualizarProximaManual(id string, fecha *time.Time) error
}
