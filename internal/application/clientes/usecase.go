package clientes

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/carbosur/inventario-api/internal/application/dto"
	"github.com/carbosur/inventario-api/internal/domain"
	domclientes "github.com/carbosur/inventario-api/internal/domain/clientes"
	"github.com/carbosur/inventario-api/internal/domain/entity"
	"github.com/carbosur/inventario-api/internal/domain/repository"
)

// UseCase gestión de clientes y proyección de próxima compra.
type UseCase struct {
	clienteRepo repository.ClienteRepository
	// ahora es inyectable para poder fijar la fecha en tests.
	ahora func() time.Time
}

// NewUseCase construye el caso de uso.
func NewUseCase(clienteRepo repository.ClienteRepository) *UseCase {
	return &UseCase{clienteRepo: clienteRepo, ahora: time.Now}
}

// Crear da de alta un cliente.
func (uc *UseCase) Crear(ctx context.Context, in dto.CrearClienteRequest) (*dto.ClienteResponse, error) {
	if in.Nombre == "" {
		return nil, domain.ErrEntradaInvalida
	}
	ahora := uc.ahora()
	c := &entity.Cliente{
		ID:        uuid.New().String(),
		Nombre:    in.Nombre,
		Telefono:  in.Telefono,
		Direccion: in.Direccion,
		Ciudad:    in.Ciudad,
		CreatedAt: ahora,
		UpdatedAt: ahora,
	}
	if err := uc.clienteRepo.Create(c); err != nil {
		return nil, err
	}
	return clienteAResponse(c), nil
}

// GetByID devuelve un cliente.
func (uc *UseCase) GetByID(ctx context.Context, id string) (*dto.ClienteResponse, error) {
	c, err := uc.clienteRepo.GetByID(id)
	if err != nil || c == nil {
		return nil, domain.ErrNoEncontrado
	}
	return clienteAResponse(c), nil
}

// List lista clientes con filtros opcionales por nombre y ciudad.
func (uc *UseCase) List(ctx context.Context, nombre, ciudad string, limit, offset int) ([]*dto.ClienteResponse, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	lista, err := uc.clienteRepo.List(nombre, ciudad, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ClienteResponse, 0, len(lista))
	for _, c := range lista {
		out = append(out, clienteAResponse(c))
	}
	return out, nil
}

// Proyectar calcula la próxima compra esperada del cliente. Es una lectura
// pura recalculada en el momento, nunca un campo persistido.
func (uc *UseCase) Proyectar(ctx context.Context, clienteID string) (*dto.ProyeccionResponse, error) {
	c, err := uc.clienteRepo.GetByID(clienteID)
	if err != nil || c == nil {
		return nil, domain.ErrNoEncontrado
	}
	p := domclientes.Proyectar(c, uc.ahora())
	return &dto.ProyeccionResponse{
		ClienteID:     clienteID,
		ProximaCompra: p.ProximaCompra,
		DiasAtraso:    p.DiasAtraso,
		Estado:        p.Estado,
	}, nil
}

// FijarProximaManual fija (o limpia con nil) la fecha manual que pisa la
// proyección calculada.
func (uc *UseCase) FijarProximaManual(ctx context.Context, clienteID string, fecha *time.Time) error {
	c, err := uc.clienteRepo.GetByID(clienteID)
	if err != nil || c == nil {
		return domain.ErrNoEncontrado
	}
	return uc.clienteRepo.ActualizarProximaManual(clienteID, fecha)
}

func clienteAResponse(c *entity.Cliente) *dto.ClienteResponse {
	return &dto.ClienteResponse{
		ID:                   c.ID,
		Nombre:               c.Nombre,
		Telefono:             c.Telefono,
		Ciudad:               c.Ciudad,
		FrecuenciaCompraDias: c.FrecuenciaCompraDias,
		UltimaFechaCompra:    c.UltimaFechaCompra,
		ProximaCompraManual:  c.ProximaCompraManual,
	}
}
