package pedidos

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/carbosur/inventario-api/internal/application/dto"
	"github.com/carbosur/inventario-api/internal/domain"
	"github.com/carbosur/inventario-api/internal/domain/entity"
	"github.com/carbosur/inventario-api/internal/domain/repository"
)

// TxRunner unidad atómica de cabecera + detalles y de las transiciones de
// estado del pedido.
type TxRunner interface {
	RunPedido(ctx context.Context, fn func(pedidoRepo repository.PedidoRepository) error) error
}

// Ventas lo que el flujo de pedidos necesita del módulo de ventas: la
// entrega convierte el pedido en una venta real, con descuento FIFO de
// stock incluido.
type Ventas interface {
	CrearVenta(ctx context.Context, vendedorID string, in dto.CrearVentaRequest) (*dto.VentaResponse, error)
}

// UseCase gestiona pedidos: reservas de mercadería con fecha de entrega
// comprometida. Un pedido no toca stock hasta entregarse.
type UseCase struct {
	txRunner         TxRunner
	ventas           Ventas
	pedidoRepo       repository.PedidoRepository
	clienteRepo      repository.ClienteRepository
	almacenRepo      repository.AlmacenRepository
	presentacionRepo repository.PresentacionRepository

	ahora func() time.Time
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	txRunner TxRunner,
	ventas Ventas,
	pedidoRepo repository.PedidoRepository,
	clienteRepo repository.ClienteRepository,
	almacenRepo repository.AlmacenRepository,
	presentacionRepo repository.PresentacionRepository,
) *UseCase {
	return &UseCase{
		txRunner:         txRunner,
		ventas:           ventas,
		pedidoRepo:       pedidoRepo,
		clienteRepo:      clienteRepo,
		almacenRepo:      almacenRepo,
		presentacionRepo: presentacionRepo,
		ahora:            time.Now,
	}
}

// Crear registra un pedido programado. La fecha de entrega no puede quedar
// en el pasado; los precios estimados en cero toman el precio de lista.
func (uc *UseCase) Crear(ctx context.Context, vendedorID string, in dto.CrearPedidoRequest) (*dto.PedidoResponse, error) {
	if in.ClienteID == "" || in.AlmacenID == "" || len(in.Detalles) == 0 {
		return nil, domain.ErrEntradaInvalida
	}
	ahora := uc.ahora()
	if in.FechaEntrega.IsZero() || in.FechaEntrega.Before(ahora) {
		return nil, domain.ErrEntradaInvalida
	}
	if cli, err := uc.clienteRepo.GetByID(in.ClienteID); err != nil || cli == nil {
		return nil, domain.ErrNoEncontrado
	}
	if alm, err := uc.almacenRepo.GetByID(in.AlmacenID); err != nil || alm == nil {
		return nil, domain.ErrNoEncontrado
	}

	pedido := &entity.Pedido{
		ID:            uuid.New().String(),
		ClienteID:     in.ClienteID,
		AlmacenID:     in.AlmacenID,
		VendedorID:    vendedorID,
		FechaCreacion: ahora,
		FechaEntrega:  in.FechaEntrega,
		Estado:        entity.PedidoProgramado,
		Notas:         in.Notas,
		UpdatedAt:     ahora,
	}
	var detalles []*entity.PedidoDetalle
	for _, linea := range in.Detalles {
		if linea.PresentacionID == "" || !linea.Cantidad.GreaterThan(decimal.Zero) {
			return nil, domain.ErrMontoInvalido
		}
		if linea.PrecioEstimado.IsNegative() {
			return nil, domain.ErrEntradaInvalida
		}
		pres, err := uc.presentacionRepo.GetByID(linea.PresentacionID)
		if err != nil || pres == nil || !pres.Activo {
			return nil, domain.ErrNoEncontrado
		}
		precio := linea.PrecioEstimado
		if precio.IsZero() {
			precio = pres.PrecioVenta
		}
		detalles = append(detalles, &entity.PedidoDetalle{
			ID:             uuid.New().String(),
			PedidoID:       pedido.ID,
			PresentacionID: pres.ID,
			Cantidad:       linea.Cantidad,
			PrecioEstimado: precio,
		})
	}

	err := uc.txRunner.RunPedido(ctx, func(repo repository.PedidoRepository) error {
		if err := repo.Create(pedido); err != nil {
			return fmt.Errorf("crear pedido: %w", err)
		}
		for _, d := range detalles {
			if err := repo.CreateDetalle(d); err != nil {
				return fmt.Errorf("crear detalle de pedido: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return pedidoAResponse(pedido, detalles), nil
}

// GetByID devuelve un pedido con sus detalles y el total estimado.
func (uc *UseCase) GetByID(ctx context.Context, id string) (*dto.PedidoResponse, error) {
	pedido, err := uc.pedidoRepo.GetByID(id)
	if err != nil || pedido == nil {
		return nil, domain.ErrNoEncontrado
	}
	detalles, err := uc.pedidoRepo.GetDetalles(id)
	if err != nil {
		return nil, err
	}
	return pedidoAResponse(pedido, detalles), nil
}

// List consulta pedidos con filtros opcionales, ordenados por fecha de
// entrega. Las respuestas del listado no incluyen detalles.
func (uc *UseCase) List(ctx context.Context, f repository.PedidoFiltro) ([]*dto.PedidoResponse, error) {
	if f.Limit <= 0 || f.Limit > 100 {
		f.Limit = 50
	}
	pedidos, err := uc.pedidoRepo.List(f)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.PedidoResponse, 0, len(pedidos))
	for _, p := range pedidos {
		out = append(out, pedidoAResponse(p, nil))
	}
	return out, nil
}

// Confirmar pasa un pedido programado a confirmado.
func (uc *UseCase) Confirmar(ctx context.Context, id string) error {
	return uc.transicionar(ctx, id, entity.PedidoConfirmado, entity.PedidoProgramado)
}

// Cancelar cancela un pedido que aún no se entregó.
func (uc *UseCase) Cancelar(ctx context.Context, id string) error {
	return uc.transicionar(ctx, id, entity.PedidoCancelado, entity.PedidoProgramado, entity.PedidoConfirmado)
}

func (uc *UseCase) transicionar(ctx context.Context, id, destino string, desde ...string) error {
	return uc.txRunner.RunPedido(ctx, func(repo repository.PedidoRepository) error {
		pedido, err := repo.GetForUpdate(id)
		if err != nil {
			return err
		}
		if pedido == nil {
			return domain.ErrNoEncontrado
		}
		permitido := false
		for _, e := range desde {
			if pedido.Estado == e {
				permitido = true
			}
		}
		if !permitido {
			return domain.ErrEntradaInvalida
		}
		return repo.UpdateEstado(id, destino)
	})
}

// Entregar convierte el pedido en una venta real: crea la venta con las
// líneas reservadas (descuento FIFO de stock incluido) y deja el pedido
// entregado apuntando a ella. El pedido se marca entregado antes de crear la
// venta para que dos entregas simultáneas no pasen las dos; si la venta
// falla (por ejemplo, sin stock) el estado previo se restituye.
func (uc *UseCase) Entregar(ctx context.Context, usuarioID, id string, in dto.EntregarPedidoRequest) (*dto.EntregarPedidoResponse, error) {
	if in.TipoPago != entity.PagoContado && in.TipoPago != entity.PagoCredito {
		return nil, domain.ErrEntradaInvalida
	}

	var pedido *entity.Pedido
	var detalles []*entity.PedidoDetalle
	var estadoPrevio string
	err := uc.txRunner.RunPedido(ctx, func(repo repository.PedidoRepository) error {
		p, err := repo.GetForUpdate(id)
		if err != nil {
			return err
		}
		if p == nil {
			return domain.ErrNoEncontrado
		}
		if p.Estado != entity.PedidoProgramado && p.Estado != entity.PedidoConfirmado {
			return domain.ErrEntradaInvalida
		}
		detalles, err = repo.GetDetalles(id)
		if err != nil {
			return err
		}
		if len(detalles) == 0 {
			return domain.ErrEntradaInvalida
		}
		estadoPrevio = p.Estado
		pedido = p
		return repo.UpdateEstado(id, entity.PedidoEntregado)
	})
	if err != nil {
		return nil, err
	}

	req := dto.CrearVentaRequest{
		ClienteID:       pedido.ClienteID,
		AlmacenID:       pedido.AlmacenID,
		TipoPago:        in.TipoPago,
		ConsumoDiarioKg: in.ConsumoDiarioKg,
	}
	for _, d := range detalles {
		req.Detalles = append(req.Detalles, dto.CrearVentaDetalleRequest{
			PresentacionID: d.PresentacionID,
			Cantidad:       d.Cantidad,
			PrecioUnitario: d.PrecioEstimado,
		})
	}

	venta, err := uc.ventas.CrearVenta(ctx, usuarioID, req)
	if err != nil {
		// La venta no se creó y el stock quedó intacto: el pedido vuelve a
		// su estado anterior.
		_ = uc.txRunner.RunPedido(ctx, func(repo repository.PedidoRepository) error {
			return repo.UpdateEstado(id, estadoPrevio)
		})
		return nil, err
	}

	if err := uc.txRunner.RunPedido(ctx, func(repo repository.PedidoRepository) error {
		return repo.VincularVenta(id, venta.ID)
	}); err != nil {
		return nil, fmt.Errorf("vincular venta al pedido: %w", err)
	}

	return &dto.EntregarPedidoResponse{
		PedidoID: id,
		Estado:   entity.PedidoEntregado,
		Venta:    venta,
	}, nil
}

func pedidoAResponse(p *entity.Pedido, detalles []*entity.PedidoDetalle) *dto.PedidoResponse {
	resp := &dto.PedidoResponse{
		ID:            p.ID,
		ClienteID:     p.ClienteID,
		AlmacenID:     p.AlmacenID,
		VendedorID:    p.VendedorID,
		FechaCreacion: p.FechaCreacion,
		FechaEntrega:  p.FechaEntrega,
		Estado:        p.Estado,
		Notas:         p.Notas,
		VentaID:       p.VentaID,
		TotalEstimado: decimal.Zero,
	}
	for _, d := range detalles {
		resp.TotalEstimado = resp.TotalEstimado.Add(d.TotalLinea())
		resp.Detalles = append(resp.Detalles, dto.PedidoDetalleResponse{
			ID:             d.ID,
			PresentacionID: d.PresentacionID,
			Cantidad:       d.Cantidad,
			PrecioEstimado: d.PrecioEstimado,
			TotalLinea:     d.TotalLinea(),
		})
	}
	return resp
}
