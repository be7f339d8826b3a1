package pedidos_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carbosur/inventario-api/internal/application/apptest"
	"github.com/carbosur/inventario-api/internal/application/dto"
	"github.com/carbosur/inventario-api/internal/application/inventario"
	"github.com/carbosur/inventario-api/internal/application/pedidos"
	"github.com/carbosur/inventario-api/internal/application/ventas"
	"github.com/carbosur/inventario-api/internal/domain"
	"github.com/carbosur/inventario-api/internal/domain/entity"
	"github.com/carbosur/inventario-api/internal/domain/repository"
)

// entornoPedidos arma un escenario con dos lotes FIFO de sacos (5 + 10) y el
// flujo completo de ventas para poder entregar pedidos.
func entornoPedidos(t *testing.T) (*apptest.Store, *pedidos.UseCase) {
	t.Helper()
	store := apptest.NewStore()

	store.Presentaciones["saco20"] = &entity.Presentacion{
		ID: "saco20", Nombre: "Saco 20kg", CapacidadKg: decimal.NewFromInt(20),
		Tipo: entity.TipoProcesado, PrecioVenta: decimal.NewFromInt(30), Activo: true,
	}
	store.Almacenes["alm1"] = &entity.Almacen{ID: "alm1", Nombre: "Principal"}
	store.Clientes["cli1"] = &entity.Cliente{ID: "cli1", Nombre: "Pollería Doña Rosa"}

	ahora := time.Now()
	store.Lotes["lote1"] = &entity.Lote{
		ID: "lote1", CantidadDisponibleKg: decimal.NewFromInt(300), FechaIngreso: ahora.Add(-72 * time.Hour),
	}
	store.Lotes["lote2"] = &entity.Lote{
		ID: "lote2", CantidadDisponibleKg: decimal.NewFromInt(300), FechaIngreso: ahora.Add(-24 * time.Hour),
	}
	l1, l2 := "lote1", "lote2"
	store.SetPosicion("saco20", "alm1", &l1, decimal.NewFromInt(5))
	store.SetPosicion("saco20", "alm1", &l2, decimal.NewFromInt(10))

	runner := &apptest.TxRunner{S: store}
	movimientosUC := inventario.NewMovimientosUseCase(
		runner,
		&apptest.PresentacionRepo{S: store},
		&apptest.AlmacenRepo{S: store},
		&apptest.LoteRepo{S: store},
		&apptest.InventarioRepo{S: store},
		&apptest.MovimientoRepo{S: store},
	)
	crearVentaUC := ventas.NewCrearVentaUseCase(
		runner,
		movimientosUC,
		&apptest.PresentacionRepo{S: store},
		&apptest.AlmacenRepo{S: store},
		&apptest.ClienteRepo{S: store},
		&apptest.VentaRepo{S: store},
	)
	uc := pedidos.NewUseCase(
		runner,
		crearVentaUC,
		&apptest.PedidoRepo{S: store},
		&apptest.ClienteRepo{S: store},
		&apptest.AlmacenRepo{S: store},
		&apptest.PresentacionRepo{S: store},
	)
	return store, uc
}

func crearPedidoBase(t *testing.T, uc *pedidos.UseCase, cantidad int64) *dto.PedidoResponse {
	t.Helper()
	resp, err := uc.Crear(context.Background(), "vend1", dto.CrearPedidoRequest{
		ClienteID:    "cli1",
		AlmacenID:    "alm1",
		FechaEntrega: time.Now().Add(48 * time.Hour),
		Detalles: []dto.PedidoDetalleRequest{
			{PresentacionID: "saco20", Cantidad: decimal.NewFromInt(cantidad)},
		},
	})
	require.NoError(t, err)
	return resp
}

func TestCrearPedido(t *testing.T) {
	store, uc := entornoPedidos(t)

	resp := crearPedidoBase(t, uc, 8)
	assert.Equal(t, entity.PedidoProgramado, resp.Estado)
	require.Len(t, resp.Detalles, 1)
	// Sin precio estimado: toma el de lista.
	assert.True(t, resp.Detalles[0].PrecioEstimado.Equal(decimal.NewFromInt(30)))
	assert.True(t, resp.TotalEstimado.Equal(decimal.NewFromInt(240)))

	// Reservar no descuenta stock ni genera movimientos.
	l1 := "lote1"
	assert.True(t, store.Cantidad("saco20", "alm1", &l1).Equal(decimal.NewFromInt(5)))
	assert.Empty(t, store.Movimientos)
}

func TestCrearPedido_Validaciones(t *testing.T) {
	_, uc := entornoPedidos(t)
	ctx := context.Background()

	// Fecha de entrega en el pasado.
	_, err := uc.Crear(ctx, "vend1", dto.CrearPedidoRequest{
		ClienteID: "cli1", AlmacenID: "alm1", FechaEntrega: time.Now().Add(-time.Hour),
		Detalles: []dto.PedidoDetalleRequest{{PresentacionID: "saco20", Cantidad: decimal.NewFromInt(1)}},
	})
	assert.ErrorIs(t, err, domain.ErrEntradaInvalida)

	// Sin líneas.
	_, err = uc.Crear(ctx, "vend1", dto.CrearPedidoRequest{
		ClienteID: "cli1", AlmacenID: "alm1", FechaEntrega: time.Now().Add(time.Hour),
	})
	assert.ErrorIs(t, err, domain.ErrEntradaInvalida)

	// Cantidad en cero.
	_, err = uc.Crear(ctx, "vend1", dto.CrearPedidoRequest{
		ClienteID: "cli1", AlmacenID: "alm1", FechaEntrega: time.Now().Add(time.Hour),
		Detalles: []dto.PedidoDetalleRequest{{PresentacionID: "saco20", Cantidad: decimal.Zero}},
	})
	assert.ErrorIs(t, err, domain.ErrMontoInvalido)

	// Cliente inexistente.
	_, err = uc.Crear(ctx, "vend1", dto.CrearPedidoRequest{
		ClienteID: "fantasma", AlmacenID: "alm1", FechaEntrega: time.Now().Add(time.Hour),
		Detalles: []dto.PedidoDetalleRequest{{PresentacionID: "saco20", Cantidad: decimal.NewFromInt(1)}},
	})
	assert.ErrorIs(t, err, domain.ErrNoEncontrado)
}

func TestConfirmarYCancelar(t *testing.T) {
	store, uc := entornoPedidos(t)
	ctx := context.Background()

	pedido := crearPedidoBase(t, uc, 2)

	require.NoError(t, uc.Confirmar(ctx, pedido.ID))
	assert.Equal(t, entity.PedidoConfirmado, store.Pedidos[pedido.ID].Estado)

	// Confirmar dos veces no es una transición válida.
	assert.ErrorIs(t, uc.Confirmar(ctx, pedido.ID), domain.ErrEntradaInvalida)

	require.NoError(t, uc.Cancelar(ctx, pedido.ID))
	assert.Equal(t, entity.PedidoCancelado, store.Pedidos[pedido.ID].Estado)

	// Un pedido cancelado ya no se puede mover.
	assert.ErrorIs(t, uc.Cancelar(ctx, pedido.ID), domain.ErrEntradaInvalida)
	assert.ErrorIs(t, uc.Confirmar(ctx, "no-existe"), domain.ErrNoEncontrado)
}

func TestEntregarPedido(t *testing.T) {
	store, uc := entornoPedidos(t)
	ctx := context.Background()

	pedido := crearPedidoBase(t, uc, 8)
	require.NoError(t, uc.Confirmar(ctx, pedido.ID))

	resp, err := uc.Entregar(ctx, "vend1", pedido.ID, dto.EntregarPedidoRequest{
		TipoPago: entity.PagoCredito,
	})
	require.NoError(t, err)
	assert.Equal(t, entity.PedidoEntregado, resp.Estado)
	require.NotNil(t, resp.Venta)
	assert.True(t, resp.Venta.Total.Equal(decimal.NewFromInt(240)))

	// El pedido queda vinculado a la venta generada.
	require.NotNil(t, store.Pedidos[pedido.ID].VentaID)
	assert.Equal(t, resp.Venta.ID, *store.Pedidos[pedido.ID].VentaID)

	// La entrega descontó stock FIFO como cualquier venta.
	l1, l2 := "lote1", "lote2"
	assert.True(t, store.Cantidad("saco20", "alm1", &l1).IsZero())
	assert.True(t, store.Cantidad("saco20", "alm1", &l2).Equal(decimal.NewFromInt(7)))
	require.Len(t, store.Movimientos, 2)
	for _, m := range store.Movimientos {
		assert.Equal(t, entity.OperacionVenta, m.TipoOperacion)
	}

	// Entregar de nuevo el mismo pedido no pasa.
	_, err = uc.Entregar(ctx, "vend1", pedido.ID, dto.EntregarPedidoRequest{TipoPago: entity.PagoContado})
	assert.ErrorIs(t, err, domain.ErrEntradaInvalida)
}

func TestEntregarPedido_SinStockRestituyeEstado(t *testing.T) {
	store, uc := entornoPedidos(t)
	ctx := context.Background()

	// 20 sacos reservados y solo hay 15 en stock.
	pedido := crearPedidoBase(t, uc, 20)

	_, err := uc.Entregar(ctx, "vend1", pedido.ID, dto.EntregarPedidoRequest{
		TipoPago: entity.PagoContado,
	})
	var stockErr *domain.StockInsuficienteError
	require.ErrorAs(t, err, &stockErr)

	// Sin venta, sin movimientos y el pedido sigue programado.
	assert.Empty(t, store.Ventas)
	assert.Empty(t, store.Movimientos)
	assert.Equal(t, entity.PedidoProgramado, store.Pedidos[pedido.ID].Estado)
	assert.Nil(t, store.Pedidos[pedido.ID].VentaID)
}

func TestEntregarPedido_Cancelado(t *testing.T) {
	_, uc := entornoPedidos(t)
	ctx := context.Background()

	pedido := crearPedidoBase(t, uc, 2)
	require.NoError(t, uc.Cancelar(ctx, pedido.ID))

	_, err := uc.Entregar(ctx, "vend1", pedido.ID, dto.EntregarPedidoRequest{TipoPago: entity.PagoContado})
	assert.ErrorIs(t, err, domain.ErrEntradaInvalida)
}

func TestListarPedidos_FiltroPorEstado(t *testing.T) {
	_, uc := entornoPedidos(t)
	ctx := context.Background()

	p1 := crearPedidoBase(t, uc, 1)
	p2 := crearPedidoBase(t, uc, 2)
	require.NoError(t, uc.Confirmar(ctx, p2.ID))

	confirmados, err := uc.List(ctx, repository.PedidoFiltro{Estado: entity.PedidoConfirmado})
	require.NoError(t, err)
	require.Len(t, confirmados, 1)
	assert.Equal(t, p2.ID, confirmados[0].ID)

	programados, err := uc.List(ctx, repository.PedidoFiltro{Estado: entity.PedidoProgramado})
	require.NoError(t, err)
	require.Len(t, programados, 1)
	assert.Equal(t, p1.ID, programados[0].ID)

	todos, err := uc.List(ctx, repository.PedidoFiltro{})
	require.NoError(t, err)
	assert.Len(t, todos, 2)
}
