package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/carbosur/inventario-api/internal/application/catalogo"
	"github.com/carbosur/inventario-api/internal/application/clientes"
	"github.com/carbosur/inventario-api/internal/application/inventario"
	"github.com/carbosur/inventario-api/internal/application/pedidos"
	"github.com/carbosur/inventario-api/internal/application/produccion"
	"github.com/carbosur/inventario-api/internal/application/ventas"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CatalogoUC    *catalogo.UseCase
	MovimientosUC *inventario.MovimientosUseCase
	CrearVentaUC  *ventas.CrearVentaUseCase
	AplicarPagoUC *ventas.AplicarPagoUseCase
	ProduccionUC  *produccion.UseCase
	PedidosUC     *pedidos.UseCase
	ClientesUC    *clientes.UseCase
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Catálogo
	catalogoHandler := NewCatalogoHandler(deps.CatalogoUC)
	presentaciones := api.Group("/presentaciones")
	presentaciones.Post("/", catalogoHandler.CrearPresentacion)
	presentaciones.Get("/", catalogoHandler.ListPresentaciones)
	presentaciones.Get("/:id", catalogoHandler.GetPresentacion)
	presentaciones.Delete("/:id", catalogoHandler.DesactivarPresentacion)

	almacenes := api.Group("/almacenes")
	almacenes.Post("/", catalogoHandler.CrearAlmacen)
	almacenes.Get("/", catalogoHandler.ListAlmacenes)

	lotes := api.Group("/lotes")
	lotes.Post("/", catalogoHandler.CrearLote)
	lotes.Get("/", catalogoHandler.ListLotes)
	lotes.Get("/:id", catalogoHandler.GetLote)

	// Libro de inventario
	inventarioHandler := NewInventarioHandler(deps.MovimientosUC)
	inv := api.Group("/inventario")
	inv.Post("/movimientos", inventarioHandler.RegistrarMovimiento)
	inv.Get("/movimientos", inventarioHandler.ListarMovimientos)
	inv.Get("/stock", inventarioHandler.ObtenerStock)
	inv.Get("/bajo-minimo", inventarioHandler.BajoMinimo)
	inv.Post("/transferencias", inventarioHandler.Transferir)

	// Ventas y pagos
	ventaHandler := NewVentaHandler(deps.CrearVentaUC, deps.AplicarPagoUC)
	ventasGroup := api.Group("/ventas")
	ventasGroup.Post("/", ventaHandler.Crear)
	ventasGroup.Get("/:id", ventaHandler.GetByID)
	ventasGroup.Post("/:id/pagos", ventaHandler.AplicarPago)

	// Producción: conversiones directas y registro de mermas
	produccionHandler := NewProduccionHandler(deps.ProduccionUC)
	prod := api.Group("/produccion")
	prod.Post("/conversiones", produccionHandler.Convertir)
	prod.Post("/mermas", produccionHandler.RegistrarMerma)
	prod.Get("/mermas", produccionHandler.ListarMermas)
	prod.Post("/mermas/:id/conversion", produccionHandler.ConvertirMerma)

	// Pedidos: reservas con fecha de entrega
	pedidoHandler := NewPedidoHandler(deps.PedidosUC)
	pedidosGroup := api.Group("/pedidos")
	pedidosGroup.Post("/", pedidoHandler.Crear)
	pedidosGroup.Get("/", pedidoHandler.List)
	pedidosGroup.Get("/:id", pedidoHandler.GetByID)
	pedidosGroup.Post("/:id/confirmacion", pedidoHandler.Confirmar)
	pedidosGroup.Post("/:id/cancelacion", pedidoHandler.Cancelar)
	pedidosGroup.Post("/:id/entrega", pedidoHandler.Entregar)

	// Clientes y proyección de compra
	clienteHandler := NewClienteHandler(deps.ClientesUC)
	clientesGroup := api.Group("/clientes")
	clientesGroup.Post("/", clienteHandler.Crear)
	clientesGroup.Get("/", clienteHandler.List)
	clientesGroup.Get("/:id", clienteHandler.GetByID)
	clientesGroup.Get("/:id/proyeccion", clienteHandler.Proyeccion)
	clientesGroup.Put("/:id/proxima-manual", clienteHandler.ProximaManual)
}
