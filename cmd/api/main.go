package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/carbosur/inventario-api/internal/application/catalogo"
	"github.com/carbosur/inventario-api/internal/application/clientes"
	"github.com/carbosur/inventario-api/internal/application/inventario"
	"github.com/carbosur/inventario-api/internal/application/pedidos"
	"github.com/carbosur/inventario-api/internal/application/produccion"
	"github.com/carbosur/inventario-api/internal/application/ventas"
	"github.com/carbosur/inventario-api/internal/infrastructure/postgres"
	httpRouter "github.com/carbosur/inventario-api/internal/interfaces/http"
	"github.com/carbosur/inventario-api/pkg/config"
	"github.com/carbosur/inventario-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Opciones{
		Entorno:  cfg.App.Env,
		Nivel:    cfg.Log.Nivel,
		Servicio: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("nivel", cfg.Log.Nivel).
		Msg("iniciando aplicación")

	ctx := context.Background()
	logDB := log.Componente("postgres")
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		logDB.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()
	logDB.Info().Str("host", cfg.DB.Host).Str("db", cfg.DB.DBName).Msg("pool listo")

	presentacionRepo := postgres.NewPresentacionRepository(pool)
	almacenRepo := postgres.NewAlmacenRepository(pool)
	loteRepo := postgres.NewLoteRepository(pool)
	inventarioRepo := postgres.NewInventarioRepository(pool)
	movimientoRepo := postgres.NewMovimientoRepository(pool)
	ventaRepo := postgres.NewVentaRepository(pool)
	clienteRepo := postgres.NewClienteRepository(pool)
	mermaRepo := postgres.NewMermaRepository(pool)
	pedidoRepo := postgres.NewPedidoRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	catalogoUC := catalogo.NewUseCase(presentacionRepo, almacenRepo, loteRepo)
	movimientosUC := inventario.NewMovimientosUseCase(
		txRunner, presentacionRepo, almacenRepo, loteRepo, inventarioRepo, movimientoRepo,
	)
	crearVentaUC := ventas.NewCrearVentaUseCase(
		txRunner, movimientosUC, presentacionRepo, almacenRepo, clienteRepo, ventaRepo,
	)
	aplicarPagoUC := ventas.NewAplicarPagoUseCase(txRunner)
	produccionUC := produccion.NewUseCase(
		txRunner, movimientosUC, presentacionRepo, almacenRepo, loteRepo, mermaRepo,
	)
	pedidosUC := pedidos.NewUseCase(
		txRunner, crearVentaUC, pedidoRepo, clienteRepo, almacenRepo, presentacionRepo,
	)
	clientesUC := clientes.NewUseCase(clienteRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		CatalogoUC:    catalogoUC,
		MovimientosUC: movimientosUC,
		CrearVentaUC:  crearVentaUC,
		AplicarPagoUC: aplicarPagoUC,
		ProduccionUC:  produccionUC,
		PedidosUC:     pedidosUC,
		ClientesUC:    clientesUC,
	})

	logHTTP := log.Componente("http")
	go func() {
		logHTTP.Info().Str("addr", cfg.HTTP.Addr()).Msg("escuchando")
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			logHTTP.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
