package inventario_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carbosur/inventario-api/internal/application/apptest"
	"github.com/carbosur/inventario-api/internal/application/inventario"
	"github.com/carbosur/inventario-api/internal/domain"
	"github.com/carbosur/inventario-api/internal/domain/entity"
	"github.com/carbosur/inventario-api/internal/domain/repository"
)

func nuevoEntorno() (*apptest.Store, *inventario.MovimientosUseCase) {
	store := apptest.NewStore()
	store.Presentaciones["saco20"] = &entity.Presentacion{
		ID: "saco20", Nombre: "Saco 20kg", CapacidadKg: decimal.NewFromInt(20),
		Tipo: entity.TipoProcesado, PrecioVenta: decimal.NewFromInt(30), Activo: true,
	}
	store.Almacenes["alm1"] = &entity.Almacen{ID: "alm1", Nombre: "Principal"}
	store.Almacenes["alm2"] = &entity.Almacen{ID: "alm2", Nombre: "Sucursal"}

	uc := inventario.NewMovimientosUseCase(
		&apptest.TxRunner{S: store},
		&apptest.PresentacionRepo{S: store},
		&apptest.AlmacenRepo{S: store},
		&apptest.LoteRepo{S: store},
		&apptest.InventarioRepo{S: store},
		&apptest.MovimientoRepo{S: store},
	)
	return store, uc
}

func TestRegistrarMovimiento_EntradaYSalida(t *testing.T) {
	store, uc := nuevoEntorno()
	ctx := context.Background()

	mov, err := uc.RegistrarMovimiento(ctx, inventario.MovimientoInput{
		Tipo:           entity.MovimientoEntrada,
		PresentacionID: "saco20",
		AlmacenID:      "alm1",
		Cantidad:       decimal.NewFromInt(10),
		Motivo:         "Carga inicial",
		UsuarioID:      "u1",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.MovimientoEntrada, mov.Tipo)
	assert.True(t, store.Cantidad("saco20", "alm1", nil).Equal(decimal.NewFromInt(10)))

	_, err = uc.RegistrarMovimiento(ctx, inventario.MovimientoInput{
		Tipo:           entity.MovimientoSalida,
		PresentacionID: "saco20",
		AlmacenID:      "alm1",
		Cantidad:       decimal.NewFromInt(4),
		Motivo:         "Merma en bodega",
		UsuarioID:      "u1",
	})
	require.NoError(t, err)
	assert.True(t, store.Cantidad("saco20", "alm1", nil).Equal(decimal.NewFromInt(6)))

	require.Len(t, store.Movimientos, 2)
	// La posición siempre debe poder recomputarse desde el log con signo.
	suma := decimal.Zero
	for _, m := range store.Movimientos {
		suma = suma.Add(m.Firmada())
	}
	assert.True(t, suma.Equal(decimal.NewFromInt(6)))
}

func TestRegistrarMovimiento_SalidaInsuficiente(t *testing.T) {
	store, uc := nuevoEntorno()
	store.SetPosicion("saco20", "alm1", nil, decimal.NewFromInt(5))

	_, err := uc.RegistrarMovimiento(context.Background(), inventario.MovimientoInput{
		Tipo:           entity.MovimientoSalida,
		PresentacionID: "saco20",
		AlmacenID:      "alm1",
		Cantidad:       decimal.NewFromInt(8),
		UsuarioID:      "u1",
	})

	var stockErr *domain.StockInsuficienteError
	require.ErrorAs(t, err, &stockErr)
	assert.True(t, errors.Is(err, domain.ErrStockInsuficiente))
	assert.True(t, stockErr.Faltante().Equal(decimal.NewFromInt(3)))

	// Nada persistido: ni movimiento ni cambio de posición.
	assert.Empty(t, store.Movimientos)
	assert.True(t, store.Cantidad("saco20", "alm1", nil).Equal(decimal.NewFromInt(5)))
}

func TestRegistrarMovimiento_Validaciones(t *testing.T) {
	_, uc := nuevoEntorno()
	ctx := context.Background()

	_, err := uc.RegistrarMovimiento(ctx, inventario.MovimientoInput{
		Tipo: "traspaso", PresentacionID: "saco20", AlmacenID: "alm1", Cantidad: decimal.NewFromInt(1),
	})
	assert.ErrorIs(t, err, domain.ErrEntradaInvalida)

	_, err = uc.RegistrarMovimiento(ctx, inventario.MovimientoInput{
		Tipo: entity.MovimientoEntrada, PresentacionID: "saco20", AlmacenID: "alm1", Cantidad: decimal.Zero,
	})
	assert.ErrorIs(t, err, domain.ErrMontoInvalido)

	_, err = uc.RegistrarMovimiento(ctx, inventario.MovimientoInput{
		Tipo: entity.MovimientoEntrada, PresentacionID: "no-existe", AlmacenID: "alm1", Cantidad: decimal.NewFromInt(1),
	})
	assert.ErrorIs(t, err, domain.ErrNoEncontrado)
}

func TestRegistrarMovimiento_SalidasConcurrentes(t *testing.T) {
	store, uc := nuevoEntorno()
	store.SetPosicion("saco20", "alm1", nil, decimal.NewFromInt(5))

	salida := func(cantidad int64) error {
		_, err := uc.RegistrarMovimiento(context.Background(), inventario.MovimientoInput{
			Tipo:           entity.MovimientoSalida,
			PresentacionID: "saco20",
			AlmacenID:      "alm1",
			Cantidad:       decimal.NewFromInt(cantidad),
			UsuarioID:      "u1",
		})
		return err
	}

	var wg sync.WaitGroup
	errs := make([]error, 2)
	cantidades := []int64{3, 4}
	for i, c := range cantidades {
		wg.Add(1)
		go func(i int, c int64) {
			defer wg.Done()
			errs[i] = salida(c)
		}(i, c)
	}
	wg.Wait()

	// 3 + 4 > 5: exactamente una de las dos salidas debe fallar por stock.
	var fallidas, exitosas int
	restante := decimal.NewFromInt(5)
	for i, err := range errs {
		if err != nil {
			assert.ErrorIs(t, err, domain.ErrStockInsuficiente)
			fallidas++
		} else {
			restante = restante.Sub(decimal.NewFromInt(cantidades[i]))
			exitosas++
		}
	}
	assert.Equal(t, 1, fallidas)
	assert.Equal(t, 1, exitosas)
	assert.True(t, store.Cantidad("saco20", "alm1", nil).Equal(restante))
	assert.Len(t, store.Movimientos, 1)
}

func TestTransferir(t *testing.T) {
	store, uc := nuevoEntorno()
	store.SetPosicion("saco20", "alm1", nil, decimal.NewFromInt(10))

	grupoID, err := uc.Transferir(context.Background(), inventario.TransferirInput{
		PresentacionID:  "saco20",
		AlmacenOrigenID: "alm1",
		AlmacenDestID:   "alm2",
		Cantidad:        decimal.NewFromInt(4),
		UsuarioID:       "u1",
	})
	require.NoError(t, err)
	require.NotEmpty(t, grupoID)

	assert.True(t, store.Cantidad("saco20", "alm1", nil).Equal(decimal.NewFromInt(6)))
	assert.True(t, store.Cantidad("saco20", "alm2", nil).Equal(decimal.NewFromInt(4)))

	require.Len(t, store.Movimientos, 2)
	for _, m := range store.Movimientos {
		assert.Equal(t, grupoID, m.GrupoID)
		assert.Equal(t, entity.OperacionTransferencia, m.TipoOperacion)
	}
}

func TestTransferir_SinStockNoDejaRastro(t *testing.T) {
	store, uc := nuevoEntorno()
	store.SetPosicion("saco20", "alm1", nil, decimal.NewFromInt(2))

	_, err := uc.Transferir(context.Background(), inventario.TransferirInput{
		PresentacionID:  "saco20",
		AlmacenOrigenID: "alm1",
		AlmacenDestID:   "alm2",
		Cantidad:        decimal.NewFromInt(5),
		UsuarioID:       "u1",
	})
	assert.ErrorIs(t, err, domain.ErrStockInsuficiente)
	assert.True(t, store.Cantidad("saco20", "alm1", nil).Equal(decimal.NewFromInt(2)))
	assert.True(t, store.Cantidad("saco20", "alm2", nil).IsZero())
	assert.Empty(t, store.Movimientos)
}

func TestTransferir_MismoAlmacen(t *testing.T) {
	_, uc := nuevoEntorno()
	_, err := uc.Transferir(context.Background(), inventario.TransferirInput{
		PresentacionID:  "saco20",
		AlmacenOrigenID: "alm1",
		AlmacenDestID:   "alm1",
		Cantidad:        decimal.NewFromInt(1),
	})
	assert.ErrorIs(t, err, domain.ErrEntradaInvalida)
}

func TestListarMovimientos_FiltroPorOperacion(t *testing.T) {
	store, uc := nuevoEntorno()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := uc.RegistrarMovimiento(ctx, inventario.MovimientoInput{
			Tipo:           entity.MovimientoEntrada,
			PresentacionID: "saco20",
			AlmacenID:      "alm1",
			Cantidad:       decimal.NewFromInt(1),
			UsuarioID:      "u1",
		})
		require.NoError(t, err)
	}
	store.SetPosicion("saco20", "alm1", nil, decimal.NewFromInt(10))
	_, err := uc.Transferir(ctx, inventario.TransferirInput{
		PresentacionID:  "saco20",
		AlmacenOrigenID: "alm1",
		AlmacenDestID:   "alm2",
		Cantidad:        decimal.NewFromInt(1),
		UsuarioID:       "u1",
	})
	require.NoError(t, err)

	manuales, err := uc.ListarMovimientos(ctx, repository.MovimientoFiltro{TipoOperacion: entity.OperacionManual})
	require.NoError(t, err)
	assert.Len(t, manuales, 3)

	traslados, err := uc.ListarMovimientos(ctx, repository.MovimientoFiltro{TipoOperacion: entity.OperacionTransferencia})
	require.NoError(t, err)
	assert.Len(t, traslados, 2)
}

func TestAplicarEnTx_LoteAjustaKg(t *testing.T) {
	store, uc := nuevoEntorno()
	ctx := context.Background()
	loteID := "lote1"
	store.Lotes[loteID] = &entity.Lote{
		ID: loteID, CantidadDisponibleKg: decimal.NewFromInt(100),
		FechaIngreso: time.Now().Add(-48 * time.Hour),
	}
	store.SetPosicion("saco20", "alm1", &loteID, decimal.NewFromInt(4))

	// Salida de 2 sacos de 20kg: la posición baja a 2 y el lote pierde 40 kg.
	_, err := uc.RegistrarMovimiento(ctx, inventario.MovimientoInput{
		Tipo:           entity.MovimientoSalida,
		PresentacionID: "saco20",
		AlmacenID:      "alm1",
		LoteID:         &loteID,
		Cantidad:       decimal.NewFromInt(2),
		UsuarioID:      "u1",
	})
	require.NoError(t, err)
	assert.True(t, store.Cantidad("saco20", "alm1", &loteID).Equal(decimal.NewFromInt(2)))
	assert.True(t, store.Lotes[loteID].CantidadDisponibleKg.Equal(decimal.NewFromInt(60)))
}
