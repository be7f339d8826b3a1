package produccion_test

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
	"github.com/carbosur/inventario-api/internal/application/produccion"
	"github.com/carbosur/inventario-api/internal/domain"
	"github.com/carbosur/inventario-api/internal/domain/entity"
	"github.com/carbosur/inventario-api/internal/domain/repository"
)

func entornoProduccion(t *testing.T, kgEnLote int64) (*apptest.Store, *produccion.UseCase) {
	t.Helper()
	store := apptest.NewStore()
	store.Presentaciones["briq"] = &entity.Presentacion{
		ID: "briq", Nombre: "Briqueta x12", CapacidadKg: decimal.NewFromInt(6),
		Tipo: entity.TipoBriqueta, PrecioVenta: decimal.NewFromInt(15), Activo: true,
	}
	store.Almacenes["alm1"] = &entity.Almacen{ID: "alm1", Nombre: "Principal"}
	store.Lotes["lote1"] = &entity.Lote{
		ID: "lote1", CantidadDisponibleKg: decimal.NewFromInt(kgEnLote),
		FechaIngreso: time.Now().Add(-24 * time.Hour),
	}

	runner := &apptest.TxRunner{S: store}
	movimientosUC := inventario.NewMovimientosUseCase(
		runner,
		&apptest.PresentacionRepo{S: store},
		&apptest.AlmacenRepo{S: store},
		&apptest.LoteRepo{S: store},
		&apptest.InventarioRepo{S: store},
		&apptest.MovimientoRepo{S: store},
	)
	uc := produccion.NewUseCase(
		runner,
		movimientosUC,
		&apptest.PresentacionRepo{S: store},
		&apptest.AlmacenRepo{S: store},
		&apptest.LoteRepo{S: store},
		&apptest.MermaRepo{S: store},
	)
	return store, uc
}

func TestConvertir(t *testing.T) {
	store, uc := entornoProduccion(t, 100)

	resp, err := uc.Convertir(context.Background(), "u1", dto.ConvertirProduccionRequest{
		LoteOrigenID:       "lote1",
		PresentacionOutID:  "briq",
		AlmacenID:          "alm1",
		UnidadesProducidas: decimal.NewFromInt(10),
	})
	require.NoError(t, err)
	assert.True(t, resp.KgConsumidos.Equal(decimal.NewFromInt(60))) // 10 × 6 kg

	// El lote pierde los kg consumidos; el terminado entra sin lote.
	assert.True(t, store.Lotes["lote1"].CantidadDisponibleKg.Equal(decimal.NewFromInt(40)))
	assert.True(t, store.Cantidad("briq", "alm1", nil).Equal(decimal.NewFromInt(10)))

	// Par salida/entrada ligado por el mismo grupo, marcado como ensamblaje.
	require.Len(t, store.Movimientos, 2)
	salida, entrada := store.Movimientos[0], store.Movimientos[1]
	assert.Equal(t, entity.MovimientoSalida, salida.Tipo)
	assert.Nil(t, salida.PresentacionID) // la salida es materia prima en kg
	assert.True(t, salida.Cantidad.Equal(decimal.NewFromInt(60)))
	assert.Equal(t, entity.MovimientoEntrada, entrada.Tipo)
	require.NotNil(t, entrada.PresentacionID)
	assert.Equal(t, "briq", *entrada.PresentacionID)
	assert.True(t, entrada.Cantidad.Equal(decimal.NewFromInt(10)))
	for _, m := range store.Movimientos {
		assert.Equal(t, resp.GrupoID, m.GrupoID)
		assert.Equal(t, entity.OperacionEnsamblaje, m.TipoOperacion)
	}
}

func TestConvertir_MermaInsuficiente(t *testing.T) {
	store, uc := entornoProduccion(t, 50)

	// 10 unidades × 6 kg = 60 kg y el lote solo tiene 50: nada debe cambiar.
	_, err := uc.Convertir(context.Background(), "u1", dto.ConvertirProduccionRequest{
		LoteOrigenID:       "lote1",
		PresentacionOutID:  "briq",
		AlmacenID:          "alm1",
		UnidadesProducidas: decimal.NewFromInt(10),
	})

	var stockErr *domain.StockInsuficienteError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, "lote1", stockErr.LoteID)
	assert.True(t, stockErr.Faltante().Equal(decimal.NewFromInt(10)))

	assert.True(t, store.Lotes["lote1"].CantidadDisponibleKg.Equal(decimal.NewFromInt(50)))
	assert.True(t, store.Cantidad("briq", "alm1", nil).IsZero())
	assert.Empty(t, store.Movimientos)
}

func TestRegistrarMerma(t *testing.T) {
	store, uc := entornoProduccion(t, 100)

	resp, err := uc.RegistrarMerma(context.Background(), "u1", dto.RegistrarMermaRequest{
		LoteID:     "lote1",
		AlmacenID:  "alm1",
		CantidadKg: decimal.NewFromInt(30),
	})
	require.NoError(t, err)
	assert.False(t, resp.Convertida)

	// Los kg de la merma salen del disponible del lote.
	assert.True(t, store.Lotes["lote1"].CantidadDisponibleKg.Equal(decimal.NewFromInt(70)))

	// Queda la salida en el log, agrupada por el ID de la merma.
	require.Len(t, store.Movimientos, 1)
	salida := store.Movimientos[0]
	assert.Equal(t, entity.MovimientoSalida, salida.Tipo)
	assert.Equal(t, entity.OperacionMerma, salida.TipoOperacion)
	assert.Equal(t, resp.ID, salida.GrupoID)
	assert.Nil(t, salida.PresentacionID)
	assert.True(t, salida.Cantidad.Equal(decimal.NewFromInt(30)))

	require.Contains(t, store.Mermas, resp.ID)
	assert.True(t, store.Mermas[resp.ID].CantidadKg.Equal(decimal.NewFromInt(30)))
}

func TestRegistrarMerma_Insuficiente(t *testing.T) {
	store, uc := entornoProduccion(t, 20)

	_, err := uc.RegistrarMerma(context.Background(), "u1", dto.RegistrarMermaRequest{
		LoteID:     "lote1",
		AlmacenID:  "alm1",
		CantidadKg: decimal.NewFromInt(25),
	})

	var stockErr *domain.StockInsuficienteError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, "lote1", stockErr.LoteID)

	assert.True(t, store.Lotes["lote1"].CantidadDisponibleKg.Equal(decimal.NewFromInt(20)))
	assert.Empty(t, store.Movimientos)
	assert.Empty(t, store.Mermas)
}

func TestConvertirMerma(t *testing.T) {
	store, uc := entornoProduccion(t, 100)

	merma, err := uc.RegistrarMerma(context.Background(), "u1", dto.RegistrarMermaRequest{
		LoteID:     "lote1",
		AlmacenID:  "alm1",
		CantidadKg: decimal.NewFromInt(40),
	})
	require.NoError(t, err)

	// 40 kg / 6 kg por briqueta = 6 unidades; los 4 kg restantes se pierden.
	resp, err := uc.ConvertirMerma(context.Background(), "u1", dto.ConvertirMermaRequest{
		MermaID:           merma.ID,
		PresentacionOutID: "briq",
		AlmacenID:         "alm1",
	})
	require.NoError(t, err)
	assert.True(t, resp.Unidades.Equal(decimal.NewFromInt(6)))
	assert.True(t, resp.KgAprovechados.Equal(decimal.NewFromInt(36)))

	assert.True(t, store.Cantidad("briq", "alm1", nil).Equal(decimal.NewFromInt(6)))
	assert.True(t, store.Mermas[merma.ID].ConvertidaABriquetas)

	// El lote no vuelve a descontarse: los kg salieron al registrar la merma.
	assert.True(t, store.Lotes["lote1"].CantidadDisponibleKg.Equal(decimal.NewFromInt(60)))

	// La conversión suma una sola entrada al log (la salida fue la del registro).
	require.Len(t, store.Movimientos, 2)
	entrada := store.Movimientos[1]
	assert.Equal(t, entity.MovimientoEntrada, entrada.Tipo)
	assert.Equal(t, entity.OperacionEnsamblaje, entrada.TipoOperacion)
	assert.Equal(t, resp.GrupoID, entrada.GrupoID)
}

func TestConvertirMerma_YaConvertida(t *testing.T) {
	store, uc := entornoProduccion(t, 100)

	merma, err := uc.RegistrarMerma(context.Background(), "u1", dto.RegistrarMermaRequest{
		LoteID:     "lote1",
		AlmacenID:  "alm1",
		CantidadKg: decimal.NewFromInt(12),
	})
	require.NoError(t, err)

	_, err = uc.ConvertirMerma(context.Background(), "u1", dto.ConvertirMermaRequest{
		MermaID: merma.ID, PresentacionOutID: "briq", AlmacenID: "alm1",
	})
	require.NoError(t, err)

	// Segunda conversión del mismo registro: rechazada y sin doble entrada.
	_, err = uc.ConvertirMerma(context.Background(), "u1", dto.ConvertirMermaRequest{
		MermaID: merma.ID, PresentacionOutID: "briq", AlmacenID: "alm1",
	})
	assert.ErrorIs(t, err, domain.ErrEntradaInvalida)
	assert.True(t, store.Cantidad("briq", "alm1", nil).Equal(decimal.NewFromInt(2)))
}

func TestListarMermas_SoloPendientes(t *testing.T) {
	_, uc := entornoProduccion(t, 100)
	ctx := context.Background()

	m1, err := uc.RegistrarMerma(ctx, "u1", dto.RegistrarMermaRequest{
		LoteID: "lote1", AlmacenID: "alm1", CantidadKg: decimal.NewFromInt(12),
	})
	require.NoError(t, err)
	_, err = uc.RegistrarMerma(ctx, "u1", dto.RegistrarMermaRequest{
		LoteID: "lote1", AlmacenID: "alm1", CantidadKg: decimal.NewFromInt(18),
	})
	require.NoError(t, err)

	_, err = uc.ConvertirMerma(ctx, "u1", dto.ConvertirMermaRequest{
		MermaID: m1.ID, PresentacionOutID: "briq", AlmacenID: "alm1",
	})
	require.NoError(t, err)

	todas, err := uc.ListarMermas(ctx, repository.MermaFiltro{LoteID: "lote1"})
	require.NoError(t, err)
	assert.Len(t, todas, 2)

	pendientes, err := uc.ListarMermas(ctx, repository.MermaFiltro{LoteID: "lote1", SoloPendientes: true})
	require.NoError(t, err)
	require.Len(t, pendientes, 1)
	assert.NotEqual(t, m1.ID, pendientes[0].ID)
}

func TestConvertir_Validaciones(t *testing.T) {
	_, uc := entornoProduccion(t, 100)
	ctx := context.Background()

	_, err := uc.Convertir(ctx, "u1", dto.ConvertirProduccionRequest{
		LoteOrigenID: "lote1", PresentacionOutID: "briq", AlmacenID: "alm1",
		UnidadesProducidas: decimal.Zero,
	})
	assert.ErrorIs(t, err, domain.ErrMontoInvalido)

	_, err = uc.Convertir(ctx, "u1", dto.ConvertirProduccionRequest{
		LoteOrigenID: "no-existe", PresentacionOutID: "briq", AlmacenID: "alm1",
		UnidadesProducidas: decimal.NewFromInt(1),
	})
	assert.ErrorIs(t, err, domain.ErrNoEncontrado)
}
