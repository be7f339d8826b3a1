package catalogo_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carbosur/inventario-api/internal/application/apptest"
	"github.com/carbosur/inventario-api/internal/application/catalogo"
	"github.com/carbosur/inventario-api/internal/application/dto"
	"github.com/carbosur/inventario-api/internal/domain"
)

func entornoCatalogo(t *testing.T) (*apptest.Store, *catalogo.UseCase) {
	t.Helper()
	store := apptest.NewStore()
	uc := catalogo.NewUseCase(
		&apptest.PresentacionRepo{S: store},
		&apptest.AlmacenRepo{S: store},
		&apptest.LoteRepo{S: store},
	)
	return store, uc
}

func TestCrearPresentacion(t *testing.T) {
	store, uc := entornoCatalogo(t)
	ctx := context.Background()

	resp, err := uc.CrearPresentacion(ctx, dto.CrearPresentacionRequest{
		Nombre:      "Saco 20kg",
		CapacidadKg: decimal.NewFromInt(20),
		Tipo:        "procesado",
		PrecioVenta: decimal.NewFromInt(30),
	})
	require.NoError(t, err)
	assert.True(t, resp.Activo)
	assert.Len(t, store.Presentaciones, 1)

	_, err = uc.CrearPresentacion(ctx, dto.CrearPresentacionRequest{
		Nombre: "Saco raro", CapacidadKg: decimal.NewFromInt(1), Tipo: "gaseoso",
	})
	assert.ErrorIs(t, err, domain.ErrEntradaInvalida)

	_, err = uc.CrearPresentacion(ctx, dto.CrearPresentacionRequest{
		Nombre: "Saco vacío", CapacidadKg: decimal.Zero, Tipo: "procesado",
	})
	assert.ErrorIs(t, err, domain.ErrEntradaInvalida)
}

func TestDesactivarPresentacion(t *testing.T) {
	store, uc := entornoCatalogo(t)
	ctx := context.Background()

	resp, err := uc.CrearPresentacion(ctx, dto.CrearPresentacionRequest{
		Nombre: "Bolsa 5kg", CapacidadKg: decimal.NewFromInt(5), Tipo: "detalle",
	})
	require.NoError(t, err)

	require.NoError(t, uc.DesactivarPresentacion(ctx, resp.ID))
	assert.False(t, store.Presentaciones[resp.ID].Activo)

	activas, err := uc.ListPresentaciones(ctx, true)
	require.NoError(t, err)
	assert.Empty(t, activas)
}

func TestCrearLote_DisponibleInicial(t *testing.T) {
	_, uc := entornoCatalogo(t)
	ctx := context.Background()

	// Con peso seco declarado, el disponible arranca ahí.
	fecha := time.Now().AddDate(0, 0, -2)
	resp, err := uc.CrearLote(ctx, dto.CrearLoteRequest{
		Proveedor:    "Carbonera del Valle",
		PesoHumedoKg: decimal.NewFromInt(500),
		PesoSecoKg:   decimal.NewFromInt(430),
		FechaIngreso: &fecha,
	})
	require.NoError(t, err)
	assert.True(t, resp.CantidadDisponibleKg.Equal(decimal.NewFromInt(430)))
	assert.True(t, resp.FechaIngreso.Equal(fecha))

	// Sin peso seco todavía, manda el húmedo.
	resp, err = uc.CrearLote(ctx, dto.CrearLoteRequest{
		PesoHumedoKg: decimal.NewFromInt(200),
	})
	require.NoError(t, err)
	assert.True(t, resp.CantidadDisponibleKg.Equal(decimal.NewFromInt(200)))

	_, err = uc.CrearLote(ctx, dto.CrearLoteRequest{PesoHumedoKg: decimal.Zero})
	assert.ErrorIs(t, err, domain.ErrEntradaInvalida)
}
