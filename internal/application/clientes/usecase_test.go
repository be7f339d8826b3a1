package clientes_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carbosur/inventario-api/internal/application/apptest"
	"github.com/carbosur/inventario-api/internal/application/clientes"
	"github.com/carbosur/inventario-api/internal/application/dto"
	"github.com/carbosur/inventario-api/internal/domain"
	domclientes "github.com/carbosur/inventario-api/internal/domain/clientes"
	"github.com/carbosur/inventario-api/internal/domain/entity"
)

func entornoClientes(t *testing.T) (*apptest.Store, *clientes.UseCase) {
	t.Helper()
	store := apptest.NewStore()
	return store, clientes.NewUseCase(&apptest.ClienteRepo{S: store})
}

func TestCrearYObtenerCliente(t *testing.T) {
	store, uc := entornoClientes(t)
	ctx := context.Background()

	resp, err := uc.Crear(ctx, dto.CrearClienteRequest{
		Nombre: "Pollería Doña Rosa", Telefono: "999111222", Ciudad: "Arequipa",
	})
	require.NoError(t, err)
	require.NotEmpty(t, resp.ID)
	assert.Len(t, store.Clientes, 1)

	got, err := uc.GetByID(ctx, resp.ID)
	require.NoError(t, err)
	assert.Equal(t, "Pollería Doña Rosa", got.Nombre)

	_, err = uc.Crear(ctx, dto.CrearClienteRequest{})
	assert.ErrorIs(t, err, domain.ErrEntradaInvalida)

	_, err = uc.GetByID(ctx, "no-existe")
	assert.ErrorIs(t, err, domain.ErrNoEncontrado)
}

func TestListClientes_Filtros(t *testing.T) {
	store, uc := entornoClientes(t)
	store.Clientes["a"] = &entity.Cliente{ID: "a", Nombre: "Pollería Central", Ciudad: "Arequipa"}
	store.Clientes["b"] = &entity.Cliente{ID: "b", Nombre: "Parrillas del Sur", Ciudad: "Tacna"}
	store.Clientes["c"] = &entity.Cliente{ID: "c", Nombre: "Pollería Norte", Ciudad: "Arequipa"}

	lista, err := uc.List(context.Background(), "pollería", "Arequipa", 0, 0)
	require.NoError(t, err)
	assert.Len(t, lista, 2)
}

func TestProyectar_ManualMandaSobreCadencia(t *testing.T) {
	store, uc := entornoClientes(t)
	frecuencia := 7
	hace10 := time.Now().AddDate(0, 0, -10)
	manual := time.Now().AddDate(0, 0, 30)
	store.Clientes["cli1"] = &entity.Cliente{
		ID:                   "cli1",
		Nombre:               "Restaurante El Fogón",
		FrecuenciaCompraDias: &frecuencia,
		UltimaFechaCompra:    &hace10,
		ProximaCompraManual:  &manual,
	}

	// Sin la fecha manual la cadencia daría vencida; la manual la pisa.
	p, err := uc.Proyectar(context.Background(), "cli1")
	require.NoError(t, err)
	assert.Equal(t, domclientes.ProyeccionProgramada, p.Estado)
	assert.Equal(t, 0, p.DiasAtraso)
	require.NotNil(t, p.ProximaCompra)
}

func TestProyectar_SinDatos(t *testing.T) {
	store, uc := entornoClientes(t)
	store.Clientes["cli1"] = &entity.Cliente{ID: "cli1", Nombre: "Nuevo"}

	p, err := uc.Proyectar(context.Background(), "cli1")
	require.NoError(t, err)
	assert.Equal(t, domclientes.ProyeccionSinDatos, p.Estado)
	assert.Nil(t, p.ProximaCompra)
}

func TestFijarProximaManual(t *testing.T) {
	store, uc := entornoClientes(t)
	store.Clientes["cli1"] = &entity.Cliente{ID: "cli1", Nombre: "Restaurante El Fogón"}
	ctx := context.Background()

	fecha := time.Now().AddDate(0, 0, 15)
	require.NoError(t, uc.FijarProximaManual(ctx, "cli1", &fecha))
	require.NotNil(t, store.Clientes["cli1"].ProximaCompraManual)

	// nil limpia la fecha y la proyección vuelve a la cadencia.
	require.NoError(t, uc.FijarProximaManual(ctx, "cli1", nil))
	assert.Nil(t, store.Clientes["cli1"].ProximaCompraManual)

	assert.ErrorIs(t, uc.FijarProximaManual(ctx, "no-existe", nil), domain.ErrNoEncontrado)
}
