package clientes_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carbosur/inventario-api/internal/domain/clientes"
	"github.com/carbosur/inventario-api/internal/domain/entity"
)

var hoy = time.Date(2026, 8, 29, 15, 30, 0, 0, time.UTC)

func clienteConCadencia(frecuenciaDias int, ultimaCompraHaceDias int) *entity.Cliente {
	ultima := hoy.AddDate(0, 0, -ultimaCompraHaceDias)
	return &entity.Cliente{
		ID:                   "c1",
		Nombre:               "Restaurante El Fogón",
		FrecuenciaCompraDias: &frecuenciaDias,
		UltimaFechaCompra:    &ultima,
	}
}

// Cadencia 10, última compra hace 12 días: vencida con 2 días de atraso.
func TestProyectar_Vencida(t *testing.T) {
	p := clientes.Proyectar(clienteConCadencia(10, 12), hoy)

	assert.Equal(t, clientes.ProyeccionVencida, p.Estado)
	assert.Equal(t, 2, p.DiasAtraso)
	require.NotNil(t, p.ProximaCompra)
	assert.Equal(t, hoy.AddDate(0, 0, -2).Truncate(24*time.Hour).Day(), p.ProximaCompra.Day())
}

func TestProyectar_ProximaDentroDeTresDias(t *testing.T) {
	p := clientes.Proyectar(clienteConCadencia(10, 8), hoy)
	assert.Equal(t, clientes.ProyeccionProxima, p.Estado)
	assert.Zero(t, p.DiasAtraso)
}

// El mismo día esperado cuenta como próxima, no como vencida.
func TestProyectar_MismoDia(t *testing.T) {
	p := clientes.Proyectar(clienteConCadencia(10, 10), hoy)
	assert.Equal(t, clientes.ProyeccionProxima, p.Estado)
	assert.Zero(t, p.DiasAtraso)
}

func TestProyectar_Programada(t *testing.T) {
	p := clientes.Proyectar(clienteConCadencia(30, 5), hoy)
	assert.Equal(t, clientes.ProyeccionProgramada, p.Estado)
}

// La fecha manual manda por completo, aunque la cadencia diga otra cosa.
func TestProyectar_FechaManualTienePrioridad(t *testing.T) {
	c := clienteConCadencia(10, 12) // por cadencia estaría vencida
	manual := hoy.AddDate(0, 0, 15)
	c.ProximaCompraManual = &manual

	p := clientes.Proyectar(c, hoy)
	assert.Equal(t, clientes.ProyeccionProgramada, p.Estado)
	require.NotNil(t, p.ProximaCompra)
	assert.Equal(t, manual.Day(), p.ProximaCompra.Day())
}

func TestProyectar_SinDatos(t *testing.T) {
	casos := map[string]*entity.Cliente{
		"sin nada":       {ID: "c1"},
		"sin frecuencia": {ID: "c2", UltimaFechaCompra: &hoy},
		"frecuencia cero": func() *entity.Cliente {
			f := 0
			return &entity.Cliente{ID: "c3", UltimaFechaCompra: &hoy, FrecuenciaCompraDias: &f}
		}(),
	}
	for nombre, c := range casos {
		t.Run(nombre, func(t *testing.T) {
			p := clientes.Proyectar(c, hoy)
			assert.Equal(t, clientes.ProyeccionSinDatos, p.Estado)
			assert.Nil(t, p.ProximaCompra)
		})
	}
}
