package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entrada(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &m))
	return m
}

func TestNew_EstampaServicio(t *testing.T) {
	var buf bytes.Buffer
	l := New(Opciones{Entorno: "production", Nivel: "info", Servicio: "inventario-api"}).Salida(&buf)

	l.Info().Str("accion", "arranque").Msg("listo")

	m := entrada(t, &buf)
	assert.Equal(t, "inventario-api", m["servicio"])
	assert.Equal(t, "arranque", m["accion"])
}

func TestComponente_AgregaCampo(t *testing.T) {
	var buf bytes.Buffer
	l := New(Opciones{Entorno: "production", Nivel: "info", Servicio: "inventario-api"}).
		Componente("postgres").Salida(&buf)

	l.Warn().Msg("reconectando")

	m := entrada(t, &buf)
	assert.Equal(t, "postgres", m["componente"])
	assert.Equal(t, "inventario-api", m["servicio"])
}

func TestNew_NivelFiltra(t *testing.T) {
	var buf bytes.Buffer
	l := New(Opciones{Entorno: "production", Nivel: "warn"}).Salida(&buf)

	l.Debug().Msg("no debe salir")
	assert.Zero(t, buf.Len())

	l.Error().Msg("sí sale")
	assert.NotZero(t, buf.Len())
}

func TestNew_NivelDesconocidoCaeEnInfo(t *testing.T) {
	var buf bytes.Buffer
	l := New(Opciones{Entorno: "production", Nivel: "gritando"}).Salida(&buf)

	l.Debug().Msg("filtrado")
	assert.Zero(t, buf.Len())

	l.Info().Msg("visible")
	assert.NotZero(t, buf.Len())
}
