package clientes

import (
	"time"

	"github.com/carbosur/inventario-api/internal/domain/entity"
)

// Estados de la proyección de próxima compra de un cliente.
const (
	ProyeccionProgramada = "programada"     // la fecha esperada aún está lejos
	ProyeccionProxima    = "proxima"        // faltan 3 días o menos
	ProyeccionVencida    = "vencida"        // la fecha esperada ya pasó
	ProyeccionSinDatos   = "sin_proyeccion" // no hay cadencia ni fecha manual
)

// diasAnticipacion marca desde cuántos días antes la compra se considera próxima.
const diasAnticipacion = 3

// Proyeccion es el resultado del cálculo: fecha esperada de próxima compra,
// días de atraso (0 si no está vencida) y estado.
type Proyeccion struct {
	ProximaCompra *time.Time
	DiasAtraso    int
	Estado        string
}

// Proyectar calcula la próxima compra esperada de un cliente. Si existe una
// fecha manual, esta manda por completo sobre la cadencia calculada. Si no,
// se usa última compra + frecuencia en días. Es un cálculo de lectura puro,
// recomputado bajo demanda; no se persiste para evitar datos rancios.
func Proyectar(c *entity.Cliente, hoy time.Time) Proyeccion {
	esperada, ok := fechaEsperada(c)
	if !ok {
		return Proyeccion{Estado: ProyeccionSinDatos}
	}

	hoyDia := truncarADia(hoy)
	esperadaDia := truncarADia(esperada)
	diferencia := diasEntre(hoyDia, esperadaDia)

	p := Proyeccion{ProximaCompra: &esperadaDia}
	switch {
	case diferencia < 0:
		p.Estado = ProyeccionVencida
		p.DiasAtraso = -diferencia
	case diferencia <= diasAnticipacion:
		p.Estado = ProyeccionProxima
	default:
		p.Estado = ProyeccionProgramada
	}
	return p
}

func fechaEsperada(c *entity.Cliente) (time.Time, bool) {
	if c.ProximaCompraManual != nil {
		return *c.ProximaCompraManual, true
	}
	if c.UltimaFechaCompra == nil || c.FrecuenciaCompraDias == nil || *c.FrecuenciaCompraDias <= 0 {
		return time.Time{}, false
	}
	return c.UltimaFechaCompra.AddDate(0, 0, *c.FrecuenciaCompraDias), true
}

func truncarADia(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// diasEntre devuelve esperada - hoy en días completos (negativo si ya pasó).
func diasEntre(hoy, esperada time.Time) int {
	return int(esperada.Sub(hoy).Hours() / 24)
}
