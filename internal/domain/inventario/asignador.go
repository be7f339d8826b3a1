package inventario

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/carbosur/inventario-api/internal/domain"
)

// LoteDisponible es la vista que el asignador necesita de una posición de
// stock acotada a un lote: cuántas unidades hay y cuándo ingresó el lote.
type LoteDisponible struct {
	LoteID       string
	FechaIngreso time.Time
	Disponible   decimal.Decimal
}

// Asignacion indica cuántas unidades se toman de un lote.
type Asignacion struct {
	LoteID   string
	Cantidad decimal.Decimal
}

// Asignar reparte la cantidad solicitada entre los lotes disponibles, del más
// antiguo al más reciente (FIFO por fecha de ingreso), tomando de cada uno
// todo lo posible hasta cubrir la solicitud. Si el total disponible no alcanza
// devuelve StockInsuficienteError con el faltante exacto y ninguna asignación.
//
// Es una función pura: no toca la base de datos. El caller es responsable de
// haber bloqueado las posiciones antes de aplicar el resultado.
func Asignar(lotes []LoteDisponible, solicitado decimal.Decimal) ([]Asignacion, error) {
	if !solicitado.GreaterThan(decimal.Zero) {
		return nil, domain.ErrEntradaInvalida
	}

	elegibles := make([]LoteDisponible, 0, len(lotes))
	disponibleTotal := decimal.Zero
	for _, l := range lotes {
		if l.Disponible.GreaterThan(decimal.Zero) {
			elegibles = append(elegibles, l)
			disponibleTotal = disponibleTotal.Add(l.Disponible)
		}
	}

	if disponibleTotal.LessThan(solicitado) {
		return nil, &domain.StockInsuficienteError{
			Solicitado: solicitado,
			Disponible: disponibleTotal,
		}
	}

	// Orden estable: fecha de ingreso ascendente, lote como desempate.
	sort.SliceStable(elegibles, func(i, j int) bool {
		if elegibles[i].FechaIngreso.Equal(elegibles[j].FechaIngreso) {
			return elegibles[i].LoteID < elegibles[j].LoteID
		}
		return elegibles[i].FechaIngreso.Before(elegibles[j].FechaIngreso)
	})

	var resultado []Asignacion
	restante := solicitado
	for _, l := range elegibles {
		if !restante.GreaterThan(decimal.Zero) {
			break
		}
		tomar := decimal.Min(l.Disponible, restante)
		resultado = append(resultado, Asignacion{LoteID: l.LoteID, Cantidad: tomar})
		restante = restante.Sub(tomar)
	}
	return resultado, nil
}
