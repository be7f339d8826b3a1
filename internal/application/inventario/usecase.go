package inventario

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/carbosur/inventario-api/internal/domain"
	"github.com/carbosur/inventario-api/internal/domain/entity"
	"github.com/carbosur/inventario-api/internal/domain/repository"
)

// MovimientosUseCase es el libro de inventario: registra entradas y salidas
// con bloqueo de fila (SELECT FOR UPDATE) sobre la posición afectada y valida
// la no-negatividad en un único punto. Toda mutación de stock del sistema
// (ventas, producción, ajustes, traslados) pasa por AplicarEnTx.
type MovimientosUseCase struct {
	txRunner         TxRunner
	presentacionRepo repository.PresentacionRepository
	almacenRepo      repository.AlmacenRepository
	loteRepo         repository.LoteRepository
	inventarioRepo   repository.InventarioRepository
	movimientoRepo   repository.MovimientoRepository
}

// NewMovimientosUseCase construye el caso de uso. Los repositorios sueltos
// (sin tx) se usan solo para validaciones y lecturas.
func NewMovimientosUseCase(
	txRunner TxRunner,
	presentacionRepo repository.PresentacionRepository,
	almacenRepo repository.AlmacenRepository,
	loteRepo repository.LoteRepository,
	inventarioRepo repository.InventarioRepository,
	movimientoRepo repository.MovimientoRepository,
) *MovimientosUseCase {
	return &MovimientosUseCase{
		txRunner:         txRunner,
		presentacionRepo: presentacionRepo,
		almacenRepo:      almacenRepo,
		loteRepo:         loteRepo,
		inventarioRepo:   inventarioRepo,
		movimientoRepo:   movimientoRepo,
	}
}

// MovimientoInput entrada para registrar un movimiento manual.
type MovimientoInput struct {
	Tipo           string // entrada | salida
	PresentacionID string
	AlmacenID      string
	LoteID         *string
	Cantidad       decimal.Decimal
	Motivo         string
	UsuarioID      string
}

// RegistrarMovimiento valida referencias y aplica el movimiento en una
// transacción propia. Devuelve el movimiento persistido.
func (uc *MovimientosUseCase) RegistrarMovimiento(ctx context.Context, input MovimientoInput) (*entity.Movimiento, error) {
	if input.Tipo != entity.MovimientoEntrada && input.Tipo != entity.MovimientoSalida {
		return nil, domain.ErrEntradaInvalida
	}
	if !input.Cantidad.GreaterThan(decimal.Zero) {
		return nil, domain.ErrMontoInvalido
	}

	pres, err := uc.presentacionRepo.GetByID(input.PresentacionID)
	if err != nil || pres == nil {
		return nil, domain.ErrNoEncontrado
	}
	if alm, err := uc.almacenRepo.GetByID(input.AlmacenID); err != nil || alm == nil {
		return nil, domain.ErrNoEncontrado
	}
	if input.LoteID != nil {
		if lote, err := uc.loteRepo.GetByID(*input.LoteID); err != nil || lote == nil {
			return nil, domain.ErrNoEncontrado
		}
	}

	var mov *entity.Movimiento
	err = uc.txRunner.Run(ctx, func(
		movRepo repository.MovimientoRepository,
		invRepo repository.InventarioRepository,
		loteRepo repository.LoteRepository,
	) error {
		m, err := uc.AplicarEnTx(movRepo, invRepo, loteRepo, MovimientoTx{
			Tipo:          input.Tipo,
			Presentacion:  pres,
			AlmacenID:     input.AlmacenID,
			LoteID:        input.LoteID,
			Cantidad:      input.Cantidad,
			Fecha:         time.Now(),
			GrupoID:       uuid.New().String(),
			UsuarioID:     input.UsuarioID,
			Motivo:        input.Motivo,
			TipoOperacion: entity.OperacionManual,
		})
		mov = m
		return err
	})
	if err != nil {
		return nil, err
	}
	return mov, nil
}

// MovimientoTx describe un movimiento a aplicar dentro de una transacción ya
// abierta. Presentacion en nil significa salida de materia prima en kg
// directamente contra el lote (sin posición de inventario).
type MovimientoTx struct {
	Tipo          string
	Presentacion  *entity.Presentacion
	AlmacenID     string
	LoteID        *string
	Cantidad      decimal.Decimal
	Fecha         time.Time
	GrupoID       string
	UsuarioID     string
	Motivo        string
	TipoOperacion string
}

// AplicarEnTx es el único punto que muta stock. Bloquea la posición afectada,
// valida que una salida no deje cantidad negativa, actualiza la posición y el
// kg disponible del lote cuando corresponde, y agrega la fila inmutable al
// log de movimientos. Debe ejecutarse dentro de la tx del caller: la
// atomicidad de la operación completa la garantiza el TxRunner.
func (uc *MovimientosUseCase) AplicarEnTx(
	movRepo repository.MovimientoRepository,
	invRepo repository.InventarioRepository,
	loteRepo repository.LoteRepository,
	m MovimientoTx,
) (*entity.Movimiento, error) {
	if !m.Cantidad.GreaterThan(decimal.Zero) {
		return nil, domain.ErrMontoInvalido
	}

	if m.Presentacion != nil {
		if err := uc.aplicarSobrePosicion(invRepo, m); err != nil {
			return nil, err
		}
		if m.LoteID != nil {
			// Movimiento atado a lote: el contador en kg del lote se ajusta
			// en la misma unidad atómica (cantidad × peso neto).
			kg := m.Cantidad.Mul(m.Presentacion.CapacidadKg)
			if err := uc.ajustarLoteKg(loteRepo, *m.LoteID, m.Tipo, kg); err != nil {
				return nil, err
			}
		}
	} else {
		// Sin presentación: la cantidad es kg consumidos del lote (producción).
		if m.LoteID == nil {
			return nil, domain.ErrEntradaInvalida
		}
		if err := uc.ajustarLoteKg(loteRepo, *m.LoteID, m.Tipo, m.Cantidad); err != nil {
			return nil, err
		}
	}

	mov := &entity.Movimiento{
		ID:            uuid.New().String(),
		GrupoID:       m.GrupoID,
		Tipo:          m.Tipo,
		AlmacenID:     m.AlmacenID,
		LoteID:        m.LoteID,
		Cantidad:      m.Cantidad,
		Fecha:         m.Fecha,
		Motivo:        m.Motivo,
		TipoOperacion: m.TipoOperacion,
		UsuarioID:     m.UsuarioID,
		CreatedAt:     m.Fecha,
	}
	if m.Presentacion != nil {
		id := m.Presentacion.ID
		mov.PresentacionID = &id
	}
	if err := movRepo.Create(mov); err != nil {
		return nil, fmt.Errorf("crear movimiento: %w", err)
	}
	return mov, nil
}

// aplicarSobrePosicion bloquea la fila de inventario y aplica el delta.
func (uc *MovimientosUseCase) aplicarSobrePosicion(invRepo repository.InventarioRepository, m MovimientoTx) error {
	inv, err := invRepo.GetForUpdate(m.Presentacion.ID, m.AlmacenID, m.LoteID)
	if err != nil {
		return err
	}
	if m.Tipo == entity.MovimientoSalida {
		if inv.Cantidad.LessThan(m.Cantidad) {
			loteID := ""
			if m.LoteID != nil {
				loteID = *m.LoteID
			}
			return &domain.StockInsuficienteError{
				PresentacionID: m.Presentacion.ID,
				LoteID:         loteID,
				Solicitado:     m.Cantidad,
				Disponible:     inv.Cantidad,
			}
		}
		inv.Cantidad = inv.Cantidad.Sub(m.Cantidad)
	} else {
		inv.Cantidad = inv.Cantidad.Add(m.Cantidad)
	}
	inv.UltimaActualizacion = m.Fecha
	if err := invRepo.Upsert(inv); err != nil {
		return fmt.Errorf("actualizar posición: %w", err)
	}
	return nil
}

// ajustarLoteKg bloquea la fila del lote y mueve su disponible en kg.
func (uc *MovimientosUseCase) ajustarLoteKg(loteRepo repository.LoteRepository, loteID, tipo string, kg decimal.Decimal) error {
	lote, err := loteRepo.GetForUpdate(loteID)
	if err != nil {
		return err
	}
	if lote == nil {
		return domain.ErrNoEncontrado
	}
	nueva := lote.CantidadDisponibleKg
	if tipo == entity.MovimientoSalida {
		if nueva.LessThan(kg) {
			return &domain.StockInsuficienteError{
				LoteID:     loteID,
				Solicitado: kg,
				Disponible: nueva,
			}
		}
		nueva = nueva.Sub(kg)
	} else {
		nueva = nueva.Add(kg)
	}
	if err := loteRepo.ActualizarDisponible(loteID, nueva); err != nil {
		return fmt.Errorf("actualizar lote: %w", err)
	}
	return nil
}

// ObtenerStock devuelve la cantidad total de una presentación en un almacén,
// sumando posiciones con y sin lote.
func (uc *MovimientosUseCase) ObtenerStock(ctx context.Context, presentacionID, almacenID string) (decimal.Decimal, error) {
	if pres, err := uc.presentacionRepo.GetByID(presentacionID); err != nil || pres == nil {
		return decimal.Zero, domain.ErrNoEncontrado
	}
	if alm, err := uc.almacenRepo.GetByID(almacenID); err != nil || alm == nil {
		return decimal.Zero, domain.ErrNoEncontrado
	}
	return uc.inventarioRepo.TotalPorPresentacion(presentacionID, almacenID)
}

// ListarBajoMinimo lista las posiciones del almacén por debajo de su umbral
// de reposición.
func (uc *MovimientosUseCase) ListarBajoMinimo(ctx context.Context, almacenID string) ([]*entity.Inventario, error) {
	if alm, err := uc.almacenRepo.GetByID(almacenID); err != nil || alm == nil {
		return nil, domain.ErrNoEncontrado
	}
	return uc.inventarioRepo.BajoStockMinimo(almacenID)
}

// ListarMovimientos consulta el historial con filtros opcionales.
func (uc *MovimientosUseCase) ListarMovimientos(ctx context.Context, f repository.MovimientoFiltro) ([]*entity.Movimiento, error) {
	if f.Limit <= 0 || f.Limit > 100 {
		f.Limit = 50
	}
	return uc.movimientoRepo.List(f)
}

// TransferirInput traslado entre almacenes.
type TransferirInput struct {
	PresentacionID  string
	AlmacenOrigenID string
	AlmacenDestID   string
	LoteID          *string
	Cantidad        decimal.Decimal
	Motivo          string
	UsuarioID       string
}

// Transferir descuenta del almacén origen y acredita en el destino en una
// sola transacción, registrando el par salida/entrada con el mismo grupo.
func (uc *MovimientosUseCase) Transferir(ctx context.Context, input TransferirInput) (grupoID string, err error) {
	if input.AlmacenOrigenID == input.AlmacenDestID {
		return "", domain.ErrEntradaInvalida
	}
	if !input.Cantidad.GreaterThan(decimal.Zero) {
		return "", domain.ErrMontoInvalido
	}
	pres, err := uc.presentacionRepo.GetByID(input.PresentacionID)
	if err != nil || pres == nil {
		return "", domain.ErrNoEncontrado
	}
	for _, id := range []string{input.AlmacenOrigenID, input.AlmacenDestID} {
		if alm, err := uc.almacenRepo.GetByID(id); err != nil || alm == nil {
			return "", domain.ErrNoEncontrado
		}
	}

	grupoID = uuid.New().String()
	ahora := time.Now()
	motivo := input.Motivo
	if motivo == "" {
		motivo = fmt.Sprintf("Traslado %s -> %s", input.AlmacenOrigenID, input.AlmacenDestID)
	}

	err = uc.txRunner.Run(ctx, func(
		movRepo repository.MovimientoRepository,
		invRepo repository.InventarioRepository,
		loteRepo repository.LoteRepository,
	) error {
		base := MovimientoTx{
			Presentacion:  pres,
			LoteID:        input.LoteID,
			Cantidad:      input.Cantidad,
			Fecha:         ahora,
			GrupoID:       grupoID,
			UsuarioID:     input.UsuarioID,
			Motivo:        motivo,
			TipoOperacion: entity.OperacionTransferencia,
		}

		salida := base
		salida.Tipo = entity.MovimientoSalida
		salida.AlmacenID = input.AlmacenOrigenID
		if _, err := uc.AplicarEnTx(movRepo, invRepo, loteRepo, salida); err != nil {
			return err
		}

		entrada := base
		entrada.Tipo = entity.MovimientoEntrada
		entrada.AlmacenID = input.AlmacenDestID
		_, err := uc.AplicarEnTx(movRepo, invRepo, loteRepo, entrada)
		return err
	})
	if err != nil {
		return "", err
	}
	return grupoID, nil
}
