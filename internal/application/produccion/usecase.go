package produccion

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/carbosur/inventario-api/internal/application/dto"
	appinv "github.com/carbosur/inventario-api/internal/application/inventario"
	"github.com/carbosur/inventario-api/internal/domain"
	"github.com/carbosur/inventario-api/internal/domain/entity"
	"github.com/carbosur/inventario-api/internal/domain/repository"
)

// InventarioUseCase lo que producción necesita del motor de inventario.
type InventarioUseCase interface {
	AplicarEnTx(
		movRepo repository.MovimientoRepository,
		invRepo repository.InventarioRepository,
		loteRepo repository.LoteRepository,
		m appinv.MovimientoTx,
	) (*entity.Movimiento, error)
}

// UseCase cubre la producción: registro de mermas de un lote y su conversión
// en producto terminado (típicamente briquetas). Todo pasa por el mismo
// camino que las ventas: el libro de movimientos y el bloqueo por fila.
type UseCase struct {
	txRunner         TxRunner
	inventarioUC     InventarioUseCase
	presentacionRepo repository.PresentacionRepository
	almacenRepo      repository.AlmacenRepository
	loteRepo         repository.LoteRepository
	mermaRepo        repository.MermaRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	txRunner TxRunner,
	inventarioUC InventarioUseCase,
	presentacionRepo repository.PresentacionRepository,
	almacenRepo repository.AlmacenRepository,
	loteRepo repository.LoteRepository,
	mermaRepo repository.MermaRepository,
) *UseCase {
	return &UseCase{
		txRunner:         txRunner,
		inventarioUC:     inventarioUC,
		presentacionRepo: presentacionRepo,
		almacenRepo:      almacenRepo,
		loteRepo:         loteRepo,
		mermaRepo:        mermaRepo,
	}
}

// Convertir transforma kg de un lote directamente en producto terminado: una
// salida en kg contra el lote y una entrada de unidades en la posición
// destino, marcadas como ensamblaje y ligadas por un grupo común. Los kg
// consumidos se derivan del peso neto de la presentación destino:
// unidades × capacidad_kg. Si el lote no tiene esos kg disponibles, la
// operación completa se rechaza sin cambios.
func (uc *UseCase) Convertir(ctx context.Context, usuarioID string, in dto.ConvertirProduccionRequest) (*dto.ConvertirProduccionResponse, error) {
	if !in.UnidadesProducidas.GreaterThan(decimal.Zero) {
		return nil, domain.ErrMontoInvalido
	}

	pres, err := uc.presentacionRepo.GetByID(in.PresentacionOutID)
	if err != nil || pres == nil || !pres.Activo {
		return nil, domain.ErrNoEncontrado
	}
	if alm, err := uc.almacenRepo.GetByID(in.AlmacenID); err != nil || alm == nil {
		return nil, domain.ErrNoEncontrado
	}
	if lote, err := uc.loteRepo.GetByID(in.LoteOrigenID); err != nil || lote == nil {
		return nil, domain.ErrNoEncontrado
	}

	kgConsumidos := in.UnidadesProducidas.Mul(pres.CapacidadKg)
	if !kgConsumidos.GreaterThan(decimal.Zero) {
		return nil, domain.ErrEntradaInvalida
	}

	grupoID := uuid.New().String()
	ahora := time.Now()
	motivo := fmt.Sprintf("Ensamblaje %s: %s unidades de %s", grupoID, in.UnidadesProducidas, pres.Nombre)
	if in.Descripcion != "" {
		motivo = fmt.Sprintf("Ensamblaje %s: %s", grupoID, in.Descripcion)
	}

	var salidaID, entradaID string
	err = uc.txRunner.Run(ctx, func(
		movRepo repository.MovimientoRepository,
		invRepo repository.InventarioRepository,
		loteRepo repository.LoteRepository,
	) error {
		// Salida de materia prima: kg contra el lote, sin presentación.
		salida, err := uc.inventarioUC.AplicarEnTx(movRepo, invRepo, loteRepo, appinv.MovimientoTx{
			Tipo:          entity.MovimientoSalida,
			AlmacenID:     in.AlmacenID,
			LoteID:        &in.LoteOrigenID,
			Cantidad:      kgConsumidos,
			Fecha:         ahora,
			GrupoID:       grupoID,
			UsuarioID:     usuarioID,
			Motivo:        motivo,
			TipoOperacion: entity.OperacionEnsamblaje,
		})
		if err != nil {
			return err
		}
		salidaID = salida.ID

		// Entrada del producto terminado en la posición sin lote.
		entrada, err := uc.inventarioUC.AplicarEnTx(movRepo, invRepo, loteRepo, appinv.MovimientoTx{
			Tipo:          entity.MovimientoEntrada,
			Presentacion:  pres,
			AlmacenID:     in.AlmacenID,
			Cantidad:      in.UnidadesProducidas,
			Fecha:         ahora,
			GrupoID:       grupoID,
			UsuarioID:     usuarioID,
			Motivo:        motivo,
			TipoOperacion: entity.OperacionEnsamblaje,
		})
		if err != nil {
			return err
		}
		entradaID = entrada.ID
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &dto.ConvertirProduccionResponse{
		GrupoID:      grupoID,
		SalidaID:     salidaID,
		EntradaID:    entradaID,
		KgConsumidos: kgConsumidos,
		Unidades:     in.UnidadesProducidas,
	}, nil
}

// RegistrarMerma asienta residuo detectado en un lote: descuenta los kg del
// disponible, deja la salida en el log con operación merma y crea el
// registro pendiente de conversión. El ID de la merma es el grupo de su
// movimiento.
func (uc *UseCase) RegistrarMerma(ctx context.Context, usuarioID string, in dto.RegistrarMermaRequest) (*dto.MermaResponse, error) {
	if !in.CantidadKg.GreaterThan(decimal.Zero) {
		return nil, domain.ErrMontoInvalido
	}
	if alm, err := uc.almacenRepo.GetByID(in.AlmacenID); err != nil || alm == nil {
		return nil, domain.ErrNoEncontrado
	}
	if lote, err := uc.loteRepo.GetByID(in.LoteID); err != nil || lote == nil {
		return nil, domain.ErrNoEncontrado
	}

	ahora := time.Now()
	merma := &entity.Merma{
		ID:            uuid.New().String(),
		LoteID:        in.LoteID,
		CantidadKg:    in.CantidadKg,
		FechaRegistro: ahora,
		UsuarioID:     usuarioID,
		CreatedAt:     ahora,
	}
	motivo := fmt.Sprintf("Merma %s: %s kg del lote %s", merma.ID, in.CantidadKg, in.LoteID)
	if in.Descripcion != "" {
		motivo = fmt.Sprintf("Merma %s: %s", merma.ID, in.Descripcion)
	}

	err := uc.txRunner.RunMerma(ctx, func(
		movRepo repository.MovimientoRepository,
		invRepo repository.InventarioRepository,
		loteRepo repository.LoteRepository,
		mermaRepo repository.MermaRepository,
	) error {
		if _, err := uc.inventarioUC.AplicarEnTx(movRepo, invRepo, loteRepo, appinv.MovimientoTx{
			Tipo:          entity.MovimientoSalida,
			AlmacenID:     in.AlmacenID,
			LoteID:        &in.LoteID,
			Cantidad:      in.CantidadKg,
			Fecha:         ahora,
			GrupoID:       merma.ID,
			UsuarioID:     usuarioID,
			Motivo:        motivo,
			TipoOperacion: entity.OperacionMerma,
		}); err != nil {
			return err
		}
		if err := mermaRepo.Create(merma); err != nil {
			return fmt.Errorf("crear merma: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return mermaAResponse(merma), nil
}

// ConvertirMerma transforma una merma pendiente en producto terminado. Los
// kg ya salieron del lote al registrarla; aquí solo entran las unidades que
// alcanzan con el peso de la merma y el registro queda marcado como
// convertido. El sobrante que no completa una unidad se pierde.
func (uc *UseCase) ConvertirMerma(ctx context.Context, usuarioID string, in dto.ConvertirMermaRequest) (*dto.ConvertirMermaResponse, error) {
	pres, err := uc.presentacionRepo.GetByID(in.PresentacionOutID)
	if err != nil || pres == nil || !pres.Activo {
		return nil, domain.ErrNoEncontrado
	}
	if alm, err := uc.almacenRepo.GetByID(in.AlmacenID); err != nil || alm == nil {
		return nil, domain.ErrNoEncontrado
	}

	grupoID := uuid.New().String()
	ahora := time.Now()

	var entradaID string
	var unidades decimal.Decimal
	err = uc.txRunner.RunMerma(ctx, func(
		movRepo repository.MovimientoRepository,
		invRepo repository.InventarioRepository,
		loteRepo repository.LoteRepository,
		mermaRepo repository.MermaRepository,
	) error {
		merma, err := mermaRepo.GetForUpdate(in.MermaID)
		if err != nil {
			return err
		}
		if merma == nil {
			return domain.ErrNoEncontrado
		}
		if merma.ConvertidaABriquetas {
			return domain.ErrEntradaInvalida
		}

		unidades = merma.CantidadKg.Div(pres.CapacidadKg).Floor()
		if !unidades.GreaterThan(decimal.Zero) {
			return domain.ErrEntradaInvalida
		}

		motivo := fmt.Sprintf("Conversión de merma %s: %s unidades de %s", merma.ID, unidades, pres.Nombre)
		if in.Descripcion != "" {
			motivo = fmt.Sprintf("Conversión de merma %s: %s", merma.ID, in.Descripcion)
		}

		entrada, err := uc.inventarioUC.AplicarEnTx(movRepo, invRepo, loteRepo, appinv.MovimientoTx{
			Tipo:          entity.MovimientoEntrada,
			Presentacion:  pres,
			AlmacenID:     in.AlmacenID,
			Cantidad:      unidades,
			Fecha:         ahora,
			GrupoID:       grupoID,
			UsuarioID:     usuarioID,
			Motivo:        motivo,
			TipoOperacion: entity.OperacionEnsamblaje,
		})
		if err != nil {
			return err
		}
		entradaID = entrada.ID

		if err := mermaRepo.MarcarConvertida(merma.ID); err != nil {
			return fmt.Errorf("marcar merma convertida: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &dto.ConvertirMermaResponse{
		MermaID:        in.MermaID,
		GrupoID:        grupoID,
		EntradaID:      entradaID,
		Unidades:       unidades,
		KgAprovechados: unidades.Mul(pres.CapacidadKg),
	}, nil
}

// ListarMermas consulta los registros de merma con filtros opcionales.
func (uc *UseCase) ListarMermas(ctx context.Context, f repository.MermaFiltro) ([]*dto.MermaResponse, error) {
	mermas, err := uc.mermaRepo.List(f)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.MermaResponse, 0, len(mermas))
	for _, m := range mermas {
		out = append(out, mermaAResponse(m))
	}
	return out, nil
}

func mermaAResponse(m *entity.Merma) *dto.MermaResponse {
	return &dto.MermaResponse{
		ID:            m.ID,
		LoteID:        m.LoteID,
		CantidadKg:    m.CantidadKg,
		Convertida:    m.ConvertidaABriquetas,
		FechaRegistro: m.FechaRegistro,
	}
}
