package ventas

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/carbosur/inventario-api/internal/application/dto"
	"github.com/carbosur/inventario-api/internal/domain"
	"github.com/carbosur/inventario-api/internal/domain/entity"
	domventas "github.com/carbosur/inventario-api/internal/domain/ventas"
	"github.com/carbosur/inventario-api/internal/domain/repository"
)

var metodosValidos = map[string]bool{
	entity.MetodoEfectivo:      true,
	entity.MetodoDeposito:      true,
	entity.MetodoTransferencia: true,
	entity.MetodoTarjeta:       true,
	entity.MetodoYapePlin:      true,
	entity.MetodoOtro:          true,
}

// AplicarPagoUseCase concilia pagos contra ventas: registra el abono,
// recalcula el acumulado y deriva el estado de pago. No toca stock.
type AplicarPagoUseCase struct {
	txRunner TxRunner
}

// NewAplicarPagoUseCase construye el caso de uso.
func NewAplicarPagoUseCase(txRunner TxRunner) *AplicarPagoUseCase {
	return &AplicarPagoUseCase{txRunner: txRunner}
}

// AplicarPago aplica un abono a la venta. Bloquea la fila de la venta para
// serializar pagos concurrentes sobre la misma venta; pagos a ventas
// distintas no se bloquean entre sí. El sobrepago se tolera y queda
// registrado tal cual. Si algo falla, el estado de la venta no cambia.
func (uc *AplicarPagoUseCase) AplicarPago(ctx context.Context, usuarioID, ventaID string, in dto.AplicarPagoRequest) (*dto.PagoResponse, error) {
	if !in.Monto.GreaterThan(decimal.Zero) {
		return nil, domain.ErrMontoInvalido
	}
	if !metodosValidos[in.MetodoPago] {
		return nil, domain.ErrEntradaInvalida
	}

	var resp *dto.PagoResponse
	err := uc.txRunner.RunPago(ctx, func(
		ventaRepo repository.VentaRepository,
		pagoRepo repository.PagoRepository,
	) error {
		venta, err := ventaRepo.GetForUpdate(ventaID)
		if err != nil {
			return err
		}
		if venta == nil {
			return domain.ErrNoEncontrado
		}

		pagadoPrevio, err := pagoRepo.TotalPagado(ventaID)
		if err != nil {
			return fmt.Errorf("total pagado: %w", err)
		}

		pago := &entity.Pago{
			ID:         uuid.New().String(),
			VentaID:    ventaID,
			UsuarioID:  usuarioID,
			Monto:      in.Monto,
			Fecha:      time.Now(),
			MetodoPago: in.MetodoPago,
			Referencia: in.Referencia,
			CreatedAt:  time.Now(),
		}
		if err := pagoRepo.Create(pago); err != nil {
			return fmt.Errorf("crear pago: %w", err)
		}

		pagadoTotal := pagadoPrevio.Add(in.Monto)
		estado := domventas.DerivarEstadoPago(venta.Total, pagadoTotal)
		if estado != venta.EstadoPago {
			if err := ventaRepo.UpdateEstadoPago(ventaID, estado); err != nil {
				return fmt.Errorf("actualizar estado: %w", err)
			}
		}

		saldo := venta.Total.Sub(pagadoTotal)
		if saldo.IsNegative() {
			saldo = decimal.Zero
		}
		resp = &dto.PagoResponse{
			PagoID:         pago.ID,
			VentaID:        ventaID,
			EstadoPago:     estado,
			TotalPagado:    pagadoTotal,
			SaldoPendiente: saldo,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}
