package ventas

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/carbosur/inventario-api/internal/application/dto"
	appinv "github.com/carbosur/inventario-api/internal/application/inventario"
	"github.com/carbosur/inventario-api/internal/domain"
	"github.com/carbosur/inventario-api/internal/domain/entity"
	dominv "github.com/carbosur/inventario-api/internal/domain/inventario"
	domventas "github.com/carbosur/inventario-api/internal/domain/ventas"
	"github.com/carbosur/inventario-api/internal/domain/repository"
)

// CrearVentaUseCase orquesta la creación de una venta: valida las líneas,
// asigna lotes FIFO por línea, calcula el total y persiste venta, detalles y
// movimientos de salida en una sola transacción. Si una sola línea no puede
// asignarse por completo, la venta entera se rechaza sin dejar rastro.
type CrearVentaUseCase struct {
	txRunner         TxRunner
	inventarioUC     InventarioUseCase
	presentacionRepo repository.PresentacionRepository
	almacenRepo      repository.AlmacenRepository
	clienteRepo      repository.ClienteRepository
	ventaRepo        repository.VentaRepository
}

// NewCrearVentaUseCase construye el caso de uso.
func NewCrearVentaUseCase(
	txRunner TxRunner,
	inventarioUC InventarioUseCase,
	presentacionRepo repository.PresentacionRepository,
	almacenRepo repository.AlmacenRepository,
	clienteRepo repository.ClienteRepository,
	ventaRepo repository.VentaRepository,
) *CrearVentaUseCase {
	return &CrearVentaUseCase{
		txRunner:         txRunner,
		inventarioUC:     inventarioUC,
		presentacionRepo: presentacionRepo,
		almacenRepo:      almacenRepo,
		clienteRepo:      clienteRepo,
		ventaRepo:        ventaRepo,
	}
}

// CrearVenta crea la venta completa. vendedorID lo aporta la capa que llama
// (viene de la sesión, no del cuerpo de la petición).
func (uc *CrearVentaUseCase) CrearVenta(ctx context.Context, vendedorID string, in dto.CrearVentaRequest) (*dto.VentaResponse, error) {
	if in.ClienteID == "" || in.AlmacenID == "" || len(in.Detalles) == 0 {
		return nil, domain.ErrEntradaInvalida
	}
	if in.TipoPago != entity.PagoContado && in.TipoPago != entity.PagoCredito {
		return nil, domain.ErrEntradaInvalida
	}
	if in.ConsumoDiarioKg != nil && !in.ConsumoDiarioKg.GreaterThan(decimal.Zero) {
		return nil, domain.ErrMontoInvalido
	}

	cliente, err := uc.clienteRepo.GetByID(in.ClienteID)
	if err != nil || cliente == nil {
		return nil, domain.ErrNoEncontrado
	}
	if alm, err := uc.almacenRepo.GetByID(in.AlmacenID); err != nil || alm == nil {
		return nil, domain.ErrNoEncontrado
	}

	// Resolver presentaciones y precios fuera de la tx (catálogo, solo lectura).
	presentaciones := make(map[string]*entity.Presentacion, len(in.Detalles))
	for i := range in.Detalles {
		linea := &in.Detalles[i]
		if linea.PresentacionID == "" || !linea.Cantidad.GreaterThan(decimal.Zero) {
			return nil, domain.ErrMontoInvalido
		}
		if linea.PrecioUnitario.IsNegative() {
			return nil, domain.ErrEntradaInvalida
		}
		pres, err := uc.presentacionRepo.GetByID(linea.PresentacionID)
		if err != nil || pres == nil || !pres.Activo {
			return nil, domain.ErrNoEncontrado
		}
		presentaciones[pres.ID] = pres
		if linea.PrecioUnitario.IsZero() {
			linea.PrecioUnitario = pres.PrecioVenta
		}
	}

	// Total computado manda; un total declarado distinto rechaza la venta.
	total := decimal.Zero
	for _, linea := range in.Detalles {
		total = total.Add(linea.Cantidad.Mul(linea.PrecioUnitario))
	}
	if in.TotalDeclarado != nil && !in.TotalDeclarado.Equal(total) {
		return nil, domain.ErrTotalNoCoincide
	}
	// Una venta de total cero no existe como negocio: líneas a precio cero
	// sin precio de lista tampoco pasan.
	if !total.GreaterThan(decimal.Zero) {
		return nil, domain.ErrMontoInvalido
	}

	ahora := time.Now()
	ventaID := uuid.New().String()
	motivo := fmt.Sprintf("Venta %s - Cliente: %s", ventaID, cliente.Nombre)

	venta := &entity.Venta{
		ID:              ventaID,
		ClienteID:       in.ClienteID,
		AlmacenID:       in.AlmacenID,
		VendedorID:      vendedorID,
		Fecha:           ahora,
		Total:           total,
		TipoPago:        in.TipoPago,
		EstadoPago:      domventas.EstadoPendiente,
		ConsumoDiarioKg: in.ConsumoDiarioKg,
		CreatedAt:       ahora,
		UpdatedAt:       ahora,
	}
	var detalles []*entity.VentaDetalle

	err = uc.txRunner.RunVenta(ctx, func(
		movRepo repository.MovimientoRepository,
		invRepo repository.InventarioRepository,
		loteRepo repository.LoteRepository,
		ventaRepo repository.VentaRepository,
		clienteRepo repository.ClienteRepository,
	) error {
		// 1) Asignar y descontar stock por línea. Cualquier faltante aborta
		// la transacción completa: ninguna venta parcial es observable.
		kgVendidos := decimal.Zero
		for _, linea := range in.Detalles {
			pres := presentaciones[linea.PresentacionID]
			asignaciones, err := uc.descontarLinea(movRepo, invRepo, loteRepo, pres, in.AlmacenID, linea.Cantidad, ahora, ventaID, vendedorID, motivo)
			if err != nil {
				return err
			}
			detalle := &entity.VentaDetalle{
				ID:             uuid.New().String(),
				VentaID:        ventaID,
				PresentacionID: pres.ID,
				Cantidad:       linea.Cantidad,
				PrecioUnitario: linea.PrecioUnitario,
			}
			// El detalle solo apunta a un lote cuando la línea salió entera
			// de uno; el reparto real queda en movimientos.
			if len(asignaciones) == 1 {
				loteID := asignaciones[0].LoteID
				detalle.LoteID = &loteID
			}
			detalles = append(detalles, detalle)
			kgVendidos = kgVendidos.Add(linea.Cantidad.Mul(pres.CapacidadKg))
		}

		// 2) Persistir cabecera y detalles.
		if err := ventaRepo.Create(venta); err != nil {
			return fmt.Errorf("crear venta: %w", err)
		}
		for _, d := range detalles {
			if err := ventaRepo.CreateDetalle(d); err != nil {
				return fmt.Errorf("crear detalle: %w", err)
			}
		}

		// 3) Con consumo diario declarado, derivar la cadencia del cliente:
		// kg vendidos / consumo diario ≈ días hasta la próxima compra.
		if in.ConsumoDiarioKg != nil && kgVendidos.GreaterThan(decimal.Zero) {
			dias := kgVendidos.Div(*in.ConsumoDiarioKg).Ceil().IntPart()
			if dias < 1 {
				dias = 1
			}
			if err := clienteRepo.ActualizarCadencia(in.ClienteID, ahora, int(dias)); err != nil {
				return fmt.Errorf("actualizar cadencia: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return ventaAResponse(venta, detalles), nil
}

// descontarLinea descuenta el stock de una línea. Para presentaciones con
// lote busca las posiciones bloqueadas, reparte FIFO y emite una salida por
// (lote, cantidad); sin concepto de lote descuenta la posición directa.
func (uc *CrearVentaUseCase) descontarLinea(
	movRepo repository.MovimientoRepository,
	invRepo repository.InventarioRepository,
	loteRepo repository.LoteRepository,
	pres *entity.Presentacion,
	almacenID string,
	cantidad decimal.Decimal,
	ahora time.Time,
	ventaID, vendedorID, motivo string,
) ([]dominv.Asignacion, error) {
	base := appinv.MovimientoTx{
		Tipo:          entity.MovimientoSalida,
		Presentacion:  pres,
		AlmacenID:     almacenID,
		Fecha:         ahora,
		GrupoID:       ventaID,
		UsuarioID:     vendedorID,
		Motivo:        motivo,
		TipoOperacion: entity.OperacionVenta,
	}

	var lotes []dominv.LoteDisponible
	if pres.UsaLotes() {
		var err error
		lotes, err = invRepo.LotesDisponiblesForUpdate(pres.ID, almacenID)
		if err != nil {
			return nil, fmt.Errorf("lotes disponibles: %w", err)
		}
	}

	// Sin posiciones con lote (SKU terminado o presentación aún sin lotes):
	// descuenta directo contra la posición sin lote.
	if len(lotes) == 0 {
		mov := base
		mov.Cantidad = cantidad
		if _, err := uc.inventarioUC.AplicarEnTx(movRepo, invRepo, loteRepo, mov); err != nil {
			return nil, err
		}
		return nil, nil
	}

	asignaciones, err := dominv.Asignar(lotes, cantidad)
	if err != nil {
		var stockErr *domain.StockInsuficienteError
		if errors.As(err, &stockErr) {
			stockErr.PresentacionID = pres.ID
		}
		return nil, err
	}
	for _, a := range asignaciones {
		loteID := a.LoteID
		mov := base
		mov.LoteID = &loteID
		mov.Cantidad = a.Cantidad
		if _, err := uc.inventarioUC.AplicarEnTx(movRepo, invRepo, loteRepo, mov); err != nil {
			return nil, err
		}
	}
	return asignaciones, nil
}

// GetVenta devuelve una venta con sus detalles.
func (uc *CrearVentaUseCase) GetVenta(ctx context.Context, id string) (*dto.VentaResponse, error) {
	venta, err := uc.ventaRepo.GetByID(id)
	if err != nil || venta == nil {
		return nil, domain.ErrNoEncontrado
	}
	detalles, err := uc.ventaRepo.GetDetalles(id)
	if err != nil {
		return nil, err
	}
	return ventaAResponse(venta, detalles), nil
}

func ventaAResponse(v *entity.Venta, detalles []*entity.VentaDetalle) *dto.VentaResponse {
	resp := &dto.VentaResponse{
		ID:         v.ID,
		ClienteID:  v.ClienteID,
		AlmacenID:  v.AlmacenID,
		VendedorID: v.VendedorID,
		Fecha:      v.Fecha,
		Total:      v.Total,
		TipoPago:   v.TipoPago,
		EstadoPago: v.EstadoPago,
		Detalles:   make([]dto.VentaDetalleResponse, 0, len(detalles)),
	}
	for _, d := range detalles {
		resp.Detalles = append(resp.Detalles, dto.VentaDetalleResponse{
			ID:             d.ID,
			PresentacionID: d.PresentacionID,
			LoteID:         d.LoteID,
			Cantidad:       d.Cantidad,
			PrecioUnitario: d.PrecioUnitario,
			TotalLinea:     d.TotalLinea(),
		})
	}
	return resp
}
