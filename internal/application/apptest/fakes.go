// Package apptest provee dobles en memoria de los repositorios y del
// TxRunner para probar los casos de uso sin base de datos. El runner imita
// la semántica transaccional: toma un snapshot del estado antes de ejecutar
// y lo restaura si la función devuelve error.
package apptest

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/carbosur/inventario-api/internal/domain"
	"github.com/carbosur/inventario-api/internal/domain/entity"
	dominv "github.com/carbosur/inventario-api/internal/domain/inventario"
	"github.com/carbosur/inventario-api/internal/domain/repository"
)

// Store estado compartido de todos los repositorios falsos.
type Store struct {
	mu sync.Mutex

	Presentaciones map[string]*entity.Presentacion
	Almacenes      map[string]*entity.Almacen
	Lotes          map[string]*entity.Lote
	Posiciones     map[string]*entity.Inventario
	Movimientos    []*entity.Movimiento
	Ventas         map[string]*entity.Venta
	Detalles       []*entity.VentaDetalle
	Pagos          []*entity.Pago
	Clientes       map[string]*entity.Cliente
	Mermas         map[string]*entity.Merma
	Pedidos        map[string]*entity.Pedido
	PedidoDetalles []*entity.PedidoDetalle
}

// NewStore crea un estado vacío.
func NewStore() *Store {
	return &Store{
		Presentaciones: map[string]*entity.Presentacion{},
		Almacenes:      map[string]*entity.Almacen{},
		Lotes:          map[string]*entity.Lote{},
		Posiciones:     map[string]*entity.Inventario{},
		Ventas:         map[string]*entity.Venta{},
		Clientes:       map[string]*entity.Cliente{},
		Mermas:         map[string]*entity.Merma{},
		Pedidos:        map[string]*entity.Pedido{},
	}
}

// ClaveInv clave de una posición de stock; lote nil usa "-".
func ClaveInv(presentacionID, almacenID string, loteID *string) string {
	l := "-"
	if loteID != nil {
		l = *loteID
	}
	return strings.Join([]string{presentacionID, almacenID, l}, "|")
}

// SetPosicion siembra una posición de stock.
func (s *Store) SetPosicion(presentacionID, almacenID string, loteID *string, cantidad decimal.Decimal) {
	s.Posiciones[ClaveInv(presentacionID, almacenID, loteID)] = &entity.Inventario{
		ID:             ClaveInv(presentacionID, almacenID, loteID),
		PresentacionID: presentacionID,
		AlmacenID:      almacenID,
		LoteID:         loteID,
		Cantidad:       cantidad,
	}
}

// Cantidad devuelve la cantidad actual de una posición (cero si no existe).
func (s *Store) Cantidad(presentacionID, almacenID string, loteID *string) decimal.Decimal {
	if inv, ok := s.Posiciones[ClaveInv(presentacionID, almacenID, loteID)]; ok {
		return inv.Cantidad
	}
	return decimal.Zero
}

type snapshot struct {
	lotes          map[string]entity.Lote
	posiciones     map[string]entity.Inventario
	movimientos    []*entity.Movimiento
	ventas         map[string]entity.Venta
	detalles       []*entity.VentaDetalle
	pagos          []*entity.Pago
	clientes       map[string]entity.Cliente
	mermas         map[string]entity.Merma
	pedidos        map[string]entity.Pedido
	pedidoDetalles []*entity.PedidoDetalle
}

func (s *Store) take() snapshot {
	sn := snapshot{
		lotes:          map[string]entity.Lote{},
		posiciones:     map[string]entity.Inventario{},
		ventas:         map[string]entity.Venta{},
		clientes:       map[string]entity.Cliente{},
		mermas:         map[string]entity.Merma{},
		pedidos:        map[string]entity.Pedido{},
		movimientos:    append([]*entity.Movimiento(nil), s.Movimientos...),
		detalles:       append([]*entity.VentaDetalle(nil), s.Detalles...),
		pagos:          append([]*entity.Pago(nil), s.Pagos...),
		pedidoDetalles: append([]*entity.PedidoDetalle(nil), s.PedidoDetalles...),
	}
	for k, v := range s.Lotes {
		sn.lotes[k] = *v
	}
	for k, v := range s.Posiciones {
		sn.posiciones[k] = *v
	}
	for k, v := range s.Ventas {
		sn.ventas[k] = *v
	}
	for k, v := range s.Clientes {
		sn.clientes[k] = *v
	}
	for k, v := range s.Mermas {
		sn.mermas[k] = *v
	}
	for k, v := range s.Pedidos {
		sn.pedidos[k] = *v
	}
	return sn
}

func (s *Store) restore(sn snapshot) {
	s.Lotes = map[string]*entity.Lote{}
	for k, v := range sn.lotes {
		l := v
		s.Lotes[k] = &l
	}
	s.Posiciones = map[string]*entity.Inventario{}
	for k, v := range sn.posiciones {
		p := v
		s.Posiciones[k] = &p
	}
	s.Ventas = map[string]*entity.Venta{}
	for k, v := range sn.ventas {
		ve := v
		s.Ventas[k] = &ve
	}
	s.Clientes = map[string]*entity.Cliente{}
	for k, v := range sn.clientes {
		c := v
		s.Clientes[k] = &c
	}
	s.Mermas = map[string]*entity.Merma{}
	for k, v := range sn.mermas {
		m := v
		s.Mermas[k] = &m
	}
	s.Pedidos = map[string]*entity.Pedido{}
	for k, v := range sn.pedidos {
		p := v
		s.Pedidos[k] = &p
	}
	s.Movimientos = sn.movimientos
	s.Detalles = sn.detalles
	s.Pagos = sn.pagos
	s.PedidoDetalles = sn.pedidoDetalles
}

// TxRunner doble del runner transaccional. Serializa las transacciones con
// un mutex (el equivalente grueso del bloqueo por fila) y revierte el estado
// completo si la función falla.
type TxRunner struct {
	S *Store
}

// Run ejecuta fn con semántica todo-o-nada.
func (r *TxRunner) Run(ctx context.Context, fn func(
	movRepo repository.MovimientoRepository,
	invRepo repository.InventarioRepository,
	loteRepo repository.LoteRepository,
) error) error {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	sn := r.S.take()
	if err := fn(&MovimientoRepo{S: r.S}, &InventarioRepo{S: r.S}, &LoteRepo{S: r.S}); err != nil {
		r.S.restore(sn)
		return err
	}
	return nil
}

// RunVenta ejecuta la unidad atómica de una venta.
func (r *TxRunner) RunVenta(ctx context.Context, fn func(
	movRepo repository.MovimientoRepository,
	invRepo repository.InventarioRepository,
	loteRepo repository.LoteRepository,
	ventaRepo repository.VentaRepository,
	clienteRepo repository.ClienteRepository,
) error) error {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	sn := r.S.take()
	err := fn(&MovimientoRepo{S: r.S}, &InventarioRepo{S: r.S}, &LoteRepo{S: r.S}, &VentaRepo{S: r.S}, &ClienteRepo{S: r.S})
	if err != nil {
		r.S.restore(sn)
	}
	return err
}

// RunMerma ejecuta la unidad atómica de producción sobre inventario y mermas.
func (r *TxRunner) RunMerma(ctx context.Context, fn func(
	movRepo repository.MovimientoRepository,
	invRepo repository.InventarioRepository,
	loteRepo repository.LoteRepository,
	mermaRepo repository.MermaRepository,
) error) error {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	sn := r.S.take()
	err := fn(&MovimientoRepo{S: r.S}, &InventarioRepo{S: r.S}, &LoteRepo{S: r.S}, &MermaRepo{S: r.S})
	if err != nil {
		r.S.restore(sn)
	}
	return err
}

// RunPedido ejecuta la unidad atómica de un pedido.
func (r *TxRunner) RunPedido(ctx context.Context, fn func(
	pedidoRepo repository.PedidoRepository,
) error) error {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	sn := r.S.take()
	err := fn(&PedidoRepo{S: r.S})
	if err != nil {
		r.S.restore(sn)
	}
	return err
}

// RunPago ejecuta la unidad atómica de un pago.
func (r *TxRunner) RunPago(ctx context.Context, fn func(
	ventaRepo repository.VentaRepository,
	pagoRepo repository.PagoRepository,
) error) error {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	sn := r.S.take()
	err := fn(&VentaRepo{S: r.S}, &PagoRepo{S: r.S})
	if err != nil {
		r.S.restore(sn)
	}
	return err
}

// PresentacionRepo doble en memoria.
type PresentacionRepo struct{ S *Store }

func (r *PresentacionRepo) Create(p *entity.Presentacion) error {
	r.S.Presentaciones[p.ID] = p
	return nil
}

func (r *PresentacionRepo) GetByID(id string) (*entity.Presentacion, error) {
	return r.S.Presentaciones[id], nil
}

func (r *PresentacionRepo) List(soloActivas bool) ([]*entity.Presentacion, error) {
	var out []*entity.Presentacion
	for _, p := range r.S.Presentaciones {
		if soloActivas && !p.Activo {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (r *PresentacionRepo) Desactivar(id string) error {
	p, ok := r.S.Presentaciones[id]
	if !ok {
		return domain.ErrNoEncontrado
	}
	p.Activo = false
	return nil
}

// AlmacenRepo doble en memoria.
type AlmacenRepo struct{ S *Store }

func (r *AlmacenRepo) Create(a *entity.Almacen) error {
	r.S.Almacenes[a.ID] = a
	return nil
}

func (r *AlmacenRepo) GetByID(id string) (*entity.Almacen, error) {
	return r.S.Almacenes[id], nil
}

func (r *AlmacenRepo) List() ([]*entity.Almacen, error) {
	var out []*entity.Almacen
	for _, a := range r.S.Almacenes {
		out = append(out, a)
	}
	return out, nil
}

// LoteRepo doble en memoria.
type LoteRepo struct{ S *Store }

func (r *LoteRepo) Create(l *entity.Lote) error {
	r.S.Lotes[l.ID] = l
	return nil
}

func (r *LoteRepo) GetByID(id string) (*entity.Lote, error) {
	l, ok := r.S.Lotes[id]
	if !ok {
		return nil, nil
	}
	copia := *l
	return &copia, nil
}

func (r *LoteRepo) GetForUpdate(id string) (*entity.Lote, error) {
	return r.GetByID(id)
}

func (r *LoteRepo) List() ([]*entity.Lote, error) {
	var out []*entity.Lote
	for _, l := range r.S.Lotes {
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].FechaIngreso.Before(out[j].FechaIngreso) })
	return out, nil
}

func (r *LoteRepo) ActualizarDisponible(id string, cantidadKg decimal.Decimal) error {
	l, ok := r.S.Lotes[id]
	if !ok {
		return domain.ErrNoEncontrado
	}
	l.CantidadDisponibleKg = cantidadKg
	return nil
}

// InventarioRepo doble en memoria.
type InventarioRepo struct{ S *Store }

func (r *InventarioRepo) Get(presentacionID, almacenID string, loteID *string) (*entity.Inventario, error) {
	if inv, ok := r.S.Posiciones[ClaveInv(presentacionID, almacenID, loteID)]; ok {
		copia := *inv
		return &copia, nil
	}
	return &entity.Inventario{
		ID:             ClaveInv(presentacionID, almacenID, loteID),
		PresentacionID: presentacionID,
		AlmacenID:      almacenID,
		LoteID:         loteID,
		Cantidad:       decimal.Zero,
	}, nil
}

func (r *InventarioRepo) GetForUpdate(presentacionID, almacenID string, loteID *string) (*entity.Inventario, error) {
	return r.Get(presentacionID, almacenID, loteID)
}

func (r *InventarioRepo) Upsert(inv *entity.Inventario) error {
	copia := *inv
	r.S.Posiciones[ClaveInv(inv.PresentacionID, inv.AlmacenID, inv.LoteID)] = &copia
	return nil
}

func (r *InventarioRepo) TotalPorPresentacion(presentacionID, almacenID string) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, inv := range r.S.Posiciones {
		if inv.PresentacionID == presentacionID && inv.AlmacenID == almacenID {
			total = total.Add(inv.Cantidad)
		}
	}
	return total, nil
}

func (r *InventarioRepo) LotesDisponiblesForUpdate(presentacionID, almacenID string) ([]dominv.LoteDisponible, error) {
	var out []dominv.LoteDisponible
	for _, inv := range r.S.Posiciones {
		if inv.PresentacionID != presentacionID || inv.AlmacenID != almacenID || inv.LoteID == nil {
			continue
		}
		if !inv.Cantidad.GreaterThan(decimal.Zero) {
			continue
		}
		var fecha time.Time
		if l, ok := r.S.Lotes[*inv.LoteID]; ok {
			fecha = l.FechaIngreso
		}
		out = append(out, dominv.LoteDisponible{
			LoteID:       *inv.LoteID,
			FechaIngreso: fecha,
			Disponible:   inv.Cantidad,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].FechaIngreso.Equal(out[j].FechaIngreso) {
			return out[i].LoteID < out[j].LoteID
		}
		return out[i].FechaIngreso.Before(out[j].FechaIngreso)
	})
	return out, nil
}

func (r *InventarioRepo) BajoStockMinimo(almacenID string) ([]*entity.Inventario, error) {
	var out []*entity.Inventario
	for _, inv := range r.S.Posiciones {
		if inv.AlmacenID == almacenID && inv.StockMinimo.GreaterThan(decimal.Zero) && inv.Cantidad.LessThan(inv.StockMinimo) {
			out = append(out, inv)
		}
	}
	return out, nil
}

// MovimientoRepo doble en memoria.
type MovimientoRepo struct{ S *Store }

func (r *MovimientoRepo) Create(m *entity.Movimiento) error {
	copia := *m
	r.S.Movimientos = append(r.S.Movimientos, &copia)
	return nil
}

func (r *MovimientoRepo) GetByID(id string) (*entity.Movimiento, error) {
	for _, m := range r.S.Movimientos {
		if m.ID == id {
			return m, nil
		}
	}
	return nil, nil
}

func (r *MovimientoRepo) List(f repository.MovimientoFiltro) ([]*entity.Movimiento, error) {
	var out []*entity.Movimiento
	for _, m := range r.S.Movimientos {
		if f.AlmacenID != "" && m.AlmacenID != f.AlmacenID {
			continue
		}
		if f.PresentacionID != "" && (m.PresentacionID == nil || *m.PresentacionID != f.PresentacionID) {
			continue
		}
		if f.LoteID != "" && (m.LoteID == nil || *m.LoteID != f.LoteID) {
			continue
		}
		if f.TipoOperacion != "" && m.TipoOperacion != f.TipoOperacion {
			continue
		}
		out = append(out, m)
	}
	return out, nil
}

// VentaRepo doble en memoria.
type VentaRepo struct{ S *Store }

func (r *VentaRepo) Create(v *entity.Venta) error {
	copia := *v
	r.S.Ventas[v.ID] = &copia
	return nil
}

func (r *VentaRepo) CreateDetalle(d *entity.VentaDetalle) error {
	copia := *d
	r.S.Detalles = append(r.S.Detalles, &copia)
	return nil
}

func (r *VentaRepo) GetByID(id string) (*entity.Venta, error) {
	v, ok := r.S.Ventas[id]
	if !ok {
		return nil, nil
	}
	copia := *v
	return &copia, nil
}

func (r *VentaRepo) GetForUpdate(id string) (*entity.Venta, error) {
	return r.GetByID(id)
}

func (r *VentaRepo) GetDetalles(ventaID string) ([]*entity.VentaDetalle, error) {
	var out []*entity.VentaDetalle
	for _, d := range r.S.Detalles {
		if d.VentaID == ventaID {
			out = append(out, d)
		}
	}
	return out, nil
}

func (r *VentaRepo) UpdateEstadoPago(id, estado string) error {
	v, ok := r.S.Ventas[id]
	if !ok {
		return domain.ErrNoEncontrado
	}
	v.EstadoPago = estado
	return nil
}

// PagoRepo doble en memoria.
type PagoRepo struct{ S *Store }

func (r *PagoRepo) Create(p *entity.Pago) error {
	copia := *p
	r.S.Pagos = append(r.S.Pagos, &copia)
	return nil
}

func (r *PagoRepo) TotalPagado(ventaID string) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, p := range r.S.Pagos {
		if p.VentaID == ventaID {
			total = total.Add(p.Monto)
		}
	}
	return total, nil
}

func (r *PagoRepo) ListByVenta(ventaID string) ([]*entity.Pago, error) {
	var out []*entity.Pago
	for _, p := range r.S.Pagos {
		if p.VentaID == ventaID {
			out = append(out, p)
		}
	}
	return out, nil
}

// ClienteRepo doble en memoria.
type ClienteRepo struct{ S *Store }

func (r *ClienteRepo) Create(c *entity.Cliente) error {
	r.S.Clientes[c.ID] = c
	return nil
}

func (r *ClienteRepo) GetByID(id string) (*entity.Cliente, error) {
	c, ok := r.S.Clientes[id]
	if !ok {
		return nil, nil
	}
	copia := *c
	return &copia, nil
}

func (r *ClienteRepo) List(nombre, ciudad string, limit, offset int) ([]*entity.Cliente, error) {
	var out []*entity.Cliente
	for _, c := range r.S.Clientes {
		if nombre != "" && !strings.HasPrefix(strings.ToLower(c.Nombre), strings.ToLower(nombre)) {
			continue
		}
		if ciudad != "" && c.Ciudad != ciudad {
			continue
		}
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Nombre < out[j].Nombre })
	return out, nil
}

func (r *ClienteRepo) ActualizarCadencia(id string, ultimaCompra time.Time, frecuenciaDias int) error {
	c, ok := r.S.Clientes[id]
	if !ok {
		return domain.ErrNoEncontrado
	}
	c.UltimaFechaCompra = &ultimaCompra
	c.FrecuenciaCompraDias = &frecuenciaDias
	return nil
}

func (r *ClienteRepo) ActualizarProximaManual(id string, fecha *time.Time) error {
	c, ok := r.S.Clientes[id]
	if !ok {
		return domain.ErrNoEncontrado
	}
	c.ProximaCompraManual = fecha
	return nil
}

// MermaRepo doble en memoria.
type MermaRepo struct{ S *Store }

func (r *MermaRepo) Create(m *entity.Merma) error {
	copia := *m
	r.S.Mermas[m.ID] = &copia
	return nil
}

func (r *MermaRepo) GetByID(id string) (*entity.Merma, error) {
	m, ok := r.S.Mermas[id]
	if !ok {
		return nil, nil
	}
	copia := *m
	return &copia, nil
}

func (r *MermaRepo) GetForUpdate(id string) (*entity.Merma, error) {
	return r.GetByID(id)
}

func (r *MermaRepo) List(f repository.MermaFiltro) ([]*entity.Merma, error) {
	var out []*entity.Merma
	for _, m := range r.S.Mermas {
		if f.LoteID != "" && m.LoteID != f.LoteID {
			continue
		}
		if f.SoloPendientes && m.ConvertidaABriquetas {
			continue
		}
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].FechaRegistro.After(out[j].FechaRegistro) })
	return out, nil
}

func (r *MermaRepo) MarcarConvertida(id string) error {
	m, ok := r.S.Mermas[id]
	if !ok {
		return domain.ErrNoEncontrado
	}
	m.ConvertidaABriquetas = true
	return nil
}

// PedidoRepo doble en memoria.
type PedidoRepo struct{ S *Store }

func (r *PedidoRepo) Create(p *entity.Pedido) error {
	copia := *p
	r.S.Pedidos[p.ID] = &copia
	return nil
}

func (r *PedidoRepo) CreateDetalle(d *entity.PedidoDetalle) error {
	copia := *d
	r.S.PedidoDetalles = append(r.S.PedidoDetalles, &copia)
	return nil
}

func (r *PedidoRepo) GetByID(id string) (*entity.Pedido, error) {
	p, ok := r.S.Pedidos[id]
	if !ok {
		return nil, nil
	}
	copia := *p
	return &copia, nil
}

func (r *PedidoRepo) GetForUpdate(id string) (*entity.Pedido, error) {
	return r.GetByID(id)
}

func (r *PedidoRepo) GetDetalles(pedidoID string) ([]*entity.PedidoDetalle, error) {
	var out []*entity.PedidoDetalle
	for _, d := range r.S.PedidoDetalles {
		if d.PedidoID == pedidoID {
			out = append(out, d)
		}
	}
	return out, nil
}

func (r *PedidoRepo) List(f repository.PedidoFiltro) ([]*entity.Pedido, error) {
	var out []*entity.Pedido
	for _, p := range r.S.Pedidos {
		if f.ClienteID != "" && p.ClienteID != f.ClienteID {
			continue
		}
		if f.AlmacenID != "" && p.AlmacenID != f.AlmacenID {
			continue
		}
		if f.Estado != "" && p.Estado != f.Estado {
			continue
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].FechaEntrega.Before(out[j].FechaEntrega) })
	return out, nil
}

func (r *PedidoRepo) UpdateEstado(id, estado string) error {
	p, ok := r.S.Pedidos[id]
	if !ok {
		return domain.ErrNoEncontrado
	}
	p.Estado = estado
	return nil
}

func (r *PedidoRepo) VincularVenta(id, ventaID string) error {
	p, ok := r.S.Pedidos[id]
	if !ok {
		return domain.ErrNoEncontrado
	}
	p.VentaID = &ventaID
	return nil
}
