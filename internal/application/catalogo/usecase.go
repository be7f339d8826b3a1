package catalogo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/carbosur/inventario-api/internal/application/dto"
	"github.com/carbosur/inventario-api/internal/domain"
	"github.com/carbosur/inventario-api/internal/domain/entity"
	"github.com/carbosur/inventario-api/internal/domain/repository"
)

// UseCase mantiene el catálogo: presentaciones, almacenes y lotes. Son las
// referencias maestras de los movimientos; las presentaciones nunca se borran,
// solo se desactivan.
type UseCase struct {
	presentacionRepo repository.PresentacionRepository
	almacenRepo      repository.AlmacenRepository
	loteRepo         repository.LoteRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	presentacionRepo repository.PresentacionRepository,
	almacenRepo repository.AlmacenRepository,
	loteRepo repository.LoteRepository,
) *UseCase {
	return &UseCase{
		presentacionRepo: presentacionRepo,
		almacenRepo:      almacenRepo,
		loteRepo:         loteRepo,
	}
}

var tiposValidos = map[string]bool{
	entity.TipoBruto:     true,
	entity.TipoProcesado: true,
	entity.TipoMerma:     true,
	entity.TipoBriqueta:  true,
	entity.TipoDetalle:   true,
}

// CrearPresentacion da de alta una presentación activa.
func (uc *UseCase) CrearPresentacion(ctx context.Context, in dto.CrearPresentacionRequest) (*dto.PresentacionResponse, error) {
	if in.Nombre == "" || !tiposValidos[in.Tipo] {
		return nil, domain.ErrEntradaInvalida
	}
	if !in.CapacidadKg.GreaterThan(decimal.Zero) {
		return nil, domain.ErrEntradaInvalida
	}
	p := &entity.Presentacion{
		ID:          uuid.New().String(),
		Nombre:      in.Nombre,
		CapacidadKg: in.CapacidadKg,
		Tipo:        in.Tipo,
		PrecioVenta: in.PrecioVenta,
		Activo:      true,
		URLFoto:     in.URLFoto,
	}
	if err := uc.presentacionRepo.Create(p); err != nil {
		return nil, err
	}
	return presentacionAResponse(p), nil
}

// GetPresentacion obtiene una presentación por ID.
func (uc *UseCase) GetPresentacion(ctx context.Context, id string) (*dto.PresentacionResponse, error) {
	p, err := uc.presentacionRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNoEncontrado
	}
	return presentacionAResponse(p), nil
}

// ListPresentaciones lista el catálogo; soloActivas filtra las desactivadas.
func (uc *UseCase) ListPresentaciones(ctx context.Context, soloActivas bool) ([]*dto.PresentacionResponse, error) {
	lista, err := uc.presentacionRepo.List(soloActivas)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.PresentacionResponse, 0, len(lista))
	for _, p := range lista {
		out = append(out, presentacionAResponse(p))
	}
	return out, nil
}

// DesactivarPresentacion marca la presentación como inactiva.
func (uc *UseCase) DesactivarPresentacion(ctx context.Context, id string) error {
	return uc.presentacionRepo.Desactivar(id)
}

// CrearAlmacen da de alta un almacén.
func (uc *UseCase) CrearAlmacen(ctx context.Context, in dto.CrearAlmacenRequest) (*dto.AlmacenResponse, error) {
	if in.Nombre == "" {
		return nil, domain.ErrEntradaInvalida
	}
	a := &entity.Almacen{
		ID:        uuid.New().String(),
		Nombre:    in.Nombre,
		Direccion: in.Direccion,
		Ciudad:    in.Ciudad,
	}
	if err := uc.almacenRepo.Create(a); err != nil {
		return nil, err
	}
	return almacenAResponse(a), nil
}

// ListAlmacenes lista los almacenes.
func (uc *UseCase) ListAlmacenes(ctx context.Context) ([]*dto.AlmacenResponse, error) {
	lista, err := uc.almacenRepo.List()
	if err != nil {
		return nil, err
	}
	out := make([]*dto.AlmacenResponse, 0, len(lista))
	for _, a := range lista {
		out = append(out, almacenAResponse(a))
	}
	return out, nil
}

// CrearLote registra el ingreso de una partida de materia prima. El disponible
// inicial es el peso seco si viene, si no el húmedo.
func (uc *UseCase) CrearLote(ctx context.Context, in dto.CrearLoteRequest) (*dto.LoteResponse, error) {
	if !in.PesoHumedoKg.GreaterThan(decimal.Zero) {
		return nil, domain.ErrEntradaInvalida
	}
	disponible := in.PesoHumedoKg
	if in.PesoSecoKg.GreaterThan(decimal.Zero) {
		disponible = in.PesoSecoKg
	}
	fecha := time.Now()
	if in.FechaIngreso != nil {
		fecha = *in.FechaIngreso
	}
	l := &entity.Lote{
		ID:                   uuid.New().String(),
		Proveedor:            in.Proveedor,
		Descripcion:          in.Descripcion,
		PesoHumedoKg:         in.PesoHumedoKg,
		PesoSecoKg:           in.PesoSecoKg,
		CantidadDisponibleKg: disponible,
		FechaIngreso:         fecha,
	}
	if err := uc.loteRepo.Create(l); err != nil {
		return nil, err
	}
	return loteAResponse(l), nil
}

// GetLote obtiene un lote por ID.
func (uc *UseCase) GetLote(ctx context.Context, id string) (*dto.LoteResponse, error) {
	l, err := uc.loteRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if l == nil {
		return nil, domain.ErrNoEncontrado
	}
	return loteAResponse(l), nil
}

// ListLotes lista los lotes del más antiguo al más reciente.
func (uc *UseCase) ListLotes(ctx context.Context) ([]*dto.LoteResponse, error) {
	lista, err := uc.loteRepo.List()
	if err != nil {
		return nil, err
	}
	out := make([]*dto.LoteResponse, 0, len(lista))
	for _, l := range lista {
		out = append(out, loteAResponse(l))
	}
	return out, nil
}

func presentacionAResponse(p *entity.Presentacion) *dto.PresentacionResponse {
	return &dto.PresentacionResponse{
		ID:          p.ID,
		Nombre:      p.Nombre,
		CapacidadKg: p.CapacidadKg,
		Tipo:        p.Tipo,
		PrecioVenta: p.PrecioVenta,
		Activo:      p.Activo,
		URLFoto:     p.URLFoto,
	}
}

func almacenAResponse(a *entity.Almacen) *dto.AlmacenResponse {
	return &dto.AlmacenResponse{ID: a.ID, Nombre: a.Nombre, Direccion: a.Direccion, Ciudad: a.Ciudad}
}

func loteAResponse(l *entity.Lote) *dto.LoteResponse {
	return &dto.LoteResponse{
		ID:                   l.ID,
		Proveedor:            l.Proveedor,
		Descripcion:          l.Descripcion,
		PesoHumedoKg:         l.PesoHumedoKg,
		PesoSecoKg:           l.PesoSecoKg,
		CantidadDisponibleKg: l.CantidadDisponibleKg,
		FechaIngreso:         l.FechaIngreso,
	}
}
