package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/carbosur/inventario-api/internal/domain"
	"github.com/carbosur/inventario-api/internal/domain/entity"
	"github.com/carbosur/inventario-api/internal/domain/repository"
)

var _ repository.VentaRepository = (*VentaRepo)(nil)

// VentaRepo implementación sobre PostgreSQL (usable con pool o tx).
type VentaRepo struct {
	q Querier
}

// NewVentaRepository construye el adaptador.
func NewVentaRepository(q Querier) *VentaRepo {
	return &VentaRepo{q: q}
}

const columnasVenta = `id, cliente_id, almacen_id, vendedor_id, fecha, total, tipo_pago, estado_pago, consumo_diario_kg, created_at, updated_at`

// Create persiste la cabecera de la venta.
func (r *VentaRepo) Create(v *entity.Venta) error {
	query := `
		INSERT INTO ventas (id, cliente_id, almacen_id, vendedor_id, fecha, total, tipo_pago, estado_pago, consumo_diario_kg, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, now(), now())`
	_, err := r.q.Exec(context.Background(), query,
		v.ID, v.ClienteID, v.AlmacenID, v.VendedorID, v.Fecha,
		v.Total, v.TipoPago, v.EstadoPago, v.ConsumoDiarioKg,
	)
	if err != nil {
		return fmt.Errorf("crear venta: %w", err)
	}
	return nil
}

// CreateDetalle persiste una línea de la venta.
func (r *VentaRepo) CreateDetalle(d *entity.VentaDetalle) error {
	query := `
		INSERT INTO venta_detalles (id, venta_id, presentacion_id, lote_id, cantidad, precio_unitario)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		d.ID, d.VentaID, d.PresentacionID, d.LoteID, d.Cantidad, d.PrecioUnitario,
	)
	if err != nil {
		return fmt.Errorf("crear detalle de venta: %w", err)
	}
	return nil
}

func (r *VentaRepo) get(id string, forUpdate bool) (*entity.Venta, error) {
	query := `SELECT ` + columnasVenta + ` FROM ventas WHERE id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	var v entity.Venta
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&v.ID, &v.ClienteID, &v.AlmacenID, &v.VendedorID, &v.Fecha,
		&v.Total, &v.TipoPago, &v.EstadoPago, &v.ConsumoDiarioKg, &v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get venta: %w", err)
	}
	return &v, nil
}

// GetByID obtiene una venta por ID. Devuelve nil si no existe.
func (r *VentaRepo) GetByID(id string) (*entity.Venta, error) {
	return r.get(id, false)
}

// GetForUpdate obtiene la venta bloqueando la fila. Dos pagos simultáneos
// sobre la misma venta quedan serializados aquí.
func (r *VentaRepo) GetForUpdate(id string) (*entity.Venta, error) {
	return r.get(id, true)
}

// GetDetalles lista las líneas de la venta.
func (r *VentaRepo) GetDetalles(ventaID string) ([]*entity.VentaDetalle, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT id, venta_id, presentacion_id, lote_id, cantidad, precio_unitario
		 FROM venta_detalles WHERE venta_id = $1 ORDER BY id`, ventaID)
	if err != nil {
		return nil, fmt.Errorf("listar detalles: %w", err)
	}
	defer rows.Close()

	var lista []*entity.VentaDetalle
	for rows.Next() {
		var d entity.VentaDetalle
		if err := rows.Scan(&d.ID, &d.VentaID, &d.PresentacionID, &d.LoteID, &d.Cantidad, &d.PrecioUnitario); err != nil {
			return nil, fmt.Errorf("scan detalle: %w", err)
		}
		lista = append(lista, &d)
	}
	return lista, rows.Err()
}

// UpdateEstadoPago actualiza el estado de pago derivado.
func (r *VentaRepo) UpdateEstadoPago(id, estado string) error {
	tag, err := r.q.Exec(context.Background(),
		`UPDATE ventas SET estado_pago = $2, updated_at = now() WHERE id = $1`, id, estado)
	if err != nil {
		return fmt.Errorf("actualizar estado de pago: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNoEncontrado
	}
	return nil
}
