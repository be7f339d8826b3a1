package postgres

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/carbosur/inventario-api/internal/domain"
	"github.com/carbosur/inventario-api/internal/domain/entity"
	"github.com/carbosur/inventario-api/internal/domain/repository"
)

var _ repository.PedidoRepository = (*PedidoRepo)(nil)

// PedidoRepo implementación sobre PostgreSQL (usable con pool o tx).
type PedidoRepo struct {
	q Querier
}

// NewPedidoRepository construye el adaptador.
func NewPedidoRepository(q Querier) *PedidoRepo {
	return &PedidoRepo{q: q}
}

const columnasPedido = `id, cliente_id, almacen_id, vendedor_id, fecha_creacion, fecha_entrega, estado, notas, venta_id, updated_at`

// Create persiste la cabecera del pedido.
func (r *PedidoRepo) Create(p *entity.Pedido) error {
	query := `
		INSERT INTO pedidos (id, cliente_id, almacen_id, vendedor_id, fecha_creacion, fecha_entrega, estado, notas, venta_id, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, now())`
	_, err := r.q.Exec(context.Background(), query,
		p.ID, p.ClienteID, p.AlmacenID, p.VendedorID, p.FechaCreacion,
		p.FechaEntrega, p.Estado, p.Notas, p.VentaID,
	)
	if err != nil {
		return fmt.Errorf("crear pedido: %w", err)
	}
	return nil
}

// CreateDetalle persiste una línea del pedido.
func (r *PedidoRepo) CreateDetalle(d *entity.PedidoDetalle) error {
	query := `
		INSERT INTO pedido_detalles (id, pedido_id, presentacion_id, cantidad, precio_estimado)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(context.Background(), query,
		d.ID, d.PedidoID, d.PresentacionID, d.Cantidad, d.PrecioEstimado,
	)
	if err != nil {
		return fmt.Errorf("crear detalle de pedido: %w", err)
	}
	return nil
}

func (r *PedidoRepo) get(id string, forUpdate bool) (*entity.Pedido, error) {
	query := `SELECT ` + columnasPedido + ` FROM pedidos WHERE id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	var p entity.Pedido
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&p.ID, &p.ClienteID, &p.AlmacenID, &p.VendedorID, &p.FechaCreacion,
		&p.FechaEntrega, &p.Estado, &p.Notas, &p.VentaID, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get pedido: %w", err)
	}
	return &p, nil
}

// GetByID obtiene un pedido por ID. Devuelve nil si no existe.
func (r *PedidoRepo) GetByID(id string) (*entity.Pedido, error) {
	return r.get(id, false)
}

// GetForUpdate obtiene el pedido bloqueando la fila. Las transiciones de
// estado concurrentes quedan serializadas aquí.
func (r *PedidoRepo) GetForUpdate(id string) (*entity.Pedido, error) {
	return r.get(id, true)
}

// GetDetalles lista las líneas del pedido.
func (r *PedidoRepo) GetDetalles(pedidoID string) ([]*entity.PedidoDetalle, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT id, pedido_id, presentacion_id, cantidad, precio_estimado
		 FROM pedido_detalles WHERE pedido_id = $1 ORDER BY id`, pedidoID)
	if err != nil {
		return nil, fmt.Errorf("listar detalles de pedido: %w", err)
	}
	defer rows.Close()

	var lista []*entity.PedidoDetalle
	for rows.Next() {
		var d entity.PedidoDetalle
		if err := rows.Scan(&d.ID, &d.PedidoID, &d.PresentacionID, &d.Cantidad, &d.PrecioEstimado); err != nil {
			return nil, fmt.Errorf("scan detalle de pedido: %w", err)
		}
		lista = append(lista, &d)
	}
	return lista, rows.Err()
}

// List devuelve los pedidos filtrados ordenados por fecha de entrega. Los
// campos vacíos del filtro no restringen.
func (r *PedidoRepo) List(f repository.PedidoFiltro) ([]*entity.Pedido, error) {
	b := sq.Select(columnasPedido).
		From("pedidos").
		OrderBy("fecha_entrega ASC").
		PlaceholderFormat(sq.Dollar)

	if f.ClienteID != "" {
		b = b.Where(sq.Eq{"cliente_id": f.ClienteID})
	}
	if f.AlmacenID != "" {
		b = b.Where(sq.Eq{"almacen_id": f.AlmacenID})
	}
	if f.Estado != "" {
		b = b.Where(sq.Eq{"estado": f.Estado})
	}
	if f.Limit > 0 {
		b = b.Limit(uint64(f.Limit))
	}
	if f.Offset > 0 {
		b = b.Offset(uint64(f.Offset))
	}

	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("armar consulta de pedidos: %w", err)
	}

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("listar pedidos: %w", err)
	}
	defer rows.Close()

	var lista []*entity.Pedido
	for rows.Next() {
		var p entity.Pedido
		if err := rows.Scan(&p.ID, &p.ClienteID, &p.AlmacenID, &p.VendedorID, &p.FechaCreacion,
			&p.FechaEntrega, &p.Estado, &p.Notas, &p.VentaID, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan pedido: %w", err)
		}
		lista = append(lista, &p)
	}
	return lista, rows.Err()
}

// UpdateEstado cambia el estado del pedido.
func (r *PedidoRepo) UpdateEstado(id, estado string) error {
	tag, err := r.q.Exec(context.Background(),
		`UPDATE pedidos SET estado = $2, updated_at = now() WHERE id = $1`, id, estado)
	if err != nil {
		return fmt.Errorf("actualizar estado de pedido: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNoEncontrado
	}
	return nil
}

// VincularVenta deja el pedido apuntando a la venta que lo cerró.
func (r *PedidoRepo) VincularVenta(id, ventaID string) error {
	tag, err := r.q.Exec(context.Background(),
		`UPDATE pedidos SET venta_id = $2, updated_at = now() WHERE id = $1`, id, ventaID)
	if err != nil {
		return fmt.Errorf("vincular venta: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNoEncontrado
	}
	return nil
}
