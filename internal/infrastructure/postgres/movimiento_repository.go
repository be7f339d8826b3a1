package postgres

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/carbosur/inventario-api/internal/domain/entity"
	"github.com/carbosur/inventario-api/internal/domain/repository"
)

var _ repository.MovimientoRepository = (*MovimientoRepo)(nil)

// MovimientoRepo implementación sobre PostgreSQL (usable con pool o tx).
type MovimientoRepo struct {
	q Querier
}

// NewMovimientoRepository construye el adaptador.
func NewMovimientoRepository(q Querier) *MovimientoRepo {
	return &MovimientoRepo{q: q}
}

const columnasMovimiento = `id, grupo_id, tipo, presentacion_id, almacen_id, lote_id, cantidad, fecha, motivo, tipo_operacion, usuario_id, created_at`

// Create inserta un movimiento en el log. No existe Update ni Delete: el log
// es de solo anexado.
func (r *MovimientoRepo) Create(m *entity.Movimiento) error {
	query := `
		INSERT INTO movimientos (id, grupo_id, tipo, presentacion_id, almacen_id, lote_id, cantidad, fecha, motivo, tipo_operacion, usuario_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, now())`
	_, err := r.q.Exec(context.Background(), query,
		m.ID, m.GrupoID, m.Tipo, m.PresentacionID, m.AlmacenID, m.LoteID,
		m.Cantidad, m.Fecha, m.Motivo, m.TipoOperacion, m.UsuarioID,
	)
	if err != nil {
		return fmt.Errorf("crear movimiento: %w", err)
	}
	return nil
}

// GetByID obtiene un movimiento por ID. Devuelve nil si no existe.
func (r *MovimientoRepo) GetByID(id string) (*entity.Movimiento, error) {
	var m entity.Movimiento
	err := r.q.QueryRow(context.Background(),
		`SELECT `+columnasMovimiento+` FROM movimientos WHERE id = $1`, id).Scan(
		&m.ID, &m.GrupoID, &m.Tipo, &m.PresentacionID, &m.AlmacenID, &m.LoteID,
		&m.Cantidad, &m.Fecha, &m.Motivo, &m.TipoOperacion, &m.UsuarioID, &m.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get movimiento: %w", err)
	}
	return &m, nil
}

// List devuelve el historial filtrado, del movimiento más reciente al más
// antiguo. Los campos vacíos del filtro no restringen.
func (r *MovimientoRepo) List(f repository.MovimientoFiltro) ([]*entity.Movimiento, error) {
	b := sq.Select(columnasMovimiento).
		From("movimientos").
		OrderBy("fecha DESC", "created_at DESC").
		PlaceholderFormat(sq.Dollar)

	if f.AlmacenID != "" {
		b = b.Where(sq.Eq{"almacen_id": f.AlmacenID})
	}
	if f.PresentacionID != "" {
		b = b.Where(sq.Eq{"presentacion_id": f.PresentacionID})
	}
	if f.LoteID != "" {
		b = b.Where(sq.Eq{"lote_id": f.LoteID})
	}
	if f.TipoOperacion != "" {
		b = b.Where(sq.Eq{"tipo_operacion": f.TipoOperacion})
	}
	if f.Desde != nil {
		b = b.Where(sq.GtOrEq{"fecha": *f.Desde})
	}
	if f.Hasta != nil {
		b = b.Where(sq.LtOrEq{"fecha": *f.Hasta})
	}
	if f.Limit > 0 {
		b = b.Limit(uint64(f.Limit))
	}
	if f.Offset > 0 {
		b = b.Offset(uint64(f.Offset))
	}

	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("armar consulta de movimientos: %w", err)
	}

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("listar movimientos: %w", err)
	}
	defer rows.Close()

	var lista []*entity.Movimiento
	for rows.Next() {
		var m entity.Movimiento
		if err := rows.Scan(&m.ID, &m.GrupoID, &m.Tipo, &m.PresentacionID, &m.AlmacenID, &m.LoteID,
			&m.Cantidad, &m.Fecha, &m.Motivo, &m.TipoOperacion, &m.UsuarioID, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan movimiento: %w", err)
		}
		lista = append(lista, &m)
	}
	return lista, rows.Err()
}
