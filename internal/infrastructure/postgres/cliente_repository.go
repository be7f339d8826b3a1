package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/carbosur/inventario-api/internal/domain"
	"github.com/carbosur/inventario-api/internal/domain/entity"
	"github.com/carbosur/inventario-api/internal/domain/repository"
)

var _ repository.ClienteRepository = (*ClienteRepo)(nil)

// ClienteRepo implementación sobre PostgreSQL (usable con pool o tx).
type ClienteRepo struct {
	q Querier
}

// NewClienteRepository construye el adaptador.
func NewClienteRepository(q Querier) *ClienteRepo {
	return &ClienteRepo{q: q}
}

const columnasCliente = `id, nombre, telefono, direccion, ciudad, frecuencia_compra_dias, ultima_fecha_compra, proxima_compra_manual, ultima_fecha_contacto, created_at, updated_at`

// Create persiste un cliente.
func (r *ClienteRepo) Create(c *entity.Cliente) error {
	query := `
		INSERT INTO clientes (id, nombre, telefono, direccion, ciudad, frecuencia_compra_dias, ultima_fecha_compra, proxima_compra_manual, ultima_fecha_contacto, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, now(), now())`
	_, err := r.q.Exec(context.Background(), query,
		c.ID, c.Nombre, c.Telefono, c.Direccion, c.Ciudad,
		c.FrecuenciaCompraDias, c.UltimaFechaCompra, c.ProximaCompraManual, c.UltimaFechaContacto,
	)
	if err != nil {
		if esUniqueViolation(err) {
			return fmt.Errorf("%w: cliente %s", domain.ErrDuplicado, c.Nombre)
		}
		return fmt.Errorf("crear cliente: %w", err)
	}
	return nil
}

// GetByID obtiene un cliente por ID. Devuelve nil si no existe.
func (r *ClienteRepo) GetByID(id string) (*entity.Cliente, error) {
	var c entity.Cliente
	err := r.q.QueryRow(context.Background(),
		`SELECT `+columnasCliente+` FROM clientes WHERE id = $1`, id).Scan(
		&c.ID, &c.Nombre, &c.Telefono, &c.Direccion, &c.Ciudad,
		&c.FrecuenciaCompraDias, &c.UltimaFechaCompra, &c.ProximaCompraManual,
		&c.UltimaFechaContacto, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get cliente: %w", err)
	}
	return &c, nil
}

// List lista clientes con filtro opcional por nombre (prefijo, sin distinguir
// mayúsculas) y ciudad exacta.
func (r *ClienteRepo) List(nombre, ciudad string, limit, offset int) ([]*entity.Cliente, error) {
	b := sq.Select(columnasCliente).
		From("clientes").
		OrderBy("nombre").
		PlaceholderFormat(sq.Dollar)

	if nombre != "" {
		b = b.Where(sq.ILike{"nombre": nombre + "%"})
	}
	if ciudad != "" {
		b = b.Where(sq.Eq{"ciudad": ciudad})
	}
	if limit > 0 {
		b = b.Limit(uint64(limit))
	}
	if offset > 0 {
		b = b.Offset(uint64(offset))
	}

	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("armar consulta de clientes: %w", err)
	}

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("listar clientes: %w", err)
	}
	defer rows.Close()

	var lista []*entity.Cliente
	for rows.Next() {
		var c entity.Cliente
		if err := rows.Scan(&c.ID, &c.Nombre, &c.Telefono, &c.Direccion, &c.Ciudad,
			&c.FrecuenciaCompraDias, &c.UltimaFechaCompra, &c.ProximaCompraManual,
			&c.UltimaFechaContacto, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan cliente: %w", err)
		}
		lista = append(lista, &c)
	}
	return lista, rows.Err()
}

// ActualizarCadencia fija la última compra y la frecuencia derivada.
func (r *ClienteRepo) ActualizarCadencia(id string, ultimaCompra time.Time, frecuenciaDias int) error {
	tag, err := r.q.Exec(context.Background(),
		`UPDATE clientes SET ultima_fecha_compra = $2, frecuencia_compra_dias = $3, updated_at = now() WHERE id = $1`,
		id, ultimaCompra, frecuenciaDias)
	if err != nil {
		return fmt.Errorf("actualizar cadencia: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNoEncontrado
	}
	return nil
}

// ActualizarProximaManual fija o limpia la fecha manual de próxima compra.
func (r *ClienteRepo) ActualizarProximaManual(id string, fecha *time.Time) error {
	tag, err := r.q.Exec(context.Background(),
		`UPDATE clientes SET proxima_compra_manual = $2, updated_at = now() WHERE id = $1`, id, fecha)
	if err != nil {
		return fmt.Errorf("actualizar próxima manual: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNoEncontrado
	}
	return nil
}
