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

var _ repository.PresentacionRepository = (*PresentacionRepo)(nil)

// PresentacionRepo implementación sobre PostgreSQL (usable con pool o tx).
type PresentacionRepo struct {
	q Querier
}

// NewPresentacionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPresentacionRepository(q Querier) *PresentacionRepo {
	return &PresentacionRepo{q: q}
}

const columnasPresentacion = `id, nombre, capacidad_kg, tipo, precio_venta, activo, url_foto, created_at, updated_at`

// Create persiste una presentación.
func (r *PresentacionRepo) Create(p *entity.Presentacion) error {
	query := `
		INSERT INTO presentaciones (id, nombre, capacidad_kg, tipo, precio_venta, activo, url_foto, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, now(), now())`
	_, err := r.q.Exec(context.Background(), query,
		p.ID, p.Nombre, p.CapacidadKg, p.Tipo, p.PrecioVenta, p.Activo, p.URLFoto,
	)
	if err != nil {
		if esUniqueViolation(err) {
			return domain.ErrDuplicado
		}
		return fmt.Errorf("crear presentación: %w", err)
	}
	return nil
}

// GetByID obtiene una presentación por ID. Devuelve nil si no existe.
func (r *PresentacionRepo) GetByID(id string) (*entity.Presentacion, error) {
	query := `SELECT ` + columnasPresentacion + ` FROM presentaciones WHERE id = $1`
	var p entity.Presentacion
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&p.ID, &p.Nombre, &p.CapacidadKg, &p.Tipo, &p.PrecioVenta, &p.Activo, &p.URLFoto, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get presentación: %w", err)
	}
	return &p, nil
}

// List lista presentaciones, opcionalmente solo las activas.
func (r *PresentacionRepo) List(soloActivas bool) ([]*entity.Presentacion, error) {
	query := `SELECT ` + columnasPresentacion + ` FROM presentaciones`
	if soloActivas {
		query += ` WHERE activo`
	}
	query += ` ORDER BY nombre`

	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("listar presentaciones: %w", err)
	}
	defer rows.Close()

	var lista []*entity.Presentacion
	for rows.Next() {
		var p entity.Presentacion
		if err := rows.Scan(&p.ID, &p.Nombre, &p.CapacidadKg, &p.Tipo, &p.PrecioVenta, &p.Activo, &p.URLFoto, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan presentación: %w", err)
		}
		lista = append(lista, &p)
	}
	return lista, rows.Err()
}

// Desactivar marca la presentación como inactiva (borrado suave).
func (r *PresentacionRepo) Desactivar(id string) error {
	tag, err := r.q.Exec(context.Background(),
		`UPDATE presentaciones SET activo = false, updated_at = now() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("desactivar presentación: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNoEncontrado
	}
	return nil
}
