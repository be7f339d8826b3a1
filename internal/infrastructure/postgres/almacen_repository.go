package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/carbosur/inventario-api/internal/domain/entity"
	"github.com/carbosur/inventario-api/internal/domain/repository"
)

var _ repository.AlmacenRepository = (*AlmacenRepo)(nil)

// AlmacenRepo implementación sobre PostgreSQL (usable con pool o tx).
type AlmacenRepo struct {
	q Querier
}

// NewAlmacenRepository construye el adaptador.
func NewAlmacenRepository(q Querier) *AlmacenRepo {
	return &AlmacenRepo{q: q}
}

// Create persiste un almacén.
func (r *AlmacenRepo) Create(a *entity.Almacen) error {
	query := `
		INSERT INTO almacenes (id, nombre, direccion, ciudad, created_at, updated_at)
		VALUES ($1, $2, $3, $4, now(), now())`
	_, err := r.q.Exec(context.Background(), query, a.ID, a.Nombre, a.Direccion, a.Ciudad)
	if err != nil {
		return fmt.Errorf("crear almacén: %w", err)
	}
	return nil
}

// GetByID obtiene un almacén por ID. Devuelve nil si no existe.
func (r *AlmacenRepo) GetByID(id string) (*entity.Almacen, error) {
	query := `SELECT id, nombre, direccion, ciudad, created_at, updated_at FROM almacenes WHERE id = $1`
	var a entity.Almacen
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&a.ID, &a.Nombre, &a.Direccion, &a.Ciudad, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get almacén: %w", err)
	}
	return &a, nil
}

// List lista los almacenes.
func (r *AlmacenRepo) List() ([]*entity.Almacen, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT id, nombre, direccion, ciudad, created_at, updated_at FROM almacenes ORDER BY nombre`)
	if err != nil {
		return nil, fmt.Errorf("listar almacenes: %w", err)
	}
	defer rows.Close()

	var lista []*entity.Almacen
	for rows.Next() {
		var a entity.Almacen
		if err := rows.Scan(&a.ID, &a.Nombre, &a.Direccion, &a.Ciudad, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan almacén: %w", err)
		}
		lista = append(lista, &a)
	}
	return lista, rows.Err()
}
