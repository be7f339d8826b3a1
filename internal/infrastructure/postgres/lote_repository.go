package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/carbosur/inventario-api/internal/domain"
	"github.com/carbosur/inventario-api/internal/domain/entity"
	"github.com/carbosur/inventario-api/internal/domain/repository"
)

var _ repository.LoteRepository = (*LoteRepo)(nil)

// LoteRepo implementación sobre PostgreSQL (usable con pool o tx).
type LoteRepo struct {
	q Querier
}

// NewLoteRepository construye el adaptador.
func NewLoteRepository(q Querier) *LoteRepo {
	return &LoteRepo{q: q}
}

const columnasLote = `id, proveedor, descripcion, peso_humedo_kg, peso_seco_kg, cantidad_disponible_kg, fecha_ingreso, created_at, updated_at`

// Create persiste un lote.
func (r *LoteRepo) Create(l *entity.Lote) error {
	query := `
		INSERT INTO lotes (id, proveedor, descripcion, peso_humedo_kg, peso_seco_kg, cantidad_disponible_kg, fecha_ingreso, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, now(), now())`
	_, err := r.q.Exec(context.Background(), query,
		l.ID, l.Proveedor, l.Descripcion, l.PesoHumedoKg, l.PesoSecoKg, l.CantidadDisponibleKg, l.FechaIngreso,
	)
	if err != nil {
		return fmt.Errorf("crear lote: %w", err)
	}
	return nil
}

func (r *LoteRepo) get(id string, forUpdate bool) (*entity.Lote, error) {
	query := `SELECT ` + columnasLote + ` FROM lotes WHERE id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	var l entity.Lote
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&l.ID, &l.Proveedor, &l.Descripcion, &l.PesoHumedoKg, &l.PesoSecoKg,
		&l.CantidadDisponibleKg, &l.FechaIngreso, &l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get lote: %w", err)
	}
	return &l, nil
}

// GetByID obtiene un lote por ID. Devuelve nil si no existe.
func (r *LoteRepo) GetByID(id string) (*entity.Lote, error) {
	return r.get(id, false)
}

// GetForUpdate obtiene el lote bloqueando la fila (SELECT FOR UPDATE).
func (r *LoteRepo) GetForUpdate(id string) (*entity.Lote, error) {
	return r.get(id, true)
}

// List lista lotes del más antiguo al más reciente.
func (r *LoteRepo) List() ([]*entity.Lote, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT `+columnasLote+` FROM lotes ORDER BY fecha_ingreso`)
	if err != nil {
		return nil, fmt.Errorf("listar lotes: %w", err)
	}
	defer rows.Close()

	var lista []*entity.Lote
	for rows.Next() {
		var l entity.Lote
		if err := rows.Scan(&l.ID, &l.Proveedor, &l.Descripcion, &l.PesoHumedoKg, &l.PesoSecoKg,
			&l.CantidadDisponibleKg, &l.FechaIngreso, &l.CreatedAt, &l.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan lote: %w", err)
		}
		lista = append(lista, &l)
	}
	return lista, rows.Err()
}

// ActualizarDisponible fija la cantidad disponible en kg del lote.
func (r *LoteRepo) ActualizarDisponible(id string, cantidadKg decimal.Decimal) error {
	tag, err := r.q.Exec(context.Background(),
		`UPDATE lotes SET cantidad_disponible_kg = $2, updated_at = now() WHERE id = $1`, id, cantidadKg)
	if err != nil {
		return fmt.Errorf("actualizar lote: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNoEncontrado
	}
	return nil
}
