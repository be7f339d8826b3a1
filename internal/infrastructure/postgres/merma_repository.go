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

var _ repository.MermaRepository = (*MermaRepo)(nil)

// MermaRepo implementación sobre PostgreSQL (usable con pool o tx).
type MermaRepo struct {
	q Querier
}

// NewMermaRepository construye el adaptador.
func NewMermaRepository(q Querier) *MermaRepo {
	return &MermaRepo{q: q}
}

const columnasMerma = `id, lote_id, cantidad_kg, convertida_a_briquetas, fecha_registro, usuario_id, created_at`

// Create persiste el registro de merma.
func (r *MermaRepo) Create(m *entity.Merma) error {
	query := `
		INSERT INTO mermas (id, lote_id, cantidad_kg, convertida_a_briquetas, fecha_registro, usuario_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, now(), now())`
	_, err := r.q.Exec(context.Background(), query,
		m.ID, m.LoteID, m.CantidadKg, m.ConvertidaABriquetas, m.FechaRegistro, m.UsuarioID,
	)
	if err != nil {
		return fmt.Errorf("crear merma: %w", err)
	}
	return nil
}

func (r *MermaRepo) get(id string, forUpdate bool) (*entity.Merma, error) {
	query := `SELECT ` + columnasMerma + ` FROM mermas WHERE id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	var m entity.Merma
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&m.ID, &m.LoteID, &m.CantidadKg, &m.ConvertidaABriquetas,
		&m.FechaRegistro, &m.UsuarioID, &m.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get merma: %w", err)
	}
	return &m, nil
}

// GetByID obtiene una merma por ID. Devuelve nil si no existe.
func (r *MermaRepo) GetByID(id string) (*entity.Merma, error) {
	return r.get(id, false)
}

// GetForUpdate obtiene la merma bloqueando la fila. Dos conversiones
// simultáneas del mismo registro quedan serializadas aquí.
func (r *MermaRepo) GetForUpdate(id string) (*entity.Merma, error) {
	return r.get(id, true)
}

// List devuelve los registros de merma filtrados, del más reciente al más
// antiguo.
func (r *MermaRepo) List(f repository.MermaFiltro) ([]*entity.Merma, error) {
	b := sq.Select(columnasMerma).
		From("mermas").
		OrderBy("fecha_registro DESC").
		PlaceholderFormat(sq.Dollar)

	if f.LoteID != "" {
		b = b.Where(sq.Eq{"lote_id": f.LoteID})
	}
	if f.SoloPendientes {
		b = b.Where(sq.Eq{"convertida_a_briquetas": false})
	}

	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("armar consulta de mermas: %w", err)
	}

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("listar mermas: %w", err)
	}
	defer rows.Close()

	var lista []*entity.Merma
	for rows.Next() {
		var m entity.Merma
		if err := rows.Scan(&m.ID, &m.LoteID, &m.CantidadKg, &m.ConvertidaABriquetas,
			&m.FechaRegistro, &m.UsuarioID, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan merma: %w", err)
		}
		lista = append(lista, &m)
	}
	return lista, rows.Err()
}

// MarcarConvertida deja el registro como convertido a briquetas.
func (r *MermaRepo) MarcarConvertida(id string) error {
	tag, err := r.q.Exec(context.Background(),
		`UPDATE mermas SET convertida_a_briquetas = TRUE, updated_at = now() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("marcar merma convertida: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNoEncontrado
	}
	return nil
}
