package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/carbosur/inventario-api/internal/domain/entity"
	dominv "github.com/carbosur/inventario-api/internal/domain/inventario"
	"github.com/carbosur/inventario-api/internal/domain/repository"
)

var _ repository.InventarioRepository = (*InventarioRepo)(nil)

// InventarioRepo implementación sobre PostgreSQL (usable con pool o tx).
type InventarioRepo struct {
	q Querier
}

// NewInventarioRepository construye el adaptador.
func NewInventarioRepository(q Querier) *InventarioRepo {
	return &InventarioRepo{q: q}
}

const columnasInventario = `id, presentacion_id, almacen_id, lote_id, cantidad, stock_minimo, created_at, ultima_actualizacion`

func (r *InventarioRepo) get(presentacionID, almacenID string, loteID *string, forUpdate bool) (*entity.Inventario, error) {
	// La posición con lote y la posición sin lote son filas distintas; en SQL
	// NULL no iguala a NULL, así que el predicado cambia según el caso.
	query := `SELECT ` + columnasInventario + ` FROM inventario WHERE presentacion_id = $1 AND almacen_id = $2`
	args := []any{presentacionID, almacenID}
	if loteID == nil {
		query += ` AND lote_id IS NULL`
	} else {
		query += ` AND lote_id = $3`
		args = append(args, *loteID)
	}
	if forUpdate {
		query += ` FOR UPDATE`
	}

	var inv entity.Inventario
	err := r.q.QueryRow(context.Background(), query, args...).Scan(
		&inv.ID, &inv.PresentacionID, &inv.AlmacenID, &inv.LoteID,
		&inv.Cantidad, &inv.StockMinimo, &inv.CreatedAt, &inv.UltimaActualizacion,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Posición inexistente: se entrega en cero para que el primer
			// movimiento la cree vía Upsert.
			return &entity.Inventario{
				ID:             uuid.NewString(),
				PresentacionID: presentacionID,
				AlmacenID:      almacenID,
				LoteID:         loteID,
				Cantidad:       decimal.Zero,
				StockMinimo:    decimal.Zero,
			}, nil
		}
		return nil, fmt.Errorf("get inventario: %w", err)
	}
	return &inv, nil
}

// Get devuelve la posición de stock; en cero si aún no existe.
func (r *InventarioRepo) Get(presentacionID, almacenID string, loteID *string) (*entity.Inventario, error) {
	return r.get(presentacionID, almacenID, loteID, false)
}

// GetForUpdate es Get con bloqueo de fila.
func (r *InventarioRepo) GetForUpdate(presentacionID, almacenID string, loteID *string) (*entity.Inventario, error) {
	return r.get(presentacionID, almacenID, loteID, true)
}

// Upsert inserta o actualiza la posición. El índice único sobre
// (presentacion_id, almacen_id, lote_id) usa NULLS NOT DISTINCT para que la
// posición sin lote también sea única.
func (r *InventarioRepo) Upsert(inv *entity.Inventario) error {
	query := `
		INSERT INTO inventario (id, presentacion_id, almacen_id, lote_id, cantidad, stock_minimo, created_at, ultima_actualizacion)
		VALUES ($1, $2, $3, $4, $5, $6, now(), now())
		ON CONFLICT (presentacion_id, almacen_id, lote_id)
		DO UPDATE SET cantidad = EXCLUDED.cantidad, ultima_actualizacion = now()`
	_, err := r.q.Exec(context.Background(), query,
		inv.ID, inv.PresentacionID, inv.AlmacenID, inv.LoteID, inv.Cantidad, inv.StockMinimo,
	)
	if err != nil {
		return fmt.Errorf("upsert inventario: %w", err)
	}
	return nil
}

// TotalPorPresentacion suma todas las posiciones de la presentación en el almacén.
func (r *InventarioRepo) TotalPorPresentacion(presentacionID, almacenID string) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.q.QueryRow(context.Background(),
		`SELECT COALESCE(SUM(cantidad), 0) FROM inventario WHERE presentacion_id = $1 AND almacen_id = $2`,
		presentacionID, almacenID,
	).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("total por presentación: %w", err)
	}
	return total, nil
}

// LotesDisponiblesForUpdate bloquea y devuelve las posiciones con lote y
// cantidad positiva, ordenadas por fecha de ingreso del lote. El ORDER BY
// dentro del FOR UPDATE fija el orden de adquisición de los bloqueos.
func (r *InventarioRepo) LotesDisponiblesForUpdate(presentacionID, almacenID string) ([]dominv.LoteDisponible, error) {
	query := `
		SELECT i.lote_id, l.fecha_ingreso, i.cantidad
		FROM inventario i
		JOIN lotes l ON l.id = i.lote_id
		WHERE i.presentacion_id = $1 AND i.almacen_id = $2 AND i.cantidad > 0
		ORDER BY l.fecha_ingreso, i.lote_id
		FOR UPDATE OF i`
	rows, err := r.q.Query(context.Background(), query, presentacionID, almacenID)
	if err != nil {
		return nil, fmt.Errorf("lotes disponibles: %w", err)
	}
	defer rows.Close()

	var lotes []dominv.LoteDisponible
	for rows.Next() {
		var ld dominv.LoteDisponible
		if err := rows.Scan(&ld.LoteID, &ld.FechaIngreso, &ld.Disponible); err != nil {
			return nil, fmt.Errorf("scan lote disponible: %w", err)
		}
		lotes = append(lotes, ld)
	}
	return lotes, rows.Err()
}

// BajoStockMinimo lista las posiciones del almacén por debajo de su umbral.
func (r *InventarioRepo) BajoStockMinimo(almacenID string) ([]*entity.Inventario, error) {
	query := `SELECT ` + columnasInventario + `
		FROM inventario
		WHERE almacen_id = $1 AND stock_minimo > 0 AND cantidad < stock_minimo
		ORDER BY presentacion_id`
	rows, err := r.q.Query(context.Background(), query, almacenID)
	if err != nil {
		return nil, fmt.Errorf("bajo stock mínimo: %w", err)
	}
	defer rows.Close()

	var lista []*entity.Inventario
	for rows.Next() {
		var inv entity.Inventario
		if err := rows.Scan(&inv.ID, &inv.PresentacionID, &inv.AlmacenID, &inv.LoteID,
			&inv.Cantidad, &inv.StockMinimo, &inv.CreatedAt, &inv.UltimaActualizacion); err != nil {
			return nil, fmt.Errorf("scan inventario: %w", err)
		}
		lista = append(lista, &inv)
	}
	return lista, rows.Err()
}
