package postgres

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/carbosur/inventario-api/internal/domain/entity"
	"github.com/carbosur/inventario-api/internal/domain/repository"
)

var _ repository.PagoRepository = (*PagoRepo)(nil)

// PagoRepo implementación sobre PostgreSQL (usable con pool o tx).
type PagoRepo struct {
	q Querier
}

// NewPagoRepository construye el adaptador.
func NewPagoRepository(q Querier) *PagoRepo {
	return &PagoRepo{q: q}
}

// Create registra un abono. Los pagos no se editan ni se borran.
func (r *PagoRepo) Create(p *entity.Pago) error {
	query := `
		INSERT INTO pagos (id, venta_id, usuario_id, monto, fecha, metodo_pago, referencia, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, now())`
	_, err := r.q.Exec(context.Background(), query,
		p.ID, p.VentaID, p.UsuarioID, p.Monto, p.Fecha, p.MetodoPago, p.Referencia,
	)
	if err != nil {
		return fmt.Errorf("crear pago: %w", err)
	}
	return nil
}

// TotalPagado suma los abonos de la venta.
func (r *PagoRepo) TotalPagado(ventaID string) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.q.QueryRow(context.Background(),
		`SELECT COALESCE(SUM(monto), 0) FROM pagos WHERE venta_id = $1`, ventaID).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("total pagado: %w", err)
	}
	return total, nil
}

// ListByVenta lista los abonos de la venta en orden cronológico.
func (r *PagoRepo) ListByVenta(ventaID string) ([]*entity.Pago, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT id, venta_id, usuario_id, monto, fecha, metodo_pago, referencia, created_at
		 FROM pagos WHERE venta_id = $1 ORDER BY fecha, created_at`, ventaID)
	if err != nil {
		return nil, fmt.Errorf("listar pagos: %w", err)
	}
	defer rows.Close()

	var lista []*entity.Pago
	for rows.Next() {
		var p entity.Pago
		if err := rows.Scan(&p.ID, &p.VentaID, &p.UsuarioID, &p.Monto, &p.Fecha,
			&p.MetodoPago, &p.Referencia, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan pago: %w", err)
		}
		lista = append(lista, &p)
	}
	return lista, rows.Err()
}
