package postgres

import (
	"context"
	"fmt"

	"github.com/gestormotorep-source/Gestor-moto-sub003/internal/domain/entity"
	"github.com/gestormotorep-source/Gestor-moto-sub003/internal/domain/repository"
)

var _ repository.PagoRepository = (*PagoRepo)(nil)

// PagoRepo implementación del puerto PagoRepository sobre PostgreSQL.
type PagoRepo struct {
	q Querier
}

// NewPagoRepository construye el adaptador de pagos. Pasar pool o tx (Querier).
func NewPagoRepository(q Querier) *PagoRepo {
	return &PagoRepo{q: q}
}

// Create persiste un pago de la venta. La unicidad por método la garantiza
// la restricción UNIQUE (venta_id, metodo); el id BIGSERIAL conserva el orden
// de captura.
func (r *PagoRepo) Create(ventaID string, pago entity.Pago) error {
	query := `INSERT INTO pagos_venta (venta_id, metodo, monto) VALUES ($1, $2, $3)`
	_, err := r.q.Exec(context.Background(), query, ventaID, pago.Metodo, pago.Monto)
	if err != nil {
		return fmt.Errorf("insert pago: %w", err)
	}
	return nil
}

// ListByVenta devuelve los pagos registrados para una venta, en el orden en
// que se capturaron.
func (r *PagoRepo) ListByVenta(ventaID string) ([]entity.Pago, error) {
	query := `SELECT metodo, monto FROM pagos_venta WHERE venta_id = $1 ORDER BY id`
	rows, err := r.q.Query(context.Background(), query, ventaID)
	if err != nil {
		return nil, fmt.Errorf("list pagos: %w", err)
	}
	defer rows.Close()

	var pagos []entity.Pago
	for rows.Next() {
		var p entity.Pago
		if err := rows.Scan(&p.Metodo, &p.Monto); err != nil {
			return nil, err
		}
		pagos = append(pagos, p)
	}
	return pagos, rows.Err()
}
