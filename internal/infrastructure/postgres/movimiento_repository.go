package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/gestormotorep-source/Gestor-moto-sub003/internal/domain/entity"
	"github.com/gestormotorep-source/Gestor-moto-sub003/internal/domain/repository"
)

var _ repository.MovimientoRepository = (*MovimientoRepo)(nil)

// MovimientoRepo implementación del puerto MovimientoRepository sobre PostgreSQL.
// Los movimientos son inmutables, el adaptador solo inserta y consulta.
type MovimientoRepo struct {
	q Querier
}

// NewMovimientoRepository construye el adaptador de movimientos. Pasar pool o tx (Querier).
func NewMovimientoRepository(q Querier) *MovimientoRepo {
	return &MovimientoRepo{q: q}
}

const camposMovimiento = `id, venta_id, producto_id, lote_id, tipo, cantidad, precio_compra_unitario, stock_resultante, fecha, creado_por`

// Create persiste un movimiento del rastro de auditoría.
func (r *MovimientoRepo) Create(movimiento *entity.MovimientoStock) error {
	query := `
		INSERT INTO movimientos_stock (` + camposMovimiento + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		movimiento.ID, movimiento.VentaID, movimiento.ProductoID, movimiento.LoteID,
		movimiento.Tipo, movimiento.Cantidad, movimiento.PrecioCompraUnitario,
		movimiento.StockResultante, movimiento.Fecha, movimiento.CreadoPor,
	)
	if err != nil {
		return fmt.Errorf("insert movimiento: %w", err)
	}
	return nil
}

// ListByProducto consulta el historial de un producto con rango de fechas opcional.
func (r *MovimientoRepo) ListByProducto(productoID string, desde, hasta *time.Time, limit, offset int) ([]*entity.MovimientoStock, error) {
	query := `SELECT ` + camposMovimiento + ` FROM movimientos_stock WHERE producto_id = $1`
	args := []interface{}{productoID}

	if desde != nil {
		args = append(args, *desde)
		query += fmt.Sprintf(" AND fecha >= $%d", len(args))
	}
	if hasta != nil {
		args = append(args, *hasta)
		query += fmt.Sprintf(" AND fecha <= $%d", len(args))
	}
	args = append(args, limit, offset)
	query += fmt.Sprintf(" ORDER BY fecha DESC, id DESC LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	return r.list(query, args...)
}

// ListByVenta consulta los movimientos generados por una venta o cotización.
func (r *MovimientoRepo) ListByVenta(ventaID string) ([]*entity.MovimientoStock, error) {
	query := `SELECT ` + camposMovimiento + ` FROM movimientos_stock WHERE venta_id = $1 ORDER BY id`
	return r.list(query, ventaID)
}

func (r *MovimientoRepo) list(query string, args ...interface{}) ([]*entity.MovimientoStock, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list movimientos: %w", err)
	}
	defer rows.Close()

	var movimientos []*entity.MovimientoStock
	for rows.Next() {
		var m entity.MovimientoStock
		if err := rows.Scan(
			&m.ID, &m.VentaID, &m.ProductoID, &m.LoteID,
			&m.Tipo, &m.Cantidad, &m.PrecioCompraUnitario,
			&m.StockResultante, &m.Fecha, &m.CreadoPor,
		); err != nil {
			return nil, err
		}
		movimientos = append(movimientos, &m)
	}
	return movimientos, rows.Err()
}
