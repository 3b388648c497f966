package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/gestormotorep-source/Gestor-moto-sub003/internal/domain"
	"github.com/gestormotorep-source/Gestor-moto-sub003/internal/domain/entity"
	"github.com/gestormotorep-source/Gestor-moto-sub003/internal/domain/repository"
	"github.com/jackc/pgx/v5"
)

var _ repository.VentaRepository = (*VentaRepo)(nil)

// VentaRepo implementación del puerto VentaRepository sobre PostgreSQL.
type VentaRepo struct {
	q Querier
}

// NewVentaRepository construye el adaptador de ventas. Pasar pool o tx (Querier).
func NewVentaRepository(q Querier) *VentaRepo {
	return &VentaRepo{q: q}
}

const camposVenta = `id, tipo, cliente, estado, total_monto, ganancia_total, creada_por, created_at, updated_at`

const camposItem = `id, venta_id, producto_id, lote_id, cantidad, precio_venta_unitario, precio_compra_unitario, subtotal, ganancia_unitaria, ganancia_total`

// Create persiste la cabecera. Solo se invoca dentro de un commit exitoso.
func (r *VentaRepo) Create(venta *entity.Venta) error {
	query := `
		INSERT INTO ventas (` + camposVenta + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		venta.ID, venta.Tipo, venta.Cliente, venta.Estado,
		venta.TotalMonto, venta.GananciaTotal, venta.CreadaPor,
		venta.CreatedAt, venta.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert venta: %w", err)
	}
	return nil
}

// CreateItem persiste un item con su base de costo congelada.
func (r *VentaRepo) CreateItem(item *entity.ItemVenta) error {
	query := `
		INSERT INTO items_venta (` + camposItem + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.VentaID, item.ProductoID, item.LoteID, item.Cantidad,
		item.PrecioVentaUnitario, item.PrecioCompraUnitario,
		item.Subtotal, item.GananciaUnitaria, item.GananciaTotal,
	)
	if err != nil {
		return fmt.Errorf("insert item venta: %w", err)
	}
	return nil
}

// GetByID obtiene la cabecera por ID, sin items.
func (r *VentaRepo) GetByID(id string) (*entity.Venta, error) {
	query := `SELECT ` + camposVenta + ` FROM ventas WHERE id = $1`
	var v entity.Venta
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&v.ID, &v.Tipo, &v.Cliente, &v.Estado,
		&v.TotalMonto, &v.GananciaTotal, &v.CreadaPor,
		&v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get venta: %w", err)
	}
	return &v, nil
}

// GetItems devuelve los items de la cabecera en orden de inserción.
func (r *VentaRepo) GetItems(ventaID string) ([]*entity.ItemVenta, error) {
	query := `SELECT ` + camposItem + ` FROM items_venta WHERE venta_id = $1 ORDER BY id`
	rows, err := r.q.Query(context.Background(), query, ventaID)
	if err != nil {
		return nil, fmt.Errorf("get items venta: %w", err)
	}
	defer rows.Close()

	var items []*entity.ItemVenta
	for rows.Next() {
		var it entity.ItemVenta
		if err := rows.Scan(
			&it.ID, &it.VentaID, &it.ProductoID, &it.LoteID, &it.Cantidad,
			&it.PrecioVentaUnitario, &it.PrecioCompraUnitario,
			&it.Subtotal, &it.GananciaUnitaria, &it.GananciaTotal,
		); err != nil {
			return nil, err
		}
		items = append(items, &it)
	}
	return items, rows.Err()
}

// ActualizarEstado cambia el estado de la cabecera.
func (r *VentaRepo) ActualizarEstado(id, estado string) error {
	query := `UPDATE ventas SET estado = $2, updated_at = now() WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, id, estado)
	if err != nil {
		return fmt.Errorf("actualizar estado venta: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrVentaNoEncontrada
	}
	return nil
}

// List lista cabeceras de un tipo, más recientes primero.
func (r *VentaRepo) List(tipo string, limit, offset int) ([]*entity.Venta, error) {
	query := `
		SELECT ` + camposVenta + ` FROM ventas
		WHERE tipo = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, tipo, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list ventas: %w", err)
	}
	defer rows.Close()

	var ventas []*entity.Venta
	for rows.Next() {
		var v entity.Venta
		if err := rows.Scan(
			&v.ID, &v.Tipo, &v.Cliente, &v.Estado,
			&v.TotalMonto, &v.GananciaTotal, &v.CreadaPor,
			&v.CreatedAt, &v.UpdatedAt,
		); err != nil {
			return nil, err
		}
		ventas = append(ventas, &v)
	}
	return ventas, rows.Err()
}
