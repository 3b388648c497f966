package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/gestormotorep-source/Gestor-moto-sub003/internal/domain"
	"github.com/gestormotorep-source/Gestor-moto-sub003/internal/domain/entity"
	"github.com/gestormotorep-source/Gestor-moto-sub003/internal/domain/repository"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

var _ repository.ProductoRepository = (*ProductoRepo)(nil)

// ProductoRepo implementación del puerto ProductoRepository sobre PostgreSQL (usable con pool o tx).
type ProductoRepo struct {
	q Querier
}

// NewProductoRepository construye el adaptador de productos. Pasar pool o tx (Querier).
func NewProductoRepository(q Querier) *ProductoRepo {
	return &ProductoRepo{q: q}
}

const camposProducto = `id, codigo, nombre, descripcion, marca, stock_actual, precio_venta_default, precio_venta_minimo, precio_compra_default, created_at, updated_at`

// Create persiste un nuevo producto. El stock arranca en 0.
func (r *ProductoRepo) Create(producto *entity.Producto) error {
	query := `
		INSERT INTO productos (` + camposProducto + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		producto.ID, producto.Codigo, producto.Nombre, producto.Descripcion, producto.Marca,
		producto.StockActual, producto.PrecioVentaDefault, producto.PrecioVentaMinimo,
		producto.PrecioCompraDefault, producto.CreatedAt, producto.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert producto: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID.
func (r *ProductoRepo) GetByID(id string) (*entity.Producto, error) {
	query := `SELECT ` + camposProducto + ` FROM productos WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

// GetByCodigo obtiene un producto por su código único.
func (r *ProductoRepo) GetByCodigo(codigo string) (*entity.Producto, error) {
	query := `SELECT ` + camposProducto + ` FROM productos WHERE codigo = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, codigo))
}

// GetForUpdate obtiene el producto y bloquea la fila (SELECT FOR UPDATE).
func (r *ProductoRepo) GetForUpdate(id string) (*entity.Producto, error) {
	query := `SELECT ` + camposProducto + ` FROM productos WHERE id = $1 FOR UPDATE`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

// Update actualiza los campos editables del catálogo.
func (r *ProductoRepo) Update(producto *entity.Producto) error {
	query := `
		UPDATE productos
		SET nombre = $2, descripcion = $3, marca = $4,
		    precio_venta_default = $5, precio_venta_minimo = $6, updated_at = now()
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		producto.ID, producto.Nombre, producto.Descripcion, producto.Marca,
		producto.PrecioVentaDefault, producto.PrecioVentaMinimo,
	)
	if err != nil {
		return fmt.Errorf("update producto: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrProductoNoEncontrado
	}
	return nil
}

// ActualizarStock fija el agregado stock_actual y el cache precio_compra_default
// tras un commit del motor de ventas.
func (r *ProductoRepo) ActualizarStock(id string, stockActual, precioCompraDefault decimal.Decimal) error {
	query := `
		UPDATE productos
		SET stock_actual = $2, precio_compra_default = $3, updated_at = now()
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, id, stockActual, precioCompraDefault)
	if err != nil {
		return fmt.Errorf("actualizar stock producto: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrProductoNoEncontrado
	}
	return nil
}

// List lista el catálogo paginado por código.
func (r *ProductoRepo) List(limit, offset int) ([]*entity.Producto, error) {
	query := `SELECT ` + camposProducto + ` FROM productos ORDER BY codigo LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list productos: %w", err)
	}
	defer rows.Close()

	var productos []*entity.Producto
	for rows.Next() {
		var p entity.Producto
		if err := rows.Scan(
			&p.ID, &p.Codigo, &p.Nombre, &p.Descripcion, &p.Marca,
			&p.StockActual, &p.PrecioVentaDefault, &p.PrecioVentaMinimo,
			&p.PrecioCompraDefault, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, err
		}
		productos = append(productos, &p)
	}
	return productos, rows.Err()
}

func (r *ProductoRepo) scanOne(row pgx.Row) (*entity.Producto, error) {
	var p entity.Producto
	err := row.Scan(
		&p.ID, &p.Codigo, &p.Nombre, &p.Descripcion, &p.Marca,
		&p.StockActual, &p.PrecioVentaDefault, &p.PrecioVentaMinimo,
		&p.PrecioCompraDefault, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get producto: %w", err)
	}
	return &p, nil
}
