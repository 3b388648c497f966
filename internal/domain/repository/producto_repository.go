package repository

import (
	"github.com/gestormotorep-source/Gestor-moto-sub003/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// ProductoRepository define el puerto de persistencia para Producto (DIP).
// GetForUpdate bloquea la fila (SELECT FOR UPDATE) y solo tiene sentido
// dentro de una transacción del committer.
type ProductoRepository interface {
	Create(producto *entity.Producto) error
	GetByID(id string) (*entity.Producto, error)
	GetByCodigo(codigo string) (*entity.Producto, error)
	GetForUpdate(id string) (*entity.Producto, error)
	Update(producto *entity.Producto) error
	// ActualizarStock fija el agregado StockActual y el cache de exhibición
	// PrecioCompraDefault después de un commit.
	ActualizarStock(id string, stockActual, precioCompraDefault decimal.Decimal) error
	List(limit, offset int) ([]*entity.Producto, error)
}
