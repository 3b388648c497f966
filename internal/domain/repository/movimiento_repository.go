package repository

import (
	"time"

	"github.com/gestormotorep-source/Gestor-moto-sub003/internal/domain/entity"
)

// MovimientoRepository define el puerto de persistencia para el rastro de
// auditoría. Los movimientos son inmutables: solo se crean y se consultan.
type MovimientoRepository interface {
	Create(movimiento *entity.MovimientoStock) error
	ListByProducto(productoID string, desde, hasta *time.Time, limit, offset int) ([]*entity.MovimientoStock, error)
	ListByVenta(ventaID string) ([]*entity.MovimientoStock, error)
}
