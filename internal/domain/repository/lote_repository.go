package repository

import (
	"github.com/gestormotorep-source/Gestor-moto-sub003/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// LoteRepository define el puerto de persistencia para Lote.
// ListarActivos es el Lot Ledger: vista de solo lectura usada por el preview
// especulativo, fuera de cualquier transacción.
type LoteRepository interface {
	// ListarActivos devuelve los lotes elegibles del producto ordenados por
	// fecha_ingreso ascendente, con empate por id (orden FIFO total).
	ListarActivos(productoID string) ([]*entity.Lote, error)
	GetByID(id string) (*entity.Lote, error)
	// GetForUpdate bloquea la fila del lote (SELECT FOR UPDATE) dentro de la
	// transacción de commit.
	GetForUpdate(id string) (*entity.Lote, error)
	// Descontar resta cantidad de stock_restante y marca agotado si llega a 0.
	Descontar(id string, cantidad decimal.Decimal) error
	// CostoCabezaFIFO devuelve el precio_compra_unitario del lote activo más
	// antiguo del producto, o 0 si no queda ninguno. Lo usan el refresco de
	// precioCompraDefault y el recálculo de margen al editar un item.
	CostoCabezaFIFO(productoID string) (decimal.Decimal, error)
}
