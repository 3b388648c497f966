package ventas

import (
	"context"

	"github.com/gestormotorep-source/Gestor-moto-sub003/internal/domain/entity"
	"github.com/gestormotorep-source/Gestor-moto-sub003/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad para el committer y,
// ante conflictos de escritura (serialización/deadlock), reintenta la función
// completa un número acotado de veces con backoff — reiniciando desde la fase
// de lectura — antes de rendirse con ConcurrentModificationError.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		loteRepo repository.LoteRepository,
		productoRepo repository.ProductoRepository,
		ventaRepo repository.VentaRepository,
		movRepo repository.MovimientoRepository,
		pagoRepo repository.PagoRepository,
	) error) error
}

// LotLedger es la vista de solo lectura sobre los lotes de un producto, usada
// por el preview especulativo fuera de toda transacción. La implementación de
// producción es el repositorio PostgreSQL envuelto por el cache Redis.
type LotLedger interface {
	ListarActivos(productoID string) ([]*entity.Lote, error)
	CostoCabezaFIFO(productoID string) (decimal.Decimal, error)
}

// LedgerInvalidator lo implementa el cache del ledger para descartar entradas
// después de un commit que consumió stock.
type LedgerInvalidator interface {
	Invalidar(productoIDs ...string)
}

// ReciboPDFGenerator genera la representación imprimible de una venta o
// cotización ya comprometida.
type ReciboPDFGenerator interface {
	GenerarRecibo(venta *entity.Venta, productos map[string]*entity.Producto) ([]byte, error)
}
