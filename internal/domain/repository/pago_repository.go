package repository

import "github.com/gestormotorep-source/Gestor-moto-sub003/internal/domain/entity"

// PagoRepository define el puerto de persistencia para los pagos de una venta.
// Se escribe un registro por método con monto distinto de cero, dentro del
// mismo commit que la cabecera.
type PagoRepository interface {
	Create(ventaID string, pago entity.Pago) error
	ListByVenta(ventaID string) ([]entity.Pago, error)
}
