package repository

import "github.com/gestormotorep-source/Gestor-moto-sub003/internal/domain/entity"

// VentaRepository define el puerto de persistencia para cabeceras e items.
// Las cabeceras solo se crean dentro de un commit exitoso; los borradores
// nunca llegan a este puerto.
type VentaRepository interface {
	Create(venta *entity.Venta) error
	CreateItem(item *entity.ItemVenta) error
	GetByID(id string) (*entity.Venta, error)
	// GetItems devuelve los items de la cabecera en orden de inserción.
	GetItems(ventaID string) ([]*entity.ItemVenta, error)
	// ActualizarEstado cambia el estado de la cabecera (transiciones del
	// ciclo cotización: pendiente → completada / anulada).
	ActualizarEstado(id, estado string) error
	List(tipo string, limit, offset int) ([]*entity.Venta, error)
}
