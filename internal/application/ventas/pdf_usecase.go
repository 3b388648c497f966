package ventas

import (
	"context"

	"github.com/gestormotorep-source/Gestor-moto-sub003/internal/domain"
	"github.com/gestormotorep-source/Gestor-moto-sub003/internal/domain/entity"
	"github.com/gestormotorep-source/Gestor-moto-sub003/internal/domain/repository"
)

// PDFUseCase genera el recibo imprimible de una venta o cotización comprometida.
type PDFUseCase struct {
	motor     *MotorVentas
	productos repository.ProductoRepository
	generator ReciboPDFGenerator
}

// NewPDFUseCase construye el caso de uso.
func NewPDFUseCase(motor *MotorVentas, productos repository.ProductoRepository, generator ReciboPDFGenerator) *PDFUseCase {
	return &PDFUseCase{motor: motor, productos: productos, generator: generator}
}

// GenerarRecibo arma los datos y delega en el generador Maroto. Solo cabeceras
// ya comprometidas tienen recibo; un borrador no existe fuera del caller.
func (uc *PDFUseCase) GenerarRecibo(ctx context.Context, ventaID string) ([]byte, error) {
	venta, err := uc.motor.GetVenta(ctx, ventaID)
	if err != nil {
		return nil, err
	}
	if venta.Estado == entity.EstadoBorrador {
		return nil, domain.ErrEstadoInvalido
	}

	productos := make(map[string]*entity.Producto)
	for _, item := range venta.Items {
		if _, ok := productos[item.ProductoID]; ok {
			continue
		}
		p, err := uc.productos.GetByID(item.ProductoID)
		if err != nil {
			return nil, err
		}
		if p == nil {
			return nil, domain.ErrProductoNoEncontrado
		}
		productos[item.ProductoID] = p
	}
	return uc.generator.GenerarRecibo(venta, productos)
}
