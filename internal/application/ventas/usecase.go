// Package ventas implementa el motor unificado de ventas y cotizaciones:
// preview de asignación FIFO sobre el Lot Ledger, armado del borrador en
// memoria del caller, conciliación de pagos y commit transaccional con
// re-validación contra lecturas frescas.
package ventas

import (
	"context"
	"time"

	"github.com/gestormotorep-source/Gestor-moto-sub003/internal/domain"
	"github.com/gestormotorep-source/Gestor-moto-sub003/internal/domain/entity"
	"github.com/gestormotorep-source/Gestor-moto-sub003/internal/domain/inventario"
	"github.com/gestormotorep-source/Gestor-moto-sub003/internal/domain/pagos"
	"github.com/gestormotorep-source/Gestor-moto-sub003/internal/domain/repository"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MotorVentas es el caso de uso central: el mismo motor atiende ventas
// directas y cotizaciones. El borrador (entity.Venta en estado borrador) vive
// en memoria del caller y se pasa explícitamente a cada operación; el motor
// no guarda estado de sesión.
type MotorVentas struct {
	txRunner  TxRunner
	ledger    LotLedger
	productos repository.ProductoRepository
	ventasR   repository.VentaRepository
	pagosR    repository.PagoRepository
	movs      repository.MovimientoRepository
}

// NewMotorVentas construye el motor. ledger suele ser el repositorio de lotes
// envuelto por el cache Redis; los demás repos van directo al pool.
func NewMotorVentas(
	txRunner TxRunner,
	ledger LotLedger,
	productos repository.ProductoRepository,
	ventasR repository.VentaRepository,
	pagosR repository.PagoRepository,
	movs repository.MovimientoRepository,
) *MotorVentas {
	return &MotorVentas{
		txRunner:  txRunner,
		ledger:    ledger,
		productos: productos,
		ventasR:   ventasR,
		pagosR:    pagosR,
		movs:      movs,
	}
}

// NuevoBorrador crea una cabecera en estado borrador. Descartarla antes del
// commit no tiene ningún efecto sobre lotes ni productos.
func (uc *MotorVentas) NuevoBorrador(tipo, cliente, usuarioID string) (*entity.Venta, error) {
	if tipo != entity.DocVenta && tipo != entity.DocCotizacion {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	return &entity.Venta{
		ID:            uuid.New().String(),
		Tipo:          tipo,
		Cliente:       cliente,
		Estado:        entity.EstadoBorrador,
		TotalMonto:    decimal.Zero,
		GananciaTotal: decimal.Zero,
		CreadaPor:     usuarioID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}

// Asignar es el preview especulativo: corre el asignador FIFO contra el
// snapshot actual del Lot Ledger, sin tocar nada. El resultado NO se confía
// al commit; ahí se re-valida contra lecturas frescas.
func (uc *MotorVentas) Asignar(ctx context.Context, productoID string, cantidad decimal.Decimal) (*inventario.PlanAsignacion, error) {
	if productoID == "" {
		return nil, domain.ErrInvalidInput
	}
	producto, err := uc.productos.GetByID(productoID)
	if err != nil {
		return nil, err
	}
	if producto == nil {
		return nil, domain.ErrProductoNoEncontrado
	}
	lotes, err := uc.ledger.ListarActivos(productoID)
	if err != nil {
		return nil, err
	}
	return inventario.Asignar(productoID, cantidad, lotes)
}

// ResultadoAgregarItem agrupa los items materializados por una acción
// "agregar producto" (uno por lote tocado) y la advertencia de precio bajo.
type ResultadoAgregarItem struct {
	Items             []*entity.ItemVenta
	PrecioBajoMinimo  bool
	PrecioVentaMinimo decimal.Decimal
}

// AgregarItem asigna la cantidad contra el ledger y materializa un ItemVenta
// por cada lote del plan, copiando el costo del lote como base de costo.
// Precio 0 toma el precio de venta por defecto del producto. Vender por
// debajo de precioVentaMinimo se permite, solo marca la advertencia.
func (uc *MotorVentas) AgregarItem(ctx context.Context, borrador *entity.Venta, productoID string, cantidad, precioVenta decimal.Decimal) (*ResultadoAgregarItem, error) {
	if borrador == nil || borrador.Estado != entity.EstadoBorrador {
		return nil, domain.ErrEstadoInvalido
	}
	if precioVenta.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	producto, err := uc.productos.GetByID(productoID)
	if err != nil {
		return nil, err
	}
	if producto == nil {
		return nil, domain.ErrProductoNoEncontrado
	}
	if precioVenta.IsZero() {
		precioVenta = producto.PrecioVentaDefault
	}

	lotes, err := uc.ledger.ListarActivos(productoID)
	if err != nil {
		return nil, err
	}
	plan, err := inventario.Asignar(productoID, cantidad, lotes)
	if err != nil {
		return nil, err
	}

	items := make([]*entity.ItemVenta, 0, len(plan.Asignaciones))
	for _, a := range plan.Asignaciones {
		item := &entity.ItemVenta{
			ID:                   uuid.New().String(),
			VentaID:              borrador.ID,
			ProductoID:           productoID,
			LoteID:               a.LoteID,
			Cantidad:             a.Cantidad,
			PrecioVentaUnitario:  precioVenta,
			PrecioCompraUnitario: a.PrecioCompraUnitario,
		}
		item.RecalcularMontos()
		items = append(items, item)
	}
	borrador.Items = append(borrador.Items, items...)
	borrador.RecalcularTotales()

	return &ResultadoAgregarItem{
		Items:             items,
		PrecioBajoMinimo:  precioVenta.LessThan(producto.PrecioVentaMinimo),
		PrecioVentaMinimo: producto.PrecioVentaMinimo,
	}, nil
}

// EditarItem reemplaza cantidad y precio de un item del borrador manteniendo
// la referencia al mismo lote. La base de costo se re-consulta del lote
// activo más antiguo disponible del producto en ese momento, no del lote
// originalmente asignado: el margen mostrado refleja el costo de reposición
// vigente mientras el borrador siga abierto.
func (uc *MotorVentas) EditarItem(ctx context.Context, borrador *entity.Venta, itemID string, nuevaCantidad, nuevoPrecio decimal.Decimal) (*entity.ItemVenta, error) {
	if borrador == nil || borrador.Estado != entity.EstadoBorrador {
		return nil, domain.ErrEstadoInvalido
	}
	if !nuevaCantidad.GreaterThan(decimal.Zero) || nuevoPrecio.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	item := borrador.BuscarItem(itemID)
	if item == nil {
		return nil, domain.ErrItemNoEncontrado
	}

	costoCabeza, err := uc.ledger.CostoCabezaFIFO(item.ProductoID)
	if err != nil {
		return nil, err
	}

	item.Cantidad = nuevaCantidad
	if !nuevoPrecio.IsZero() {
		item.PrecioVentaUnitario = nuevoPrecio
	}
	item.PrecioCompraUnitario = costoCabeza
	item.RecalcularMontos()
	borrador.RecalcularTotales()
	return item, nil
}

// QuitarItem elimina un item del borrador y recalcula totales.
func (uc *MotorVentas) QuitarItem(borrador *entity.Venta, itemID string) error {
	if borrador == nil || borrador.Estado != entity.EstadoBorrador {
		return domain.ErrEstadoInvalido
	}
	if !borrador.QuitarItem(itemID) {
		return domain.ErrItemNoEncontrado
	}
	return nil
}

// ReconciliarPagos valida el paymentData armado por el caller contra el total
// del borrador y lo deja fijado en la cabecera (deduplicado, sin montos 0).
func (uc *MotorVentas) ReconciliarPagos(borrador *entity.Venta, entrada []entity.Pago) ([]entity.Pago, error) {
	if borrador == nil || borrador.Estado != entity.EstadoBorrador {
		return nil, domain.ErrEstadoInvalido
	}
	finales, err := pagos.Validar(borrador.TotalMonto, entrada)
	if err != nil {
		return nil, err
	}
	borrador.Pagos = finales
	return finales, nil
}

// GetVenta devuelve una cabecera comprometida con items y pagos.
func (uc *MotorVentas) GetVenta(ctx context.Context, id string) (*entity.Venta, error) {
	venta, err := uc.ventasR.GetByID(id)
	if err != nil {
		return nil, err
	}
	if venta == nil {
		return nil, domain.ErrVentaNoEncontrada
	}
	items, err := uc.ventasR.GetItems(id)
	if err != nil {
		return nil, err
	}
	venta.Items = items
	listaPagos, err := uc.pagosR.ListByVenta(id)
	if err != nil {
		return nil, err
	}
	venta.Pagos = listaPagos
	return venta, nil
}

// ListVentas lista cabeceras comprometidas de un tipo, más recientes primero.
func (uc *MotorVentas) ListVentas(ctx context.Context, tipo string, limit, offset int) ([]*entity.Venta, error) {
	if tipo != entity.DocVenta && tipo != entity.DocCotizacion {
		return nil, domain.ErrInvalidInput
	}
	return uc.ventasR.List(tipo, limit, offset)
}
