package ventas

import (
	"context"
	"sort"
	"time"

	"github.com/gestormotorep-source/Gestor-moto-sub003/internal/domain"
	"github.com/gestormotorep-source/Gestor-moto-sub003/internal/domain/entity"
	"github.com/gestormotorep-source/Gestor-moto-sub003/internal/domain/pagos"
	"github.com/gestormotorep-source/Gestor-moto-sub003/internal/domain/repository"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Commit compromete el borrador en una sola transacción con el protocolo
// leer → validar → escribir:
//
//  1. Lectura: bloquea (FOR UPDATE) cada lote y cada producto referenciado,
//     en orden de ID para evitar deadlocks entre commits concurrentes. Todas
//     las lecturas preceden a toda escritura del intento.
//  2. Validación: por lote, stock_restante ≥ Σ cantidades de sus items; por
//     producto, stockActual ≥ Σ cantidades. Cualquier violación aborta el
//     intento completo con InsufficientStockError, sin efecto parcial.
//  3. Escritura: descuenta lotes (agotado al llegar a 0), descuenta el
//     agregado del producto y refresca precioCompraDefault al costo del
//     siguiente lote disponible, persiste cabecera, items, un movimiento de
//     auditoría por lote tocado y un pago por método con monto ≠ 0.
//
// El preview del borrador NUNCA se confía: la asignación se re-valida aquí
// contra lecturas frescas. Los conflictos de escritura los reintenta el
// TxRunner reiniciando desde la fase de lectura; agotados los reintentos
// emergen como ConcurrentModificationError.
//
// Venta directa queda completada; cotización queda pendiente (sus pagos se
// capturan recién en ConfirmarCotizacion).
func (uc *MotorVentas) Commit(ctx context.Context, borrador *entity.Venta, usuarioID string) (*entity.Venta, error) {
	if borrador == nil || borrador.Estado != entity.EstadoBorrador {
		return nil, domain.ErrEstadoInvalido
	}
	if len(borrador.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}

	destino := entity.EstadoCompletada
	if borrador.Tipo == entity.DocCotizacion {
		destino = entity.EstadoPendiente
	}
	if !borrador.PuedeTransicionar(destino) {
		return nil, domain.ErrEstadoInvalido
	}

	// El reconciliador gatea el commit de la venta directa.
	var pagosFinales []entity.Pago
	if borrador.Tipo == entity.DocVenta {
		var err error
		pagosFinales, err = pagos.Validar(borrador.TotalMonto, borrador.Pagos)
		if err != nil {
			return nil, err
		}
	}

	consumoPorLote, consumoPorProducto := agruparConsumo(borrador.Items)
	now := time.Now()

	err := uc.txRunner.Run(ctx, func(
		loteRepo repository.LoteRepository,
		productoRepo repository.ProductoRepository,
		ventaRepo repository.VentaRepository,
		movRepo repository.MovimientoRepository,
		pagoRepo repository.PagoRepository,
	) error {
		// ── Fase de lectura ──────────────────────────────────────────────
		lotesLeidos := make(map[string]*entity.Lote, len(consumoPorLote))
		for _, loteID := range clavesOrdenadas(consumoPorLote) {
			lote, err := loteRepo.GetForUpdate(loteID)
			if err != nil {
				return err
			}
			if lote == nil {
				return domain.ErrLoteNoEncontrado
			}
			lotesLeidos[loteID] = lote
		}
		productosLeidos := make(map[string]*entity.Producto, len(consumoPorProducto))
		for _, productoID := range clavesOrdenadas(consumoPorProducto) {
			producto, err := productoRepo.GetForUpdate(productoID)
			if err != nil {
				return err
			}
			if producto == nil {
				return domain.ErrProductoNoEncontrado
			}
			productosLeidos[productoID] = producto
		}

		// ── Fase de validación ───────────────────────────────────────────
		for loteID, consumo := range consumoPorLote {
			lote := lotesLeidos[loteID]
			if lote.StockRestante.LessThan(consumo) {
				return &domain.InsufficientStockError{
					ProductoID: lote.ProductoID,
					LoteID:     loteID,
					Faltante:   consumo.Sub(lote.StockRestante),
				}
			}
		}
		for productoID, consumo := range consumoPorProducto {
			producto := productosLeidos[productoID]
			if producto.StockActual.LessThan(consumo) {
				return &domain.InsufficientStockError{
					ProductoID: productoID,
					Faltante:   consumo.Sub(producto.StockActual),
				}
			}
		}

		// ── Fase de escritura ────────────────────────────────────────────
		for _, loteID := range clavesOrdenadas(consumoPorLote) {
			if err := loteRepo.Descontar(loteID, consumoPorLote[loteID]); err != nil {
				return err
			}
		}
		for _, productoID := range clavesOrdenadas(consumoPorProducto) {
			producto := productosLeidos[productoID]
			nuevoStock := producto.StockActual.Sub(consumoPorProducto[productoID])
			// Cache de exhibición: costo del siguiente lote disponible (0 si ninguno).
			costoCabeza, err := loteRepo.CostoCabezaFIFO(productoID)
			if err != nil {
				return err
			}
			if err := productoRepo.ActualizarStock(productoID, nuevoStock, costoCabeza); err != nil {
				return err
			}
		}

		borrador.Estado = destino
		borrador.CreadaPor = usuarioID
		borrador.UpdatedAt = now
		if err := ventaRepo.Create(borrador); err != nil {
			return err
		}
		for _, item := range borrador.Items {
			if err := ventaRepo.CreateItem(item); err != nil {
				return err
			}
		}

		tipoMov := entity.MovimientoVenta
		if borrador.Tipo == entity.DocCotizacion {
			tipoMov = entity.MovimientoCotizacion
		}
		for _, loteID := range clavesOrdenadas(consumoPorLote) {
			lote := lotesLeidos[loteID]
			consumo := consumoPorLote[loteID]
			mov := &entity.MovimientoStock{
				ID:                   uuid.New().String(),
				VentaID:              borrador.ID,
				ProductoID:           lote.ProductoID,
				LoteID:               loteID,
				Tipo:                 tipoMov,
				Cantidad:             consumo,
				PrecioCompraUnitario: lote.PrecioCompraUnitario,
				StockResultante:      lote.StockRestante.Sub(consumo),
				Fecha:                now,
				CreadoPor:            usuarioID,
			}
			if err := movRepo.Create(mov); err != nil {
				return err
			}
		}

		for _, pago := range pagosFinales {
			if err := pagoRepo.Create(borrador.ID, pago); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		// El intento no dejó efectos; el borrador vuelve a ser editable.
		borrador.Estado = entity.EstadoBorrador
		return nil, err
	}

	borrador.Pagos = pagosFinales
	uc.invalidarLedger(clavesOrdenadas(consumoPorProducto)...)
	return borrador, nil
}

// ConfirmarCotizacion pasa una cotización pendiente a completada, gateada por
// el reconciliador: los pagos deben cuadrar con el total ya comprometido.
func (uc *MotorVentas) ConfirmarCotizacion(ctx context.Context, ventaID string, entrada []entity.Pago, usuarioID string) (*entity.Venta, error) {
	venta, err := uc.GetVenta(ctx, ventaID)
	if err != nil {
		return nil, err
	}
	if venta.Tipo != entity.DocCotizacion || !venta.PuedeTransicionar(entity.EstadoCompletada) {
		return nil, domain.ErrEstadoInvalido
	}
	pagosFinales, err := pagos.Validar(venta.TotalMonto, entrada)
	if err != nil {
		return nil, err
	}

	err = uc.txRunner.Run(ctx, func(
		_ repository.LoteRepository,
		_ repository.ProductoRepository,
		ventaRepo repository.VentaRepository,
		_ repository.MovimientoRepository,
		pagoRepo repository.PagoRepository,
	) error {
		if err := ventaRepo.ActualizarEstado(ventaID, entity.EstadoCompletada); err != nil {
			return err
		}
		for _, pago := range pagosFinales {
			if err := pagoRepo.Create(ventaID, pago); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	venta.Estado = entity.EstadoCompletada
	venta.Pagos = pagosFinales
	return venta, nil
}

// AnularCotizacion pasa una cotización pendiente a anulada (estado final).
// No repone stock: la reposición es un flujo de recepción externo al motor.
func (uc *MotorVentas) AnularCotizacion(ctx context.Context, ventaID string) error {
	venta, err := uc.ventasR.GetByID(ventaID)
	if err != nil {
		return err
	}
	if venta == nil {
		return domain.ErrVentaNoEncontrada
	}
	if venta.Tipo != entity.DocCotizacion || !venta.PuedeTransicionar(entity.EstadoAnulada) {
		return domain.ErrEstadoInvalido
	}
	return uc.ventasR.ActualizarEstado(ventaID, entity.EstadoAnulada)
}

// agruparConsumo suma las cantidades por lote y por producto. Dos items del
// mismo borrador pueden referenciar el mismo lote (el mismo producto agregado
// dos veces), por eso la validación y el movimiento de auditoría van por lote
// agregado y no por item.
func agruparConsumo(items []*entity.ItemVenta) (porLote, porProducto map[string]decimal.Decimal) {
	porLote = make(map[string]decimal.Decimal, len(items))
	porProducto = make(map[string]decimal.Decimal)
	for _, item := range items {
		porLote[item.LoteID] = porLote[item.LoteID].Add(item.Cantidad)
		porProducto[item.ProductoID] = porProducto[item.ProductoID].Add(item.Cantidad)
	}
	return porLote, porProducto
}

// clavesOrdenadas devuelve las claves del mapa ordenadas. El orden estable de
// bloqueo evita deadlocks entre commits concurrentes sobre los mismos lotes.
func clavesOrdenadas(m map[string]decimal.Decimal) []string {
	claves := make([]string, 0, len(m))
	for k := range m {
		claves = append(claves, k)
	}
	sort.Strings(claves)
	return claves
}

func (uc *MotorVentas) invalidarLedger(productoIDs ...string) {
	if inv, ok := uc.ledger.(LedgerInvalidator); ok {
		inv.Invalidar(productoIDs...)
	}
}
