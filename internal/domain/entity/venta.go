package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de documento que maneja el motor (una venta directa o una cotización).
const (
	DocVenta      = "venta"
	DocCotizacion = "cotizacion"
)

// Estados de una venta/cotización.
// Venta directa: borrador → completada (una sola transición).
// Cotización: borrador → pendiente → completada.
// completada y anulada son finales; reabrir es responsabilidad externa.
const (
	EstadoBorrador   = "borrador"
	EstadoPendiente  = "pendiente"
	EstadoCompletada = "completada"
	EstadoAnulada    = "anulada"
)

// Venta es la cabecera de una venta o cotización: agrega items, totales y
// datos de pago. En estado borrador vive solo en memoria del caller y puede
// descartarse sin efectos; los lotes/productos no se tocan hasta el commit.
type Venta struct {
	ID            string
	Tipo          string // venta | cotizacion
	Cliente       string
	Estado        string
	TotalMonto    decimal.Decimal // Σ subtotales de los items
	GananciaTotal decimal.Decimal // Σ ganancias de los items; no se expone al cliente final
	Items         []*ItemVenta
	Pagos         []Pago
	CreadaPor     string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// PuedeTransicionar valida la máquina de estados de la cabecera.
func (v *Venta) PuedeTransicionar(destino string) bool {
	switch v.Estado {
	case EstadoBorrador:
		if v.Tipo == DocCotizacion {
			return destino == EstadoPendiente || destino == EstadoAnulada
		}
		return destino == EstadoCompletada || destino == EstadoAnulada
	case EstadoPendiente:
		return destino == EstadoCompletada || destino == EstadoAnulada
	default:
		// completada y anulada son finales
		return false
	}
}

// RecalcularTotales recorre los items y actualiza TotalMonto y GananciaTotal.
// Se invoca tras agregar, editar o quitar un item del borrador.
func (v *Venta) RecalcularTotales() {
	total := decimal.Zero
	ganancia := decimal.Zero
	for _, it := range v.Items {
		total = total.Add(it.Subtotal)
		ganancia = ganancia.Add(it.GananciaTotal)
	}
	v.TotalMonto = total
	v.GananciaTotal = ganancia
}

// BuscarItem devuelve el item con ese ID o nil.
func (v *Venta) BuscarItem(itemID string) *ItemVenta {
	for _, it := range v.Items {
		if it.ID == itemID {
			return it
		}
	}
	return nil
}

// QuitarItem elimina el item del borrador y recalcula totales.
// Devuelve false si el item no pertenece a la venta.
func (v *Venta) QuitarItem(itemID string) bool {
	for i, it := range v.Items {
		if it.ID == itemID {
			v.Items = append(v.Items[:i], v.Items[i+1:]...)
			v.RecalcularTotales()
			return true
		}
	}
	return false
}
