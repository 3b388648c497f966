package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de stock registrados por el motor de ventas.
const (
	MovimientoVenta      = "venta"
	MovimientoCotizacion = "cotizacion"
)

// MovimientoStock es el rastro de auditoría: una entrada inmutable por cada
// lote tocado en un commit. StockResultante es el StockRestante del lote
// inmediatamente después de descontar la cantidad consumida.
type MovimientoStock struct {
	ID                   string
	VentaID              string
	ProductoID           string
	LoteID               string
	Tipo                 string
	Cantidad             decimal.Decimal // cantidad consumida del lote
	PrecioCompraUnitario decimal.Decimal
	StockResultante      decimal.Decimal
	Fecha                time.Time
	CreadoPor            string
}
