package entity

import "github.com/shopspring/decimal"

// ItemVenta es una línea de una venta o cotización. Referencia exactamente UN
// lote: una sola acción "agregar producto" que cruza varios lotes se
// materializa como varios items, uno por lote tocado.
// PrecioCompraUnitario se copia del lote al momento de asignar y es la base
// de costo del item.
type ItemVenta struct {
	ID                   string
	VentaID              string
	ProductoID           string
	LoteID               string
	Cantidad             decimal.Decimal
	PrecioVentaUnitario  decimal.Decimal
	PrecioCompraUnitario decimal.Decimal
	Subtotal             decimal.Decimal // Cantidad × PrecioVentaUnitario
	GananciaUnitaria     decimal.Decimal // PrecioVentaUnitario − PrecioCompraUnitario
	GananciaTotal        decimal.Decimal // Cantidad × GananciaUnitaria
}

// RecalcularMontos fija Subtotal, GananciaUnitaria y GananciaTotal a partir de
// Cantidad, PrecioVentaUnitario y PrecioCompraUnitario.
func (it *ItemVenta) RecalcularMontos() {
	it.Subtotal = it.Cantidad.Mul(it.PrecioVentaUnitario)
	it.GananciaUnitaria = it.PrecioVentaUnitario.Sub(it.PrecioCompraUnitario)
	it.GananciaTotal = it.Cantidad.Mul(it.GananciaUnitaria)
}
