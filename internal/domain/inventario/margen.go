package inventario

import "github.com/shopspring/decimal"

// Margen resultado del cálculo de ganancia de una línea.
type Margen struct {
	Unitaria decimal.Decimal // precio de venta − costo unitario
	Total    decimal.Decimal // cantidad × margen unitario
}

// CalcularMargen deriva la ganancia unitaria y total de una línea dado el
// costo del lote, el precio de venta elegido y la cantidad.
//
// Se usa al asignar con el costo inmutable del lote, y de nuevo al editar la
// línea. En la edición el motor consulta el costo del lote activo más antiguo
// disponible en ese momento, no la base de costo registrada en el item: el
// margen exhibido sigue el costo de reposición mientras el borrador está abierto.
func CalcularMargen(costoUnitario, precioVenta, cantidad decimal.Decimal) Margen {
	unitaria := precioVenta.Sub(costoUnitario)
	return Margen{
		Unitaria: unitaria,
		Total:    cantidad.Mul(unitaria),
	}
}
