package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Producto representa un repuesto de moto del catálogo.
// StockActual es un agregado materializado: suma de StockRestante de los lotes
// activos. Lo mantiene el committer de ventas después de cada commit; el
// asignador FIFO nunca lo muta. PrecioCompraDefault es un cache de exhibición
// con el costo del lote activo más antiguo (0 si no quedan lotes).
type Producto struct {
	ID                  string
	Codigo              string // código único del repuesto
	Nombre              string
	Descripcion         string
	Marca               string
	StockActual         decimal.Decimal
	PrecioVentaDefault  decimal.Decimal
	PrecioVentaMinimo   decimal.Decimal // piso blando: vender por debajo solo genera advertencia
	PrecioCompraDefault decimal.Decimal
	CreatedAt           time.Time
	UpdatedAt           time.Time
}
