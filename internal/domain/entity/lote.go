package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de un lote.
const (
	LoteActivo  = "activo"
	LoteAgotado = "agotado"
)

// Lote representa una entrada de mercadería con su propio costo unitario fijo.
// FechaIngreso define el orden FIFO; empates se rompen por ID para que la
// asignación sea determinista. Invariante: Estado = agotado ⇔ StockRestante = 0.
// Los lotes los crea el flujo de recepción (fuera de este core); aquí solo se
// consumen y StockRestante es monótonamente no creciente.
type Lote struct {
	ID                   string
	ProductoID           string
	FechaIngreso         time.Time
	StockInicial         decimal.Decimal
	StockRestante        decimal.Decimal
	PrecioCompraUnitario decimal.Decimal // inmutable desde la creación del lote
	Estado               string
	CreatedAt            time.Time
}

// Elegible indica si el lote puede participar en una asignación FIFO.
func (l *Lote) Elegible() bool {
	return l.Estado == LoteActivo && l.StockRestante.GreaterThan(decimal.Zero)
}
