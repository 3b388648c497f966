package inventario_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gestormotorep-source/Gestor-moto-sub003/internal/domain"
	"github.com/gestormotorep-source/Gestor-moto-sub003/internal/domain/entity"
	"github.com/gestormotorep-source/Gestor-moto-sub003/internal/domain/inventario"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

var base = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

func lote(id string, dia int, stock, costo float64) *entity.Lote {
	return &entity.Lote{
		ID:                   id,
		ProductoID:           "P1",
		FechaIngreso:         base.AddDate(0, 0, dia),
		StockInicial:         decimal.NewFromFloat(stock),
		StockRestante:        decimal.NewFromFloat(stock),
		PrecioCompraUnitario: decimal.NewFromFloat(costo),
		Estado:               entity.LoteActivo,
	}
}

func dec(v float64) decimal.Decimal { return decimal.NewFromFloat(v) }

// ──────────────────────────────────────────────────────────────────────────────
// Asignar
// ──────────────────────────────────────────────────────────────────────────────

func TestAsignar_EscenarioDosLotes(t *testing.T) {
	// P con B1(día 1, stock 5, costo 10.00) y B2(día 2, stock 10, costo 12.00):
	// asignar 8 debe dar [B1:5@10.00, B2:3@12.00].
	lotes := []*entity.Lote{lote("B1", 1, 5, 10.00), lote("B2", 2, 10, 12.00)}

	plan, err := inventario.Asignar("P1", dec(8), lotes)
	require.NoError(t, err)
	require.Len(t, plan.Asignaciones, 2)

	assert.Equal(t, "B1", plan.Asignaciones[0].LoteID)
	assert.True(t, plan.Asignaciones[0].Cantidad.Equal(dec(5)))
	assert.True(t, plan.Asignaciones[0].PrecioCompraUnitario.Equal(dec(10.00)))

	assert.Equal(t, "B2", plan.Asignaciones[1].LoteID)
	assert.True(t, plan.Asignaciones[1].Cantidad.Equal(dec(3)))
	assert.True(t, plan.Asignaciones[1].PrecioCompraUnitario.Equal(dec(12.00)))
}

func TestAsignar_ConsumeLoteMasAntiguoPrimero(t *testing.T) {
	// Aunque el snapshot llegue desordenado tras OrdenarLotesFIFO, cualquier
	// cantidad debe agotar B1 antes de tocar B2.
	lotes := inventario.OrdenarLotesFIFO([]*entity.Lote{
		lote("B2", 2, 10, 12.00),
		lote("B1", 1, 5, 10.00),
	})

	plan, err := inventario.Asignar("P1", dec(6), lotes)
	require.NoError(t, err)
	require.Len(t, plan.Asignaciones, 2)
	assert.Equal(t, "B1", plan.Asignaciones[0].LoteID)
	assert.True(t, plan.Asignaciones[0].Cantidad.Equal(dec(5)), "B1 debe agotarse por completo")
	assert.Equal(t, "B2", plan.Asignaciones[1].LoteID)
}

func TestAsignar_EmpateDeFechaDesempataPorID(t *testing.T) {
	l1 := lote("A-02", 1, 5, 10)
	l2 := lote("A-01", 1, 5, 11)

	lotes := inventario.OrdenarLotesFIFO([]*entity.Lote{l1, l2})
	plan, err := inventario.Asignar("P1", dec(3), lotes)
	require.NoError(t, err)
	require.Len(t, plan.Asignaciones, 1)
	assert.Equal(t, "A-01", plan.Asignaciones[0].LoteID)
}

func TestAsignar_Conservacion(t *testing.T) {
	lotes := []*entity.Lote{lote("B1", 1, 5, 10), lote("B2", 2, 10, 12), lote("B3", 3, 7, 9)}

	plan, err := inventario.Asignar("P1", dec(13), lotes)
	require.NoError(t, err)

	suma := decimal.Zero
	for i, a := range plan.Asignaciones {
		suma = suma.Add(a.Cantidad)
		assert.True(t, a.Cantidad.LessThanOrEqual(lotes[i].StockRestante),
			"ninguna asignación puede exceder el stock del lote al momento de la lectura")
	}
	assert.True(t, suma.Equal(dec(13)), "Σ cantidades asignadas == cantidad solicitada")
}

func TestAsignar_InsuficienteSinAsignacionParcial(t *testing.T) {
	// Total elegible 15; pedir 20 debe fallar con faltante 5 y sin plan.
	lotes := []*entity.Lote{lote("B1", 1, 5, 10.00), lote("B2", 2, 10, 12.00)}

	plan, err := inventario.Asignar("P1", dec(20), lotes)
	require.Error(t, err)
	assert.Nil(t, plan, "sin asignación parcial en caso de falla")

	var insuf *domain.InsufficientStockError
	require.ErrorAs(t, err, &insuf)
	assert.Equal(t, "P1", insuf.ProductoID)
	assert.True(t, insuf.Faltante.Equal(dec(5)))

	// Y los lotes del snapshot quedan intactos.
	assert.True(t, lotes[0].StockRestante.Equal(dec(5)))
	assert.True(t, lotes[1].StockRestante.Equal(dec(10)))
}

func TestAsignar_SaltaLotesNoElegibles(t *testing.T) {
	agotado := lote("B0", 0, 0, 8)
	agotado.Estado = entity.LoteAgotado
	lotes := []*entity.Lote{agotado, lote("B1", 1, 5, 10)}

	plan, err := inventario.Asignar("P1", dec(4), lotes)
	require.NoError(t, err)
	require.Len(t, plan.Asignaciones, 1)
	assert.Equal(t, "B1", plan.Asignaciones[0].LoteID)
}

func TestAsignar_PreviewIdempotente(t *testing.T) {
	// Con el snapshot sin cambios, dos previews dan planes idénticos.
	lotes := []*entity.Lote{lote("B1", 1, 5, 10), lote("B2", 2, 10, 12)}

	plan1, err1 := inventario.Asignar("P1", dec(8), lotes)
	plan2, err2 := inventario.Asignar("P1", dec(8), lotes)
	require.NoError(t, err1)
	require.NoError(t, err2)
	require.Equal(t, len(plan1.Asignaciones), len(plan2.Asignaciones))
	for i := range plan1.Asignaciones {
		assert.Equal(t, plan1.Asignaciones[i].LoteID, plan2.Asignaciones[i].LoteID)
		assert.True(t, plan1.Asignaciones[i].Cantidad.Equal(plan2.Asignaciones[i].Cantidad))
	}
}

func TestAsignar_CantidadInvalida(t *testing.T) {
	lotes := []*entity.Lote{lote("B1", 1, 5, 10)}

	_, err := inventario.Asignar("P1", decimal.Zero, lotes)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = inventario.Asignar("P1", dec(-3), lotes)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// CalcularMargen
// ──────────────────────────────────────────────────────────────────────────────

func TestCalcularMargen_EscenarioVenta(t *testing.T) {
	// Con el plan [B1:5@10.00, B2:3@12.00] a precio de venta 20.00:
	// márgenes unitarios 10.00 y 8.00; ganancia total 5×10 + 3×8 = 74.00;
	// subtotal 8×20.00 = 160.00.
	m1 := inventario.CalcularMargen(dec(10.00), dec(20.00), dec(5))
	m2 := inventario.CalcularMargen(dec(12.00), dec(20.00), dec(3))

	assert.True(t, m1.Unitaria.Equal(dec(10.00)))
	assert.True(t, m2.Unitaria.Equal(dec(8.00)))
	assert.True(t, m1.Total.Add(m2.Total).Equal(dec(74.00)))
	assert.True(t, dec(8).Mul(dec(20.00)).Equal(dec(160.00)))
}

func TestCalcularMargen_MargenNegativoPermitido(t *testing.T) {
	// Vender bajo costo es válido (el mínimo de precio es solo advertencia).
	m := inventario.CalcularMargen(dec(15), dec(12), dec(2))
	assert.True(t, m.Unitaria.Equal(dec(-3)))
	assert.True(t, m.Total.Equal(dec(-6)))
}
