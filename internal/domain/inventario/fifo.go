// Package inventario contiene los servicios de dominio puros del motor de
// inventario por lotes: asignación FIFO y cálculo de margen. Ninguna función
// de este paquete hace I/O; las mismas rutinas se usan en el preview
// especulativo del borrador y dentro de la transacción de commit.
package inventario

import (
	"sort"

	"github.com/gestormotorep-source/Gestor-moto-sub003/internal/domain"
	"github.com/gestormotorep-source/Gestor-moto-sub003/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// Asignacion es el consumo planificado sobre un lote concreto.
type Asignacion struct {
	LoteID               string
	Cantidad             decimal.Decimal
	PrecioCompraUnitario decimal.Decimal
}

// PlanAsignacion es el resultado completo de una asignación FIFO: una entrada
// por lote tocado, en el mismo orden en que se consumen.
type PlanAsignacion struct {
	ProductoID   string
	Cantidad     decimal.Decimal
	Asignaciones []Asignacion
}

// OrdenarLotesFIFO ordena el snapshot por FechaIngreso ascendente, con empate
// por ID para que el resultado sea determinista. No muta el slice de entrada.
func OrdenarLotesFIFO(lotes []*entity.Lote) []*entity.Lote {
	ordenados := make([]*entity.Lote, len(lotes))
	copy(ordenados, lotes)
	sort.SliceStable(ordenados, func(i, j int) bool {
		if ordenados[i].FechaIngreso.Equal(ordenados[j].FechaIngreso) {
			return ordenados[i].ID < ordenados[j].ID
		}
		return ordenados[i].FechaIngreso.Before(ordenados[j].FechaIngreso)
	})
	return ordenados
}

// Asignar recorre los lotes elegibles en orden FIFO y reparte la cantidad
// solicitada: de cada lote consume min(restante, StockRestante) hasta agotar
// la solicitud. Si los lotes se agotan antes, retorna InsufficientStockError
// con el faltante y NINGUNA asignación parcial.
//
// El snapshot debe venir ya ordenado por FechaIngreso ascendente (como lo
// entrega LoteRepository.ListarActivos); los lotes no elegibles se saltan.
// Mismas entradas producen siempre el mismo plan.
func Asignar(productoID string, cantidad decimal.Decimal, lotes []*entity.Lote) (*PlanAsignacion, error) {
	if !cantidad.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}

	restante := cantidad
	asignaciones := make([]Asignacion, 0, len(lotes))
	for _, lote := range lotes {
		if restante.IsZero() {
			break
		}
		if !lote.Elegible() {
			continue
		}
		consumo := decimal.Min(restante, lote.StockRestante)
		asignaciones = append(asignaciones, Asignacion{
			LoteID:               lote.ID,
			Cantidad:             consumo,
			PrecioCompraUnitario: lote.PrecioCompraUnitario,
		})
		restante = restante.Sub(consumo)
	}

	if restante.GreaterThan(decimal.Zero) {
		return nil, &domain.InsufficientStockError{ProductoID: productoID, Faltante: restante}
	}

	return &PlanAsignacion{
		ProductoID:   productoID,
		Cantidad:     cantidad,
		Asignaciones: asignaciones,
	}, nil
}
