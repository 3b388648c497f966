// Package pagos implementa la conciliación de pagos mixtos de una venta:
// mantiene los pares (método, monto) y solo permite confirmar cuando la suma
// cuadra con el total de la cabecera dentro de la tolerancia.
package pagos

import (
	"github.com/gestormotorep-source/Gestor-moto-sub003/internal/domain"
	"github.com/gestormotorep-source/Gestor-moto-sub003/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// Tolerancia de cuadre: |Σ montos − total| debe ser ESTRICTAMENTE menor.
// Una diferencia de exactamente 0.01 se rechaza.
var Epsilon = decimal.RequireFromString("0.01")

// Reconciliador acumula los pagos de una cabecera y valida el cuadre contra
// el total. Es un valor puro: no toca almacenamiento y puede descartarse
// junto con el borrador sin efectos.
type Reconciliador struct {
	total decimal.Decimal
	pagos []entity.Pago
}

// NewReconciliador crea el reconciliador para el total indicado, arrancando
// con el total completo en el primer método (el flujo habitual de caja: un
// solo método, y el cajero divide después si hace falta).
func NewReconciliador(total decimal.Decimal) *Reconciliador {
	return &Reconciliador{
		total: total,
		pagos: []entity.Pago{{Metodo: entity.MetodoEfectivo, Monto: total}},
	}
}

// NewReconciliadorVacio crea el reconciliador sin métodos precargados
// (para reconstruir paymentData recibido del caller).
func NewReconciliadorVacio(total decimal.Decimal) *Reconciliador {
	return &Reconciliador{total: total}
}

// Pagos devuelve una copia de los pares (método, monto) en su orden actual.
func (r *Reconciliador) Pagos() []entity.Pago {
	out := make([]entity.Pago, len(r.pagos))
	copy(out, r.pagos)
	return out
}

// Total devuelve el total de la cabecera contra el que se concilia.
func (r *Reconciliador) Total() decimal.Decimal { return r.total }

// AgregarMetodo añade un método con monto 0. Rechaza métodos fuera del
// conjunto aceptado y métodos ya presentes (unicidad por cabecera).
func (r *Reconciliador) AgregarMetodo(metodo string) error {
	if !entity.MetodoValido(metodo) {
		return domain.ErrInvalidInput
	}
	if r.indice(metodo) >= 0 {
		return domain.ErrDuplicate
	}
	r.pagos = append(r.pagos, entity.Pago{Metodo: metodo, Monto: decimal.Zero})
	return nil
}

// QuitarMetodo elimina un método. Se rechaza quitar el último restante.
func (r *Reconciliador) QuitarMetodo(metodo string) error {
	i := r.indice(metodo)
	if i < 0 {
		return domain.ErrNotFound
	}
	if len(r.pagos) == 1 {
		return domain.ErrInvalidInput
	}
	r.pagos = append(r.pagos[:i], r.pagos[i+1:]...)
	return nil
}

// FijarMonto asigna el monto de un método existente. Montos negativos se rechazan.
func (r *Reconciliador) FijarMonto(metodo string, monto decimal.Decimal) error {
	if monto.IsNegative() {
		return domain.ErrInvalidInput
	}
	i := r.indice(metodo)
	if i < 0 {
		return domain.ErrNotFound
	}
	r.pagos[i].Monto = monto
	return nil
}

// DistribuirRestante suma el faltante actual al último método de la lista.
// Si los pagos ya exceden el total no hace nada.
func (r *Reconciliador) DistribuirRestante() {
	if len(r.pagos) == 0 {
		return
	}
	restante := r.total.Sub(r.suma())
	if restante.GreaterThan(decimal.Zero) {
		ultimo := len(r.pagos) - 1
		r.pagos[ultimo].Monto = r.pagos[ultimo].Monto.Add(restante)
	}
}

// Balanceado indica si |Σ montos − total| < 0.01.
func (r *Reconciliador) Balanceado() bool {
	return r.suma().Sub(r.total).Abs().LessThan(Epsilon)
}

// Confirmar valida el cuadre y devuelve el paymentData final: solo métodos
// con monto distinto de cero, deduplicados, en orden de captura. Falla con
// PaymentImbalanceError si no está balanceado o si la suma es cero.
func (r *Reconciliador) Confirmar() ([]entity.Pago, error) {
	suma := r.suma()
	if !r.Balanceado() || !suma.GreaterThan(decimal.Zero) {
		return nil, &domain.PaymentImbalanceError{
			Esperado:   r.total,
			Actual:     suma,
			Diferencia: suma.Sub(r.total).Abs(),
		}
	}
	finales := make([]entity.Pago, 0, len(r.pagos))
	vistos := make(map[string]bool, len(r.pagos))
	for _, p := range r.pagos {
		if p.Monto.IsZero() || vistos[p.Metodo] {
			continue
		}
		vistos[p.Metodo] = true
		finales = append(finales, p)
	}
	return finales, nil
}

func (r *Reconciliador) suma() decimal.Decimal {
	s := decimal.Zero
	for _, p := range r.pagos {
		s = s.Add(p.Monto)
	}
	return s
}

func (r *Reconciliador) indice(metodo string) int {
	for i, p := range r.pagos {
		if p.Metodo == metodo {
			return i
		}
	}
	return -1
}

// Validar reconstruye un reconciliador desde paymentData ya armado por el
// caller y lo confirma contra el total. Es el gate que usa el committer.
func Validar(total decimal.Decimal, pagos []entity.Pago) ([]entity.Pago, error) {
	r := NewReconciliadorVacio(total)
	for _, p := range pagos {
		if err := r.AgregarMetodo(p.Metodo); err != nil {
			return nil, err
		}
		if err := r.FijarMonto(p.Metodo, p.Monto); err != nil {
			return nil, err
		}
	}
	return r.Confirmar()
}
