package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound             = errors.New("recurso no encontrado")
	ErrProductoNoEncontrado = errors.New("producto no encontrado")
	ErrLoteNoEncontrado     = errors.New("lote no encontrado")
	ErrVentaNoEncontrada    = errors.New("venta no encontrada")
	ErrItemNoEncontrado     = errors.New("item no encontrado")
	ErrUserNotFound         = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists   = errors.New("el email ya está registrado")
	ErrInvalidInput         = errors.New("entrada inválida")
	ErrDuplicate            = errors.New("recurso duplicado")
	ErrUnauthorized         = errors.New("no autorizado")
	ErrForbidden            = errors.New("acceso denegado")
	ErrEstadoInvalido       = errors.New("transición de estado no permitida")
)

// InsufficientStockError indica que la cantidad solicitada excede el stock
// elegible, sea en el preview de asignación o en la validación del commit.
// Nombra el producto o el lote ofendido; nunca hay satisfacción parcial.
type InsufficientStockError struct {
	ProductoID string
	LoteID     string // vacío cuando la falta es a nivel producto
	Faltante   decimal.Decimal
}

func (e *InsufficientStockError) Error() string {
	if e.LoteID != "" {
		return fmt.Sprintf("stock insuficiente en lote %s (faltan %s)", e.LoteID, e.Faltante.String())
	}
	return fmt.Sprintf("stock insuficiente para producto %s (faltan %s)", e.ProductoID, e.Faltante.String())
}

// PaymentImbalanceError indica que la suma de los pagos no cuadra con el
// total de la venta dentro de la tolerancia de 0.01.
type PaymentImbalanceError struct {
	Esperado   decimal.Decimal
	Actual     decimal.Decimal
	Diferencia decimal.Decimal
}

func (e *PaymentImbalanceError) Error() string {
	return fmt.Sprintf("pagos desbalanceados: esperado %s, recibido %s (diferencia %s)",
		e.Esperado.StringFixed(2), e.Actual.StringFixed(2), e.Diferencia.StringFixed(2))
}

// ConcurrentModificationError indica que otro commit concurrente tocó los
// mismos lotes/productos y los reintentos acotados se agotaron. El caller
// puede repetir la secuencia borrador→commit completa.
type ConcurrentModificationError struct {
	Refs []string
}

func (e *ConcurrentModificationError) Error() string {
	if len(e.Refs) == 0 {
		return "modificación concurrente detectada"
	}
	return "modificación concurrente detectada en: " + strings.Join(e.Refs, ", ")
}
