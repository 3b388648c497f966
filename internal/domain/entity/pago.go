package entity

import "github.com/shopspring/decimal"

// Métodos de pago aceptados en caja.
const (
	MetodoEfectivo      = "efectivo"
	MetodoTarjeta       = "tarjeta"
	MetodoTransferencia = "transferencia"
	MetodoYape          = "yape"
	MetodoPlin          = "plin"
)

// MetodosValidos enumera los métodos aceptados, en orden de presentación.
func MetodosValidos() []string {
	return []string{MetodoEfectivo, MetodoTarjeta, MetodoTransferencia, MetodoYape, MetodoPlin}
}

// MetodoValido indica si el método pertenece al conjunto aceptado.
func MetodoValido(metodo string) bool {
	switch metodo {
	case MetodoEfectivo, MetodoTarjeta, MetodoTransferencia, MetodoYape, MetodoPlin:
		return true
	}
	return false
}

// Pago es un par (método, monto) de una venta con pago mixto. Cada método
// aparece a lo sumo una vez por cabecera; al commit la suma de montos debe
// igualar TotalMonto dentro de la tolerancia de 0.01.
type Pago struct {
	Metodo string
	Monto  decimal.Decimal
}
