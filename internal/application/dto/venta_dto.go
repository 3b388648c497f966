package dto

import "github.com/shopspring/decimal"

// AsignarRequest preview de asignación FIFO (no toca nada).
type AsignarRequest struct {
	ProductoID string          `json:"producto_id" validate:"required"`
	Cantidad   decimal.Decimal `json:"cantidad" validate:"required"`
}

// AsignacionResponse consumo planificado sobre un lote.
type AsignacionResponse struct {
	LoteID               string          `json:"lote_id"`
	Cantidad             decimal.Decimal `json:"cantidad"`
	PrecioCompraUnitario decimal.Decimal `json:"precioCompraUnitario"`
}

// PlanAsignacionResponse resultado del preview.
type PlanAsignacionResponse struct {
	ProductoID   string               `json:"producto_id"`
	Cantidad     decimal.Decimal      `json:"cantidad"`
	Asignaciones []AsignacionResponse `json:"asignaciones"`
}

// ItemRequest una acción "agregar producto" del borrador; puede materializarse
// en varios items si cruza lotes.
type ItemRequest struct {
	ProductoID          string          `json:"producto_id" validate:"required"`
	Cantidad            decimal.Decimal `json:"cantidad" validate:"required"`
	PrecioVentaUnitario decimal.Decimal `json:"precioVentaUnitario"` // 0 = precio default del producto
}

// PagoRequest par (método, monto) del pago mixto.
type PagoRequest struct {
	Metodo string          `json:"metodo" validate:"required,oneof=efectivo tarjeta transferencia yape plin"`
	Monto  decimal.Decimal `json:"monto" validate:"required"`
}

// RegistrarVentaRequest borrador completo a comprometer: el cliente arma los
// items vía previews y manda todo junto al commit.
type RegistrarVentaRequest struct {
	Tipo    string        `json:"tipo" validate:"required,oneof=venta cotizacion"`
	Cliente string        `json:"cliente" validate:"omitempty,max=200"`
	Items   []ItemRequest `json:"items" validate:"required,min=1,dive"`
	Pagos   []PagoRequest `json:"pagos" validate:"omitempty,dive"` // obligatorio para tipo=venta
}

// ConfirmarCotizacionRequest pagos para pasar una cotización pendiente a completada.
type ConfirmarCotizacionRequest struct {
	Pagos []PagoRequest `json:"pagos" validate:"required,min=1,dive"`
}

// ItemVentaResponse línea materializada (una por lote tocado).
type ItemVentaResponse struct {
	ID                   string          `json:"id"`
	ProductoID           string          `json:"producto_id"`
	LoteID               string          `json:"loteId"`
	Cantidad             decimal.Decimal `json:"cantidad"`
	PrecioVentaUnitario  decimal.Decimal `json:"precioVentaUnitario"`
	PrecioCompraUnitario decimal.Decimal `json:"precioCompraUnitario"`
	Subtotal             decimal.Decimal `json:"subtotal"`
}

// VentaResponse cabecera comprometida con items y pagos.
// gananciaTotal no se incluye: no se expone al cliente final.
type VentaResponse struct {
	ID           string              `json:"id"`
	Tipo         string              `json:"tipo"`
	Cliente      string              `json:"cliente,omitempty"`
	Estado       string              `json:"estado"`
	TotalMonto   decimal.Decimal     `json:"totalMonto"`
	Items        []ItemVentaResponse `json:"items"`
	Pagos        []PagoRequest       `json:"pagos,omitempty"`
	Advertencias []string            `json:"advertencias,omitempty"` // ej. precio bajo el mínimo
	CreatedAt    string              `json:"created_at"`
}

// LoteResponse entrada del Lot Ledger de un producto.
type LoteResponse struct {
	ID                   string          `json:"id"`
	FechaIngreso         string          `json:"fechaIngreso"`
	StockRestante        decimal.Decimal `json:"stockRestante"`
	PrecioCompraUnitario decimal.Decimal `json:"precioCompraUnitario"`
	Estado               string          `json:"estado"`
}

// MovimientoResponse entrada del rastro de auditoría.
type MovimientoResponse struct {
	ID                   string          `json:"id"`
	VentaID              string          `json:"venta_id"`
	ProductoID           string          `json:"producto_id"`
	LoteID               string          `json:"loteId"`
	Tipo                 string          `json:"tipo"`
	Cantidad             decimal.Decimal `json:"cantidad"`
	PrecioCompraUnitario decimal.Decimal `json:"precioCompraUnitario"`
	StockResultante      decimal.Decimal `json:"stockResultante"`
	Fecha                string          `json:"fecha"`
}
