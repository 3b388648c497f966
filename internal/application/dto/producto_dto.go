package dto

import "github.com/shopspring/decimal"

// ProductoResponse salida de catálogo. precioCompraDefault es el costo del
// lote activo más antiguo, solo para exhibición en el back office.
type ProductoResponse struct {
	ID                  string          `json:"id"`
	Codigo              string          `json:"codigo"`
	Nombre              string          `json:"nombre"`
	Descripcion         string          `json:"descripcion,omitempty"`
	Marca               string          `json:"marca,omitempty"`
	StockActual         decimal.Decimal `json:"stockActual"`
	PrecioVentaDefault  decimal.Decimal `json:"precioVentaDefault"`
	PrecioVentaMinimo   decimal.Decimal `json:"precioVentaMinimo"`
	PrecioCompraDefault decimal.Decimal `json:"precioCompraDefault"`
}

// CreateProductoRequest alta de producto en el catálogo (el stock entra por
// el flujo de recepción de lotes, no por aquí).
type CreateProductoRequest struct {
	Codigo             string          `json:"codigo" validate:"required,max=50"`
	Nombre             string          `json:"nombre" validate:"required,max=200"`
	Descripcion        string          `json:"descripcion" validate:"omitempty,max=500"`
	Marca              string          `json:"marca" validate:"omitempty,max=100"`
	PrecioVentaDefault decimal.Decimal `json:"precioVentaDefault" validate:"required"`
	PrecioVentaMinimo  decimal.Decimal `json:"precioVentaMinimo"`
}
