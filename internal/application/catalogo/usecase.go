// Package catalogo expone el lado de solo lectura/alta del catálogo: productos,
// el Lot Ledger por producto y el historial de movimientos de auditoría.
package catalogo

import (
	"context"
	"time"

	"github.com/gestormotorep-source/Gestor-moto-sub003/internal/application/dto"
	"github.com/gestormotorep-source/Gestor-moto-sub003/internal/domain"
	"github.com/gestormotorep-source/Gestor-moto-sub003/internal/domain/entity"
	"github.com/gestormotorep-source/Gestor-moto-sub003/internal/domain/repository"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CatalogoUseCase consultas de productos, lotes y movimientos.
type CatalogoUseCase struct {
	productos repository.ProductoRepository
	lotes     repository.LoteRepository
	movs      repository.MovimientoRepository
}

// NewCatalogoUseCase construye el caso de uso.
func NewCatalogoUseCase(
	productos repository.ProductoRepository,
	lotes repository.LoteRepository,
	movs repository.MovimientoRepository,
) *CatalogoUseCase {
	return &CatalogoUseCase{productos: productos, lotes: lotes, movs: movs}
}

// CrearProducto da de alta un producto con stock 0; el stock entra después
// por el flujo de recepción de lotes.
func (uc *CatalogoUseCase) CrearProducto(ctx context.Context, in dto.CreateProductoRequest) (*dto.ProductoResponse, error) {
	if in.Codigo == "" || in.Nombre == "" || !in.PrecioVentaDefault.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	existente, err := uc.productos.GetByCodigo(in.Codigo)
	if err != nil {
		return nil, err
	}
	if existente != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	p := &entity.Producto{
		ID:                 uuid.New().String(),
		Codigo:             in.Codigo,
		Nombre:             in.Nombre,
		Descripcion:        in.Descripcion,
		Marca:              in.Marca,
		StockActual:        decimal.Zero,
		PrecioVentaDefault: in.PrecioVentaDefault,
		PrecioVentaMinimo:  in.PrecioVentaMinimo,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if err := uc.productos.Create(p); err != nil {
		return nil, err
	}
	return toProductoResponse(p), nil
}

// GetProducto devuelve un producto por ID.
func (uc *CatalogoUseCase) GetProducto(ctx context.Context, id string) (*dto.ProductoResponse, error) {
	p, err := uc.productos.GetByID(id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrProductoNoEncontrado
	}
	return toProductoResponse(p), nil
}

// ListProductos lista el catálogo paginado.
func (uc *CatalogoUseCase) ListProductos(ctx context.Context, limit, offset int) ([]dto.ProductoResponse, error) {
	lista, err := uc.productos.List(limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductoResponse, 0, len(lista))
	for _, p := range lista {
		out = append(out, *toProductoResponse(p))
	}
	return out, nil
}

// GetLotLedger devuelve los lotes elegibles del producto en orden FIFO.
func (uc *CatalogoUseCase) GetLotLedger(ctx context.Context, productoID string) ([]dto.LoteResponse, error) {
	p, err := uc.productos.GetByID(productoID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrProductoNoEncontrado
	}
	lotes, err := uc.lotes.ListarActivos(productoID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.LoteResponse, 0, len(lotes))
	for _, l := range lotes {
		out = append(out, dto.LoteResponse{
			ID:                   l.ID,
			FechaIngreso:         l.FechaIngreso.Format(time.RFC3339),
			StockRestante:        l.StockRestante,
			PrecioCompraUnitario: l.PrecioCompraUnitario,
			Estado:               l.Estado,
		})
	}
	return out, nil
}

// GetMovimientos historial de auditoría de un producto.
func (uc *CatalogoUseCase) GetMovimientos(ctx context.Context, productoID string, desde, hasta *time.Time, limit, offset int) ([]dto.MovimientoResponse, error) {
	movs, err := uc.movs.ListByProducto(productoID, desde, hasta, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.MovimientoResponse, 0, len(movs))
	for _, m := range movs {
		out = append(out, dto.MovimientoResponse{
			ID:                   m.ID,
			VentaID:              m.VentaID,
			ProductoID:           m.ProductoID,
			LoteID:               m.LoteID,
			Tipo:                 m.Tipo,
			Cantidad:             m.Cantidad,
			PrecioCompraUnitario: m.PrecioCompraUnitario,
			StockResultante:      m.StockResultante,
			Fecha:                m.Fecha.Format(time.RFC3339),
		})
	}
	return out, nil
}

func toProductoResponse(p *entity.Producto) *dto.ProductoResponse {
	return &dto.ProductoResponse{
		ID:                  p.ID,
		Codigo:              p.Codigo,
		Nombre:              p.Nombre,
		Descripcion:         p.Descripcion,
		Marca:               p.Marca,
		StockActual:         p.StockActual,
		PrecioVentaDefault:  p.PrecioVentaDefault,
		PrecioVentaMinimo:   p.PrecioVentaMinimo,
		PrecioCompraDefault: p.PrecioCompraDefault,
	}
}
