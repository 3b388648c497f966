package http

import (
	"time"

	"github.com/gestormotorep-source/Gestor-moto-sub003/internal/application/catalogo"
	"github.com/gestormotorep-source/Gestor-moto-sub003/internal/application/dto"
	"github.com/gestormotorep-source/Gestor-moto-sub003/internal/domain"
	"github.com/gofiber/fiber/v2"
)

// ProductoHandler expone el catálogo: productos, lot ledger y movimientos.
type ProductoHandler struct {
	uc *catalogo.CatalogoUseCase
}

// NewProductoHandler construye el handler de catálogo.
func NewProductoHandler(uc *catalogo.CatalogoUseCase) *ProductoHandler {
	return &ProductoHandler{uc: uc}
}

// Create godoc
// @Summary      Alta de producto (stock entra por recepción de lotes)
// @Tags         productos
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateProductoRequest  true  "codigo, nombre, precios"
// @Success      201   {object}  dto.ProductoResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/productos [post]
func (h *ProductoHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProductoRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	p, err := h.uc.CrearProducto(c.UserContext(), in)
	if err != nil {
		if err == domain.ErrDuplicate {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CODIGO_EXISTS", Message: "ya existe un producto con ese código"})
		}
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "codigo, nombre y precioVentaDefault > 0 son requeridos"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(p)
}

// GetByID godoc
// @Summary      Obtener producto por ID
// @Tags         productos
// @Produce      json
// @Param        id  path  string  true  "ID del producto"
// @Success      200  {object}  dto.ProductoResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/productos/{id} [get]
func (h *ProductoHandler) GetByID(c *fiber.Ctx) error {
	p, err := h.uc.GetProducto(c.UserContext(), c.Params("id"))
	if err != nil {
		if err == domain.ErrProductoNoEncontrado {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "producto no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(p)
}

// List godoc
// @Summary      Listar catálogo
// @Tags         productos
// @Produce      json
// @Param        limit   query  int  false  "máx resultados"
// @Param        offset  query  int  false  "desplazamiento"
// @Success      200  {array}  dto.ProductoResponse
// @Router       /api/productos [get]
func (h *ProductoHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "query inválida"})
	}
	page.DefaultPage()
	lista, err := h.uc.ListProductos(c.UserContext(), page.Limit, page.Offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(lista)
}

// LotLedger godoc
// @Summary      Lot ledger del producto (lotes elegibles en orden FIFO)
// @Tags         productos
// @Produce      json
// @Param        id  path  string  true  "ID del producto"
// @Success      200  {array}  dto.LoteResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/productos/{id}/lotes [get]
func (h *ProductoHandler) LotLedger(c *fiber.Ctx) error {
	lotes, err := h.uc.GetLotLedger(c.UserContext(), c.Params("id"))
	if err != nil {
		if err == domain.ErrProductoNoEncontrado {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "producto no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(lotes)
}

// Movimientos godoc
// @Summary      Historial de movimientos de auditoría del producto
// @Tags         productos
// @Produce      json
// @Param        id      path   string  true   "ID del producto"
// @Param        desde   query  string  false  "RFC3339"
// @Param        hasta   query  string  false  "RFC3339"
// @Param        limit   query  int     false  "máx resultados"
// @Param        offset  query  int     false  "desplazamiento"
// @Success      200  {array}  dto.MovimientoResponse
// @Router       /api/productos/{id}/movimientos [get]
func (h *ProductoHandler) Movimientos(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "query inválida"})
	}
	page.DefaultPage()

	desde, err := parseFecha(c.Query("desde"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "desde debe ser RFC3339"})
	}
	hasta, err := parseFecha(c.Query("hasta"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "hasta debe ser RFC3339"})
	}

	movs, err := h.uc.GetMovimientos(c.UserContext(), c.Params("id"), desde, hasta, page.Limit, page.Offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(movs)
}

func parseFecha(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
