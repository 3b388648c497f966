package http

import (
	"errors"
	"time"

	"github.com/gestormotorep-source/Gestor-moto-sub003/internal/application/dto"
	"github.com/gestormotorep-source/Gestor-moto-sub003/internal/application/ventas"
	"github.com/gestormotorep-source/Gestor-moto-sub003/internal/domain"
	"github.com/gestormotorep-source/Gestor-moto-sub003/internal/domain/entity"
	"github.com/gofiber/fiber/v2"
)

// VentaHandler expone el motor de ventas: preview FIFO, commit de borradores
// y el ciclo de vida de cotizaciones.
type VentaHandler struct {
	motor *ventas.MotorVentas
	pdf   *ventas.PDFUseCase
}

// NewVentaHandler construye el handler de ventas.
func NewVentaHandler(motor *ventas.MotorVentas, pdf *ventas.PDFUseCase) *VentaHandler {
	return &VentaHandler{motor: motor, pdf: pdf}
}

// Preview godoc
// @Summary      Preview de asignación FIFO (no consume stock)
// @Tags         ventas
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AsignarRequest  true  "producto_id, cantidad"
// @Success      200   {object}  dto.PlanAsignacionResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/ventas/preview [post]
func (h *VentaHandler) Preview(c *fiber.Ctx) error {
	var in dto.AsignarRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	plan, err := h.motor.Asignar(c.UserContext(), in.ProductoID, in.Cantidad)
	if err != nil {
		return ventaError(c, err)
	}
	out := dto.PlanAsignacionResponse{
		ProductoID:   plan.ProductoID,
		Cantidad:     plan.Cantidad,
		Asignaciones: make([]dto.AsignacionResponse, 0, len(plan.Asignaciones)),
	}
	for _, a := range plan.Asignaciones {
		out.Asignaciones = append(out.Asignaciones, dto.AsignacionResponse{
			LoteID:               a.LoteID,
			Cantidad:             a.Cantidad,
			PrecioCompraUnitario: a.PrecioCompraUnitario,
		})
	}
	return c.JSON(out)
}

// Registrar godoc
// @Summary      Comprometer una venta o cotización (atómico)
// @Tags         ventas
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegistrarVentaRequest  true  "tipo, cliente, items, pagos"
// @Success      201   {object}  dto.VentaResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/ventas [post]
func (h *VentaHandler) Registrar(c *fiber.Ctx) error {
	var in dto.RegistrarVentaRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if len(in.Items) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "items es requerido"})
	}
	usuarioID := GetUserID(c)

	borrador, err := h.motor.NuevoBorrador(in.Tipo, in.Cliente, usuarioID)
	if err != nil {
		return ventaError(c, err)
	}

	var advertencias []string
	for _, it := range in.Items {
		res, err := h.motor.AgregarItem(c.UserContext(), borrador, it.ProductoID, it.Cantidad, it.PrecioVentaUnitario)
		if err != nil {
			return ventaError(c, err)
		}
		if res.PrecioBajoMinimo {
			advertencias = append(advertencias,
				"precio de venta bajo el mínimo ("+res.PrecioVentaMinimo.StringFixed(2)+") para producto "+it.ProductoID)
		}
	}

	if in.Tipo == entity.DocVenta {
		if _, err := h.motor.ReconciliarPagos(borrador, toPagos(in.Pagos)); err != nil {
			return ventaError(c, err)
		}
	}

	venta, err := h.motor.Commit(c.UserContext(), borrador, usuarioID)
	if err != nil {
		return ventaError(c, err)
	}
	out := toVentaResponse(venta)
	out.Advertencias = advertencias
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener venta o cotización por ID
// @Tags         ventas
// @Produce      json
// @Param        id  path  string  true  "ID de la venta"
// @Success      200  {object}  dto.VentaResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/ventas/{id} [get]
func (h *VentaHandler) GetByID(c *fiber.Ctx) error {
	venta, err := h.motor.GetVenta(c.UserContext(), c.Params("id"))
	if err != nil {
		return ventaError(c, err)
	}
	return c.JSON(toVentaResponse(venta))
}

// List godoc
// @Summary      Listar ventas o cotizaciones
// @Tags         ventas
// @Produce      json
// @Param        tipo    query  string  false  "venta | cotizacion"  default(venta)
// @Param        limit   query  int     false  "máx resultados"
// @Param        offset  query  int     false  "desplazamiento"
// @Success      200  {array}  dto.VentaResponse
// @Router       /api/ventas [get]
func (h *VentaHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "query inválida"})
	}
	page.DefaultPage()
	tipo := c.Query("tipo", entity.DocVenta)

	lista, err := h.motor.ListVentas(c.UserContext(), tipo, page.Limit, page.Offset)
	if err != nil {
		return ventaError(c, err)
	}
	out := make([]dto.VentaResponse, 0, len(lista))
	for _, v := range lista {
		out = append(out, *toVentaResponse(v))
	}
	return c.JSON(out)
}

// ConfirmarCotizacion godoc
// @Summary      Confirmar una cotización pendiente con sus pagos
// @Tags         cotizaciones
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la cotización"
// @Param        body  body  dto.ConfirmarCotizacionRequest  true  "pagos"
// @Success      200   {object}  dto.VentaResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/cotizaciones/{id}/confirmar [post]
func (h *VentaHandler) ConfirmarCotizacion(c *fiber.Ctx) error {
	var in dto.ConfirmarCotizacionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	venta, err := h.motor.ConfirmarCotizacion(c.UserContext(), c.Params("id"), toPagos(in.Pagos), GetUserID(c))
	if err != nil {
		return ventaError(c, err)
	}
	return c.JSON(toVentaResponse(venta))
}

// AnularCotizacion godoc
// @Summary      Anular una cotización pendiente
// @Tags         cotizaciones
// @Produce      json
// @Param        id  path  string  true  "ID de la cotización"
// @Success      204
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/cotizaciones/{id}/anular [post]
func (h *VentaHandler) AnularCotizacion(c *fiber.Ctx) error {
	if err := h.motor.AnularCotizacion(c.UserContext(), c.Params("id")); err != nil {
		return ventaError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ReciboPDF godoc
// @Summary      Descargar comprobante PDF de una venta comprometida
// @Tags         ventas
// @Produce      application/pdf
// @Param        id  path  string  true  "ID de la venta"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/ventas/{id}/pdf [get]
func (h *VentaHandler) ReciboPDF(c *fiber.Ctx) error {
	bytes, err := h.pdf.GenerarRecibo(c.UserContext(), c.Params("id"))
	if err != nil {
		return ventaError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="comprobante-`+c.Params("id")+`.pdf"`)
	return c.Send(bytes)
}

// ── helpers ───────────────────────────────────────────────────────────────────

// ventaError mapea errores de dominio a códigos HTTP.
func ventaError(c *fiber.Ctx, err error) error {
	var faltante *domain.InsufficientStockError
	if errors.As(err, &faltante) {
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: faltante.Error()})
	}
	var desbalance *domain.PaymentImbalanceError
	if errors.As(err, &desbalance) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "PAYMENT_IMBALANCE", Message: desbalance.Error()})
	}
	var conflicto *domain.ConcurrentModificationError
	if errors.As(err, &conflicto) {
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONCURRENT_MODIFICATION", Message: "el inventario cambió durante el commit, reintente"})
	}
	switch {
	case errors.Is(err, domain.ErrProductoNoEncontrado),
		errors.Is(err, domain.ErrLoteNoEncontrado),
		errors.Is(err, domain.ErrVentaNoEncontrada),
		errors.Is(err, domain.ErrItemNoEncontrado),
		errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
	case errors.Is(err, domain.ErrEstadoInvalido):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INVALID_STATE", Message: err.Error()})
	case errors.Is(err, domain.ErrInvalidInput), errors.Is(err, domain.ErrDuplicate):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}

func toPagos(in []dto.PagoRequest) []entity.Pago {
	out := make([]entity.Pago, 0, len(in))
	for _, p := range in {
		out = append(out, entity.Pago{Metodo: p.Metodo, Monto: p.Monto})
	}
	return out
}

func toVentaResponse(v *entity.Venta) *dto.VentaResponse {
	out := &dto.VentaResponse{
		ID:         v.ID,
		Tipo:       v.Tipo,
		Cliente:    v.Cliente,
		Estado:     v.Estado,
		TotalMonto: v.TotalMonto,
		Items:      make([]dto.ItemVentaResponse, 0, len(v.Items)),
		CreatedAt:  v.CreatedAt.Format(time.RFC3339),
	}
	for _, it := range v.Items {
		out.Items = append(out.Items, dto.ItemVentaResponse{
			ID:                   it.ID,
			ProductoID:           it.ProductoID,
			LoteID:               it.LoteID,
			Cantidad:             it.Cantidad,
			PrecioVentaUnitario:  it.PrecioVentaUnitario,
			PrecioCompraUnitario: it.PrecioCompraUnitario,
			Subtotal:             it.Subtotal,
		})
	}
	for _, p := range v.Pagos {
		out.Pagos = append(out.Pagos, dto.PagoRequest{Metodo: p.Metodo, Monto: p.Monto})
	}
	return out
}
