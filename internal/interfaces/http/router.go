package http

import (
	"github.com/gestormotorep-source/Gestor-moto-sub003/internal/application/auth"
	"github.com/gestormotorep-source/Gestor-moto-sub003/internal/application/catalogo"
	"github.com/gestormotorep-source/Gestor-moto-sub003/internal/application/ventas"
	"github.com/gestormotorep-source/Gestor-moto-sub003/internal/domain/entity"
	"github.com/gofiber/fiber/v2"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC     *auth.AuthUseCase
	CatalogoUC *catalogo.CatalogoUseCase
	Motor      *ventas.MotorVentas
	PDFUC      *ventas.PDFUseCase
	JWTSecret  string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Catálogo (protegido; alta solo admin)
	productos := protected.Group("/productos")
	productoHandler := NewProductoHandler(deps.CatalogoUC)
	productos.Post("/", RequireRole(entity.RoleAdmin), productoHandler.Create)
	productos.Get("/", productoHandler.List)
	productos.Get("/:id", productoHandler.GetByID)
	productos.Get("/:id/lotes", productoHandler.LotLedger)
	productos.Get("/:id/movimientos", productoHandler.Movimientos)

	// Motor de ventas (protegido)
	ventasGroup := protected.Group("/ventas")
	ventaHandler := NewVentaHandler(deps.Motor, deps.PDFUC)
	ventasGroup.Post("/preview", ventaHandler.Preview)
	ventasGroup.Post("/", ventaHandler.Registrar)
	ventasGroup.Get("/", ventaHandler.List)
	ventasGroup.Get("/:id", ventaHandler.GetByID)
	ventasGroup.Get("/:id/pdf", ventaHandler.ReciboPDF)

	// Ciclo de vida de cotizaciones (protegido)
	cotizaciones := protected.Group("/cotizaciones")
	cotizaciones.Post("/:id/confirmar", ventaHandler.ConfirmarCotizacion)
	cotizaciones.Post("/:id/anular", ventaHandler.AnularCotizacion)
}
