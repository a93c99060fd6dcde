package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Contable-api/internal/application/auth"
	"github.com/jhoicas/Contable-api/internal/application/contabilidad"
	"github.com/jhoicas/Contable-api/internal/application/inventario"
	"github.com/jhoicas/Contable-api/internal/application/reportes"
	"github.com/jhoicas/Contable-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC         *auth.AuthUseCase
	ContabilidadUC *contabilidad.UseCase
	InventarioUC   *inventario.UseCase
	ReportesUC     *reportes.UseCase
	JWTSecret      string
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

	// Catálogo de cuentas (protegido)
	contHandler := NewContabilidadHandler(deps.ContabilidadUC)
	cuentas := protected.Group("/cuentas")
	cuentas.Get("/", contHandler.ListarCuentas)
	cuentas.Post("/", contHandler.CrearCuenta)
	cuentas.Put("/:id", contHandler.ActualizarCuenta)
	cuentas.Delete("/:id", contHandler.EliminarCuenta)
	cuentas.Post("/:id/seleccionar", contHandler.SeleccionarCuenta)

	// Diario (protegido; el vaciado total exige rol admin)
	transacciones := protected.Group("/transacciones")
	transacciones.Get("/", contHandler.Libro)
	transacciones.Post("/", contHandler.RegistrarTransaccion)
	transacciones.Delete("/:id", contHandler.EliminarTransaccion)
	transacciones.Delete("/", RequireRole(entity.RolAdmin), contHandler.EliminarTodasLasTransacciones)

	// Kardex (protegido)
	kardexHandler := NewKardexHandler(deps.InventarioUC)
	kardexGroup := protected.Group("/kardex")

	promedio := kardexGroup.Group("/promedio")
	promedio.Get("/", kardexHandler.Promedio)
	promedio.Post("/operaciones", kardexHandler.AgregarPromedio)
	promedio.Put("/operaciones/:id", kardexHandler.EditarPromedio)
	promedio.Delete("/operaciones/:id", kardexHandler.EliminarPromedio)

	peps := kardexGroup.Group("/peps")
	peps.Get("/", kardexHandler.PEPS)
	peps.Post("/saldo-inicial", kardexHandler.SaldoInicialPEPS)
	peps.Post("/compras", kardexHandler.CompraPEPS)
	peps.Post("/ventas", kardexHandler.VentaPEPS)
	peps.Post("/devoluciones", kardexHandler.DevolucionPEPS)
	peps.Put("/operaciones/:id", kardexHandler.EditarPEPS)
	peps.Delete("/operaciones/:id", kardexHandler.EliminarPEPS)

	ueps := kardexGroup.Group("/ueps")
	ueps.Get("/", kardexHandler.UEPS)
	ueps.Post("/saldo-inicial", kardexHandler.SaldoInicialUEPS)
	ueps.Post("/compras", kardexHandler.CompraUEPS)
	ueps.Post("/ventas", kardexHandler.VentaUEPS)
	ueps.Post("/devoluciones", kardexHandler.DevolucionUEPS)
	ueps.Post("/devoluciones-compra", kardexHandler.DevolucionCompraUEPS)
	ueps.Put("/operaciones/:id", kardexHandler.EditarUEPS)
	ueps.Delete("/operaciones/:id", kardexHandler.EliminarUEPS)

	// Reportes (protegido). Las rutas con extensión van antes que las de
	// parámetro para que Fiber no capture ".pdf" como parte del método.
	reportesHandler := NewReportesHandler(deps.ReportesUC)
	kardexGroup.Get("/:metodo/instancias", kardexHandler.Instancias)
	kardexGroup.Get("/:metodo.pdf", reportesHandler.KardexPDF)

	contabilidadGroup := protected.Group("/contabilidad")
	contabilidadGroup.Get("/ecuacion", contHandler.Ecuacion)
	contabilidadGroup.Get("/libro-diario.pdf", reportesHandler.LibroDiarioPDF)
	contabilidadGroup.Get("/libro-diario.xml", reportesHandler.LibroDiarioXML)
}
