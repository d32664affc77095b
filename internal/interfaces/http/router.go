package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/bielsasys/pedidos-api/internal/application/analytics"
	"github.com/bielsasys/pedidos-api/internal/application/auth"
	"github.com/bielsasys/pedidos-api/internal/application/usecase"
	"github.com/bielsasys/pedidos-api/pkg/jwt"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	ProductUC   *usecase.ProductUseCase
	ClientUC    *usecase.ClientUseCase
	OrderUC     *usecase.OrderUseCase
	OrderPDFUC  *usecase.OrderPDFUseCase
	DashboardUC *analytics.DashboardUseCase
	JWTSecret   string
}

// Router registra las rutas de la API.
// Los middlewares de rol van por ruta y no por grupo: admin y cliente
// comparten prefijos (/api/orders) y un grupo con prefijo "/" aplicaría
// su middleware a las rutas del otro rol.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	authHandler := NewAuthHandler(deps.AuthUC, deps.JWTSecret)
	productHandler := NewProductHandler(deps.ProductUC)
	clientHandler := NewClientHandler(deps.ClientUC)
	orderHandler := NewOrderHandler(deps.OrderUC, deps.OrderPDFUC)
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)

	authRequired := AuthMiddleware(deps.JWTSecret)
	adminOnly := RequireRole(jwt.RoleAdmin)
	clienteOnly := RequireRole(jwt.RoleCliente)

	// Público: catálogo, login de admin y alta/login de clientes
	api.Get("/products", productHandler.List)
	api.Post("/login", authHandler.AdminLogin)
	api.Get("/auth/check", authHandler.AdminCheck)
	api.Post("/clients/register", authHandler.ClientRegister)
	api.Post("/clients/login", authHandler.ClientLogin)
	api.Get("/clients/check", authHandler.ClientCheck)

	// Solo admin (requieren Bearer Token con rol admin)
	api.Post("/products", authRequired, adminOnly, productHandler.Create)
	api.Put("/products/:id", authRequired, adminOnly, productHandler.Update)
	api.Delete("/products/:id", authRequired, adminOnly, productHandler.Delete)
	api.Get("/clients", authRequired, adminOnly, clientHandler.List)
	api.Get("/clients/pending", authRequired, adminOnly, clientHandler.ListPending)
	api.Put("/clients/:id/approve", authRequired, adminOnly, clientHandler.Approve)
	api.Put("/clients/:id/reject", authRequired, adminOnly, clientHandler.Reject)
	api.Get("/orders", authRequired, adminOnly, orderHandler.ListAll)
	api.Put("/orders/:id/status", authRequired, adminOnly, orderHandler.ChangeStatus)
	api.Get("/orders/:id/pdf", authRequired, adminOnly, orderHandler.PDF)
	api.Get("/dashboard", authRequired, adminOnly, dashboardHandler.Summary)

	// Solo cliente autenticado
	api.Post("/orders", authRequired, clienteOnly, orderHandler.Place)
	api.Get("/orders/mine", authRequired, clienteOnly, orderHandler.ListMine)
}
