package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/masonbass/retail-api/internal/application/auth"
	"github.com/masonbass/retail-api/internal/application/inventory"
	"github.com/masonbass/retail-api/internal/application/orders"
	"github.com/masonbass/retail-api/internal/application/policy"
	"github.com/masonbass/retail-api/internal/application/stockrequest"
	"github.com/masonbass/retail-api/internal/application/usecase"
	"github.com/masonbass/retail-api/internal/domain/entity"
	"github.com/masonbass/retail-api/pkg/logger"
	"github.com/masonbass/retail-api/pkg/metrics"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC         *auth.AuthUseCase
	UserUC         *usecase.UserUseCase
	ProductUC      *usecase.ProductUseCase
	BranchUC       *usecase.BranchUseCase
	ReviewUC       *usecase.ReviewUseCase
	CallEventUC    *usecase.CallEventUseCase
	VisitUC        *usecase.VisitUseCase
	MasonBassUC    *usecase.MasonBassUseCase
	AddressUC      *usecase.AddressUseCase
	PostsUC        *usecase.PostsUseCase // nil: /api/facebook/posts responde 503
	LedgerUC       *inventory.LedgerUseCase
	StockRequestUC *stockrequest.WorkflowUseCase
	CartUC         *orders.CartUseCase
	CheckoutUC     *orders.CheckoutUseCase
	OrderUC        *orders.OrderUseCase
	JWTSecret      string

	// Idempotency puede ser nil: las rutas de venta funcionan igual, sin deduplicar reintentos.
	Idempotency    IdempotencyStore
	IdempotencyTTL time.Duration

	// HTTPMetrics y Gatherer son opcionales; sin Gatherer no se expone /metrics.
	HTTPMetrics *metrics.HTTPMetrics
	Gatherer    prometheus.Gatherer

	Logger *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	if deps.HTTPMetrics != nil {
		app.Use(MetricsMiddleware(deps.HTTPMetrics))
	}
	if deps.Gatherer != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{})))
	}
	idem := Idempotency(deps.Idempotency, deps.IdempotencyTTL, deps.Logger.Component("idempotency"))

	api := app.Group("/api")
	jwtAuth := AuthMiddleware(deps.JWTSecret)
	admin := RequireRole(entity.RoleAdmin)

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/change-password", jwtAuth, authHandler.ChangePassword)

	// Feed de Facebook (público)
	api.Get("/facebook/posts", NewPostsHandler(deps.PostsUC).List)

	// Products: lectura pública, escritura admin
	products := api.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC, deps.LedgerUC)
	products.Get("/", productHandler.List)
	products.Get("/search", productHandler.Search)
	products.Get("/:id", productHandler.GetByID)
	products.Post("/", jwtAuth, admin, productHandler.Create)
	products.Put("/:id", jwtAuth, admin, productHandler.Update)
	products.Delete("/:id", jwtAuth, admin, productHandler.Delete)
	products.Post("/:id/restock", jwtAuth, admin, productHandler.Restock)

	// Reviews: el listado por producto es público
	reviewHandler := NewReviewHandler(deps.ReviewUC)
	api.Get("/reviews/product/:productId", reviewHandler.ListByProduct)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", jwtAuth)

	// Stock requests
	stock := protected.Group("/stock")
	stockHandler := NewStockRequestHandler(deps.StockRequestUC)
	stock.Post("/create", RequireCapability(policy.CreateStockRequest), stockHandler.Create)
	stock.Get("/branch", RequireCapability(policy.ListBranchRequests), stockHandler.ListBranch)
	stock.Get("/all", RequireCapability(policy.ListStockRequests), stockHandler.ListAll)
	stock.Post("/:requestId/receive", RequireCapability(policy.ReceiveStockRequest), stockHandler.Receive)
	stock.Post("/:requestId/approve", RequireCapability(policy.DecideStockRequest), stockHandler.Decide)
	stock.Post("/:requestId/deliver", RequireCapability(policy.DeliverStockRequest), stockHandler.Deliver)
	stock.Put("/:requestId", RequireCapability(policy.UpdateStockRequest), stockHandler.Update)
	stock.Get("/:requestId", RequireCapability(policy.ViewStockRequest), stockHandler.Get)
	stock.Delete("/:requestId", RequireCapability(policy.DeleteStockRequest), stockHandler.Delete)

	// Branches (admin)
	branches := protected.Group("/branch", admin)
	branchHandler := NewBranchHandler(deps.BranchUC, deps.LedgerUC)
	branches.Post("/", branchHandler.Create)
	branches.Get("/", branchHandler.List)
	branches.Post("/assign-agent", branchHandler.AssignAgent)
	branches.Post("/assign-rep", branchHandler.AssignRep)
	branches.Post("/stock", branchHandler.AssignStock)
	branches.Put("/stock", branchHandler.TopUpStock)
	branches.Delete("/stock", branchHandler.RemoveStock)
	branches.Get("/movements", branchHandler.ListMovements)
	branches.Get("/:branchId", branchHandler.Get)
	branches.Put("/:branchId", branchHandler.Update)
	branches.Delete("/:branchId", branchHandler.Delete)
	branches.Delete("/:branchId/agent", branchHandler.RemoveAgent)
	branches.Delete("/:branchId/rep", branchHandler.RemoveRep)
	branches.Get("/:branchId/products", branchHandler.ListProducts)
	branches.Get("/:branchId/products/unassigned", branchHandler.ListUnassigned)

	// Cart
	cart := protected.Group("/cart")
	cartHandler := NewCartHandler(deps.CartUC)
	cart.Post("/", cartHandler.Add)
	cart.Get("/", cartHandler.List)
	cart.Put("/:id", cartHandler.ChangeQuantity)
	cart.Delete("/:id", cartHandler.Remove)

	// Orders
	ordersGroup := protected.Group("/orders")
	orderHandler := NewOrderHandler(deps.CheckoutUC, deps.OrderUC)
	ordersGroup.Post("/", idem, orderHandler.Checkout)
	ordersGroup.Get("/", orderHandler.ListMine)
	ordersGroup.Get("/all", admin, orderHandler.ListAll)
	ordersGroup.Get("/users/:id", admin, orderHandler.ListByUser)
	ordersGroup.Get("/branch/:branchId", RequireRole(entity.RoleAdmin, entity.RoleAgent), orderHandler.ListByBranch)
	ordersGroup.Put("/:id/cancel", orderHandler.Cancel)
	ordersGroup.Put("/:id/status", RequireCapability(policy.ChangeOrderStatus), orderHandler.ChangeStatus)
	ordersGroup.Get("/:id", orderHandler.Get)

	// Agent: stock de su sucursal y venta en tienda
	agent := protected.Group("/agent", RequireRole(entity.RoleAgent))
	agentHandler := NewAgentHandler(deps.LedgerUC, deps.CheckoutUC)
	agent.Get("/products", agentHandler.Products)
	agent.Post("/orders", idem, agentHandler.CreateOrder)
	agent.Get("/orders/:id/receipt", agentHandler.Receipt)

	// Users
	users := protected.Group("/users")
	userHandler := NewUserHandler(deps.UserUC)
	staffHandler := NewStaffHandler(deps.AuthUC)
	addressHandler := NewAddressHandler(deps.AddressUC)
	users.Get("/me", userHandler.Me)
	users.Put("/me", userHandler.UpdateMe)
	users.Get("/me/addresses", addressHandler.List)
	users.Post("/me/addresses", addressHandler.Add)
	users.Delete("/me/addresses/:id", addressHandler.Delete)
	users.Post("/agents", admin, staffHandler.CreateAgent)
	users.Put("/agents/:id", admin, staffHandler.UpdateAgent)
	users.Delete("/agents/:id", admin, staffHandler.DeleteAgent)
	users.Post("/reps", admin, staffHandler.CreateRep)
	users.Put("/reps/:id", admin, staffHandler.UpdateRep)
	users.Delete("/reps/:id", admin, staffHandler.DeleteRep)
	users.Get("/", admin, userHandler.List)
	users.Get("/:id", admin, userHandler.GetByID)
	users.Delete("/:id", admin, staffHandler.RemoveAccount)
	users.Put("/:id/role", admin, userHandler.ChangeRole)

	// Reviews
	reviews := protected.Group("/reviews")
	reviews.Post("/", reviewHandler.Create)
	reviews.Get("/", admin, reviewHandler.ListAll)
	reviews.Get("/order/:orderId", reviewHandler.ListByOrder)
	reviews.Put("/:id", reviewHandler.Update)
	reviews.Delete("/:id", reviewHandler.Delete)

	// Call events
	calls := protected.Group("/calls", RequireCapability(policy.LogCalls))
	callHandler := NewCallEventHandler(deps.CallEventUC)
	calls.Post("/", callHandler.Create)
	calls.Get("/", callHandler.List)
	calls.Get("/:id", callHandler.Get)
	calls.Put("/:id", callHandler.Update)
	calls.Put("/:id/status", callHandler.ChangeStatus)
	calls.Delete("/:id", callHandler.Delete)

	// Visits
	visits := protected.Group("/visits", RequireCapability(policy.LogVisits))
	visitHandler := NewVisitHandler(deps.VisitUC)
	visits.Post("/", visitHandler.Create)
	visits.Get("/branch/:branchId", visitHandler.ListByBranch)
	visits.Get("/rep/:repId", visitHandler.ListBySalesRep)
	visits.Get("/:id", visitHandler.Get)
	visits.Put("/:id", visitHandler.Update)
	visits.Delete("/:id", visitHandler.Delete)

	// Mason bass
	masonBass := protected.Group("/mason-bass")
	masonHandler := NewMasonBassHandler(deps.MasonBassUC)
	manageMason := RequireCapability(policy.ManageMasonBass)
	masonBass.Get("/", masonHandler.List)
	masonBass.Get("/:id", masonHandler.Get)
	masonBass.Post("/", manageMason, masonHandler.Create)
	masonBass.Put("/:id", manageMason, masonHandler.Update)
	masonBass.Delete("/:id", manageMason, masonHandler.Delete)
}
