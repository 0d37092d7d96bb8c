package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/masonbass/retail-api/docs"
	"github.com/masonbass/retail-api/internal/application/auth"
	"github.com/masonbass/retail-api/internal/application/inventory"
	appnotify "github.com/masonbass/retail-api/internal/application/notify"
	"github.com/masonbass/retail-api/internal/application/orders"
	"github.com/masonbass/retail-api/internal/application/stockrequest"
	"github.com/masonbass/retail-api/internal/application/usecase"
	infranotify "github.com/masonbass/retail-api/internal/infrastructure/notify"
	"github.com/masonbass/retail-api/internal/infrastructure/facebook"
	infrapdf "github.com/masonbass/retail-api/internal/infrastructure/pdf"
	"github.com/masonbass/retail-api/internal/infrastructure/postgres"
	infraredis "github.com/masonbass/retail-api/internal/infrastructure/redis"
	httpRouter "github.com/masonbass/retail-api/internal/interfaces/http"
	"github.com/masonbass/retail-api/pkg/config"
	"github.com/masonbass/retail-api/pkg/logger"
	"github.com/masonbass/retail-api/pkg/metrics"
)

// @title						Retail API
// @version					1.0
// @description				Backend de operaciones: catálogo, sucursales, solicitudes de stock y pedidos.
// @BasePath					/api
// @securityDefinitions.apikey	BearerAuth
// @in							header
// @name						Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if cfg.DB.AutoMigrate {
		if err := postgres.Migrate(ctx, pool, "up"); err != nil {
			log.Fatal().Err(err).Msg("migraciones")
		}
		log.Info().Msg("migraciones aplicadas")
	}

	// Métricas: registro propio para no mezclar con el global de la librería.
	var (
		reg         *prometheus.Registry
		workflowM   *metrics.WorkflowMetrics
		httpMetrics *metrics.HTTPMetrics
	)
	if cfg.Metrics.Enabled {
		reg = prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		workflowM = metrics.NewWorkflowMetrics(reg)
		httpMetrics = metrics.NewHTTPMetrics(reg)
	}

	// Notificaciones: cada canal sin credenciales se omite.
	var notifiers []appnotify.Notifier
	if cfg.Notify.WhatsAppEnabled() {
		notifiers = append(notifiers, infranotify.NewWhatsAppNotifier(
			cfg.Notify.WhatsAppToken, cfg.Notify.WhatsAppPhoneNumberID, cfg.Notify.WhatsAppAPIVersion, cfg.Notify.AdminPhone,
		))
	}
	if cfg.Notify.PubSubEnabled() {
		ps, err := infranotify.NewPubSubNotifier(ctx, cfg.Notify.PubSubProjectID, cfg.Notify.PubSubTopic)
		if err != nil {
			log.Error().Err(err).Msg("pubsub deshabilitado")
		} else {
			defer ps.Close()
			notifiers = append(notifiers, ps)
		}
	}
	dispatcher := appnotify.NewDispatcher(log.Component("notify"), cfg.Notify.Timeout, notifiers...)
	log.Info().Int("canales", len(notifiers)).Msg("notificaciones configuradas")

	// Idempotencia de ventas: sin Redis el middleware deja pasar todo.
	var idempotency httpRouter.IdempotencyStore
	if cfg.Redis.Enabled() {
		rc, err := infraredis.New(ctx, cfg.Redis)
		if err != nil {
			log.Error().Err(err).Msg("redis no disponible, idempotencia deshabilitada")
		} else {
			defer rc.Close()
			idempotency = rc
		}
	}

	userRepo := postgres.NewUserRepository(pool)
	branchRepo := postgres.NewBranchRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	lineRepo := postgres.NewBranchProductRepository(pool)
	movementRepo := postgres.NewStockMovementRepository(pool)
	requestRepo := postgres.NewStockRequestRepository(pool)
	cartRepo := postgres.NewCartRepository(pool)
	orderRepo := postgres.NewOrderRepository(pool)
	reviewRepo := postgres.NewReviewRepository(pool)
	callRepo := postgres.NewCallEventRepository(pool)
	visitRepo := postgres.NewVisitRepository(pool)
	masonRepo := postgres.NewMasonBassRepository(pool)
	addressRepo := postgres.NewAddressRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	ledger := inventory.NewLedger(workflowM)
	ledgerUC := inventory.NewLedgerUseCase(txRunner, ledger, branchRepo, productRepo, lineRepo, movementRepo)
	stockRequestUC := stockrequest.NewWorkflowUseCase(
		txRunner, ledger, branchRepo, requestRepo, dispatcher, workflowM, log.Component("stock_request"),
	)
	checkoutUC := orders.NewCheckoutUseCase(
		txRunner, ledger, branchRepo, userRepo, orderRepo,
		infrapdf.NewReceiptGenerator(), dispatcher, workflowM, log.Component("checkout"),
	)
	orderUC := orders.NewOrderUseCase(txRunner, ledger, orderRepo, branchRepo, dispatcher, workflowM, log.Component("orders"))
	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	// Feed de Facebook: sin página o token la ruta responde 503.
	var postSource usecase.PostSource
	if cfg.Facebook.Enabled() {
		postSource = facebook.NewPageClient(cfg.Facebook.PageID, cfg.Facebook.AccessToken, cfg.Facebook.APIVersion, cfg.Facebook.Timeout)
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(requestid.New())

	// Swagger UI en local: http://localhost:<port>/docs
	docs.SwaggerInfo.Host = cfg.HTTP.Addr()
	app.Get("/swagger.json", func(c *fiber.Ctx) error {
		c.Type("json")
		return c.SendString(docs.SwaggerInfo.ReadDoc())
	})
	if _, err := os.Stat("./docs/swagger.json"); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: "./docs/swagger.json",
			Path:     "docs",
			Title:    "Retail API",
		}))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		if err := pool.Ping(c.UserContext()); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "degraded", "service": cfg.App.Name})
		}
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	deps := httpRouter.RouterDeps{
		AuthUC:         authUC,
		UserUC:         usecase.NewUserUseCase(userRepo),
		ProductUC:      usecase.NewProductUseCase(productRepo),
		BranchUC:       usecase.NewBranchUseCase(branchRepo, userRepo),
		ReviewUC:       usecase.NewReviewUseCase(reviewRepo, orderRepo),
		CallEventUC:    usecase.NewCallEventUseCase(callRepo),
		VisitUC:        usecase.NewVisitUseCase(visitRepo, branchRepo),
		MasonBassUC:    usecase.NewMasonBassUseCase(masonRepo),
		AddressUC:      usecase.NewAddressUseCase(addressRepo),
		PostsUC:        usecase.NewPostsUseCase(postSource),
		LedgerUC:       ledgerUC,
		StockRequestUC: stockRequestUC,
		CartUC:         orders.NewCartUseCase(cartRepo, productRepo, branchRepo),
		CheckoutUC:     checkoutUC,
		OrderUC:        orderUC,
		JWTSecret:      cfg.JWT.Secret,
		Idempotency:    idempotency,
		IdempotencyTTL: cfg.Redis.IdempotencyTTL,
		HTTPMetrics:    httpMetrics,
		Logger:         log,
	}
	if reg != nil {
		deps.Gatherer = reg
	}
	httpRouter.Router(app, deps)

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}
	// Notificaciones pendientes de solicitudes y órdenes ya confirmadas.
	dispatcher.Wait()

	log.Info().Msg("aplicación detenida")
}
