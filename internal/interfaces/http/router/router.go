package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	catalogapp "github.com/ventas/backend/internal/application/catalog"
	paymentsapp "github.com/ventas/backend/internal/application/payments"
	salesapp "github.com/ventas/backend/internal/application/sales"
	"github.com/ventas/backend/internal/domain/shared"
	"github.com/ventas/backend/internal/infrastructure/auth"
	"github.com/ventas/backend/internal/infrastructure/config"
	"github.com/ventas/backend/internal/infrastructure/logger"
	"github.com/ventas/backend/internal/interfaces/http/handler"
	"github.com/ventas/backend/internal/interfaces/http/middleware"
)

// Dependencies carries everything the HTTP layer needs. All fields are
// required except IdempotencyStore, which may be nil when the feature
// is disabled.
type Dependencies struct {
	Config           *config.Config
	Logger           *zap.Logger
	JWTService       *auth.JWTService
	Database         handler.DatabasePinger
	SaleService      *salesapp.SaleService
	ProductService   *catalogapp.ProductService
	PaymentService   *paymentsapp.PaymentService
	IdempotencyStore shared.IdempotencyStore
}

// New builds the gin engine with all middleware and routes registered.
// Only /health and /api/v1/auth/login are reachable without a token.
func New(deps Dependencies) *gin.Engine {
	engine := gin.New()
	_ = engine.SetTrustedProxies(deps.Config.HTTP.TrustedProxies)

	engine.Use(middleware.RequestID())
	engine.Use(logger.GinMiddleware(deps.Logger))
	engine.Use(logger.Recovery(deps.Logger))
	engine.Use(middleware.Secure())
	engine.Use(middleware.CORS(middleware.CORSFromHTTPConfig(deps.Config.HTTP)))
	engine.Use(middleware.BodyLimit(deps.Config.HTTP.MaxBodySize))

	healthHandler := handler.NewHealthHandler(deps.Database)
	authHandler := handler.NewAuthHandler(deps.JWTService, deps.Config.Auth)
	saleHandler := handler.NewSaleHandler(deps.SaleService)
	productHandler := handler.NewProductHandler(deps.ProductService)
	paymentHandler := handler.NewPaymentHandler(deps.PaymentService)

	engine.GET("/health", healthHandler.Health)

	v1 := engine.Group("/api/v1")
	v1.POST("/auth/login", authHandler.Login)

	protected := v1.Group("")
	protected.Use(middleware.JWTAuth(deps.JWTService, deps.Logger))

	idempotent := middleware.Idempotency(
		deps.IdempotencyStore,
		shared.IdempotencyConfig{
			Enabled: deps.Config.Idempotency.Enabled,
			TTL:     deps.Config.Idempotency.TTL,
		},
		deps.Logger,
	)

	registerSaleRoutes(protected, saleHandler, paymentHandler, idempotent)
	registerProductRoutes(protected, productHandler)

	return engine
}

func registerSaleRoutes(rg *gin.RouterGroup, sale *handler.SaleHandler, payment *handler.PaymentHandler, idempotent gin.HandlerFunc) {
	sales := rg.Group("/sales")

	sales.POST("", sale.CreateQuote)
	sales.POST("/reservations", sale.CreateReservation)
	sales.GET("", sale.List)
	sales.GET("/:id", sale.GetByID)
	sales.PUT("/:id", sale.Update)
	sales.DELETE("/:id", sale.Delete)

	sales.POST("/:id/items", sale.AddItem)
	sales.PUT("/:id/items/:itemId", sale.UpdateItem)
	sales.DELETE("/:id/items/:itemId", sale.RemoveItem)

	sales.POST("/:id/convert", sale.Convert)
	sales.POST("/:id/confirm", sale.Confirm)
	sales.POST("/:id/pay", sale.Pay)
	sales.POST("/:id/process", sale.Process)
	sales.POST("/:id/ship", sale.Ship)
	sales.POST("/:id/deliver", sale.Deliver)
	sales.POST("/:id/cancel", sale.Cancel)
	sales.POST("/:id/reject", sale.Reject)

	sales.POST("/:id/linked", sale.CreateLinked)
	sales.GET("/:id/linked", sale.GetLinked)
	sales.GET("/:id/aggregate", sale.Aggregate)

	sales.POST("/:id/payments", idempotent, payment.AddPayment)
	sales.POST("/:id/refunds", idempotent, payment.AddRefund)
	sales.GET("/:id/payments", payment.List)
	sales.GET("/:id/payments/summary", payment.Summary)
	sales.DELETE("/:id/payments/:paymentId", payment.Delete)
}

func registerProductRoutes(rg *gin.RouterGroup, product *handler.ProductHandler) {
	products := rg.Group("/products")

	products.POST("", product.Create)
	products.GET("", product.List)
	products.GET("/:id", product.GetByID)
	products.PUT("/:id", product.Update)
	products.DELETE("/:id", product.Delete)

	products.GET("/:id/stock", product.GetStock)
	products.POST("/:id/stock/adjust", product.AdjustStock)

	rg.POST("/stock/availability", product.CheckAvailability)
}
