package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"greengrass/internal/api/handlers"
	"greengrass/internal/api/middleware"
	"greengrass/internal/catalog"
	"greengrass/internal/checkout"
	"greengrass/internal/config"
	"greengrass/internal/content"
	"greengrass/internal/customers"
	"greengrass/internal/database"
	"greengrass/internal/invoice"
	"greengrass/internal/logger"
	"greengrass/internal/payments"
	"greengrass/internal/services/shopify"
	"greengrass/internal/settings"
	"greengrass/internal/storefront"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

type Server struct {
	config *config.Config
	logger *logger.Logger
	db     *database.Database
	router *gin.Engine
	server *http.Server
}

// NewRegistry lists every site setting key the admin API accepts.
func NewRegistry() *settings.Registry {
	r := settings.NewRegistry()
	r.Register(settings.KeyPaymentGateways, func() interface{} { return &[]payments.Gateway{} })
	r.Register(settings.KeyInvoiceTemplate, func() interface{} { return &invoice.TemplateSettings{} })
	r.Register(settings.KeyBranding, func() interface{} { return &invoice.Branding{} })
	r.Register(settings.KeyCheckoutSettings, func() interface{} { return &checkout.Settings{} })
	r.Register(settings.KeyFeaturedCategorySection, func() interface{} { return &catalog.FeaturedCategorySettings{} })
	r.Register(settings.KeyGiftSection, func() interface{} { return &catalog.GiftSection{} })
	content.Register(r)
	return r
}

// New wires the HTTP API. store is the settings store chain built by the
// caller; rdb may be nil, in which case storefront snapshots are not cached.
func New(cfg *config.Config, logger *logger.Logger, db *database.Database, store settings.Store, rdb *redis.Client) *Server {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	metrics := middleware.NewMetrics(cfg.Env)

	router.Use(middleware.Logger(logger))
	router.Use(middleware.Recovery(logger))
	router.Use(middleware.CORS(cfg.CORSAllowedOrigins))
	router.Use(metrics.Middleware())

	// Services
	categoryService := catalog.NewCategoryService(db.DB)
	productService := catalog.NewProductService(db.DB)
	paymentService := payments.NewService(store, logger)
	checkoutService := checkout.NewService(store, productService, paymentService, checkout.Pricing{
		TaxRate:               cfg.TaxRate,
		ShippingFee:           cfg.ShippingFee,
		FreeShippingThreshold: cfg.FreeShippingThreshold,
	}, logger)
	snapshots := storefront.New(rdb, cfg.SettingsCacheTTL, store, categoryService, productService, checkoutService, logger)

	shopifyClient := shopify.NewClient(cfg.ShopifyStoreDomain, cfg.ShopifyAccessToken, logger)
	transformer := shopify.NewTransformer("")

	// Handlers
	healthHandler := handlers.NewHealthHandler(db.DB, rdb)
	categoryHandler := handlers.NewCategoryHandler(categoryService, snapshots, logger)
	productHandler := handlers.NewProductHandler(productService, cfg.SupabaseURL, logger)
	featuredHandler := handlers.NewFeaturedHandler(snapshots, store, logger)
	giftHandler := handlers.NewGiftHandler(productService, store, logger)
	contentHandler := handlers.NewContentHandler(content.NewService(store, logger), logger)
	checkoutHandler := handlers.NewCheckoutHandler(checkoutService, snapshots, logger)
	paymentHandler := handlers.NewPaymentHandler(paymentService, logger)
	orderHandler := handlers.NewOrderHandler(db.DB, invoice.NewTemplateSource(store, logger), logger)
	customerHandler := handlers.NewCustomerHandler(customers.NewService(db.DB), logger)
	settingsHandler := handlers.NewSettingsHandler(store, NewRegistry(), paymentService, logger)
	shopifyHandler := handlers.NewShopifyHandler(
		shopifyClient,
		transformer,
		shopify.NewSyncer(shopifyClient, transformer, db.DB, logger),
		cfg.ShopifyWebhookSecret,
		logger,
	)

	router.GET("/healthz", healthHandler.Check)
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	// Routes
	v1 := router.Group("/api/v1")
	{
		// Storefront
		v1.GET("/categories", categoryHandler.List)
		v1.GET("/categories/tree", categoryHandler.Tree)

		products := v1.Group("/products")
		{
			products.GET("", productHandler.List)
			products.GET("/categories", productHandler.Categories)
			products.GET("/:slug", productHandler.BySlug)
		}

		v1.GET("/featured-categories", featuredHandler.Section)
		v1.GET("/gift-section", giftHandler.Section)

		v1.GET("/content", contentHandler.All)
		v1.GET("/content/:key", contentHandler.Get)

		v1.GET("/checkout/methods", checkoutHandler.Methods)
		v1.POST("/checkout/quote", checkoutHandler.Quote)

		// Shopify Integration
		shop := v1.Group("/shopify")
		{
			shop.GET("/products", shopifyHandler.Products)
			shop.GET("/products/:handle", shopifyHandler.ProductByHandle)
			shop.POST("/webhook", shopifyHandler.Webhook)
		}

		admin := v1.Group("/admin")
		admin.Use(middleware.AdminAuth(cfg.JWTSecret, logger))
		{
			admin.GET("/payment-gateways", paymentHandler.Get)
			admin.PUT("/payment-gateways", paymentHandler.Update)

			orders := admin.Group("/orders")
			{
				orders.GET("", orderHandler.List)
				orders.GET("/:id", orderHandler.Get)
				orders.PUT("/:id/status", orderHandler.UpdateStatus)
				orders.GET("/:id/invoice", orderHandler.Invoice)
				orders.GET("/:id/delivery-slip", orderHandler.DeliverySlip)
			}

			customerRoutes := admin.Group("/customers")
			{
				customerRoutes.GET("", customerHandler.List)
				customerRoutes.POST("", customerHandler.Create)
				customerRoutes.POST("/import", customerHandler.Import)
				customerRoutes.GET("/export", customerHandler.Export)
				customerRoutes.DELETE("/:id", customerHandler.Delete)
				customerRoutes.GET("/:id/orders", customerHandler.Orders)
			}

			categories := admin.Group("/categories")
			{
				categories.GET("", categoryHandler.List)
				categories.GET("/:id", categoryHandler.Get)
				categories.POST("", categoryHandler.Create)
				categories.PUT("/:id", categoryHandler.Update)
				categories.DELETE("/:id", categoryHandler.Delete)
				categories.POST("/bulk-delete", categoryHandler.BulkDelete)
				categories.POST("/bulk-active", categoryHandler.BulkSetActive)
			}

			adminProducts := admin.Group("/products")
			{
				adminProducts.GET("", productHandler.AdminList)
				adminProducts.GET("/:id", productHandler.Get)
				adminProducts.POST("", productHandler.Create)
				adminProducts.PUT("/:id", productHandler.Update)
				adminProducts.DELETE("/:id", productHandler.Delete)
				adminProducts.POST("/link-images", productHandler.LinkImages)
			}

			admin.GET("/featured-categories", featuredHandler.GetSettings)
			admin.PUT("/featured-categories", featuredHandler.SaveSettings)

			gifts := admin.Group("/gift-section")
			{
				gifts.GET("", giftHandler.GetSettings)
				gifts.PUT("", giftHandler.SaveSettings)
				gifts.GET("/candidates", giftHandler.Candidates)
				gifts.POST("/products", giftHandler.AddProduct)
				gifts.DELETE("/products/:id", giftHandler.RemoveProduct)
			}

			admin.PUT("/content/:key", contentHandler.Save)

			admin.GET("/checkout-settings", checkoutHandler.GetSettings)
			admin.PUT("/checkout-settings", checkoutHandler.SaveSettings)

			admin.GET("/settings", settingsHandler.List)
			admin.GET("/settings/:key", settingsHandler.Get)
			admin.PUT("/settings/:key", settingsHandler.Put)

			admin.POST("/shopify/sync", shopifyHandler.SyncProducts)
		}
	}

	return &Server{
		config: cfg,
		logger: logger,
		db:     db,
		router: router,
	}
}

func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%s", s.config.APIHost, s.config.APIPort)

	s.server = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	s.logger.Info("Starting server on %s", addr)
	return s.server.ListenAndServe()
}

func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("Shutting down server...")
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

// GetRouter returns the Gin router, used by tests and serverless entrypoints.
func (s *Server) GetRouter() *gin.Engine {
	return s.router
}
