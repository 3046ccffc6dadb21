package server

import (
	"context"
	"net/http"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	analyticsdomain "github.com/sipworks/brewadmin/internal/analytics/domain"
	clientdomain "github.com/sipworks/brewadmin/internal/client/domain"
	"github.com/sipworks/brewadmin/internal/config"
	eventdomain "github.com/sipworks/brewadmin/internal/event/domain"
	inventorydomain "github.com/sipworks/brewadmin/internal/inventory/domain"
	invoicedomain "github.com/sipworks/brewadmin/internal/invoice/domain"
	"github.com/sipworks/brewadmin/internal/invoice/render"
	merchdomain "github.com/sipworks/brewadmin/internal/merch/domain"
	"github.com/sipworks/brewadmin/internal/observability/logger"
	obsmetrics "github.com/sipworks/brewadmin/internal/observability/metrics"
	productdomain "github.com/sipworks/brewadmin/internal/product/domain"
	userdomain "github.com/sipworks/brewadmin/internal/user/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var Module = fx.Module("server",
	fx.Provide(NewEngine),
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(cfg config.Config, log *zap.Logger, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logger.GinMiddleware(log))
	r.Use(obsmetrics.GinMiddleware(httpMetrics))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func run(lc fx.Lifecycle, cfg config.Config, r *gin.Engine, log *zap.Logger) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info("http server starting", zap.String("addr", srv.Addr))
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal("http server failed", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine *gin.Engine
	cfg    config.Config
	db     *gorm.DB
	genID  *snowflake.Node

	productSvc   productdomain.Service
	inventorySvc inventorydomain.Service
	clientSvc    clientdomain.Service
	invoiceSvc   invoicedomain.Service
	eventSvc     eventdomain.Service
	merchSvc     merchdomain.Service
	userSvc      userdomain.Service
	analyticsSvc analyticsdomain.Service

	renderer    render.Renderer
	clientRepo  clientdomain.Repository
	productRepo productdomain.Repository
}

type ServerParams struct {
	fx.In

	Gin   *gin.Engine
	Cfg   config.Config
	DB    *gorm.DB
	GenID *snowflake.Node

	ProductSvc   productdomain.Service
	InventorySvc inventorydomain.Service
	ClientSvc    clientdomain.Service
	InvoiceSvc   invoicedomain.Service
	EventSvc     eventdomain.Service
	MerchSvc     merchdomain.Service
	UserSvc      userdomain.Service
	AnalyticsSvc analyticsdomain.Service

	Renderer    render.Renderer
	ClientRepo  clientdomain.Repository
	ProductRepo productdomain.Repository
}

func NewServer(p ServerParams) *Server {
	svc := &Server{
		engine:       p.Gin,
		cfg:          p.Cfg,
		db:           p.DB,
		genID:        p.GenID,
		productSvc:   p.ProductSvc,
		inventorySvc: p.InventorySvc,
		clientSvc:    p.ClientSvc,
		invoiceSvc:   p.InvoiceSvc,
		eventSvc:     p.EventSvc,
		merchSvc:     p.MerchSvc,
		userSvc:      p.UserSvc,
		analyticsSvc: p.AnalyticsSvc,
		renderer:     p.Renderer,
		clientRepo:   p.ClientRepo,
		productRepo:  p.ProductRepo,
	}

	svc.registerAPIRoutes()

	return svc
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerAPIRoutes() {
	api := s.engine.Group("/api")

	products := api.Group("/products")
	products.POST("", s.CreateProduct)
	products.GET("", s.ListProducts)
	products.GET("/:id", s.GetProductByID)
	products.PATCH("/:id", s.UpdateProduct)
	products.POST("/:id/archive", s.ArchiveProduct)
	products.DELETE("/:id", s.DeleteProduct)

	inventory := api.Group("/inventory")
	inventory.GET("/levels", s.ListStockLevels)
	inventory.GET("/levels/:product_id", s.GetStockLevel)
	inventory.POST("/adjust", s.AdjustStock)
	inventory.GET("/movements", s.ListStockMovements)

	clients := api.Group("/clients")
	clients.POST("", s.CreateClient)
	clients.GET("", s.ListClients)
	clients.GET("/:id", s.GetClientByID)
	clients.PATCH("/:id", s.UpdateClient)
	clients.DELETE("/:id", s.DeleteClient)

	invoices := api.Group("/invoices")
	invoices.POST("", s.CreateInvoice)
	invoices.GET("", s.ListInvoices)
	invoices.GET("/:id", s.GetInvoiceByID)
	invoices.PUT("/:id", s.UpdateInvoice)
	invoices.DELETE("/:id", s.DeleteInvoice)
	invoices.POST("/:id/mark-paid", s.MarkInvoicePaid)
	invoices.POST("/:id/mark-cancelled", s.MarkInvoiceCancelled)
	invoices.GET("/:id/render", s.RenderInvoice)

	events := api.Group("/events")
	events.POST("", s.CreateEvent)
	events.GET("", s.ListEvents)
	events.GET("/:id", s.GetEventByID)
	events.PATCH("/:id", s.UpdateEvent)
	events.DELETE("/:id", s.DeleteEvent)

	merch := api.Group("/merch")
	merch.POST("", s.CreateMerchItem)
	merch.GET("", s.ListMerchItems)
	merch.GET("/:id", s.GetMerchItemByID)
	merch.PATCH("/:id", s.UpdateMerchItem)
	merch.DELETE("/:id", s.DeleteMerchItem)

	users := api.Group("/users")
	users.POST("", s.CreateUser)
	users.GET("", s.ListUsers)
	users.GET("/:id", s.GetUserByID)
	users.PATCH("/:id", s.UpdateUser)
	users.POST("/:id/deactivate", s.DeactivateUser)
	users.DELETE("/:id", s.DeleteUser)

	analytics := api.Group("/analytics")
	analytics.GET("/revenue", s.RevenueByMonth)
	analytics.GET("/status", s.TotalsByStatus)
	analytics.GET("/top-products", s.TopProducts)
	analytics.GET("/top-clients", s.TopClients)
}
