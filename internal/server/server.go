package server

import (
	"context"
	"net/http"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/founderspc/somanager/internal/catalog"
	catalogdomain "github.com/founderspc/somanager/internal/catalog/domain"
	"github.com/founderspc/somanager/internal/config"
	"github.com/founderspc/somanager/internal/customer"
	customerdomain "github.com/founderspc/somanager/internal/customer/domain"
	"github.com/founderspc/somanager/internal/employee"
	employeedomain "github.com/founderspc/somanager/internal/employee/domain"
	"github.com/founderspc/somanager/internal/invoice"
	invoicedomain "github.com/founderspc/somanager/internal/invoice/domain"
	"github.com/founderspc/somanager/internal/serviceorder"
	serviceorderdomain "github.com/founderspc/somanager/internal/serviceorder/domain"
	"github.com/founderspc/somanager/internal/site"
	sitedomain "github.com/founderspc/somanager/internal/site/domain"
	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var Module = fx.Module("http.server",
	catalog.Module,
	customer.Module,
	employee.Module,
	site.Module,
	serviceorder.Module,
	invoice.Module,
	fx.Provide(NewEngine),
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(log *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestLogger(log.Named("http")))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	return r
}

func run(lc fx.Lifecycle, r *gin.Engine, cfg config.Config) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					panic(err)
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

	catalogSvc  catalogdomain.Service
	customerSvc customerdomain.Service
	employeeSvc employeedomain.Service
	siteSvc     sitedomain.Service
	orderSvc    serviceorderdomain.Service
	invoiceSvc  invoicedomain.Service
}

type ServerParams struct {
	fx.In

	Gin         *gin.Engine
	Cfg         config.Config
	DB          *gorm.DB
	GenID       *snowflake.Node
	CatalogSvc  catalogdomain.Service
	CustomerSvc customerdomain.Service
	EmployeeSvc employeedomain.Service
	SiteSvc     sitedomain.Service
	OrderSvc    serviceorderdomain.Service
	InvoiceSvc  invoicedomain.Service
}

func NewServer(p ServerParams) *Server {
	svc := &Server{
		engine:      p.Gin,
		cfg:         p.Cfg,
		db:          p.DB,
		genID:       p.GenID,
		catalogSvc:  p.CatalogSvc,
		customerSvc: p.CustomerSvc,
		employeeSvc: p.EmployeeSvc,
		siteSvc:     p.SiteSvc,
		orderSvc:    p.OrderSvc,
		invoiceSvc:  p.InvoiceSvc,
	}

	svc.registerAPIRoutes()

	return svc
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerAPIRoutes() {
	api := s.engine.Group("/api")

	// -------- Service catalog --------
	api.GET("/catalog", s.ListCatalogEntries)
	api.POST("/catalog", s.CreateCatalogEntry)
	api.GET("/catalog/:id", s.GetCatalogEntryByID)
	api.PATCH("/catalog/:id", s.UpdateCatalogEntry)
	api.DELETE("/catalog/:id", s.DeactivateCatalogEntry)

	// -------- Customers --------
	api.GET("/customers", s.ListCustomers)
	api.POST("/customers", s.CreateCustomer)
	api.GET("/customers/:id", s.GetCustomerByID)
	api.PATCH("/customers/:id", s.UpdateCustomer)
	api.DELETE("/customers/:id", s.DeleteCustomer)
	api.GET("/customers/:id/sites", s.ListCustomerSites)
	api.GET("/customers/:id/payment_profiles", s.ListPaymentProfiles)
	api.POST("/customers/:id/payment_profiles", s.CreatePaymentProfile)
	api.POST("/customers/:id/payment_profiles/:profileId/default", s.SetDefaultPaymentProfile)

	// -------- Employees --------
	api.GET("/employees", s.ListEmployees)
	api.POST("/employees", s.CreateEmployee)
	api.GET("/employees/:id", s.GetEmployeeByID)
	api.PATCH("/employees/:id", s.UpdateEmployee)
	api.DELETE("/employees/:id", s.DeleteEmployee)

	// -------- Sites --------
	api.POST("/sites", s.CreateSite)
	api.GET("/sites/:id", s.GetSiteByID)
	api.PATCH("/sites/:id", s.UpdateSite)
	api.DELETE("/sites/:id", s.DeleteSite)
	api.GET("/sites/:id/next_due", s.GetSiteNextDue)
	api.GET("/sites/:id/services", s.ListSiteServices)
	api.POST("/sites/:id/services", s.AddSiteService)
	api.PUT("/sites/:id/service_names", s.ReconcileSiteServiceNames)
	api.PATCH("/site_services/:id", s.UpdateSiteService)
	api.GET("/sites/:id/service_orders", s.ListSiteOrders)
	api.POST("/sites/:id/service_orders/next", s.CreateNextOrder)

	// -------- Service orders --------
	api.GET("/service_orders", s.ListOrdersDueInMonth)
	api.POST("/service_orders", s.CreateOrder)
	api.GET("/service_orders/:id", s.GetOrderByID)
	api.PATCH("/service_orders/:id", s.UpdateOrder)
	api.DELETE("/service_orders/:id", s.DeleteOrder)
	api.POST("/service_orders/:id/seed", s.SeedOrderFromSite)
	api.PUT("/service_orders/:id/line_items", s.SetOrderLineItems)
	api.GET("/service_orders/:id/assignments", s.ListOrderAssignments)
	api.POST("/service_orders/:id/assignments/:employeeId", s.AssignEmployee)
	api.DELETE("/service_orders/:id/assignments/:employeeId", s.UnassignEmployee)

	// -------- Invoices --------
	api.GET("/service_orders/:id/invoice", s.GetOrderInvoice)
	api.GET("/service_orders/:id/invoice/seed", s.SeedOrderInvoice)
	api.POST("/service_orders/:id/invoice", s.CreateOrderInvoice)
	api.POST("/service_orders/:id/invoice/pay", s.MarkOrderInvoicePaid)
}
