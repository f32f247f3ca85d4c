package api

import (
	"database/sql"

	intconfig "opticrm/internal/config"
	h "opticrm/internal/http/handlers"
	"opticrm/internal/http/middleware"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// NewRouter wires middleware, system endpoints and the CRM resources.
func NewRouter(env intconfig.Env, conn *sql.DB, log *zap.Logger) *gin.Engine {
	if env.GinMode != "" {
		gin.SetMode(env.GinMode)
	}
	h.RegisterValidators()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := middleware.NewMetrics(reg)

	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.Logger(log),
		gin.Recovery(),
		middleware.CORS(env.FrontendURLs),
		metrics.Handler(),
	)
	if err := r.SetTrustedProxies(nil); err != nil {
		log.Warn("failed to set trusted proxies", zap.Error(err))
	}

	hd := h.New(conn, log, env)
	hd.SetRouter(r)
	r.NoRoute(hd.NotFound)

	r.GET("/", hd.Root)
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	api := r.Group(env.APIPrefix)
	{
		api.GET("/health", hd.Health)
		api.GET("/health/database", hd.DatabaseHealth)
		api.GET("/routes", hd.Routes)

		customers := api.Group("/customers")
		customers.GET("", hd.ListCustomers)
		customers.POST("", hd.CreateCustomer)
		customers.GET("/:id", hd.GetCustomer)
		customers.PUT("/:id", hd.UpdateCustomer)
		customers.DELETE("/:id", hd.DeleteCustomer)

		products := api.Group("/products")
		products.GET("", hd.ListProducts)
		products.POST("", hd.CreateProduct)
		products.GET("/:id", hd.GetProduct)
		products.PUT("/:id", hd.UpdateProduct)
		products.DELETE("/:id", hd.DeleteProduct)

		invoices := api.Group("/invoices")
		invoices.GET("", hd.ListInvoices)
		invoices.POST("", hd.CreateInvoice)
		invoices.GET("/:id", hd.GetInvoice)
		invoices.PUT("/:id", hd.UpdateInvoice)
		invoices.DELETE("/:id", hd.DeleteInvoice)
		invoices.GET("/:id/pdf", hd.GetInvoicePDF)

		// Invoice items
		invoices.POST("/:id/items", hd.CreateInvoiceItem)
		invoices.PUT("/:id/items/:item_id", hd.UpdateInvoiceItem)
		invoices.DELETE("/:id/items/:item_id", hd.DeleteInvoiceItem)
	}

	return r
}
