package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tiendaops/tienda-backend/api/controllers"
	"github.com/tiendaops/tienda-backend/api/middleware"
	currencysvc "github.com/tiendaops/tienda-backend/internal/currency"
	customersvc "github.com/tiendaops/tienda-backend/internal/customers"
	invoicesvc "github.com/tiendaops/tienda-backend/internal/invoices"
	ordersvc "github.com/tiendaops/tienda-backend/internal/orders"
	paymentsvc "github.com/tiendaops/tienda-backend/internal/payments"
	productsvc "github.com/tiendaops/tienda-backend/internal/products"
	reportsvc "github.com/tiendaops/tienda-backend/internal/reports"
	"github.com/tiendaops/tienda-backend/pkg/config"
	"github.com/tiendaops/tienda-backend/pkg/logger"
)

// Services bundles everything the router mounts.
type Services struct {
	Products  productsvc.Service
	Customers customersvc.Service
	Orders    ordersvc.Service
	Invoices  invoicesvc.Service
	Payments  paymentsvc.Service
	Currency  currencysvc.Service
	Reports   reportsvc.Service
}

// NewRouter wires middleware, health endpoints and the versioned API.
func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	db controllers.Pinger,
	cache controllers.Pinger,
	svcs Services,
) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID(logg))
	r.Use(middleware.Logging(logg))
	r.Use(middleware.Recoverer(logg))
	r.Use(middleware.CORS())

	r.Get("/health/live", controllers.HealthLive(cfg))
	r.Get("/health/ready", controllers.HealthReady(cfg, logg, db, cache))
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.ListProducts(svcs.Products, logg))
			r.Post("/", controllers.CreateProduct(svcs.Products, logg))
			r.Route("/{productId}", func(r chi.Router) {
				r.Get("/", controllers.GetProduct(svcs.Products, logg))
				r.Put("/", controllers.UpdateProduct(svcs.Products, logg))
				r.Delete("/", controllers.DeleteProduct(svcs.Products, logg))
			})
		})

		r.Route("/customers", func(r chi.Router) {
			r.Get("/", controllers.ListCustomers(svcs.Customers, logg))
			r.Post("/", controllers.CreateCustomer(svcs.Customers, logg))
			r.Route("/{customerId}", func(r chi.Router) {
				r.Get("/", controllers.GetCustomer(svcs.Customers, logg))
				r.Put("/", controllers.UpdateCustomer(svcs.Customers, logg))
				r.Get("/payments", controllers.ListCustomerPayments(svcs.Payments, logg))
				r.Post("/payments", controllers.RecordPayment(svcs.Payments, logg))
			})
		})

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", controllers.ListOrders(svcs.Orders, logg))
			r.Post("/", controllers.PlaceOrder(svcs.Orders, logg))
			r.Route("/{orderId}", func(r chi.Router) {
				r.Get("/", controllers.GetOrder(svcs.Orders, logg))
				r.Delete("/", controllers.DeleteOrder(svcs.Orders, logg))
				r.Patch("/status", controllers.UpdateOrderStatus(svcs.Orders, logg))
			})
		})

		r.Route("/invoices", func(r chi.Router) {
			r.Get("/", controllers.ListInvoices(svcs.Invoices, logg))
			r.Post("/", controllers.CreateInvoice(svcs.Invoices, logg))
			r.Get("/{invoiceId}", controllers.GetInvoice(svcs.Invoices, logg))
		})

		r.Route("/currency", func(r chi.Router) {
			r.Get("/", controllers.GetCurrencyRate(svcs.Currency, logg))
			r.Post("/", controllers.RefreshCurrencyRate(svcs.Currency, logg))
		})

		r.Get("/dashboard", controllers.Dashboard(svcs.Reports, logg))
		r.Get("/reports", controllers.Reports(svcs.Reports, logg))
	})

	return r
}
