package api

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/stockroom-io/erp-go/internal/config"
	"github.com/stockroom-io/erp-go/internal/metrics"
	"github.com/stockroom-io/erp-go/internal/pagination"
	"github.com/stockroom-io/erp-go/internal/store"
)

// Cursor codecs, one per ordering field the listings sort by.
var (
	createdAtCursor = pagination.Codec{Field: "created_at"}
	nameCursor      = pagination.Codec{Field: "name"}
)

// Pinger is the liveness probe the health endpoint runs against storage.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Repos bundles the storage interfaces the API serves.
type Repos struct {
	Products    store.ProductRepo
	Orders      store.OrderRepo
	Suppliers   store.SupplierRepo
	Idempotency store.IdempotencyRepo
}

// NewRouter creates the HTTP router with all v1 endpoints.
func NewRouter(repos Repos, db Pinger, cfg config.Config) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(requestMetrics)

	h := &handlers{repos: repos, db: db, maxBody: cfg.MaxBodyBytes, cfg: cfg}

	r.Get("/v1/health", h.GetHealth)

	r.Route("/v1", func(r chi.Router) {
		r.Post("/products", h.PostProduct)
		r.Get("/products", h.ListProducts)
		r.Get("/products/{productID}", h.GetProduct)

		r.Post("/orders", h.PostOrder)
		r.Get("/orders", h.ListOrders)
		r.Get("/orders/{orderUID}", h.GetOrder)

		r.Get("/suppliers", h.ListSuppliers)
	})

	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	return r
}

type handlers struct {
	repos   Repos
	db      Pinger
	maxBody int64
	cfg     config.Config
}

// requestMetrics records per-route request latency labeled by status.
func requestMetrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := chi.RouteContext(r.Context()).RoutePattern()
		if route == "" {
			route = "unmatched"
		}
		metrics.HTTPRequestDuration.
			WithLabelValues(r.Method, route, strconv.Itoa(ww.Status())).
			Observe(time.Since(start).Seconds())
	})
}
