// internal/wire/wire.go
package wire

import (
	"net/http"

	"clothing-shop/internal/adaptor"
	"clothing-shop/internal/data/repository"
	"clothing-shop/internal/usecase"
	"clothing-shop/pkg/middleware"
	"clothing-shop/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// App holds the assembled HTTP surface
type App struct {
	Router  *chi.Mux
	Service *usecase.Service
}

// Options carries optional collaborators. A nil Limiter disables login
// throttling; a nil Registry gets a fresh one with Go runtime collectors.
type Options struct {
	Limiter  middleware.Limiter
	Registry *prometheus.Registry
}

// Wiring builds services, handlers and the router
func Wiring(repo *repository.Repository, config *utils.Config, logger *zap.Logger, opts Options) *App {
	service := usecase.NewService(repo, config, logger)
	handler := adaptor.NewHandler(service, logger)

	if opts.Registry == nil {
		opts.Registry = prometheus.NewRegistry()
		opts.Registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}

	router := setupRouter(handler, service, config, logger, opts)

	return &App{
		Router:  router,
		Service: service,
	}
}

func setupRouter(
	handler *adaptor.Handler,
	service *usecase.Service,
	config *utils.Config,
	logger *zap.Logger,
	opts Options,
) *chi.Mux {
	r := chi.NewRouter()

	metrics := middleware.NewHTTPMetrics(opts.Registry)

	// Apply global middleware
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(metrics.Middleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: config.App.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}))

	r.Get("/", adaptor.Home)
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(opts.Registry, promhttp.HandlerOpts{}))

	wireAuth(r, handler.Auth, service.Auth, opts.Limiter, logger)
	wireUser(r, handler.User)
	wireProduct(r, handler.Product)
	wireOrder(r, handler.Order)

	return r
}
