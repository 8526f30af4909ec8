// Package storefront composes the catalog, cart, wishlist, review and
// checkout handlers behind one router.
package storefront

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"Storefront/internal/cart"
	"Storefront/internal/catalog"
	"Storefront/internal/checkout"
	"Storefront/internal/review"
	"Storefront/internal/session"
	"Storefront/internal/wishlist"
	"Storefront/pkg/kit"
)

type HTTPDeps struct {
	Log      *zap.Logger
	Service  string
	Registry *prometheus.Registry

	MetricsEnabled bool
	MetricsToken   string
}

// Deps holds the stores behind the API. Only Catalog is required; the
// session-scoped stores default to in-memory ones over it.
type Deps struct {
	Catalog  catalog.Store
	Cart     cart.Store
	Wishlist wishlist.Store
	Reviews  review.Store
	Orders   checkout.Store

	// ReviewLimiter throttles review submissions. Nil disables it.
	ReviewLimiter review.Limiter
}

const readyTimeout = 2 * time.Second

func NewHandler(deps Deps, httpDeps HTTPDeps) (http.Handler, error) {
	if deps.Catalog == nil {
		return nil, errors.New("storefront: catalog store is required")
	}
	deps = withDefaults(deps)

	var events *kit.Events
	if httpDeps.Registry != nil {
		events = kit.NewEvents(httpDeps.Registry, httpDeps.Service)
	}

	r := chi.NewRouter()
	setupMiddleware(r, httpDeps)
	setupMetrics(r, httpDeps)

	r.Get("/healthz", healthz)
	r.Get("/readyz", readyz(deps.Catalog, httpDeps.Log))

	products := &catalog.Server{Store: deps.Catalog, Log: httpDeps.Log}
	carts := &cart.Server{Store: deps.Cart, Log: httpDeps.Log, Events: events}
	wishes := &wishlist.Server{Store: deps.Wishlist, Log: httpDeps.Log, Events: events}
	reviews := &review.Server{
		Store:   deps.Reviews,
		Catalog: deps.Catalog,
		Limiter: deps.ReviewLimiter,
		Log:     httpDeps.Log,
		Events:  events,
	}
	orders := &checkout.Server{Cart: deps.Cart, Orders: deps.Orders, Log: httpDeps.Log, Events: events}

	r.Route("/api", func(api chi.Router) {
		api.Group(products.Routes)
		api.Group(orders.Routes)
		api.Route("/cart", carts.Routes)
		api.Route("/wishlist", wishes.Routes)
		api.Route("/reviews", reviews.Routes)
	})

	return r, nil
}

func withDefaults(deps Deps) Deps {
	if deps.Cart == nil {
		deps.Cart = cart.NewMemStore(deps.Catalog)
	}
	if deps.Wishlist == nil {
		deps.Wishlist = wishlist.NewMemStore(deps.Catalog)
	}
	if deps.Reviews == nil {
		deps.Reviews = review.NewMemStore(deps.Catalog)
	}
	if deps.Orders == nil {
		deps.Orders = checkout.NewMemStore()
	}
	return deps
}

// The session is resolved before Logging so access lines carry it.
func setupMiddleware(r *chi.Mux, deps HTTPDeps) {
	r.Use(chimw.RequestID)
	r.Use(kit.Recoverer)
	r.Use(session.Middleware)
	r.Use(kit.Logging(deps.Log, session.LogField))
}

func setupMetrics(r *chi.Mux, deps HTTPDeps) {
	if deps.Registry == nil {
		return
	}

	metrics := kit.NewMetrics(deps.Registry)
	r.Use(metrics.Middleware(deps.Service, kit.ChiRoutePatternOrPath))

	if !deps.MetricsEnabled {
		return
	}

	r.With(kit.MetricsAuth(deps.MetricsToken)).
		Handle("/metrics", promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}))
}

func healthz(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func readyz(products catalog.Store, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
		defer cancel()

		if err := products.Ping(ctx); err != nil {
			if log != nil {
				log.Warn("readyz failed: catalog", zap.Error(err))
			}
			kit.WriteError(w, r, http.StatusServiceUnavailable, "catalog not ready", nil)
			return
		}

		w.WriteHeader(http.StatusOK)
	}
}
