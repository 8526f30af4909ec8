package catalog

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"Storefront/pkg/kit"
)

type Server struct {
	Store Store
	Log   *zap.Logger
}

// Routes registers the product endpoints. Static segments win over {id}
// in chi, so /products/on-sale never reaches get.
func (s *Server) Routes(r chi.Router) {
	r.Get("/products", s.listWith("list products", s.Store.List))
	r.Get("/products/new-arrivals", s.listWith("list new arrivals", s.Store.NewArrivals))
	r.Get("/products/best-sellers", s.listWith("list best sellers", s.Store.BestSellers))
	r.Get("/products/on-sale", s.listWith("list on sale", s.Store.OnSale))
	r.Get("/products/category/{category}", s.byParam("category", s.Store.ByCategory))
	r.Get("/products/subcategory/{subcategory}", s.byParam("subcategory", s.Store.BySubcategory))
	r.Get("/products/search/{query}", s.byParam("query", s.Store.Search))
	r.Get("/products/{id}", s.get)
	r.Get("/featured-products", s.listWith("list featured", s.Store.Featured))
}

func (s *Server) listWith(op string, fn func(context.Context) ([]Product, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		products, err := fn(r.Context())
		if err != nil {
			s.serverError(w, r, op, err)
			return
		}
		kit.WriteJSON(w, http.StatusOK, products)
	}
}

func (s *Server) byParam(key string, fn func(context.Context, string) ([]Product, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		products, err := fn(r.Context(), chi.URLParam(r, key))
		if err != nil {
			s.serverError(w, r, "filter products by "+key, err)
			return
		}
		kit.WriteJSON(w, http.StatusOK, products)
	}
}

func (s *Server) get(w http.ResponseWriter, r *http.Request) {
	id, verr := kit.URLParamID(r, "id")
	if verr != nil {
		kit.WriteValidationError(w, r, verr)
		return
	}

	p, ok, err := s.Store.Get(r.Context(), id)
	if err != nil {
		s.serverError(w, r, "get product", err, zap.Int64("id", id))
		return
	}
	if !ok {
		kit.WriteError(w, r, http.StatusNotFound, "product not found", map[string]any{"id": id})
		return
	}
	kit.WriteJSON(w, http.StatusOK, p)
}

func (s *Server) serverError(w http.ResponseWriter, r *http.Request, op string, err error, fields ...zap.Field) {
	if s.Log != nil {
		s.Log.Error(op+" failed", append(fields, zap.Error(err))...)
	}
	kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
}
