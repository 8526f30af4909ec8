package review

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"Storefront/internal/catalog"
	"Storefront/internal/session"
	"Storefront/pkg/kit"
)

// Limiter guards POST /add. kit.IPRateLimiter satisfies it.
type Limiter interface {
	Middleware(next http.Handler) http.Handler
}

type Server struct {
	Store   Store
	Catalog catalog.Store
	Limiter Limiter
	Log     *zap.Logger
	Events  *kit.Events
}

type addReq struct {
	ProductID int64  `json:"productId" validate:"required,gt=0"`
	Rating    int    `json:"rating" validate:"required,min=1,max=5"`
	Title     string `json:"title" validate:"required"`
	Comment   string `json:"comment" validate:"required"`
	Username  string `json:"username"`
}

type addResp struct {
	Review  Review          `json:"review"`
	Reviews []Review        `json:"reviews"`
	Product catalog.Product `json:"product"`
}

func (s *Server) Routes(r chi.Router) {
	r.Use(session.Middleware)

	r.Get("/product/{productId}", s.list)

	if s.Limiter != nil {
		r.With(s.Limiter.Middleware).Post("/add", s.add)
	} else {
		r.Post("/add", s.add)
	}
}

func (s *Server) list(w http.ResponseWriter, r *http.Request) {
	productID, verr := kit.URLParamID(r, "productId")
	if verr != nil {
		kit.WriteValidationError(w, r, verr)
		return
	}

	reviews, err := s.Store.List(r.Context(), productID)
	if err != nil {
		s.writeStoreError(w, r, "list reviews", err)
		return
	}
	kit.WriteJSON(w, http.StatusOK, reviews)
}

func (s *Server) add(w http.ResponseWriter, r *http.Request) {
	var req addReq
	if err := kit.DecodeJSON(w, r, &req); err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad json", map[string]any{"cause": err.Error()})
		return
	}
	if err := kit.Validate(req); err != nil {
		s.writeStoreError(w, r, "validate review", err)
		return
	}

	rv, err := s.Store.Add(r.Context(), AddInput{
		SessionID: session.ID(r),
		ProductID: req.ProductID,
		Rating:    req.Rating,
		Title:     req.Title,
		Comment:   req.Comment,
		Username:  req.Username,
	})
	if err != nil {
		s.writeStoreError(w, r, "add review", err)
		return
	}
	s.Events.Inc("review_add")

	reviews, err := s.Store.List(r.Context(), rv.ProductID)
	if err != nil {
		s.writeStoreError(w, r, "list reviews", err)
		return
	}
	p, ok, err := s.Catalog.Get(r.Context(), rv.ProductID)
	if err != nil {
		s.writeStoreError(w, r, "get product", err)
		return
	}
	if !ok {
		s.writeStoreError(w, r, "get product", catalog.ErrProductNotFound)
		return
	}

	kit.WriteJSON(w, http.StatusOK, addResp{Review: rv, Reviews: reviews, Product: p})
}

func (s *Server) writeStoreError(w http.ResponseWriter, r *http.Request, op string, err error) {
	if ve, ok := kit.AsValidation(err); ok {
		kit.WriteValidationError(w, r, ve)
		return
	}
	if errors.Is(err, catalog.ErrProductNotFound) {
		kit.WriteError(w, r, http.StatusNotFound, "product not found", nil)
		return
	}

	if s.Log != nil {
		s.Log.Error(op+" failed", zap.Error(err), zap.String("session_id", session.ID(r)))
	}
	kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
}
