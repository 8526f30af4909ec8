package wishlist

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"Storefront/internal/catalog"
	"Storefront/internal/session"
	"Storefront/pkg/kit"
)

type Server struct {
	Store  Store
	Log    *zap.Logger
	Events *kit.Events
}

type addReq struct {
	ProductID int64 `json:"productId" validate:"required,gt=0"`
}

type listResp struct {
	SessionID string `json:"sessionId"`
	Items     []Item `json:"items"`
}

type addResp struct {
	listResp
	Added Entry `json:"added"`
}

type checkResp struct {
	SessionID  string `json:"sessionId"`
	ProductID  int64  `json:"productId"`
	InWishlist bool   `json:"inWishlist"`
}

func (s *Server) Routes(r chi.Router) {
	r.Use(session.Middleware)

	r.Get("/", s.get)
	r.Post("/add", s.add)
	r.Delete("/remove/{id}", s.remove)
	r.Delete("/clear", s.clear)
	r.Get("/check/{productId}", s.check)
}

func (s *Server) get(w http.ResponseWriter, r *http.Request) {
	s.writeList(w, r, session.ID(r))
}

func (s *Server) add(w http.ResponseWriter, r *http.Request) {
	sid := session.ID(r)

	var req addReq
	if err := kit.DecodeJSON(w, r, &req); err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad json", map[string]any{"cause": err.Error()})
		return
	}
	if err := kit.Validate(req); err != nil {
		s.writeStoreError(w, r, "validate add", err)
		return
	}

	added, err := s.Store.Add(r.Context(), sid, req.ProductID)
	if err != nil {
		s.writeStoreError(w, r, "add to wishlist", err)
		return
	}
	s.Events.Inc("wishlist_add")

	list, err := s.list(r, sid)
	if err != nil {
		s.writeStoreError(w, r, "get wishlist", err)
		return
	}
	kit.WriteJSON(w, http.StatusOK, addResp{listResp: list, Added: added})
}

func (s *Server) remove(w http.ResponseWriter, r *http.Request) {
	id, verr := kit.URLParamID(r, "id")
	if verr != nil {
		kit.WriteValidationError(w, r, verr)
		return
	}

	removed, err := s.Store.Remove(r.Context(), id)
	if err != nil {
		s.writeStoreError(w, r, "remove wishlist entry", err)
		return
	}
	if removed {
		s.Events.Inc("wishlist_remove")
	}

	s.writeList(w, r, session.ID(r))
}

func (s *Server) clear(w http.ResponseWriter, r *http.Request) {
	sid := session.ID(r)

	if err := s.Store.Clear(r.Context(), sid); err != nil {
		s.writeStoreError(w, r, "clear wishlist", err)
		return
	}
	kit.WriteJSON(w, http.StatusOK, listResp{SessionID: sid, Items: []Item{}})
}

func (s *Server) check(w http.ResponseWriter, r *http.Request) {
	sid := session.ID(r)

	productID, verr := kit.URLParamID(r, "productId")
	if verr != nil {
		kit.WriteValidationError(w, r, verr)
		return
	}

	ok, err := s.Store.Contains(r.Context(), sid, productID)
	if err != nil {
		s.writeStoreError(w, r, "check wishlist", err)
		return
	}
	kit.WriteJSON(w, http.StatusOK, checkResp{SessionID: sid, ProductID: productID, InWishlist: ok})
}

func (s *Server) list(r *http.Request, sid string) (listResp, error) {
	items, err := s.Store.List(r.Context(), sid)
	if err != nil {
		return listResp{}, err
	}
	return listResp{SessionID: sid, Items: items}, nil
}

func (s *Server) writeList(w http.ResponseWriter, r *http.Request, sid string) {
	list, err := s.list(r, sid)
	if err != nil {
		s.writeStoreError(w, r, "get wishlist", err)
		return
	}
	kit.WriteJSON(w, http.StatusOK, list)
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
