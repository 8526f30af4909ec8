package cart

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
	ProductID int64   `json:"productId" validate:"required,gt=0"`
	Quantity  *int    `json:"quantity" validate:"omitempty,min=1,max=999"`
	Size      *string `json:"size"`
	Color     *string `json:"color"`
}

type updateReq struct {
	Quantity *int `json:"quantity" validate:"required,min=0,max=999"`
}

type addResp struct {
	Summary
	AddedItem LineItem `json:"addedItem"`
}

func (s *Server) Routes(r chi.Router) {
	r.Use(session.Middleware)

	r.Get("/", s.get)
	r.Post("/add", s.add)
	r.Put("/update/{id}", s.update)
	r.Delete("/remove/{id}", s.remove)
	r.Delete("/clear", s.clear)
}

func (s *Server) get(w http.ResponseWriter, r *http.Request) {
	s.writeSummary(w, r, session.ID(r))
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

	in := AddInput{
		SessionID: sid,
		ProductID: req.ProductID,
		Quantity:  1,
		Size:      req.Size,
		Color:     req.Color,
	}
	if req.Quantity != nil {
		in.Quantity = *req.Quantity
	}

	added, err := s.Store.AddItem(r.Context(), in)
	if err != nil {
		s.writeStoreError(w, r, "add to cart", err)
		return
	}
	s.Events.Inc("cart_add")

	sum, err := s.summary(r, sid)
	if err != nil {
		s.writeStoreError(w, r, "get cart", err)
		return
	}
	kit.WriteJSON(w, http.StatusOK, addResp{Summary: sum, AddedItem: added})
}

func (s *Server) update(w http.ResponseWriter, r *http.Request) {
	sid := session.ID(r)

	id, verr := kit.URLParamID(r, "id")
	if verr != nil {
		kit.WriteValidationError(w, r, verr)
		return
	}

	var req updateReq
	if err := kit.DecodeJSON(w, r, &req); err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad json", map[string]any{"cause": err.Error()})
		return
	}
	if err := kit.Validate(req); err != nil {
		s.writeStoreError(w, r, "validate update", err)
		return
	}

	_, found, err := s.Store.UpdateQuantity(r.Context(), id, *req.Quantity)
	if err != nil {
		s.writeStoreError(w, r, "update cart line", err)
		return
	}
	// Setting zero on a missing line is the same as removing it: a no-op.
	if !found && *req.Quantity > 0 {
		kit.WriteError(w, r, http.StatusNotFound, "cart item not found", map[string]any{"id": id})
		return
	}
	s.Events.Inc("cart_update")

	s.writeSummary(w, r, sid)
}

func (s *Server) remove(w http.ResponseWriter, r *http.Request) {
	sid := session.ID(r)

	id, verr := kit.URLParamID(r, "id")
	if verr != nil {
		kit.WriteValidationError(w, r, verr)
		return
	}

	removed, err := s.Store.RemoveItem(r.Context(), id)
	if err != nil {
		s.writeStoreError(w, r, "remove cart line", err)
		return
	}
	if removed {
		s.Events.Inc("cart_remove")
	}

	s.writeSummary(w, r, sid)
}

func (s *Server) clear(w http.ResponseWriter, r *http.Request) {
	sid := session.ID(r)

	if err := s.Store.Clear(r.Context(), sid); err != nil {
		s.writeStoreError(w, r, "clear cart", err)
		return
	}
	s.Events.Inc("cart_clear")

	kit.WriteJSON(w, http.StatusOK, Summarize(sid, nil))
}

func (s *Server) summary(r *http.Request, sid string) (Summary, error) {
	lines, err := s.Store.List(r.Context(), sid)
	if err != nil {
		return Summary{}, err
	}
	return Summarize(sid, lines), nil
}

func (s *Server) writeSummary(w http.ResponseWriter, r *http.Request, sid string) {
	sum, err := s.summary(r, sid)
	if err != nil {
		s.writeStoreError(w, r, "get cart", err)
		return
	}
	kit.WriteJSON(w, http.StatusOK, sum)
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
