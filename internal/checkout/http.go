package checkout

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"Storefront/internal/cart"
	"Storefront/internal/session"
	"Storefront/pkg/kit"
)

type Server struct {
	Cart   cart.Store
	Orders Store
	Log    *zap.Logger
	Events *kit.Events

	now func() time.Time
}

type orderDetails struct {
	Customer Customer    `json:"customer"`
	Items    []cart.Line `json:"items"`
	Subtotal kit.Money   `json:"subtotal"`
	Shipping kit.Money   `json:"shipping"`
	Total    kit.Money   `json:"total"`
}

type checkoutResp struct {
	Success      bool         `json:"success"`
	OrderID      string       `json:"orderId"`
	OrderDetails orderDetails `json:"orderDetails"`
}

func (s *Server) Routes(r chi.Router) {
	r.Use(session.Middleware)

	r.Post("/checkout", s.checkout)
	r.Get("/orders/{id}", s.get)
}

func (s *Server) checkout(w http.ResponseWriter, r *http.Request) {
	sid := session.ID(r)

	// An empty cart is reported before the form is looked at.
	pending, err := s.Cart.List(r.Context(), sid)
	if err != nil {
		s.serverError(w, r, "list cart", err)
		return
	}
	if len(pending) == 0 {
		writeEmptyCart(w, r)
		return
	}

	var c Customer
	if err := kit.DecodeJSON(w, r, &c); err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad json", map[string]any{"cause": err.Error()})
		return
	}
	c.trim()
	if err := kit.Validate(c); err != nil {
		if ve, ok := kit.AsValidation(err); ok {
			kit.WriteValidationError(w, r, ve)
			return
		}
		s.serverError(w, r, "validate checkout", err)
		return
	}

	lines, err := s.Cart.Drain(r.Context(), sid)
	if err != nil {
		s.serverError(w, r, "drain cart", err)
		return
	}
	// A concurrent checkout may have drained it since the check above.
	if len(lines) == 0 {
		writeEmptyCart(w, r)
		return
	}

	now := s.clock()
	t := Quote(lines)
	o := Order{
		ID:        NewOrderID(now),
		SessionID: sid,
		Customer:  c,
		Items:     lines,
		Subtotal:  kit.NewMoney(t.Subtotal),
		Shipping:  kit.NewMoney(t.Shipping),
		Total:     kit.NewMoney(t.Total),
		Status:    StatusPlaced,
		CreatedAt: now,
	}

	if err := s.Orders.Create(r.Context(), o); err != nil {
		s.restore(r, sid, lines)
		s.serverError(w, r, "create order", err)
		return
	}
	s.Events.Inc("checkout")

	if s.Log != nil {
		s.Log.Info("order placed",
			zap.String("order_id", o.ID),
			zap.String("session_id", sid),
			zap.Int("lines", len(lines)),
			zap.String("total", o.Total.StringFixed(2)),
		)
	}

	kit.WriteJSON(w, http.StatusOK, checkoutResp{
		Success: true,
		OrderID: o.ID,
		OrderDetails: orderDetails{
			Customer: o.Customer,
			Items:    o.Items,
			Subtotal: o.Subtotal,
			Shipping: o.Shipping,
			Total:    o.Total,
		},
	})
}

// Orders are only visible to the session that placed them. Any other
// session gets the same 404 as a missing id.
func (s *Server) get(w http.ResponseWriter, r *http.Request) {
	sid := session.ID(r)
	id := chi.URLParam(r, "id")

	o, found, err := s.Orders.Get(r.Context(), id)
	if err != nil {
		s.serverError(w, r, "get order", err, zap.String("order_id", id))
		return
	}
	if !found || o.SessionID != sid {
		kit.WriteError(w, r, http.StatusNotFound, "order not found", map[string]any{"id": id})
		return
	}

	kit.WriteJSON(w, http.StatusOK, o)
}

// restore puts drained lines back after a failed checkout.
func (s *Server) restore(r *http.Request, sid string, lines []cart.Line) {
	for _, l := range lines {
		_, err := s.Cart.AddItem(r.Context(), cart.AddInput{
			SessionID: sid,
			ProductID: l.ProductID,
			Quantity:  l.Quantity,
			Size:      l.Size,
			Color:     l.Color,
		})
		if err != nil && s.Log != nil {
			s.Log.Warn("restore cart line failed",
				zap.Error(err),
				zap.String("session_id", sid),
				zap.Int64("product_id", l.ProductID),
			)
		}
	}
}

func writeEmptyCart(w http.ResponseWriter, r *http.Request) {
	kit.WriteError(w, r, http.StatusBadRequest, "cart is empty", nil)
}

func (s *Server) clock() time.Time {
	if s.now != nil {
		return s.now()
	}
	return time.Now().UTC()
}

func (s *Server) serverError(w http.ResponseWriter, r *http.Request, op string, err error, fields ...zap.Field) {
	if s.Log != nil {
		s.Log.Error(op+" failed", append(fields, zap.Error(err), zap.String("session_id", session.ID(r)))...)
	}
	kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
}
