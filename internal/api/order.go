package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-faster/errors"

	"github.com/LucasSiw/apetrecho-core/internal/domain/order"
)

type checkoutRequest struct {
	Address order.Address `json:"address"`
	Payment order.Payment `json:"payment"`
}

type advanceStatusRequest struct {
	Status string `json:"status"`
}

type orderResponse struct {
	ID                string             `json:"id"`
	Items             []cartItemResponse `json:"items"`
	Address           order.Address      `json:"address"`
	Payment           order.Payment      `json:"payment"`
	Subtotal          string             `json:"subtotal"`
	Discount          string             `json:"discount"`
	Shipping          string             `json:"shipping"`
	Total             string             `json:"total"`
	CouponCode        string             `json:"coupon_code,omitempty"`
	Status            string             `json:"status"`
	CreatedAt         time.Time          `json:"created_at"`
	EstimatedDelivery time.Time          `json:"estimated_delivery"`
}

// Checkout converts the user's cart into an order. The cart is cleared only
// when the order is persisted; on failure it is left intact for a retry.
func (h *Handler) Checkout(w http.ResponseWriter, r *http.Request) {
	userID := UserIDFromContext(r.Context())

	var req checkoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, r, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	o, err := h.orders.Checkout(r.Context(), userID, req.Address, req.Payment)
	if err != nil {
		switch {
		case errors.Is(err, order.ErrEmptyCart):
			respondError(w, r, http.StatusBadRequest, "empty_cart", "cart is empty")
		case errors.Is(err, order.ErrUnauthenticated):
			respondError(w, r, http.StatusUnauthorized, "unauthenticated", "missing user identity")
		default:
			respondInternal(w, r, err)
		}
		return
	}

	respondJSON(w, r, http.StatusCreated, toOrderResponse(o))
}

// ListOrders returns the user's orders, most recent first.
func (h *Handler) ListOrders(w http.ResponseWriter, r *http.Request) {
	userID := UserIDFromContext(r.Context())

	orders, err := h.orders.List(r.Context(), userID)
	if err != nil {
		respondInternal(w, r, err)
		return
	}

	out := make([]orderResponse, len(orders))
	for i := range orders {
		out[i] = toOrderResponse(&orders[i])
	}
	respondJSON(w, r, http.StatusOK, out)
}

// GetOrder returns one of the user's orders. Orders that do not exist or
// belong to someone else are indistinguishable: both are a 404.
func (h *Handler) GetOrder(w http.ResponseWriter, r *http.Request) {
	userID := UserIDFromContext(r.Context())
	orderID := chi.URLParam(r, "orderID")

	o, err := h.orders.Get(r.Context(), userID, orderID)
	if err != nil {
		respondInternal(w, r, err)
		return
	}
	if o == nil {
		respondError(w, r, http.StatusNotFound, "order_not_found", "order not found")
		return
	}
	respondJSON(w, r, http.StatusOK, toOrderResponse(o))
}

// AdvanceOrderStatus moves an order along its lifecycle. Administrative
// operation, guarded by API key.
func (h *Handler) AdvanceOrderStatus(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "orderID")

	var req advanceStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, r, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	status, ok := order.ParseStatus(req.Status)
	if !ok {
		respondError(w, r, http.StatusBadRequest, "invalid_status", "unknown order status")
		return
	}

	o, err := h.orders.Advance(r.Context(), orderID, status)
	if err != nil {
		var itErr *order.InvalidTransitionError
		switch {
		case errors.Is(err, order.ErrNotFound):
			respondError(w, r, http.StatusNotFound, "order_not_found", "order not found")
		case errors.As(err, &itErr):
			respondError(w, r, http.StatusConflict, "invalid_transition", itErr.Error())
		default:
			respondInternal(w, r, err)
		}
		return
	}

	respondJSON(w, r, http.StatusOK, toOrderResponse(o))
}

func toOrderResponse(o *order.Order) orderResponse {
	items := make([]cartItemResponse, len(o.Items))
	for i, item := range o.Items {
		items[i] = cartItemResponse{
			ProductID: item.ProductID,
			Name:      item.Name,
			UnitPrice: item.UnitPrice.String(),
			Quantity:  item.Quantity,
		}
	}

	return orderResponse{
		ID:                o.ID,
		Items:             items,
		Address:           o.Address,
		Payment:           o.Payment,
		Subtotal:          o.Subtotal.String(),
		Discount:          o.Discount.String(),
		Shipping:          o.Shipping.String(),
		Total:             o.Total.String(),
		CouponCode:        o.CouponCode,
		Status:            o.Status.String(),
		CreatedAt:         o.CreatedAt,
		EstimatedDelivery: o.EstimatedDelivery,
	}
}
