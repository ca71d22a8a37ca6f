package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-faster/errors"

	"github.com/LucasSiw/apetrecho-core/internal/domain/cart"
	"github.com/LucasSiw/apetrecho-core/internal/domain/coupon"
	"github.com/LucasSiw/apetrecho-core/internal/domain/product"
)

type cartItemResponse struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	UnitPrice string `json:"unit_price"`
	Quantity  int    `json:"quantity"`
}

type cartResponse struct {
	Items      []cartItemResponse `json:"items"`
	Coupon     string             `json:"coupon,omitempty"`
	Subtotal   string             `json:"subtotal"`
	Discount   string             `json:"discount"`
	Shipping   string             `json:"shipping"`
	GrandTotal string             `json:"grand_total"`
}

type addItemRequest struct {
	ProductID string `json:"product_id"`
}

type setQuantityRequest struct {
	Quantity int `json:"quantity"`
}

type applyCouponRequest struct {
	Code string `json:"code"`
}

// GetCart returns the user's cart with its pricing breakdown.
func (h *Handler) GetCart(w http.ResponseWriter, r *http.Request) {
	userID := UserIDFromContext(r.Context())

	c, pricing, err := h.carts.Get(r.Context(), userID)
	if err != nil {
		respondInternal(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, toCartResponse(c, pricing))
}

// AddCartItem adds one unit of a product to the user's cart.
func (h *Handler) AddCartItem(w http.ResponseWriter, r *http.Request) {
	userID := UserIDFromContext(r.Context())

	var req addItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, r, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.ProductID == "" {
		respondError(w, r, http.StatusBadRequest, "invalid_request", "product_id is required")
		return
	}

	c, err := h.carts.AddItem(r.Context(), userID, req.ProductID)
	if err != nil {
		if errors.Is(err, product.ErrNotFound) {
			respondError(w, r, http.StatusUnprocessableEntity, "product_not_found", "product not found")
			return
		}
		respondInternal(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, toCartResponse(c, h.carts.Quote(c)))
}

// SetCartItemQuantity replaces a line item's quantity. Quantities below 1
// leave the cart unchanged.
func (h *Handler) SetCartItemQuantity(w http.ResponseWriter, r *http.Request) {
	userID := UserIDFromContext(r.Context())
	productID := chi.URLParam(r, "productID")

	var req setQuantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, r, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	c, err := h.carts.SetQuantity(r.Context(), userID, productID, req.Quantity)
	if err != nil {
		respondInternal(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, toCartResponse(c, h.carts.Quote(c)))
}

// RemoveCartItem removes a product's line item from the user's cart.
func (h *Handler) RemoveCartItem(w http.ResponseWriter, r *http.Request) {
	userID := UserIDFromContext(r.Context())
	productID := chi.URLParam(r, "productID")

	c, err := h.carts.RemoveItem(r.Context(), userID, productID)
	if err != nil {
		respondInternal(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, toCartResponse(c, h.carts.Quote(c)))
}

// ClearCart empties the user's cart.
func (h *Handler) ClearCart(w http.ResponseWriter, r *http.Request) {
	userID := UserIDFromContext(r.Context())

	if err := h.carts.Clear(r.Context(), userID); err != nil {
		respondInternal(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusNoContent, nil)
}

// ApplyCoupon applies a coupon code to the user's cart. Invalid codes are a
// client error, not a fault: the cart stays usable and keeps any previously
// applied coupon.
func (h *Handler) ApplyCoupon(w http.ResponseWriter, r *http.Request) {
	userID := UserIDFromContext(r.Context())

	var req applyCouponRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, r, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	c, err := h.carts.ApplyCoupon(r.Context(), userID, req.Code)
	if err != nil {
		if errors.Is(err, coupon.ErrInvalidCoupon) {
			respondError(w, r, http.StatusUnprocessableEntity, "invalid_coupon", "invalid coupon code")
			return
		}
		respondInternal(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, toCartResponse(c, h.carts.Quote(c)))
}

// RemoveCoupon drops the applied coupon from the user's cart.
func (h *Handler) RemoveCoupon(w http.ResponseWriter, r *http.Request) {
	userID := UserIDFromContext(r.Context())

	c, err := h.carts.RemoveCoupon(r.Context(), userID)
	if err != nil {
		respondInternal(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, toCartResponse(c, h.carts.Quote(c)))
}

func toCartResponse(c *cart.Cart, pricing cart.Pricing) cartResponse {
	items := make([]cartItemResponse, len(c.Items))
	for i, item := range c.Items {
		items[i] = cartItemResponse{
			ProductID: item.ProductID,
			Name:      item.Name,
			UnitPrice: item.UnitPrice.String(),
			Quantity:  item.Quantity,
		}
	}

	resp := cartResponse{
		Items:      items,
		Subtotal:   pricing.Subtotal.String(),
		Discount:   pricing.Discount.String(),
		Shipping:   pricing.Shipping.String(),
		GrandTotal: pricing.GrandTotal.String(),
	}
	if c.Coupon != nil {
		resp.Coupon = c.Coupon.Code
	}
	return resp
}
