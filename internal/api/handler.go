// Package api exposes the checkout core over HTTP. Handlers are thin: they
// decode requests, delegate to the cart and order services, and map domain
// errors onto the response envelope. Identity arrives from the session layer
// as an X-User-ID header; this core does not authenticate users itself.
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/LucasSiw/apetrecho-core/internal/domain/auth"
	"github.com/LucasSiw/apetrecho-core/internal/domain/cart"
	"github.com/LucasSiw/apetrecho-core/internal/domain/order"
	"github.com/LucasSiw/apetrecho-core/internal/domain/product"
)

// Handler wires the HTTP routes to the domain services.
type Handler struct {
	products product.Repository
	carts    *cart.Service
	orders   *order.Service
	apikeys  auth.Repository
	pepper   []byte
}

// NewHandler constructs a Handler with the required domain dependencies.
func NewHandler(
	products product.Repository,
	carts *cart.Service,
	orders *order.Service,
	apikeys auth.Repository,
	pepper []byte,
) *Handler {
	return &Handler{
		products: products,
		carts:    carts,
		orders:   orders,
		apikeys:  apikeys,
		pepper:   pepper,
	}
}

// Routes returns the API router.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/products", h.ListProducts)
	r.Get("/products/{productID}", h.GetProduct)

	r.Group(func(r chi.Router) {
		r.Use(h.RequireUser)

		r.Get("/cart", h.GetCart)
		r.Delete("/cart", h.ClearCart)
		r.Post("/cart/items", h.AddCartItem)
		r.Put("/cart/items/{productID}", h.SetCartItemQuantity)
		r.Delete("/cart/items/{productID}", h.RemoveCartItem)
		r.Post("/cart/coupon", h.ApplyCoupon)
		r.Delete("/cart/coupon", h.RemoveCoupon)

		r.Post("/orders", h.Checkout)
		r.Get("/orders", h.ListOrders)
		r.Get("/orders/{orderID}", h.GetOrder)
	})

	r.Group(func(r chi.Router) {
		r.Use(h.RequireAPIKey)

		r.Post("/orders/{orderID}/status", h.AdvanceOrderStatus)
	})

	return r
}

// Mount attaches the API router under /api on the given mux.
func (h *Handler) Mount(mux *http.ServeMux) {
	mux.Handle("/api/", http.StripPrefix("/api", h.Routes()))
}
