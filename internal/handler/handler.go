// Package handler exposes the storefront HTTP API: catalog reads, cart
// mutations with derived totals, and the JWT-protected account endpoints.
package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/shopease/storefront/internal/auth"
	"github.com/shopease/storefront/internal/domain/cart"
	"github.com/shopease/storefront/internal/domain/catalog"
	"github.com/shopease/storefront/internal/domain/user"
)

// Handler holds the dependencies of the HTTP API.
type Handler struct {
	catalog catalog.Repository
	users   *user.Service
	carts   cart.SnapshotRepository
	tokens  *auth.Issuer
}

// New constructs a Handler with the required domain dependencies.
func New(
	catalogRepo catalog.Repository,
	users *user.Service,
	carts cart.SnapshotRepository,
	tokens *auth.Issuer,
) *Handler {
	return &Handler{
		catalog: catalogRepo,
		users:   users,
		carts:   carts,
		tokens:  tokens,
	}
}

// Routes builds the API router.
func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/signup", h.Signup)
			r.Post("/signin", h.Signin)

			r.Group(func(r chi.Router) {
				r.Use(h.RequireAuth)
				r.Post("/signout", h.Signout)
				r.Get("/me", h.Me)
				r.Put("/profile", h.UpdateProfile)
			})
		})

		r.Get("/products", h.ListProducts)
		r.Get("/products/{productID}", h.GetProduct)

		r.Route("/cart/{cartID}", func(r chi.Router) {
			r.Get("/", h.GetCart)
			r.Delete("/", h.ClearCart)
			r.Post("/items", h.AddCartItem)
			r.Put("/items/{productID}", h.UpdateCartItem)
			r.Delete("/items/{productID}", h.RemoveCartItem)
		})
	})

	return r
}

// messageResponse is the body of every non-2xx response.
type messageResponse struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, messageResponse{Message: msg})
}

func decodeBody(r *http.Request, v any) error {
	defer func() { _ = r.Body.Close() }()
	return json.NewDecoder(r.Body).Decode(v)
}
