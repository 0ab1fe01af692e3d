package handler

import (
	"context"
	"net/http"

	"github.com/shopease/storefront/internal/auth"
	"github.com/shopease/storefront/internal/domain/user"
)

// currentUserKey is the context key for the authenticated user.
type currentUserKey struct{}

// CurrentUser returns the authenticated user stored by RequireAuth.
func CurrentUser(ctx context.Context) *user.User {
	u, _ := ctx.Value(currentUserKey{}).(*user.User)
	return u
}

// RequireAuth authenticates the request with a bearer token and loads the
// matching user into the context. Missing tokens, failed verification, and
// tokens for deleted users all map to 401.
func (h *Handler) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := auth.BearerToken(r)
		if token == "" {
			writeMessage(w, http.StatusUnauthorized, "No token, authorization denied")
			return
		}

		claims, err := h.tokens.Parse(token)
		if err != nil {
			writeMessage(w, http.StatusUnauthorized, "Token is not valid")
			return
		}

		u, err := h.users.GetByID(r.Context(), claims.UserID)
		if err != nil {
			writeMessage(w, http.StatusUnauthorized, "Token is not valid")
			return
		}

		ctx := context.WithValue(r.Context(), currentUserKey{}, u)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
