package handler

import (
	"net/http"
	"time"

	"github.com/go-faster/errors"

	"github.com/shopease/storefront/internal/domain/user"
)

// userPayload is the public view of an account. The password hash never
// appears here.
type userPayload struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

func toUserPayload(u *user.User) userPayload {
	return userPayload{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	}
}

type signupRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

type signinRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type profileRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type authResponse struct {
	Message string      `json:"message"`
	Token   string      `json:"token"`
	User    userPayload `json:"user"`
}

// Signup registers a new account and returns a fresh bearer token.
func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := decodeBody(r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Please provide all required fields")
		return
	}

	u, err := h.users.Signup(r.Context(), user.SignupRequest{
		Name:            req.Name,
		Email:           req.Email,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
	})
	if err != nil {
		h.writeAuthError(w, err, "Server error during registration")
		return
	}

	token, err := h.tokens.Issue(u.ID)
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, "Server error during registration")
		return
	}

	writeJSON(w, http.StatusCreated, authResponse{
		Message: "User created successfully",
		Token:   token,
		User:    toUserPayload(u),
	})
}

// Signin verifies credentials and returns a fresh bearer token.
func (h *Handler) Signin(w http.ResponseWriter, r *http.Request) {
	var req signinRequest
	if err := decodeBody(r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Please provide email and password")
		return
	}

	u, err := h.users.Signin(r.Context(), req.Email, req.Password)
	if err != nil {
		h.writeAuthError(w, err, "Server error during login")
		return
	}

	token, err := h.tokens.Issue(u.ID)
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, "Server error during login")
		return
	}

	writeJSON(w, http.StatusOK, authResponse{
		Message: "Login successful",
		Token:   token,
		User:    toUserPayload(u),
	})
}

// Signout acknowledges a signout. Tokens are stateless, so removal happens
// client-side; the endpoint exists so clients have a uniform auth surface.
func (h *Handler) Signout(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, messageResponse{Message: "Signed out successfully"})
}

// Me returns the authenticated user.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	u := CurrentUser(r.Context())
	if u == nil {
		writeMessage(w, http.StatusUnauthorized, "Token is not valid")
		return
	}
	writeJSON(w, http.StatusOK, map[string]userPayload{"user": toUserPayload(u)})
}

// UpdateProfile applies name/email changes to the authenticated user.
func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	u := CurrentUser(r.Context())
	if u == nil {
		writeMessage(w, http.StatusUnauthorized, "Token is not valid")
		return
	}

	var req profileRequest
	if err := decodeBody(r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Please provide fields to update")
		return
	}

	updated, err := h.users.UpdateProfile(r.Context(), u.ID, user.ProfileUpdate{
		Name:  req.Name,
		Email: req.Email,
	})
	if err != nil {
		h.writeAuthError(w, err, "Server error during profile update")
		return
	}

	writeJSON(w, http.StatusOK, struct {
		Message string      `json:"message"`
		User    userPayload `json:"user"`
	}{
		Message: "Profile updated successfully",
		User:    toUserPayload(updated),
	})
}

// writeAuthError maps account domain errors onto the HTTP surface.
func (h *Handler) writeAuthError(w http.ResponseWriter, err error, serverMsg string) {
	var vErr *user.ValidationError
	switch {
	case errors.As(err, &vErr):
		writeMessage(w, http.StatusBadRequest, vErr.Message)
	case errors.Is(err, user.ErrEmailTaken):
		writeMessage(w, http.StatusBadRequest, "User with this email already exists")
	case errors.Is(err, user.ErrInvalidCredentials):
		writeMessage(w, http.StatusBadRequest, "Invalid credentials")
	default:
		writeMessage(w, http.StatusInternalServerError, serverMsg)
	}
}
