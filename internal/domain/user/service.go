package user

import (
	"context"
	"net/mail"
	"strings"
	"time"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLen = 6

// SignupRequest holds the input for registering a new account.
type SignupRequest struct {
	Name            string
	Email           string
	Password        string
	ConfirmPassword string
}

// ProfileUpdate holds the optional fields of a profile change. Empty fields
// are left untouched.
type ProfileUpdate struct {
	Name  string
	Email string
}

// Service implements account business logic over a user Repository.
type Service struct {
	users Repository
	now   func() time.Time
}

// NewService creates a Service backed by the given repository.
func NewService(users Repository) *Service {
	return &Service{users: users, now: time.Now}
}

// Signup validates the request, hashes the password, and creates the user.
// Validation failures are returned as *ValidationError; a duplicate email
// maps to ErrEmailTaken.
func (s *Service) Signup(ctx context.Context, req SignupRequest) (*User, error) {
	if req.Name == "" || req.Email == "" || req.Password == "" || req.ConfirmPassword == "" {
		return nil, &ValidationError{Message: "Please provide all required fields"}
	}
	if req.Password != req.ConfirmPassword {
		return nil, &ValidationError{Message: "Passwords do not match"}
	}
	if len(req.Password) < minPasswordLen {
		return nil, &ValidationError{Message: "Password must be at least 6 characters"}
	}

	email := normalizeEmail(req.Email)
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, &ValidationError{Message: "Please provide a valid email address"}
	}

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, ErrNotFound) {
		return nil, errors.Wrap(err, "check existing email")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.Wrap(err, "hash password")
	}

	now := s.now().UTC()
	u := &User{
		ID:           uuid.New().String(),
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.users.Create(ctx, u); err != nil {
		if errors.Is(err, ErrEmailTaken) {
			return nil, ErrEmailTaken
		}
		return nil, errors.Wrap(err, "create user")
	}
	return u, nil
}

// Signin verifies the credentials and returns the matching user. Unknown
// email and wrong password both yield ErrInvalidCredentials.
func (s *Service) Signin(ctx context.Context, email, password string) (*User, error) {
	if email == "" || password == "" {
		return nil, &ValidationError{Message: "Please provide email and password"}
	}

	u, err := s.users.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, errors.Wrap(err, "get user by email")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

// GetByID returns the user with the given ID.
func (s *Service) GetByID(ctx context.Context, id string) (*User, error) {
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return u, nil
}

// UpdateProfile applies the non-empty fields of upd to the user. An email
// change re-checks uniqueness against other accounts.
func (s *Service) UpdateProfile(ctx context.Context, id string, upd ProfileUpdate) (*User, error) {
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if upd.Name != "" {
		u.Name = strings.TrimSpace(upd.Name)
	}
	if upd.Email != "" {
		email := normalizeEmail(upd.Email)
		if _, err := mail.ParseAddress(email); err != nil {
			return nil, &ValidationError{Message: "Please provide a valid email address"}
		}
		if email != u.Email {
			if existing, err := s.users.GetByEmail(ctx, email); err == nil && existing.ID != u.ID {
				return nil, ErrEmailTaken
			} else if err != nil && !errors.Is(err, ErrNotFound) {
				return nil, errors.Wrap(err, "check existing email")
			}
			u.Email = email
		}
	}

	u.UpdatedAt = s.now().UTC()
	if err := s.users.Update(ctx, u); err != nil {
		if errors.Is(err, ErrEmailTaken) {
			return nil, ErrEmailTaken
		}
		return nil, errors.Wrap(err, "update user")
	}
	return u, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
