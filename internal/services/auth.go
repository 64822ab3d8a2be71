package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	m "inkfolio/internal/models"
	r "inkfolio/internal/repositories"
	s "inkfolio/internal/shared"
)

// Hasher prepares and verifies opaque credentials. The bcrypt implementation
// lives in pkg/auth.
type Hasher interface {
	Hash(plain string) (string, error)
	Verify(plain, encoded string) bool
}

// TokenIssuer mints an access token for an authenticated user.
type TokenIssuer interface {
	Issue(userID string) (string, error)
}

type SignUpRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	Image    string `json:"image,omitempty"`
}

type LoginRequest struct {
	Name     string `json:"name" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type AuthService struct {
	users  r.UserStore
	hasher Hasher
	tokens TokenIssuer
}

func NewAuthService(users r.UserStore, hasher Hasher, tokens TokenIssuer) *AuthService {
	return &AuthService{users: users, hasher: hasher, tokens: tokens}
}

// Registration creates an account with a hashed credential. The plaintext is
// never stored and the encrypted form is never echoed back (the model keeps
// it out of JSON).
func (a *AuthService) Registration(ctx context.Context, params SignUpRequest) (m.User, error) {
	if err := s.Validator.Struct(params); err != nil {
		return m.User{}, fmt.Errorf("%w: %w", m.ErrValidation, err)
	}

	if _, err := a.users.GetByName(ctx, params.Name); err == nil {
		return m.User{}, fmt.Errorf("user %q already exists: %w", params.Name, m.ErrValidation)
	} else if !errors.Is(err, m.ErrNotFound) {
		return m.User{}, err
	}

	encrypted, err := a.hasher.Hash(params.Password)

	if err != nil {
		log.Error().Err(err).Msg("Error hashing credential")
		return m.User{}, fmt.Errorf("hash credential: %w", err)
	}

	user, err := a.users.Create(ctx, m.User{
		Name:              params.Name,
		Email:             params.Email,
		EncryptedPassword: encrypted,
		Image:             params.Image,
		Portfolio:         []string{},
		Favorites:         []string{},
	})

	if err != nil {
		return m.User{}, err
	}

	return user, nil
}

// Login verifies the credential for the named user and issues a token.
func (a *AuthService) Login(ctx context.Context, params LoginRequest) (string, error) {
	if err := s.Validator.Struct(params); err != nil {
		return "", fmt.Errorf("%w: %w", m.ErrValidation, err)
	}

	user, err := a.users.GetByName(ctx, params.Name)

	if err != nil {
		// Unknown names and wrong passwords fail identically.
		if errors.Is(err, m.ErrNotFound) {
			return "", fmt.Errorf("invalid credentials for %q: %w", params.Name, m.ErrUnauthorized)
		}

		return "", err
	}

	if !a.hasher.Verify(params.Password, user.EncryptedPassword) {
		return "", fmt.Errorf("invalid credentials for %q: %w", params.Name, m.ErrUnauthorized)
	}

	token, err := a.tokens.Issue(user.ID)

	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}

	return token, nil
}
