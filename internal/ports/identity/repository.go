package identity

import (
	"context"

	"socialite/internal/core/identity"
)

type IdentityRepository interface {
	Create(ctx context.Context, account *identity.Identity) (*identity.Identity, error)
	FindByID(ctx context.Context, id string) (*identity.Identity, error)
	FindByEmail(ctx context.Context, email string) (*identity.Identity, error)
	UpdateName(ctx context.Context, id, firstName, lastName string) error
}

type IdentityDTO struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type LoginResponse struct {
	Token     string `json:"token"`
	ExpiresAt int64  `json:"expires_at"`
}
