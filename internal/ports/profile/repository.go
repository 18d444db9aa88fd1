package profile

import (
	"context"

	"socialite/internal/core/profile"
)

type ProfileRepository interface {
	Create(ctx context.Context, p *profile.Profile) (*profile.Profile, error)
	FindByID(ctx context.Context, id string) (*profile.Profile, error)
	FindByOwnerID(ctx context.Context, ownerID string) (*profile.Profile, error)
	List(ctx context.Context, firstName, lastName string) ([]*profile.Profile, error)
	Update(ctx context.Context, p *profile.Profile) error
	Delete(ctx context.Context, id string) error
	ExistsForOwner(ctx context.Context, ownerID string) (bool, error)

	AddEdge(ctx context.Context, edge *profile.FollowEdge) error
	// RemoveEdge reports whether an edge was actually deleted so callers can
	// tell "just unfollowed" from "was never following".
	RemoveEdge(ctx context.Context, followerID, followeeID string) (bool, error)
	HasEdge(ctx context.Context, followerID, followeeID string) (bool, error)
	CountFollowers(ctx context.Context, profileID string) (int64, error)
	CountFollowing(ctx context.Context, profileID string) (int64, error)
}

type ProfileDTO struct {
	ID          string  `json:"id"`
	FirstName   string  `json:"first_name"`
	LastName    string  `json:"last_name"`
	Gender      string  `json:"gender"`
	Bio         *string `json:"bio"`
	PhoneNumber *string `json:"phone_number"`
}

type ProfileDetailDTO struct {
	ProfileDTO
	Image          *string `json:"image"`
	FollowersCount int64   `json:"followers_count"`
	FollowingCount int64   `json:"following_count"`
}
