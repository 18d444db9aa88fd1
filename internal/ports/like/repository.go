package like

import (
	"context"

	"socialite/internal/core/like"
)

type LikeRepository interface {
	Create(ctx context.Context, l *like.Like) (*like.Like, error)
	FindByOwnerAndPost(ctx context.Context, ownerID, postID string) (*like.Like, error)
	Delete(ctx context.Context, id string) error
	ListDetailed(ctx context.Context) ([]*LikeDetailDTO, error)
}

type LikeDTO struct {
	ID      string `json:"id"`
	OwnerID string `json:"owner_id"`
	PostID  string `json:"post_id"`
}

type LikeDetailDTO struct {
	LikeDTO
	OwnerName string `json:"owner_name"`
	PostText  string `json:"post_text"`
}
