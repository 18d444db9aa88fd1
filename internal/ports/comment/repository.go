package comment

import (
	"context"

	"socialite/internal/core/comment"
)

type CommentRepository interface {
	Create(ctx context.Context, c *comment.Comment) (*comment.Comment, error)
	FindByID(ctx context.Context, id string) (*comment.Comment, error)
	List(ctx context.Context) ([]*comment.Comment, error)
	Update(ctx context.Context, c *comment.Comment) error
	Delete(ctx context.Context, id string) error
}

type CommentDTO struct {
	ID        string `json:"id"`
	PostID    string `json:"post_id"`
	OwnerName string `json:"owner_name"`
	Text      string `json:"text"`
	CreatedAt string `json:"created_at"`
}
