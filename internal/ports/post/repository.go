package post

import (
	"context"

	"socialite/internal/core/post"
	commentPort "socialite/internal/ports/comment"
)

type PostRepository interface {
	Create(ctx context.Context, p *post.Post) (*post.Post, error)
	// FindByID returns the post annotated with comment/like counts and its
	// comments preloaded together with their owners.
	FindByID(ctx context.Context, id string) (*post.Post, error)
	// ListFeed returns the viewer's own posts plus posts of authors whose
	// profile is followed by viewerProfileID, newest first.
	ListFeed(ctx context.Context, viewerOwnerID, viewerProfileID string) ([]*post.Post, error)
	// ListFiltered ignores the follow graph entirely: filters act as a global
	// search, not a refinement of the personalized feed.
	ListFiltered(ctx context.Context, authorID, hashtag string) ([]*post.Post, error)
	Update(ctx context.Context, p *post.Post) error
	Delete(ctx context.Context, id string) error
}

type PostDTO struct {
	ID            string                   `json:"id"`
	OwnerID       string                   `json:"owner_id"`
	OwnerName     string                   `json:"owner_name,omitempty"`
	Text          string                   `json:"text"`
	Hashtag       *string                  `json:"hashtag"`
	Image         *string                  `json:"image"`
	CreatedAt     string                   `json:"created_at"`
	CommentsCount int64                    `json:"comments_count"`
	LikesCount    int64                    `json:"likes_count"`
	Comments      []*commentPort.CommentDTO `json:"comments,omitempty"`
}

// ScheduledPostDTO is the 202 body: the post does not exist yet, so there
// is no id to report.
type ScheduledPostDTO struct {
	Detail       string `json:"detail"`
	ScheduledFor string `json:"scheduled_for"`
}
