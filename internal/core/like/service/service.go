package likeapp

import (
	"context"
	"errors"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"

	likeEntity "socialite/internal/core/like"
	likePort "socialite/internal/ports/like"
	postPort "socialite/internal/ports/post"
)

type LikeService struct {
	LikeRepository likePort.LikeRepository
	PostRepository postPort.PostRepository
}

func NewLikeService(likeRepo likePort.LikeRepository, postRepo postPort.PostRepository) *LikeService {
	return &LikeService{
		LikeRepository: likeRepo,
		PostRepository: postRepo,
	}
}

// Toggle infers intent from current state: an existing like is removed, a
// missing one is created. Returns whether the post is liked afterwards.
func (s *LikeService) Toggle(ctx context.Context, actorID, postID string) (bool, error) {
	if _, err := s.PostRepository.FindByID(ctx, postID); err != nil {
		return false, err
	}

	existing, err := s.LikeRepository.FindByOwnerAndPost(ctx, actorID, postID)
	if err == nil {
		if err := s.LikeRepository.Delete(ctx, existing.ID.String()); err != nil {
			return false, err
		}
		return false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}

	l := &likeEntity.Like{
		ID:      uuid.Must(uuid.NewV4()),
		OwnerID: uuid.FromStringOrNil(actorID),
		PostID:  uuid.FromStringOrNil(postID),
	}
	if _, err := s.LikeRepository.Create(ctx, l); err != nil {
		// Lost a concurrent toggle race; the unique (owner, post) index held
		// the invariant, so this is an idempotent success.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return true, nil
		}
		return false, err
	}
	return true, nil
}

func (s *LikeService) List(ctx context.Context) ([]*likePort.LikeDetailDTO, error) {
	return s.LikeRepository.ListDetailed(ctx)
}
