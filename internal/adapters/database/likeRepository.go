package database

import (
	"context"
	"strings"

	"socialite/internal/config"
	"socialite/internal/core/like"
	likePort "socialite/internal/ports/like"
)

type LikeRepositoryDatabase struct{}

func NewLikeRepositoryDatabase() *LikeRepositoryDatabase {
	return &LikeRepositoryDatabase{}
}

func (repo *LikeRepositoryDatabase) Create(ctx context.Context, l *like.Like) (*like.Like, error) {
	if err := config.DB.WithContext(ctx).Create(l).Error; err != nil {
		return nil, err
	}
	return l, nil
}

func (repo *LikeRepositoryDatabase) FindByOwnerAndPost(ctx context.Context, ownerID, postID string) (*like.Like, error) {
	var l like.Like
	if err := config.DB.WithContext(ctx).
		Where("owner_id = ? AND post_id = ?", ownerID, postID).
		First(&l).Error; err != nil {
		return nil, err
	}
	return &l, nil
}

func (repo *LikeRepositoryDatabase) Delete(ctx context.Context, id string) error {
	return config.DB.WithContext(ctx).Where("id = ?", id).Delete(&like.Like{}).Error
}

func (repo *LikeRepositoryDatabase) ListDetailed(ctx context.Context) ([]*likePort.LikeDetailDTO, error) {
	type row struct {
		ID        string
		OwnerID   string
		PostID    string
		FirstName string
		LastName  string
		Text      string
	}

	var rows []row
	if err := config.DB.WithContext(ctx).Table("likes").
		Select("likes.id, likes.owner_id, likes.post_id, identities.first_name, identities.last_name, posts.text").
		Joins("JOIN identities ON identities.id = likes.owner_id").
		Joins("JOIN posts ON posts.id = likes.post_id").
		Order("likes.created_at DESC").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	likes := make([]*likePort.LikeDetailDTO, 0, len(rows))
	for _, r := range rows {
		likes = append(likes, &likePort.LikeDetailDTO{
			LikeDTO: likePort.LikeDTO{
				ID:      r.ID,
				OwnerID: r.OwnerID,
				PostID:  r.PostID,
			},
			OwnerName: strings.TrimSpace(r.FirstName + " " + r.LastName),
			PostText:  r.Text,
		})
	}
	return likes, nil
}
