package database

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"socialite/internal/config"
	"socialite/internal/core/post"
)

const annotatedColumns = "posts.*, " +
	"(SELECT COUNT(*) FROM comments WHERE comments.post_id = posts.id) AS comments_count, " +
	"(SELECT COUNT(*) FROM likes WHERE likes.post_id = posts.id) AS likes_count"

type PostRepositoryDatabase struct{}

func NewPostRepositoryDatabase() *PostRepositoryDatabase {
	return &PostRepositoryDatabase{}
}

func (repo *PostRepositoryDatabase) Create(ctx context.Context, p *post.Post) (*post.Post, error) {
	if err := config.DB.WithContext(ctx).Create(p).Error; err != nil {
		return nil, err
	}
	return p, nil
}

func (repo *PostRepositoryDatabase) FindByID(ctx context.Context, id string) (*post.Post, error) {
	var p post.Post
	if err := annotated(config.DB.WithContext(ctx)).
		Where("posts.id = ?", id).
		First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (repo *PostRepositoryDatabase) ListFeed(ctx context.Context, viewerOwnerID, viewerProfileID string) ([]*post.Post, error) {
	followedOwners := config.DB.Table("follow_edges").
		Select("profiles.owner_id").
		Joins("JOIN profiles ON profiles.id = follow_edges.followee_id").
		Where("follow_edges.follower_id = ?", viewerProfileID)

	var posts []*post.Post
	if err := annotated(config.DB.WithContext(ctx)).
		Where("posts.owner_id = ? OR posts.owner_id IN (?)", viewerOwnerID, followedOwners).
		Order("posts.created_at DESC").
		Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

func (repo *PostRepositoryDatabase) ListFiltered(ctx context.Context, authorID, hashtag string) ([]*post.Post, error) {
	q := annotated(config.DB.WithContext(ctx))

	if authorID != "" {
		q = q.Where("posts.owner_id = ?", authorID)
	}
	if hashtag != "" {
		q = q.Where("LOWER(posts.hashtag) LIKE ?", "%"+strings.ToLower(hashtag)+"%")
	}

	var posts []*post.Post
	if err := q.Order("posts.created_at DESC").Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

func (repo *PostRepositoryDatabase) Update(ctx context.Context, p *post.Post) error {
	// created_at is set once; only the mutable columns are written.
	return config.DB.WithContext(ctx).Model(&post.Post{}).
		Where("id = ?", p.ID).
		Updates(map[string]interface{}{"text": p.Text, "hashtag": p.Hashtag, "image": p.Image}).Error
}

func (repo *PostRepositoryDatabase) Delete(ctx context.Context, id string) error {
	return config.DB.WithContext(ctx).Where("id = ?", id).Delete(&post.Post{}).Error
}

func annotated(db *gorm.DB) *gorm.DB {
	return db.Model(&post.Post{}).
		Select(annotatedColumns).
		Preload("Comments", func(db *gorm.DB) *gorm.DB {
			return db.Order("comments.created_at ASC")
		}).
		Preload("Comments.Owner").
		Preload("Owner")
}
