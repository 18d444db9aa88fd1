package database

import (
	"context"

	"socialite/internal/config"
	"socialite/internal/core/comment"
)

type CommentRepositoryDatabase struct{}

func NewCommentRepositoryDatabase() *CommentRepositoryDatabase {
	return &CommentRepositoryDatabase{}
}

func (repo *CommentRepositoryDatabase) Create(ctx context.Context, c *comment.Comment) (*comment.Comment, error) {
	if err := config.DB.WithContext(ctx).Create(c).Error; err != nil {
		return nil, err
	}
	return c, nil
}

func (repo *CommentRepositoryDatabase) FindByID(ctx context.Context, id string) (*comment.Comment, error) {
	var c comment.Comment
	if err := config.DB.WithContext(ctx).Preload("Owner").Where("id = ?", id).First(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (repo *CommentRepositoryDatabase) List(ctx context.Context) ([]*comment.Comment, error) {
	var comments []*comment.Comment
	if err := config.DB.WithContext(ctx).Preload("Owner").
		Order("created_at DESC").
		Find(&comments).Error; err != nil {
		return nil, err
	}
	return comments, nil
}

func (repo *CommentRepositoryDatabase) Update(ctx context.Context, c *comment.Comment) error {
	return config.DB.WithContext(ctx).Model(&comment.Comment{}).
		Where("id = ?", c.ID).
		Update("text", c.Text).Error
}

func (repo *CommentRepositoryDatabase) Delete(ctx context.Context, id string) error {
	return config.DB.WithContext(ctx).Where("id = ?", id).Delete(&comment.Comment{}).Error
}
