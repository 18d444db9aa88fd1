package database

import (
	"context"
	"strings"

	"socialite/internal/config"
	"socialite/internal/core/profile"
)

type ProfileRepositoryDatabase struct{}

func NewProfileRepositoryDatabase() *ProfileRepositoryDatabase {
	return &ProfileRepositoryDatabase{}
}

func (repo *ProfileRepositoryDatabase) Create(ctx context.Context, p *profile.Profile) (*profile.Profile, error) {
	if err := config.DB.WithContext(ctx).Create(p).Error; err != nil {
		return nil, err
	}
	return p, nil
}

func (repo *ProfileRepositoryDatabase) FindByID(ctx context.Context, id string) (*profile.Profile, error) {
	var p profile.Profile
	if err := config.DB.WithContext(ctx).Preload("Owner").Where("id = ?", id).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (repo *ProfileRepositoryDatabase) FindByOwnerID(ctx context.Context, ownerID string) (*profile.Profile, error) {
	var p profile.Profile
	if err := config.DB.WithContext(ctx).Preload("Owner").Where("owner_id = ?", ownerID).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (repo *ProfileRepositoryDatabase) List(ctx context.Context, firstName, lastName string) ([]*profile.Profile, error) {
	q := config.DB.WithContext(ctx).Model(&profile.Profile{}).
		Select("profiles.*").
		Joins("JOIN identities ON identities.id = profiles.owner_id").
		Preload("Owner")

	if firstName != "" {
		q = q.Where("LOWER(identities.first_name) LIKE ?", "%"+strings.ToLower(firstName)+"%")
	}
	if lastName != "" {
		q = q.Where("LOWER(identities.last_name) LIKE ?", "%"+strings.ToLower(lastName)+"%")
	}

	var profiles []*profile.Profile
	if err := q.Find(&profiles).Error; err != nil {
		return nil, err
	}
	return profiles, nil
}

func (repo *ProfileRepositoryDatabase) Update(ctx context.Context, p *profile.Profile) error {
	return config.DB.WithContext(ctx).Save(p).Error
}

func (repo *ProfileRepositoryDatabase) Delete(ctx context.Context, id string) error {
	return config.DB.WithContext(ctx).Where("id = ?", id).Delete(&profile.Profile{}).Error
}

func (repo *ProfileRepositoryDatabase) ExistsForOwner(ctx context.Context, ownerID string) (bool, error) {
	var count int64
	if err := config.DB.WithContext(ctx).Model(&profile.Profile{}).Where("owner_id = ?", ownerID).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (repo *ProfileRepositoryDatabase) AddEdge(ctx context.Context, edge *profile.FollowEdge) error {
	return config.DB.WithContext(ctx).Create(edge).Error
}

func (repo *ProfileRepositoryDatabase) RemoveEdge(ctx context.Context, followerID, followeeID string) (bool, error) {
	res := config.DB.WithContext(ctx).
		Where("follower_id = ? AND followee_id = ?", followerID, followeeID).
		Delete(&profile.FollowEdge{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (repo *ProfileRepositoryDatabase) HasEdge(ctx context.Context, followerID, followeeID string) (bool, error) {
	var count int64
	if err := config.DB.WithContext(ctx).Model(&profile.FollowEdge{}).
		Where("follower_id = ? AND followee_id = ?", followerID, followeeID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (repo *ProfileRepositoryDatabase) CountFollowers(ctx context.Context, profileID string) (int64, error) {
	var count int64
	err := config.DB.WithContext(ctx).Model(&profile.FollowEdge{}).
		Where("followee_id = ?", profileID).
		Count(&count).Error
	return count, err
}

func (repo *ProfileRepositoryDatabase) CountFollowing(ctx context.Context, profileID string) (int64, error) {
	var count int64
	err := config.DB.WithContext(ctx).Model(&profile.FollowEdge{}).
		Where("follower_id = ?", profileID).
		Count(&count).Error
	return count, err
}
