package database

import (
	"context"

	"socialite/internal/config"
	"socialite/internal/core/identity"
)

type IdentityRepositoryDatabase struct{}

func NewIdentityRepositoryDatabase() *IdentityRepositoryDatabase {
	return &IdentityRepositoryDatabase{}
}

func (repo *IdentityRepositoryDatabase) Create(ctx context.Context, account *identity.Identity) (*identity.Identity, error) {
	if err := config.DB.WithContext(ctx).Create(account).Error; err != nil {
		return nil, err
	}
	return account, nil
}

func (repo *IdentityRepositoryDatabase) FindByID(ctx context.Context, id string) (*identity.Identity, error) {
	var account identity.Identity
	if err := config.DB.WithContext(ctx).Where("id = ?", id).First(&account).Error; err != nil {
		return nil, err
	}
	return &account, nil
}

func (repo *IdentityRepositoryDatabase) FindByEmail(ctx context.Context, email string) (*identity.Identity, error) {
	var account identity.Identity
	if err := config.DB.WithContext(ctx).Where("email = ?", email).First(&account).Error; err != nil {
		return nil, err
	}
	return &account, nil
}

func (repo *IdentityRepositoryDatabase) UpdateName(ctx context.Context, id, firstName, lastName string) error {
	return config.DB.WithContext(ctx).Model(&identity.Identity{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"first_name": firstName, "last_name": lastName}).Error
}
