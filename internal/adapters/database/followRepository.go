package database

import (
	"context"

	"plume/internal/config"
	"plume/internal/core/follow"
)

// FollowRepositoryDatabase implements FollowRepository on MySQL.
type FollowRepositoryDatabase struct{}

func NewFollowRepositoryDatabase() *FollowRepositoryDatabase {
	return &FollowRepositoryDatabase{}
}

func (repo *FollowRepositoryDatabase) Create(ctx context.Context, f *follow.Follow) (*follow.Follow, error) {
	if err := config.DB.WithContext(ctx).Create(f).Error; err != nil {
		return nil, err
	}
	return f, nil
}

func (repo *FollowRepositoryDatabase) Delete(ctx context.Context, userID, authorID string) error {
	return config.DB.WithContext(ctx).
		Where("user_id = ? AND author_id = ?", userID, authorID).
		Delete(&follow.Follow{}).Error
}

func (repo *FollowRepositoryDatabase) Exists(ctx context.Context, userID, authorID string) (bool, error) {
	var count int64
	err := config.DB.WithContext(ctx).Model(&follow.Follow{}).
		Where("user_id = ? AND author_id = ?", userID, authorID).
		Count(&count).Error
	return count > 0, err
}

func (repo *FollowRepositoryDatabase) FollowersOf(ctx context.Context, authorID string) ([]*follow.Follow, error) {
	var followers []*follow.Follow
	err := config.DB.WithContext(ctx).
		Preload("User").
		Where("author_id = ?", authorID).
		Find(&followers).Error
	if err != nil {
		return nil, err
	}
	return followers, nil
}

func (repo *FollowRepositoryDatabase) FollowingIDs(ctx context.Context, userID string) ([]string, error) {
	var ids []string
	err := config.DB.WithContext(ctx).Model(&follow.Follow{}).
		Where("user_id = ?", userID).
		Pluck("author_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}
