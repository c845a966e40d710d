package database

import (
	"context"

	"plume/internal/config"
	"plume/internal/core/comment"
)

// CommentRepositoryDatabase implements CommentRepository on MySQL.
type CommentRepositoryDatabase struct{}

func NewCommentRepositoryDatabase() *CommentRepositoryDatabase {
	return &CommentRepositoryDatabase{}
}

func (repo *CommentRepositoryDatabase) Create(ctx context.Context, cm *comment.Comment) (*comment.Comment, error) {
	if err := config.DB.WithContext(ctx).Create(cm).Error; err != nil {
		return nil, err
	}
	return cm, nil
}

func (repo *CommentRepositoryDatabase) ListByPost(ctx context.Context, postID string) ([]*comment.Comment, error) {
	var comments []*comment.Comment
	err := config.DB.WithContext(ctx).
		Preload("Author").
		Where("post_id = ?", postID).
		Order("created DESC").
		Find(&comments).Error
	if err != nil {
		return nil, err
	}
	return comments, nil
}

func (repo *CommentRepositoryDatabase) CountByPost(ctx context.Context, postID string) (int64, error) {
	var count int64
	err := config.DB.WithContext(ctx).Model(&comment.Comment{}).Where("post_id = ?", postID).Count(&count).Error
	return count, err
}
