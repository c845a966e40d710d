package database

import (
	"context"

	"gorm.io/gorm"

	"plume/internal/config"
	"plume/internal/core/post"
	postPort "plume/internal/ports/post"
)

// PostRepositoryDatabase implements PostRepository on MySQL.
// Listings preload the author and group and order by pub_date descending.
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

func (repo *PostRepositoryDatabase) Update(ctx context.Context, p *post.Post) error {
	return config.DB.WithContext(ctx).Save(p).Error
}

func (repo *PostRepositoryDatabase) FindByID(ctx context.Context, id string) (*post.Post, error) {
	var p post.Post
	if err := repo.listing(ctx).Where("id = ?", id).First(&p).Error; err != nil {
		return nil, mapNotFound(err, postPort.ErrNotFound)
	}
	return &p, nil
}

func (repo *PostRepositoryDatabase) ListAll(ctx context.Context, offset, limit int) ([]*post.Post, error) {
	var posts []*post.Post
	if err := repo.listing(ctx).Offset(offset).Limit(limit).Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

func (repo *PostRepositoryDatabase) CountAll(ctx context.Context) (int64, error) {
	var count int64
	err := config.DB.WithContext(ctx).Model(&post.Post{}).Count(&count).Error
	return count, err
}

func (repo *PostRepositoryDatabase) ListByGroup(ctx context.Context, groupID string, offset, limit int) ([]*post.Post, error) {
	var posts []*post.Post
	if err := repo.listing(ctx).Where("group_id = ?", groupID).Offset(offset).Limit(limit).Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

func (repo *PostRepositoryDatabase) CountByGroup(ctx context.Context, groupID string) (int64, error) {
	var count int64
	err := config.DB.WithContext(ctx).Model(&post.Post{}).Where("group_id = ?", groupID).Count(&count).Error
	return count, err
}

func (repo *PostRepositoryDatabase) ListByAuthor(ctx context.Context, authorID string, offset, limit int) ([]*post.Post, error) {
	var posts []*post.Post
	if err := repo.listing(ctx).Where("author_id = ?", authorID).Offset(offset).Limit(limit).Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

func (repo *PostRepositoryDatabase) CountByAuthor(ctx context.Context, authorID string) (int64, error) {
	var count int64
	err := config.DB.WithContext(ctx).Model(&post.Post{}).Where("author_id = ?", authorID).Count(&count).Error
	return count, err
}

func (repo *PostRepositoryDatabase) ListByAuthors(ctx context.Context, authorIDs []string, offset, limit int) ([]*post.Post, error) {
	var posts []*post.Post
	if err := repo.listing(ctx).Where("author_id IN ?", authorIDs).Offset(offset).Limit(limit).Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

func (repo *PostRepositoryDatabase) CountByAuthors(ctx context.Context, authorIDs []string) (int64, error) {
	var count int64
	err := config.DB.WithContext(ctx).Model(&post.Post{}).Where("author_id IN ?", authorIDs).Count(&count).Error
	return count, err
}

func (repo *PostRepositoryDatabase) listing(ctx context.Context) *gorm.DB {
	return config.DB.WithContext(ctx).
		Preload("Author").
		Preload("Group").
		Order("pub_date DESC")
}
