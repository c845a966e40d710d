package post

import (
	"context"
	"errors"
	"time"

	"plume/internal/core/post"
	groupPort "plume/internal/ports/group"
	userPort "plume/internal/ports/user"
)

var ErrNotFound = errors.New("post not found")

// PostRepository is the outbound port for storing and loading posts.
// Listings are reverse-chronological by publication date.
type PostRepository interface {
	Create(ctx context.Context, p *post.Post) (*post.Post, error)
	Update(ctx context.Context, p *post.Post) error
	FindByID(ctx context.Context, id string) (*post.Post, error)

	ListAll(ctx context.Context, offset, limit int) ([]*post.Post, error)
	CountAll(ctx context.Context) (int64, error)
	ListByGroup(ctx context.Context, groupID string, offset, limit int) ([]*post.Post, error)
	CountByGroup(ctx context.Context, groupID string) (int64, error)
	ListByAuthor(ctx context.Context, authorID string, offset, limit int) ([]*post.Post, error)
	CountByAuthor(ctx context.Context, authorID string) (int64, error)
	ListByAuthors(ctx context.Context, authorIDs []string, offset, limit int) ([]*post.Post, error)
	CountByAuthors(ctx context.Context, authorIDs []string) (int64, error)
}

type PostDTO struct {
	ID      string              `json:"id"`
	Text    string              `json:"text"`
	Image   string              `json:"image,omitempty"`
	PubDate time.Time           `json:"pub_date"`
	Author  *userPort.UserDTO   `json:"author,omitempty"`
	Group   *groupPort.GroupDTO `json:"group,omitempty"`
}
