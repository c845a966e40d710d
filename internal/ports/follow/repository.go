package follow

import (
	"context"

	"plume/internal/core/follow"
)

// FollowRepository is the outbound port for subscription relations.
type FollowRepository interface {
	Create(ctx context.Context, f *follow.Follow) (*follow.Follow, error)
	Delete(ctx context.Context, userID, authorID string) error
	Exists(ctx context.Context, userID, authorID string) (bool, error)
	FollowersOf(ctx context.Context, authorID string) ([]*follow.Follow, error)
	FollowingIDs(ctx context.Context, userID string) ([]string, error)
}

type FollowDTO struct {
	ID       string `json:"id"`
	UserID   string `json:"userId"`
	Username string `json:"username"`
	AuthorID string `json:"authorId"`
}
