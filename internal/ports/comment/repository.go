package comment

import (
	"context"
	"time"

	"plume/internal/core/comment"
	userPort "plume/internal/ports/user"
)

// CommentRepository is the outbound port for storing and loading comments.
// Listings are reverse-chronological by creation date.
type CommentRepository interface {
	Create(ctx context.Context, cm *comment.Comment) (*comment.Comment, error)
	ListByPost(ctx context.Context, postID string) ([]*comment.Comment, error)
	CountByPost(ctx context.Context, postID string) (int64, error)
}

type CommentDTO struct {
	ID      string            `json:"id"`
	Text    string            `json:"text"`
	Created time.Time         `json:"created"`
	Author  *userPort.UserDTO `json:"author,omitempty"`
}
