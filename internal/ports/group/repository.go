package group

import (
	"context"
	"errors"

	"plume/internal/core/group"
)

var ErrNotFound = errors.New("group not found")

// GroupRepository is the outbound port for storing and loading groups.
type GroupRepository interface {
	Create(ctx context.Context, g *group.Group) (*group.Group, error)
	FindBySlug(ctx context.Context, slug string) (*group.Group, error)
	List(ctx context.Context) ([]*group.Group, error)
}

type GroupDTO struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
}
