package groupapp

import (
	"context"

	groupEntity "plume/internal/core/group"
	groupPort "plume/internal/ports/group"
)

type GroupService struct {
	GroupRepository groupPort.GroupRepository
}

func NewGroupService(repo groupPort.GroupRepository) *GroupService {
	return &GroupService{GroupRepository: repo}
}

func (s *GroupService) GetBySlug(ctx context.Context, slug string) (*groupPort.GroupDTO, error) {
	g, err := s.GroupRepository.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	return toDTO(g), nil
}

// List returns every group, for the post form's group selector.
func (s *GroupService) List(ctx context.Context) ([]*groupPort.GroupDTO, error) {
	groups, err := s.GroupRepository.List(ctx)
	if err != nil {
		return nil, err
	}
	dtos := make([]*groupPort.GroupDTO, 0, len(groups))
	for _, g := range groups {
		dtos = append(dtos, toDTO(g))
	}
	return dtos, nil
}

func toDTO(g *groupEntity.Group) *groupPort.GroupDTO {
	return &groupPort.GroupDTO{
		ID:          g.ID.String(),
		Title:       g.Title,
		Slug:        g.Slug,
		Description: g.Description,
	}
}
