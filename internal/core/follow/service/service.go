package followapp

import (
	"context"

	"github.com/gofrs/uuid"
	"go.uber.org/zap"

	"plume/internal/config"
	followEntity "plume/internal/core/follow"
	followPort "plume/internal/ports/follow"
)

type FollowService struct {
	FollowRepository followPort.FollowRepository
}

func NewFollowService(repo followPort.FollowRepository) *FollowService {
	return &FollowService{FollowRepository: repo}
}

// Follow subscribes userID to authorID. Self-follows and duplicate
// follows are no-ops: at most one row ever exists for a pair.
func (s *FollowService) Follow(ctx context.Context, userID, authorID string) error {
	if userID == authorID {
		config.Logger.Warn("⚠️ Ignoring self-follow", zap.String("userID", userID))
		return nil
	}

	exists, err := s.FollowRepository.Exists(ctx, userID, authorID)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	f := &followEntity.Follow{
		ID:       uuid.Must(uuid.NewV4()),
		UserID:   uuid.FromStringOrNil(userID),
		AuthorID: uuid.FromStringOrNil(authorID),
	}
	_, err = s.FollowRepository.Create(ctx, f)
	return err
}

// Unfollow removes the subscription if present.
func (s *FollowService) Unfollow(ctx context.Context, userID, authorID string) error {
	return s.FollowRepository.Delete(ctx, userID, authorID)
}

// FollowersOf lists who subscribes to the given author.
func (s *FollowService) FollowersOf(ctx context.Context, authorID string) ([]*followPort.FollowDTO, error) {
	followers, err := s.FollowRepository.FollowersOf(ctx, authorID)
	if err != nil {
		return nil, err
	}

	dtos := make([]*followPort.FollowDTO, 0, len(followers))
	for _, f := range followers {
		dtos = append(dtos, &followPort.FollowDTO{
			ID:       f.ID.String(),
			UserID:   f.UserID.String(),
			Username: f.User.Username,
			AuthorID: f.AuthorID.String(),
		})
	}
	return dtos, nil
}

func (s *FollowService) IsFollowing(ctx context.Context, userID, authorID string) (bool, error) {
	return s.FollowRepository.Exists(ctx, userID, authorID)
}

// FollowingIDs returns the author IDs userID subscribes to, for the feed query.
func (s *FollowService) FollowingIDs(ctx context.Context, userID string) ([]string, error) {
	return s.FollowRepository.FollowingIDs(ctx, userID)
}
