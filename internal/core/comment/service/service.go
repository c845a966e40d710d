package commentapp

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/gofrs/uuid"

	commentEntity "plume/internal/core/comment"
	commentPort "plume/internal/ports/comment"
	userPort "plume/internal/ports/user"
)

var ErrEmptyText = errors.New("comment text must not be empty")

type CommentService struct {
	CommentRepository commentPort.CommentRepository
}

func NewCommentService(repo commentPort.CommentRepository) *CommentService {
	return &CommentService{CommentRepository: repo}
}

// Add attaches a comment by authorID to postID.
func (s *CommentService) Add(ctx context.Context, postID, authorID, text string) (*commentPort.CommentDTO, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyText
	}

	pid, err := uuid.FromString(postID)
	if err != nil {
		return nil, fmt.Errorf("invalid postID: %w", err)
	}
	aid, err := uuid.FromString(authorID)
	if err != nil {
		return nil, fmt.Errorf("invalid authorID: %w", err)
	}

	cm := &commentEntity.Comment{
		ID:       uuid.Must(uuid.NewV4()),
		PostID:   pid,
		AuthorID: aid,
		Text:     text,
	}

	created, err := s.CommentRepository.Create(ctx, cm)
	if err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}
	return toDTO(created), nil
}

func (s *CommentService) ListByPost(ctx context.Context, postID string) ([]*commentPort.CommentDTO, error) {
	comments, err := s.CommentRepository.ListByPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	dtos := make([]*commentPort.CommentDTO, 0, len(comments))
	for _, cm := range comments {
		dtos = append(dtos, toDTO(cm))
	}
	return dtos, nil
}

func toDTO(cm *commentEntity.Comment) *commentPort.CommentDTO {
	dto := &commentPort.CommentDTO{
		ID:      cm.ID.String(),
		Text:    cm.Text,
		Created: cm.Created,
	}
	if cm.Author.ID != uuid.Nil {
		dto.Author = &userPort.UserDTO{
			ID:       cm.Author.ID.String(),
			Username: cm.Author.Username,
		}
	}
	return dto
}
