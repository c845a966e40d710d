package postapp

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/gofrs/uuid"
	"go.uber.org/zap"

	"plume/internal/config"
	postEntity "plume/internal/core/post"
	"plume/internal/pagination"
	cachePort "plume/internal/ports/cache"
	groupPort "plume/internal/ports/group"
	postPort "plume/internal/ports/post"
	userPort "plume/internal/ports/user"
)

var (
	ErrEmptyText = errors.New("post text must not be empty")
	ErrNotOwner  = errors.New("only the author may edit a post")
)

// PostService owns post writes (and the cache invalidation they imply)
// and the paginated listings.
type PostService struct {
	PostRepository postPort.PostRepository
	Cache          cachePort.PageCache
	PerPage        int
}

func NewPostService(postRepo postPort.PostRepository, cache cachePort.PageCache, perPage int) *PostService {
	if perPage < 1 {
		perPage = 10
	}
	return &PostService{
		PostRepository: postRepo,
		Cache:          cache,
		PerPage:        perPage,
	}
}

// Create persists a new post for authorID. groupID may be nil.
func (s *PostService) Create(ctx context.Context, text, authorID string, groupID *string, image string) (*postPort.PostDTO, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyText
	}

	uid, err := uuid.FromString(authorID)
	if err != nil {
		return nil, fmt.Errorf("invalid authorID: %w", err)
	}

	p := &postEntity.Post{
		ID:       uuid.Must(uuid.NewV4()),
		Text:     text,
		AuthorID: uid,
		Image:    image,
	}
	if groupID != nil {
		gid, err := uuid.FromString(*groupID)
		if err != nil {
			return nil, fmt.Errorf("invalid groupID: %w", err)
		}
		p.GroupID = &gid
	}

	created, err := s.PostRepository.Create(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}

	s.clearCache(ctx)
	return toDTO(created), nil
}

// Update edits an existing post. Only the author may edit; an empty image
// keeps the current one.
func (s *PostService) Update(ctx context.Context, postID, editorID, text string, groupID *string, image string) (*postPort.PostDTO, error) {
	p, err := s.PostRepository.FindByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if p.AuthorID.String() != editorID {
		return nil, ErrNotOwner
	}
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyText
	}

	p.Text = text
	p.GroupID = nil
	if groupID != nil {
		gid, err := uuid.FromString(*groupID)
		if err != nil {
			return nil, fmt.Errorf("invalid groupID: %w", err)
		}
		p.GroupID = &gid
	}
	if image != "" {
		p.Image = image
	}

	if err := s.PostRepository.Update(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to update post: %w", err)
	}

	s.clearCache(ctx)
	return toDTO(p), nil
}

func (s *PostService) GetByID(ctx context.Context, id string) (*postPort.PostDTO, error) {
	p, err := s.PostRepository.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toDTO(p), nil
}

func (s *PostService) CountByAuthor(ctx context.Context, authorID string) (int64, error) {
	return s.PostRepository.CountByAuthor(ctx, authorID)
}

// ListAll is the front-page listing.
func (s *PostService) ListAll(ctx context.Context, pageNumber int) ([]*postPort.PostDTO, pagination.Page, error) {
	total, err := s.PostRepository.CountAll(ctx)
	if err != nil {
		return nil, pagination.Page{}, err
	}
	pg := pagination.New(pageNumber, s.PerPage, total)
	posts, err := s.PostRepository.ListAll(ctx, pg.Offset(), pg.PerPage)
	if err != nil {
		return nil, pagination.Page{}, err
	}
	return toDTOs(posts), pg, nil
}

func (s *PostService) ListByGroup(ctx context.Context, groupID string, pageNumber int) ([]*postPort.PostDTO, pagination.Page, error) {
	total, err := s.PostRepository.CountByGroup(ctx, groupID)
	if err != nil {
		return nil, pagination.Page{}, err
	}
	pg := pagination.New(pageNumber, s.PerPage, total)
	posts, err := s.PostRepository.ListByGroup(ctx, groupID, pg.Offset(), pg.PerPage)
	if err != nil {
		return nil, pagination.Page{}, err
	}
	return toDTOs(posts), pg, nil
}

func (s *PostService) ListByAuthor(ctx context.Context, authorID string, pageNumber int) ([]*postPort.PostDTO, pagination.Page, error) {
	total, err := s.PostRepository.CountByAuthor(ctx, authorID)
	if err != nil {
		return nil, pagination.Page{}, err
	}
	pg := pagination.New(pageNumber, s.PerPage, total)
	posts, err := s.PostRepository.ListByAuthor(ctx, authorID, pg.Offset(), pg.PerPage)
	if err != nil {
		return nil, pagination.Page{}, err
	}
	return toDTOs(posts), pg, nil
}

// ListFeed lists the posts of the given authors, newest first.
func (s *PostService) ListFeed(ctx context.Context, authorIDs []string, pageNumber int) ([]*postPort.PostDTO, pagination.Page, error) {
	if len(authorIDs) == 0 {
		return []*postPort.PostDTO{}, pagination.New(1, s.PerPage, 0), nil
	}
	total, err := s.PostRepository.CountByAuthors(ctx, authorIDs)
	if err != nil {
		return nil, pagination.Page{}, err
	}
	pg := pagination.New(pageNumber, s.PerPage, total)
	posts, err := s.PostRepository.ListByAuthors(ctx, authorIDs, pg.Offset(), pg.PerPage)
	if err != nil {
		return nil, pagination.Page{}, err
	}
	return toDTOs(posts), pg, nil
}

func (s *PostService) clearCache(ctx context.Context) {
	if s.Cache == nil {
		return
	}
	if err := s.Cache.Clear(ctx); err != nil {
		config.Logger.Warn("⚠️ Could not clear page cache", zap.Error(err))
	}
}

func toDTO(p *postEntity.Post) *postPort.PostDTO {
	dto := &postPort.PostDTO{
		ID:      p.ID.String(),
		Text:    p.Text,
		Image:   p.Image,
		PubDate: p.PubDate,
	}
	if p.Author.ID != uuid.Nil {
		dto.Author = &userPort.UserDTO{
			ID:        p.Author.ID.String(),
			Username:  p.Author.Username,
			FirstName: p.Author.FirstName,
			LastName:  p.Author.LastName,
		}
	}
	if p.Group != nil {
		dto.Group = &groupPort.GroupDTO{
			ID:    p.Group.ID.String(),
			Title: p.Group.Title,
			Slug:  p.Group.Slug,
		}
	}
	return dto
}

func toDTOs(posts []*postEntity.Post) []*postPort.PostDTO {
	dtos := make([]*postPort.PostDTO, 0, len(posts))
	for _, p := range posts {
		dtos = append(dtos, toDTO(p))
	}
	return dtos
}
