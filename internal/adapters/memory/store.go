package memory

import (
	"context"
	"sync"
	"time"

	"github.com/gofrs/uuid"

	"plume/internal/core/comment"
	"plume/internal/core/follow"
	"plume/internal/core/group"
	"plume/internal/core/post"
	"plume/internal/core/user"
	commentPort "plume/internal/ports/comment"
	followPort "plume/internal/ports/follow"
	groupPort "plume/internal/ports/group"
	postPort "plume/internal/ports/post"
	userPort "plume/internal/ports/user"
)

// Store is an in-memory implementation of every repository port, exposed
// through per-entity views over one shared state. It backs the test suites
// and local development without a MySQL instance.
type Store struct {
	mu       sync.Mutex
	users    map[string]*user.User
	groups   map[string]*group.Group
	posts    []*post.Post       // newest first
	comments []*comment.Comment // newest first
	follows  []*follow.Follow
}

func NewStore() *Store {
	return &Store{
		users:  make(map[string]*user.User),
		groups: make(map[string]*group.Group),
	}
}

func (s *Store) Users() userPort.UserRepository          { return &userRepo{s} }
func (s *Store) Groups() groupPort.GroupRepository       { return &groupRepo{s} }
func (s *Store) Posts() postPort.PostRepository          { return &postRepo{s} }
func (s *Store) Comments() commentPort.CommentRepository { return &commentRepo{s} }
func (s *Store) Follows() followPort.FollowRepository    { return &followRepo{s} }

// --- users ---

type userRepo struct{ s *Store }

func (r *userRepo) Create(ctx context.Context, u *user.User) (*user.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.users[u.ID.String()] = u
	return u, nil
}

func (r *userRepo) FindByID(ctx context.Context, id string) (*user.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if u, ok := r.s.users[id]; ok {
		return u, nil
	}
	return nil, userPort.ErrNotFound
}

func (r *userRepo) FindByUsername(ctx context.Context, username string) (*user.User, error) {
	return r.find(func(u *user.User) bool { return u.Username == username })
}

func (r *userRepo) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	return r.find(func(u *user.User) bool { return u.Email == email })
}

func (r *userRepo) FindByUsernameOrEmail(ctx context.Context, username, email string) (*user.User, error) {
	return r.find(func(u *user.User) bool { return u.Username == username || u.Email == email })
}

func (r *userRepo) find(match func(*user.User) bool) (*user.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if match(u) {
			return u, nil
		}
	}
	return nil, userPort.ErrNotFound
}

// --- groups ---

type groupRepo struct{ s *Store }

func (r *groupRepo) Create(ctx context.Context, g *group.Group) (*group.Group, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.groups[g.ID.String()] = g
	return g, nil
}

func (r *groupRepo) FindBySlug(ctx context.Context, slug string) (*group.Group, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, g := range r.s.groups {
		if g.Slug == slug {
			return g, nil
		}
	}
	return nil, groupPort.ErrNotFound
}

func (r *groupRepo) List(ctx context.Context) ([]*group.Group, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	groups := make([]*group.Group, 0, len(r.s.groups))
	for _, g := range r.s.groups {
		groups = append(groups, g)
	}
	return groups, nil
}

// --- posts ---

type postRepo struct{ s *Store }

func (r *postRepo) Create(ctx context.Context, p *post.Post) (*post.Post, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if p.PubDate.IsZero() {
		p.PubDate = time.Now()
	}
	r.s.posts = append([]*post.Post{p}, r.s.posts...)
	return r.s.loadPost(p), nil
}

func (r *postRepo) Update(ctx context.Context, p *post.Post) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i, existing := range r.s.posts {
		if existing.ID == p.ID {
			r.s.posts[i] = p
			return nil
		}
	}
	return postPort.ErrNotFound
}

func (r *postRepo) FindByID(ctx context.Context, id string) (*post.Post, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, p := range r.s.posts {
		if p.ID.String() == id {
			return r.s.loadPost(p), nil
		}
	}
	return nil, postPort.ErrNotFound
}

func (r *postRepo) ListAll(ctx context.Context, offset, limit int) ([]*post.Post, error) {
	return r.list(func(*post.Post) bool { return true }, offset, limit), nil
}

func (r *postRepo) CountAll(ctx context.Context) (int64, error) {
	return r.count(func(*post.Post) bool { return true }), nil
}

func (r *postRepo) ListByGroup(ctx context.Context, groupID string, offset, limit int) ([]*post.Post, error) {
	return r.list(matchGroup(groupID), offset, limit), nil
}

func (r *postRepo) CountByGroup(ctx context.Context, groupID string) (int64, error) {
	return r.count(matchGroup(groupID)), nil
}

func (r *postRepo) ListByAuthor(ctx context.Context, authorID string, offset, limit int) ([]*post.Post, error) {
	return r.list(matchAuthors(authorID), offset, limit), nil
}

func (r *postRepo) CountByAuthor(ctx context.Context, authorID string) (int64, error) {
	return r.count(matchAuthors(authorID)), nil
}

func (r *postRepo) ListByAuthors(ctx context.Context, authorIDs []string, offset, limit int) ([]*post.Post, error) {
	return r.list(matchAuthors(authorIDs...), offset, limit), nil
}

func (r *postRepo) CountByAuthors(ctx context.Context, authorIDs []string) (int64, error) {
	return r.count(matchAuthors(authorIDs...)), nil
}

func matchGroup(groupID string) func(*post.Post) bool {
	return func(p *post.Post) bool { return p.GroupID != nil && p.GroupID.String() == groupID }
}

func matchAuthors(authorIDs ...string) func(*post.Post) bool {
	set := make(map[string]bool, len(authorIDs))
	for _, id := range authorIDs {
		set[id] = true
	}
	return func(p *post.Post) bool { return set[p.AuthorID.String()] }
}

func (r *postRepo) list(match func(*post.Post) bool, offset, limit int) []*post.Post {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*post.Post
	skipped := 0
	for _, p := range r.s.posts {
		if !match(p) {
			continue
		}
		if skipped < offset {
			skipped++
			continue
		}
		if limit > 0 && len(out) >= limit {
			break
		}
		out = append(out, r.s.loadPost(p))
	}
	return out
}

func (r *postRepo) count(match func(*post.Post) bool) int64 {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var n int64
	for _, p := range r.s.posts {
		if match(p) {
			n++
		}
	}
	return n
}

// loadPost mimics the database adapter's association preloads.
// Callers must hold s.mu.
func (s *Store) loadPost(p *post.Post) *post.Post {
	cp := *p
	if u, ok := s.users[p.AuthorID.String()]; ok {
		cp.Author = *u
	}
	if p.GroupID != nil {
		if g, ok := s.groups[p.GroupID.String()]; ok {
			cp.Group = g
		}
	}
	return &cp
}

// --- comments ---

type commentRepo struct{ s *Store }

func (r *commentRepo) Create(ctx context.Context, cm *comment.Comment) (*comment.Comment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if cm.Created.IsZero() {
		cm.Created = time.Now()
	}
	if u, ok := r.s.users[cm.AuthorID.String()]; ok {
		cm.Author = *u
	}
	r.s.comments = append([]*comment.Comment{cm}, r.s.comments...)
	return cm, nil
}

func (r *commentRepo) ListByPost(ctx context.Context, postID string) ([]*comment.Comment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*comment.Comment
	for _, cm := range r.s.comments {
		if cm.PostID.String() == postID {
			out = append(out, cm)
		}
	}
	return out, nil
}

func (r *commentRepo) CountByPost(ctx context.Context, postID string) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var n int64
	for _, cm := range r.s.comments {
		if cm.PostID.String() == postID {
			n++
		}
	}
	return n, nil
}

// --- follows ---

type followRepo struct{ s *Store }

func (r *followRepo) Create(ctx context.Context, f *follow.Follow) (*follow.Follow, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if u, ok := r.s.users[f.UserID.String()]; ok {
		f.User = *u
	}
	r.s.follows = append(r.s.follows, f)
	return f, nil
}

func (r *followRepo) Delete(ctx context.Context, userID, authorID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	kept := r.s.follows[:0]
	for _, f := range r.s.follows {
		if f.UserID.String() == userID && f.AuthorID.String() == authorID {
			continue
		}
		kept = append(kept, f)
	}
	r.s.follows = kept
	return nil
}

func (r *followRepo) Exists(ctx context.Context, userID, authorID string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, f := range r.s.follows {
		if f.UserID.String() == userID && f.AuthorID.String() == authorID {
			return true, nil
		}
	}
	return false, nil
}

func (r *followRepo) FollowersOf(ctx context.Context, authorID string) ([]*follow.Follow, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*follow.Follow
	for _, f := range r.s.follows {
		if f.AuthorID.String() == authorID {
			out = append(out, f)
		}
	}
	return out, nil
}

func (r *followRepo) FollowingIDs(ctx context.Context, userID string) ([]string, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var ids []string
	for _, f := range r.s.follows {
		if f.UserID.String() == userID {
			ids = append(ids, f.AuthorID.String())
		}
	}
	return ids, nil
}

// --- test and fixture helpers ---

// FollowCount reports how many follow rows exist.
func (s *Store) FollowCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.follows)
}

// PostCount reports how many posts exist.
func (s *Store) PostCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.posts)
}

// CommentCount reports how many comments exist.
func (s *Store) CommentCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.comments)
}

// SeedUser inserts a user directly, bypassing registration.
func (s *Store) SeedUser(username, email string) *user.User {
	u := &user.User{
		ID:       uuid.Must(uuid.NewV4()),
		Username: username,
		Email:    email,
		Password: "x",
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[u.ID.String()] = u
	return u
}

// SeedGroup inserts a group directly.
func (s *Store) SeedGroup(title, slug string) *group.Group {
	g := &group.Group{
		ID:    uuid.Must(uuid.NewV4()),
		Title: title,
		Slug:  slug,
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.groups[g.ID.String()] = g
	return g
}
