package httpapi

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"

	"plume/internal/adapters/httpapi/middleware"
	"plume/internal/pagination"
	cachePort "plume/internal/ports/cache"
	commentPort "plume/internal/ports/comment"
	followPort "plume/internal/ports/follow"
	groupPort "plume/internal/ports/group"
	postPort "plume/internal/ports/post"
	userPort "plume/internal/ports/user"
)

// Inbound ports: what the controllers need from the services.

type UserUseCase interface {
	Register(ctx context.Context, firstName, lastName, username, email, password string) (*userPort.UserDTO, error)
	Login(ctx context.Context, username, password string) (*userPort.LoginResponse, error)
	GetByUsername(ctx context.Context, username string) (*userPort.UserDTO, error)
	GetByID(ctx context.Context, id string) (*userPort.UserDTO, error)
	RequestPasswordReset(ctx context.Context, email string) (string, error)
}

type GroupUseCase interface {
	GetBySlug(ctx context.Context, slug string) (*groupPort.GroupDTO, error)
	List(ctx context.Context) ([]*groupPort.GroupDTO, error)
}

type PostUseCase interface {
	Create(ctx context.Context, text, authorID string, groupID *string, image string) (*postPort.PostDTO, error)
	Update(ctx context.Context, postID, editorID, text string, groupID *string, image string) (*postPort.PostDTO, error)
	GetByID(ctx context.Context, id string) (*postPort.PostDTO, error)
	CountByAuthor(ctx context.Context, authorID string) (int64, error)
	ListAll(ctx context.Context, pageNumber int) ([]*postPort.PostDTO, pagination.Page, error)
	ListByGroup(ctx context.Context, groupID string, pageNumber int) ([]*postPort.PostDTO, pagination.Page, error)
	ListByAuthor(ctx context.Context, authorID string, pageNumber int) ([]*postPort.PostDTO, pagination.Page, error)
	ListFeed(ctx context.Context, authorIDs []string, pageNumber int) ([]*postPort.PostDTO, pagination.Page, error)
}

type CommentUseCase interface {
	Add(ctx context.Context, postID, authorID, text string) (*commentPort.CommentDTO, error)
	ListByPost(ctx context.Context, postID string) ([]*commentPort.CommentDTO, error)
}

type FollowUseCase interface {
	Follow(ctx context.Context, userID, authorID string) error
	Unfollow(ctx context.Context, userID, authorID string) error
	FollowersOf(ctx context.Context, authorID string) ([]*followPort.FollowDTO, error)
	IsFollowing(ctx context.Context, userID, authorID string) (bool, error)
	FollowingIDs(ctx context.Context, userID string) ([]string, error)
}

// RouterConfig carries the wiring the route table needs.
type RouterConfig struct {
	JWTKey        []byte
	TemplatesGlob string
	MediaRoot     string
	Cache         cachePort.PageCache
	CacheTTL      time.Duration
}

// SetupRoutes builds the gin engine. Use cases are injected from outside.
func SetupRoutes(
	cfg RouterConfig,
	userUC UserUseCase,
	groupUC GroupUseCase,
	postUC PostUseCase,
	commentUC CommentUseCase,
	followUC FollowUseCase,
) *gin.Engine {
	r := gin.Default()
	r.LoadHTMLGlob(cfg.TemplatesGlob)
	if cfg.MediaRoot != "" {
		r.Static("/media", cfg.MediaRoot)
	}

	r.Use(middleware.CSRF())
	r.Use(middleware.CurrentUser(cfg.JWTKey))

	pc := NewPostController(postUC, groupUC, commentUC, cfg.MediaRoot)
	prc := NewProfileController(userUC, postUC, followUC)
	ac := NewAuthController(userUC)

	// Public pages. The front page goes through the page cache.
	r.GET("/", middleware.PageCache(cfg.Cache, cfg.CacheTTL), pc.Index)
	r.GET("/group/:slug/", pc.GroupPosts)
	r.GET("/profile/:username/", prc.Profile)
	r.GET("/posts/:id/", pc.PostDetail)

	// Authenticated pages.
	auth := r.Group("", middleware.LoginRequired())
	auth.GET("/create/", pc.PostCreateForm)
	auth.POST("/create/", pc.PostCreate)
	auth.GET("/posts/:id/edit/", pc.PostEditForm)
	auth.POST("/posts/:id/edit/", pc.PostEdit)
	auth.POST("/posts/:id/comment/", pc.AddComment)
	auth.GET("/follow/", prc.FollowIndex)
	auth.POST("/profile/:username/follow/", prc.ProfileFollow)
	auth.POST("/profile/:username/unfollow/", prc.ProfileUnfollow)

	// Auth flows.
	r.GET("/auth/signup/", ac.SignupForm)
	r.POST("/auth/signup/", ac.Signup)
	r.GET("/auth/login/", ac.LoginForm)
	r.POST("/auth/login/", ac.Login)
	r.POST("/auth/logout/", ac.Logout)
	r.GET("/auth/password_reset/", ac.PasswordResetForm)
	r.POST("/auth/password_reset/", ac.PasswordReset)

	r.NoRoute(func(c *gin.Context) {
		renderNotFound(c)
	})

	return r
}
