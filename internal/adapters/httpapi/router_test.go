package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gofrs/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"plume/internal/adapters/memory"
	"plume/internal/config"
	commentapp "plume/internal/core/comment/service"
	followapp "plume/internal/core/follow/service"
	groupapp "plume/internal/core/group/service"
	"plume/internal/core/post"
	postapp "plume/internal/core/post/service"
	userapp "plume/internal/core/user/service"
)

var testJWTKey = []byte("router-test-key")

const csrfToken = "1e6f5e6f5e6f5e6f5e6f5e6f5e6f5e6f"

func init() {
	gin.SetMode(gin.TestMode)
	config.Logger = zap.NewNop()
}

type testApp struct {
	store  *memory.Store
	cache  *memory.PageCache
	router *gin.Engine

	users    *userapp.UserService
	posts    *postapp.PostService
	follows  *followapp.FollowService
	comments *commentapp.CommentService
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	store := memory.NewStore()
	cache := memory.NewPageCache()

	users := userapp.NewUserService(store.Users(), testJWTKey)
	groups := groupapp.NewGroupService(store.Groups())
	posts := postapp.NewPostService(store.Posts(), cache, 10)
	comments := commentapp.NewCommentService(store.Comments())
	follows := followapp.NewFollowService(store.Follows())

	router := SetupRoutes(RouterConfig{
		JWTKey:        testJWTKey,
		TemplatesGlob: "../../../web/templates/*/*.tmpl",
		MediaRoot:     t.TempDir(),
		Cache:         cache,
		CacheTTL:      time.Minute,
	}, users, groups, posts, comments, follows)

	return &testApp{
		store:    store,
		cache:    cache,
		router:   router,
		users:    users,
		posts:    posts,
		follows:  follows,
		comments: comments,
	}
}

func (a *testApp) do(req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func (a *testApp) get(path string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	return a.do(req)
}

// postForm sends a form POST with a valid CSRF cookie/field pair.
func (a *testApp) postForm(path string, form url.Values, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	if form == nil {
		form = url.Values{}
	}
	form.Set("csrf_token", csrfToken)
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.AddCookie(&http.Cookie{Name: "csrf_token", Value: csrfToken})
	for _, c := range cookies {
		req.AddCookie(c)
	}
	return a.do(req)
}

// signup registers a user and returns their session cookie and ID.
func (a *testApp) signup(t *testing.T, username string) (*http.Cookie, string) {
	t.Helper()
	ctx := context.Background()
	u, err := a.users.Register(ctx, "", "", username, username+"@example.com", "valid-password")
	require.NoError(t, err)
	res, err := a.users.Login(ctx, username, "valid-password")
	require.NoError(t, err)
	return &http.Cookie{Name: "session", Value: res.Token}, u.ID
}

func (a *testApp) createPost(t *testing.T, text, authorID string) string {
	t.Helper()
	p, err := a.posts.Create(context.Background(), text, authorID, nil, "")
	require.NoError(t, err)
	return p.ID
}

func TestUnknownEntitiesReturn404(t *testing.T) {
	app := newTestApp(t)
	randomID := uuid.Must(uuid.NewV4()).String()

	paths := []string{
		"/group/no-such-group/",
		"/profile/no-such-user/",
		"/posts/" + randomID + "/",
		"/definitely/not/a/route/",
	}
	for _, path := range paths {
		w := app.get(path)
		assert.Equal(t, http.StatusNotFound, w.Code, path)
		assert.Contains(t, w.Body.String(), path, "the 404 page shows the attempted path")
	}
}

func TestLoginRequiredRedirectsWithNext(t *testing.T) {
	app := newTestApp(t)

	w := app.get("/create/")
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/auth/login/?next=/create/", w.Header().Get("Location"))

	w = app.get("/follow/")
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/auth/login/?next=/follow/", w.Header().Get("Location"))
}

func TestAnonymousCommentRedirectsToLogin(t *testing.T) {
	app := newTestApp(t)
	_, authorID := app.signup(t, "olga")
	postID := app.createPost(t, "a post", authorID)

	w := app.postForm("/posts/"+postID+"/comment/", url.Values{"text": {""}})
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/auth/login/?next=/posts/"+postID+"/comment/", w.Header().Get("Location"))
	assert.Equal(t, 0, app.store.CommentCount(), "comment count unchanged")
}

func TestCSRFFailureRenders403(t *testing.T) {
	app := newTestApp(t)
	session, _ := app.signup(t, "olga")

	// no CSRF cookie or field at all
	form := url.Values{"text": {"hello"}}
	req := httptest.NewRequest(http.MethodPost, "/create/", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.AddCookie(session)
	w := app.do(req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "403 Forbidden")
	assert.Equal(t, 0, app.store.PostCount())
}

func TestCreatePostFlow(t *testing.T) {
	app := newTestApp(t)
	session, _ := app.signup(t, "olga")

	w := app.get("/create/", session)
	assert.Equal(t, http.StatusOK, w.Code)

	w = app.postForm("/create/", url.Values{"text": {"test-post"}}, session)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/profile/olga/", w.Header().Get("Location"))
	assert.Equal(t, 1, app.store.PostCount())

	// the new post shows up on the author's profile, first page
	w = app.get("/profile/olga/")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "test-post")
}

func TestCreatePostEmptyTextFailsValidation(t *testing.T) {
	app := newTestApp(t)
	session, _ := app.signup(t, "olga")

	for _, text := range []string{"", "   "} {
		w := app.postForm("/create/", url.Values{"text": {text}}, session)
		assert.Equal(t, http.StatusOK, w.Code, "the form is re-rendered, not redirected")
		assert.Contains(t, w.Body.String(), "error")
	}
	assert.Equal(t, 0, app.store.PostCount(), "no row persisted on validation failure")
}

func TestNonAuthorEditIsRedirectedToDetail(t *testing.T) {
	app := newTestApp(t)
	_, authorID := app.signup(t, "olga")
	other, _ := app.signup(t, "mallory")
	postID := app.createPost(t, "original", authorID)

	w := app.get("/posts/"+postID+"/edit/", other)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/posts/"+postID+"/", w.Header().Get("Location"))

	w = app.postForm("/posts/"+postID+"/edit/", url.Values{"text": {"hijacked"}}, other)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/posts/"+postID+"/", w.Header().Get("Location"))

	detail := app.get("/posts/" + postID + "/")
	assert.Contains(t, detail.Body.String(), "original")
	assert.NotContains(t, detail.Body.String(), "hijacked")
}

func TestAuthorCanEdit(t *testing.T) {
	app := newTestApp(t)
	session, authorID := app.signup(t, "olga")
	postID := app.createPost(t, "original", authorID)

	w := app.get("/posts/"+postID+"/edit/", session)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "original")

	w = app.postForm("/posts/"+postID+"/edit/", url.Values{"text": {"edited"}}, session)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/posts/"+postID+"/", w.Header().Get("Location"))

	detail := app.get("/posts/" + postID + "/")
	assert.Contains(t, detail.Body.String(), "edited")
}

func TestAddCommentAlwaysRedirectsToDetail(t *testing.T) {
	app := newTestApp(t)
	session, authorID := app.signup(t, "olga")
	postID := app.createPost(t, "a post", authorID)

	w := app.postForm("/posts/"+postID+"/comment/", url.Values{"text": {"nice one"}}, session)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/posts/"+postID+"/", w.Header().Get("Location"))
	assert.Equal(t, 1, app.store.CommentCount())

	// blank comments are dropped but still redirect
	w = app.postForm("/posts/"+postID+"/comment/", url.Values{"text": {""}}, session)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, 1, app.store.CommentCount())

	detail := app.get("/posts/" + postID + "/")
	assert.Contains(t, detail.Body.String(), "nice one")

	// unknown post is a 404
	randomID := uuid.Must(uuid.NewV4()).String()
	w = app.postForm("/posts/"+randomID+"/comment/", url.Values{"text": {"x"}}, session)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestIndexPagination(t *testing.T) {
	app := newTestApp(t)
	_, authorID := app.signup(t, "olga")
	for i := 0; i < 13; i++ {
		app.createPost(t, fmt.Sprintf("post number %d", i), authorID)
	}

	first := app.get("/")
	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, 10, strings.Count(first.Body.String(), "<article>"))

	second := app.get("/?page=2")
	assert.Equal(t, 3, strings.Count(second.Body.String(), "<article>"))

	clamped := app.get("/?page=999")
	assert.Equal(t, 3, strings.Count(clamped.Body.String(), "<article>"))
}

func TestIndexCacheServesAndInvalidates(t *testing.T) {
	app := newTestApp(t)
	_, authorID := app.signup(t, "olga")
	app.createPost(t, "first post", authorID)

	one := app.get("/").Body.String()
	two := app.get("/").Body.String()
	assert.Equal(t, one, two, "two reads without a write are identical")

	// a write that bypasses the service does not clear the cache
	_, err := app.store.Posts().Create(context.Background(), &post.Post{
		ID:       uuid.Must(uuid.NewV4()),
		Text:     "sneaky post",
		AuthorID: uuid.FromStringOrNil(authorID),
	})
	require.NoError(t, err)
	stale := app.get("/").Body.String()
	assert.Equal(t, one, stale)
	assert.NotContains(t, stale, "sneaky post")

	require.NoError(t, app.cache.Clear(context.Background()))
	fresh := app.get("/").Body.String()
	assert.Contains(t, fresh, "sneaky post")

	// a write through the service clears the cache itself
	app.createPost(t, "second post", authorID)
	after := app.get("/").Body.String()
	assert.Contains(t, after, "second post")
}

func TestFollowUnfollowOverHTTP(t *testing.T) {
	app := newTestApp(t)
	session, _ := app.signup(t, "olga")
	_, levID := app.signup(t, "lev")
	app.createPost(t, "lev writes", levID)

	// feed is empty before following anyone
	w := app.get("/follow/", session)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "lev writes")

	w = app.postForm("/profile/lev/follow/", nil, session)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/profile/lev/", w.Header().Get("Location"))
	assert.Equal(t, 1, app.store.FollowCount())

	// idempotent
	app.postForm("/profile/lev/follow/", nil, session)
	assert.Equal(t, 1, app.store.FollowCount())

	// self-follow is a no-op
	w = app.postForm("/profile/olga/follow/", nil, session)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, 1, app.store.FollowCount())

	w = app.get("/follow/", session)
	assert.Contains(t, w.Body.String(), "lev writes")

	w = app.postForm("/profile/lev/unfollow/", nil, session)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/follow/", w.Header().Get("Location"))
	assert.Equal(t, 0, app.store.FollowCount())
}

func TestGroupListing(t *testing.T) {
	app := newTestApp(t)
	_, authorID := app.signup(t, "olga")
	g := app.store.SeedGroup("Cats", "cats")

	gid := g.ID.String()
	_, err := app.posts.Create(context.Background(), "cat content", authorID, &gid, "")
	require.NoError(t, err)
	app.createPost(t, "ungrouped", authorID)

	w := app.get("/group/cats/")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Cats")
	assert.Contains(t, w.Body.String(), "cat content")
	assert.NotContains(t, w.Body.String(), "ungrouped")
}

func TestSignupLoginLogoutFlow(t *testing.T) {
	app := newTestApp(t)

	w := app.get("/auth/signup/")
	assert.Equal(t, http.StatusOK, w.Code)

	w = app.postForm("/auth/signup/", url.Values{
		"username":  {"newbie"},
		"email":     {"newbie@example.com"},
		"password":  {"valid-password"},
		"password2": {"valid-password"},
	})
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))

	var session *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == "session" && c.Value != "" {
			session = c
		}
	}
	require.NotNil(t, session, "signup logs the user in")

	w = app.get("/create/", session)
	assert.Equal(t, http.StatusOK, w.Code)

	// login honors a local next target
	w = app.postForm("/auth/login/", url.Values{
		"username": {"newbie"},
		"password": {"valid-password"},
		"next":     {"/create/"},
	})
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/create/", w.Header().Get("Location"))

	// an off-site next target is ignored
	w = app.postForm("/auth/login/", url.Values{
		"username": {"newbie"},
		"password": {"valid-password"},
		"next":     {"//evil.example.com/"},
	})
	assert.Equal(t, "/", w.Header().Get("Location"))

	w = app.postForm("/auth/logout/", nil, session)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Logged out")
}

func TestLoginRejectsBadPassword(t *testing.T) {
	app := newTestApp(t)
	app.signup(t, "olga")

	w := app.postForm("/auth/login/", url.Values{
		"username": {"olga"},
		"password": {"wrong"},
	})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid username or password")
}

func TestPasswordResetRendersDonePage(t *testing.T) {
	app := newTestApp(t)
	app.signup(t, "olga")

	for _, email := range []string{"olga@example.com", "nobody@example.com"} {
		w := app.postForm("/auth/password_reset/", url.Values{"email": {email}})
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Check your inbox")
	}
}

func TestProfileShowsFollowerCount(t *testing.T) {
	app := newTestApp(t)
	session, _ := app.signup(t, "olga")
	app.signup(t, "lev")

	app.postForm("/profile/lev/follow/", nil, session)

	w := app.get("/profile/lev/")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "1 follower(s)")
}
