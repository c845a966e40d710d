package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	commentapp "plume/internal/core/comment/service"
	postapp "plume/internal/core/post/service"
	"plume/internal/pagination"
	groupPort "plume/internal/ports/group"
	postPort "plume/internal/ports/post"
)

type PostController struct {
	posts     PostUseCase
	groups    GroupUseCase
	comments  CommentUseCase
	mediaRoot string
}

func NewPostController(posts PostUseCase, groups GroupUseCase, comments CommentUseCase, mediaRoot string) *PostController {
	return &PostController{posts: posts, groups: groups, comments: comments, mediaRoot: mediaRoot}
}

// Index is the front page: all posts, newest first, paginated.
func (ctl *PostController) Index(c *gin.Context) {
	page := pagination.PageNumber(c.Query("page"))
	posts, pg, err := ctl.posts.ListAll(c.Request.Context(), page)
	if err != nil {
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}
	c.HTML(http.StatusOK, "posts/index.html", pageContext(c, gin.H{
		"posts":    posts,
		"page_obj": pg,
	}))
}

// GroupPosts lists the posts filed under one group.
func (ctl *PostController) GroupPosts(c *gin.Context) {
	g, err := ctl.groups.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		if errors.Is(err, groupPort.ErrNotFound) {
			renderNotFound(c)
			return
		}
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	page := pagination.PageNumber(c.Query("page"))
	posts, pg, err := ctl.posts.ListByGroup(c.Request.Context(), g.ID, page)
	if err != nil {
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}
	c.HTML(http.StatusOK, "posts/group_list.html", pageContext(c, gin.H{
		"group":    g,
		"posts":    posts,
		"page_obj": pg,
	}))
}

// PostDetail shows one post with its comments and an empty comment form.
func (ctl *PostController) PostDetail(c *gin.Context) {
	id := c.Param("id")
	p, err := ctl.posts.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, postPort.ErrNotFound) {
			renderNotFound(c)
			return
		}
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	var postsCount int64
	if p.Author != nil {
		postsCount, _ = ctl.posts.CountByAuthor(c.Request.Context(), p.Author.ID)
	}
	comments, err := ctl.comments.ListByPost(c.Request.Context(), id)
	if err != nil {
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	c.HTML(http.StatusOK, "posts/post_detail.html", pageContext(c, gin.H{
		"post":        p,
		"posts_count": postsCount,
		"comments":    comments,
	}))
}

// PostCreateForm renders the empty post form.
func (ctl *PostController) PostCreateForm(c *gin.Context) {
	ctl.renderPostForm(c, &PostForm{}, nil, gin.H{})
}

// PostCreate validates the submission and persists a post for the
// current user, then redirects to their profile.
func (ctl *PostController) PostCreate(c *gin.Context) {
	form, groupID, image, errs := ctl.bindPostForm(c)
	if len(errs) > 0 {
		ctl.renderPostForm(c, form, errs, gin.H{})
		return
	}

	userID := c.GetString("userID")
	if _, err := ctl.posts.Create(c.Request.Context(), form.Text, userID, groupID, image); err != nil {
		if errors.Is(err, postapp.ErrEmptyText) {
			ctl.renderPostForm(c, form, []string{err.Error()}, gin.H{})
			return
		}
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	c.Redirect(http.StatusFound, "/profile/"+c.GetString("username")+"/")
}

// PostEditForm renders the pre-filled form, or bounces a non-author
// to the detail page.
func (ctl *PostController) PostEditForm(c *gin.Context) {
	id := c.Param("id")
	p, ok := ctl.loadForEdit(c, id)
	if !ok {
		return
	}

	form := &PostForm{Text: p.Text}
	if p.Group != nil {
		form.Group = p.Group.Slug
	}
	ctl.renderPostForm(c, form, nil, gin.H{"is_edit": true, "post_id": id})
}

// PostEdit validates and persists an edit, then redirects to the detail page.
func (ctl *PostController) PostEdit(c *gin.Context) {
	id := c.Param("id")
	if _, ok := ctl.loadForEdit(c, id); !ok {
		return
	}

	form, groupID, image, errs := ctl.bindPostForm(c)
	if len(errs) > 0 {
		ctl.renderPostForm(c, form, errs, gin.H{"is_edit": true, "post_id": id})
		return
	}

	userID := c.GetString("userID")
	_, err := ctl.posts.Update(c.Request.Context(), id, userID, form.Text, groupID, image)
	switch {
	case err == nil, errors.Is(err, postapp.ErrNotOwner):
		c.Redirect(http.StatusFound, "/posts/"+id+"/")
	case errors.Is(err, postapp.ErrEmptyText):
		ctl.renderPostForm(c, form, []string{err.Error()}, gin.H{"is_edit": true, "post_id": id})
	case errors.Is(err, postPort.ErrNotFound):
		renderNotFound(c)
	default:
		c.AbortWithStatus(http.StatusInternalServerError)
	}
}

// AddComment attaches a comment by the current user and always redirects
// back to the detail page. Invalid text is dropped silently.
func (ctl *PostController) AddComment(c *gin.Context) {
	id := c.Param("id")
	if _, err := ctl.posts.GetByID(c.Request.Context(), id); err != nil {
		if errors.Is(err, postPort.ErrNotFound) {
			renderNotFound(c)
			return
		}
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	var form CommentForm
	if err := c.ShouldBind(&form); err == nil {
		userID := c.GetString("userID")
		if _, err := ctl.comments.Add(c.Request.Context(), id, userID, form.Text); err != nil &&
			!errors.Is(err, commentapp.ErrEmptyText) {
			c.AbortWithStatus(http.StatusInternalServerError)
			return
		}
	}

	c.Redirect(http.StatusFound, "/posts/"+id+"/")
}

// loadForEdit fetches the post and enforces the author-only rule: a
// non-author is redirected to the detail page, never shown the form.
func (ctl *PostController) loadForEdit(c *gin.Context, id string) (*postPort.PostDTO, bool) {
	p, err := ctl.posts.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, postPort.ErrNotFound) {
			renderNotFound(c)
		} else {
			c.AbortWithStatus(http.StatusInternalServerError)
		}
		return nil, false
	}

	author := ""
	if p.Author != nil {
		author = p.Author.ID
	}
	if author != c.GetString("userID") {
		c.Redirect(http.StatusFound, "/posts/"+id+"/")
		c.Abort()
		return nil, false
	}
	return p, true
}

// bindPostForm binds the post form, resolves the optional group slug and
// stores the optional image upload.
func (ctl *PostController) bindPostForm(c *gin.Context) (*PostForm, *string, string, []string) {
	var form PostForm
	var errs []string

	if err := c.ShouldBind(&form); err != nil {
		errs = append(errs, "Post text is required")
		return &form, nil, "", errs
	}

	var groupID *string
	if form.Group != "" {
		g, err := ctl.groups.GetBySlug(c.Request.Context(), form.Group)
		if err != nil {
			errs = append(errs, "Unknown group")
			return &form, nil, "", errs
		}
		groupID = &g.ID
	}

	image := ""
	if file, err := c.FormFile("image"); err == nil && file != nil {
		image, err = saveImage(c, file, ctl.mediaRoot)
		if err != nil {
			errs = append(errs, err.Error())
			return &form, nil, "", errs
		}
	}

	return &form, groupID, image, nil
}

func (ctl *PostController) renderPostForm(c *gin.Context, form *PostForm, errs []string, extra gin.H) {
	groups, err := ctl.groups.List(c.Request.Context())
	if err != nil {
		groups = nil
	}

	ctx := gin.H{
		"form":   form,
		"groups": groups,
		"errors": errs,
	}
	for k, v := range extra {
		ctx[k] = v
	}
	c.HTML(http.StatusOK, "posts/post_create.html", pageContext(c, ctx))
}
