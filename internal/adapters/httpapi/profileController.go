package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"plume/internal/pagination"
	userPort "plume/internal/ports/user"
)

type ProfileController struct {
	users   UserUseCase
	posts   PostUseCase
	follows FollowUseCase
}

func NewProfileController(users UserUseCase, posts PostUseCase, follows FollowUseCase) *ProfileController {
	return &ProfileController{users: users, posts: posts, follows: follows}
}

// Profile shows an author's posts, their follower list, and whether the
// current user follows them.
func (ctl *ProfileController) Profile(c *gin.Context) {
	author, ok := ctl.lookupAuthor(c)
	if !ok {
		return
	}

	page := pagination.PageNumber(c.Query("page"))
	posts, pg, err := ctl.posts.ListByAuthor(c.Request.Context(), author.ID, page)
	if err != nil {
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	followers, err := ctl.follows.FollowersOf(c.Request.Context(), author.ID)
	if err != nil {
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	following := false
	if me := c.GetString("userID"); me != "" && me != author.ID {
		following, _ = ctl.follows.IsFollowing(c.Request.Context(), me, author.ID)
	}

	c.HTML(http.StatusOK, "posts/profile.html", pageContext(c, gin.H{
		"author":    author,
		"posts":     posts,
		"page_obj":  pg,
		"followers": followers,
		"following": following,
	}))
}

// FollowIndex is the personalized feed: posts by every followed author.
func (ctl *ProfileController) FollowIndex(c *gin.Context) {
	me := c.GetString("userID")
	ids, err := ctl.follows.FollowingIDs(c.Request.Context(), me)
	if err != nil {
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	page := pagination.PageNumber(c.Query("page"))
	posts, pg, err := ctl.posts.ListFeed(c.Request.Context(), ids, page)
	if err != nil {
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	c.HTML(http.StatusOK, "posts/follow.html", pageContext(c, gin.H{
		"posts":    posts,
		"page_obj": pg,
	}))
}

// ProfileFollow subscribes the current user to an author. Following
// yourself is a no-op; following twice leaves a single relation.
func (ctl *ProfileController) ProfileFollow(c *gin.Context) {
	author, ok := ctl.lookupAuthor(c)
	if !ok {
		return
	}

	me := c.GetString("userID")
	if me == author.ID {
		ref := c.Request.Referer()
		if ref == "" {
			ref = "/"
		}
		c.Redirect(http.StatusFound, ref)
		return
	}

	if err := ctl.follows.Follow(c.Request.Context(), me, author.ID); err != nil {
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}
	c.Redirect(http.StatusFound, "/profile/"+author.Username+"/")
}

// ProfileUnfollow removes the subscription if present and returns to the feed.
func (ctl *ProfileController) ProfileUnfollow(c *gin.Context) {
	author, ok := ctl.lookupAuthor(c)
	if !ok {
		return
	}

	me := c.GetString("userID")
	if err := ctl.follows.Unfollow(c.Request.Context(), me, author.ID); err != nil {
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}
	c.Redirect(http.StatusFound, "/follow/")
}

func (ctl *ProfileController) lookupAuthor(c *gin.Context) (*userPort.UserDTO, bool) {
	author, err := ctl.users.GetByUsername(c.Request.Context(), c.Param("username"))
	if err != nil {
		if errors.Is(err, userPort.ErrNotFound) {
			renderNotFound(c)
		} else {
			c.AbortWithStatus(http.StatusInternalServerError)
		}
		return nil, false
	}
	return author, true
}
