package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// pageContext merges the shared template values (current user, CSRF token)
// into a handler's context map.
func pageContext(c *gin.Context, ctx gin.H) gin.H {
	if ctx == nil {
		ctx = gin.H{}
	}
	if v, ok := c.Get("csrf_token"); ok {
		ctx["csrf_token"] = v
	}
	if v, ok := c.Get("username"); ok {
		ctx["user"] = v
	}
	return ctx
}

// renderNotFound renders the custom 404 page with the attempted path.
func renderNotFound(c *gin.Context) {
	c.HTML(http.StatusNotFound, "core/404.html", pageContext(c, gin.H{
		"path": c.Request.URL.Path,
	}))
}
