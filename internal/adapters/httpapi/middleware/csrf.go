package middleware

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"net/http"

	"github.com/gin-gonic/gin"
)

// CSRFCookie is the double-submit token cookie.
const CSRFCookie = "csrf_token"

// CSRF implements double-submit-cookie request-forgery protection.
// Safe methods only ensure the token cookie exists; mutating requests must
// echo it back in the csrf_token form field or the X-CSRF-Token header.
// A mismatch renders the custom 403 page.
func CSRF() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(CSRFCookie)
		if err != nil || token == "" {
			token = newToken()
			c.SetCookie(CSRFCookie, token, 7*24*3600, "/", "", false, false)
		}
		c.Set("csrf_token", token)

		switch c.Request.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
		default:
			sent := c.PostForm("csrf_token")
			if sent == "" {
				sent = c.GetHeader("X-CSRF-Token")
			}
			if subtle.ConstantTimeCompare([]byte(sent), []byte(token)) != 1 {
				c.HTML(http.StatusForbidden, "core/403csrf.html", gin.H{})
				c.Abort()
				return
			}
		}
		c.Next()
	}
}

func newToken() string {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		panic(err)
	}
	return hex.EncodeToString(b)
}
