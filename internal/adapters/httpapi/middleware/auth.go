package middleware

import (
	"errors"
	"net/http"

	"github.com/dgrijalva/jwt-go"
	"github.com/gin-gonic/gin"
)

// SessionCookie is the cookie holding the signed session token.
const SessionCookie = "session"

type sessionClaims struct {
	Username string `json:"username"`
	jwt.StandardClaims
}

// CurrentUser annotates the request with the logged-in user, if the
// session cookie carries a valid token. It never rejects the request.
func CurrentUser(jwtKey []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		if claims, err := parseSession(c, jwtKey); err == nil {
			c.Set("userID", claims.Subject)
			c.Set("username", claims.Username)
		}
		c.Next()
	}
}

// LoginRequired gates a route behind authentication. Anonymous requests
// are redirected to the login page with the original path in "next".
func LoginRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := c.Get("userID"); !ok {
			c.Redirect(http.StatusFound, "/auth/login/?next="+c.Request.URL.Path)
			c.Abort()
			return
		}
		c.Next()
	}
}

func parseSession(c *gin.Context, jwtKey []byte) (*sessionClaims, error) {
	cookie, err := c.Cookie(SessionCookie)
	if err != nil || cookie == "" {
		return nil, errors.New("no session cookie")
	}

	claims := &sessionClaims{}
	token, err := jwt.ParseWithClaims(cookie, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return jwtKey, nil
	})
	if err != nil || !token.Valid {
		return nil, errors.New("invalid session token")
	}
	return claims, nil
}
