package httpapi

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"plume/internal/adapters/httpapi/middleware"
	userapp "plume/internal/core/user/service"
)

type AuthController struct {
	users UserUseCase
}

func NewAuthController(users UserUseCase) *AuthController {
	return &AuthController{users: users}
}

func (ctl *AuthController) SignupForm(c *gin.Context) {
	c.HTML(http.StatusOK, "users/signup.html", pageContext(c, gin.H{}))
}

// Signup registers the user and logs them straight in.
func (ctl *AuthController) Signup(c *gin.Context) {
	var form SignupForm
	if err := c.ShouldBind(&form); err != nil {
		c.HTML(http.StatusOK, "users/signup.html", pageContext(c, gin.H{
			"form":   &form,
			"errors": []string{"Please fill in all fields; passwords must match and be at least 8 characters"},
		}))
		return
	}

	_, err := ctl.users.Register(c.Request.Context(), form.FirstName, form.LastName, form.Username, form.Email, form.Password)
	if err != nil {
		msg := "Could not create account"
		if errors.Is(err, userapp.ErrUsernameTaken) {
			msg = "Username or email already taken"
		}
		c.HTML(http.StatusOK, "users/signup.html", pageContext(c, gin.H{
			"form":   &form,
			"errors": []string{msg},
		}))
		return
	}

	res, err := ctl.users.Login(c.Request.Context(), form.Username, form.Password)
	if err != nil {
		c.Redirect(http.StatusFound, "/auth/login/")
		return
	}
	setSessionCookie(c, res.Token)
	c.Redirect(http.StatusFound, "/")
}

func (ctl *AuthController) LoginForm(c *gin.Context) {
	c.HTML(http.StatusOK, "users/login.html", pageContext(c, gin.H{
		"next": c.Query("next"),
	}))
}

// Login checks credentials, sets the session cookie and honors the
// "next" destination when it is a local path.
func (ctl *AuthController) Login(c *gin.Context) {
	var form LoginForm
	if err := c.ShouldBind(&form); err != nil {
		c.HTML(http.StatusOK, "users/login.html", pageContext(c, gin.H{
			"form":   &form,
			"next":   c.PostForm("next"),
			"errors": []string{"Username and password are required"},
		}))
		return
	}

	res, err := ctl.users.Login(c.Request.Context(), form.Username, form.Password)
	if err != nil {
		c.HTML(http.StatusOK, "users/login.html", pageContext(c, gin.H{
			"form":   &form,
			"next":   c.PostForm("next"),
			"errors": []string{"Invalid username or password"},
		}))
		return
	}

	setSessionCookie(c, res.Token)

	next := c.PostForm("next")
	if !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") {
		next = "/"
	}
	c.Redirect(http.StatusFound, next)
}

func (ctl *AuthController) Logout(c *gin.Context) {
	c.SetCookie(middleware.SessionCookie, "", -1, "/", "", false, true)
	c.HTML(http.StatusOK, "users/logged_out.html", pageContext(c, gin.H{}))
}

func (ctl *AuthController) PasswordResetForm(c *gin.Context) {
	c.HTML(http.StatusOK, "users/password_reset_form.html", pageContext(c, gin.H{}))
}

// PasswordReset issues a reset token for the account behind the submitted
// email. The done page renders either way, so addresses cannot be probed.
func (ctl *AuthController) PasswordReset(c *gin.Context) {
	var form PasswordResetForm
	if err := c.ShouldBind(&form); err != nil {
		c.HTML(http.StatusOK, "users/password_reset_form.html", pageContext(c, gin.H{
			"form":   &form,
			"errors": []string{"A valid email address is required"},
		}))
		return
	}

	_, _ = ctl.users.RequestPasswordReset(c.Request.Context(), form.Email)
	c.HTML(http.StatusOK, "users/password_reset_done.html", pageContext(c, gin.H{}))
}

func setSessionCookie(c *gin.Context, token string) {
	c.SetCookie(middleware.SessionCookie, token, 24*3600, "/", "", false, true)
}
