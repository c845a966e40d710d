package httpapi

import (
	"errors"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gofrs/uuid"
)

// Form structs bound from request bodies. Binding tags carry the
// required-field rules; anything beyond that is validated in the services.

type PostForm struct {
	Text  string `form:"text" binding:"required"`
	Group string `form:"group"`
}

type CommentForm struct {
	Text string `form:"text" binding:"required"`
}

type SignupForm struct {
	FirstName string `form:"first_name"`
	LastName  string `form:"last_name"`
	Username  string `form:"username" binding:"required"`
	Email     string `form:"email" binding:"required,email"`
	Password  string `form:"password" binding:"required,min=8"`
	Password2 string `form:"password2" binding:"required,eqfield=Password"`
}

type LoginForm struct {
	Username string `form:"username" binding:"required"`
	Password string `form:"password" binding:"required"`
}

type PasswordResetForm struct {
	Email string `form:"email" binding:"required,email"`
}

var errBadImageType = errors.New("image must be a .jpg, .jpeg, .png or .gif file")

var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
}

// saveImage stores an uploaded illustration under mediaRoot/posts/ and
// returns its media-relative path.
func saveImage(c *gin.Context, file *multipart.FileHeader, mediaRoot string) (string, error) {
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !imageExtensions[ext] {
		return "", errBadImageType
	}

	name := uuid.Must(uuid.NewV4()).String() + ext
	rel := filepath.Join("posts", name)
	if err := c.SaveUploadedFile(file, filepath.Join(mediaRoot, rel)); err != nil {
		return "", err
	}
	return filepath.ToSlash(rel), nil
}
