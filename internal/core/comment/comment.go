package comment

import (
	"time"

	"github.com/gofrs/uuid"

	"plume/internal/core/post"
	"plume/internal/core/user"
)

type Comment struct {
	ID       uuid.UUID `gorm:"primary_key;type:char(36)"`
	PostID   uuid.UUID `gorm:"type:char(36);not null;index"`
	Post     post.Post `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE"`
	AuthorID uuid.UUID `gorm:"type:char(36);not null"`
	Author   user.User `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`
	Text     string    `gorm:"type:text;not null"`
	Created  time.Time `gorm:"autoCreateTime;index"`
}
