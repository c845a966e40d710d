package post

import (
	"time"

	"github.com/gofrs/uuid"

	"plume/internal/core/group"
	"plume/internal/core/user"
)

type Post struct {
	ID       uuid.UUID  `gorm:"primary_key;type:char(36)"`
	Text     string     `gorm:"type:text;not null"`
	PubDate  time.Time  `gorm:"autoCreateTime;index"`
	AuthorID uuid.UUID  `gorm:"type:char(36);not null;index"`
	Author   user.User  `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`
	GroupID  *uuid.UUID `gorm:"type:char(36);index"`
	Group    *group.Group `gorm:"foreignKey:GroupID;constraint:OnDelete:SET NULL"`
	// Image is the media-relative path of the optional illustration.
	Image string
}
