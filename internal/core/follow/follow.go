package follow

import (
	"time"

	"github.com/gofrs/uuid"

	"plume/internal/core/user"
)

// Follow is a directed subscription: UserID follows AuthorID.
// The pair is unique and self-subscriptions are rejected at the schema level.
type Follow struct {
	ID        uuid.UUID `gorm:"primary_key;type:char(36)"`
	UserID    uuid.UUID `gorm:"type:char(36);not null;uniqueIndex:uniq_author_user;check:chk_no_self_follow,user_id <> author_id"`
	User      user.User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	AuthorID  uuid.UUID `gorm:"type:char(36);not null;uniqueIndex:uniq_author_user"`
	Author    user.User `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}
