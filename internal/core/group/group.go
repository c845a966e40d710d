package group

import (
	"time"

	"github.com/gofrs/uuid"
)

type Group struct {
	ID          uuid.UUID `gorm:"primary_key;type:char(36)"`
	Title       string    `gorm:"size:200;not null"`
	Slug        string    `gorm:"unique;not null"`
	Description string    `gorm:"type:text"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
}
