package post

import (
	"time"

	"github.com/gofrs/uuid"

	"socialite/internal/core/comment"
	"socialite/internal/core/identity"
	"socialite/internal/core/like"
)

type Post struct {
	ID        uuid.UUID         `gorm:"primaryKey;type:char(36)"`
	OwnerID   uuid.UUID         `gorm:"type:char(36);not null"`
	Owner     identity.Identity `gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE"`
	Text      string            `gorm:"type:varchar(255);not null"`
	Hashtag   *string           `gorm:"type:varchar(125)"`
	Image     *string           `gorm:"type:varchar(255)"`
	CreatedAt time.Time         `gorm:"autoCreateTime"`

	Comments []comment.Comment `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE"`
	Likes    []like.Like       `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE"`

	// Filled by the list queries, never stored.
	CommentsCount int64 `gorm:"->;-:migration"`
	LikesCount    int64 `gorm:"->;-:migration"`
}
