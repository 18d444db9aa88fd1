package comment

import (
	"time"

	"github.com/gofrs/uuid"

	"socialite/internal/core/identity"
)

type Comment struct {
	ID        uuid.UUID         `gorm:"primaryKey;type:char(36)"`
	OwnerID   uuid.UUID         `gorm:"type:char(36);not null"`
	Owner     identity.Identity `gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE"`
	PostID    uuid.UUID         `gorm:"type:char(36);not null;index"`
	Text      string            `gorm:"type:varchar(255);not null"`
	CreatedAt time.Time         `gorm:"autoCreateTime"`
}
