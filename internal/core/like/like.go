package like

import (
	"time"

	"github.com/gofrs/uuid"

	"socialite/internal/core/identity"
)

// Like rows are unique per (owner, post); the index makes the loser of a
// concurrent toggle race fail its insert instead of writing a duplicate.
type Like struct {
	ID        uuid.UUID         `gorm:"primaryKey;type:char(36)"`
	OwnerID   uuid.UUID         `gorm:"type:char(36);not null;uniqueIndex:idx_owner_post"`
	Owner     identity.Identity `gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE"`
	PostID    uuid.UUID         `gorm:"type:char(36);not null;uniqueIndex:idx_owner_post"`
	CreatedAt time.Time         `gorm:"autoCreateTime"`
}
