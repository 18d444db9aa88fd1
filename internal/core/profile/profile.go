package profile

import (
	"time"

	"github.com/gofrs/uuid"

	"socialite/internal/core/identity"
)

const (
	GenderMale   = "Male"
	GenderFemale = "Female"
)

func ValidGender(g string) bool {
	return g == GenderMale || g == GenderFemale
}

type Profile struct {
	ID          uuid.UUID         `gorm:"primaryKey;type:char(36)"`
	OwnerID     uuid.UUID         `gorm:"type:char(36);not null;uniqueIndex"`
	Owner       identity.Identity `gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE"`
	Gender      string            `gorm:"type:varchar(15);not null"`
	Bio         *string           `gorm:"type:varchar(255)"`
	PhoneNumber *string           `gorm:"type:varchar(18)"`
	Image       *string           `gorm:"type:varchar(255)"`
	CreatedAt   time.Time         `gorm:"autoCreateTime"`
	UpdatedAt   time.Time         `gorm:"autoUpdateTime"`
}

// FollowEdge is one directed edge of the follow graph. The pair is a set
// member: the composite unique index rejects a second identical edge.
type FollowEdge struct {
	ID         uuid.UUID `gorm:"primaryKey;type:char(36)"`
	FollowerID uuid.UUID `gorm:"type:char(36);not null;uniqueIndex:idx_follower_followee"`
	FolloweeID uuid.UUID `gorm:"type:char(36);not null;uniqueIndex:idx_follower_followee"`
	Follower   Profile   `gorm:"foreignKey:FollowerID;constraint:OnDelete:CASCADE"`
	Followee   Profile   `gorm:"foreignKey:FolloweeID;constraint:OnDelete:CASCADE"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
}
