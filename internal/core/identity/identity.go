package identity

import (
	"strings"
	"time"

	"github.com/gofrs/uuid"
)

type Identity struct {
	ID        uuid.UUID `gorm:"primaryKey;type:char(36)"`
	Email     string    `gorm:"unique;not null"`
	FirstName string    `gorm:"type:varchar(150)"`
	LastName  string    `gorm:"type:varchar(150)"`
	Password  string    `gorm:"not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (i *Identity) FullName() string {
	return strings.TrimSpace(i.FirstName + " " + i.LastName)
}
