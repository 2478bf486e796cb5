package domain

import (
	"time"

	"github.com/google/uuid"
)

// Association is one user's membership in one channel. The composite
// primary key (users_id, channels_id) is the authoritative guard against
// duplicate memberships; application-level checks are advisory only.
type Association struct {
	UserID     uuid.UUID `gorm:"column:users_id;type:uuid;primaryKey"`
	ChannelID  uuid.UUID `gorm:"column:channels_id;type:uuid;primaryKey"`
	DateJoined time.Time `gorm:"column:date_joined;not null"`

	// Deletes of a parent must remove dependent rows as an explicit
	// transactional step, so the FK constraints stay RESTRICT.
	User    User    `gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:RESTRICT"`
	Channel Channel `gorm:"foreignKey:ChannelID;references:ID;constraint:OnDelete:RESTRICT"`
}

func (Association) TableName() string {
	return "association"
}
