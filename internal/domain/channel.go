package domain

import (
	"time"

	"github.com/google/uuid"
)

type Channel struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name        string    `gorm:"uniqueIndex;not null;size:100"`
	DateCreated time.Time `gorm:"not null"`
}

func (Channel) TableName() string {
	return "channels"
}
