package domain

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	Email          string    `gorm:"uniqueIndex;not null;size:100"`
	Username       string    `gorm:"uniqueIndex;not null;size:100"`
	HashedPassword string    `gorm:"not null"`
	IsActive       bool      `gorm:"not null;default:true"`
	DateCreated    time.Time `gorm:"not null"`
}

func (User) TableName() string {
	return "users"
}
