package domain

import (
	"time"

	"github.com/google/uuid"
)

// MembershipInfo is one resolved membership row inside a user projection.
type MembershipInfo struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	DateJoined time.Time `json:"date_joined"`
}

// UserProjection is the caller-facing shape of a User. The field list is an
// explicit whitelist: hashed_password must never appear here.
type UserProjection struct {
	ID          uuid.UUID        `json:"id"`
	Email       string           `json:"email"`
	Username    string           `json:"username"`
	IsActive    bool             `json:"is_active"`
	DateCreated time.Time        `json:"date_created"`
	Channels    []MembershipInfo `json:"channels"`
}

type ChannelProjection struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	DateCreated time.Time `json:"date_created"`
}

func ProjectUser(u *User, channels []MembershipInfo) UserProjection {
	if channels == nil {
		channels = []MembershipInfo{}
	}
	return UserProjection{
		ID:          u.ID,
		Email:       u.Email,
		Username:    u.Username,
		IsActive:    u.IsActive,
		DateCreated: u.DateCreated,
		Channels:    channels,
	}
}

func ProjectChannel(c *Channel) ChannelProjection {
	return ChannelProjection{
		ID:          c.ID,
		Name:        c.Name,
		DateCreated: c.DateCreated,
	}
}
