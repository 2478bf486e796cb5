package domain

import "errors"

var (
	ErrUserNotFound         = errors.New("user not found")
	ErrUserAlreadyExists    = errors.New("user with this email or username already exists")
	ErrChannelNotFound      = errors.New("channel does not exist")
	ErrChannelAlreadyExists = errors.New("channel with this name already exists")
	ErrAlreadyMember        = errors.New("user is already a member of this channel")
	ErrMembershipNotFound   = errors.New("membership not found")
	ErrMemberReferenceGone  = errors.New("user or channel no longer exists")
)
