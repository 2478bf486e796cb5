package validation_test

import (
	"errors"
	"testing"

	"channelhub/internal/validation"

	"github.com/stretchr/testify/assert"
)

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		name    string
		email   string
		wantErr bool
	}{
		{"valid", "a@x.com", false},
		{"valid with plus", "a+tag@example.org", false},
		{"leading space trimmed", " a@x.com", false},
		{"empty", "", true},
		{"missing domain", "a@", true},
		{"missing at sign", "ax.com", true},
		{"no tld", "a@x", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validation.ValidateEmail(tt.email)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateEmailFieldName(t *testing.T) {
	err := validation.ValidateEmail("not-an-email")
	var fieldErr *validation.FieldError
	assert.True(t, errors.As(err, &fieldErr))
	assert.Equal(t, "email", fieldErr.Field)
}

func TestValidateUsername(t *testing.T) {
	tests := []struct {
		name     string
		username string
		wantErr  bool
	}{
		{"valid", "@alice", false},
		{"missing marker", "alice", true},
		{"marker only", "@", true},
		{"empty", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validation.ValidateUsername(tt.username)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateUsernameFieldName(t *testing.T) {
	err := validation.ValidateUsername("bob")
	var fieldErr *validation.FieldError
	assert.True(t, errors.As(err, &fieldErr))
	assert.Equal(t, "username", fieldErr.Field)
}

func TestValidatePassword(t *testing.T) {
	assert.NoError(t, validation.ValidatePassword("h"))
	assert.Error(t, validation.ValidatePassword(""))
}

func TestValidateChannelName(t *testing.T) {
	assert.NoError(t, validation.ValidateChannelName("general"))
	assert.Error(t, validation.ValidateChannelName(""))
	assert.Error(t, validation.ValidateChannelName("   "))
}
