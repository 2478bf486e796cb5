package repository

import (
	"context"

	"channelhub/internal/application/usecase"

	"gorm.io/gorm"
)

// GormTxManager binds one gorm transaction to one operation. gorm commits
// on nil error and rolls back on error or panic, and the pooled connection
// is released on every path.
type GormTxManager struct {
	db *gorm.DB
}

func NewTxManager(db *gorm.DB) *GormTxManager {
	return &GormTxManager{db: db}
}

func (m *GormTxManager) WithinTx(ctx context.Context, fn func(r usecase.Repositories) error) error {
	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewRepositories(tx))
	})
}

// NewRepositories builds the repository bundle on top of one handle, either
// the shared pool or an open transaction.
func NewRepositories(db *gorm.DB) usecase.Repositories {
	return usecase.Repositories{
		Users:        NewUserRepository(db),
		Channels:     NewChannelRepository(db),
		Associations: NewAssociationRepository(db),
	}
}
