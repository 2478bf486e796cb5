package repository

import (
	"fmt"

	"channelhub/internal/domain"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Open connects to postgres. TranslateError is required: the repositories
// rely on gorm.ErrDuplicatedKey and gorm.ErrForeignKeyViolated to map
// constraint violations to business errors.
func Open(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	return db, nil
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&domain.User{}, &domain.Channel{}, &domain.Association{})
}
