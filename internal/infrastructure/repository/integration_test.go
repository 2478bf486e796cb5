//go:build integration
// +build integration

package repository_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"channelhub/internal/application/usecase"
	"channelhub/internal/domain"
	"channelhub/internal/infrastructure/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/gorm"
)

// setupTestDB starts a postgres container and returns a migrated handle.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err, "failed to start postgres container")
	t.Cleanup(func() {
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := repository.Open(connStr)
	require.NoError(t, err)
	require.NoError(t, repository.Migrate(db))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, email, username string) *domain.User {
	t.Helper()
	user := &domain.User{
		ID:             uuid.New(),
		Email:          email,
		Username:       username,
		HashedPassword: "h",
		IsActive:       true,
		DateCreated:    time.Now().UTC(),
	}
	require.NoError(t, repository.NewUserRepository(db).Create(context.Background(), user))
	return user
}

func seedChannel(t *testing.T, db *gorm.DB, name string) *domain.Channel {
	t.Helper()
	channel := &domain.Channel{
		ID:          uuid.New(),
		Name:        name,
		DateCreated: time.Now().UTC(),
	}
	require.NoError(t, repository.NewChannelRepository(db).Create(context.Background(), channel))
	return channel
}

func TestUniqueEmailConstraint(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewUserRepository(db)
	ctx := context.Background()

	seedUser(t, db, "a@x.com", "@a")
	err := repo.Create(ctx, &domain.User{
		ID:             uuid.New(),
		Email:          "a@x.com",
		Username:       "@other",
		HashedPassword: "h",
		DateCreated:    time.Now().UTC(),
	})

	assert.ErrorIs(t, err, domain.ErrUserAlreadyExists)
}

func TestConcurrentDuplicateCreate(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewUserRepository(db)
	ctx := context.Background()

	errs := make([]error, 2)
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = repo.Create(ctx, &domain.User{
				ID:             uuid.New(),
				Email:          "race@x.com",
				Username:       "@race" + uuid.NewString(),
				HashedPassword: "h",
				DateCreated:    time.Now().UTC(),
			})
		}(i)
	}
	wg.Wait()

	// Exactly one insert wins; the other hits the unique index.
	successes, conflicts := 0, 0
	for _, err := range errs {
		switch {
		case err == nil:
			successes++
		case assert.ErrorIs(t, err, domain.ErrUserAlreadyExists):
			conflicts++
		}
	}
	assert.Equal(t, 1, successes)
	assert.Equal(t, 1, conflicts)
}

func TestDuplicateJoinConstraint(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewAssociationRepository(db)
	ctx := context.Background()

	user := seedUser(t, db, "a@x.com", "@a")
	channel := seedChannel(t, db, "general")

	assoc := &domain.Association{UserID: user.ID, ChannelID: channel.ID, DateJoined: time.Now().UTC()}
	require.NoError(t, repo.Create(ctx, assoc))

	err := repo.Create(ctx, &domain.Association{UserID: user.ID, ChannelID: channel.ID, DateJoined: time.Now().UTC()})
	assert.ErrorIs(t, err, domain.ErrAlreadyMember)

	var count int64
	require.NoError(t, db.Model(&domain.Association{}).
		Where("users_id = ? AND channels_id = ?", user.ID, channel.ID).
		Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestAssociationReferentialIntegrity(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewAssociationRepository(db)
	ctx := context.Background()

	err := repo.Create(ctx, &domain.Association{
		UserID:     uuid.New(),
		ChannelID:  uuid.New(),
		DateJoined: time.Now().UTC(),
	})

	assert.ErrorIs(t, err, domain.ErrMemberReferenceGone)
}

func TestTransactionRollback(t *testing.T) {
	db := setupTestDB(t)
	tm := repository.NewTxManager(db)
	ctx := context.Background()

	userID := uuid.New()

	err := tm.WithinTx(ctx, func(r usecase.Repositories) error {
		if err := r.Users.Create(ctx, &domain.User{
			ID:             userID,
			Email:          "a@x.com",
			Username:       "@a",
			HashedPassword: "h",
			DateCreated:    time.Now().UTC(),
		}); err != nil {
			return err
		}
		// Force a rollback after a successful write.
		return r.Associations.Create(ctx, &domain.Association{
			UserID:     userID,
			ChannelID:  uuid.New(), // no such channel
			DateJoined: time.Now().UTC(),
		})
	})
	require.Error(t, err)

	_, err = repository.NewUserRepository(db).GetByID(ctx, userID)
	assert.ErrorIs(t, err, domain.ErrUserNotFound, "rolled-back user must not be visible")
}

func TestDeleteUserCascade(t *testing.T) {
	db := setupTestDB(t)
	tm := repository.NewTxManager(db)
	ctx := context.Background()

	user := seedUser(t, db, "a@x.com", "@a")
	channel := seedChannel(t, db, "general")
	require.NoError(t, repository.NewAssociationRepository(db).Create(ctx, &domain.Association{
		UserID:     user.ID,
		ChannelID:  channel.ID,
		DateJoined: time.Now().UTC(),
	}))

	// Dependent rows first, then the parent, in one transaction. The
	// RESTRICT constraint makes the opposite order fail.
	err := tm.WithinTx(ctx, func(r usecase.Repositories) error {
		if err := r.Associations.DeleteByUser(ctx, user.ID); err != nil {
			return err
		}
		return r.Users.Delete(ctx, user.ID)
	})
	require.NoError(t, err)

	var count int64
	require.NoError(t, db.Model(&domain.Association{}).
		Where("users_id = ?", user.ID).
		Count(&count).Error)
	assert.EqualValues(t, 0, count)
}

func TestMembershipsByUser(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewAssociationRepository(db)
	ctx := context.Background()

	user := seedUser(t, db, "a@x.com", "@a")
	general := seedChannel(t, db, "general")
	random := seedChannel(t, db, "random")
	for _, ch := range []*domain.Channel{general, random} {
		require.NoError(t, repo.Create(ctx, &domain.Association{
			UserID:     user.ID,
			ChannelID:  ch.ID,
			DateJoined: time.Now().UTC(),
		}))
	}

	infos, err := repo.MembershipsByUser(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, infos, 2)
	names := []string{infos[0].Name, infos[1].Name}
	assert.Contains(t, names, "general")
	assert.Contains(t, names, "random")
}
