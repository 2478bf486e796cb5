package usecase

import (
	"context"
	"strings"
	"time"

	"channelhub/internal/domain"
	"channelhub/internal/validation"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// MembershipUseCase implements the transactional core: CRUD for users and
// channels plus join/leave of the association relation. Every write runs
// inside one TxManager scope; reads go against the pool-bound repositories.
type MembershipUseCase struct {
	repos Repositories
	tx    TxManager
	cache ChannelCache
	log   *zap.Logger
}

func NewMembershipUseCase(repos Repositories, tx TxManager, cache ChannelCache, log *zap.Logger) *MembershipUseCase {
	return &MembershipUseCase{
		repos: repos,
		tx:    tx,
		cache: cache,
		log:   log,
	}
}

type CreateUserInput struct {
	Email          string
	Username       string
	HashedPassword string
	IsActive       *bool
}

type UpdateUserInput struct {
	Email          *string
	Username       *string
	HashedPassword *string
	IsActive       *bool
}

type CreateChannelInput struct {
	Name string
}

func (uc *MembershipUseCase) CreateUser(ctx context.Context, in CreateUserInput) (domain.UserProjection, error) {
	if err := validation.ValidateEmail(in.Email); err != nil {
		return domain.UserProjection{}, err
	}
	if err := validation.ValidateUsername(in.Username); err != nil {
		return domain.UserProjection{}, err
	}
	if err := validation.ValidatePassword(in.HashedPassword); err != nil {
		return domain.UserProjection{}, err
	}

	user := &domain.User{
		ID:             uuid.New(),
		Email:          strings.TrimSpace(in.Email),
		Username:       strings.TrimSpace(in.Username),
		HashedPassword: in.HashedPassword,
		IsActive:       true,
		DateCreated:    time.Now().UTC(),
	}
	if in.IsActive != nil {
		user.IsActive = *in.IsActive
	}

	// No pre-check for a taken email or username: the unique indexes decide,
	// so two concurrent creates yield exactly one success.
	err := uc.tx.WithinTx(ctx, func(r Repositories) error {
		return r.Users.Create(ctx, user)
	})
	if err != nil {
		return domain.UserProjection{}, err
	}

	uc.log.Info("user created", zap.String("user_id", user.ID.String()))
	return domain.ProjectUser(user, nil), nil
}

func (uc *MembershipUseCase) GetUser(ctx context.Context, id uuid.UUID) (domain.UserProjection, error) {
	user, err := uc.repos.Users.GetByID(ctx, id)
	if err != nil {
		return domain.UserProjection{}, err
	}
	channels, err := uc.repos.Associations.MembershipsByUser(ctx, id)
	if err != nil {
		return domain.UserProjection{}, err
	}
	return domain.ProjectUser(user, channels), nil
}

func (uc *MembershipUseCase) ListUsers(ctx context.Context) ([]domain.UserProjection, error) {
	users, err := uc.repos.Users.List(ctx)
	if err != nil {
		return nil, err
	}
	projections := make([]domain.UserProjection, 0, len(users))
	for i := range users {
		channels, err := uc.repos.Associations.MembershipsByUser(ctx, users[i].ID)
		if err != nil {
			return nil, err
		}
		projections = append(projections, domain.ProjectUser(&users[i], channels))
	}
	return projections, nil
}

func (uc *MembershipUseCase) UpdateUser(ctx context.Context, id uuid.UUID, in UpdateUserInput) (domain.UserProjection, error) {
	if in.Email != nil {
		if err := validation.ValidateEmail(*in.Email); err != nil {
			return domain.UserProjection{}, err
		}
	}
	if in.Username != nil {
		if err := validation.ValidateUsername(*in.Username); err != nil {
			return domain.UserProjection{}, err
		}
	}
	if in.HashedPassword != nil {
		if err := validation.ValidatePassword(*in.HashedPassword); err != nil {
			return domain.UserProjection{}, err
		}
	}

	var updated *domain.User
	err := uc.tx.WithinTx(ctx, func(r Repositories) error {
		user, err := r.Users.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if in.Email != nil {
			user.Email = strings.TrimSpace(*in.Email)
		}
		if in.Username != nil {
			user.Username = strings.TrimSpace(*in.Username)
		}
		if in.HashedPassword != nil {
			user.HashedPassword = *in.HashedPassword
		}
		if in.IsActive != nil {
			user.IsActive = *in.IsActive
		}
		if err := r.Users.Update(ctx, user); err != nil {
			return err
		}
		updated = user
		return nil
	})
	if err != nil {
		return domain.UserProjection{}, err
	}

	channels, err := uc.repos.Associations.MembershipsByUser(ctx, id)
	if err != nil {
		return domain.UserProjection{}, err
	}
	return domain.ProjectUser(updated, channels), nil
}

// DeleteUser removes the user and, in the same transaction, every
// association referencing it. The projection is captured before the delete.
func (uc *MembershipUseCase) DeleteUser(ctx context.Context, id uuid.UUID) (domain.UserProjection, error) {
	var projection domain.UserProjection
	err := uc.tx.WithinTx(ctx, func(r Repositories) error {
		user, err := r.Users.GetByID(ctx, id)
		if err != nil {
			return err
		}
		channels, err := r.Associations.MembershipsByUser(ctx, id)
		if err != nil {
			return err
		}
		projection = domain.ProjectUser(user, channels)

		if err := r.Associations.DeleteByUser(ctx, id); err != nil {
			return err
		}
		return r.Users.Delete(ctx, id)
	})
	if err != nil {
		return domain.UserProjection{}, err
	}

	uc.log.Info("user deleted", zap.String("user_id", id.String()))
	return projection, nil
}

func (uc *MembershipUseCase) CreateChannel(ctx context.Context, in CreateChannelInput) (domain.ChannelProjection, error) {
	if err := validation.ValidateChannelName(in.Name); err != nil {
		return domain.ChannelProjection{}, err
	}

	channel := &domain.Channel{
		ID:          uuid.New(),
		Name:        strings.TrimSpace(in.Name),
		DateCreated: time.Now().UTC(),
	}
	err := uc.tx.WithinTx(ctx, func(r Repositories) error {
		return r.Channels.Create(ctx, channel)
	})
	if err != nil {
		return domain.ChannelProjection{}, err
	}

	uc.cache.Invalidate(ctx)
	uc.log.Info("channel created", zap.String("channel_id", channel.ID.String()), zap.String("name", channel.Name))
	return domain.ProjectChannel(channel), nil
}

func (uc *MembershipUseCase) GetChannel(ctx context.Context, id uuid.UUID) (domain.ChannelProjection, error) {
	channel, err := uc.repos.Channels.GetByID(ctx, id)
	if err != nil {
		return domain.ChannelProjection{}, err
	}
	return domain.ProjectChannel(channel), nil
}

func (uc *MembershipUseCase) ListChannels(ctx context.Context) ([]domain.ChannelProjection, error) {
	if cached, ok := uc.cache.Get(ctx); ok {
		return cached, nil
	}
	channels, err := uc.repos.Channels.List(ctx)
	if err != nil {
		return nil, err
	}
	projections := make([]domain.ChannelProjection, 0, len(channels))
	for i := range channels {
		projections = append(projections, domain.ProjectChannel(&channels[i]))
	}
	uc.cache.Set(ctx, projections)
	return projections, nil
}

// JoinChannel runs existence and membership checks and the insert inside
// one transaction. The checks are advisory; the composite primary key is
// the authoritative guard, so a concurrent duplicate join surfaces as
// ErrAlreadyMember from the constraint rather than a second row.
func (uc *MembershipUseCase) JoinChannel(ctx context.Context, userID, channelID uuid.UUID) error {
	err := uc.tx.WithinTx(ctx, func(r Repositories) error {
		if _, err := r.Channels.GetByID(ctx, channelID); err != nil {
			return err
		}
		if _, err := r.Users.GetByID(ctx, userID); err != nil {
			return err
		}
		member, err := r.Associations.Exists(ctx, userID, channelID)
		if err != nil {
			return err
		}
		if member {
			return domain.ErrAlreadyMember
		}
		return r.Associations.Create(ctx, &domain.Association{
			UserID:     userID,
			ChannelID:  channelID,
			DateJoined: time.Now().UTC(),
		})
	})
	if err != nil {
		return err
	}

	uc.log.Info("user joined channel",
		zap.String("user_id", userID.String()),
		zap.String("channel_id", channelID.String()))
	return nil
}

// LeaveChannel deletes the membership row. Leaving an already-absent
// membership is ErrMembershipNotFound, not a silent success.
func (uc *MembershipUseCase) LeaveChannel(ctx context.Context, userID, channelID uuid.UUID) error {
	err := uc.tx.WithinTx(ctx, func(r Repositories) error {
		return r.Associations.Delete(ctx, userID, channelID)
	})
	if err != nil {
		return err
	}

	uc.log.Info("user left channel",
		zap.String("user_id", userID.String()),
		zap.String("channel_id", channelID.String()))
	return nil
}
