package usecase

import (
	"context"

	"channelhub/internal/domain"

	"github.com/google/uuid"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type ChannelRepository interface {
	Create(ctx context.Context, channel *domain.Channel) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Channel, error)
	List(ctx context.Context) ([]domain.Channel, error)
}

type AssociationRepository interface {
	Create(ctx context.Context, assoc *domain.Association) error
	Exists(ctx context.Context, userID, channelID uuid.UUID) (bool, error)
	Delete(ctx context.Context, userID, channelID uuid.UUID) error
	DeleteByUser(ctx context.Context, userID uuid.UUID) error
	MembershipsByUser(ctx context.Context, userID uuid.UUID) ([]domain.MembershipInfo, error)
}

// Repositories bundles the repositories bound to one storage handle, either
// the shared pool or a single open transaction.
type Repositories struct {
	Users        UserRepository
	Channels     ChannelRepository
	Associations AssociationRepository
}

// TxManager runs fn inside exactly one transaction scope. A nil return
// commits; any error or panic rolls back. The connection is returned to the
// pool on every exit path.
type TxManager interface {
	WithinTx(ctx context.Context, fn func(r Repositories) error) error
}

// ChannelCache is a read-through cache for the channel listing. Lookups and
// stores are best effort; a miss or a cache outage never fails the request.
type ChannelCache interface {
	Get(ctx context.Context) ([]domain.ChannelProjection, bool)
	Set(ctx context.Context, channels []domain.ChannelProjection)
	Invalidate(ctx context.Context)
}
