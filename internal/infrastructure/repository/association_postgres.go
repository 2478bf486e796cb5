package repository

import (
	"context"
	"errors"
	"fmt"

	"channelhub/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AssociationRepository struct {
	db *gorm.DB
}

func NewAssociationRepository(db *gorm.DB) *AssociationRepository {
	return &AssociationRepository{db: db}
}

// Create inserts the membership row. The composite primary key turns a
// concurrent duplicate join into ErrAlreadyMember; a foreign-key violation
// means a parent row vanished between the advisory check and the insert.
func (r *AssociationRepository) Create(ctx context.Context, assoc *domain.Association) error {
	result := r.db.WithContext(ctx).Omit("User", "Channel").Create(assoc)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return domain.ErrAlreadyMember
		}
		if errors.Is(result.Error, gorm.ErrForeignKeyViolated) {
			return domain.ErrMemberReferenceGone
		}
		return fmt.Errorf("create association: %w", result.Error)
	}
	return nil
}

func (r *AssociationRepository) Exists(ctx context.Context, userID, channelID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Association{}).
		Where("users_id = ? AND channels_id = ?", userID, channelID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("check membership: %w", err)
	}
	return count > 0, nil
}

func (r *AssociationRepository) Delete(ctx context.Context, userID, channelID uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("users_id = ? AND channels_id = ?", userID, channelID).
		Delete(&domain.Association{})
	if result.Error != nil {
		return fmt.Errorf("delete association: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrMembershipNotFound
	}
	return nil
}

// DeleteByUser removes every membership of one user. Zero rows is fine: a
// user without memberships is deletable.
func (r *AssociationRepository) DeleteByUser(ctx context.Context, userID uuid.UUID) error {
	err := r.db.WithContext(ctx).
		Where("users_id = ?", userID).
		Delete(&domain.Association{}).Error
	if err != nil {
		return fmt.Errorf("delete associations of user: %w", err)
	}
	return nil
}

// MembershipsByUser resolves a user's memberships to channel id, channel
// name and join timestamp.
func (r *AssociationRepository) MembershipsByUser(ctx context.Context, userID uuid.UUID) ([]domain.MembershipInfo, error) {
	var rows []domain.MembershipInfo
	err := r.db.WithContext(ctx).Model(&domain.Association{}).
		Select("channels.id AS id, channels.name AS name, association.date_joined AS date_joined").
		Joins("JOIN channels ON channels.id = association.channels_id").
		Where("association.users_id = ?", userID).
		Order("association.date_joined").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("memberships of user: %w", err)
	}
	return rows, nil
}
