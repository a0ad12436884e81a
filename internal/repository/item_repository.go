package repository

import (
	"context"
	"errors"

	"flowwork/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ItemRepository struct {
	db *gorm.DB
}

func NewItemRepository(db *gorm.DB) *ItemRepository {
	return &ItemRepository{db: db}
}

// Create adds a new item to the database
func (r *ItemRepository) Create(ctx context.Context, item *model.Item) error {
	return r.db.WithContext(ctx).Create(item).Error
}

// GetByID retrieves an item by its ID
func (r *ItemRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Item, error) {
	var item model.Item
	result := r.db.WithContext(ctx).First(&item, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, result.Error
	}
	return &item, nil
}

// GetByBoardID retrieves up to limit items of a board ordered by group and
// position. A non-positive limit means no limit.
func (r *ItemRepository) GetByBoardID(ctx context.Context, boardID uuid.UUID, limit int) ([]model.Item, error) {
	var items []model.Item
	q := r.db.WithContext(ctx).Where("board_id = ?", boardID).Order("position").Order("created_at")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// GetMaxPosition returns the highest position used in a group
func (r *ItemRepository) GetMaxPosition(ctx context.Context, groupID uuid.UUID) (int, error) {
	var maxPosition struct {
		Max int
	}
	err := r.db.WithContext(ctx).Model(&model.Item{}).
		Select("COALESCE(MAX(position), 0) as max").
		Where("group_id = ?", groupID).
		Scan(&maxPosition).Error

	return maxPosition.Max, err
}

// MoveToGroup moves an item to another group, appending it at the end
func (r *ItemRepository) MoveToGroup(ctx context.Context, itemID, groupID uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var item model.Item
		if err := tx.First(&item, "id = ?", itemID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrItemNotFound
			}
			return err
		}
		if item.GroupID == groupID {
			return nil
		}

		// Close the gap in the old group
		if err := tx.Model(&model.Item{}).
			Where("group_id = ? AND position > ?", item.GroupID, item.Position).
			Update("position", gorm.Expr("position - 1")).Error; err != nil {
			return err
		}

		var maxPosition struct {
			Max int
		}
		if err := tx.Model(&model.Item{}).
			Select("COALESCE(MAX(position), 0) as max").
			Where("group_id = ?", groupID).
			Scan(&maxPosition).Error; err != nil {
			return err
		}

		item.GroupID = groupID
		item.Position = maxPosition.Max + 1
		return tx.Save(&item).Error
	})
}
