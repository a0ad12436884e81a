package repository

import (
	"context"
	"time"

	"flowwork/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ValueRepository struct {
	db *gorm.DB
}

func NewValueRepository(db *gorm.DB) *ValueRepository {
	return &ValueRepository{db: db}
}

// GetByItemIDs loads every stored cell of the given items.
func (r *ValueRepository) GetByItemIDs(ctx context.Context, itemIDs []uuid.UUID) ([]model.ItemValue, error) {
	if len(itemIDs) == 0 {
		return nil, nil
	}
	var values []model.ItemValue
	err := r.db.WithContext(ctx).Where("item_id IN ?", itemIDs).Find(&values).Error
	return values, err
}

// Upsert writes a single cell.
func (r *ValueRepository) Upsert(ctx context.Context, value *model.ItemValue) error {
	return r.UpsertMany(ctx, []model.ItemValue{*value})
}

// UpsertMany writes cells in one statement, replacing existing values.
func (r *ValueRepository) UpsertMany(ctx context.Context, values []model.ItemValue) error {
	if len(values) == 0 {
		return nil
	}
	now := time.Now()
	for i := range values {
		values[i].UpdatedAt = now
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "item_id"}, {Name: "column_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).CreateInBatches(values, 200).Error
}

// Delete clears a cell. Clearing an empty cell is not an error.
func (r *ValueRepository) Delete(ctx context.Context, itemID, columnID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("item_id = ? AND column_id = ?", itemID, columnID).
		Delete(&model.ItemValue{}).Error
}
