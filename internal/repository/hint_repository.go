package repository

import (
	"context"
	"strings"

	"flowwork/internal/glguess"
	"flowwork/internal/model"

	"gorm.io/gorm"
)

type HintRepository struct {
	db *gorm.DB
}

var _ glguess.HintSource = (*HintRepository)(nil)

func NewHintRepository(db *gorm.DB) *HintRepository {
	return &HintRepository{db: db}
}

// Lookup returns the value of the most used, then most recently updated, hint
// for key. Keys are compared lower-cased.
func (r *HintRepository) Lookup(ctx context.Context, companyID int64, hintType, key string) (string, bool, error) {
	var values []string
	err := r.db.WithContext(ctx).Model(&model.AIHint{}).
		Where("company_id = ? AND hint_type = ? AND hint_key = ?", companyID, hintType, strings.ToLower(key)).
		Order("hits DESC").Order("updated_at DESC").
		Limit(1).
		Pluck("hint_value", &values).Error
	if err != nil || len(values) == 0 {
		return "", false, err
	}
	return values[0], true, nil
}
