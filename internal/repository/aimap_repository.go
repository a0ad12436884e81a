package repository

import (
	"context"
	"errors"
	"fmt"

	"flowwork/internal/glguess"
	"flowwork/internal/model"

	"gorm.io/gorm"
)

type AIMapRepository struct {
	db *gorm.DB
}

var _ glguess.AIMapSource = (*AIMapRepository)(nil)

func NewAIMapRepository(db *gorm.DB) *AIMapRepository {
	return &AIMapRepository{db: db}
}

// Load returns the company's AI map, or an empty map if none was learned yet.
func (r *AIMapRepository) Load(ctx context.Context, companyID int64) (*model.AIMap, error) {
	var rec model.AIMapRecord
	err := r.db.WithContext(ctx).First(&rec, "company_id = ?", companyID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.AIMapRecord{}.Decode()
	}
	if err != nil {
		return nil, err
	}
	m, err := rec.Decode()
	if err != nil {
		return nil, fmt.Errorf("decode ai map for company %d: %w", companyID, err)
	}
	return m, nil
}
