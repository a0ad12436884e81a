package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Board struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	CompanyID int64     `gorm:"not null;index"`
	Name      string    `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (b *Board) BeforeCreate(*gorm.DB) error {
	ensureID(&b.ID)
	return nil
}
