package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Item is a board row. Archival is handled outside the grid engine, so items
// are never deleted here.
type Item struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	BoardID   uuid.UUID `gorm:"type:uuid;not null;index"`
	GroupID   uuid.UUID `gorm:"type:uuid;not null;index"`
	Name      string    `gorm:"not null"`
	Position  int       `gorm:"not null"`
	CreatedAt time.Time
}

func (i *Item) BeforeCreate(*gorm.DB) error {
	ensureID(&i.ID)
	return nil
}

// ItemValue is one cell of the grid. A missing row means an empty cell.
type ItemValue struct {
	ItemID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	ColumnID  uuid.UUID `gorm:"type:uuid;primaryKey;index"`
	Value     string    `gorm:"type:text;not null"`
	UpdatedAt time.Time
}
