package model

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Group is an ordered partition of a board's items. It carries no computed
// state; aggregation treats it as a key.
type Group struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	BoardID  uuid.UUID `gorm:"type:uuid;not null;index"`
	Name     string    `gorm:"not null"`
	Color    string    `gorm:"not null;default:'#579bfc'"`
	Position int       `gorm:"not null"`
}

func (Group) TableName() string {
	return "board_groups"
}

func (g *Group) BeforeCreate(*gorm.DB) error {
	ensureID(&g.ID)
	return nil
}
