package model

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

// AIMap holds a company's learned GL associations.
type AIMap struct {
	SupplierDefaultGL map[int64]int64  `json:"supplier_default_gl"`
	TokenMap          map[string]int64 `json:"token_map"`
}

// AIMapRecord is the persisted form of AIMap, one row per company.
type AIMapRecord struct {
	CompanyID         int64          `gorm:"primaryKey;autoIncrement:false"`
	SupplierDefaultGL datatypes.JSON `gorm:"type:json"`
	TokenMap          datatypes.JSON `gorm:"type:json"`
	UpdatedAt         time.Time
}

func (AIMapRecord) TableName() string {
	return "ai_maps"
}

// Decode turns the stored blobs into an AIMap. Blank blobs decode to empty maps.
func (r AIMapRecord) Decode() (*AIMap, error) {
	m := &AIMap{
		SupplierDefaultGL: map[int64]int64{},
		TokenMap:          map[string]int64{},
	}
	if len(r.SupplierDefaultGL) > 0 {
		if err := json.Unmarshal(r.SupplierDefaultGL, &m.SupplierDefaultGL); err != nil {
			return nil, err
		}
	}
	if len(r.TokenMap) > 0 {
		if err := json.Unmarshal(r.TokenMap, &m.TokenMap); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// AIHint is a learned free-form association, e.g. a description that was
// booked to a given GL account.
type AIHint struct {
	ID        int64     `gorm:"primaryKey"`
	CompanyID int64     `gorm:"not null;index:idx_ai_hints_lookup,priority:1"`
	HintType  string    `gorm:"size:64;not null;index:idx_ai_hints_lookup,priority:2"`
	HintKey   string    `gorm:"size:500;not null;index:idx_ai_hints_lookup,priority:3"`
	HintValue string    `gorm:"size:500;not null"`
	Hits      int       `gorm:"not null;default:0"`
	UpdatedAt time.Time
}

func (AIHint) TableName() string {
	return "ai_hints"
}

const HintTypeLineGL = "line_gl"
