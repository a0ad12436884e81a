package model

import (
	"encoding/json"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ColumnType string

const (
	ColumnText     ColumnType = "text"
	ColumnNumber   ColumnType = "number"
	ColumnStatus   ColumnType = "status"
	ColumnPeople   ColumnType = "people"
	ColumnDate     ColumnType = "date"
	ColumnPriority ColumnType = "priority"
	ColumnSupplier ColumnType = "supplier"
	ColumnDropdown ColumnType = "dropdown"
	ColumnFormula  ColumnType = "formula"
)

// ColumnTypes lists every column type the grid understands.
var ColumnTypes = []ColumnType{
	ColumnText, ColumnNumber, ColumnStatus, ColumnPeople, ColumnDate,
	ColumnPriority, ColumnSupplier, ColumnDropdown, ColumnFormula,
}

func (t ColumnType) Valid() bool {
	for _, known := range ColumnTypes {
		if t == known {
			return true
		}
	}
	return false
}

// Numeric reports whether values of this type take part in aggregation.
func (t ColumnType) Numeric() bool {
	return t == ColumnNumber || t == ColumnFormula
}

type Aggregation string

const (
	AggSum   Aggregation = "sum"
	AggAvg   Aggregation = "avg"
	AggMin   Aggregation = "min"
	AggMax   Aggregation = "max"
	AggCount Aggregation = "count"
)

const DefaultPrecision = 2

// ColumnConfig is the decoded form of Column.Config.
type ColumnConfig struct {
	Formula     string      `json:"formula,omitempty"`
	Precision   *int        `json:"precision,omitempty" validate:"omitempty,gte=0,lte=10"`
	Aggregation Aggregation `json:"agg,omitempty" validate:"omitempty,oneof=sum avg min max count"`
	Format      string      `json:"format,omitempty"`
	Options     []string    `json:"options,omitempty" validate:"omitempty,dive,required"`
}

// PrecisionOrDefault returns the configured precision, or DefaultPrecision.
func (c ColumnConfig) PrecisionOrDefault() int {
	if c.Precision == nil || *c.Precision < 0 {
		return DefaultPrecision
	}
	return *c.Precision
}

// AggregationOrDefault returns the configured method, or sum.
func (c ColumnConfig) AggregationOrDefault() Aggregation {
	switch c.Aggregation {
	case AggSum, AggAvg, AggMin, AggMax, AggCount:
		return c.Aggregation
	}
	return AggSum
}

type Column struct {
	ID       uuid.UUID      `gorm:"type:uuid;primaryKey"`
	BoardID  uuid.UUID      `gorm:"type:uuid;not null;index"`
	Name     string         `gorm:"not null"`
	Type     ColumnType     `gorm:"type:varchar(32);not null"`
	Position int            `gorm:"not null"`
	Config   datatypes.JSON `gorm:"type:json"`
}

func (c *Column) BeforeCreate(*gorm.DB) error {
	ensureID(&c.ID)
	return nil
}

// Settings decodes the config blob. A blank or malformed blob yields the zero
// config so that rendering never fails on bad column data.
func (c Column) Settings() ColumnConfig {
	var cfg ColumnConfig
	if len(c.Config) == 0 {
		return cfg
	}
	if err := json.Unmarshal(c.Config, &cfg); err != nil {
		return ColumnConfig{}
	}
	return cfg
}

// SetSettings encodes cfg into the config blob.
func (c *Column) SetSettings(cfg ColumnConfig) error {
	raw, err := json.Marshal(cfg)
	if err != nil {
		return err
	}
	c.Config = datatypes.JSON(raw)
	return nil
}
