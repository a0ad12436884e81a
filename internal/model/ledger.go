package model

import (
	"time"

	"github.com/shopspring/decimal"
)

const AccountTypeExpense = "expense"

// GLAccount is a general-ledger account of a company's chart of accounts.
type GLAccount struct {
	ID        int64  `gorm:"primaryKey"`
	CompanyID int64  `gorm:"not null;index"`
	Code      string `gorm:"size:32;not null;index"`
	Name      string `gorm:"size:255;not null"`
	Type      string `gorm:"size:32;not null;index"`
}

func (GLAccount) TableName() string {
	return "gl_accounts"
}

// APBill is a supplier bill header; only the fields the price benchmarks read
// are mapped.
type APBill struct {
	ID         int64     `gorm:"primaryKey"`
	CompanyID  int64     `gorm:"not null;index"`
	SupplierID int64     `gorm:"not null;index"`
	BillDate   time.Time `gorm:"not null;index"`
	CreatedAt  time.Time
}

func (APBill) TableName() string {
	return "ap_bills"
}

type APBillLine struct {
	ID          int64           `gorm:"primaryKey"`
	BillID      int64           `gorm:"not null;index"`
	Description string          `gorm:"size:500;not null"`
	Qty         decimal.Decimal `gorm:"type:decimal(20,4);not null;default:1"`
	Unit        string          `gorm:"size:32;not null;default:'ea'"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(20,4);not null;default:0"`
	GLAccountID *int64          `gorm:"index"`
}

func (APBillLine) TableName() string {
	return "ap_bill_lines"
}
