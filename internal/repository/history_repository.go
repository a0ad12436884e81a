package repository

import (
	"context"
	"database/sql"
	"time"

	"flowwork/internal/glguess"
	"flowwork/internal/model"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// HistoryRepository reads supplier bills and the chart of accounts for the
// GL guesser.
type HistoryRepository struct {
	db *gorm.DB
}

var _ glguess.HistoryStore = (*HistoryRepository)(nil)

func NewHistoryRepository(db *gorm.DB) *HistoryRepository {
	return &HistoryRepository{db: db}
}

// LatestSupplierGL returns the account booked on the supplier's most recent
// bill line. A latest line without an account reports no match.
func (r *HistoryRepository) LatestSupplierGL(ctx context.Context, companyID, supplierID int64) (int64, bool, error) {
	var ids []sql.NullInt64
	err := r.db.WithContext(ctx).Model(&model.APBillLine{}).
		Joins("JOIN ap_bills ON ap_bills.id = ap_bill_lines.bill_id").
		Where("ap_bills.company_id = ? AND ap_bills.supplier_id = ?", companyID, supplierID).
		Order("ap_bill_lines.id DESC").
		Limit(1).
		Pluck("ap_bill_lines.gl_account_id", &ids).Error
	if err != nil || len(ids) == 0 {
		return 0, false, err
	}
	if !ids[0].Valid || ids[0].Int64 <= 0 {
		return 0, false, nil
	}
	return ids[0].Int64, true, nil
}

func (r *HistoryRepository) FirstExpenseAccount(ctx context.Context, companyID int64) (int64, bool, error) {
	var ids []int64
	err := r.db.WithContext(ctx).Model(&model.GLAccount{}).
		Where("company_id = ? AND type = ?", companyID, model.AccountTypeExpense).
		Order("code").Order("id").
		Limit(1).
		Pluck("id", &ids).Error
	if err != nil || len(ids) == 0 {
		return 0, false, err
	}
	return ids[0], true, nil
}

func (r *HistoryRepository) TrailingUnitPrice(ctx context.Context, companyID, supplierID int64, description string, since time.Time) (glguess.PriceStats, error) {
	var row struct {
		Mean decimal.NullDecimal
		N    int64
	}
	err := r.db.WithContext(ctx).Model(&model.APBillLine{}).
		Select("AVG(ap_bill_lines.unit_price) AS mean, COUNT(*) AS n").
		Joins("JOIN ap_bills ON ap_bills.id = ap_bill_lines.bill_id").
		Where("ap_bills.company_id = ? AND ap_bills.supplier_id = ?", companyID, supplierID).
		Where("ap_bill_lines.description = ? AND ap_bills.bill_date >= ?", description, since).
		Scan(&row).Error
	if err != nil {
		return glguess.PriceStats{}, err
	}
	stats := glguess.PriceStats{Count: row.N}
	if row.Mean.Valid {
		stats.Mean = row.Mean.Decimal
	}
	return stats, nil
}
