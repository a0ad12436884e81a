// Package glguess annotates freshly parsed purchase lines (receipts, supplier
// invoices) with a best-guess general-ledger account, a price spike flag and a
// ranked list of alternative accounts.
//
// Every signal is best effort. A missing supplier, AI map entry, purchase
// history or hint only removes that signal; store errors are returned as-is so
// the request fails as a whole.
package glguess

import (
	"context"
	"time"

	"flowwork/internal/model"

	"github.com/shopspring/decimal"
)

// HistoryStore reads a company's purchase history and chart of accounts.
type HistoryStore interface {
	// LatestSupplierGL returns the GL account of the supplier's most recent
	// bill line (highest line id) that has one.
	LatestSupplierGL(ctx context.Context, companyID, supplierID int64) (int64, bool, error)
	// FirstExpenseAccount returns the expense account with the lowest code.
	FirstExpenseAccount(ctx context.Context, companyID int64) (int64, bool, error)
	// TrailingUnitPrice averages unit prices of exact (supplier, description)
	// lines billed on or after since.
	TrailingUnitPrice(ctx context.Context, companyID, supplierID int64, description string, since time.Time) (PriceStats, error)
}

// AIMapSource loads a company's learned GL map. A company without a map gets
// an empty one, not an error.
type AIMapSource interface {
	Load(ctx context.Context, companyID int64) (*model.AIMap, error)
}

// HintSource looks up the best hint value for a key.
type HintSource interface {
	Lookup(ctx context.Context, companyID int64, hintType, key string) (string, bool, error)
}

type PriceStats struct {
	Mean  decimal.Decimal
	Count int64
}

const (
	ConfidenceHint    = 0.95
	ConfidenceToken   = 0.80
	ConfidenceDefault = 0.40

	DefaultUnit = "ea"
)

const (
	SourceHint    = "hint"
	SourceToken   = "token"
	SourceDefault = "default"
	SourceNone    = "none"
)

var (
	DefaultSpikeWindow    = 60 * 24 * time.Hour
	DefaultSpikeThreshold = decimal.RequireFromString("1.2")
)

// LineInput is one parsed line as received from upstream extraction. Nil
// numbers mean the parser could not read them.
type LineInput struct {
	Description string   `json:"description"`
	Qty         *float64 `json:"qty"`
	Unit        string   `json:"unit"`
	UnitPrice   *float64 `json:"unit_price"`
}

type Suggestion struct {
	ID         int64   `json:"id"`
	Confidence float64 `json:"confidence"`
	Source     string  `json:"source"`
}

// Line is an annotated, normalized line.
type Line struct {
	Description   string       `json:"description"`
	Qty           float64      `json:"qty"`
	Unit          string       `json:"unit"`
	UnitPrice     float64      `json:"unit_price"`
	GLAccountID   *int64       `json:"gl_account_id"`
	FlagSpike     bool         `json:"flag_spike"`
	GLSuggestions []Suggestion `json:"gl_suggestions"`

	// GLSource tells which signal chose GLAccountID.
	GLSource string `json:"-"`
}

type Learned struct {
	// GLGuessHitRate is a fixed placeholder; accuracy is not tracked yet.
	GLGuessHitRate float64 `json:"gl_guess_hit_rate"`
}

type Request struct {
	CompanyID  int64
	SupplierID int64
	Lines      []LineInput
}

type Result struct {
	OK      bool    `json:"ok"`
	Lines   []Line  `json:"lines"`
	Learned Learned `json:"learned"`
}
