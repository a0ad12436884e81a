package glguess

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"flowwork/internal/model"

	"github.com/shopspring/decimal"
)

type Engine struct {
	history HistoryStore
	aimaps  AIMapSource
	hints   HintSource

	now       func() time.Time
	window    time.Duration
	threshold decimal.Decimal
}

type Option func(*Engine)

// WithClock overrides the time source used for the trailing price window.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithSpikeWindow overrides the trailing window (60 days by default).
func WithSpikeWindow(d time.Duration) Option {
	return func(e *Engine) { e.window = d }
}

func NewEngine(history HistoryStore, aimaps AIMapSource, hints HintSource, opts ...Option) *Engine {
	e := &Engine{
		history:   history,
		aimaps:    aimaps,
		hints:     hints,
		now:       time.Now,
		window:    DefaultSpikeWindow,
		threshold: DefaultSpikeThreshold,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Guess annotates every line of req. Lines are processed one by one and each
// one issues its own lookups; nothing is memoized between lines.
func (e *Engine) Guess(ctx context.Context, req Request) (*Result, error) {
	aimap, err := e.aimaps.Load(ctx, req.CompanyID)
	if err != nil {
		return nil, fmt.Errorf("load ai map: %w", err)
	}
	if aimap == nil {
		aimap = &model.AIMap{}
	}

	res := &Result{
		OK:      true,
		Lines:   make([]Line, 0, len(req.Lines)),
		Learned: Learned{GLGuessHitRate: 1.0},
	}
	for i, in := range req.Lines {
		line, err := e.annotate(ctx, aimap, req.CompanyID, req.SupplierID, in)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", i, err)
		}
		res.Lines = append(res.Lines, line)
	}
	return res, nil
}

func (e *Engine) annotate(ctx context.Context, aimap *model.AIMap, companyID, supplierID int64, in LineInput) (Line, error) {
	line := Normalize(in)

	tokenID, hasToken := TokenGuess(aimap.TokenMap, line.Description)

	defaultID, hasDefault, err := e.ResolveDefaultGL(ctx, aimap, companyID, supplierID)
	if err != nil {
		return Line{}, err
	}

	switch {
	case hasToken:
		line.GLAccountID = &tokenID
		line.GLSource = SourceToken
	case hasDefault:
		line.GLAccountID = &defaultID
		line.GLSource = SourceDefault
	default:
		line.GLSource = SourceNone
	}

	line.FlagSpike, err = e.priceSpike(ctx, companyID, supplierID, line)
	if err != nil {
		return Line{}, err
	}

	rank := newRanking()
	if line.Description != "" {
		hintID, ok, err := e.hintAccount(ctx, companyID, line.Description)
		if err != nil {
			return Line{}, err
		}
		if ok {
			rank.propose(hintID, ConfidenceHint, SourceHint)
		}
	}
	if hasToken {
		rank.propose(tokenID, ConfidenceToken, SourceToken)
	}
	if hasDefault {
		rank.propose(defaultID, ConfidenceDefault, SourceDefault)
	}
	line.GLSuggestions = rank.suggestions()

	return line, nil
}

// ResolveDefaultGL picks the fallback account: the AI map's supplier default,
// then the supplier's most recently booked account, then the company's first
// expense account by code.
func (e *Engine) ResolveDefaultGL(ctx context.Context, aimap *model.AIMap, companyID, supplierID int64) (int64, bool, error) {
	if supplierID > 0 {
		if id, ok := aimap.SupplierDefaultGL[supplierID]; ok && id > 0 {
			return id, true, nil
		}
		id, ok, err := e.history.LatestSupplierGL(ctx, companyID, supplierID)
		if err != nil {
			return 0, false, fmt.Errorf("latest supplier gl: %w", err)
		}
		if ok && id > 0 {
			return id, true, nil
		}
	}
	id, ok, err := e.history.FirstExpenseAccount(ctx, companyID)
	if err != nil {
		return 0, false, fmt.Errorf("first expense account: %w", err)
	}
	if ok && id > 0 {
		return id, true, nil
	}
	return 0, false, nil
}

// priceSpike compares the line's unit price with the trailing average for the
// same supplier and description. Exactly threshold × mean does not flag.
func (e *Engine) priceSpike(ctx context.Context, companyID, supplierID int64, line Line) (bool, error) {
	if supplierID <= 0 || line.Description == "" || line.UnitPrice <= 0 {
		return false, nil
	}
	stats, err := e.history.TrailingUnitPrice(ctx, companyID, supplierID, line.Description, e.windowStart())
	if err != nil {
		return false, fmt.Errorf("trailing unit price: %w", err)
	}
	if stats.Count < 1 || !stats.Mean.IsPositive() {
		return false, nil
	}
	price := decimal.NewFromFloat(line.UnitPrice)
	return price.GreaterThan(stats.Mean.Mul(e.threshold)), nil
}

// windowStart is midnight UTC of the first day inside the trailing window.
func (e *Engine) windowStart() time.Time {
	now := e.now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return today.Add(-e.window)
}

func (e *Engine) hintAccount(ctx context.Context, companyID int64, description string) (int64, bool, error) {
	if e.hints == nil {
		return 0, false, nil
	}
	raw, ok, err := e.hints.Lookup(ctx, companyID, model.HintTypeLineGL, strings.ToLower(description))
	if err != nil {
		return 0, false, fmt.Errorf("hint lookup: %w", err)
	}
	if !ok {
		return 0, false, nil
	}
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0, false, nil
	}
	return id, true, nil
}
