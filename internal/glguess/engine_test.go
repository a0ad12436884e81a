package glguess_test

import (
	"context"
	"testing"
	"time"

	"flowwork/internal/glguess"
	"flowwork/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockHistory struct {
	mock.Mock
}

func (m *MockHistory) LatestSupplierGL(ctx context.Context, companyID, supplierID int64) (int64, bool, error) {
	args := m.Called(ctx, companyID, supplierID)
	return args.Get(0).(int64), args.Bool(1), args.Error(2)
}

func (m *MockHistory) FirstExpenseAccount(ctx context.Context, companyID int64) (int64, bool, error) {
	args := m.Called(ctx, companyID)
	return args.Get(0).(int64), args.Bool(1), args.Error(2)
}

func (m *MockHistory) TrailingUnitPrice(ctx context.Context, companyID, supplierID int64, description string, since time.Time) (glguess.PriceStats, error) {
	args := m.Called(ctx, companyID, supplierID, description, since)
	return args.Get(0).(glguess.PriceStats), args.Error(1)
}

type staticAIMap struct {
	m *model.AIMap
}

func (s staticAIMap) Load(context.Context, int64) (*model.AIMap, error) { return s.m, nil }

type staticHints map[string]string

func (h staticHints) Lookup(_ context.Context, _ int64, hintType, key string) (string, bool, error) {
	if hintType != model.HintTypeLineGL {
		return "", false, nil
	}
	v, ok := h[key]
	return v, ok, nil
}

const (
	company  int64 = 7
	supplier int64 = 42
)

var fixedNow = time.Date(2026, 10, 17, 15, 30, 0, 0, time.UTC)

func windowStart() time.Time {
	return time.Date(2026, 8, 18, 0, 0, 0, 0, time.UTC)
}

func f(v float64) *float64 { return &v }

func stats(mean string, n int64) glguess.PriceStats {
	return glguess.PriceStats{Mean: decimal.RequireFromString(mean), Count: n}
}

func newEngine(h *MockHistory, aimap *model.AIMap, hints staticHints) *glguess.Engine {
	return glguess.NewEngine(h, staticAIMap{m: aimap}, hints, glguess.WithClock(func() time.Time { return fixedNow }))
}

func TestResolveDefaultGL_Priority(t *testing.T) {
	ctx := context.Background()

	t.Run("ai map default wins over history", func(t *testing.T) {
		h := new(MockHistory)
		e := newEngine(h, &model.AIMap{SupplierDefaultGL: map[int64]int64{supplier: 500}}, nil)

		id, ok, err := e.ResolveDefaultGL(ctx, &model.AIMap{SupplierDefaultGL: map[int64]int64{supplier: 500}}, company, supplier)

		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, int64(500), id)
		h.AssertNotCalled(t, "LatestSupplierGL", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("history when no ai map default", func(t *testing.T) {
		h := new(MockHistory)
		h.On("LatestSupplierGL", mock.Anything, company, supplier).Return(int64(610), true, nil)
		e := newEngine(h, &model.AIMap{}, nil)

		id, ok, err := e.ResolveDefaultGL(ctx, &model.AIMap{SupplierDefaultGL: map[int64]int64{supplier: 0}}, company, supplier)

		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, int64(610), id)
		h.AssertExpectations(t)
	})

	t.Run("first expense account last", func(t *testing.T) {
		h := new(MockHistory)
		h.On("LatestSupplierGL", mock.Anything, company, supplier).Return(int64(0), false, nil)
		h.On("FirstExpenseAccount", mock.Anything, company).Return(int64(700), true, nil)
		e := newEngine(h, &model.AIMap{}, nil)

		id, ok, err := e.ResolveDefaultGL(ctx, &model.AIMap{}, company, supplier)

		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, int64(700), id)
	})

	t.Run("nothing found", func(t *testing.T) {
		h := new(MockHistory)
		h.On("LatestSupplierGL", mock.Anything, company, supplier).Return(int64(0), false, nil)
		h.On("FirstExpenseAccount", mock.Anything, company).Return(int64(0), false, nil)
		e := newEngine(h, &model.AIMap{}, nil)

		_, ok, err := e.ResolveDefaultGL(ctx, &model.AIMap{}, company, supplier)

		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("unknown supplier skips supplier sources", func(t *testing.T) {
		h := new(MockHistory)
		h.On("FirstExpenseAccount", mock.Anything, company).Return(int64(700), true, nil)
		e := newEngine(h, &model.AIMap{}, nil)

		id, ok, err := e.ResolveDefaultGL(ctx, &model.AIMap{}, company, 0)

		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, int64(700), id)
		h.AssertNotCalled(t, "LatestSupplierGL", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestGuess_PriceSpikeThreshold(t *testing.T) {
	cases := []struct {
		name  string
		price float64
		mean  string
		n     int64
		want  bool
	}{
		{"geyser element above threshold", 250, "200", 3, true},
		{"geyser element below threshold", 239, "200", 3, false},
		{"exactly 1.2x does not flag", 240, "200", 1, false},
		{"just above 1.2x flags", 240.02, "200", 1, true},
		{"no history never flags", 10000, "0", 0, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := new(MockHistory)
			h.On("LatestSupplierGL", mock.Anything, company, supplier).Return(int64(610), true, nil)
			h.On("TrailingUnitPrice", mock.Anything, company, supplier, "20mm Geyser Element", windowStart()).
				Return(stats(tc.mean, tc.n), nil)
			e := newEngine(h, &model.AIMap{}, nil)

			res, err := e.Guess(context.Background(), glguess.Request{
				CompanyID:  company,
				SupplierID: supplier,
				Lines:      []glguess.LineInput{{Description: "20mm Geyser Element", UnitPrice: f(tc.price)}},
			})

			require.NoError(t, err)
			require.Len(t, res.Lines, 1)
			assert.Equal(t, tc.want, res.Lines[0].FlagSpike)
			h.AssertExpectations(t)
		})
	}
}

func TestGuess_SpikeNotEvaluatedWithoutPreconditions(t *testing.T) {
	h := new(MockHistory)
	h.On("LatestSupplierGL", mock.Anything, company, supplier).Return(int64(0), false, nil)
	h.On("FirstExpenseAccount", mock.Anything, company).Return(int64(0), false, nil)
	e := newEngine(h, &model.AIMap{}, nil)

	res, err := e.Guess(context.Background(), glguess.Request{
		CompanyID:  company,
		SupplierID: supplier,
		Lines: []glguess.LineInput{
			{Description: "", UnitPrice: f(99)},
			{Description: "Widget", UnitPrice: f(0)},
			{Description: "Widget"},
		},
	})

	require.NoError(t, err)
	for _, line := range res.Lines {
		assert.False(t, line.FlagSpike)
	}
	h.AssertNotCalled(t, "TrailingUnitPrice", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestGuess_TokenGuessAndSuggestions(t *testing.T) {
	// Arrange
	h := new(MockHistory)
	h.On("TrailingUnitPrice", mock.Anything, company, supplier, mock.Anything, mock.Anything).
		Return(glguess.PriceStats{}, nil)
	aimap := &model.AIMap{
		SupplierDefaultGL: map[int64]int64{supplier: 300},
		TokenMap:          map[string]int64{"geyser": 410, "element": 420, "cement": 0},
	}
	hints := statichintsFor("20mm geyser element", "900")
	e := newEngine(h, aimap, hints)

	// Act
	res, err := e.Guess(context.Background(), glguess.Request{
		CompanyID:  company,
		SupplierID: supplier,
		Lines: []glguess.LineInput{
			{Description: "20mm Geyser Element", Qty: f(2), UnitPrice: f(250)},
			{Description: "Cement / element-bag", UnitPrice: f(80)},
			{Description: "Paint roller", UnitPrice: f(50)},
		},
	})

	// Assert
	require.NoError(t, err)
	assert.True(t, res.OK)
	assert.Equal(t, 1.0, res.Learned.GLGuessHitRate)
	require.Len(t, res.Lines, 3)

	first := res.Lines[0]
	require.NotNil(t, first.GLAccountID)
	assert.Equal(t, int64(410), *first.GLAccountID)
	assert.Equal(t, glguess.SourceToken, first.GLSource)
	assert.Equal(t, []glguess.Suggestion{
		{ID: 900, Confidence: glguess.ConfidenceHint, Source: glguess.SourceHint},
		{ID: 410, Confidence: glguess.ConfidenceToken, Source: glguess.SourceToken},
		{ID: 300, Confidence: glguess.ConfidenceDefault, Source: glguess.SourceDefault},
	}, first.GLSuggestions)

	// "cement" maps to a non-positive id and is skipped; "element" matches next.
	second := res.Lines[1]
	require.NotNil(t, second.GLAccountID)
	assert.Equal(t, int64(420), *second.GLAccountID)

	third := res.Lines[2]
	require.NotNil(t, third.GLAccountID)
	assert.Equal(t, int64(300), *third.GLAccountID)
	assert.Equal(t, glguess.SourceDefault, third.GLSource)
	assert.Equal(t, []glguess.Suggestion{{ID: 300, Confidence: glguess.ConfidenceDefault, Source: glguess.SourceDefault}}, third.GLSuggestions)
}

func TestGuess_SuggestionDedupKeepsHighestConfidence(t *testing.T) {
	h := new(MockHistory)
	h.On("TrailingUnitPrice", mock.Anything, company, supplier, mock.Anything, mock.Anything).
		Return(glguess.PriceStats{}, nil)
	aimap := &model.AIMap{
		SupplierDefaultGL: map[int64]int64{supplier: 410},
		TokenMap:          map[string]int64{"geyser": 410},
	}
	e := newEngine(h, aimap, statichintsFor("geyser", "410"))

	res, err := e.Guess(context.Background(), glguess.Request{
		CompanyID:  company,
		SupplierID: supplier,
		Lines:      []glguess.LineInput{{Description: "Geyser", UnitPrice: f(1)}},
	})

	require.NoError(t, err)
	assert.Equal(t, []glguess.Suggestion{{ID: 410, Confidence: glguess.ConfidenceHint, Source: glguess.SourceHint}}, res.Lines[0].GLSuggestions)
}

func TestGuess_HintMatchesDescriptionExactly(t *testing.T) {
	h := new(MockHistory)
	h.On("TrailingUnitPrice", mock.Anything, company, supplier, mock.Anything, mock.Anything).
		Return(glguess.PriceStats{}, nil)
	aimap := &model.AIMap{SupplierDefaultGL: map[int64]int64{supplier: 300}}
	e := newEngine(h, aimap, statichintsFor("geyser element", "900"))

	res, err := e.Guess(context.Background(), glguess.Request{
		CompanyID:  company,
		SupplierID: supplier,
		Lines: []glguess.LineInput{
			{Description: "Geyser Element", UnitPrice: f(1)},
			{Description: " Geyser Element ", UnitPrice: f(1)},
		},
	})

	require.NoError(t, err)
	assert.Equal(t, int64(900), res.Lines[0].GLSuggestions[0].ID)
	assert.Equal(t, []glguess.Suggestion{{ID: 300, Confidence: glguess.ConfidenceDefault, Source: glguess.SourceDefault}}, res.Lines[1].GLSuggestions)
	h.AssertCalled(t, "TrailingUnitPrice", mock.Anything, company, supplier, " Geyser Element ", windowStart())
}

func TestGuess_NormalizesAndRepeatsLookupsPerLine(t *testing.T) {
	h := new(MockHistory)
	h.On("LatestSupplierGL", mock.Anything, company, supplier).Return(int64(0), false, nil).Times(2)
	h.On("FirstExpenseAccount", mock.Anything, company).Return(int64(0), false, nil).Times(2)
	h.On("TrailingUnitPrice", mock.Anything, company, supplier, " Bolt ", windowStart()).
		Return(glguess.PriceStats{}, nil).Once()
	h.On("TrailingUnitPrice", mock.Anything, company, supplier, "Bolt", windowStart()).
		Return(glguess.PriceStats{}, nil).Once()
	e := newEngine(h, &model.AIMap{}, nil)

	res, err := e.Guess(context.Background(), glguess.Request{
		CompanyID:  company,
		SupplierID: supplier,
		Lines: []glguess.LineInput{
			{Description: " Bolt ", Qty: f(-3), Unit: "  ", UnitPrice: f(2)},
			{Description: "Bolt", Qty: f(0.5), Unit: "box", UnitPrice: f(3)},
		},
	})

	require.NoError(t, err)
	first, second := res.Lines[0], res.Lines[1]
	assert.Equal(t, " Bolt ", first.Description)
	assert.Equal(t, 1.0, first.Qty)
	assert.Equal(t, "ea", first.Unit)
	assert.Nil(t, first.GLAccountID)
	assert.Equal(t, glguess.SourceNone, first.GLSource)
	assert.Empty(t, first.GLSuggestions)
	assert.NotNil(t, first.GLSuggestions)
	assert.Equal(t, 0.5, second.Qty)
	assert.Equal(t, "box", second.Unit)
	h.AssertExpectations(t)
}

func TestGuess_StoreErrorFailsRequest(t *testing.T) {
	h := new(MockHistory)
	h.On("LatestSupplierGL", mock.Anything, company, supplier).Return(int64(0), false, assert.AnError)
	e := newEngine(h, &model.AIMap{}, nil)

	res, err := e.Guess(context.Background(), glguess.Request{
		CompanyID:  company,
		SupplierID: supplier,
		Lines:      []glguess.LineInput{{Description: "Bolt"}},
	})

	assert.ErrorIs(t, err, assert.AnError)
	assert.Nil(t, res)
}

func TestTokenize(t *testing.T) {
	assert.Equal(t, []string{"20mm", "geyser", "element", "3kw"}, glguess.Tokenize("20mm Geyser-Element (3kW)"))
	assert.Empty(t, glguess.Tokenize(" -- "))
}

func statichintsFor(key, value string) staticHints {
	return staticHints{key: value}
}
