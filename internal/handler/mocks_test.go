package handler_test

import (
	"context"

	"flowwork/internal/glguess"
	"flowwork/internal/handler"
	"flowwork/internal/middleware"
	"flowwork/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

const testCompanyID int64 = 1

type MockBoardStore struct{ mock.Mock }

func (m *MockBoardStore) Create(ctx context.Context, board *model.Board) error {
	args := m.Called(ctx, board)
	return args.Error(0)
}

func (m *MockBoardStore) GetByID(ctx context.Context, id uuid.UUID) (*model.Board, error) {
	args := m.Called(ctx, id)
	board := args.Get(0)
	if board == nil {
		return nil, args.Error(1)
	}
	return board.(*model.Board), args.Error(1)
}

func (m *MockBoardStore) GetByCompany(ctx context.Context, companyID int64) ([]model.Board, error) {
	args := m.Called(ctx, companyID)
	return args.Get(0).([]model.Board), args.Error(1)
}

type MockGroupStore struct{ mock.Mock }

func (m *MockGroupStore) Create(ctx context.Context, group *model.Group) error {
	args := m.Called(ctx, group)
	return args.Error(0)
}

func (m *MockGroupStore) GetByID(ctx context.Context, id uuid.UUID) (*model.Group, error) {
	args := m.Called(ctx, id)
	group := args.Get(0)
	if group == nil {
		return nil, args.Error(1)
	}
	return group.(*model.Group), args.Error(1)
}

func (m *MockGroupStore) GetByBoardID(ctx context.Context, boardID uuid.UUID) ([]model.Group, error) {
	args := m.Called(ctx, boardID)
	return args.Get(0).([]model.Group), args.Error(1)
}

func (m *MockGroupStore) GetMaxPosition(ctx context.Context, boardID uuid.UUID) (int, error) {
	args := m.Called(ctx, boardID)
	return args.Int(0), args.Error(1)
}

type MockColumnStore struct{ mock.Mock }

func (m *MockColumnStore) Create(ctx context.Context, column *model.Column) error {
	args := m.Called(ctx, column)
	return args.Error(0)
}

func (m *MockColumnStore) GetByID(ctx context.Context, id uuid.UUID) (*model.Column, error) {
	args := m.Called(ctx, id)
	column := args.Get(0)
	if column == nil {
		return nil, args.Error(1)
	}
	return column.(*model.Column), args.Error(1)
}

func (m *MockColumnStore) GetByBoardID(ctx context.Context, boardID uuid.UUID) ([]model.Column, error) {
	args := m.Called(ctx, boardID)
	return args.Get(0).([]model.Column), args.Error(1)
}

func (m *MockColumnStore) Update(ctx context.Context, column *model.Column) error {
	args := m.Called(ctx, column)
	return args.Error(0)
}

func (m *MockColumnStore) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockColumnStore) GetMaxPosition(ctx context.Context, boardID uuid.UUID) (int, error) {
	args := m.Called(ctx, boardID)
	return args.Int(0), args.Error(1)
}

func (m *MockColumnStore) ReorderColumns(ctx context.Context, columns []model.Column) error {
	args := m.Called(ctx, columns)
	return args.Error(0)
}

type MockItemStore struct{ mock.Mock }

func (m *MockItemStore) Create(ctx context.Context, item *model.Item) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockItemStore) GetByID(ctx context.Context, id uuid.UUID) (*model.Item, error) {
	args := m.Called(ctx, id)
	item := args.Get(0)
	if item == nil {
		return nil, args.Error(1)
	}
	return item.(*model.Item), args.Error(1)
}

func (m *MockItemStore) GetByBoardID(ctx context.Context, boardID uuid.UUID, limit int) ([]model.Item, error) {
	args := m.Called(ctx, boardID, limit)
	return args.Get(0).([]model.Item), args.Error(1)
}

func (m *MockItemStore) GetMaxPosition(ctx context.Context, groupID uuid.UUID) (int, error) {
	args := m.Called(ctx, groupID)
	return args.Int(0), args.Error(1)
}

func (m *MockItemStore) MoveToGroup(ctx context.Context, itemID, groupID uuid.UUID) error {
	args := m.Called(ctx, itemID, groupID)
	return args.Error(0)
}

type MockValueStore struct{ mock.Mock }

func (m *MockValueStore) GetByItemIDs(ctx context.Context, itemIDs []uuid.UUID) ([]model.ItemValue, error) {
	args := m.Called(ctx, itemIDs)
	return args.Get(0).([]model.ItemValue), args.Error(1)
}

func (m *MockValueStore) Upsert(ctx context.Context, value *model.ItemValue) error {
	args := m.Called(ctx, value)
	return args.Error(0)
}

func (m *MockValueStore) UpsertMany(ctx context.Context, values []model.ItemValue) error {
	args := m.Called(ctx, values)
	return args.Error(0)
}

func (m *MockValueStore) Delete(ctx context.Context, itemID, columnID uuid.UUID) error {
	args := m.Called(ctx, itemID, columnID)
	return args.Error(0)
}

type MockGuesser struct{ mock.Mock }

func (m *MockGuesser) Guess(ctx context.Context, req glguess.Request) (*glguess.Result, error) {
	args := m.Called(ctx, req)
	res := args.Get(0)
	if res == nil {
		return nil, args.Error(1)
	}
	return res.(*glguess.Result), args.Error(1)
}

type mockStores struct {
	boards  *MockBoardStore
	groups  *MockGroupStore
	columns *MockColumnStore
	items   *MockItemStore
	values  *MockValueStore
}

func newMockStores() *mockStores {
	return &mockStores{
		boards:  new(MockBoardStore),
		groups:  new(MockGroupStore),
		columns: new(MockColumnStore),
		items:   new(MockItemStore),
		values:  new(MockValueStore),
	}
}

func (s *mockStores) stores() handler.Stores {
	return handler.Stores{
		Boards:  s.boards,
		Groups:  s.groups,
		Columns: s.columns,
		Items:   s.items,
		Values:  s.values,
	}
}

// withCompany stands in for the JWT middleware.
func withCompany(companyID int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.UserIDKey, uuid.New())
		c.Set(middleware.CompanyIDKey, companyID)
		c.Next()
	}
}

func newRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(withCompany(testCompanyID))
	return r
}

func ownBoard() *model.Board {
	return &model.Board{ID: uuid.New(), CompanyID: testCompanyID, Name: "Purchases"}
}

func column(boardID uuid.UUID, name string, t model.ColumnType, position int, cfg model.ColumnConfig) model.Column {
	col := model.Column{ID: uuid.New(), BoardID: boardID, Name: name, Type: t, Position: position}
	_ = col.SetSettings(cfg)
	return col
}
