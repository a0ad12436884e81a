package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"flowwork/internal/handler"
	"flowwork/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setupColumnRouter(s *mockStores) *gin.Engine {
	r := newRouter()
	h := handler.NewColumnHandler(s.stores(), nil)
	r.POST("/columns", h.Create)
	r.GET("/boards/:id/columns", h.GetAll)
	r.GET("/columns/:id", h.GetByID)
	r.PUT("/columns/:id", h.Update)
	r.DELETE("/columns/:id", h.Delete)
	r.POST("/boards/:id/columns/reorder", h.ReorderColumns)
	return r
}

func postJSON(router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	raw, _ := json.Marshal(body)
	req, _ := http.NewRequest(method, path, bytes.NewBuffer(raw))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func intPtr(v int) *int { return &v }

func TestColumnHandler_Create_Formula(t *testing.T) {
	// Arrange
	s := newMockStores()
	router := setupColumnRouter(s)
	board := ownBoard()

	s.boards.On("GetByID", mock.Anything, board.ID).Return(board, nil)
	s.columns.On("GetMaxPosition", mock.Anything, board.ID).Return(2, nil)
	s.columns.On("Create", mock.Anything, mock.MatchedBy(func(c *model.Column) bool {
		cfg := c.Settings()
		return c.Type == model.ColumnFormula && c.Position == 3 &&
			cfg.Formula == "{Qty} * {Price}" && cfg.PrecisionOrDefault() == 3
	})).Return(nil)

	// Act
	resp := postJSON(router, "POST", "/columns", handler.CreateColumnRequest{
		BoardID: board.ID.String(),
		Name:    "Total",
		Type:    model.ColumnFormula,
		Config:  model.ColumnConfig{Formula: "{Qty} * {Price}", Precision: intPtr(3), Aggregation: model.AggAvg},
	})

	// Assert
	assert.Equal(t, http.StatusCreated, resp.Code)

	var column handler.ColumnResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &column))
	assert.Equal(t, "Total", column.Name)
	assert.Equal(t, model.AggAvg, column.Config.Aggregation)
	s.columns.AssertExpectations(t)
}

func TestColumnHandler_Create_RejectsInvalidConfig(t *testing.T) {
	tests := []struct {
		name    string
		colType model.ColumnType
		config  model.ColumnConfig
	}{
		{"unknown type", "spreadsheet", model.ColumnConfig{}},
		{"formula without expression", model.ColumnFormula, model.ColumnConfig{}},
		{"formula with letters", model.ColumnFormula, model.ColumnConfig{Formula: "Qty * 2"}},
		{"formula syntax", model.ColumnFormula, model.ColumnConfig{Formula: "{Qty} *"}},
		{"negative precision", model.ColumnNumber, model.ColumnConfig{Precision: intPtr(-1)}},
		{"unknown aggregation", model.ColumnNumber, model.ColumnConfig{Aggregation: "median"}},
		{"dropdown without options", model.ColumnDropdown, model.ColumnConfig{}},
		{"blank dropdown option", model.ColumnDropdown, model.ColumnConfig{Options: []string{"a", ""}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newMockStores()
			router := setupColumnRouter(s)
			board := ownBoard()
			s.boards.On("GetByID", mock.Anything, board.ID).Return(board, nil)

			resp := postJSON(router, "POST", "/columns", handler.CreateColumnRequest{
				BoardID: board.ID.String(),
				Name:    "Col",
				Type:    tt.colType,
				Config:  tt.config,
			})

			assert.Equal(t, http.StatusBadRequest, resp.Code)
			s.columns.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestColumnHandler_Update_Config(t *testing.T) {
	// Arrange
	s := newMockStores()
	router := setupColumnRouter(s)
	board := ownBoard()
	col := column(board.ID, "Total", model.ColumnFormula, 3, model.ColumnConfig{Formula: "{Qty}"})

	s.columns.On("GetByID", mock.Anything, col.ID).Return(&col, nil)
	s.boards.On("GetByID", mock.Anything, board.ID).Return(board, nil)
	s.columns.On("Update", mock.Anything, mock.MatchedBy(func(c *model.Column) bool {
		return c.Name == "Line total" && c.Settings().Formula == "{Qty} * {Price}"
	})).Return(nil)

	// Act
	resp := postJSON(router, "PUT", "/columns/"+col.ID.String(), handler.UpdateColumnRequest{
		Name:   "Line total",
		Config: &model.ColumnConfig{Formula: "{Qty} * {Price}"},
	})

	// Assert
	assert.Equal(t, http.StatusOK, resp.Code)
	s.columns.AssertExpectations(t)
}

func TestColumnHandler_GetByID_NotFound(t *testing.T) {
	s := newMockStores()
	router := setupColumnRouter(s)
	id := uuid.New()
	s.columns.On("GetByID", mock.Anything, id).Return(nil, nil)

	req, _ := http.NewRequest("GET", "/columns/"+id.String(), nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusNotFound, resp.Code)
	assert.Contains(t, resp.Body.String(), "Column not found")
}

func TestColumnHandler_Delete(t *testing.T) {
	s := newMockStores()
	router := setupColumnRouter(s)
	board := ownBoard()
	col := column(board.ID, "Qty", model.ColumnNumber, 1, model.ColumnConfig{})

	s.columns.On("GetByID", mock.Anything, col.ID).Return(&col, nil)
	s.boards.On("GetByID", mock.Anything, board.ID).Return(board, nil)
	s.columns.On("Delete", mock.Anything, col.ID).Return(nil)

	req, _ := http.NewRequest("DELETE", "/columns/"+col.ID.String(), nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), "Column deleted successfully")
	s.columns.AssertExpectations(t)
}

func TestColumnHandler_Reorder_RejectsForeignColumn(t *testing.T) {
	s := newMockStores()
	router := setupColumnRouter(s)
	board := ownBoard()
	qty := column(board.ID, "Qty", model.ColumnNumber, 1, model.ColumnConfig{})

	s.boards.On("GetByID", mock.Anything, board.ID).Return(board, nil)
	s.columns.On("GetByBoardID", mock.Anything, board.ID).Return([]model.Column{qty}, nil)

	resp := postJSON(router, "POST", "/boards/"+board.ID.String()+"/columns/reorder", map[string]any{
		"columns": []map[string]any{
			{"id": qty.ID.String(), "position": 2},
			{"id": uuid.NewString(), "position": 1},
		},
	})

	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Contains(t, resp.Body.String(), "All columns must belong to the specified board")
	s.columns.AssertNotCalled(t, "ReorderColumns", mock.Anything, mock.Anything)
}

func TestColumnHandler_Reorder(t *testing.T) {
	s := newMockStores()
	router := setupColumnRouter(s)
	board := ownBoard()
	qty := column(board.ID, "Qty", model.ColumnNumber, 1, model.ColumnConfig{})
	price := column(board.ID, "Price", model.ColumnNumber, 2, model.ColumnConfig{})

	s.boards.On("GetByID", mock.Anything, board.ID).Return(board, nil)
	s.columns.On("GetByBoardID", mock.Anything, board.ID).Return([]model.Column{qty, price}, nil)
	s.columns.On("ReorderColumns", mock.Anything, []model.Column{
		{ID: price.ID, BoardID: board.ID, Position: 1},
		{ID: qty.ID, BoardID: board.ID, Position: 2},
	}).Return(nil)

	resp := postJSON(router, "POST", "/boards/"+board.ID.String()+"/columns/reorder", map[string]any{
		"columns": []map[string]any{
			{"id": price.ID.String(), "position": 1},
			{"id": qty.ID.String(), "position": 2},
		},
	})

	assert.Equal(t, http.StatusOK, resp.Code)
	s.columns.AssertExpectations(t)
}
